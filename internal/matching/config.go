package matching

import (
	"fmt"
	"math"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/denisok6893-rgb/property-matchmaking/internal/domain"
)

// weightSumTolerance is how far the weight total may drift from 100.
const weightSumTolerance = 0.001

// Weights defines the importance of each criterion. The defaults sum to 100.
type Weights struct {
	Budget          float64 `json:"budget" yaml:"budget" mapstructure:"budget"`
	Location        float64 `json:"location" yaml:"location" mapstructure:"location"`
	TransactionType float64 `json:"transaction_type" yaml:"transaction_type" mapstructure:"transaction_type"`
	PropertyType    float64 `json:"property_type" yaml:"property_type" mapstructure:"property_type"`
	Bedrooms        float64 `json:"bedrooms" yaml:"bedrooms" mapstructure:"bedrooms"`
	Size            float64 `json:"size" yaml:"size" mapstructure:"size"`
	Amenities       float64 `json:"amenities" yaml:"amenities" mapstructure:"amenities"`
	Condition       float64 `json:"condition" yaml:"condition" mapstructure:"condition"`
	Furnished       float64 `json:"furnished" yaml:"furnished" mapstructure:"furnished"`
	Floor           float64 `json:"floor" yaml:"floor" mapstructure:"floor"`
	Elevator        float64 `json:"elevator" yaml:"elevator" mapstructure:"elevator"`
	PetPolicy       float64 `json:"pet_policy" yaml:"pet_policy" mapstructure:"pet_policy"`
	Heating         float64 `json:"heating" yaml:"heating" mapstructure:"heating"`
	EnergyClass     float64 `json:"energy_class" yaml:"energy_class" mapstructure:"energy_class"`
	Parking         float64 `json:"parking" yaml:"parking" mapstructure:"parking"`
}

// DefaultWeights returns the production weight table.
func DefaultWeights() Weights {
	return Weights{
		Budget:          25,
		Location:        20,
		TransactionType: 15,
		PropertyType:    8,
		Bedrooms:        8,
		Size:            7,
		Amenities:       5,
		Condition:       2,
		Furnished:       1.5,
		Floor:           1.5,
		Elevator:        1.5,
		PetPolicy:       1.5,
		Heating:         1,
		EnergyClass:     1,
		Parking:         2,
	}
}

// For returns the weight configured for c, or 0 for an unknown criterion.
func (w Weights) For(c domain.Criterion) float64 {
	switch c {
	case domain.CriterionBudget:
		return w.Budget
	case domain.CriterionLocation:
		return w.Location
	case domain.CriterionTransactionType:
		return w.TransactionType
	case domain.CriterionPropertyType:
		return w.PropertyType
	case domain.CriterionBedrooms:
		return w.Bedrooms
	case domain.CriterionSize:
		return w.Size
	case domain.CriterionAmenities:
		return w.Amenities
	case domain.CriterionCondition:
		return w.Condition
	case domain.CriterionFurnished:
		return w.Furnished
	case domain.CriterionFloor:
		return w.Floor
	case domain.CriterionElevator:
		return w.Elevator
	case domain.CriterionPetPolicy:
		return w.PetPolicy
	case domain.CriterionHeating:
		return w.Heating
	case domain.CriterionEnergyClass:
		return w.EnergyClass
	case domain.CriterionParking:
		return w.Parking
	default:
		return 0
	}
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	var total float64
	for _, c := range domain.Criteria {
		total += w.For(c)
	}
	return total
}

// Validate checks that weights are finite, non-negative and sum to 100.
func (w Weights) Validate() error {
	for _, c := range domain.Criteria {
		v := w.For(c)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("invalid weight for %s: %g", c, v)
		}
		if v < 0 {
			return fmt.Errorf("negative weight for %s: %g", c, v)
		}
	}
	if sum := w.Sum(); math.Abs(sum-100) > weightSumTolerance {
		return fmt.Errorf("weights sum to %.3f, expected 100", sum)
	}
	return nil
}

// LoadWeightsFromFile loads weights from a YAML or JSON file on top of the defaults.
// Criteria missing from the file keep their default weight.
func LoadWeightsFromFile(path string) (Weights, error) {
	return OverlayWeightsFile(DefaultWeights(), path)
}

// OverlayWeightsFile applies the weights found in path on top of base. On
// error base is returned unchanged.
func OverlayWeightsFile(base Weights, path string) (Weights, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read weights file: %w", err)
	}
	w := base
	// YAML is a superset of JSON, so one decoder covers both formats.
	if err := yaml.Unmarshal(b, &w); err != nil {
		return base, fmt.Errorf("unmarshal weights: %w", err)
	}
	return w, nil
}
