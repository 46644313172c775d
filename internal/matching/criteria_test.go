package matching

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/denisok6893-rgb/property-matchmaking/internal/domain"
)

func prefsOf(c domain.Client) Preferences { return ExtractPreferences(c) }

func TestScoreBudget(t *testing.T) {
	budget := domain.Client{BudgetMin: ptr(200000.0), BudgetMax: ptr(250000.0)}

	tests := []struct {
		name        string
		client      domain.Client
		price       *float64
		want        float64
		wantMatched bool
		wantReason  string
	}{
		{name: "at max", client: budget, price: ptr(250000.0), want: 100, wantReason: "Price within budget"},
		{name: "10% over", client: budget, price: ptr(275000.0), want: 100 - 10.0/30*100},
		{name: "30% over", client: budget, price: ptr(325000.0), want: 0},
		{name: "far over", client: budget, price: ptr(1e9), want: 0},
		{name: "25% under", client: budget, price: ptr(150000.0), want: 85, wantMatched: true},
		{name: "far under floors at 70", client: budget, price: ptr(1.0), want: 70, wantMatched: true},
		{name: "no budget", client: domain.Client{}, price: ptr(1e9), want: 80},
		{name: "no price", client: budget, price: nil, want: 50},
		{name: "only max", client: domain.Client{BudgetMax: ptr(100.0)}, price: ptr(10.0), want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ScoreBudget(prefsOf(tt.client), domain.Property{Price: tt.price})
			assert.InDelta(t, tt.want, v.Score, 0.001)
			assert.Equal(t, tt.wantMatched, v.Matched)
			if tt.wantReason != "" {
				assert.Equal(t, tt.wantReason, v.Reason)
			}
		})
	}
}

func TestScoreBudget_MonotonicOverMax(t *testing.T) {
	prefs := prefsOf(domain.Client{BudgetMin: ptr(200000.0), BudgetMax: ptr(250000.0)})

	prev := 101.0
	for _, pct := range []float64{0, 1, 10, 29, 30} {
		price := 250000 * (1 + pct/100)
		score := ScoreBudget(prefs, domain.Property{Price: &price}).Score
		assert.LessOrEqual(t, score, prev, "%.0f%% over", pct)
		prev = score
	}
	assert.InDelta(t, 0, prev, 0.001)
}

func TestScoreLocation(t *testing.T) {
	client := domain.Client{AreasOfInterest: []string{"Valencia", "Ruzafa"}}

	tests := []struct {
		name        string
		client      domain.Client
		property    domain.Property
		want        float64
		wantMatched bool
	}{
		{name: "exact", client: client, property: domain.Property{City: "VALENCIA"}, want: 100},
		{name: "exact in area", client: client, property: domain.Property{City: "Spain", Area: "ruzafa"}, want: 100},
		{name: "partial", client: client, property: domain.Property{City: "Valencia Center"}, want: 75, wantMatched: true},
		{name: "miss", client: client, property: domain.Property{City: "Madrid"}, want: 0},
		{name: "unknown location", client: client, property: domain.Property{}, want: 50},
		{name: "no preference", client: domain.Client{}, property: domain.Property{City: "Anywhere"}, want: 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ScoreLocation(prefsOf(tt.client), tt.property)
			assert.Equal(t, tt.want, v.Score)
			assert.Equal(t, tt.wantMatched, v.Matched)
		})
	}
}

func TestScoreTransactionAndPropertyType(t *testing.T) {
	t.Run("rent vs sale", func(t *testing.T) {
		v := ScoreTransactionType(prefsOf(domain.Client{Intent: domain.IntentRent}), domain.Property{TransactionType: domain.TransactionSale})
		assert.Equal(t, 0.0, v.Score)
	})
	t.Run("rent vs short term", func(t *testing.T) {
		v := ScoreTransactionType(prefsOf(domain.Client{Intent: domain.IntentRent}), domain.Property{TransactionType: "short_term"})
		assert.Equal(t, 100.0, v.Score)
	})
	t.Run("missing transaction type", func(t *testing.T) {
		v := ScoreTransactionType(prefsOf(domain.Client{Intent: domain.IntentBuy}), domain.Property{})
		assert.Equal(t, 80.0, v.Score)
	})
	t.Run("residential apartment", func(t *testing.T) {
		v := ScorePropertyType(prefsOf(domain.Client{Purpose: domain.PurposeResidential}), domain.Property{PropertyType: domain.PropertyTypeApartment})
		assert.Equal(t, 100.0, v.Score)
	})
	t.Run("residential office", func(t *testing.T) {
		v := ScorePropertyType(prefsOf(domain.Client{Purpose: domain.PurposeResidential}), domain.Property{PropertyType: domain.PropertyTypeOffice})
		assert.Equal(t, 0.0, v.Score)
	})
	t.Run("other property type", func(t *testing.T) {
		v := ScorePropertyType(prefsOf(domain.Client{Purpose: domain.PurposeCommercial}), domain.Property{PropertyType: domain.PropertyTypeOther})
		assert.Equal(t, 50.0, v.Score)
	})
	t.Run("other purpose", func(t *testing.T) {
		v := ScorePropertyType(prefsOf(domain.Client{Purpose: domain.PurposeOther}), domain.Property{PropertyType: domain.PropertyTypeVilla})
		assert.Equal(t, 50.0, v.Score)
	})
}

func TestScoreBedroomsSizeFloor(t *testing.T) {
	tests := []struct {
		name   string
		scorer Scorer
		client domain.Client
		prop   domain.Property
		want   float64
	}{
		{name: "bedrooms two over", scorer: ScoreBedrooms, client: domain.Client{MinBedrooms: ptr(2), MaxBedrooms: ptr(3)}, prop: domain.Property{Bedrooms: ptr(5)}, want: 50},
		{name: "bedrooms inside", scorer: ScoreBedrooms, client: domain.Client{MinBedrooms: ptr(2)}, prop: domain.Property{Bedrooms: ptr(7)}, want: 100},
		{name: "bedrooms far under", scorer: ScoreBedrooms, client: domain.Client{MinBedrooms: ptr(6)}, prop: domain.Property{Bedrooms: ptr(1)}, want: 0},
		{name: "bedrooms unknown", scorer: ScoreBedrooms, client: domain.Client{MinBedrooms: ptr(2)}, prop: domain.Property{}, want: 50},

		{name: "size 20% under", scorer: ScoreSize, client: domain.Client{MinSizeSqm: ptr(100.0)}, prop: domain.Property{SizeSqm: ptr(80.0)}, want: 50},
		{name: "size from area field", scorer: ScoreSize, client: domain.Client{MaxSizeSqm: ptr(100.0)}, prop: domain.Property{AreaSqm: ptr(90.0)}, want: 100},
		{name: "size 40% over", scorer: ScoreSize, client: domain.Client{MaxSizeSqm: ptr(100.0)}, prop: domain.Property{SizeSqm: ptr(140.0)}, want: 0},
		{name: "size unknown", scorer: ScoreSize, client: domain.Client{MaxSizeSqm: ptr(100.0)}, prop: domain.Property{}, want: 50},

		{name: "ground only at ground", scorer: ScoreFloor, client: domain.Client{GroundFloorOnly: ptr(true)}, prop: domain.Property{Floor: "Ground"}, want: 100},
		{name: "ground only at first", scorer: ScoreFloor, client: domain.Client{GroundFloorOnly: ptr(true)}, prop: domain.Property{Floor: "1"}, want: 0},
		{name: "floor two above range", scorer: ScoreFloor, client: domain.Client{MinFloor: ptr(1), MaxFloor: ptr(3)}, prop: domain.Property{Floor: "5th"}, want: 70},
		{name: "basement below range", scorer: ScoreFloor, client: domain.Client{MinFloor: ptr(1)}, prop: domain.Property{Floor: "basement"}, want: 70},
		{name: "floor unparsable", scorer: ScoreFloor, client: domain.Client{MinFloor: ptr(1)}, prop: domain.Property{Floor: "top"}, want: 50},
		{name: "second basement in basement range", scorer: ScoreFloor, client: domain.Client{MinFloor: ptr(-2), MaxFloor: ptr(-1)}, prop: domain.Property{Floor: "Basement 2"}, want: 100},
		{name: "greek basement below ground range", scorer: ScoreFloor, client: domain.Client{MinFloor: ptr(0), MaxFloor: ptr(2)}, prop: domain.Property{Floor: "Υπόγειο 1"}, want: 85},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.scorer(prefsOf(tt.client), tt.prop).Score, 0.001)
		})
	}
}

func TestScoreAmenities(t *testing.T) {
	tests := []struct {
		name        string
		required    []string
		preferred   []string
		has         domain.Amenities
		want        float64
		wantMatched bool
	}{
		{name: "required and preferred both missing", required: []string{"pool"}, preferred: []string{"gym"}, has: nil, want: 0},
		{name: "all required, half preferred", required: []string{"pool"}, preferred: []string{"gym", "balcony"}, has: domain.Amenities{"Swimming pool": true, "Gym": true}, want: 85, wantMatched: true},
		{name: "all required, no preferred", required: []string{"parking"}, has: domain.Amenities{"garage": true}, want: 100, wantMatched: true},
		{name: "only preferred", preferred: []string{"gym", "balcony", "terrace", "garden"}, has: domain.Amenities{"gym": true}, want: 25},
		{name: "no preferences", has: domain.Amenities{"gym": true}, want: 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := domain.Client{RequiredAmenities: tt.required, PreferredAmenities: tt.preferred}
			v := ScoreAmenities(prefsOf(c), domain.Property{Amenities: tt.has})
			assert.InDelta(t, tt.want, v.Score, 0.001)
			assert.Equal(t, tt.wantMatched, v.Matched)
		})
	}
}

func TestScoreAmenities_RequiredGatesScore(t *testing.T) {
	c := domain.Client{
		RequiredAmenities:  []string{"pool", "parking"},
		PreferredAmenities: []string{"gym", "balcony", "terrace"},
	}
	p := domain.Property{Amenities: domain.Amenities{"parking": true, "gym": true, "balcony": true, "terrace": true}}

	v := ScoreAmenities(prefsOf(c), p)
	assert.LessOrEqual(t, v.Score, 70.0)
	assert.InDelta(t, 35, v.Score, 0.001)
	assert.Contains(t, v.Reason, "pool")
}

func TestScoreFeatures(t *testing.T) {
	tests := []struct {
		name   string
		scorer Scorer
		client domain.Client
		prop   domain.Property
		want   float64
	}{
		{name: "condition member", scorer: ScoreCondition, client: domain.Client{ConditionPreferences: []string{"new", "renovated"}}, prop: domain.Property{Condition: "Refurbished"}, want: 100},
		{name: "condition non-member", scorer: ScoreCondition, client: domain.Client{ConditionPreferences: []string{"new"}}, prop: domain.Property{Condition: "needs renovation"}, want: 0},
		{name: "condition unknown", scorer: ScoreCondition, client: domain.Client{ConditionPreferences: []string{"new"}}, prop: domain.Property{Condition: "???"}, want: 50},

		{name: "heating member", scorer: ScoreHeating, client: domain.Client{HeatingPreferences: []string{"heat pump"}}, prop: domain.Property{Heating: "HEAT_PUMP"}, want: 100},
		{name: "heating non-member", scorer: ScoreHeating, client: domain.Client{HeatingPreferences: []string{"gas"}}, prop: domain.Property{Heating: "oil"}, want: 30},
		{name: "heating unknown", scorer: ScoreHeating, client: domain.Client{HeatingPreferences: []string{"gas"}}, prop: domain.Property{}, want: 50},

		{name: "furnished exact", scorer: ScoreFurnished, client: domain.Client{FurnishedPreference: "FULLY"}, prop: domain.Property{Furnished: "furnished"}, want: 100},
		{name: "furnished adjacent", scorer: ScoreFurnished, client: domain.Client{FurnishedPreference: "FULLY"}, prop: domain.Property{Furnished: "partially"}, want: 60},
		{name: "furnished opposite", scorer: ScoreFurnished, client: domain.Client{FurnishedPreference: "UNFURNISHED"}, prop: domain.Property{Furnished: "fully"}, want: 0},
		{name: "furnished any", scorer: ScoreFurnished, client: domain.Client{FurnishedPreference: "ANY"}, prop: domain.Property{Furnished: "fully"}, want: 80},

		{name: "elevator present", scorer: ScoreElevator, client: domain.Client{RequiresElevator: ptr(true)}, prop: domain.Property{Elevator: ptr(true)}, want: 100},
		{name: "elevator absent", scorer: ScoreElevator, client: domain.Client{RequiresElevator: ptr(true)}, prop: domain.Property{Elevator: ptr(false)}, want: 0},
		{name: "elevator from amenities", scorer: ScoreElevator, client: domain.Client{RequiresElevator: ptr(true)}, prop: domain.Property{Amenities: domain.Amenities{"lift": true}}, want: 100},
		{name: "elevator unknown", scorer: ScoreElevator, client: domain.Client{RequiresElevator: ptr(true)}, prop: domain.Property{}, want: 50},
		{name: "elevator flag beats amenity", scorer: ScoreElevator, client: domain.Client{RequiresElevator: ptr(true)}, prop: domain.Property{Elevator: ptr(false), Amenities: domain.Amenities{"lift": true}}, want: 0},

		{name: "pets from amenities", scorer: ScorePetPolicy, client: domain.Client{RequiresPetFriendly: ptr(true)}, prop: domain.Property{Amenities: domain.Amenities{"Pet friendly": true}}, want: 100},
		{name: "pets not allowed", scorer: ScorePetPolicy, client: domain.Client{RequiresPetFriendly: ptr(true)}, prop: domain.Property{PetsAllowed: ptr(false)}, want: 0},

		{name: "parking space property", scorer: ScoreParking, client: domain.Client{RequiresParking: ptr(true)}, prop: domain.Property{PropertyType: "parking_space", Parking: ptr(false)}, want: 100},
		{name: "garage property", scorer: ScoreParking, client: domain.Client{RequiresParking: ptr(true)}, prop: domain.Property{PropertyType: domain.PropertyTypeGarage}, want: 100},
		{name: "parking unknown", scorer: ScoreParking, client: domain.Client{RequiresParking: ptr(true)}, prop: domain.Property{PropertyType: domain.PropertyTypeApartment}, want: 50},

		{name: "energy better", scorer: ScoreEnergyClass, client: domain.Client{MinEnergyClass: "B"}, prop: domain.Property{EnergyClass: "A+"}, want: 100},
		{name: "energy equal", scorer: ScoreEnergyClass, client: domain.Client{MinEnergyClass: "B"}, prop: domain.Property{EnergyClass: "b"}, want: 100},
		{name: "energy worse", scorer: ScoreEnergyClass, client: domain.Client{MinEnergyClass: "B+"}, prop: domain.Property{EnergyClass: "B"}, want: 0},
		{name: "energy in progress", scorer: ScoreEnergyClass, client: domain.Client{MinEnergyClass: "H"}, prop: domain.Property{EnergyClass: "in progress"}, want: 0},
		{name: "energy unknown", scorer: ScoreEnergyClass, client: domain.Client{MinEnergyClass: "C"}, prop: domain.Property{EnergyClass: "n/a"}, want: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.scorer(prefsOf(tt.client), tt.prop).Score)
		})
	}
}

// A client without preferences never scores below the neutral default,
// whatever the property looks like.
func TestScorers_NeutralOnAbsence(t *testing.T) {
	properties := []domain.Property{
		{},
		{
			TransactionType: domain.TransactionRental,
			PropertyType:    domain.PropertyTypeWarehouse,
			Price:           ptr(1e12),
			Bedrooms:        ptr(0),
			SizeSqm:         ptr(5.0),
			Floor:           "-3",
			Amenities:       domain.Amenities{"pool": true},
			Condition:       "needs renovation",
			Furnished:       "unfurnished",
			Heating:         "none",
			EnergyClass:     "H",
			Elevator:        ptr(false),
			PetsAllowed:     ptr(false),
			Parking:         ptr(false),
			City:            "Nowhere",
		},
	}

	prefs := prefsOf(domain.Client{})
	for _, p := range properties {
		for _, s := range scorers {
			v := s.score(prefs, p)
			assert.Equal(t, scoreNoPreference, v.Score, s.criterion)
			assert.NotEmpty(t, v.Reason, s.criterion)
		}
	}
}

func TestScorers_DoNotMutateInputs(t *testing.T) {
	c := domain.Client{
		BudgetMin:         ptr(500.0),
		BudgetMax:         ptr(100.0),
		RequiredAmenities: []string{"Pool"},
		AreasOfInterest:   []string{" Athens "},
	}
	p := domain.Property{Price: ptr(300.0), Amenities: domain.Amenities{"Swimming Pool": true}, City: " ATHENS"}

	prefs := ExtractPreferences(c)
	for _, s := range scorers {
		s.score(prefs, p)
	}

	assert.Equal(t, 500.0, *c.BudgetMin)
	assert.Equal(t, 100.0, *c.BudgetMax)
	assert.Equal(t, []string{"Pool"}, c.RequiredAmenities)
	assert.Equal(t, []string{" Athens "}, c.AreasOfInterest)
	assert.Equal(t, domain.Amenities{"Swimming Pool": true}, p.Amenities)
	assert.Equal(t, " ATHENS", p.City)
}

// Every sub-score and the overall score stay within [0, 100] however
// extreme the inputs get.
func TestScores_StayInRange(t *testing.T) {
	clients := []domain.Client{
		{},
		{
			Intent:          domain.IntentRent,
			Purpose:         domain.PurposeCommercial,
			BudgetMin:       ptr(1e-6),
			BudgetMax:       ptr(1.0),
			MinBedrooms:     ptr(50),
			MinSizeSqm:      ptr(0.1),
			MaxSizeSqm:      ptr(0.2),
			MinFloor:        ptr(40),
			MaxFloor:        ptr(60),
			AreasOfInterest: []string{"Glyfada"},
		},
		{
			Intent:             domain.IntentBuy,
			Purpose:            domain.PurposeResidential,
			BudgetMin:          ptr(1e12),
			MaxBedrooms:        ptr(0),
			MinSizeSqm:         ptr(1e6),
			GroundFloorOnly:    ptr(true),
			RequiredAmenities:  []string{"pool", "gym", "sauna"},
			PreferredAmenities: []string{"balcony"},
			MinEnergyClass:     "A+",
			RequiresElevator:   ptr(true),
			RequiresParking:    ptr(true),
		},
	}

	prices := []*float64{nil, ptr(0.0), ptr(-5.0), ptr(1.0), ptr(1e15), ptr(math.Inf(1))}
	sizes := []*float64{nil, ptr(-10.0), ptr(0.5), ptr(1e9)}
	floors := []string{"", "-50", "999", "B 9", "ground"}
	bedrooms := []*int{nil, ptr(-3), ptr(0), ptr(1000)}

	e := NewEngine(DefaultWeights(), nil)
	for _, c := range clients {
		for _, price := range prices {
			for _, size := range sizes {
				for _, floor := range floors {
					for _, beds := range bedrooms {
						p := domain.Property{
							TransactionType: domain.TransactionSale,
							PropertyType:    domain.PropertyTypeOffice,
							Price:           price,
							SizeSqm:         size,
							Floor:           floor,
							Bedrooms:        beds,
							City:            "Athens",
						}
						r := e.CalculateMatchScore(c, p)
						for _, cs := range r.Breakdown {
							assert.GreaterOrEqual(t, cs.Score, 0.0, cs.Criterion)
							assert.LessOrEqual(t, cs.Score, 100.0, cs.Criterion)
						}
						assert.GreaterOrEqual(t, r.OverallScore, 0.0)
						assert.LessOrEqual(t, r.OverallScore, 100.0)
					}
				}
			}
		}
	}
}
