package matching

import (
	"fmt"

	"github.com/denisok6893-rgb/property-matchmaking/internal/domain"
)

const (
	furnishedAdjacent    = 60.0
	heatingOtherwise     = 30.0
	conditionOtherwise   = 0.0
	requirementUnmet     = 0.0
	requirementSatisfied = 100.0
)

func ScoreCondition(prefs Preferences, p domain.Property) Verdict {
	if len(prefs.Conditions) == 0 {
		return neutral("No condition preference")
	}
	cond := NormalizeCondition(p.Condition)
	if cond == domain.ConditionUnspecified {
		return unknown("Condition not listed")
	}
	if contains(prefs.Conditions, cond) {
		return Verdict{Score: 100, Reason: fmt.Sprintf("Condition %s as preferred", cond)}
	}
	return Verdict{Score: conditionOtherwise, Reason: fmt.Sprintf("Condition %s not preferred", cond)}
}

func ScoreHeating(prefs Preferences, p domain.Property) Verdict {
	if len(prefs.Heating) == 0 {
		return neutral("No heating preference")
	}
	heating := NormalizeHeating(p.Heating)
	if heating == domain.HeatingUnspecified {
		return unknown("Heating not listed")
	}
	if contains(prefs.Heating, heating) {
		return Verdict{Score: 100, Reason: fmt.Sprintf("%s heating as preferred", heating)}
	}
	return Verdict{Score: heatingOtherwise, Reason: fmt.Sprintf("%s heating not preferred", heating)}
}

// ScoreFurnished treats fully and partially furnished as adjacent categories.
func ScoreFurnished(prefs Preferences, p domain.Property) Verdict {
	want := prefs.Furnished
	if want == domain.FurnishedUnspecified || want == domain.FurnishedAny {
		return neutral("No furnishing preference")
	}
	have := NormalizeFurnished(p.Furnished)
	if have == domain.FurnishedUnspecified || have == domain.FurnishedAny {
		return unknown("Furnishing not listed")
	}
	switch {
	case have == want:
		return Verdict{Score: 100, Reason: fmt.Sprintf("%s furnished as preferred", have)}
	case isFurnished(have) && isFurnished(want):
		return Verdict{Score: furnishedAdjacent, Reason: fmt.Sprintf("%s furnished, client prefers %s", have, want)}
	default:
		return Verdict{Score: 0, Reason: fmt.Sprintf("%s, client prefers %s", have, want)}
	}
}

func isFurnished(f domain.Furnished) bool {
	return f == domain.FurnishedFully || f == domain.FurnishedPartially
}

func ScoreElevator(prefs Preferences, p domain.Property) Verdict {
	return requirement(prefs.RequiresElevator, featureFlag(p.Elevator, p, "elevator"), "elevator")
}

func ScorePetPolicy(prefs Preferences, p domain.Property) Verdict {
	return requirement(prefs.RequiresPetFriendly, featureFlag(p.PetsAllowed, p, "pets_allowed"), "pet-friendly")
}

// ScoreParking also accepts a property that is itself a parking space or garage.
func ScoreParking(prefs Preferences, p domain.Property) Verdict {
	if prefs.RequiresParking {
		switch propertyTypeOf(p) {
		case domain.PropertyTypeParkingSpace, domain.PropertyTypeGarage:
			return Verdict{Score: requirementSatisfied, Reason: "Property is a parking space"}
		}
	}
	return requirement(prefs.RequiresParking, featureFlag(p.Parking, p, "parking"), "parking")
}

// ScoreEnergyClass compares certificate ranks; A+ is the best and
// IN_PROGRESS the worst.
func ScoreEnergyClass(prefs Preferences, p domain.Property) Verdict {
	if prefs.MinEnergyClass == domain.EnergyUnspecified {
		return neutral("No energy class requirement")
	}
	have := NormalizeEnergyClass(p.EnergyClass)
	if have == domain.EnergyUnspecified {
		return unknown("Energy class not listed")
	}
	if energyRank[have] >= energyRank[prefs.MinEnergyClass] {
		return Verdict{Score: 100, Reason: fmt.Sprintf("Energy class %s meets minimum %s", have, prefs.MinEnergyClass)}
	}
	return Verdict{Score: 0, Reason: fmt.Sprintf("Energy class %s below minimum %s", have, prefs.MinEnergyClass)}
}

// requirement scores a boolean client requirement against a property flag
// that may be unknown.
func requirement(required bool, has *bool, label string) Verdict {
	if !required {
		return neutral("No " + label + " requirement")
	}
	if has == nil {
		return unknown("No data on " + label)
	}
	if *has {
		return Verdict{Score: requirementSatisfied, Reason: "Has " + label}
	}
	return Verdict{Score: requirementUnmet, Reason: "No " + label}
}

// featureFlag prefers the explicit property flag and falls back to the amenity list.
func featureFlag(flag *bool, p domain.Property, amenity string) *bool {
	if flag != nil {
		v := *flag
		return &v
	}
	if PropertyAmenities(p)[amenity] {
		v := true
		return &v
	}
	return nil
}

func contains[T comparable](values []T, v T) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
