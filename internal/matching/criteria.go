package matching

import (
	"fmt"
	"math"
	"strings"

	"github.com/denisok6893-rgb/property-matchmaking/internal/domain"
)

// Verdict is the unweighted outcome of one criterion scorer.
type Verdict struct {
	Score float64
	// Matched lets a scorer count as matched below the usual threshold.
	Matched bool
	Reason  string
}

// Scorer rates one criterion for a client/property pair. Scorers never
// mutate their inputs and always return a score in [0, 100].
type Scorer func(prefs Preferences, p domain.Property) Verdict

// scorers is the fixed evaluation order of the breakdown.
var scorers = []struct {
	criterion domain.Criterion
	score     Scorer
}{
	{domain.CriterionBudget, ScoreBudget},
	{domain.CriterionLocation, ScoreLocation},
	{domain.CriterionTransactionType, ScoreTransactionType},
	{domain.CriterionPropertyType, ScorePropertyType},
	{domain.CriterionBedrooms, ScoreBedrooms},
	{domain.CriterionSize, ScoreSize},
	{domain.CriterionAmenities, ScoreAmenities},
	{domain.CriterionCondition, ScoreCondition},
	{domain.CriterionFurnished, ScoreFurnished},
	{domain.CriterionFloor, ScoreFloor},
	{domain.CriterionElevator, ScoreElevator},
	{domain.CriterionPetPolicy, ScorePetPolicy},
	{domain.CriterionHeating, ScoreHeating},
	{domain.CriterionEnergyClass, ScoreEnergyClass},
	{domain.CriterionParking, ScoreParking},
}

const (
	// budgetOverLimit is the percentage over the maximum at which the budget score hits 0.
	budgetOverLimit = 30.0
	// budgetUnderLimit is the percentage under the minimum at which the budget score bottoms out.
	budgetUnderLimit = 50.0
	budgetUnderFloor = 70.0

	locationPartial = 75.0
)

func neutral(reason string) Verdict { return Verdict{Score: scoreNoPreference, Reason: reason} }

func unknown(reason string) Verdict { return Verdict{Score: scoreUnknown, Reason: reason} }

// ScoreBudget gives 100 inside the budget, decays to 0 at 30% over the
// maximum and to a floor of 70 at 50% under the minimum.
func ScoreBudget(prefs Preferences, p domain.Property) Verdict {
	b := prefs.Budget
	if b.IsEmpty() {
		return neutral("No budget preference")
	}
	if p.Price == nil || *p.Price < 0 {
		return unknown("Price not listed")
	}
	price := *p.Price

	if b.Max != nil && price > *b.Max {
		over := (price - *b.Max) / *b.Max * 100
		return Verdict{
			Score:  clampScore(100 - over/budgetOverLimit*100),
			Reason: fmt.Sprintf("Price %.1f%% over budget", over),
		}
	}
	if b.Min != nil && price < *b.Min {
		under := (*b.Min - price) / *b.Min * 100
		score := 100 - under/budgetUnderLimit*(100-budgetUnderFloor)
		return Verdict{
			Score:   clampScore(math.Max(budgetUnderFloor, score)),
			Matched: true,
			Reason:  fmt.Sprintf("Price %.1f%% below minimum budget", under),
		}
	}
	return Verdict{Score: 100, Reason: "Price within budget"}
}

// ScoreLocation compares the client's areas of interest with the property's
// location tokens: exact token 100, substring either way 75, otherwise 0.
func ScoreLocation(prefs Preferences, p domain.Property) Verdict {
	if len(prefs.Areas) == 0 {
		return neutral("No location preference")
	}
	locations := PropertyLocations(p)
	if len(locations) == 0 {
		return unknown("Property location not specified")
	}

	for _, area := range prefs.Areas {
		for _, loc := range locations {
			if area == loc {
				return Verdict{Score: 100, Reason: fmt.Sprintf("Located in preferred area %q", loc)}
			}
		}
	}
	for _, area := range prefs.Areas {
		for _, loc := range locations {
			if strings.Contains(loc, area) || strings.Contains(area, loc) {
				return Verdict{
					Score:   locationPartial,
					Matched: true,
					Reason:  fmt.Sprintf("Location %q partially matches %q", loc, area),
				}
			}
		}
	}
	return Verdict{Score: 0, Reason: "Outside preferred areas"}
}

// ScoreTransactionType checks the property's transaction type against the
// types acceptable for the client's intent.
func ScoreTransactionType(prefs Preferences, p domain.Property) Verdict {
	tx := transactionTypeOf(p)
	if _, known := intentTransactions[prefs.Intent]; !known {
		return neutral("No intent specified")
	}
	if tx == domain.TransactionUnspecified {
		return neutral("Transaction type not specified")
	}
	if AcceptsTransaction(prefs.Intent, tx) {
		return Verdict{Score: 100, Reason: fmt.Sprintf("%s suits intent %s", tx, prefs.Intent)}
	}
	return Verdict{Score: 0, Reason: fmt.Sprintf("%s does not suit intent %s", tx, prefs.Intent)}
}

// ScorePropertyType checks the property type against the types acceptable
// for the client's purpose. OTHER on either side is a generic 50.
func ScorePropertyType(prefs Preferences, p domain.Property) Verdict {
	pt := propertyTypeOf(p)
	if _, known := purposeTypes[prefs.Purpose]; !known {
		return neutral("No purpose specified")
	}
	if pt == domain.PropertyTypeUnspecified {
		return neutral("Property type not specified")
	}
	if prefs.Purpose == domain.PurposeOther || pt == domain.PropertyTypeOther {
		return Verdict{Score: scoreGenericType, Reason: "Generic property category"}
	}
	if AcceptsPropertyType(prefs.Purpose, pt) {
		return Verdict{Score: 100, Reason: fmt.Sprintf("%s suits %s purpose", pt, prefs.Purpose)}
	}
	return Verdict{Score: 0, Reason: fmt.Sprintf("%s does not suit %s purpose", pt, prefs.Purpose)}
}

func transactionTypeOf(p domain.Property) domain.TransactionType {
	return domain.TransactionType(strings.ToUpper(strings.TrimSpace(string(p.TransactionType))))
}

func propertyTypeOf(p domain.Property) domain.PropertyType {
	return domain.PropertyType(strings.ToUpper(strings.TrimSpace(string(p.PropertyType))))
}

// clampScore bounds v to [0, 100]; NaN becomes 0.
func clampScore(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(100, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
