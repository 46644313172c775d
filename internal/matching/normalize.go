package matching

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/denisok6893-rgb/property-matchmaking/internal/domain"
)

// Number is the set of types a Range can hold.
type Number interface {
	~int | ~float64
}

// Range is an inclusive interval whose bounds may each be absent.
type Range[T Number] struct {
	Min *T
	Max *T
}

// IsEmpty reports whether neither bound is set.
func (r Range[T]) IsEmpty() bool {
	return r.Min == nil && r.Max == nil
}

// Contains reports whether v lies within the set bounds.
func (r Range[T]) Contains(v T) bool {
	if r.Min != nil && v < *r.Min {
		return false
	}
	if r.Max != nil && v > *r.Max {
		return false
	}
	return true
}

// Outside returns how far v lies outside the range and the bound it was
// measured from. A zero distance means v is within the range.
func (r Range[T]) Outside(v T) (distance, bound T) {
	if r.Min != nil && v < *r.Min {
		return *r.Min - v, *r.Min
	}
	if r.Max != nil && v > *r.Max {
		return v - *r.Max, *r.Max
	}
	return 0, v
}

// newRange copies the bounds that pass keep and orders them.
func newRange[T Number](min, max *T, keep func(T) bool) Range[T] {
	var r Range[T]
	if min != nil && keep(*min) {
		v := *min
		r.Min = &v
	}
	if max != nil && keep(*max) {
		v := *max
		r.Max = &v
	}
	if r.Min != nil && r.Max != nil && *r.Min > *r.Max {
		r.Min, r.Max = r.Max, r.Min
	}
	return r
}

func positive[T Number](v T) bool    { return v > 0 }
func nonNegative[T Number](v T) bool { return v >= 0 }
func anyValue[T Number](T) bool      { return true }

// FloorMode distinguishes "no floor preference", "ground floor only" and a floor range.
type FloorMode int

const (
	FloorAny FloorMode = iota
	FloorGroundOnly
	FloorRange
)

type FloorPreference struct {
	Mode  FloorMode
	Range Range[int]
}

// Preferences is the normalized form of everything a client asks for.
type Preferences struct {
	Intent  domain.Intent
	Purpose domain.Purpose

	Budget    Range[float64]
	Bedrooms  Range[int]
	Bathrooms Range[int]
	Size      Range[float64]
	Floor     FloorPreference

	Areas              []string
	RequiredAmenities  []string
	PreferredAmenities []string

	Conditions     []domain.Condition
	Heating        []domain.Heating
	Furnished      domain.Furnished
	MinEnergyClass domain.EnergyClass

	RequiresElevator    bool
	RequiresPetFriendly bool
	RequiresParking     bool
}

// ExtractPreferences collects all matching preferences of c.
func ExtractPreferences(c domain.Client) Preferences {
	required, preferred := ParseAmenityPreferences(c)
	return Preferences{
		Intent:              domain.Intent(strings.ToUpper(strings.TrimSpace(string(c.Intent)))),
		Purpose:             domain.Purpose(strings.ToUpper(strings.TrimSpace(string(c.Purpose)))),
		Budget:              BudgetRange(c),
		Bedrooms:            BedroomRange(c),
		Bathrooms:           newRange(c.MinBathrooms, c.MaxBathrooms, nonNegative[int]),
		Size:                SizeRange(c),
		Floor:               FloorPreferenceOf(c),
		Areas:               ParseAreasOfInterest(c.AreasOfInterest),
		RequiredAmenities:   required,
		PreferredAmenities:  preferred,
		Conditions:          normalizeAll(c.ConditionPreferences, NormalizeCondition),
		Heating:             normalizeAll(c.HeatingPreferences, NormalizeHeating),
		Furnished:           NormalizeFurnished(c.FurnishedPreference),
		MinEnergyClass:      NormalizeEnergyClass(c.MinEnergyClass),
		RequiresElevator:    isTrue(c.RequiresElevator),
		RequiresPetFriendly: isTrue(c.RequiresPetFriendly),
		RequiresParking:     isTrue(c.RequiresParking),
	}
}

// BudgetRange ignores non-positive bounds, which CRMs use for "not set".
func BudgetRange(c domain.Client) Range[float64] {
	return newRange(c.BudgetMin, c.BudgetMax, positive[float64])
}

func BedroomRange(c domain.Client) Range[int] {
	return newRange(c.MinBedrooms, c.MaxBedrooms, nonNegative[int])
}

func SizeRange(c domain.Client) Range[float64] {
	return newRange(c.MinSizeSqm, c.MaxSizeSqm, positive[float64])
}

// FloorPreferenceOf returns the client's floor preference. Ground-floor-only
// wins over any range the client also filled in.
func FloorPreferenceOf(c domain.Client) FloorPreference {
	if isTrue(c.GroundFloorOnly) {
		return FloorPreference{Mode: FloorGroundOnly}
	}
	r := newRange(c.MinFloor, c.MaxFloor, anyValue[int])
	if r.IsEmpty() {
		return FloorPreference{Mode: FloorAny}
	}
	return FloorPreference{Mode: FloorRange, Range: r}
}

// PropertySizeSqm returns the property size, preferring SizeSqm over AreaSqm.
func PropertySizeSqm(p domain.Property) *float64 {
	for _, v := range []*float64{p.SizeSqm, p.AreaSqm} {
		if v != nil && *v > 0 {
			size := *v
			return &size
		}
	}
	return nil
}

var (
	groundFloors = map[string]bool{
		"0": true, "g": true, "gf": true, "ground": true, "ground floor": true,
		"ισογειο": true, "pilotis": true,
	}
	basementFloors = map[string]bool{
		"b": true, "basement": true, "semi basement": true, "lower ground": true,
		"lg": true, "sb": true, "υπογειο": true, "ημιυπογειο": true,
	}
	// basementLevel matches "b2", "b 2", "basement level 2" and "υπογειο 1" after folding.
	basementLevel = regexp.MustCompile(`^(?:b|(?:semi )?basement|υπογειο|ημιυπογειο)(?:\s+\D*?)?(\d+)$`)
	floorNumber   = regexp.MustCompile(`-?\d+`)
	minusSigns    = strings.NewReplacer("\u2212", "-", "\u2013", "-", "\u2012", "-")
)

// ParseFloor parses a raw floor label into a signed floor number.
// It returns nil when the label cannot be understood.
func ParseFloor(raw string) *int {
	s := foldText(minusSigns.Replace(raw))
	if s == "" {
		return nil
	}
	// Word lookups ignore separators; the numeric fallback must keep the minus sign.
	word := foldKey(s)
	var floor int
	switch {
	case groundFloors[word]:
		floor = 0
	case basementFloors[word]:
		floor = -1
	case basementLevel.MatchString(word):
		n, err := strconv.Atoi(basementLevel.FindStringSubmatch(word)[1])
		if err != nil {
			return nil
		}
		floor = -n
	default:
		m := floorNumber.FindString(s)
		if m == "" {
			return nil
		}
		n, err := strconv.Atoi(m)
		if err != nil {
			return nil
		}
		floor = n
	}
	return &floor
}

var locationSeparators = strings.NewReplacer(";", ",", "|", ",", "/", ",")

// splitLocations folds each entry and splits comma separated lists.
func splitLocations(values ...string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(locationSeparators.Replace(v), ",") {
			token := foldText(part)
			if token == "" || seen[token] {
				continue
			}
			seen[token] = true
			out = append(out, token)
		}
	}
	return out
}

// ParseAreasOfInterest normalizes a client's free-text areas into location tokens.
func ParseAreasOfInterest(areas []string) []string {
	return splitLocations(areas...)
}

// PropertyLocations returns the comparable location tokens of a property.
func PropertyLocations(p domain.Property) []string {
	return splitLocations(p.Area, p.City, p.Location)
}

// amenitySynonyms maps folded amenity names to the canonical vocabulary.
var amenitySynonyms = map[string]string{
	"pool":                 "pool",
	"swimming pool":        "pool",
	"swimmingpool":         "pool",
	"gym":                  "gym",
	"fitness":              "gym",
	"fitness center":       "gym",
	"fitness centre":       "gym",
	"balcony":              "balcony",
	"balconies":            "balcony",
	"veranda":              "balcony",
	"terrace":              "terrace",
	"roof terrace":         "terrace",
	"garden":               "garden",
	"yard":                 "garden",
	"private garden":       "garden",
	"parking":              "parking",
	"parking space":        "parking",
	"parking spot":         "parking",
	"garage":               "parking",
	"storage":              "storage",
	"storage room":         "storage",
	"storeroom":            "storage",
	"air conditioning":     "air_conditioning",
	"airconditioning":      "air_conditioning",
	"aircon":               "air_conditioning",
	"ac":                   "air_conditioning",
	"a/c":                  "air_conditioning",
	"fireplace":            "fireplace",
	"elevator":             "elevator",
	"lift":                 "elevator",
	"security":             "security",
	"alarm":                "security",
	"security system":      "security",
	"sea view":             "sea_view",
	"seaview":              "sea_view",
	"view":                 "view",
	"solar water heater":   "solar_water_heater",
	"solar heater":         "solar_water_heater",
	"double glazing":       "double_glazing",
	"double glazed":        "double_glazing",
	"playground":           "playground",
	"wheelchair access":    "accessible",
	"disabled access":      "accessible",
	"accessible":           "accessible",
	"concierge":            "concierge",
	"doorman":              "concierge",
	"furnished kitchen":    "fitted_kitchen",
	"fitted kitchen":       "fitted_kitchen",
	"washing machine":      "washing_machine",
	"dishwasher":           "dishwasher",
	"internet":             "internet",
	"wifi":                 "internet",
	"wi fi":                "internet",
	"underfloor heating":   "underfloor_heating",
	"floor heating":        "underfloor_heating",
	"awnings":              "awnings",
	"bbq":                  "bbq",
	"barbecue":             "bbq",
	"jacuzzi":              "jacuzzi",
	"hot tub":              "jacuzzi",
	"pets allowed":         "pets_allowed",
	"pet friendly":         "pets_allowed",
	"electric car charger": "ev_charger",
	"ev charger":           "ev_charger",
}

// CanonicalAmenity folds an amenity name and maps known synonyms onto one key.
// Unknown amenities keep their folded name with spaces as underscores.
func CanonicalAmenity(raw string) string {
	key := foldKey(raw)
	if key == "" {
		return ""
	}
	if canonical, ok := amenitySynonyms[key]; ok {
		return canonical
	}
	return strings.ReplaceAll(key, " ", "_")
}

// PropertyAmenities returns the canonical set of amenities the property has.
func PropertyAmenities(p domain.Property) map[string]bool {
	out := make(map[string]bool, len(p.Amenities))
	for raw, present := range p.Amenities {
		if !present {
			continue
		}
		if key := CanonicalAmenity(raw); key != "" {
			out[key] = true
		}
	}
	return out
}

// ParseAmenityPreferences returns the client's canonical required and
// preferred amenities. An amenity listed as both counts as required only.
func ParseAmenityPreferences(c domain.Client) (required, preferred []string) {
	seen := make(map[string]bool)
	collect := func(raw []string) []string {
		var out []string
		for _, r := range raw {
			key := CanonicalAmenity(r)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, key)
		}
		return out
	}
	required = collect(c.RequiredAmenities)
	preferred = collect(c.PreferredAmenities)
	return required, preferred
}

var heatingSynonyms = map[string]domain.Heating{
	"autonomous":          domain.HeatingAutonomous,
	"independent":         domain.HeatingAutonomous,
	"individual":          domain.HeatingAutonomous,
	"central":             domain.HeatingCentral,
	"central heating":     domain.HeatingCentral,
	"heat pump":           domain.HeatingHeatPump,
	"heatpump":            domain.HeatingHeatPump,
	"gas":                 domain.HeatingGas,
	"natural gas":         domain.HeatingGas,
	"oil":                 domain.HeatingOil,
	"diesel":              domain.HeatingOil,
	"heating oil":         domain.HeatingOil,
	"petroleum":           domain.HeatingOil,
	"electric":            domain.HeatingElectric,
	"electrical":          domain.HeatingElectric,
	"electricity":         domain.HeatingElectric,
	"solar":               domain.HeatingSolar,
	"geothermal":          domain.HeatingGeothermal,
	"underfloor":          domain.HeatingUnderfloor,
	"underfloor heating":  domain.HeatingUnderfloor,
	"floor heating":       domain.HeatingUnderfloor,
	"fireplace":           domain.HeatingFireplace,
	"wood":                domain.HeatingFireplace,
	"stove":               domain.HeatingFireplace,
	"none":                domain.HeatingNone,
	"no heating":          domain.HeatingNone,
	"without heating":     domain.HeatingNone,
	"autonomous heating":  domain.HeatingAutonomous,
	"electric heating":    domain.HeatingElectric,
	"gas heating":         domain.HeatingGas,
	"oil heating":         domain.HeatingOil,
	"heat pump heating":   domain.HeatingHeatPump,
	"geothermal heating":  domain.HeatingGeothermal,
	"solar heating":       domain.HeatingSolar,
	"fireplace heating":   domain.HeatingFireplace,
	"independent heating": domain.HeatingAutonomous,
}

// NormalizeHeating maps free-text heating descriptions to a heating type.
func NormalizeHeating(raw string) domain.Heating {
	return heatingSynonyms[foldKey(raw)]
}

var conditionSynonyms = map[string]domain.Condition{
	"new":                domain.ConditionNew,
	"brand new":          domain.ConditionNew,
	"newly built":        domain.ConditionNew,
	"new build":          domain.ConditionNew,
	"excellent":          domain.ConditionExcellent,
	"like new":           domain.ConditionExcellent,
	"mint":               domain.ConditionExcellent,
	"good":               domain.ConditionGood,
	"very good":          domain.ConditionGood,
	"well maintained":    domain.ConditionGood,
	"renovated":          domain.ConditionRenovated,
	"refurbished":        domain.ConditionRenovated,
	"fully renovated":    domain.ConditionRenovated,
	"needs renovation":   domain.ConditionNeedsRenovation,
	"to renovate":        domain.ConditionNeedsRenovation,
	"renovation needed":  domain.ConditionNeedsRenovation,
	"fixer upper":        domain.ConditionNeedsRenovation,
	"poor":               domain.ConditionNeedsRenovation,
	"under construction": domain.ConditionUnderConstruction,
	"off plan":           domain.ConditionUnderConstruction,
	"unfinished":         domain.ConditionUnderConstruction,
}

// NormalizeCondition maps free-text condition descriptions to a condition.
func NormalizeCondition(raw string) domain.Condition {
	return conditionSynonyms[foldKey(raw)]
}

var furnishedSynonyms = map[string]domain.Furnished{
	"fully":               domain.FurnishedFully,
	"fully furnished":     domain.FurnishedFully,
	"furnished":           domain.FurnishedFully,
	"yes":                 domain.FurnishedFully,
	"partially":           domain.FurnishedPartially,
	"partially furnished": domain.FurnishedPartially,
	"partly":              domain.FurnishedPartially,
	"partly furnished":    domain.FurnishedPartially,
	"semi":                domain.FurnishedPartially,
	"semi furnished":      domain.FurnishedPartially,
	"unfurnished":         domain.FurnishedNone,
	"not furnished":       domain.FurnishedNone,
	"no":                  domain.FurnishedNone,
	"none":                domain.FurnishedNone,
	"any":                 domain.FurnishedAny,
	"either":              domain.FurnishedAny,
	"no preference":       domain.FurnishedAny,
}

// NormalizeFurnished maps a furnishing label to a furnished status.
func NormalizeFurnished(raw string) domain.Furnished {
	return furnishedSynonyms[foldKey(raw)]
}

var energySeparators = strings.NewReplacer(" ", "", "_", "", "-", "")

// NormalizeEnergyClass maps certificate labels such as "a+", "A_PLUS" or
// "Class B" to an energy class.
func NormalizeEnergyClass(raw string) domain.EnergyClass {
	key := strings.ToUpper(energySeparators.Replace(foldText(raw)))
	key = strings.TrimPrefix(key, "CLASS")
	switch key {
	case "A+", "APLUS":
		return domain.EnergyAPlus
	case "B+", "BPLUS":
		return domain.EnergyBPlus
	case "A", "B", "C", "D", "E", "F", "G", "H":
		return domain.EnergyClass(key)
	case "INPROGRESS", "PENDING":
		return domain.EnergyInProgress
	default:
		return domain.EnergyUnspecified
	}
}

// normalizeAll maps raw values through fn and drops unknown and duplicate results.
func normalizeAll[T ~string](raw []string, fn func(string) T) []T {
	var out []T
	seen := make(map[T]bool)
	for _, r := range raw {
		v := fn(r)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func isTrue(b *bool) bool {
	return b != nil && *b
}
