package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/denisok6893-rgb/property-matchmaking/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func TestParseFloor(t *testing.T) {
	tests := []struct {
		raw  string
		want *int
	}{
		{raw: "3", want: ptr(3)},
		{raw: " 12 ", want: ptr(12)},
		{raw: "3rd floor", want: ptr(3)},
		{raw: "-1", want: ptr(-1)},
		{raw: "Ground", want: ptr(0)},
		{raw: "ground_floor", want: ptr(0)},
		{raw: "GF", want: ptr(0)},
		{raw: "Ισόγειο", want: ptr(0)},
		{raw: "Basement", want: ptr(-1)},
		{raw: "semi-basement", want: ptr(-1)},
		{raw: "B2", want: ptr(-2)},
		{raw: "B 2", want: ptr(-2)},
		{raw: "B-3", want: ptr(-3)},
		{raw: "Basement 2", want: ptr(-2)},
		{raw: "basement_level_1", want: ptr(-1)},
		{raw: "Υπόγειο 1", want: ptr(-1)},
		{raw: "\u22121", want: ptr(-1)},
		{raw: "Semi-basement 1", want: ptr(-1)},
		{raw: "\u20132", want: ptr(-2)},
		{raw: "", want: nil},
		{raw: "penthouse", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseFloor(tt.raw))
		})
	}
}

func TestNormalizeEnergyClass(t *testing.T) {
	tests := map[string]domain.EnergyClass{
		"a+":          domain.EnergyAPlus,
		"A_PLUS":      domain.EnergyAPlus,
		"Class B":     domain.EnergyB,
		"b+":          domain.EnergyBPlus,
		" h ":         domain.EnergyH,
		"in progress": domain.EnergyInProgress,
		"pending":     domain.EnergyInProgress,
		"Z":           domain.EnergyUnspecified,
		"":            domain.EnergyUnspecified,
	}
	for raw, want := range tests {
		assert.Equal(t, want, NormalizeEnergyClass(raw), raw)
	}
}

func TestNormalizeEnums(t *testing.T) {
	assert.Equal(t, domain.HeatingHeatPump, NormalizeHeating("Heat-Pump"))
	assert.Equal(t, domain.HeatingAutonomous, NormalizeHeating("independent heating"))
	assert.Equal(t, domain.HeatingUnspecified, NormalizeHeating("plasma"))

	assert.Equal(t, domain.ConditionNeedsRenovation, NormalizeCondition("NEEDS_RENOVATION"))
	assert.Equal(t, domain.ConditionExcellent, NormalizeCondition("Like new"))
	assert.Equal(t, domain.ConditionUnspecified, NormalizeCondition("?"))

	assert.Equal(t, domain.FurnishedPartially, NormalizeFurnished("semi-furnished"))
	assert.Equal(t, domain.FurnishedNone, NormalizeFurnished("UNFURNISHED"))
	assert.Equal(t, domain.FurnishedAny, NormalizeFurnished("any"))
}

func TestCanonicalAmenity(t *testing.T) {
	tests := map[string]string{
		"Swimming Pool":   "pool",
		"swimming_pool":   "pool",
		"LIFT":            "elevator",
		"A/C":             "air_conditioning",
		"Pet-Friendly":    "pets_allowed",
		"Solar Panels":    "solar_panels",
		"  ":              "",
		"Fitness Centre":  "gym",
		"parking_space":   "parking",
		"Private Garden ": "garden",
	}
	for raw, want := range tests {
		assert.Equal(t, want, CanonicalAmenity(raw), raw)
	}
}

func TestParseAmenityPreferences(t *testing.T) {
	c := domain.Client{
		RequiredAmenities:  []string{"Pool", "swimming pool", "lift"},
		PreferredAmenities: []string{"elevator", "gym", "Fitness"},
	}
	required, preferred := ParseAmenityPreferences(c)
	assert.Equal(t, []string{"pool", "elevator"}, required)
	assert.Equal(t, []string{"gym"}, preferred)
}

func TestPropertyAmenities(t *testing.T) {
	p := domain.Property{Amenities: domain.Amenities{"Swimming Pool": true, "Garage": true, "gym": false}}
	assert.Equal(t, map[string]bool{"pool": true, "parking": true}, PropertyAmenities(p))
	assert.Empty(t, PropertyAmenities(domain.Property{}))
}

func TestLocations(t *testing.T) {
	assert.Equal(t, []string{"κηφισια", "marousi", "glyfada"},
		ParseAreasOfInterest([]string{"  Κηφισιά ", "Marousi; GLYFADA", "κηφισια/"}))

	p := domain.Property{Area: "Kolonaki", City: "Athens", Location: "athens, Greece"}
	assert.Equal(t, []string{"kolonaki", "athens", "greece"}, PropertyLocations(p))
	assert.Empty(t, PropertyLocations(domain.Property{}))
}

func TestRanges(t *testing.T) {
	t.Run("non-positive budget bounds are absent", func(t *testing.T) {
		r := BudgetRange(domain.Client{BudgetMin: ptr(0.0), BudgetMax: ptr(-5.0)})
		assert.True(t, r.IsEmpty())
	})

	t.Run("reversed bounds are swapped", func(t *testing.T) {
		r := BedroomRange(domain.Client{MinBedrooms: ptr(4), MaxBedrooms: ptr(2)})
		require.NotNil(t, r.Min)
		require.NotNil(t, r.Max)
		assert.Equal(t, 2, *r.Min)
		assert.Equal(t, 4, *r.Max)
	})

	t.Run("outside distance", func(t *testing.T) {
		r := SizeRange(domain.Client{MinSizeSqm: ptr(80.0), MaxSizeSqm: ptr(120.0)})
		d, bound := r.Outside(60)
		assert.Equal(t, 20.0, d)
		assert.Equal(t, 80.0, bound)
		d, _ = r.Outside(100)
		assert.Zero(t, d)
		assert.True(t, r.Contains(120))
		assert.False(t, r.Contains(121))
	})

	t.Run("client inputs are not aliased", func(t *testing.T) {
		c := domain.Client{BudgetMax: ptr(100.0)}
		r := BudgetRange(c)
		*r.Max = 1
		assert.Equal(t, 100.0, *c.BudgetMax)
	})
}

func TestFloorPreferenceOf(t *testing.T) {
	assert.Equal(t, FloorAny, FloorPreferenceOf(domain.Client{}).Mode)

	ground := FloorPreferenceOf(domain.Client{GroundFloorOnly: ptr(true), MinFloor: ptr(2)})
	assert.Equal(t, FloorGroundOnly, ground.Mode)

	r := FloorPreferenceOf(domain.Client{GroundFloorOnly: ptr(false), MinFloor: ptr(-1)})
	assert.Equal(t, FloorRange, r.Mode)
	require.NotNil(t, r.Range.Min)
	assert.Equal(t, -1, *r.Range.Min)
}

func TestPropertySizeSqm(t *testing.T) {
	assert.Equal(t, ptr(90.0), PropertySizeSqm(domain.Property{SizeSqm: ptr(90.0), AreaSqm: ptr(70.0)}))
	assert.Equal(t, ptr(70.0), PropertySizeSqm(domain.Property{SizeSqm: ptr(0.0), AreaSqm: ptr(70.0)}))
	assert.Nil(t, PropertySizeSqm(domain.Property{}))
}

func TestExtractPreferences(t *testing.T) {
	c := domain.Client{
		Intent:               "rent",
		Purpose:              " Residential ",
		ConditionPreferences: []string{"new", "brand new", "unknown"},
		HeatingPreferences:   []string{"gas", "natural_gas"},
		FurnishedPreference:  "furnished",
		MinEnergyClass:       "b",
		RequiresParking:      ptr(true),
		RequiresElevator:     ptr(false),
	}
	prefs := ExtractPreferences(c)

	assert.Equal(t, domain.IntentRent, prefs.Intent)
	assert.Equal(t, domain.PurposeResidential, prefs.Purpose)
	assert.Equal(t, []domain.Condition{domain.ConditionNew}, prefs.Conditions)
	assert.Equal(t, []domain.Heating{domain.HeatingGas}, prefs.Heating)
	assert.Equal(t, domain.FurnishedFully, prefs.Furnished)
	assert.Equal(t, domain.EnergyB, prefs.MinEnergyClass)
	assert.True(t, prefs.RequiresParking)
	assert.False(t, prefs.RequiresElevator)
	assert.False(t, prefs.RequiresPetFriendly)
}
