package domain

import "time"

// Intent is what the client wants to do on the market.
type Intent string

const (
	IntentUnspecified Intent = ""
	IntentBuy         Intent = "BUY"
	IntentSell        Intent = "SELL"
	IntentRent        Intent = "RENT"
	IntentLease       Intent = "LEASE"
	IntentInvest      Intent = "INVEST"
)

// Purpose is the broad category of real estate a client is looking for.
type Purpose string

const (
	PurposeUnspecified Purpose = ""
	PurposeResidential Purpose = "RESIDENTIAL"
	PurposeCommercial  Purpose = "COMMERCIAL"
	PurposeLand        Purpose = "LAND"
	PurposeParking     Purpose = "PARKING"
	PurposeOther       Purpose = "OTHER"
)

type TransactionType string

const (
	TransactionUnspecified TransactionType = ""
	TransactionSale        TransactionType = "SALE"
	TransactionRental      TransactionType = "RENTAL"
	TransactionShortTerm   TransactionType = "SHORT_TERM"
)

type PropertyType string

const (
	PropertyTypeUnspecified  PropertyType = ""
	PropertyTypeApartment    PropertyType = "APARTMENT"
	PropertyTypeStudio       PropertyType = "STUDIO"
	PropertyTypeMaisonette   PropertyType = "MAISONETTE"
	PropertyTypeHouse        PropertyType = "HOUSE"
	PropertyTypeVilla        PropertyType = "VILLA"
	PropertyTypePenthouse    PropertyType = "PENTHOUSE"
	PropertyTypeOffice       PropertyType = "OFFICE"
	PropertyTypeRetail       PropertyType = "RETAIL"
	PropertyTypeWarehouse    PropertyType = "WAREHOUSE"
	PropertyTypeIndustrial   PropertyType = "INDUSTRIAL"
	PropertyTypeHotel        PropertyType = "HOTEL"
	PropertyTypeLand         PropertyType = "LAND"
	PropertyTypePlot         PropertyType = "PLOT"
	PropertyTypeParkingSpace PropertyType = "PARKING_SPACE"
	PropertyTypeGarage       PropertyType = "GARAGE"
	PropertyTypeOther        PropertyType = "OTHER"
)

type Furnished string

const (
	FurnishedUnspecified Furnished = ""
	FurnishedFully       Furnished = "FULLY"
	FurnishedPartially   Furnished = "PARTIALLY"
	FurnishedNone        Furnished = "UNFURNISHED"
	FurnishedAny         Furnished = "ANY"
)

type Condition string

const (
	ConditionUnspecified       Condition = ""
	ConditionNew               Condition = "NEW"
	ConditionExcellent         Condition = "EXCELLENT"
	ConditionGood              Condition = "GOOD"
	ConditionRenovated         Condition = "RENOVATED"
	ConditionNeedsRenovation   Condition = "NEEDS_RENOVATION"
	ConditionUnderConstruction Condition = "UNDER_CONSTRUCTION"
)

type Heating string

const (
	HeatingUnspecified Heating = ""
	HeatingAutonomous  Heating = "AUTONOMOUS"
	HeatingCentral     Heating = "CENTRAL"
	HeatingHeatPump    Heating = "HEAT_PUMP"
	HeatingGas         Heating = "GAS"
	HeatingOil         Heating = "OIL"
	HeatingElectric    Heating = "ELECTRIC"
	HeatingSolar       Heating = "SOLAR"
	HeatingGeothermal  Heating = "GEOTHERMAL"
	HeatingUnderfloor  Heating = "UNDERFLOOR"
	HeatingFireplace   Heating = "FIREPLACE"
	HeatingNone        Heating = "NONE"
)

// EnergyClass is an energy performance certificate rating.
type EnergyClass string

const (
	EnergyUnspecified EnergyClass = ""
	EnergyAPlus       EnergyClass = "A+"
	EnergyA           EnergyClass = "A"
	EnergyBPlus       EnergyClass = "B+"
	EnergyB           EnergyClass = "B"
	EnergyC           EnergyClass = "C"
	EnergyD           EnergyClass = "D"
	EnergyE           EnergyClass = "E"
	EnergyF           EnergyClass = "F"
	EnergyG           EnergyClass = "G"
	EnergyH           EnergyClass = "H"
	EnergyInProgress  EnergyClass = "IN_PROGRESS"
)

// Client is a client's stated preference profile. Any field may be absent.
type Client struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Intent  Intent  `json:"intent,omitempty"`
	Purpose Purpose `json:"purpose,omitempty"`

	BudgetMin *float64 `json:"budget_min,omitempty"`
	BudgetMax *float64 `json:"budget_max,omitempty"`

	MinBedrooms  *int     `json:"min_bedrooms,omitempty"`
	MaxBedrooms  *int     `json:"max_bedrooms,omitempty"`
	MinBathrooms *int     `json:"min_bathrooms,omitempty"`
	MaxBathrooms *int     `json:"max_bathrooms,omitempty"`
	MinSizeSqm   *float64 `json:"min_size_sqm,omitempty"`
	MaxSizeSqm   *float64 `json:"max_size_sqm,omitempty"`
	MinFloor     *int     `json:"min_floor,omitempty"`
	MaxFloor     *int     `json:"max_floor,omitempty"`

	GroundFloorOnly *bool `json:"ground_floor_only,omitempty"`

	AreasOfInterest    []string `json:"areas_of_interest,omitempty"`
	RequiredAmenities  []string `json:"required_amenities,omitempty"`
	PreferredAmenities []string `json:"preferred_amenities,omitempty"`

	ConditionPreferences []string `json:"condition_preferences,omitempty"`
	HeatingPreferences   []string `json:"heating_preferences,omitempty"`
	FurnishedPreference  string   `json:"furnished_preference,omitempty"`
	MinEnergyClass       string   `json:"min_energy_class,omitempty"`

	RequiresElevator    *bool `json:"requires_elevator,omitempty"`
	RequiresPetFriendly *bool `json:"requires_pet_friendly,omitempty"`
	RequiresParking     *bool `json:"requires_parking,omitempty"`
}

// Amenities maps a raw amenity key to whether the property has it.
type Amenities map[string]bool

type Property struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	TransactionType TransactionType `json:"transaction_type,omitempty"`
	PropertyType    PropertyType    `json:"property_type,omitempty"`

	Price     *float64 `json:"price,omitempty"`
	Bedrooms  *int     `json:"bedrooms,omitempty"`
	Bathrooms *int     `json:"bathrooms,omitempty"`
	SizeSqm   *float64 `json:"size_sqm,omitempty"`
	// AreaSqm is the legacy name some listings report size under.
	AreaSqm *float64 `json:"area_sqm,omitempty"`
	Floor   string   `json:"floor,omitempty"`

	Amenities   Amenities `json:"amenities,omitempty"`
	Condition   string    `json:"condition,omitempty"`
	Furnished   string    `json:"furnished,omitempty"`
	Heating     string    `json:"heating,omitempty"`
	EnergyClass string    `json:"energy_class,omitempty"`

	Elevator    *bool `json:"elevator,omitempty"`
	PetsAllowed *bool `json:"pets_allowed,omitempty"`
	Parking     *bool `json:"parking,omitempty"`

	City     string `json:"city,omitempty"`
	Area     string `json:"area,omitempty"`
	Location string `json:"location,omitempty"`
}

// Criterion identifies one independently scored matching dimension.
type Criterion string

const (
	CriterionBudget          Criterion = "budget"
	CriterionLocation        Criterion = "location"
	CriterionTransactionType Criterion = "transaction_type"
	CriterionPropertyType    Criterion = "property_type"
	CriterionBedrooms        Criterion = "bedrooms"
	CriterionSize            Criterion = "size"
	CriterionAmenities       Criterion = "amenities"
	CriterionCondition       Criterion = "condition"
	CriterionFurnished       Criterion = "furnished"
	CriterionFloor           Criterion = "floor"
	CriterionElevator        Criterion = "elevator"
	CriterionPetPolicy       Criterion = "pet_policy"
	CriterionHeating         Criterion = "heating"
	CriterionEnergyClass     Criterion = "energy_class"
	CriterionParking         Criterion = "parking"
)

// Criteria lists every criterion in breakdown order.
var Criteria = []Criterion{
	CriterionBudget,
	CriterionLocation,
	CriterionTransactionType,
	CriterionPropertyType,
	CriterionBedrooms,
	CriterionSize,
	CriterionAmenities,
	CriterionCondition,
	CriterionFurnished,
	CriterionFloor,
	CriterionElevator,
	CriterionPetPolicy,
	CriterionHeating,
	CriterionEnergyClass,
	CriterionParking,
}

type CriterionScore struct {
	Criterion     Criterion `json:"criterion"`
	Weight        float64   `json:"weight"`
	Score         float64   `json:"score"`
	WeightedScore float64   `json:"weighted_score"`
	Matched       bool      `json:"matched"`
	Reason        string    `json:"reason"`
}

// Quality is the band an overall score falls into.
type Quality string

const (
	QualityExcellent Quality = "excellent"
	QualityGood      Quality = "good"
	QualityFair      Quality = "fair"
	QualityPoor      Quality = "poor"
	QualityVeryPoor  Quality = "very_poor"
)

type MatchResult struct {
	ClientID        string           `json:"client_id"`
	PropertyID      string           `json:"property_id"`
	OverallScore    float64          `json:"overall_score"`
	Quality         Quality          `json:"quality"`
	Breakdown       []CriterionScore `json:"breakdown"`
	MatchedCriteria int              `json:"matched_criteria"`
	TotalCriteria   int              `json:"total_criteria"`
	CalculatedAt    time.Time        `json:"calculated_at"`
}
