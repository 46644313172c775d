package matching

import "github.com/denisok6893-rgb/property-matchmaking/internal/domain"

const (
	// DefaultMinScore is the lowest overall score the query helpers keep by default.
	DefaultMinScore = 40.0
	// DefaultLimit is the default size of a top-N result set.
	DefaultLimit = 20

	// matchedThreshold is the sub-score at which a criterion counts as matched.
	matchedThreshold = 80.0
)

// Neutral and uncertain sub-scores.
const (
	scoreNoPreference = 80.0
	scoreUnknown      = 50.0
	scoreGenericType  = 50.0
)

var qualityBands = []struct {
	min     float64
	quality domain.Quality
}{
	{85, domain.QualityExcellent},
	{70, domain.QualityGood},
	{50, domain.QualityFair},
	{25, domain.QualityPoor},
}

// Classify returns the quality band for an overall score.
func Classify(score float64) domain.Quality {
	for _, b := range qualityBands {
		if score >= b.min {
			return b.quality
		}
	}
	return domain.QualityVeryPoor
}

// intentTransactions lists the transaction types acceptable for each client intent.
var intentTransactions = map[domain.Intent][]domain.TransactionType{
	domain.IntentBuy:    {domain.TransactionSale},
	domain.IntentSell:   {domain.TransactionSale},
	domain.IntentRent:   {domain.TransactionRental, domain.TransactionShortTerm},
	domain.IntentLease:  {domain.TransactionRental},
	domain.IntentInvest: {domain.TransactionSale},
}

// purposeTypes lists the property types acceptable for each client purpose.
var purposeTypes = map[domain.Purpose][]domain.PropertyType{
	domain.PurposeResidential: {
		domain.PropertyTypeApartment,
		domain.PropertyTypeStudio,
		domain.PropertyTypeMaisonette,
		domain.PropertyTypeHouse,
		domain.PropertyTypeVilla,
		domain.PropertyTypePenthouse,
	},
	domain.PurposeCommercial: {
		domain.PropertyTypeOffice,
		domain.PropertyTypeRetail,
		domain.PropertyTypeWarehouse,
		domain.PropertyTypeIndustrial,
		domain.PropertyTypeHotel,
	},
	domain.PurposeLand: {
		domain.PropertyTypeLand,
		domain.PropertyTypePlot,
	},
	domain.PurposeParking: {
		domain.PropertyTypeParkingSpace,
		domain.PropertyTypeGarage,
	},
	domain.PurposeOther: {
		domain.PropertyTypeOther,
	},
}

// AcceptsTransaction reports whether a property offered under t suits intent.
func AcceptsTransaction(intent domain.Intent, t domain.TransactionType) bool {
	for _, v := range intentTransactions[intent] {
		if v == t {
			return true
		}
	}
	return false
}

// AcceptsPropertyType reports whether a property of type t suits purpose.
func AcceptsPropertyType(purpose domain.Purpose, t domain.PropertyType) bool {
	for _, v := range purposeTypes[purpose] {
		if v == t {
			return true
		}
	}
	return false
}

// energyRank orders certificate classes; higher is better.
var energyRank = map[domain.EnergyClass]int{
	domain.EnergyAPlus:      11,
	domain.EnergyA:          10,
	domain.EnergyBPlus:      9,
	domain.EnergyB:          8,
	domain.EnergyC:          7,
	domain.EnergyD:          6,
	domain.EnergyE:          5,
	domain.EnergyF:          4,
	domain.EnergyG:          3,
	domain.EnergyH:          2,
	domain.EnergyInProgress: 1,
}
