package matching

import (
	"fmt"
	"strings"

	"github.com/denisok6893-rgb/property-matchmaking/internal/domain"
)

const (
	bedroomPenalty = 25.0
	floorPenalty   = 15.0
	// sizeDeviationLimit is the percentage away from the range at which the size score hits 0.
	sizeDeviationLimit = 40.0

	amenityRequiredShare  = 70.0
	amenityPreferredShare = 30.0
)

// ScoreBedrooms loses 25 points per bedroom outside the requested range.
func ScoreBedrooms(prefs Preferences, p domain.Property) Verdict {
	if prefs.Bedrooms.IsEmpty() {
		return neutral("No bedroom preference")
	}
	if p.Bedrooms == nil {
		return unknown("Bedrooms not listed")
	}
	diff, _ := prefs.Bedrooms.Outside(*p.Bedrooms)
	if diff == 0 {
		return Verdict{Score: 100, Reason: fmt.Sprintf("%d bedrooms within range", *p.Bedrooms)}
	}
	return Verdict{
		Score:  clampScore(100 - float64(diff)*bedroomPenalty),
		Reason: fmt.Sprintf("%d bedrooms, %d outside requested range", *p.Bedrooms, diff),
	}
}

// ScoreSize decays linearly with the percentage deviation from the nearest
// bound, reaching 0 at 40%.
func ScoreSize(prefs Preferences, p domain.Property) Verdict {
	if prefs.Size.IsEmpty() {
		return neutral("No size preference")
	}
	size := PropertySizeSqm(p)
	if size == nil {
		return unknown("Size not listed")
	}
	diff, bound := prefs.Size.Outside(*size)
	if diff == 0 {
		return Verdict{Score: 100, Reason: fmt.Sprintf("%.0f m² within range", *size)}
	}
	if bound <= 0 {
		return Verdict{Score: 0, Reason: fmt.Sprintf("%.0f m² outside requested range", *size)}
	}
	pct := diff / bound * 100
	return Verdict{
		Score:  clampScore(100 - pct/sizeDeviationLimit*100),
		Reason: fmt.Sprintf("%.0f m² is %.1f%% outside requested range", *size, pct),
	}
}

// ScoreFloor handles the ground-floor-only preference and floor ranges,
// losing 15 points per floor outside the range.
func ScoreFloor(prefs Preferences, p domain.Property) Verdict {
	if prefs.Floor.Mode == FloorAny {
		return neutral("No floor preference")
	}
	floor := ParseFloor(p.Floor)
	if floor == nil {
		return unknown("Floor not listed")
	}
	if prefs.Floor.Mode == FloorGroundOnly {
		if *floor == 0 {
			return Verdict{Score: 100, Reason: "Ground floor as requested"}
		}
		return Verdict{Score: 0, Reason: fmt.Sprintf("Floor %d, client wants ground floor only", *floor)}
	}
	diff, _ := prefs.Floor.Range.Outside(*floor)
	if diff == 0 {
		return Verdict{Score: 100, Reason: fmt.Sprintf("Floor %d within range", *floor)}
	}
	return Verdict{
		Score:  clampScore(100 - float64(diff)*floorPenalty),
		Reason: fmt.Sprintf("Floor %d, %d outside requested range", *floor, diff),
	}
}

// ScoreAmenities caps the score at 70 × (met/required) until every required
// amenity is present; the remaining 30 points come from preferred amenities.
// Without required amenities the score is the preferred-match ratio.
func ScoreAmenities(prefs Preferences, p domain.Property) Verdict {
	required, preferred := prefs.RequiredAmenities, prefs.PreferredAmenities
	if len(required) == 0 && len(preferred) == 0 {
		return neutral("No amenity preferences")
	}
	// A listing without amenities is treated as having none.
	have := PropertyAmenities(p)

	metPreferred := 0
	for _, a := range preferred {
		if have[a] {
			metPreferred++
		}
	}

	if len(required) == 0 {
		return Verdict{
			Score:  clampScore(float64(metPreferred) / float64(len(preferred)) * 100),
			Reason: fmt.Sprintf("%d of %d preferred amenities", metPreferred, len(preferred)),
		}
	}

	var missing []string
	for _, a := range required {
		if !have[a] {
			missing = append(missing, a)
		}
	}
	if len(missing) > 0 {
		met := len(required) - len(missing)
		return Verdict{
			Score:  clampScore(float64(met) / float64(len(required)) * amenityRequiredShare),
			Reason: "Missing required amenities: " + strings.Join(missing, ", "),
		}
	}

	score := amenityRequiredShare + amenityPreferredShare
	reason := "All required amenities present"
	if len(preferred) > 0 {
		score = amenityRequiredShare + float64(metPreferred)/float64(len(preferred))*amenityPreferredShare
		reason = fmt.Sprintf("%s, %d of %d preferred", reason, metPreferred, len(preferred))
	}
	return Verdict{Score: clampScore(score), Matched: true, Reason: reason}
}
