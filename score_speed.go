package bikestress

import (
	"math"
)

const (
	// RESIDENTIAL_SPEED_MPH is assumed speed limit on residential streets without posted limit
	RESIDENTIAL_SPEED_MPH = 20.0
)

var (
	// Speed limit (mph) -> score
	speedLadder = ThresholdLadder{
		{20, 10},
		{25, 8},
		{30, 5},
		{40, 3},
		{50, 2},
		{math.Inf(1), 1},
	}
)

// inferSpeed fills unknown speed. Residential streets get residentialSpeed,
// then fallback (if any) applies to whatever is still unknown
func inferSpeed(speed Value, class StreetClass, residentialSpeed float64, fallback *float64) Value {
	if speed.IsKnown() {
		return speed
	}
	if class == CLASS_RESIDENTIAL {
		return Known(residentialSpeed)
	}
	if fallback != nil {
		return Known(*fallback)
	}
	return speed
}

// ScoreSpeed maps speed limit (mph) to score in [1, 10]. Unknown speed stays unknown
func ScoreSpeed(speed Value) Value {
	return speedLadder.ScoreValue(speed)
}
