package bikestress

import (
	"math"
)

const (
	// LANES_UNKNOWN_SCORE is the worst-case floor for edges without lane count
	LANES_UNKNOWN_SCORE = 0.0
)

var (
	// Number of lanes -> score
	lanesLadder = ThresholdLadder{
		{2, 8},
		{3, 6},
		{4, 4},
		{5, 2},
		{math.Inf(1), 1},
	}
)

// ScoreLanes maps lane count to score in [0, 8].
// Unlike speed, unknown lane count is never unknown score: it gets LANES_UNKNOWN_SCORE
func ScoreLanes(lanes Value) Value {
	value, ok := lanes.Get()
	if !ok {
		return Known(LANES_UNKNOWN_SCORE)
	}
	return Known(lanesLadder.Score(value))
}
