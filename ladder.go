package bikestress

// rung is one step of a threshold ladder: values up to Threshold get Score
type rung struct {
	Threshold float64
	Score     float64
}

// ThresholdLadder is an ascending step function: the first rung whose threshold is >= value wins,
// values above every threshold get the score of the last rung.
type ThresholdLadder []rung

func (ladder ThresholdLadder) Score(value float64) float64 {
	for _, r := range ladder {
		if value <= r.Threshold {
			return r.Score
		}
	}
	return ladder[len(ladder)-1].Score
}

// ScoreValue lifts Score over unknown values: unknown in, unknown out
func (ladder ThresholdLadder) ScoreValue(v Value) Value {
	value, ok := v.Get()
	if !ok {
		return Unknown()
	}
	return Known(ladder.Score(value))
}
