package bikestress

// Composite returns arithmetic mean of factor scores.
// Any unknown factor makes the composite unknown
func Composite(scores ...Value) Value {
	if len(scores) == 0 {
		return Unknown()
	}
	sum := 0.0
	for _, score := range scores {
		v, ok := score.Get()
		if !ok {
			return Unknown()
		}
		sum += v
	}
	return Known(sum / float64(len(scores)))
}
