package bikestress

// SeparationLevel is ordered ranking of physical protection from motor traffic
type SeparationLevel uint16

const (
	SEPARATION_NONE = SeparationLevel(iota + 1)
	SEPARATION_SHARED_LANE
	SEPARATION_SHARE_BUSWAY
	SEPARATION_LANE
	SEPARATION_LANE_BUFFERED
	SEPARATION_TRACK
	SEPARATION_SEPARATE
)

func (iotaIdx SeparationLevel) String() string {
	return [...]string{"none", "shared_lane", "share_busway", "lane", "lane_buffered", "track", "separate"}[iotaIdx-1]
}

// Score returns separation score in [0, 10]
func (iotaIdx SeparationLevel) Score() float64 {
	return separationScores[iotaIdx]
}

var (
	separationLevels = map[string]SeparationLevel{
		"none":          SEPARATION_NONE,
		"shared_lane":   SEPARATION_SHARED_LANE,
		"share_busway":  SEPARATION_SHARE_BUSWAY,
		"lane":          SEPARATION_LANE,
		"lane_buffered": SEPARATION_LANE_BUFFERED,
		"track":         SEPARATION_TRACK,
		"separate":      SEPARATION_SEPARATE,
	}

	separationScores = map[SeparationLevel]float64{
		SEPARATION_NONE:          0,
		SEPARATION_SHARED_LANE:   2,
		SEPARATION_SHARE_BUSWAY:  5,
		SEPARATION_LANE:          7,
		SEPARATION_LANE_BUFFERED: 7.5,
		SEPARATION_TRACK:         8,
		SEPARATION_SEPARATE:      10,
	}

	// Values of `cycleway:separation` which are not protective enough to count as a track
	weakTrackSeparators = map[string]struct{}{
		"flex_post":    {},
		"parking_lane": {},
	}
)

// getSeparationLevel canonicalizes candidate token. Unrecognized tokens are SEPARATION_NONE
func getSeparationLevel(token string) SeparationLevel {
	if level, ok := separationLevels[token]; ok {
		return level
	}
	return SEPARATION_NONE
}

// hasBuffer reports whether physical buffer is tagged: `cycleway:buffer` or, when absent, `cycleway:separation`
func hasBuffer(attrs Attributes) bool {
	raw := attrs.Get(KEY_CYCLEWAY_BUFFER)
	if raw.IsMissing() {
		raw = attrs.Get(KEY_CYCLEWAY_SEPARATION)
	}
	for _, item := range raw.Items() {
		if NormalizeToken(item) != TOKEN_NONE {
			return true
		}
	}
	return false
}

func hasWeakTrackSeparator(attrs Attributes) bool {
	for _, token := range NormalizeTokens(attrs.Get(KEY_CYCLEWAY_SEPARATION)) {
		if _, ok := weakTrackSeparators[token]; ok {
			return true
		}
	}
	return false
}

// ClassifySeparation determines separation level of an edge.
// streetType is the primary street type picked by ClassifyStreet
func ClassifySeparation(attrs Attributes, streetType string) SeparationLevel {
	if streetType == "cycleway" || (streetType == "path" && isBicycleDesignated(attrs)) {
		return SEPARATION_SEPARATE
	}
	candidates := CyclewayCandidates(attrs)
	levels := make([]SeparationLevel, len(candidates))
	for i, token := range candidates {
		levels[i] = getSeparationLevel(token)
	}
	if hasBuffer(attrs) {
		for i := range levels {
			if levels[i] == SEPARATION_LANE {
				levels[i] = SEPARATION_LANE_BUFFERED
			}
		}
	}
	if hasWeakTrackSeparator(attrs) {
		for i := range levels {
			if levels[i] == SEPARATION_TRACK {
				levels[i] = SEPARATION_LANE_BUFFERED
			}
		}
	}
	return strongestSeparation(levels)
}

// strongestSeparation returns the level with the highest score. Equal scores keep the first seen
func strongestSeparation(levels []SeparationLevel) SeparationLevel {
	best := SEPARATION_NONE
	for _, level := range levels {
		if level.Score() > best.Score() {
			best = level
		}
	}
	return best
}
