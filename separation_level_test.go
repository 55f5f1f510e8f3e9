package bikestress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifySeparation(t *testing.T) {
	tests := []struct {
		name       string
		attrs      Attributes
		streetType string
		want       SeparationLevel
		score      float64
	}{
		{
			name:       "nothing tagged",
			attrs:      Attributes{},
			streetType: "residential",
			want:       SEPARATION_NONE,
			score:      0,
		},
		{
			name:       "plain lane",
			attrs:      Attributes{KEY_CYCLEWAY: TextValue("lane")},
			streetType: "secondary",
			want:       SEPARATION_LANE,
			score:      7,
		},
		{
			name: "lane with buffer",
			attrs: Attributes{
				KEY_CYCLEWAY:        TextValue("lane"),
				KEY_CYCLEWAY_BUFFER: TextValue("yes"),
			},
			streetType: "secondary",
			want:       SEPARATION_LANE_BUFFERED,
			score:      7.5,
		},
		{
			name: "buffer explicitly absent",
			attrs: Attributes{
				KEY_CYCLEWAY:        TextValue("lane"),
				KEY_CYCLEWAY_BUFFER: TextValue("no"),
			},
			streetType: "secondary",
			want:       SEPARATION_LANE,
			score:      7,
		},
		{
			name: "buffer tagged none",
			attrs: Attributes{
				KEY_CYCLEWAY:        TextValue("lane"),
				KEY_CYCLEWAY_BUFFER: TextValue("none"),
			},
			streetType: "secondary",
			want:       SEPARATION_LANE,
			score:      7,
		},
		{
			name: "buffer tagged null does not fall back to separation",
			attrs: Attributes{
				KEY_CYCLEWAY:            TextValue("lane"),
				KEY_CYCLEWAY_BUFFER:     Single(Null()),
				KEY_CYCLEWAY_SEPARATION: TextValue("kerb"),
			},
			streetType: "secondary",
			want:       SEPARATION_LANE,
			score:      7,
		},
		{
			name: "separation used when buffer is missing",
			attrs: Attributes{
				KEY_CYCLEWAY_RIGHT:      TextValue("lane"),
				KEY_CYCLEWAY_SEPARATION: TextValue("kerb"),
			},
			streetType: "primary",
			want:       SEPARATION_LANE_BUFFERED,
			score:      7.5,
		},
		{
			name: "flex posts are not a track",
			attrs: Attributes{
				KEY_CYCLEWAY_BOTH:       TextValue("track"),
				KEY_CYCLEWAY_SEPARATION: TextValue("flex_post"),
			},
			streetType: "primary",
			want:       SEPARATION_LANE_BUFFERED,
			score:      7.5,
		},
		{
			name: "best side wins",
			attrs: Attributes{
				KEY_CYCLEWAY_LEFT:  TextValue("shared_lane"),
				KEY_CYCLEWAY_RIGHT: TextValue("track"),
				KEY_CYCLEWAY:       TextValue("lane"),
			},
			streetType: "tertiary",
			want:       SEPARATION_TRACK,
			score:      8,
		},
		{
			name:       "unrecognized token",
			attrs:      Attributes{KEY_CYCLEWAY: TextValue("opposite")},
			streetType: "residential",
			want:       SEPARATION_NONE,
			score:      0,
		},
		{
			name: "cycleway street overrides tags",
			attrs: Attributes{
				KEY_HIGHWAY:  TextValue("cycleway"),
				KEY_CYCLEWAY: TextValue("no"),
			},
			streetType: "cycleway",
			want:       SEPARATION_SEPARATE,
			score:      10,
		},
		{
			name: "designated path",
			attrs: Attributes{
				KEY_HIGHWAY: TextValue("path"),
				KEY_BICYCLE: TextValue("designated"),
			},
			streetType: "path",
			want:       SEPARATION_SEPARATE,
			score:      10,
		},
		{
			name: "path without designation",
			attrs: Attributes{
				KEY_HIGHWAY: TextValue("path"),
				KEY_BICYCLE: TextValue("yes"),
			},
			streetType: "path",
			want:       SEPARATION_NONE,
			score:      0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifySeparation(tt.attrs, tt.streetType)
			assert.Equal(t, tt.want, got, "level: %s", got)
			assert.Equal(t, tt.score, got.Score())
		})
	}
}

func TestSeparationLevelString(t *testing.T) {
	assert.Equal(t, "none", SEPARATION_NONE.String())
	assert.Equal(t, "lane_buffered", SEPARATION_LANE_BUFFERED.String())
	assert.Equal(t, "separate", SEPARATION_SEPARATE.String())
}

func TestStrongestSeparation(t *testing.T) {
	assert.Equal(t, SEPARATION_NONE, strongestSeparation(nil))
	assert.Equal(t, SEPARATION_TRACK, strongestSeparation([]SeparationLevel{SEPARATION_LANE, SEPARATION_TRACK, SEPARATION_SHARED_LANE, SEPARATION_TRACK}))
	assert.Equal(t, SEPARATION_LANE_BUFFERED, strongestSeparation([]SeparationLevel{SEPARATION_NONE, SEPARATION_LANE_BUFFERED, SEPARATION_LANE}))
}
