package bikestress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyStreet(t *testing.T) {
	tests := []struct {
		name       string
		raw        RawValue
		streetType string
		class      StreetClass
		score      float64
	}{
		{"dedicated", TextValue("cycleway"), "cycleway", CLASS_DEDICATED_PATH, 10},
		{"residential", TextValue("Living_Street"), "living_street", CLASS_RESIDENTIAL, 7},
		{"medium", TextValue("secondary_link"), "secondary_link", CLASS_MEDIUM_CAPACITY, 3},
		{"motorway", TextValue("trunk"), "trunk", CLASS_MOTORWAY, 0},
		{"unlisted falls back to medium", TextValue("tertiary_link"), "tertiary_link", CLASS_MEDIUM_CAPACITY, 3},
		{"unknown falls back to medium", TextValue("raceway"), "raceway", CLASS_MEDIUM_CAPACITY, 3},
		{"missing", Missing(), "", CLASS_MEDIUM_CAPACITY, 3},
		{"most friendly of list", TextSequence("primary", "residential", "service"), "residential", CLASS_RESIDENTIAL, 7},
		{"first on ties", TextSequence("motorway", "trunk"), "motorway", CLASS_MOTORWAY, 0},
		{"placeholders skipped", Sequence(Null(), Text("footway")), "footway", CLASS_DEDICATED_PATH, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			streetType, class := ClassifyStreet(tt.raw)
			assert.Equal(t, tt.streetType, streetType)
			assert.Equal(t, tt.class, class)
			assert.Equal(t, tt.score, class.Score())
		})
	}
}

func TestStreetClassString(t *testing.T) {
	assert.Equal(t, "dedicated_path", CLASS_DEDICATED_PATH.String())
	assert.Equal(t, "medium-capacity", CLASS_MEDIUM_CAPACITY.String())
	assert.Equal(t, "motorway", HIGHWAY_MOTORWAY.String())
	assert.Equal(t, HIGHWAY_UNDEFINED, getHighwayType("escalator"))
}
