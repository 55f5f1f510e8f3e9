package bikestress

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeight(t *testing.T) {
	w, err := ParseWeight(" Composite_Score ")
	require.NoError(t, err)
	assert.Equal(t, WEIGHT_COMPOSITE, w)

	w, err = ParseWeight("length")
	require.NoError(t, err)
	assert.Equal(t, WEIGHT_LENGTH, w)

	_, err = ParseWeight("travel_time")
	var configErr *ConfigError
	require.True(t, errors.As(err, &configErr))
	assert.Equal(t, "weight", configErr.Field)
}

func TestEdgeCost(t *testing.T) {
	edge := &Edge{Source: 1, Target: 2, Length: 120, CompositeScore: Known(6.5)}
	cost, err := edge.Cost(WEIGHT_LENGTH)
	require.NoError(t, err)
	assert.Equal(t, 120.0, cost)

	cost, err = edge.Cost(WEIGHT_COMPOSITE)
	require.NoError(t, err)
	assert.Equal(t, 3.5, cost)

	unscored := &Edge{Source: 1, Target: 2, Length: 120}
	_, err = unscored.Cost(WEIGHT_COMPOSITE)
	var unknownErr *UnknownWeightError
	require.True(t, errors.As(err, &unknownErr))
	assert.Equal(t, WEIGHT_COMPOSITE, unknownErr.Weight)

	_, err = edge.Cost(Weight("bogus"))
	var configErr *ConfigError
	assert.True(t, errors.As(err, &configErr))
}
