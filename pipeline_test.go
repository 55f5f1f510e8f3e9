package bikestress

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func scoreSingleEdge(t *testing.T, attrs Attributes, options ...func(*Pipeline)) *Edge {
	t.Helper()
	graph := NewGraph("")
	graph.AddNode(1, orb.Point{0, 0})
	graph.AddNode(2, orb.Point{0.001, 0})
	edge := mustAddEdge(t, graph, 1, 2, 111, attrs)
	options = append([]func(*Pipeline){WithPipelineLogger(zap.NewNop())}, options...)
	require.NoError(t, NewPipeline(options...).Run(graph))
	return edge
}

func TestPipelineScoresEdge(t *testing.T) {
	edge := scoreSingleEdge(t, Attributes{
		KEY_HIGHWAY:         TextSequence("secondary", "tertiary"),
		KEY_MAXSPEED:        Sequence(Text("25 mph"), Number(30.0), Text("20 mph")),
		KEY_LANES:           TextValue("3"),
		KEY_CYCLEWAY_RIGHT:  TextValue("lane"),
		KEY_CYCLEWAY_BUFFER: TextValue("yes"),
		KEY_WIDTH:           TextValue(`9'6"`),
	})
	assert.Equal(t, "secondary", edge.StreetType)
	assert.Equal(t, CLASS_MEDIUM_CAPACITY, edge.StreetClass)
	assert.Equal(t, Known(30), edge.Speed)
	assert.Equal(t, Known(5), edge.SpeedScore)
	assert.Equal(t, Known(6), edge.LanesScore)
	assert.Equal(t, SEPARATION_LANE_BUFFERED, edge.Separation)
	assert.InDelta(t, 2.8956, edge.Width.Or(-1), 1e-3)
	// (5 + 6 + 7.5 + 3) / 4
	assert.Equal(t, Known(5.375), edge.CompositeScore)
}

func TestPipelineResidentialInference(t *testing.T) {
	edge := scoreSingleEdge(t, Attributes{KEY_HIGHWAY: TextValue("residential")})
	assert.Equal(t, Known(20), edge.Speed)
	assert.Equal(t, Known(10), edge.SpeedScore)
	assert.Equal(t, Known(0), edge.LanesScore)
	// (10 + 0 + 0 + 7) / 4
	assert.Equal(t, Known(4.25), edge.CompositeScore)
}

func TestPipelineUnknownSpeedPropagates(t *testing.T) {
	edge := scoreSingleEdge(t, Attributes{KEY_HIGHWAY: TextValue("primary"), KEY_LANES: TextValue("2")})
	assert.False(t, edge.Speed.IsKnown())
	assert.False(t, edge.SpeedScore.IsKnown())
	assert.True(t, edge.LanesScore.IsKnown())
	assert.False(t, edge.CompositeScore.IsKnown())
}

func TestPipelineDefaults(t *testing.T) {
	edge := scoreSingleEdge(t,
		Attributes{KEY_HIGHWAY: TextValue("primary")},
		WithDefaultSpeed(30), WithDefaultLanes(4), WithDefaultWidth(10),
	)
	assert.Equal(t, Known(30), edge.Speed)
	assert.Equal(t, Known(4), edge.Lanes)
	assert.Equal(t, Known(10), edge.Width)
	assert.Equal(t, Known(5), edge.WidthHalf)
	// (5 + 4 + 0 + 3) / 4
	assert.Equal(t, Known(3), edge.CompositeScore)

	cfg := NewPipeline(WithDefaultSpeed(30), WithResidentialSpeed(15)).Config()
	require.NotNil(t, cfg.DefaultSpeedMPH)
	assert.Equal(t, 30.0, *cfg.DefaultSpeedMPH)
	assert.Equal(t, 15.0, cfg.ResidentialSpeedMPH)
	assert.Contains(t, cfg.String(), "default_speed_mph: 30")

	cfg = DefaultScoringConfig()
	assert.Nil(t, cfg.DefaultSpeedMPH)
	assert.Nil(t, cfg.DefaultLanes)
	assert.Equal(t, RESIDENTIAL_SPEED_MPH, cfg.ResidentialSpeedMPH)
}

func TestPipelineMissingRequiredColumn(t *testing.T) {
	graph := NewGraph("")
	graph.AddNode(1, orb.Point{0, 0})
	graph.AddNode(2, orb.Point{0.001, 0})
	edge := mustAddEdge(t, graph, 1, 2, 111, Attributes{KEY_MAXSPEED: TextValue("25 mph")})

	err := NewPipeline(WithPipelineLogger(zap.NewNop())).Run(graph)
	require.Error(t, err)
	var malformedErr *MalformedInputError
	assert.True(t, errors.As(err, &malformedErr))
	assert.False(t, edge.IsScored())
}

func TestPipelineDeterminism(t *testing.T) {
	first := NewEdgeTable(divergenceGraph(t))
	second := NewEdgeTable(divergenceGraph(t))
	assert.Equal(t, first.Columns(), second.Columns())
	assert.Equal(t, first.Rows(), second.Rows())

	graph := divergenceGraph(t)
	before := NewEdgeTable(graph).Rows()
	require.NoError(t, NewPipeline(WithPipelineLogger(zap.NewNop())).Run(graph))
	assert.Equal(t, before, NewEdgeTable(graph).Rows())
}
