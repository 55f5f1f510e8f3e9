package bikestress

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ScoringConfig holds explicit overrides for the scoring pipeline. Nil defaults mean "no override"
type ScoringConfig struct {
	DefaultSpeedMPH     *float64 `yaml:"default_speed_mph" mapstructure:"default_speed_mph"`
	DefaultLanes        *float64 `yaml:"default_lanes" mapstructure:"default_lanes"`
	DefaultWidthMeters  *float64 `yaml:"default_width_meters" mapstructure:"default_width_meters"`
	ResidentialSpeedMPH float64  `yaml:"residential_speed_mph" mapstructure:"residential_speed_mph"`
}

// DefaultScoringConfig returns configuration without any overrides
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		ResidentialSpeedMPH: RESIDENTIAL_SPEED_MPH,
	}
}

func (cfg ScoringConfig) String() string {
	return fmt.Sprintf(`
Scoring parameters:
	default_speed_mph: %s
	default_lanes: %s
	default_width_meters: %s
	residential_speed_mph: %v
	`,
		optionalString(cfg.DefaultSpeedMPH),
		optionalString(cfg.DefaultLanes),
		optionalString(cfg.DefaultWidthMeters),
		cfg.ResidentialSpeedMPH,
	)
}

func optionalString(v *float64) string {
	if v == nil {
		return "none"
	}
	return fmt.Sprintf("%v", *v)
}

// Pipeline enriches edges with canonical values, factor scores and composite score
type Pipeline struct {
	cfg    ScoringConfig
	logger *zap.Logger
}

func NewPipeline(options ...func(*Pipeline)) *Pipeline {
	pipeline := &Pipeline{
		cfg:    DefaultScoringConfig(),
		logger: zap.L(),
	}
	for _, option := range options {
		option(pipeline)
	}
	return pipeline
}

func WithScoringConfig(cfg ScoringConfig) func(*Pipeline) {
	return func(pipeline *Pipeline) {
		pipeline.cfg = cfg
	}
}

func WithDefaultSpeed(mph float64) func(*Pipeline) {
	return func(pipeline *Pipeline) {
		pipeline.cfg.DefaultSpeedMPH = &mph
	}
}

func WithDefaultLanes(lanes float64) func(*Pipeline) {
	return func(pipeline *Pipeline) {
		pipeline.cfg.DefaultLanes = &lanes
	}
}

func WithDefaultWidth(meters float64) func(*Pipeline) {
	return func(pipeline *Pipeline) {
		pipeline.cfg.DefaultWidthMeters = &meters
	}
}

func WithResidentialSpeed(mph float64) func(*Pipeline) {
	return func(pipeline *Pipeline) {
		pipeline.cfg.ResidentialSpeedMPH = mph
	}
}

func WithPipelineLogger(logger *zap.Logger) func(*Pipeline) {
	return func(pipeline *Pipeline) {
		pipeline.logger = logger
	}
}

// Config returns effective configuration
func (pipeline *Pipeline) Config() ScoringConfig {
	return pipeline.cfg
}

// Run scores every edge of the graph in place.
// Graph without required columns is *MalformedInputError and nothing gets scored
func (pipeline *Pipeline) Run(graph *Graph) error {
	if graph.EdgesNum() == 0 {
		return nil
	}
	missing := []string{}
	for _, column := range requiredColumns {
		if !graph.HasAttribute(column) {
			missing = append(missing, column)
		}
	}
	if len(missing) > 0 {
		return malformed("graph is missing required column(s): %s", strings.Join(missing, ","))
	}
	unknownComposite := 0
	parseFailures := 0
	for _, edge := range graph.Edges() {
		errs := pipeline.ScoreEdge(edge)
		for _, err := range errs {
			pipeline.logger.Debug("Attribute resolved to unknown",
				zap.Int64("source", int64(edge.Source)),
				zap.Int64("target", int64(edge.Target)),
				zap.Int("key", edge.Key),
				zap.Error(err),
			)
		}
		parseFailures += len(errs)
		if !edge.CompositeScore.IsKnown() {
			unknownComposite++
		}
	}
	pipeline.logger.Info("Edges scored",
		zap.Int("edges", graph.EdgesNum()),
		zap.Int("unknown_composite", unknownComposite),
		zap.Int("parse_failures", parseFailures),
	)
	return nil
}

// ScoreEdge fills derived fields of a single edge. Returned errors are attribute values
// which couldn't be parsed (they have already resolved to unknown)
func (pipeline *Pipeline) ScoreEdge(edge *Edge) []error {
	attrs := edge.Attributes
	var errs []error

	edge.StreetType, edge.StreetClass = ClassifyStreet(attrs.Get(KEY_HIGHWAY))
	edge.ClassificationScore = Known(edge.StreetClass.Score())

	speed, speedErrs := extractMax(attrs.Get(KEY_MAXSPEED), parseSpeed)
	errs = append(errs, speedErrs...)
	edge.Speed = inferSpeed(speed, edge.StreetClass, pipeline.cfg.ResidentialSpeedMPH, pipeline.cfg.DefaultSpeedMPH)
	edge.SpeedScore = ScoreSpeed(edge.Speed)

	lanes, lanesErrs := extractMax(attrs.Get(KEY_LANES), parseLanes)
	errs = append(errs, lanesErrs...)
	edge.Lanes = withDefault(lanes, pipeline.cfg.DefaultLanes)
	edge.LanesScore = ScoreLanes(edge.Lanes)

	width, widthErrs := extractMax(attrs.Get(KEY_WIDTH), parseWidth)
	errs = append(errs, widthErrs...)
	edge.Width = withDefault(width, pipeline.cfg.DefaultWidthMeters)
	edge.WidthHalf = Unknown()
	if w, ok := edge.Width.Get(); ok {
		edge.WidthHalf = Known(w / 2)
	}

	edge.Separation = ClassifySeparation(attrs, edge.StreetType)
	edge.SeparationScore = Known(edge.Separation.Score())

	edge.CompositeScore = Composite(edge.SpeedScore, edge.LanesScore, edge.SeparationScore, edge.ClassificationScore)
	return errs
}

func withDefault(v Value, fallback *float64) Value {
	if v.IsKnown() || fallback == nil {
		return v
	}
	return Known(*fallback)
}
