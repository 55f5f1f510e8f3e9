package bikestress

import (
	"fmt"

	"github.com/paulmach/osm"
	"github.com/pkg/errors"
)

var (
	// ErrNoRouteFound is returned when the destination can't be reached from the snapped origin
	ErrNoRouteFound = errors.New("no route found")
	// ErrRouteTimeout is returned when a single route search exceeds its time budget
	ErrRouteTimeout = errors.New("route search timed out")
	// ErrEmptyGraph is returned when snapping is requested on a graph without nodes
	ErrEmptyGraph = errors.New("graph has no nodes")
)

// ParseError An attribute value could not be interpreted. Never leaves the normalizer: callers see Unknown() instead
type ParseError struct {
	Attribute string
	Raw       string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("can't parse %s value '%s'", e.Attribute, e.Raw)
}

// UnknownWeightError An edge routing weight is undefined. The search resolves it by skipping the edge
type UnknownWeightError struct {
	Source osm.NodeID
	Target osm.NodeID
	Weight Weight
}

func (e *UnknownWeightError) Error() string {
	return fmt.Sprintf("edge %d -> %d has unknown %s", e.Source, e.Target, e.Weight)
}

// MalformedInputError The graph breaks the loader contract (missing column, dangling edge, bad length)
type MalformedInputError struct {
	Reason string
}

func (e *MalformedInputError) Error() string {
	return "malformed input: " + e.Reason
}

func malformed(format string, args ...interface{}) error {
	return errors.WithStack(&MalformedInputError{Reason: fmt.Sprintf(format, args...)})
}

// ConfigError Invalid caller configuration (e.g. an unsupported weight selector)
type ConfigError struct {
	Field string
	Value string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s='%s'", e.Field, e.Value)
}

// errorKind returns short label for error which is used in batch error log and metrics
func errorKind(err error) string {
	var malformedErr *MalformedInputError
	switch {
	case errors.Is(err, ErrNoRouteFound):
		return "no_route"
	case errors.Is(err, ErrRouteTimeout):
		return "timeout"
	case errors.Is(err, ErrEmptyGraph):
		return "empty_graph"
	case errors.As(err, &malformedErr):
		return "malformed_input"
	default:
		return "internal"
	}
}
