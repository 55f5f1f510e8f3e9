package bikestress

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/pkg/errors"
)

// Edge is a directed street segment. Raw attributes come from the loader untouched,
// derived fields are filled by Pipeline
type Edge struct {
	Source osm.NodeID
	Target osm.NodeID
	// Key distinguishes parallel edges between the same pair of nodes
	Key   int
	WayID osm.WayID
	// Length in meters
	Length     float64
	Geom       orb.LineString
	Attributes Attributes

	Speed               Value
	SpeedScore          Value
	Lanes               Value
	LanesScore          Value
	Width               Value
	WidthHalf           Value
	Separation          SeparationLevel
	SeparationScore     Value
	StreetType          string
	StreetClass         StreetClass
	ClassificationScore Value
	CompositeScore      Value
}

// IsScored reports whether the scoring pipeline has processed the edge
func (edge *Edge) IsScored() bool {
	return edge.Separation != 0 && edge.StreetClass != 0
}

// Cost returns non-negative cost of traversing the edge for given weight selector.
// Composite score is turned into stress (MAX_SCORE - composite) so most suitable edges are the cheapest
func (edge *Edge) Cost(w Weight) (float64, error) {
	switch w {
	case WEIGHT_LENGTH:
		return edge.Length, nil
	case WEIGHT_COMPOSITE:
		composite, ok := edge.CompositeScore.Get()
		if !ok {
			return 0, &UnknownWeightError{Source: edge.Source, Target: edge.Target, Weight: w}
		}
		return MAX_SCORE - composite, nil
	default:
		return 0, errors.WithStack(&ConfigError{Field: "weight", Value: string(w)})
	}
}

// EdgeGeometry returns edge geometry or, when the loader provided none, straight segment between its nodes
func EdgeGeometry(graph *Graph, edge *Edge) orb.LineString {
	if len(edge.Geom) > 1 {
		return edge.Geom
	}
	line := make(orb.LineString, 0, 2)
	if node, ok := graph.Node(edge.Source); ok {
		line = append(line, node.Geom)
	}
	if node, ok := graph.Node(edge.Target); ok {
		line = append(line, node.Geom)
	}
	return line
}
