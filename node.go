package bikestress

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
)

// Node is a vertex of street network. Geom is expressed in the graph CRS (x, y)
type Node struct {
	ID   osm.NodeID
	Geom orb.Point
}
