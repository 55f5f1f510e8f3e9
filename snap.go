package bikestress

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/quadtree"
	"github.com/pkg/errors"
)

// indexedNode is node position in the index frame (Web Mercator for geographic graphs)
type indexedNode struct {
	node *Node
	pt   orb.Point
}

func (in indexedNode) Point() orb.Point {
	return in.pt
}

// nodeIndex snaps arbitrary coordinates to the nearest graph node
type nodeIndex struct {
	tree       *quadtree.Quadtree
	geographic bool
}

func newNodeIndex(graph *Graph) (*nodeIndex, error) {
	nodes := graph.Nodes()
	if len(nodes) == 0 {
		return nil, ErrEmptyGraph
	}
	index := &nodeIndex{geographic: graph.IsGeographic()}
	indexed := make([]indexedNode, len(nodes))
	mp := make(orb.MultiPoint, len(nodes))
	for i, node := range nodes {
		indexed[i] = indexedNode{node: node, pt: index.project(node.Geom)}
		mp[i] = indexed[i].pt
	}
	index.tree = quadtree.New(mp.Bound().Pad(1.0))
	for i := range indexed {
		if err := index.tree.Add(indexed[i]); err != nil {
			return nil, errors.Wrapf(err, "Can't index node %d", indexed[i].node.ID)
		}
	}
	return index, nil
}

func (index *nodeIndex) project(pt orb.Point) orb.Point {
	if index.geographic {
		return pointToEuclidean(pt)
	}
	return pt
}

// Nearest returns closest node to pt (given in graph CRS) and distance to it in meters
func (index *nodeIndex) Nearest(pt orb.Point) (*Node, float64, error) {
	found := index.tree.Find(index.project(pt))
	if found == nil {
		return nil, 0, ErrEmptyGraph
	}
	node := found.(indexedNode).node
	if index.geographic {
		return node, greatCircleDistance(pt, node.Geom) * 1000.0, nil
	}
	return node, planar.Distance(pt, node.Geom), nil
}
