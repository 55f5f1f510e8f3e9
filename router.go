package bikestress

import (
	"context"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Router computes single-pair weighted shortest paths over a scored graph.
// Graph must not be mutated while Router is in use
type Router struct {
	graph            *Graph
	index            *nodeIndex
	logger           *zap.Logger
	contractWeights  []Weight
	contractedEngine map[Weight]*contractionEngine
}

func NewRouter(graph *Graph, options ...func(*Router)) (*Router, error) {
	router := &Router{
		graph:            graph,
		logger:           zap.L(),
		contractedEngine: make(map[Weight]*contractionEngine),
	}
	for _, option := range options {
		option(router)
	}
	index, err := newNodeIndex(graph)
	if err != nil {
		return nil, errors.Wrap(err, "Can't build spatial index")
	}
	router.index = index
	for _, w := range router.contractWeights {
		if err := w.Validate(); err != nil {
			return nil, err
		}
		engine, err := newContractionEngine(graph, w)
		if err != nil {
			return nil, errors.Wrapf(err, "Can't prepare contraction hierarchies for '%s'", w)
		}
		router.contractedEngine[w] = engine
		router.logger.Info("Contraction hierarchies prepared", zap.String("weight", w.String()))
	}
	return router, nil
}

// WithContraction prepares contraction hierarchies for given weights. Queries for those weights use them.
// A contracted query checks its context only before it starts, so a deadline can't interrupt it halfway
func WithContraction(weights ...Weight) func(*Router) {
	return func(router *Router) {
		router.contractWeights = append(router.contractWeights, weights...)
	}
}

func WithRouterLogger(logger *zap.Logger) func(*Router) {
	return func(router *Router) {
		router.logger = logger
	}
}

// Graph returns underlying graph
func (router *Router) Graph() *Graph {
	return router.graph
}

// Snap attaches coordinate (in graph CRS) to the nearest graph node
func (router *Router) Snap(pt orb.Point) (Snap, error) {
	node, distance, err := router.index.Nearest(pt)
	if err != nil {
		return Snap{}, err
	}
	return Snap{Query: pt, NodeID: node.ID, Distance: distance}, nil
}

// Route snaps both coordinates and searches the cheapest path for the weight selector.
// Unreachable destination is ErrNoRouteFound, elapsed context deadline is ErrRouteTimeout
func (router *Router) Route(ctx context.Context, origin, destination orb.Point, w Weight) (*RouteResult, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	originSnap, err := router.Snap(origin)
	if err != nil {
		return nil, errors.Wrap(err, "Can't snap origin")
	}
	destinationSnap, err := router.Snap(destination)
	if err != nil {
		return nil, errors.Wrap(err, "Can't snap destination")
	}
	return router.route(ctx, originSnap, destinationSnap, w)
}

// RouteNodes searches path between two graph nodes
func (router *Router) RouteNodes(ctx context.Context, source, target osm.NodeID, w Weight) (*RouteResult, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	sourceNode, ok := router.graph.Node(source)
	if !ok {
		return nil, malformed("unknown source node %d", source)
	}
	targetNode, ok := router.graph.Node(target)
	if !ok {
		return nil, malformed("unknown target node %d", target)
	}
	return router.route(ctx, Snap{Query: sourceNode.Geom, NodeID: source}, Snap{Query: targetNode.Geom, NodeID: target}, w)
}

func (router *Router) route(ctx context.Context, origin, destination Snap, w Weight) (*RouteResult, error) {
	var path *pathResult
	var err error
	if engine, ok := router.contractedEngine[w]; ok {
		path, err = engine.shortestPath(ctx, origin.NodeID, destination.NodeID)
	} else {
		path, err = shortestPath(ctx, router.graph, origin.NodeID, destination.NodeID, w)
	}
	if err != nil {
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			return nil, errors.Wrapf(ErrRouteTimeout, "from node %d to node %d", origin.NodeID, destination.NodeID)
		case errors.Is(err, ErrNoRouteFound):
			return nil, errors.Wrapf(ErrNoRouteFound, "from node %d to node %d", origin.NodeID, destination.NodeID)
		default:
			return nil, errors.Wrap(err, "Can't find shortest path")
		}
	}
	if path.skipped > 0 {
		router.logger.Debug("Edges with unknown weight excluded from search",
			zap.String("weight", w.String()),
			zap.Int("skipped", path.skipped),
		)
	}
	return newRouteResult(router.graph, path, w, origin, destination), nil
}
