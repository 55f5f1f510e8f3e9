package bikestress

import (
	"container/heap"
	"context"

	"github.com/paulmach/osm"
)

const (
	// How often (in settled vertices) the search checks its context
	ctxCheckInterval = 256
)

type queueItem struct {
	id    osm.NodeID
	cost  float64
	index int
}

type priorityQueue []*queueItem

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool { return pq[i].cost < pq[j].cost }

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityQueue) Push(x interface{}) {
	item := x.(*queueItem)
	item.index = len(*pq)
	*pq = append(*pq, item)
}

func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return item
}

// pathResult is raw output of a shortest path search
type pathResult struct {
	nodes []osm.NodeID
	edges []*Edge
	cost  float64
	// Number of edges skipped because of unknown weight
	skipped int
}

// usableEdges returns, per target, the first parallel edge leaving id with known cost
func usableEdges(graph *Graph, id osm.NodeID, w Weight) ([]*Edge, []float64, int) {
	outgoing := graph.Outgoing(id)
	edges := make([]*Edge, 0, len(outgoing))
	costs := make([]float64, 0, len(outgoing))
	skipped := 0
	seen := make(map[osm.NodeID]struct{}, len(outgoing))
	for _, edge := range outgoing {
		if _, ok := seen[edge.Target]; ok {
			continue
		}
		cost, err := edge.Cost(w)
		if err != nil {
			// *UnknownWeightError: edge is unreachable for this weight
			skipped++
			continue
		}
		seen[edge.Target] = struct{}{}
		edges = append(edges, edge)
		costs = append(costs, cost)
	}
	return edges, costs, skipped
}

// shortestPath runs Dijkstra's algorithm from source to target minimizing summed edge cost.
// Edges with unknown weight are treated as absent
func shortestPath(ctx context.Context, graph *Graph, source, target osm.NodeID, w Weight) (*pathResult, error) {
	if source == target {
		return &pathResult{nodes: []osm.NodeID{source}}, nil
	}
	dist := map[osm.NodeID]float64{source: 0}
	prev := make(map[osm.NodeID]*Edge)
	settled := make(map[osm.NodeID]struct{})
	skipped := 0

	pq := &priorityQueue{}
	heap.Init(pq)
	heap.Push(pq, &queueItem{id: source, cost: 0})
	for iter := 0; pq.Len() > 0; iter++ {
		if iter%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		current := heap.Pop(pq).(*queueItem)
		if _, ok := settled[current.id]; ok {
			continue
		}
		settled[current.id] = struct{}{}
		if current.id == target {
			break
		}
		edges, costs, skippedHere := usableEdges(graph, current.id, w)
		skipped += skippedHere
		for i, edge := range edges {
			if _, ok := settled[edge.Target]; ok {
				continue
			}
			newCost := current.cost + costs[i]
			if known, ok := dist[edge.Target]; ok && newCost >= known {
				continue
			}
			dist[edge.Target] = newCost
			prev[edge.Target] = edge
			heap.Push(pq, &queueItem{id: edge.Target, cost: newCost})
		}
	}
	if _, ok := settled[target]; !ok {
		return nil, ErrNoRouteFound
	}
	return reconstructPath(prev, source, target, dist[target], skipped), nil
}

func reconstructPath(prev map[osm.NodeID]*Edge, source, target osm.NodeID, cost float64, skipped int) *pathResult {
	edges := []*Edge{}
	for current := target; current != source; {
		edge := prev[current]
		edges = append(edges, edge)
		current = edge.Source
	}
	nodes := make([]osm.NodeID, 0, len(edges)+1)
	nodes = append(nodes, source)
	// edges were collected backwards
	for i, j := 0, len(edges)-1; i < j; i, j = i+1, j-1 {
		edges[i], edges[j] = edges[j], edges[i]
	}
	for _, edge := range edges {
		nodes = append(nodes, edge.Target)
	}
	return &pathResult{nodes: nodes, edges: edges, cost: cost, skipped: skipped}
}
