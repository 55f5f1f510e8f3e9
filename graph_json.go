package bikestress

import (
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/osm"
	"github.com/tidwall/gjson"
)

// Link fields which are graph structure rather than raw attributes
var linkStructuralFields = map[string]struct{}{
	"source":   {},
	"target":   {},
	"key":      {},
	"length":   {},
	"geometry": {},
}

// LoadGraphJSON builds graph from node-link JSON (the format networkx/osmnx export):
//
//	{"graph": {"crs": "epsg:4326"}, "nodes": [{"id": 1, "x": .., "y": ..}], "links": [{"source": 1, "target": 2, "length": .., "highway": ..}]}
//
// "edges" is accepted instead of "links". Attribute values may be scalars or lists.
// Missing edge length is derived from WKT "geometry" or from node coordinates
func LoadGraphJSON(data []byte) (*Graph, error) {
	if !gjson.ValidBytes(data) {
		return nil, malformed("graph JSON is not valid")
	}
	doc := gjson.ParseBytes(data)
	nodes := doc.Get("nodes")
	if !nodes.IsArray() {
		return nil, malformed("graph JSON has no 'nodes' array")
	}
	links := doc.Get("links")
	if !links.Exists() {
		links = doc.Get("edges")
	}
	if links.Exists() && !links.IsArray() {
		return nil, malformed("graph JSON 'links' is not an array")
	}

	graph := NewGraph(doc.Get("graph.crs").String())
	for i, node := range nodes.Array() {
		id, err := jsonNodeID(node.Get("id"))
		if err != nil {
			return nil, malformed("node #%d has invalid id", i)
		}
		x, y := node.Get("x"), node.Get("y")
		if x.Type != gjson.Number || y.Type != gjson.Number {
			return nil, malformed("node %d has no numeric coordinates", id)
		}
		graph.AddNode(id, orb.Point{x.Num, y.Num})
	}
	for i, link := range links.Array() {
		source, err := jsonNodeID(link.Get("source"))
		if err != nil {
			return nil, malformed("link #%d has invalid source", i)
		}
		target, err := jsonNodeID(link.Get("target"))
		if err != nil {
			return nil, malformed("link #%d has invalid target", i)
		}
		attrs := Attributes{}
		link.ForEach(func(key, value gjson.Result) bool {
			if _, ok := linkStructuralFields[key.String()]; !ok {
				attrs[key.String()] = jsonRawValue(value)
			}
			return true
		})
		var geometry orb.LineString
		if raw := link.Get("geometry"); raw.Type == gjson.String {
			geometry, err = wkt.UnmarshalLineString(raw.Str)
			if err != nil {
				return nil, malformed("link #%d has invalid WKT geometry", i)
			}
		}
		length, err := jsonLinkLength(graph, link.Get("length"), geometry, source, target)
		if err != nil {
			return nil, err
		}
		edge, err := graph.AddEdge(source, target, length, attrs)
		if err != nil {
			return nil, err
		}
		edge.Geom = geometry
	}
	return graph, nil
}

func jsonNodeID(r gjson.Result) (osm.NodeID, error) {
	switch r.Type {
	case gjson.Number:
		return osm.NodeID(r.Int()), nil
	case gjson.String:
		id, err := strconv.ParseInt(r.Str, 10, 64)
		if err != nil {
			return 0, err
		}
		return osm.NodeID(id), nil
	default:
		return 0, malformed("unexpected id type %s", r.Type)
	}
}

func jsonLinkLength(graph *Graph, raw gjson.Result, geometry orb.LineString, source, target osm.NodeID) (float64, error) {
	switch {
	case raw.Type == gjson.Number:
		return raw.Num, nil
	case raw.Exists() && raw.Type != gjson.Null:
		return 0, malformed("edge %d -> %d has non-numeric length", source, target)
	case len(geometry) > 1 && graph.IsGeographic():
		return getSphericalLength(geometry) * 1000.0, nil
	case len(geometry) > 1:
		return getLength(geometry), nil
	}
	sourceNode, ok := graph.Node(source)
	if !ok {
		return 0, malformed("edge %d -> %d references unknown source node", source, target)
	}
	targetNode, ok := graph.Node(target)
	if !ok {
		return 0, malformed("edge %d -> %d references unknown target node", source, target)
	}
	return graph.edgeLength(sourceNode.Geom, targetNode.Geom), nil
}

// jsonRawValue converts decoded JSON attribute into RawValue. Arrays become sequences
func jsonRawValue(r gjson.Result) RawValue {
	if r.IsArray() {
		items := []Scalar{}
		r.ForEach(func(_, item gjson.Result) bool {
			items = append(items, jsonScalar(item))
			return true
		})
		return Sequence(items...)
	}
	return Single(jsonScalar(r))
}

func jsonScalar(r gjson.Result) Scalar {
	switch r.Type {
	case gjson.Null:
		return Null()
	case gjson.Number:
		return Number(r.Num)
	case gjson.String:
		return Text(r.Str)
	case gjson.True, gjson.False:
		return Text(r.String())
	default:
		return Text(r.Raw)
	}
}
