package bikestress

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	ATTR_OSM_ID   = "osmid"
	ATTR_REVERSED = "reversed"
)

type OSMScanner interface {
	Scan() bool
	Close() error
	Err() error
	Object() osm.Object
}

func newOSMScanner(ctx context.Context, file *os.File, filename string) (OSMScanner, error) {
	// Guess file extension and prepare correct scanner
	ext := filepath.Ext(filename)
	switch ext {
	case ".osm", ".xml":
		return osmxml.New(ctx, file), nil
	case ".pbf":
		return osmpbf.New(ctx, file, 4), nil
	default:
		return nil, errors.Errorf("File extension '%s' for file '%s' is not handled yet", ext, filename)
	}
}

// ImportFromOSMFile reads bicycle network from *.osm / *.osm.pbf file and builds graph in EPSG:4326
func ImportFromOSMFile(ctx context.Context, filename string, logger *zap.Logger) (*Graph, error) {
	if logger == nil {
		logger = zap.L()
	}
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "Can't open OSM file")
	}
	defer file.Close()

	st := time.Now()
	ways := []*osm.Way{}
	nodesSeen := make(map[osm.NodeID]struct{})
	{
		scannerWays, err := newOSMScanner(ctx, file, filename)
		if err != nil {
			return nil, err
		}
		defer scannerWays.Close()
		for scannerWays.Scan() {
			obj := scannerWays.Object()
			if obj.ObjectID().Type() != osm.TypeWay {
				continue
			}
			way := obj.(*osm.Way)
			if !isBikeWay(way) {
				continue
			}
			ways = append(ways, way)
			for _, node := range way.Nodes {
				nodesSeen[node.ID] = struct{}{}
			}
		}
		if err := scannerWays.Err(); err != nil {
			return nil, errors.Wrap(err, "Scanner error on ways")
		}
	}
	logger.Info("Ways scanned", zap.Int("ways", len(ways)), zap.Duration("elapsed", time.Since(st)))

	// Seek file to start
	_, err = file.Seek(0, io.SeekStart)
	if err != nil {
		return nil, errors.Wrap(err, "Can't repeat seeking after ways scanning")
	}

	st = time.Now()
	nodes := make(map[osm.NodeID]*osm.Node, len(nodesSeen))
	{
		scannerNodes, err := newOSMScanner(ctx, file, filename)
		if err != nil {
			return nil, err
		}
		defer scannerNodes.Close()
		for scannerNodes.Scan() {
			obj := scannerNodes.Object()
			if obj.ObjectID().Type() != osm.TypeNode {
				continue
			}
			node := obj.(*osm.Node)
			if _, ok := nodesSeen[node.ID]; ok {
				nodes[node.ID] = node
			}
		}
		if err := scannerNodes.Err(); err != nil {
			return nil, errors.Wrap(err, "Scanner error on nodes")
		}
	}
	logger.Info("Nodes scanned", zap.Int("nodes", len(nodes)), zap.Duration("elapsed", time.Since(st)))
	return BuildGraphFromOSM(ways, nodes)
}

// isBikeWay keeps ways of street network which are rideable by bicycle
func isBikeWay(way *osm.Way) bool {
	if len(way.Nodes) < 2 {
		return false
	}
	tags := way.TagMap()
	if tags[KEY_HIGHWAY] == "" {
		return false
	}
	// Ignore ways with `area` tag provided
	if area := tags[KEY_AREA]; area != "" && area != "no" {
		return false
	}
	return isBikeAllowed(tags)
}

// BuildGraphFromOSM splits ways at intersections and builds directed graph in EPSG:4326.
// Two-way streets produce an edge per direction; tag values separated by ';' become sequences
func BuildGraphFromOSM(ways []*osm.Way, nodes map[osm.NodeID]*osm.Node) (*Graph, error) {
	useCount := make(map[osm.NodeID]int, len(nodes))
	for _, way := range ways {
		for i, wayNode := range way.Nodes {
			if _, ok := nodes[wayNode.ID]; !ok {
				return nil, malformed("no such node %d. Way ID: %d", wayNode.ID, way.ID)
			}
			if i == 0 || i == len(way.Nodes)-1 {
				useCount[wayNode.ID] += 2
			} else {
				useCount[wayNode.ID]++
			}
		}
	}

	graph := NewGraph(CRS_WGS84)
	for _, way := range ways {
		forward, backward := wayDirections(way.Tags)
		attrs := osmAttributes(way)
		source := way.Nodes[0].ID
		geometry := orb.LineString{nodePoint(nodes[source])}
		for i := 1; i < len(way.Nodes); i++ {
			id := way.Nodes[i].ID
			geometry = append(geometry, nodePoint(nodes[id]))
			if useCount[id] < 2 && i != len(way.Nodes)-1 {
				continue
			}
			graph.AddNode(source, geometry[0])
			graph.AddNode(id, geometry[len(geometry)-1])
			length := getSphericalLength(geometry) * 1000.0
			if forward {
				if err := addOSMEdge(graph, way.ID, source, id, length, geometry, attrs, false); err != nil {
					return nil, err
				}
			}
			if backward {
				if err := addOSMEdge(graph, way.ID, id, source, length, reverseLine(geometry), attrs, true); err != nil {
					return nil, err
				}
			}
			source = id
			geometry = orb.LineString{geometry[len(geometry)-1]}
		}
	}
	return graph, nil
}

func addOSMEdge(graph *Graph, wayID osm.WayID, source, target osm.NodeID, length float64, geometry orb.LineString, attrs Attributes, reversed bool) error {
	edgeAttrs := make(Attributes, len(attrs)+1)
	for k, v := range attrs {
		edgeAttrs[k] = v
	}
	if reversed {
		edgeAttrs[ATTR_REVERSED] = TextValue("true")
	} else {
		edgeAttrs[ATTR_REVERSED] = TextValue("false")
	}
	edge, err := graph.AddEdge(source, target, length, edgeAttrs)
	if err != nil {
		return errors.Wrapf(err, "Can't add edge of way %d", wayID)
	}
	edge.WayID = wayID
	edge.Geom = geometry
	return nil
}

func nodePoint(node *osm.Node) orb.Point {
	return orb.Point{node.Lon, node.Lat}
}

// wayDirections returns which directions of the way are rideable
func wayDirections(tags osm.Tags) (bool, bool) {
	// Contraflow cycling is explicitly allowed
	if tags.Find(KEY_ONEWAY_BICYCLE) == "no" {
		return true, true
	}
	onewayText := tags.Find(KEY_ONEWAY)
	if _, ok := onewayForward[onewayText]; ok {
		return true, false
	}
	if _, ok := onewayReversed[onewayText]; ok {
		return false, true
	}
	if onewayText == "" {
		if _, ok := junctionTypes[tags.Find(KEY_JUNCTION)]; ok {
			return true, false
		}
	}
	return true, true
}

// osmAttributes converts way tags to raw attributes
func osmAttributes(way *osm.Way) Attributes {
	attrs := make(Attributes, len(way.Tags)+1)
	for _, tag := range way.Tags {
		attrs[tag.Key] = osmTagValue(tag.Value)
	}
	attrs[ATTR_OSM_ID] = NumberValue(float64(way.ID))
	return attrs
}

// osmTagValue splits multi-valued tags ("primary;secondary") into sequences
func osmTagValue(value string) RawValue {
	if !strings.Contains(value, ";") {
		return TextValue(value)
	}
	parts := strings.Split(value, ";")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return TextSequence(parts...)
}
