package main

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	bikestress "github.com/dustinmichels/bike-stress-model"
)

// loadScoredGraph reads node-link JSON or OSM (*.osm, *.osm.pbf) graph and scores its edges
func loadScoredGraph(ctx context.Context, path string) (*bikestress.Graph, error) {
	var graph *bikestress.Graph
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "read graph file")
		}
		graph, err = bikestress.LoadGraphJSON(data)
		if err != nil {
			return nil, errors.Wrap(err, "load graph JSON")
		}
	case ".osm", ".xml", ".pbf":
		var err error
		graph, err = bikestress.ImportFromOSMFile(ctx, path, zap.L())
		if err != nil {
			return nil, errors.Wrap(err, "import OSM file")
		}
	default:
		return nil, errors.Errorf("unsupported graph file '%s'", path)
	}
	zap.L().Info("graph loaded",
		zap.String("file", path),
		zap.String("crs", graph.CRS),
		zap.Int("nodes", graph.NodesNum()),
		zap.Int("edges", graph.EdgesNum()),
	)
	pipeline := bikestress.NewPipeline(bikestress.WithScoringConfig(cfg.Scoring))
	zap.L().Debug("scoring graph", zap.Stringer("config", pipeline.Config()))
	if err := pipeline.Run(graph); err != nil {
		return nil, errors.Wrap(err, "score graph")
	}
	return graph, nil
}

func newRouter(graph *bikestress.Graph) (*bikestress.Router, error) {
	weights := make([]bikestress.Weight, 0, len(cfg.Routing.Contraction))
	for _, str := range cfg.Routing.Contraction {
		w, err := bikestress.ParseWeight(str)
		if err != nil {
			return nil, errors.Wrap(err, "routing.contraction")
		}
		weights = append(weights, w)
	}
	return bikestress.NewRouter(graph, bikestress.WithContraction(weights...))
}

// parsePoint parses "x,y" (lon,lat for geographic graphs)
func parsePoint(str string) (orb.Point, error) {
	parts := strings.Split(str, ",")
	if len(parts) != 2 {
		return orb.Point{}, errors.Errorf("point must be 'x,y', got '%s'", str)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return orb.Point{}, errors.Wrapf(err, "parse x of '%s'", str)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return orb.Point{}, errors.Wrapf(err, "parse y of '%s'", str)
	}
	return orb.Point{x, y}, nil
}

// readLocations reads ';'-separated file with header: id;x;y
func readLocations(r io.Reader) ([]bikestress.Location, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = 3
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "read locations")
	}
	if len(records) == 0 {
		return nil, nil
	}
	locations := make([]bikestress.Location, 0, len(records)-1)
	for i, record := range records[1:] {
		pt, err := parsePoint(record[1] + "," + record[2])
		if err != nil {
			return nil, errors.Wrapf(err, "location on line %d", i+2)
		}
		locations = append(locations, bikestress.Location{ID: record[0], Point: pt})
	}
	return locations, nil
}

func readLocationsFile(path string) ([]bikestress.Location, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open locations file")
	}
	defer file.Close()
	return readLocations(file)
}
