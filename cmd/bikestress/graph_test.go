package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bikestress "github.com/dustinmichels/bike-stress-model"
)

const testGraphJSON = `{
	"graph": {"crs": "epsg:3857"},
	"nodes": [{"id": 1, "x": 0, "y": 0}, {"id": 2, "x": 100, "y": 0}],
	"links": [{"source": 1, "target": 2, "length": 100, "highway": "residential", "maxspeed": "25 mph", "lanes": "2"}]
}`

func TestParsePoint(t *testing.T) {
	pt, err := parsePoint("-71.0589, 42.3601")
	require.NoError(t, err)
	assert.Equal(t, orb.Point{-71.0589, 42.3601}, pt)

	for _, bad := range []string{"", "1", "1,2,3", "a,2", "1,b"} {
		_, err := parsePoint(bad)
		assert.Error(t, err, bad)
	}
}

func TestReadLocations(t *testing.T) {
	data := "id;x;y\nhome;-71.0589;42.3601\nwork;-71.0600;42.3650\n"
	locations, err := readLocations(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, locations, 2)
	assert.Equal(t, "home", locations[0].ID)
	assert.Equal(t, orb.Point{-71.06, 42.365}, locations[1].Point)

	locations, err = readLocations(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, locations)

	_, err = readLocations(strings.NewReader("id;x;y\nhome;-71.0589\n"))
	assert.Error(t, err)

	_, err = readLocations(strings.NewReader("id;x;y\nhome;west;42.3601\n"))
	assert.Error(t, err)
}

func TestLoadScoredGraphAndWriteTable(t *testing.T) {
	cfg = &Config{Scoring: bikestress.DefaultScoringConfig()}
	path := filepath.Join(t.TempDir(), "graph.json")
	require.NoError(t, os.WriteFile(path, []byte(testGraphJSON), 0o644))

	graph, err := loadScoredGraph(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 1, graph.EdgesNum())
	assert.Equal(t, bikestress.Known(5.75), graph.Edges()[0].CompositeScore)

	var buf bytes.Buffer
	require.NoError(t, writeEdgeTable(&buf, graph, "wkt"))
	reader := csv.NewReader(&buf)
	reader.Comma = ';'
	records, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	header := records[0]
	assert.Equal(t, "geom", header[len(header)-1])
	assert.Equal(t, "LINESTRING(0 0,100 0)", records[1][len(header)-1])
	assert.Contains(t, header, "composite_score")

	_, err = loadScoredGraph(context.Background(), filepath.Join(t.TempDir(), "graph.csv"))
	assert.Error(t, err)
}

func TestWithRouteTimeout(t *testing.T) {
	ctx, cancel := withRouteTimeout(context.Background(), 0)
	defer cancel()
	_, ok := ctx.Deadline()
	assert.False(t, ok)

	ctx, cancel = withRouteTimeout(context.Background(), 1.5)
	defer cancel()
	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(1500*time.Millisecond), deadline, time.Second)
	assert.Equal(t, 250*time.Millisecond, routeTimeout(0.25))
}
