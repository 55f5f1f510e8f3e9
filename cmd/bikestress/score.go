package main

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	bikestress "github.com/dustinmichels/bike-stress-model"
)

var (
	scoreGraph      string
	scoreOut        string
	scoreGeomFormat string
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score street segments and write enriched edge table",
	Long:  "Loads graph (node-link JSON, *.osm or *.osm.pbf), scores every edge and writes ';'-separated edge table with derived columns.",
	RunE: func(cmd *cobra.Command, args []string) error {
		graph, err := loadScoredGraph(cmd.Context(), scoreGraph)
		if err != nil {
			return err
		}
		var out io.Writer = cmd.OutOrStdout()
		if scoreOut != "" && scoreOut != "-" {
			file, err := os.Create(scoreOut)
			if err != nil {
				return errors.Wrap(err, "create edges file")
			}
			defer file.Close()
			out = file
		}
		return writeEdgeTable(out, graph, scoreGeomFormat)
	},
}

func init() {
	scoreCmd.Flags().StringVar(&scoreGraph, "graph", "graph.json", "Graph file: node-link JSON, *.osm or *.osm.pbf")
	scoreCmd.Flags().StringVar(&scoreOut, "out", "-", "Output CSV file ('-' for stdout)")
	scoreCmd.Flags().StringVar(&scoreGeomFormat, "geomf", "wkt", "Format of output geometry. Expected values: wkt / geojson")
}

// writeEdgeTable writes enriched edges with trailing geometry column
func writeEdgeTable(w io.Writer, graph *bikestress.Graph, geomFormat string) error {
	writer := csv.NewWriter(w)
	writer.Comma = ';'
	table := bikestress.NewEdgeTable(graph)
	header := append(append([]string{}, table.Columns()...), "geom")
	if err := writer.Write(header); err != nil {
		return errors.Wrap(err, "write header")
	}
	edges := graph.Edges()
	for i, row := range table.Rows() {
		geomStr, err := edgeGeometry(graph, edges[i], geomFormat)
		if err != nil {
			return err
		}
		if err := writer.Write(append(row, geomStr)); err != nil {
			return errors.Wrap(err, "write edge")
		}
	}
	writer.Flush()
	return errors.Wrap(writer.Error(), "flush edges")
}

func edgeGeometry(graph *bikestress.Graph, edge *bikestress.Edge, geomFormat string) (string, error) {
	if strings.ToLower(geomFormat) == "geojson" {
		return bikestress.PrepareGeoJSONLinestring(bikestress.EdgeGeometry(graph, edge))
	}
	return bikestress.PrepareWKTLinestring(bikestress.EdgeGeometry(graph, edge)), nil
}
