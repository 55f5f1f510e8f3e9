package main

import (
	"encoding/csv"
	"os"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	bikestress "github.com/dustinmichels/bike-stress-model"
)

var (
	batchGraph        string
	batchOrigins      string
	batchDestinations string
	batchWeight       string
	batchOut          string
	batchErrorsOut    string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Route every origin to every destination",
	Long:  "Routes all origin/destination pairs concurrently, writes routes as GeoJSON FeatureCollection and failed pairs as ';'-separated error log.",
	RunE: func(cmd *cobra.Command, args []string) error {
		weightStr := batchWeight
		if weightStr == "" {
			weightStr = cfg.Routing.Weight
		}
		w, err := bikestress.ParseWeight(weightStr)
		if err != nil {
			return err
		}
		origins, err := readLocationsFile(batchOrigins)
		if err != nil {
			return errors.Wrap(err, "origins")
		}
		destinations, err := readLocationsFile(batchDestinations)
		if err != nil {
			return errors.Wrap(err, "destinations")
		}
		graph, err := loadScoredGraph(cmd.Context(), batchGraph)
		if err != nil {
			return err
		}
		router, err := newRouter(graph)
		if err != nil {
			return errors.Wrap(err, "prepare router")
		}
		registry := prometheus.NewRegistry()
		batchRouter := bikestress.NewBatchRouter(router,
			bikestress.WithWorkers(cfg.Routing.Workers),
			bikestress.WithRouteTimeout(routeTimeout(cfg.Routing.RouteTimeoutSecs)),
			bikestress.WithMetrics(bikestress.NewMetrics(registry)),
		)
		result, err := batchRouter.Run(cmd.Context(), origins, destinations, w)
		if err != nil {
			return err
		}
		b, err := result.GeoJSON()
		if err != nil {
			return err
		}
		if err := os.WriteFile(batchOut, b, 0644); err != nil {
			return errors.Wrap(err, "write routes")
		}
		if err := writePairErrors(batchErrorsOut, result.Errors); err != nil {
			return err
		}
		if cfg.Metrics.TextfilePath != "" {
			if err := prometheus.WriteToTextfile(cfg.Metrics.TextfilePath, registry); err != nil {
				return errors.Wrap(err, "write metrics")
			}
		}
		zap.L().Info("batch written",
			zap.String("run_id", result.RunID.String()),
			zap.String("routes_file", batchOut),
			zap.String("errors_file", batchErrorsOut),
		)
		return nil
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchGraph, "graph", "graph.json", "Graph file: node-link JSON, *.osm or *.osm.pbf")
	batchCmd.Flags().StringVar(&batchOrigins, "origins", "origins.csv", "Origins file with header id;x;y")
	batchCmd.Flags().StringVar(&batchDestinations, "destinations", "destinations.csv", "Destinations file with header id;x;y")
	batchCmd.Flags().StringVar(&batchWeight, "weight", "", "Weight: composite_score / length (defaults to routing.weight)")
	batchCmd.Flags().StringVar(&batchOut, "out", "routes.geojson", "Output GeoJSON file")
	batchCmd.Flags().StringVar(&batchErrorsOut, "errors", "routes_errors.csv", "Output file for failed pairs")
}

func writePairErrors(path string, pairErrors []bikestress.PairError) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create errors file")
	}
	defer file.Close()
	writer := csv.NewWriter(file)
	writer.Comma = ';'
	if err := writer.Write([]string{"origin_id", "destination_id", "kind", "message"}); err != nil {
		return errors.Wrap(err, "write errors header")
	}
	for _, pairErr := range pairErrors {
		if err := writer.Write([]string{pairErr.OriginID, pairErr.DestinationID, pairErr.Kind, pairErr.Message}); err != nil {
			return errors.Wrap(err, "write pair error")
		}
	}
	writer.Flush()
	return errors.Wrap(writer.Error(), "flush errors")
}
