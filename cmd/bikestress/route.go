package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	bikestress "github.com/dustinmichels/bike-stress-model"
)

var (
	routeGraph  string
	routeFrom   string
	routeTo     string
	routeWeight string
	routeFormat string
)

var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "Find single route between two coordinates",
	RunE: func(cmd *cobra.Command, args []string) error {
		weightStr := routeWeight
		if weightStr == "" {
			weightStr = cfg.Routing.Weight
		}
		w, err := bikestress.ParseWeight(weightStr)
		if err != nil {
			return err
		}
		from, err := parsePoint(routeFrom)
		if err != nil {
			return errors.Wrap(err, "origin")
		}
		to, err := parsePoint(routeTo)
		if err != nil {
			return errors.Wrap(err, "destination")
		}
		graph, err := loadScoredGraph(cmd.Context(), routeGraph)
		if err != nil {
			return err
		}
		router, err := newRouter(graph)
		if err != nil {
			return errors.Wrap(err, "prepare router")
		}
		ctx, cancel := withRouteTimeout(cmd.Context(), cfg.Routing.RouteTimeoutSecs)
		defer cancel()
		route, err := router.Route(ctx, from, to, w)
		if err != nil {
			return errors.Wrap(err, "route")
		}
		zap.L().Info("route found",
			zap.Int("nodes", len(route.Nodes)),
			zap.Float64("length", route.Stats.Length),
			zap.String("composite_mean", route.Stats.Mean.String()),
			zap.String("composite_median", route.Stats.Median.String()),
		)
		switch strings.ToLower(routeFormat) {
		case "wkt":
			_, err = fmt.Fprintln(cmd.OutOrStdout(), route.WKT())
		default:
			var b []byte
			b, err = route.GeoJSON()
			if err == nil {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
			}
		}
		return err
	},
}

func init() {
	routeCmd.Flags().StringVar(&routeGraph, "graph", "graph.json", "Graph file: node-link JSON, *.osm or *.osm.pbf")
	routeCmd.Flags().StringVar(&routeFrom, "from", "", "Origin as 'x,y' in graph CRS")
	routeCmd.Flags().StringVar(&routeTo, "to", "", "Destination as 'x,y' in graph CRS")
	routeCmd.Flags().StringVar(&routeWeight, "weight", "", "Weight: composite_score / length (defaults to routing.weight)")
	routeCmd.Flags().StringVar(&routeFormat, "format", "geojson", "Output format: geojson / wkt")
	_ = routeCmd.MarkFlagRequired("from")
	_ = routeCmd.MarkFlagRequired("to")
}

// withRouteTimeout bounds single route search. Non-positive seconds leave ctx as is
func withRouteTimeout(ctx context.Context, seconds float64) (context.Context, context.CancelFunc) {
	if seconds <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, routeTimeout(seconds))
}

func routeTimeout(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
