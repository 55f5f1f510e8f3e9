package bikestress

import (
	geojson "github.com/paulmach/go.geojson"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// geographicLine returns line in lon/lat when graph CRS allows it
func geographicLine(line orb.LineString, crs string) orb.LineString {
	if isCRS(crs, CRS_WEB_MERCATOR) {
		return lineToGeographic(line)
	}
	return line
}

func geoJSONLinestringGeometry(line orb.LineString) *geojson.Geometry {
	pts2d := make([][]float64, len(line))
	for i := range line {
		pts2d[i] = []float64{line[i].X(), line[i].Y()}
	}
	return geojson.NewLineStringGeometry(pts2d)
}

// PrepareGeoJSONLinestring returns GeoJSON representation of LineString
func PrepareGeoJSONLinestring(line orb.LineString) (string, error) {
	b, err := geoJSONLinestringGeometry(line).MarshalJSON()
	if err != nil {
		return "", errors.Wrap(err, "Can't convert geometry to GeoJSON")
	}
	return string(b), nil
}

func setValueProperty(feature *geojson.Feature, name string, v Value) {
	if value, ok := v.Get(); ok {
		feature.SetProperty(name, value)
		return
	}
	feature.SetProperty(name, nil)
}

// GeoJSONFeature returns route as LineString feature with summary statistics as properties.
// Web Mercator graphs are converted back to lon/lat
func (route *RouteResult) GeoJSONFeature() *geojson.Feature {
	feature := geojson.NewFeature(geoJSONLinestringGeometry(geographicLine(route.Geometry, route.CRS)))
	feature.SetProperty("weight", route.Weight.String())
	feature.SetProperty("cost", route.Cost)
	feature.SetProperty("length", route.Stats.Length)
	feature.SetProperty("edges", len(route.edges))
	feature.SetProperty("unscored_edges", route.Stats.Unscored)
	setValueProperty(feature, "composite_mean", route.Stats.Mean)
	setValueProperty(feature, "composite_median", route.Stats.Median)
	setValueProperty(feature, "composite_min", route.Stats.Min)
	setValueProperty(feature, "composite_max", route.Stats.Max)
	return feature
}

// GeoJSON returns route as GeoJSON feature
func (route *RouteResult) GeoJSON() ([]byte, error) {
	b, err := route.GeoJSONFeature().MarshalJSON()
	if err != nil {
		return nil, errors.Wrap(err, "Can't convert route to GeoJSON")
	}
	return b, nil
}

// GeoJSON returns all routes of the batch as one FeatureCollection tagged with origin/destination identity
func (result *BatchResult) GeoJSON() ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	for _, route := range result.Routes {
		feature := route.GeoJSONFeature()
		feature.SetProperty("origin_id", route.OriginID)
		feature.SetProperty("destination_id", route.DestinationID)
		fc.AddFeature(feature)
	}
	b, err := fc.MarshalJSON()
	if err != nil {
		return nil, errors.Wrap(err, "Can't convert batch to GeoJSON")
	}
	return b, nil
}
