package bikestress

import (
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/pkg/errors"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/ewkb"
)

// PrepareWKTLinestring returns WKT representation of LineString
func PrepareWKTLinestring(line orb.LineString) string {
	return wkt.MarshalString(line)
}

// WKT returns route geometry in graph CRS as WKT LineString
func (route *RouteResult) WKT() string {
	return PrepareWKTLinestring(route.Geometry)
}

// EWKB returns route geometry as PostGIS EWKB LineString with SRID taken from graph CRS (0 when unknown)
func (route *RouteResult) EWKB() ([]byte, error) {
	flat := make([]float64, 0, 2*len(route.Geometry))
	for _, pt := range route.Geometry {
		flat = append(flat, pt.X(), pt.Y())
	}
	ls := geom.NewLineStringFlat(geom.XY, flat).SetSRID(sridOf(route.CRS))
	data, err := ewkb.Marshal(ls, ewkb.NDR)
	if err != nil {
		return nil, errors.Wrap(err, "Can't encode route as EWKB")
	}
	return data, nil
}

// sridOf extracts numeric SRID from "epsg:NNNN" notation
func sridOf(crs string) int {
	parts := strings.SplitN(strings.ToLower(strings.TrimSpace(crs)), ":", 2)
	if len(parts) != 2 || parts[0] != "epsg" {
		return 0
	}
	srid, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0
	}
	return srid
}
