package bikestress

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func TestGreatCircleDistance(t *testing.T) {
	p1 := orb.Point{37.6417350769043, 55.751849391735284}
	p2 := orb.Point{37.668514251708984, 55.73261980350401}
	res := 2.71693096539 // kilometers
	gcd := greatCircleDistance(p1, p2)
	if Round(gcd, 0.0005) != Round(res, 0.0005) {
		t.Errorf("Great circle dist must be %f, but got %f", res, gcd)
	}
}

func Round(x, unit float64) float64 {
	if x > 0 {
		return float64(int64(x/unit+0.5)) * unit
	}
	return float64(int64(x/unit-0.5)) * unit
}

func TestSphericalLength(t *testing.T) {
	p1 := orb.Point{37.6417350769043, 55.751849391735284}
	p2 := orb.Point{37.668514251708984, 55.73261980350401}
	line := orb.LineString{p1, p2, p1}
	res := 2 * greatCircleDistance(p1, p2)
	length := getSphericalLength(line)
	if math.Abs(length-res) > 1e-9 {
		t.Errorf("Spherical length must be %f, but got %f", res, length)
	}
	if getSphericalLength(orb.LineString{p1}) != 0 {
		t.Errorf("Length of single point line must be zero")
	}
}

func TestEuclideanLength(t *testing.T) {
	line := orb.LineString{{0, 0}, {3, 4}, {3, 10}}
	if length := getLength(line); length != 11 {
		t.Errorf("Length must be %v, but got %v", 11.0, length)
	}
}

func TestReverseLine(t *testing.T) {
	line := orb.LineString{{0, 0}, {1, 1}, {2, 0}}
	reversed := reverseLine(line)
	correct := orb.LineString{{2, 0}, {1, 1}, {0, 0}}
	if !reversed.Equal(correct) {
		t.Errorf("Reversed line must be %v, but got %v", correct, reversed)
	}
	if line[0] != (orb.Point{0, 0}) {
		t.Errorf("Source line must not be modified")
	}
}

func TestEPSGRoundTrip(t *testing.T) {
	pt := orb.Point{37.6417350769043, 55.751849391735284}
	back := pointToGeographic(pointToEuclidean(pt))
	if math.Abs(back.Lon()-pt.Lon()) > 1e-9 || math.Abs(back.Lat()-pt.Lat()) > 1e-9 {
		t.Errorf("Point must be %v after round trip, but got %v", pt, back)
	}
	x, y := epsg4326To3857(180, 0)
	if math.Abs(x-earthR) > 1e-6 || math.Abs(y) > 1e-6 {
		t.Errorf("Antimeridian on equator must be (%f, 0), but got (%f, %f)", earthR, x, y)
	}
}
