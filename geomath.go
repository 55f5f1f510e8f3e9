package bikestress

import (
	"math"

	"github.com/paulmach/orb"
)

const (
	earthRadius = 6370.986884258304
	pi180       = math.Pi / 180.0
)

// degreesToRadians deg = r * pi / 180
func degreesToRadians(d float64) float64 {
	return d * pi180
}

// greatCircleDistance returns distance between two lon/lat points (kilometers)
func greatCircleDistance(p, q orb.Point) float64 {
	lat1 := degreesToRadians(p.Lat())
	lon1 := degreesToRadians(p.Lon())
	lat2 := degreesToRadians(q.Lat())
	lon2 := degreesToRadians(q.Lon())
	diffLat := lat2 - lat1
	diffLon := lon2 - lon1
	a := math.Pow(math.Sin(diffLat/2), 2) + math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(diffLon/2), 2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return c * earthRadius
}

// getSphericalLength returns length for given lon/lat line (kilometers)
func getSphericalLength(line orb.LineString) float64 {
	totalLength := 0.0
	for i := 1; i < len(line); i++ {
		totalLength += greatCircleDistance(line[i-1], line[i])
	}
	return totalLength
}

// findDistance returns distance between two points (assuming they are Euclidean)
func findDistance(p, q orb.Point) float64 {
	xdistance := p.X() - q.X()
	ydistance := p.Y() - q.Y()
	return math.Sqrt(xdistance*xdistance + ydistance*ydistance)
}

// getLength returns length for given line (assuming points of the line are Euclidean)
func getLength(line orb.LineString) float64 {
	totalLength := 0.0
	for i := 1; i < len(line); i++ {
		totalLength += findDistance(line[i-1], line[i])
	}
	return totalLength
}

// reverseLine reverses order of points in given line. Returns new slice
func reverseLine(pts orb.LineString) orb.LineString {
	inputLen := len(pts)
	output := make(orb.LineString, inputLen)
	for i, n := range pts {
		output[inputLen-i-1] = n
	}
	return output
}
