package geo

import "math"

// DefaultEpsilonDegrees is the production coordinate-box threshold: two points
// whose latitude and longitude each differ by less than this value are treated
// as the same physical place (~100 m at mid-latitudes). This is a fixed-box
// approximation, not a geodesic radius; the box narrows in ground distance as
// latitude increases.
const DefaultEpsilonDegrees = 0.001

const earthRadiusMeters = 6371000.0

// Coordinates is a WGS84 latitude/longitude pair in degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether the coordinates denote a usable position. The exact
// origin (0, 0) is reserved as the "unset" value collaborators send when a
// record carries no position.
func (c Coordinates) Valid() bool {
	if c.Lat == 0 && c.Lng == 0 {
		return false
	}
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// WithinBox reports whether a and b fall inside the same epsilon-degree box:
// both the latitude delta and the longitude delta must be strictly below
// epsilon. Invalid coordinates on either side never match.
func WithinBox(a, b Coordinates, epsilonDegrees float64) bool {
	if epsilonDegrees <= 0 {
		epsilonDegrees = DefaultEpsilonDegrees
	}
	if !a.Valid() || !b.Valid() {
		return false
	}
	return math.Abs(a.Lat-b.Lat) < epsilonDegrees && math.Abs(a.Lng-b.Lng) < epsilonDegrees
}

// DistanceMeters returns the great-circle distance between a and b using the
// haversine formula. Returns 0 when either side is invalid.
func DistanceMeters(a, b Coordinates) float64 {
	if !a.Valid() || !b.Valid() {
		return 0
	}
	latA := a.Lat * math.Pi / 180
	latB := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	h := sinLat*sinLat + math.Cos(latA)*math.Cos(latB)*sinLng*sinLng
	return 2 * earthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(h)))
}
