package geo

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// earthRadiusMeters is the mean Earth radius used by the haversine formula.
const earthRadiusMeters = 6371000

// Point is a latitude/longitude pair in floating-point degrees. It is
// transient per clock action: either the device's reported position or the
// coordinates decoded from a scanned QR code.
type Point struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// InRange reports whether the point lies within valid coordinate ranges.
func (p Point) InRange() bool {
	return p.Latitude >= -90 && p.Latitude <= 90 &&
		p.Longitude >= -180 && p.Longitude <= 180
}

// LocationString formats the point as "lat, lng" with 4 decimal places, the
// representation stored on attendance records.
func (p Point) LocationString() string {
	return fmt.Sprintf("%.4f, %.4f", p.Latitude, p.Longitude)
}

// Distance computes the great-circle distance between two points in meters
// using the haversine formula.
func Distance(a, b Point) float64 {
	dLat := (b.Latitude - a.Latitude) * (math.Pi / 180.0)
	dLon := (b.Longitude - a.Longitude) * (math.Pi / 180.0)

	lat1Rad := a.Latitude * (math.Pi / 180.0)
	lat2Rad := b.Latitude * (math.Pi / 180.0)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}

// ParsePayload parses a decoded QR payload into a Point. The payload is an
// untrusted string and must contain exactly two comma-separated floating-point
// numbers: latitude then longitude. Out-of-range coordinates are rejected.
func ParsePayload(payload string) (Point, error) {
	parts := strings.Split(payload, ",")
	if len(parts) != 2 {
		return Point{}, fmt.Errorf("payload must contain exactly two comma-separated values, got %d", len(parts))
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Point{}, fmt.Errorf("invalid latitude %q: %w", strings.TrimSpace(parts[0]), err)
	}

	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Point{}, fmt.Errorf("invalid longitude %q: %w", strings.TrimSpace(parts[1]), err)
	}

	p := Point{Latitude: lat, Longitude: lng}
	if !p.InRange() {
		return Point{}, fmt.Errorf("coordinates out of range: %s", p.LocationString())
	}

	return p, nil
}
