package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance_Zero(t *testing.T) {
	p := Point{Latitude: 25.0330, Longitude: 121.5654}
	assert.Equal(t, 0.0, Distance(p, p))
}

func TestDistance_Symmetric(t *testing.T) {
	a := Point{Latitude: 25.0330, Longitude: 121.5654}
	b := Point{Latitude: 24.9913, Longitude: 121.5119}
	assert.Equal(t, Distance(a, b), Distance(b, a))
}

func TestDistance_OneKilometer(t *testing.T) {
	// 0.009 degrees of latitude is roughly one kilometer.
	a := Point{Latitude: 25.0330, Longitude: 121.5654}
	b := Point{Latitude: 25.0420, Longitude: 121.5654}

	d := Distance(a, b)
	assert.InDelta(t, 1000, d, 50)
}

func TestDistance_Antipodal(t *testing.T) {
	a := Point{Latitude: 0, Longitude: 0}
	b := Point{Latitude: 0, Longitude: 180}

	// Half the Earth's circumference at the equator.
	d := Distance(a, b)
	assert.InDelta(t, math.Pi*earthRadiusMeters, d, 1)
}

func TestParsePayload(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		want    Point
		wantErr bool
	}{
		{"valid", "24.99132303960377, 121.51194818378671", Point{24.99132303960377, 121.51194818378671}, false},
		{"valid no space", "25.0330,121.5654", Point{25.0330, 121.5654}, false},
		{"negative coordinates", "-33.8688, 151.2093", Point{-33.8688, 151.2093}, false},
		{"single value", "25.0330", Point{}, true},
		{"three values", "25.0330, 121.5654, 10", Point{}, true},
		{"non numeric", "hello, world", Point{}, true},
		{"empty", "", Point{}, true},
		{"latitude out of range", "91.0, 121.5654", Point{}, true},
		{"longitude out of range", "25.0330, 181.0", Point{}, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := ParsePayload(c.payload)
			if c.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestPoint_LocationString(t *testing.T) {
	p := Point{Latitude: 24.99132303960377, Longitude: 121.51194818378671}
	assert.Equal(t, "24.9913, 121.5119", p.LocationString())
}

func TestPositionErrorClass(t *testing.T) {
	assert.True(t, PositionPermissionDenied.Valid())
	assert.True(t, PositionUnsupported.Valid())
	assert.False(t, PositionErrorClass("flat_tire").Valid())
	assert.NotEmpty(t, PositionTimeout.Message())
	assert.NotEmpty(t, PositionErrorClass("unknown").Message())
}
