package coord

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/stretchr/testify/assert"
)

var (
	beijing  = GeoPoint{Lng: 116.3975, Lat: 39.9087}
	shanghai = GeoPoint{Lng: 121.4737, Lat: 31.2304}
	newYork  = GeoPoint{Lng: -73.9857, Lat: 40.7484}
	sydney   = GeoPoint{Lng: 151.2093, Lat: -33.8688}
)

func TestGreatCircleDistance_KnownValues(t *testing.T) {
	tests := []struct {
		name string
		a, b GeoPoint
		want int
	}{
		{"beijing shanghai", beijing, shanghai, 1067468},
		{"one degree at equator", GeoPoint{0, 0}, GeoPoint{1, 0}, 111125},
		{"half circumference", GeoPoint{0, 0}, GeoPoint{180, 0}, 20002520},
		{"new york sydney", newYork, sydney, 15980694},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GreatCircleDistance(tt.a, tt.b))
		})
	}
}

func TestGreatCircleDistance_Symmetric(t *testing.T) {
	points := []GeoPoint{beijing, shanghai, newYork, sydney, {0, 0}, {-179.9, 73.9}}
	for _, a := range points {
		assert.Equal(t, 0, GreatCircleDistance(a, a), "d(%v, %v)", a, a)
		for _, b := range points {
			assert.Equal(t, GreatCircleDistance(a, b), GreatCircleDistance(b, a), "d(%v, %v)", a, b)
		}
	}
}

// TestGreatCircleDistance_MatchesOrb compares against orb's haversine,
// rescaled from its WGS84 equatorial radius to ours.
func TestGreatCircleDistance_MatchesOrb(t *testing.T) {
	pairs := [][2]GeoPoint{
		{beijing, shanghai},
		{newYork, sydney},
		{{8.5417, 47.3769}, {6.6323, 46.5197}},
	}
	for _, pair := range pairs {
		want := geo.DistanceHaversine(pair[0].Orb(), pair[1].Orb()) * DistanceEarthRadius / orb.EarthRadius
		got := float64(GreatCircleDistance(pair[0], pair[1]))
		assert.InDelta(t, want, got, 1, "%v -> %v", pair[0], pair[1])
	}
}

func TestShiftPoint(t *testing.T) {
	tests := []struct {
		name        string
		origin      GeoPoint
		east, north float64
		want        GeoPoint
	}{
		{"zero offset is identity", GeoPoint{116.0, 39.0}, 0, 0, GeoPoint{116.0, 39.0}},
		{"north east 1km", GeoPoint{116.0, 39.0}, 1000, 1000, GeoPoint{116.01157211, 39.00899322}},
		{"west and north", GeoPoint{116.404, 39.915}, -500, 250, GeoPoint{116.39813739, 39.9172483}},
		{"east on equator", GeoPoint{0, 0}, 1000, 0, GeoPoint{0.00899322, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShiftPoint(tt.origin, tt.east, tt.north))
		})
	}
}

// The two formulas use different radii, so a 1 km shift measures as 999 m.
func TestShiftPoint_DistanceConsistency(t *testing.T) {
	origin := GeoPoint{116.0, 39.0}
	assert.Equal(t, 999, GreatCircleDistance(origin, ShiftPoint(origin, 0, 1000)))
	assert.Equal(t, 999, GreatCircleDistance(origin, ShiftPoint(origin, 1000, 0)))
}

func TestShiftPoint_NearPole(t *testing.T) {
	// Documented limitation: past the pole the longitude term is undefined.
	got := ShiftPoint(GeoPoint{0, 90}, 1000, 0)
	assert.False(t, math.Abs(got.Lng) < 1, "expected a degenerate longitude near the pole, got %v", got)
}
