package coord

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Expected values were produced by the provider's reference implementation.
var baiduRefPoints = []struct {
	name string
	geo  GeoPoint
	merc MercatorPoint
	back GeoPoint
}{
	{"origin", GeoPoint{0, 0}, MercatorPoint{0, 0}, GeoPoint{0, -3e-08}},
	{"beijing tiananmen", GeoPoint{116.404, 39.915}, MercatorPoint{12958175.0, 4825923.77}, GeoPoint{116.404, 39.9150001}},
	{"beijing", GeoPoint{116.3975, 39.9087}, MercatorPoint{12957451.42, 4825013.09}, GeoPoint{116.39750004, 39.90870009}},
	{"shanghai", GeoPoint{121.4737, 31.2304}, MercatorPoint{13522537.56, 3640349.71}, GeoPoint{121.47369997, 31.2303999}},
	{"new york", GeoPoint{-73.9857, 40.7484}, MercatorPoint{-8236140.07, 4947148.29}, GeoPoint{-73.98570004, 40.74840001}},
	{"sydney", GeoPoint{151.2093, -33.8688}, MercatorPoint{16832725.43, -3987166.02}, GeoPoint{151.2093, -33.86880006}},
	{"band 15", GeoPoint{10, 15}, MercatorPoint{1113207.02, 1678043.13}, GeoPoint{10.0, 15.00000007}},
	{"band 30", GeoPoint{10, 30}, MercatorPoint{1113207.02, 3481989.86}, GeoPoint{9.99999998, 30.00000028}},
	{"band 45", GeoPoint{10, 45}, MercatorPoint{1113207.02, 5591021.37}, GeoPoint{9.99999997, 45.00000239}},
	{"band 60", GeoPoint{10, 60}, MercatorPoint{1113207.02, 8362392.06}, GeoPoint{9.99999999, 60.00006296}},
	{"north clamp", GeoPoint{0, 74}, MercatorPoint{0, 12474104.17}, GeoPoint{-1e-08, 74.00002217}},
	{"south clamp", GeoPoint{0, -74}, MercatorPoint{0, -12474104.17}, GeoPoint{-1e-08, -74.00002217}},
}

func TestGeoToMercator_ReferencePoints(t *testing.T) {
	for _, ref := range baiduRefPoints {
		t.Run(ref.name, func(t *testing.T) {
			got, err := GeoToMercator(ref.geo)
			require.NoError(t, err)
			assert.Equal(t, ref.merc, got)
		})
	}
}

func TestMercatorToGeo_ReferencePoints(t *testing.T) {
	for _, ref := range baiduRefPoints {
		t.Run(ref.name, func(t *testing.T) {
			got, err := MercatorToGeo(ref.merc)
			require.NoError(t, err)
			assert.Equal(t, ref.back, got)
		})
	}
}

func TestGeoToMercator_LongitudeWrap(t *testing.T) {
	tests := []struct {
		name string
		in   GeoPoint
		want MercatorPoint
	}{
		{"190 wraps to -170", GeoPoint{190, 0}, MercatorPoint{-18924519.35, 0}},
		{"-170 unchanged", GeoPoint{-170, 0}, MercatorPoint{-18924519.35, 0}},
		{"540 wraps to 180", GeoPoint{540, 10}, MercatorPoint{20037726.37, 1111404.92}},
		{"-190 wraps to 170", GeoPoint{-190, -20}, MercatorPoint{18924519.35, -2258286.1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GeoToMercator(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGeoToMercator_LatitudeClamp(t *testing.T) {
	at74, err := GeoToMercator(GeoPoint{0, 74})
	require.NoError(t, err)

	for _, lat := range []float64{74.5, 80, 89.999, 1000} {
		got, err := GeoToMercator(GeoPoint{0, lat})
		require.NoError(t, err)
		assert.Equal(t, at74, got, "lat=%v", lat)

		got, err = GeoToMercator(GeoPoint{0, -lat})
		require.NoError(t, err)
		assert.Equal(t, -at74.Lat, got.Lat, "lat=%v", -lat)
	}
}

func TestGeoToMercator_NonFinite(t *testing.T) {
	inputs := []GeoPoint{
		{math.NaN(), 0},
		{0, math.NaN()},
		{math.Inf(1), 0},
		{0, math.Inf(-1)},
	}
	for _, p := range inputs {
		_, err := GeoToMercator(p)
		assert.True(t, errors.Is(err, ErrInvalidInput), "GeoToMercator(%v) err = %v", p, err)
	}
}

func TestMercatorToGeo_NonFinite(t *testing.T) {
	_, err := MercatorToGeo(MercatorPoint{math.NaN(), 1})
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = MercatorToGeo(MercatorPoint{1, math.Inf(1)})
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestMercatorToGeo_SignFollowsInput(t *testing.T) {
	p, err := MercatorToGeo(MercatorPoint{12958175.0, 4825923.77})
	require.NoError(t, err)
	n, err := MercatorToGeo(MercatorPoint{-12958175.0, -4825923.77})
	require.NoError(t, err)

	assert.Equal(t, -p.Lng, n.Lng)
	assert.Equal(t, -p.Lat, n.Lat)
}

// TestRoundTrip checks MercatorToGeo(GeoToMercator(p)) ≈ p over the whole
// supported latitude band.
func TestRoundTrip(t *testing.T) {
	for lat := -74.0; lat <= 74.0; lat += 0.5 {
		for lng := -180.0; lng <= 180.0; lng += 7.5 {
			p := GeoPoint{Lng: lng, Lat: lat}
			m, err := GeoToMercator(p)
			require.NoError(t, err)
			back, err := MercatorToGeo(m)
			require.NoError(t, err)

			if d := math.Abs(back.Lng - lng); d >= 1e-2 {
				t.Errorf("roundtrip lng for %v: got %.8f (delta=%.2e)", p, back.Lng, d)
			}
			if d := math.Abs(back.Lat - lat); d >= 1e-2 {
				t.Errorf("roundtrip lat for %v: got %.8f (delta=%.2e)", p, back.Lat, d)
			}
		}
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{180, 180},
		{-180, -180},
		{181, -179},
		{-181, 179},
		{360, 0},
		{540, 180},
		{900.5, -179.5},
		{-900.5, 179.5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, wrap(tt.in, MinLng, MaxLng), "wrap(%v)", tt.in)
	}

	// Huge finite values must still terminate inside the range.
	for _, v := range []float64{1e12, -1e15, 1e300, -math.MaxFloat64} {
		got := wrap(v, MinLng, MaxLng)
		assert.True(t, got >= MinLng && got <= MaxLng, "wrap(%v) = %v", v, got)
	}
}

func TestRoundTo(t *testing.T) {
	tests := []struct {
		in   float64
		n    int
		want float64
	}{
		{0.125, 2, 0.12}, // exact tie rounds to even
		{0.375, 2, 0.38},
		{2.675, 2, 2.67}, // 2.675 is stored just below the tie
		{-1.005, 2, -1.0},
		{12958175.004999, 2, 12958175.0},
		{39.915000104, 8, 39.9150001},
		{-3.068298e-8, 8, -3e-8},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, roundTo(tt.in, tt.n), "roundTo(%v, %d)", tt.in, tt.n)
	}
	assert.True(t, math.IsNaN(roundTo(math.NaN(), 2)))
}
