package coord

import (
	"math"

	"github.com/pkg/errors"
)

// Provider limits for BD09LL input to the forward projection.
const (
	MinLng = -180.0
	MaxLng = 180.0
	MinLat = -74.0
	MaxLat = 74.0
)

// GeoToMercator projects a BD09LL coordinate into BD09MC.
// Longitude is wrapped into [-180, 180] and latitude clamped to [-74, 74]
// before projecting; the result is rounded to 2 decimals.
func GeoToMercator(p GeoPoint) (MercatorPoint, error) {
	if !finite(p.Lng, p.Lat) {
		return MercatorPoint{}, errors.Wrapf(ErrInvalidInput, "geographic point %v", p)
	}
	lng := wrap(p.Lng, MinLng, MaxLng)
	lat := clamp(p.Lat, MinLat, MaxLat)

	row, err := SelectBand(math.Abs(lat), &llBands)
	if err != nil {
		return MercatorPoint{}, err
	}
	x, y, err := Evaluate(lng, lat, row)
	if err != nil {
		return MercatorPoint{}, err
	}
	return MercatorPoint{Lng: roundTo(x, 2), Lat: roundTo(y, 2)}, nil
}

// MercatorToGeo converts a BD09MC coordinate back to BD09LL, rounded to
// 8 decimals. Mercator input is not wrapped or clamped.
func MercatorToGeo(p MercatorPoint) (GeoPoint, error) {
	if !finite(p.Lng, p.Lat) {
		return GeoPoint{}, errors.Wrapf(ErrInvalidInput, "mercator point %v", p)
	}
	row, err := SelectBand(math.Abs(p.Lat), &mcBands)
	if err != nil {
		return GeoPoint{}, err
	}
	lng, lat, err := Evaluate(p.Lng, p.Lat, row)
	if err != nil {
		return GeoPoint{}, err
	}
	return GeoPoint{Lng: roundTo(lng, 8), Lat: roundTo(lat, 8)}, nil
}

// wrap moves v into [lower, upper] by whole periods of (upper - lower).
// Values already on a bound are left alone, so 180 stays 180 and 540 maps
// to 180, matching repeated subtraction.
func wrap(v, lower, upper float64) float64 {
	width := upper - lower
	if math.Abs(v) >= 1<<52 {
		// v is integral here and Mod is exact.
		v = math.Mod(v-lower, width)
		if v < 0 {
			v += width
		}
		return v + lower
	}
	if v > upper {
		v -= math.Ceil((v-upper)/width) * width
	}
	if v < lower {
		v += math.Ceil((lower-v)/width) * width
	}
	for v > upper {
		v -= width
	}
	for v < lower {
		v += width
	}
	return v
}

func clamp(v, lower, upper float64) float64 {
	return math.Min(math.Max(v, lower), upper)
}
