package coord

import (
	"math"

	"github.com/pkg/errors"
)

// MaxZoom is the zoom level at which one pixel spans one Mercator unit.
const MaxZoom = 18

// maxIndex bounds pixel and tile indices to the range where float64
// holds every integer exactly.
const maxIndex = 1 << 53

// ZoomUnits returns the number of Mercator units covered by one pixel at
// the given zoom level. Baidu serves zoom 3 to 19; any zoom is accepted,
// but pixel and tile indices that overflow at extreme zooms are rejected.
func ZoomUnits(zoom int) float64 {
	return math.Pow(2, float64(MaxZoom-zoom))
}

// fitsIndex reports whether every v is finite and within ±maxIndex.
func fitsIndex(vs ...float64) bool {
	for _, v := range vs {
		if !(math.Abs(v) <= maxIndex) {
			return false
		}
	}
	return true
}

// PointToPixel locates p inside a viewport of the given size whose center
// sits at center (in Mercator units). Pixels outside the viewport come back
// as negative or oversized coordinates.
func PointToPixel(p *GeoPoint, zoom int, center MercatorPoint, vp Viewport) (PixelPoint, error) {
	if p == nil {
		return PixelPoint{}, errors.Wrap(ErrInvalidInput, "nil point")
	}
	m, err := GeoToMercator(*p)
	if err != nil {
		return PixelPoint{}, err
	}
	units := ZoomUnits(zoom)
	x := math.RoundToEven((m.Lng-center.Lng)/units + vp.Width/2)
	y := math.RoundToEven((center.Lat-m.Lat)/units + vp.Height/2)
	if !fitsIndex(x, y) {
		return PixelPoint{}, errors.Wrapf(ErrInvalidInput, "pixel for %v at zoom %d is out of range", *p, zoom)
	}
	return PixelPoint{X: int(x), Y: int(y)}, nil
}

// PixelToPoint is the inverse of PointToPixel.
func PixelToPoint(px *PixelPoint, zoom int, center MercatorPoint, vp Viewport) (GeoPoint, error) {
	if px == nil {
		return GeoPoint{}, errors.Wrap(ErrInvalidInput, "nil pixel")
	}
	units := ZoomUnits(zoom)
	m := MercatorPoint{
		Lng: center.Lng + float64(units*(float64(px.X)-vp.Width/2)),
		Lat: center.Lat - float64(units*(float64(px.Y)-vp.Height/2)),
	}
	return MercatorToGeo(m)
}
