package coord

import (
	"math"

	"github.com/pkg/errors"
	"github.com/wroge/wgs84"
)

const (
	// EarthCircumference is the equatorial circumference in meters.
	EarthCircumference = 40075016.685578488
	// OriginShift is half the earth's circumference.
	OriginShift = EarthCircumference / 2.0
	// TileSize is the edge length of a Baidu map tile in pixels.
	TileSize = 256
)

// WebMercatorProj implements the Projection interface for EPSG:3857.
// It exists so that BD09MC output can be compared against standard web
// maps; it does not apply the BD09 datum offset.
type WebMercatorProj struct {
	forward, inverse func(a, b, c float64) (a2, b2, c2 float64)
}

// NewWebMercator builds an EPSG:3857 projection.
func NewWebMercator() *WebMercatorProj {
	return &WebMercatorProj{
		forward: wgs84.LonLat().To(wgs84.WebMercator()),
		inverse: wgs84.WebMercator().To(wgs84.LonLat()),
	}
}

func (w *WebMercatorProj) Code() string { return CodeWebMercator }

func (w *WebMercatorProj) ToWGS84(x, y float64) (lon, lat float64) {
	lon, lat, _ = w.inverse(x, y, 0)
	return
}

func (w *WebMercatorProj) FromWGS84(lon, lat float64) (x, y float64) {
	x, y, _ = w.forward(lon, lat, 0)
	return
}

// MaxTiles caps the number of tiles TilesInBounds will enumerate.
const MaxTiles = 1 << 20

// MercatorToTile returns the index of the tile containing m at the given zoom.
// Baidu numbers tiles outward from the projection origin, so indices west
// of 0° or south of the equator are negative. The result is undefined when
// the index does not fit an int; TileAt and TilesInBounds check for that.
func MercatorToTile(m MercatorPoint, zoom int) (x, y int) {
	fx, fy := tileIndex(m, zoom)
	return int(fx), int(fy)
}

func tileIndex(m MercatorPoint, zoom int) (x, y float64) {
	span := ZoomUnits(zoom) * TileSize
	return math.Floor(m.Lng / span), math.Floor(m.Lat / span)
}

// TileAt returns the tile containing the geographic point p at the given zoom.
func TileAt(p GeoPoint, zoom int) (x, y int, err error) {
	m, err := GeoToMercator(p)
	if err != nil {
		return 0, 0, errors.Wrap(err, "tile")
	}
	fx, fy := tileIndex(m, zoom)
	if !fitsIndex(fx, fy) {
		return 0, 0, errors.Wrapf(ErrInvalidInput, "tile for %v at zoom %d is out of range", p, zoom)
	}
	return int(fx), int(fy), nil
}

// TileBounds returns the Mercator corners of tile (x, y) at the given zoom.
func TileBounds(x, y, zoom int) (lo, hi MercatorPoint) {
	span := ZoomUnits(zoom) * TileSize
	lo = MercatorPoint{Lng: float64(x) * span, Lat: float64(y) * span}
	hi = MercatorPoint{Lng: float64(x+1) * span, Lat: float64(y+1) * span}
	return
}

// TilesInBounds returns all tile coordinates at the given zoom level that
// intersect the Mercator rectangle [lo, hi]. It fails rather than allocate
// more than MaxTiles tiles.
func TilesInBounds(zoom int, lo, hi MercatorPoint) ([][3]int, error) {
	minX, minY := tileIndex(lo, zoom)
	maxX, maxY := tileIndex(hi, zoom)
	if !fitsIndex(minX, minY, maxX, maxY) {
		return nil, errors.Wrapf(ErrInvalidInput, "bounds %v %v at zoom %d are out of range", lo, hi, zoom)
	}
	if maxX < minX || maxY < minY {
		return nil, nil
	}
	n := (maxX - minX + 1) * (maxY - minY + 1)
	if n > MaxTiles {
		return nil, errors.Wrapf(ErrInvalidInput, "%.0f tiles at zoom %d exceeds the limit of %d", n, zoom, MaxTiles)
	}

	tiles := make([][3]int, 0, int(n))
	for ty := int(minY); ty <= int(maxY); ty++ {
		for tx := int(minX); tx <= int(maxX); tx++ {
			tiles = append(tiles, [3]int{zoom, tx, ty})
		}
	}
	return tiles, nil
}
