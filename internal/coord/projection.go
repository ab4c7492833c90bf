package coord

import (
	"math"
	"sort"
	"strings"
)

// Projection codes understood by ForCode.
const (
	CodeWGS84       = "EPSG:4326"
	CodeWebMercator = "EPSG:3857"
	CodeBD09MC      = "BD09MC"
	CodeBD09LL      = "BD09LL"
)

// Projection defines the interface for converting between a planar CRS and
// geographic longitude/latitude.
type Projection interface {
	// ToWGS84 converts CRS coordinates to longitude/latitude (degrees).
	ToWGS84(x, y float64) (lon, lat float64)

	// FromWGS84 converts longitude/latitude (degrees) to CRS coordinates.
	FromWGS84(lon, lat float64) (x, y float64)

	// Code returns the identifier this projection is registered under.
	Code() string
}

// ForCode returns a Projection for the given code, case-insensitively.
// Returns nil if the code is not supported.
func ForCode(code string) Projection {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case CodeWGS84:
		return &Identity{}
	case CodeWebMercator:
		return NewWebMercator()
	case CodeBD09LL:
		return &BaiduGeoProj{}
	case CodeBD09MC:
		return &BaiduMercatorProj{}
	default:
		return nil
	}
}

// Codes lists the supported projection codes.
func Codes() []string {
	codes := []string{CodeWGS84, CodeWebMercator, CodeBD09MC, CodeBD09LL}
	sort.Strings(codes)
	return codes
}

// Transform converts (x, y) from one projection to another through WGS84.
// Pairs that are both on the BD09 datum convert through BD09LL instead,
// so BD09LL to BD09MC matches GeoToMercator exactly.
func Transform(from, to Projection, x, y float64) (float64, float64) {
	if f, ok := from.(baiduProjection); ok {
		if t, ok := to.(baiduProjection); ok {
			return t.fromBD09(f.toBD09(x, y))
		}
	}
	return to.FromWGS84(from.ToWGS84(x, y))
}

// baiduProjection is implemented by projections whose geographic side is BD09LL.
type baiduProjection interface {
	toBD09(x, y float64) (lng, lat float64)
	fromBD09(lng, lat float64) (x, y float64)
}

// Identity is the no-op projection for WGS84 longitude/latitude.
type Identity struct{}

func (w *Identity) ToWGS84(x, y float64) (lon, lat float64)   { return x, y }
func (w *Identity) FromWGS84(lon, lat float64) (x, y float64) { return lon, lat }
func (w *Identity) Code() string                              { return CodeWGS84 }

// BaiduGeoProj is BD09LL longitude/latitude. Conversions to and from WGS84
// go through GCJ-02.
type BaiduGeoProj struct{}

func (b *BaiduGeoProj) Code() string { return CodeBD09LL }

func (b *BaiduGeoProj) ToWGS84(x, y float64) (lon, lat float64) {
	if !finite(x, y) {
		return math.NaN(), math.NaN()
	}
	return BD09ToWGS84(x, y)
}

func (b *BaiduGeoProj) FromWGS84(lon, lat float64) (x, y float64) {
	if !finite(lon, lat) {
		return math.NaN(), math.NaN()
	}
	return WGS84ToBD09(lon, lat)
}

func (b *BaiduGeoProj) toBD09(x, y float64) (float64, float64)       { return x, y }
func (b *BaiduGeoProj) fromBD09(lng, lat float64) (float64, float64) { return lng, lat }

// BaiduMercatorProj is BD09MC. It combines MercatorToGeo/GeoToMercator
// with the BD09 datum shift. The interface has no error result, so failed
// conversions come back as NaN.
type BaiduMercatorProj struct{}

func (b *BaiduMercatorProj) Code() string { return CodeBD09MC }

func (b *BaiduMercatorProj) ToWGS84(x, y float64) (lon, lat float64) {
	lng, lat := b.toBD09(x, y)
	if !finite(lng, lat) {
		return math.NaN(), math.NaN()
	}
	return BD09ToWGS84(lng, lat)
}

func (b *BaiduMercatorProj) FromWGS84(lon, lat float64) (x, y float64) {
	if !finite(lon, lat) {
		return math.NaN(), math.NaN()
	}
	return b.fromBD09(WGS84ToBD09(lon, lat))
}

func (b *BaiduMercatorProj) toBD09(x, y float64) (float64, float64) {
	p, err := MercatorToGeo(MercatorPoint{Lng: x, Lat: y})
	if err != nil {
		return math.NaN(), math.NaN()
	}
	return p.Lng, p.Lat
}

func (b *BaiduMercatorProj) fromBD09(lng, lat float64) (float64, float64) {
	m, err := GeoToMercator(GeoPoint{Lng: lng, Lat: lat})
	if err != nil {
		return math.NaN(), math.NaN()
	}
	return m.Lng, m.Lat
}
