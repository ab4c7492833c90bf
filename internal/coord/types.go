package coord

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// GeoPoint is a longitude/latitude pair in degrees (BD09LL).
type GeoPoint struct {
	Lng float64 `json:"lng" yaml:"lng" mapstructure:"lng"`
	Lat float64 `json:"lat" yaml:"lat" mapstructure:"lat"`
}

// MercatorPoint is a coordinate in Baidu's offset Mercator projection
// (BD09MC), in linear units.
type MercatorPoint struct {
	Lng float64 `json:"lng" yaml:"lng" mapstructure:"lng"`
	Lat float64 `json:"lat" yaml:"lat" mapstructure:"lat"`
}

// PixelPoint is a pixel position relative to the top-left corner of a viewport.
type PixelPoint struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Viewport is the size of the rendering canvas in pixels.
type Viewport struct {
	Width  float64 `json:"width" yaml:"width" mapstructure:"width"`
	Height float64 `json:"height" yaml:"height" mapstructure:"height"`
}

func (p GeoPoint) String() string      { return fmt.Sprintf("(%.8f, %.8f)", p.Lng, p.Lat) }
func (p MercatorPoint) String() string { return fmt.Sprintf("(%.2f, %.2f)", p.Lng, p.Lat) }
func (p PixelPoint) String() string    { return fmt.Sprintf("(%d, %d)", p.X, p.Y) }

// Orb returns p as an orb.Point with X=Lng, Y=Lat.
func (p GeoPoint) Orb() orb.Point { return orb.Point{p.Lng, p.Lat} }

// Orb returns p as an orb.Point with X=Lng, Y=Lat.
func (p MercatorPoint) Orb() orb.Point { return orb.Point{p.Lng, p.Lat} }

// GeoPointFromOrb builds a GeoPoint from an orb.Point.
func GeoPointFromOrb(p orb.Point) GeoPoint { return GeoPoint{Lng: p.X(), Lat: p.Y()} }

// MercatorPointFromOrb builds a MercatorPoint from an orb.Point.
func MercatorPointFromOrb(p orb.Point) MercatorPoint { return MercatorPoint{Lng: p.X(), Lat: p.Y()} }

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
