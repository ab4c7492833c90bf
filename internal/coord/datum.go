package coord

import "math"

// Datum shifts between WGS84, GCJ-02 and BD09LL. GCJ-02 is the obfuscated
// datum mandated for maps of mainland China; BD09LL adds Baidu's own
// offset on top of it. Outside mainland China GCJ-02 equals WGS84, but the
// BD09 offset still applies.
const (
	krasovskyAxis = 6378245.0
	krasovskyEE   = 0.00669342162296594323
	bdXPi         = math.Pi * 3000.0 / 180.0
)

// InChina reports whether (lng, lat) lies in the rectangle where the
// GCJ-02 offset applies.
func InChina(lng, lat float64) bool {
	return lng > 73.66 && lng < 135.05 && lat > 3.86 && lat < 53.55
}

// WGS84ToGCJ02 applies the GCJ-02 offset.
func WGS84ToGCJ02(lng, lat float64) (float64, float64) {
	if !InChina(lng, lat) {
		return lng, lat
	}
	dLat := gcjLat(lng-105.0, lat-35.0)
	dLng := gcjLng(lng-105.0, lat-35.0)

	radLat := lat * degToRad
	magic := math.Sin(radLat)
	magic = 1 - krasovskyEE*magic*magic
	sqrtMagic := math.Sqrt(magic)

	dLat = (dLat * 180.0) / ((krasovskyAxis * (1 - krasovskyEE)) / (magic * sqrtMagic) * math.Pi)
	dLng = (dLng * 180.0) / (krasovskyAxis / sqrtMagic * math.Cos(radLat) * math.Pi)
	return lng + dLng, lat + dLat
}

// GCJ02ToWGS84 inverts WGS84ToGCJ02 by fixed-point iteration; the result
// is within 1e-9 degrees of the exact inverse.
func GCJ02ToWGS84(lng, lat float64) (float64, float64) {
	if !InChina(lng, lat) {
		return lng, lat
	}
	wLng, wLat := lng, lat
	for i := 0; i < 30; i++ {
		gLng, gLat := WGS84ToGCJ02(wLng, wLat)
		dLng, dLat := gLng-lng, gLat-lat
		wLng, wLat = wLng-dLng, wLat-dLat
		if math.Abs(dLng) < 1e-10 && math.Abs(dLat) < 1e-10 {
			break
		}
	}
	return wLng, wLat
}

// GCJ02ToBD09 applies Baidu's offset to a GCJ-02 coordinate.
func GCJ02ToBD09(lng, lat float64) (float64, float64) {
	z := math.Sqrt(lng*lng+lat*lat) + 0.00002*math.Sin(lat*bdXPi)
	theta := math.Atan2(lat, lng) + 0.000003*math.Cos(lng*bdXPi)
	return z*math.Cos(theta) + 0.0065, z*math.Sin(theta) + 0.006
}

// BD09ToGCJ02 removes Baidu's offset.
func BD09ToGCJ02(lng, lat float64) (float64, float64) {
	x, y := lng-0.0065, lat-0.006
	z := math.Sqrt(x*x+y*y) - 0.00002*math.Sin(y*bdXPi)
	theta := math.Atan2(y, x) - 0.000003*math.Cos(x*bdXPi)
	return z * math.Cos(theta), z * math.Sin(theta)
}

// WGS84ToBD09 converts WGS84 degrees to BD09LL.
func WGS84ToBD09(lng, lat float64) (float64, float64) {
	return GCJ02ToBD09(WGS84ToGCJ02(lng, lat))
}

// BD09ToWGS84 converts BD09LL degrees to WGS84.
func BD09ToWGS84(lng, lat float64) (float64, float64) {
	return GCJ02ToWGS84(BD09ToGCJ02(lng, lat))
}

func gcjLat(x, y float64) float64 {
	r := -100.0 + 2.0*x + 3.0*y + 0.2*y*y + 0.1*x*y + 0.2*math.Sqrt(math.Abs(x))
	r += (20.0*math.Sin(6.0*x*math.Pi) + 20.0*math.Sin(2.0*x*math.Pi)) * 2.0 / 3.0
	r += (20.0*math.Sin(y*math.Pi) + 40.0*math.Sin(y/3.0*math.Pi)) * 2.0 / 3.0
	r += (160.0*math.Sin(y/12.0*math.Pi) + 320*math.Sin(y*math.Pi/30.0)) * 2.0 / 3.0
	return r
}

func gcjLng(x, y float64) float64 {
	r := 300.0 + x + 2.0*y + 0.1*x*x + 0.1*x*y + 0.1*math.Sqrt(math.Abs(x))
	r += (20.0*math.Sin(6.0*x*math.Pi) + 20.0*math.Sin(2.0*x*math.Pi)) * 2.0 / 3.0
	r += (20.0*math.Sin(x*math.Pi) + 40.0*math.Sin(x/3.0*math.Pi)) * 2.0 / 3.0
	r += (150.0*math.Sin(x/12.0*math.Pi) + 300.0*math.Sin(x/30.0*math.Pi)) * 2.0 / 3.0
	return r
}
