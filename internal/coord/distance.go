package coord

import "math"

// Distance and shift use different Earth radii.
const (
	// DistanceEarthRadius is the radius, in meters, used by GreatCircleDistance.
	DistanceEarthRadius = 6367000.0
	// ShiftEarthRadius is the radius, in kilometers, used by ShiftPoint.
	ShiftEarthRadius = 6371.0
)

// Computed at run time so they carry float64 rounding, not exact constants.
var (
	pi       = math.Pi
	degToRad = pi / 180
	radToDeg = 180 / pi
)

// GreatCircleDistance returns the haversine distance between a and b in
// whole meters.
func GreatCircleDistance(a, b GeoPoint) int {
	lat1, lng1 := a.Lat*math.Pi/180, a.Lng*math.Pi/180
	lat2, lng2 := b.Lat*math.Pi/180, b.Lng*math.Pi/180

	sLat := math.Sin((lat2 - lat1) / 2)
	sLng := math.Sin((lng2 - lng1) / 2)
	h := float64(sLat*sLat) + float64(math.Cos(lat1)*math.Cos(lat2)*(sLng*sLng))
	c := 2 * math.Asin(math.Min(1, math.Sqrt(h)))
	return int(math.RoundToEven(DistanceEarthRadius * c))
}

// ShiftPoint moves origin eastM meters east and northM meters north and
// returns the result rounded to 8 decimals.
//
// The small-angle approximation is only good for offsets up to a few
// kilometers. The longitude term divides by cos(lat), so it blows up near
// the poles; stay inside the ±74° band the projection supports.
func ShiftPoint(origin GeoPoint, eastM, northM float64) GeoPoint {
	east := eastM / 1000
	north := northM / 1000

	dLng := 2 * math.Asin(math.Sin(east/(2*ShiftEarthRadius))/math.Cos(origin.Lat*degToRad)) * radToDeg
	dLat := north / ShiftEarthRadius * radToDeg

	return GeoPoint{
		Lng: roundTo(origin.Lng+dLng, 8),
		Lat: roundTo(origin.Lat+dLat, 8),
	}
}
