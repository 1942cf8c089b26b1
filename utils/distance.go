package utils

import "math"

const earthRadiusKM = 6371.0

// HaversineKM returns the great-circle distance between two points in kilometres.
func HaversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	la1 := lat1 * math.Pi / 180
	la2 := lat2 * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(la1)*math.Cos(la2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKM * c
}

// CumulativeKM returns the running distance at each [lon,lat] point.
func CumulativeKM(pts [][2]float64) []float64 {
	cum := make([]float64, len(pts))
	for i := 1; i < len(pts); i++ {
		cum[i] = cum[i-1] + HaversineKM(pts[i-1][1], pts[i-1][0], pts[i][1], pts[i][0])
	}
	return cum
}

// Metres converts kilometres to whole metres, rounding up. Section distances
// must be positive, so anything at or below zero becomes 1.
func Metres(km float64) int {
	if math.IsNaN(km) || km <= 0 {
		return 1
	}
	m := int(math.Ceil(km*1000 - 1e-9))
	if m < 1 {
		return 1
	}
	return m
}
