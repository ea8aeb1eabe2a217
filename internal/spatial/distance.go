package spatial

import (
	"github.com/golang/geo/s2"
)

// Constants
const (
	EarthRadiusMeters = 6371000.0 // Earth's mean radius in meters
)

// Point is a WGS84 coordinate pair
type Point struct {
	Lat float64
	Lng float64
}

// HaversineDistance calculates the great-circle distance between two points
// in meters
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// Distance is HaversineDistance over Point values
func Distance(a, b Point) float64 {
	return HaversineDistance(a.Lat, a.Lng, b.Lat, b.Lng)
}

// MinDistance returns the distance from p to the nearest of points.
// Returns 0 when points is empty.
func MinDistance(p Point, points []Point) float64 {
	if len(points) == 0 {
		return 0
	}
	min := Distance(p, points[0])
	for _, q := range points[1:] {
		if d := Distance(p, q); d < min {
			min = d
		}
	}
	return min
}

// MeanKNearest returns the mean distance from p to its k nearest neighbors
// among points. k is clamped to [1, len(points)].
func MeanKNearest(p Point, points []Point, k int) float64 {
	if len(points) == 0 {
		return 0
	}
	dists := make([]float64, len(points))
	for i, q := range points {
		dists[i] = Distance(p, q)
	}
	// small n, insertion sort is fine
	for i := 1; i < len(dists); i++ {
		for j := i; j > 0 && dists[j] < dists[j-1]; j-- {
			dists[j], dists[j-1] = dists[j-1], dists[j]
		}
	}
	if k < 1 {
		k = 1
	}
	if k > len(dists) {
		k = len(dists)
	}
	sum := 0.0
	for _, d := range dists[:k] {
		sum += d
	}
	return sum / float64(k)
}

// Centroid returns the arithmetic centroid of points
func Centroid(points []Point) Point {
	var lat, lng float64
	for _, p := range points {
		lat += p.Lat
		lng += p.Lng
	}
	n := float64(len(points))
	return Point{Lat: lat / n, Lng: lng / n}
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
