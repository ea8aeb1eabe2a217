package spatial

import (
	"math"
	"math/rand"
)

// BBox is a latitude/longitude bounding box
type BBox struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

// BoundsOf returns the bounding box of points. The zero BBox is returned
// for an empty slice.
func BoundsOf(points []Point) BBox {
	if len(points) == 0 {
		return BBox{}
	}
	b := BBox{
		MinLat: points[0].Lat, MaxLat: points[0].Lat,
		MinLng: points[0].Lng, MaxLng: points[0].Lng,
	}
	for _, p := range points[1:] {
		b.MinLat = math.Min(b.MinLat, p.Lat)
		b.MaxLat = math.Max(b.MaxLat, p.Lat)
		b.MinLng = math.Min(b.MinLng, p.Lng)
		b.MaxLng = math.Max(b.MaxLng, p.Lng)
	}
	return b
}

// Expanded returns the box grown by factor of its own span on every side.
// Degenerate spans are floored so a single point still yields a usable box.
func (b BBox) Expanded(factor float64) BBox {
	latSpan := math.Max(b.MaxLat-b.MinLat, 1e-9)
	lngSpan := math.Max(b.MaxLng-b.MinLng, 1e-9)
	return BBox{
		MinLat: b.MinLat - latSpan*factor,
		MaxLat: b.MaxLat + latSpan*factor,
		MinLng: b.MinLng - lngSpan*factor,
		MaxLng: b.MaxLng + lngSpan*factor,
	}
}

// Contains reports whether p lies inside the box
func (b BBox) Contains(p Point) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat &&
		p.Lng >= b.MinLng && p.Lng <= b.MaxLng
}

// ClampPoint limits p to the box
func (b BBox) ClampPoint(p Point) Point {
	return Point{
		Lat: Clamp(p.Lat, b.MinLat, b.MaxLat),
		Lng: Clamp(p.Lng, b.MinLng, b.MaxLng),
	}
}

// RandomPoint returns a uniformly distributed point inside the box
func (b BBox) RandomPoint(rng *rand.Rand) Point {
	return Point{
		Lat: b.MinLat + rng.Float64()*(b.MaxLat-b.MinLat),
		Lng: b.MinLng + rng.Float64()*(b.MaxLng-b.MinLng),
	}
}

// EvalGrid lays a rectangular grid of evaluation points over the bounding
// box of cameras, expanded by marginFactor. stepM is the approximate point
// spacing in meters. If the grid exceeds maxPoints it is randomly
// sub-sampled down to maxPoints.
func EvalGrid(cameras []Point, stepM, marginFactor float64, maxPoints int, rng *rand.Rand) []Point {
	if len(cameras) == 0 {
		return nil
	}

	box := BoundsOf(cameras).Expanded(marginFactor)

	midLat := (box.MinLat + box.MaxLat) / 2.0
	mPerDegLat := 111320.0
	mPerDegLng := 111320.0 * math.Cos(midLat*math.Pi/180.0)

	stepLat := stepM / mPerDegLat
	stepLng := stepM / math.Max(mPerDegLng, 1e-6)

	var pts []Point
	for lat := box.MinLat; lat <= box.MaxLat; lat += stepLat {
		for lng := box.MinLng; lng <= box.MaxLng; lng += stepLng {
			pts = append(pts, Point{Lat: lat, Lng: lng})
		}
	}

	if maxPoints > 0 && len(pts) > maxPoints {
		rng.Shuffle(len(pts), func(i, j int) {
			pts[i], pts[j] = pts[j], pts[i]
		})
		pts = pts[:maxPoints]
	}

	return pts
}
