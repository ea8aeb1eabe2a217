package render

import "sync"

// Canvas is the map display surface the renderer draws on. The real
// surface (pan, zoom, tiles) lives outside the engine; the engine only
// needs these five operations.
type Canvas interface {
	AddMarker(layer string, lat, lng float64, color, label string)
	AddCircle(layer string, lat, lng, radiusM float64, color string)
	ClearLayer(layer string)
	FitBounds(coords [][2]float64)
	FlyTo(lat, lng float64)
}

// Marker is one rendered point marker
type Marker struct {
	Lat   float64
	Lng   float64
	Color string
	Label string
}

// Circle is one rendered disk
type Circle struct {
	Lat     float64
	Lng     float64
	RadiusM float64
	Color   string
}

// MemoryCanvas records drawing operations per layer. It backs the CLI's
// text view and the engine tests.
type MemoryCanvas struct {
	mu      sync.Mutex
	markers map[string][]Marker
	circles map[string][]Circle
	center  *[2]float64
}

// NewMemoryCanvas creates an empty canvas
func NewMemoryCanvas() *MemoryCanvas {
	return &MemoryCanvas{
		markers: make(map[string][]Marker),
		circles: make(map[string][]Circle),
	}
}

// AddMarker implements Canvas
func (m *MemoryCanvas) AddMarker(layer string, lat, lng float64, color, label string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.markers[layer] = append(m.markers[layer], Marker{Lat: lat, Lng: lng, Color: color, Label: label})
}

// AddCircle implements Canvas
func (m *MemoryCanvas) AddCircle(layer string, lat, lng, radiusM float64, color string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.circles[layer] = append(m.circles[layer], Circle{Lat: lat, Lng: lng, RadiusM: radiusM, Color: color})
}

// ClearLayer implements Canvas
func (m *MemoryCanvas) ClearLayer(layer string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.markers, layer)
	delete(m.circles, layer)
}

// FitBounds implements Canvas
func (m *MemoryCanvas) FitBounds(coords [][2]float64) {
	if len(coords) == 0 {
		return
	}
	var lat, lng float64
	for _, c := range coords {
		lat += c[0]
		lng += c[1]
	}
	n := float64(len(coords))
	m.mu.Lock()
	defer m.mu.Unlock()
	m.center = &[2]float64{lat / n, lng / n}
}

// FlyTo implements Canvas
func (m *MemoryCanvas) FlyTo(lat, lng float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.center = &[2]float64{lat, lng}
}

// Markers returns the markers currently on a layer
func (m *MemoryCanvas) Markers(layer string) []Marker {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Marker, len(m.markers[layer]))
	copy(out, m.markers[layer])
	return out
}

// Circles returns the circles currently on a layer
func (m *MemoryCanvas) Circles(layer string) []Circle {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Circle, len(m.circles[layer]))
	copy(out, m.circles[layer])
	return out
}

// Center returns where the view was last moved, or nil
func (m *MemoryCanvas) Center() *[2]float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.center == nil {
		return nil
	}
	c := *m.center
	return &c
}
