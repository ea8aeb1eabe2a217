// Package render projects simulation state onto map overlay layers. Every
// redraw clears and fully repopulates its layer; rendering is a pure
// function of current state, so there is never a stale marker to chase.
package render

import (
	"fmt"
	"math"

	"github.com/c5sim/coverage-sim-go/internal/models"
	"github.com/c5sim/coverage-sim-go/internal/sim"
)

// Overlay layer names
const (
	LayerProposals  = "proposals"
	LayerBlindSpots = "blindspots"
	LayerOptimizer  = "optimizer"
)

// ProposalRadiusM is the rendered coverage-disk radius for a proposal
const ProposalRadiusM = 120.0

// Tier classifies a coverage percentage for coloring
type Tier int

// Coverage tiers, worst to best
const (
	TierNotEvaluated Tier = iota
	Tier1                 // c < 50
	Tier2                 // 50 <= c < 80
	Tier3                 // 80 <= c < 100
	Tier4                 // c >= 100
)

// Tier colors
const (
	ColorNotEvaluated = "#9e9e9e"
	ColorTier1        = "#e53935"
	ColorTier2        = "#fb8c00"
	ColorTier3        = "#7cb342"
	ColorTier4        = "#2e7d32"

	ColorBlindSpot = "#3949ab"
	ColorOptimizer = "#8e24aa"
)

// TierFor classifies a coverage value. nil or non-finite means not
// evaluated; the numeric cuts are checked best-first.
func TierFor(coverage *float64) Tier {
	if coverage == nil || math.IsNaN(*coverage) || math.IsInf(*coverage, 0) {
		return TierNotEvaluated
	}
	c := *coverage
	switch {
	case c >= 100:
		return Tier4
	case c >= 80:
		return Tier3
	case c >= 50:
		return Tier2
	default:
		return Tier1
	}
}

// Color returns the overlay color for a tier
func (t Tier) Color() string {
	switch t {
	case Tier4:
		return ColorTier4
	case Tier3:
		return ColorTier3
	case Tier2:
		return ColorTier2
	case Tier1:
		return ColorTier1
	default:
		return ColorNotEvaluated
	}
}

// String implements fmt.Stringer
func (t Tier) String() string {
	switch t {
	case Tier4:
		return "full coverage"
	case Tier3:
		return "good coverage"
	case Tier2:
		return "partial coverage"
	case Tier1:
		return "low coverage"
	default:
		return "not evaluated"
	}
}

// Renderer redraws overlay layers from state
type Renderer struct {
	canvas Canvas
}

// NewRenderer creates a renderer drawing on canvas
func NewRenderer(canvas Canvas) *Renderer {
	return &Renderer{canvas: canvas}
}

// RedrawProposals clears and repopulates the proposal layer: a marker plus
// a fixed-radius disk per proposal, colored by coverage tier
func (r *Renderer) RedrawProposals(proposals []sim.Proposal) {
	r.canvas.ClearLayer(LayerProposals)
	for i, p := range proposals {
		tier := TierFor(p.Coverage)
		color := tier.Color()

		label := fmt.Sprintf("proposal %d: %s", i+1, tier)
		if p.Evaluated() {
			label = fmt.Sprintf("proposal %d: %.1f%% (%s)", i+1, *p.Coverage, tier)
		}

		r.canvas.AddMarker(LayerProposals, p.Lat, p.Lng, color, label)
		r.canvas.AddCircle(LayerProposals, p.Lat, p.Lng, ProposalRadiusM, color)
	}
}

// FocusProposal moves the view to a just-placed proposal
func (r *Renderer) FocusProposal(lat, lng float64) {
	r.canvas.FlyTo(lat, lng)
}

// RedrawBlindSpots clears and repopulates the blind-spot layer
func (r *Renderer) RedrawBlindSpots(spots []models.BlindSpot) {
	r.canvas.ClearLayer(LayerBlindSpots)
	coords := make([][2]float64, 0, len(spots))
	for i, s := range spots {
		label := fmt.Sprintf("blind spot %d: fitness %.3f", i+1, s.Fitness)
		r.canvas.AddMarker(LayerBlindSpots, s.Latitude, s.Longitude, ColorBlindSpot, label)
		coords = append(coords, [2]float64{s.Latitude, s.Longitude})
	}
	if len(coords) > 0 {
		r.canvas.FitBounds(coords)
	}
}

// RedrawOptimizer clears and repopulates the optimizer-proposal layer
func (r *Renderer) RedrawOptimizer(cameras []models.NewCamera) {
	r.canvas.ClearLayer(LayerOptimizer)
	coords := make([][2]float64, 0, len(cameras))
	for i, cam := range cameras {
		label := fmt.Sprintf("optimizer camera %d", i+1)
		r.canvas.AddMarker(LayerOptimizer, cam.Latitude, cam.Longitude, ColorOptimizer, label)
		r.canvas.AddCircle(LayerOptimizer, cam.Latitude, cam.Longitude, ProposalRadiusM, ColorOptimizer)
		coords = append(coords, [2]float64{cam.Latitude, cam.Longitude})
	}
	if len(coords) > 0 {
		r.canvas.FitBounds(coords)
	}
}
