package render

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c5sim/coverage-sim-go/internal/models"
	"github.com/c5sim/coverage-sim-go/internal/sim"
)

func fp(v float64) *float64 { return &v }

func TestTierFor_IsTotalAndDeterministic(t *testing.T) {
	cases := []struct {
		coverage *float64
		want     Tier
	}{
		{nil, TierNotEvaluated},
		{fp(math.NaN()), TierNotEvaluated},
		{fp(math.Inf(1)), TierNotEvaluated},
		{fp(45), Tier1},
		{fp(50), Tier2},
		{fp(79.9), Tier2},
		{fp(80), Tier3},
		{fp(99.9), Tier3},
		{fp(100), Tier4},
		{fp(150), Tier4},
		{fp(0), Tier1},
		{fp(-5), Tier1},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, TierFor(c.coverage))
	}
}

func TestTierColors(t *testing.T) {
	assert.Equal(t, ColorNotEvaluated, TierNotEvaluated.Color())
	assert.Equal(t, ColorTier1, Tier1.Color())
	assert.Equal(t, ColorTier2, Tier2.Color())
	assert.Equal(t, ColorTier3, Tier3.Color())
	assert.Equal(t, ColorTier4, Tier4.Color())
}

func TestRedrawProposals_FullyRepopulates(t *testing.T) {
	canvas := NewMemoryCanvas()
	r := NewRenderer(canvas)

	proposals := []sim.Proposal{
		{Lat: 19.40, Lng: -99.15},
		{Lat: 19.41, Lng: -99.16, Coverage: fp(87.5)},
	}
	r.RedrawProposals(proposals)

	markers := canvas.Markers(LayerProposals)
	require.Len(t, markers, 2)
	assert.Equal(t, ColorNotEvaluated, markers[0].Color)
	assert.Equal(t, ColorTier3, markers[1].Color)

	circles := canvas.Circles(LayerProposals)
	require.Len(t, circles, 2)
	assert.InDelta(t, ProposalRadiusM, circles[0].RadiusM, 1e-9)

	// a redraw with fewer entries leaves no stale markers behind
	r.RedrawProposals(proposals[:1])
	assert.Len(t, canvas.Markers(LayerProposals), 1)
	assert.Len(t, canvas.Circles(LayerProposals), 1)

	r.RedrawProposals(nil)
	assert.Empty(t, canvas.Markers(LayerProposals))
}

func TestRedrawBlindSpots(t *testing.T) {
	canvas := NewMemoryCanvas()
	r := NewRenderer(canvas)

	spots := []models.BlindSpot{
		{Latitude: 19.40, Longitude: -99.15, Fitness: 0.91},
		{Latitude: 19.42, Longitude: -99.17, Fitness: 0.80},
	}
	r.RedrawBlindSpots(spots)

	markers := canvas.Markers(LayerBlindSpots)
	require.Len(t, markers, 2)
	assert.Equal(t, ColorBlindSpot, markers[0].Color)
	assert.NotNil(t, canvas.Center(), "view should fit to the result set")

	// empty replacement clears the layer and is not an error
	r.RedrawBlindSpots(nil)
	assert.Empty(t, canvas.Markers(LayerBlindSpots))
}

func TestRedrawOptimizer_LayersAreIndependent(t *testing.T) {
	canvas := NewMemoryCanvas()
	r := NewRenderer(canvas)

	r.RedrawProposals([]sim.Proposal{{Lat: 1, Lng: 2}})
	r.RedrawOptimizer([]models.NewCamera{
		{Latitude: 19.40, Longitude: -99.15},
	})

	require.Len(t, canvas.Markers(LayerOptimizer), 1)
	assert.Equal(t, ColorOptimizer, canvas.Markers(LayerOptimizer)[0].Color)

	// optimizer redraws never disturb the proposal layer
	r.RedrawOptimizer(nil)
	assert.Empty(t, canvas.Markers(LayerOptimizer))
	assert.Len(t, canvas.Markers(LayerProposals), 1)
}
