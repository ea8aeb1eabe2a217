package ga

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c5sim/coverage-sim-go/internal/spatial"
)

// fourCornerDeployment is four cameras on a ~1 km square with an obvious
// gap in the middle
func fourCornerDeployment() []spatial.Point {
	return []spatial.Point{
		{Lat: 19.400, Lng: -99.150},
		{Lat: 19.409, Lng: -99.150},
		{Lat: 19.400, Lng: -99.141},
		{Lat: 19.409, Lng: -99.141},
	}
}

func smallBlindSpotParams() BlindSpotParams {
	p := DefaultBlindSpotParams()
	p.PopulationSize = 40
	p.Generations = 25
	p.ResultCount = 5
	return p
}

func TestBlindSpotFitness_CoveredPointScoresLow(t *testing.T) {
	cameras := fourCornerDeployment()
	params := DefaultBlindSpotParams()

	onCamera := blindSpotFitness(cameras[0], cameras, params)
	assert.LessOrEqual(t, onCamera, 0.05)

	center := spatial.Centroid(cameras)
	assert.Greater(t, blindSpotFitness(center, cameras, params), onCamera)
}

func TestBlindSpotFitness_NoCameras(t *testing.T) {
	assert.Zero(t, blindSpotFitness(spatial.Point{}, nil, DefaultBlindSpotParams()))
}

func TestBlindSpotFitness_FarPointPenalized(t *testing.T) {
	cameras := fourCornerDeployment()
	params := DefaultBlindSpotParams()

	center := spatial.Centroid(cameras)
	far := spatial.Point{Lat: 19.50, Lng: -99.00}
	assert.Less(t, blindSpotFitness(far, cameras, params), blindSpotFitness(center, cameras, params))
}

func TestFindBlindSpots(t *testing.T) {
	cameras := fourCornerDeployment()
	params := smallBlindSpotParams()
	rng := rand.New(rand.NewSource(7))

	spots := FindBlindSpots(cameras, params, rng)

	require.NotEmpty(t, spots)
	assert.LessOrEqual(t, len(spots), params.ResultCount)

	// ranked best-first
	for i := 1; i < len(spots); i++ {
		assert.GreaterOrEqual(t, spots[i-1].Fitness, spots[i].Fitness)
	}

	// results stay inside the expanded search box
	box := spatial.BoundsOf(cameras).Expanded(params.BBoxMarginFactor)
	for _, s := range spots {
		assert.True(t, box.Contains(s.Point))
	}
}

func TestFindBlindSpots_ElitismLargerThanPopulation(t *testing.T) {
	cameras := fourCornerDeployment()
	params := smallBlindSpotParams()
	params.PopulationSize = 10
	params.Elitism = 50
	rng := rand.New(rand.NewSource(17))

	spots := FindBlindSpots(cameras, params, rng)
	assert.NotEmpty(t, spots)
}

func TestFindBlindSpots_NoCameras(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	assert.Nil(t, FindBlindSpots(nil, smallBlindSpotParams(), rng))
}

func TestFindBlindSpots_Deterministic(t *testing.T) {
	cameras := fourCornerDeployment()
	params := smallBlindSpotParams()

	a := FindBlindSpots(cameras, params, rand.New(rand.NewSource(42)))
	b := FindBlindSpots(cameras, params, rand.New(rand.NewSource(42)))
	assert.Equal(t, a, b)
}

func TestSpacedSelect(t *testing.T) {
	// three candidates, the top two within 50 m of each other
	candidates := []ScoredPoint{
		{Point: spatial.Point{Lat: 0, Lng: 0}, Fitness: 0.9},
		{Point: spatial.Point{Lat: 0, Lng: 0.0004}, Fitness: 0.8}, // ~45 m away
		{Point: spatial.Point{Lat: 0, Lng: 0.01}, Fitness: 0.7},
	}

	selected := spacedSelect(candidates, 100, 2)
	require.Len(t, selected, 2)
	assert.Equal(t, candidates[0], selected[0])
	assert.Equal(t, candidates[2], selected[1])
}

func TestSpacedSelect_PadsWhenSpacingExhaustsPool(t *testing.T) {
	candidates := []ScoredPoint{
		{Point: spatial.Point{Lat: 0, Lng: 0}, Fitness: 0.9},
		{Point: spatial.Point{Lat: 0, Lng: 0.0001}, Fitness: 0.8},
		{Point: spatial.Point{Lat: 0, Lng: 0.0002}, Fitness: 0.7},
	}

	// everything is within minSepM, spacing keeps one; padding fills to 3
	selected := spacedSelect(candidates, 10000, 3)
	assert.Len(t, selected, 3)
}

func TestTournamentPrefersFitter(t *testing.T) {
	pop := []spatial.Point{{Lat: 0}, {Lat: 1}, {Lat: 2}, {Lat: 3}}
	fits := []float64{0.0, 0.0, 0.0, 1.0}
	rng := rand.New(rand.NewSource(3))

	picks := tournament(pop, fits, 4, 200, rng)
	wins := 0
	for _, p := range picks {
		if p.Lat == 3 {
			wins++
		}
	}
	// with k=4 the best individual wins most tournaments
	assert.Greater(t, wins, 100)
}

func TestBlxStaysInExpandedInterval(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 200; i++ {
		v := blx(1.0, 2.0, 0.5, rng)
		assert.GreaterOrEqual(t, v, 0.5)
		assert.LessOrEqual(t, v, 2.5)
	}
}

func TestMutatePointClampsToBox(t *testing.T) {
	box := spatial.BBox{MinLat: 0, MaxLat: 1, MinLng: 0, MaxLng: 1}
	rng := rand.New(rand.NewSource(9))
	for i := 0; i < 200; i++ {
		p := mutatePoint(spatial.Point{Lat: 0.999, Lng: 0.999}, box, 1.0, 0.5, rng)
		assert.True(t, box.Contains(p))
	}
}
