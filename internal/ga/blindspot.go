package ga

import (
	"math/rand"
	"sort"

	"github.com/c5sim/coverage-sim-go/internal/spatial"
)

// ScoredPoint is a candidate blind spot with its fitness (0..1, higher is
// a stronger blind-spot candidate)
type ScoredPoint struct {
	Point   spatial.Point
	Fitness float64
}

// BlindSpotParams tunes the blind-spot search
type BlindSpotParams struct {
	PopulationSize int
	Generations    int
	ResultCount    int
	MinSeparationM float64

	// fitness shape
	CoverageRadiusM   float64
	MaxInterestM      float64
	MaxExtrapolationM float64
	KNeighbors        int

	Elitism     int
	TournamentK int
	BLXAlpha    float64

	BBoxMarginFactor float64
}

// DefaultBlindSpotParams returns the production tuning
func DefaultBlindSpotParams() BlindSpotParams {
	return BlindSpotParams{
		PopulationSize:    120,
		Generations:       90,
		ResultCount:       10,
		MinSeparationM:    180.0,
		CoverageRadiusM:   80.0,
		MaxInterestM:      350.0,
		MaxExtrapolationM: 900.0,
		KNeighbors:        4,
		Elitism:           4,
		TournamentK:       4,
		BLXAlpha:          0.5,
		BBoxMarginFactor:  0.15,
	}
}

// blindSpotFitness scores a point as a blind-spot candidate. The target is
// an uncovered gap that sits between cameras, not a point outside the
// deployment: distance-to-nearest rewards gaps, mean distance to the k
// nearest cameras rewards interiority, and straying far from the centroid
// or hugging the bbox edge is penalized.
//
// Covered points get a small distance-proportional score instead of a flat
// zero; a flat zero removes all gradient on dense deployments and the
// search collapses.
func blindSpotFitness(p spatial.Point, cameras []spatial.Point, params BlindSpotParams) float64 {
	if len(cameras) == 0 {
		return 0.0
	}

	dmin := spatial.MinDistance(p, cameras)

	if dmin <= params.CoverageRadiusM {
		return spatial.Clamp(0.05*(dmin/maxf(params.CoverageRadiusM, 1e-9)), 0.0, 0.05)
	}

	dUse := minf(dmin, params.MaxInterestM)
	gap := spatial.Clamp(dUse/maxf(params.MaxInterestM, 1e-9), 0.0, 1.0)

	dk := spatial.MeanKNearest(p, cameras, params.KNeighbors)
	interior := spatial.Clamp(1.0-minf(dk/maxf(params.MaxInterestM, 1e-9), 1.0), 0.0, 1.0)

	centroid := spatial.Centroid(cameras)
	dCentroid := spatial.Distance(p, centroid)

	extrapolation := 0.0
	if dCentroid > params.MaxInterestM {
		extrapolation = (dCentroid - params.MaxInterestM) /
			maxf(params.MaxExtrapolationM-params.MaxInterestM, 1e-9)
		extrapolation = spatial.Clamp(extrapolation, 0.0, 1.0)
	}
	extrapolation *= 0.5

	// penalize the outer 10% band of the bbox
	box := spatial.BoundsOf(cameras)
	latBand := maxf(box.MaxLat-box.MinLat, 1e-9) * 0.10
	lngBand := maxf(box.MaxLng-box.MinLng, 1e-9) * 0.10
	edge := 0.0
	if p.Lat < box.MinLat+latBand || p.Lat > box.MaxLat-latBand ||
		p.Lng < box.MinLng+lngBand || p.Lng > box.MaxLng-lngBand {
		edge = 0.15
	}

	score := (0.70*gap + 0.30*interior) - 0.70*extrapolation - edge
	return spatial.Clamp(score, 0.0, 1.0)
}

// tournament picks n individuals, each as the fittest of TournamentK random
// contenders
func tournament(pop []spatial.Point, fits []float64, k, n int, rng *rand.Rand) []spatial.Point {
	out := make([]spatial.Point, 0, n)
	for i := 0; i < n; i++ {
		best := rng.Intn(len(pop))
		for j := 1; j < k; j++ {
			c := rng.Intn(len(pop))
			if fits[c] > fits[best] {
				best = c
			}
		}
		out = append(out, pop[best])
	}
	return out
}

// blx samples uniformly from the BLX-alpha interval around a and b
func blx(a, b, alpha float64, rng *rand.Rand) float64 {
	lo, hi := minf(a, b), maxf(a, b)
	d := hi - lo
	return lo - alpha*d + rng.Float64()*((hi+alpha*d)-(lo-alpha*d))
}

func crossoverPoint(p1, p2 spatial.Point, alpha float64, rng *rand.Rand) spatial.Point {
	return spatial.Point{
		Lat: blx(p1.Lat, p2.Lat, alpha, rng),
		Lng: blx(p1.Lng, p2.Lng, alpha, rng),
	}
}

func mutatePoint(p spatial.Point, box spatial.BBox, prob, sigma float64, rng *rand.Rand) spatial.Point {
	if rng.Float64() < prob {
		p.Lat += rng.NormFloat64() * sigma
		p.Lng += rng.NormFloat64() * sigma
	}
	return box.ClampPoint(p)
}

// spacedSelect greedily keeps the fittest candidates at least minSepM apart,
// then pads from the ranked remainder if spacing exhausted the pool.
// candidates must already be sorted by fitness, descending.
func spacedSelect(candidates []ScoredPoint, minSepM float64, maxCount int) []ScoredPoint {
	var selected []ScoredPoint

	for _, c := range candidates {
		if len(selected) >= maxCount {
			break
		}
		ok := true
		for _, s := range selected {
			if spatial.Distance(c.Point, s.Point) < minSepM {
				ok = false
				break
			}
		}
		if ok {
			selected = append(selected, c)
		}
	}

	if len(selected) < maxCount {
		taken := make(map[spatial.Point]bool, len(selected))
		for _, s := range selected {
			taken[s.Point] = true
		}
		for _, c := range candidates {
			if len(selected) >= maxCount {
				break
			}
			if !taken[c.Point] {
				selected = append(selected, c)
				taken[c.Point] = true
			}
		}
	}

	return selected
}

// FindBlindSpots evolves a population of single points toward under-covered
// zones of the deployment and returns the top candidates, spaced apart so
// the result set does not cluster on one gap. Returns nil when there are no
// cameras to evaluate against.
func FindBlindSpots(cameras []spatial.Point, params BlindSpotParams, rng *rand.Rand) []ScoredPoint {
	if len(cameras) == 0 {
		return nil
	}

	box := spatial.BoundsOf(cameras).Expanded(params.BBoxMarginFactor)

	pop := make([]spatial.Point, params.PopulationSize)
	for i := range pop {
		pop[i] = box.RandomPoint(rng)
	}

	score := func(p spatial.Point) float64 {
		return blindSpotFitness(p, cameras, params)
	}

	for g := 0; g < params.Generations; g++ {
		fits := make([]float64, len(pop))
		for i, p := range pop {
			fits[i] = score(p)
		}

		order := rankDesc(fits)
		nElite := mini(maxi(1, params.Elitism), len(order))
		elites := make([]spatial.Point, 0, nElite)
		for _, i := range order[:nElite] {
			elites = append(elites, pop[i])
		}

		parents := tournament(pop, fits, params.TournamentK, len(pop), rng)

		next := make([]spatial.Point, 0, len(pop))
		next = append(next, elites...)
		for len(next) < len(pop) {
			p1 := parents[rng.Intn(len(parents))]
			p2 := parents[rng.Intn(len(parents))]
			child := crossoverPoint(p1, p2, params.BLXAlpha, rng)
			child = mutatePoint(child, box, 0.25, 0.0007, rng)
			next = append(next, child)
		}
		pop = next
	}

	candidates := make([]ScoredPoint, len(pop))
	for i, p := range pop {
		candidates[i] = ScoredPoint{Point: p, Fitness: score(p)}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Fitness > candidates[j].Fitness
	})

	return spacedSelect(candidates, params.MinSeparationM, params.ResultCount)
}

// rankDesc returns indices sorted by fitness, best first
func rankDesc(fits []float64) []int {
	order := make([]int, len(fits))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return fits[order[a]] > fits[order[b]]
	})
	return order
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func maxi(a, b int) int {
	if a > b {
		return a
	}
	return b
}
