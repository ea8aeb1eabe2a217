package ga

import (
	"math/rand"

	"github.com/c5sim/coverage-sim-go/internal/spatial"
)

// CoverageParams tunes the coverage-improvement search
type CoverageParams struct {
	NewCameras int
	RadiusM    float64

	// evaluation grid; EvalPoints overrides grid generation when set
	EvalPoints    []spatial.Point
	GridStepM     float64
	GridMaxPoints int

	PopulationSize int
	Generations    int
	Elitism        int
	TournamentK    int
	BLXAlpha       float64

	BBoxMarginFactor float64

	PenalizeOvercoverage bool
	OvercoverageWeight   float64

	PenalizeProximity  bool
	MinDistBetweenNewM float64
	MinDistToExistingM float64
	ProximityWeight    float64

	// optional seed points (e.g. blind-spot results) mixed into the
	// initial population
	Seeds        []spatial.Point
	SeedUseProb  float64
	MutationProb float64
	MutationSig  float64
	RepairIters  int
}

// DefaultCoverageParams returns the production tuning
func DefaultCoverageParams() CoverageParams {
	return CoverageParams{
		NewCameras:           5,
		RadiusM:              120.0,
		GridStepM:            150.0,
		GridMaxPoints:        6000,
		PopulationSize:       80,
		Generations:          80,
		Elitism:              3,
		TournamentK:          4,
		BLXAlpha:             0.5,
		BBoxMarginFactor:     0.12,
		PenalizeOvercoverage: true,
		OvercoverageWeight:   0.15,
		PenalizeProximity:    true,
		MinDistBetweenNewM:   180.0,
		MinDistToExistingM:   60.0,
		ProximityWeight:      10.0,
		SeedUseProb:          0.60,
		MutationProb:         0.35,
		MutationSig:          0.0007,
		RepairIters:          35,
	}
}

// CoverageResult is the outcome of a coverage-improvement run
type CoverageResult struct {
	NewCameras []spatial.Point
	Fitness    float64
	Metrics    TierMetrics
}

// proximityPenalty accumulates penalties for new cameras packed too close
// to each other or to the existing deployment
func proximityPenalty(newCams, existing []spatial.Point, minBetween, minToExisting, weight float64) float64 {
	pen := 0.0

	for i := 0; i < len(newCams); i++ {
		for j := i + 1; j < len(newCams); j++ {
			d := spatial.Distance(newCams[i], newCams[j])
			if d < minBetween {
				pen += weight * (1.0 - d/maxf(minBetween, 1e-6))
			}
		}
	}

	if minToExisting > 0 && len(existing) > 0 {
		for _, c := range newCams {
			dmin := spatial.MinDistance(c, existing)
			if dmin < minToExisting {
				pen += (weight * 0.75) * (1.0 - dmin/maxf(minToExisting, 1e-6))
			}
		}
	}

	return pen
}

// coverageFitness scores an individual (a set of new camera placements):
// total coverage minus over-coverage and proximity penalties, clamped to
// 0..100
func coverageFitness(evalPoints, existing, newCams []spatial.Point, p CoverageParams) float64 {
	all := append(append([]spatial.Point{}, existing...), newCams...)
	met := ComputeTierMetrics(evalPoints, all, p.RadiusM)

	score := met.TotalCoverage

	if p.PenalizeOvercoverage {
		score -= p.OvercoverageWeight * met.Tier3Plus
	}

	if p.PenalizeProximity && len(newCams) > 0 {
		score -= proximityPenalty(newCams, existing,
			p.MinDistBetweenNewM, p.MinDistToExistingM, p.ProximityWeight)
	}

	return spatial.Clamp(score, 0.0, 100.0)
}

// repairSeparation relocates placements that violate the minimum distances,
// retrying up to RepairIters times. A stubborn individual is returned as-is
// rather than looping forever; the fitness penalty handles the residue.
func repairSeparation(ind, existing []spatial.Point, box spatial.BBox, p CoverageParams, rng *rand.Rand) []spatial.Point {
	out := append([]spatial.Point{}, ind...)

	for iter := 0; iter < p.RepairIters; iter++ {
		changed := false

		if p.MinDistToExistingM > 0 && len(existing) > 0 {
			for i, c := range out {
				if spatial.MinDistance(c, existing) < p.MinDistToExistingM {
					out[i] = box.RandomPoint(rng)
					changed = true
				}
			}
		}

		for i := 0; i < len(out); i++ {
			for j := i + 1; j < len(out); j++ {
				if spatial.Distance(out[i], out[j]) < p.MinDistBetweenNewM {
					out[j] = box.RandomPoint(rng)
					changed = true
				}
			}
		}

		if !changed {
			break
		}
	}

	for i := range out {
		out[i] = box.ClampPoint(out[i])
	}
	return out
}

// ImproveCoverage evolves a batch of NewCameras placements that maximizes
// tiered coverage over the evaluation grid. Returns an empty result when
// there is no existing deployment to anchor the search area.
func ImproveCoverage(existing []spatial.Point, p CoverageParams, rng *rand.Rand) CoverageResult {
	if len(existing) == 0 {
		return CoverageResult{}
	}

	evalPoints := p.EvalPoints
	if evalPoints == nil {
		evalPoints = spatial.EvalGrid(existing, p.GridStepM, 0.06, p.GridMaxPoints, rng)
	}
	if len(evalPoints) == 0 {
		// degenerate grid; fall back to evaluating at the cameras themselves
		evalPoints = append([]spatial.Point{}, existing...)
	}

	box := spatial.BoundsOf(existing).Expanded(p.BBoxMarginFactor)

	seeds := make([]spatial.Point, len(p.Seeds))
	for i, s := range p.Seeds {
		seeds[i] = box.ClampPoint(s)
	}

	newIndividual := func() []spatial.Point {
		var ind []spatial.Point

		if len(seeds) > 0 && rng.Float64() < p.SeedUseProb {
			take := mini(len(seeds), p.NewCameras)
			perm := rng.Perm(len(seeds))
			for _, idx := range perm[:take] {
				ind = append(ind, seeds[idx])
			}
		}
		for len(ind) < p.NewCameras {
			ind = append(ind, box.RandomPoint(rng))
		}

		if p.PenalizeProximity {
			ind = repairSeparation(ind, existing, box, p, rng)
		}
		return ind
	}

	pop := make([][]spatial.Point, p.PopulationSize)
	for i := range pop {
		pop[i] = newIndividual()
	}

	var bestInd []spatial.Point
	bestFit := -1.0

	for g := 0; g < p.Generations; g++ {
		fits := make([]float64, len(pop))
		for i, ind := range pop {
			fits[i] = coverageFitness(evalPoints, existing, ind, p)
		}

		order := rankDesc(fits)
		if fits[order[0]] > bestFit {
			bestFit = fits[order[0]]
			bestInd = pop[order[0]]
		}

		nElite := mini(maxi(1, p.Elitism), len(order))
		elites := make([][]spatial.Point, 0, nElite)
		for _, i := range order[:nElite] {
			elites = append(elites, pop[i])
		}

		parents := tournamentSets(pop, fits, p.TournamentK, len(pop), rng)

		next := make([][]spatial.Point, 0, len(pop))
		next = append(next, elites...)
		for len(next) < len(pop) {
			p1 := parents[rng.Intn(len(parents))]
			p2 := parents[rng.Intn(len(parents))]

			child := crossoverSet(p1, p2, p.BLXAlpha, rng)
			for i := range child {
				child[i] = mutatePoint(child[i], box, p.MutationProb, p.MutationSig, rng)
			}
			if p.PenalizeProximity {
				child = repairSeparation(child, existing, box, p, rng)
			}
			next = append(next, child)
		}
		pop = next
	}

	all := append(append([]spatial.Point{}, existing...), bestInd...)
	met := ComputeTierMetrics(evalPoints, all, p.RadiusM)

	return CoverageResult{
		NewCameras: bestInd,
		Fitness:    bestFit,
		Metrics:    met,
	}
}

// tournamentSets is tournament selection over multi-point individuals
func tournamentSets(pop [][]spatial.Point, fits []float64, k, n int, rng *rand.Rand) [][]spatial.Point {
	out := make([][]spatial.Point, 0, n)
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

// crossoverSet applies BLX-alpha gene-by-gene over paired placements
func crossoverSet(p1, p2 []spatial.Point, alpha float64, rng *rand.Rand) []spatial.Point {
	n := mini(len(p1), len(p2))
	child := make([]spatial.Point, n)
	for i := 0; i < n; i++ {
		child[i] = crossoverPoint(p1[i], p2[i], alpha, rng)
	}
	return child
}

func mini(a, b int) int {
	if a < b {
		return a
	}
	return b
}
