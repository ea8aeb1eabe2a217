package service

import (
	"math"
	"math/rand"
	"time"

	"github.com/c5sim/coverage-sim-go/internal/ga"
	"github.com/c5sim/coverage-sim-go/internal/models"
	"github.com/c5sim/coverage-sim-go/internal/repository"
	"github.com/c5sim/coverage-sim-go/internal/spatial"
)

// Evaluation grid tuning for single-proposal evaluation. Coarser than the
// optimizer grid so the interactive path answers quickly.
const (
	evalGridStepM  = 250.0
	evalGridMargin = 0.05
	evalGridMaxPts = 1500
	evalRadiusM    = 120.0
)

// SimulationService evaluates hypothetical camera placements against the
// registered deployment
type SimulationService struct {
	cameras *repository.CameraRepository
	newRNG  func() *rand.Rand
}

// NewSimulationService creates a new simulation service
func NewSimulationService(cameras *repository.CameraRepository) *SimulationService {
	return &SimulationService{
		cameras: cameras,
		newRNG: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

// SetRNGFactory overrides the random source, for deterministic tests
func (s *SimulationService) SetRNGFactory(f func() *rand.Rand) {
	s.newRNG = f
}

// Evaluate computes total coverage with the simulated camera included and
// the delta against the current deployment. With no registered cameras
// there is nothing to cover; both values are zero.
func (s *SimulationService) Evaluate(in models.SimulatedCameraIn) (*models.CoverageEval, error) {
	registered, err := s.cameras.List()
	if err != nil {
		return nil, err
	}
	if len(registered) == 0 {
		return &models.CoverageEval{Coverage: 0, Delta: 0}, nil
	}

	existing := camerasToPoints(registered)
	rng := s.newRNG()

	evalPoints := spatial.EvalGrid(existing, evalGridStepM, evalGridMargin, evalGridMaxPts, rng)

	proposal := spatial.Point{Lat: in.Latitude, Lng: in.Longitude}
	withProposal := append(append([]spatial.Point{}, existing...), proposal)

	before := ga.ComputeTierMetrics(evalPoints, existing, evalRadiusM)
	after := ga.ComputeTierMetrics(evalPoints, withProposal, evalRadiusM)

	return &models.CoverageEval{
		Coverage: round2(after.TotalCoverage),
		Delta:    round2(after.TotalCoverage - before.TotalCoverage),
	}, nil
}

func camerasToPoints(cameras []models.Camera) []spatial.Point {
	pts := make([]spatial.Point, len(cameras))
	for i, c := range cameras {
		pts[i] = spatial.Point{Lat: c.Latitude, Lng: c.Longitude}
	}
	return pts
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
