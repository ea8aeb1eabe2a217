package service

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"time"

	"github.com/c5sim/coverage-sim-go/internal/ga"
	"github.com/c5sim/coverage-sim-go/internal/models"
	"github.com/c5sim/coverage-sim-go/internal/repository"
)

// ErrNoCameras is returned when an optimization is requested against an
// empty deployment
var ErrNoCameras = errors.New("no registered cameras to optimize against")

// OptimizerService runs the genetic searches over the registered deployment
type OptimizerService struct {
	cameras *repository.CameraRepository
	newRNG  func() *rand.Rand
}

// NewOptimizerService creates a new optimizer service
func NewOptimizerService(cameras *repository.CameraRepository) *OptimizerService {
	return &OptimizerService{
		cameras: cameras,
		newRNG: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

// SetRNGFactory overrides the random source, for deterministic tests
func (s *OptimizerService) SetRNGFactory(f func() *rand.Rand) {
	s.newRNG = f
}

// BlindSpots runs the blind-spot search against the registered deployment
func (s *OptimizerService) BlindSpots(ctx context.Context) ([]models.BlindSpot, error) {
	registered, err := s.cameras.List()
	if err != nil {
		return nil, err
	}
	if len(registered) == 0 {
		return nil, ErrNoCameras
	}

	start := time.Now()
	results := ga.FindBlindSpots(camerasToPoints(registered), ga.DefaultBlindSpotParams(), s.newRNG())
	log.Printf("Blind-spot search over %d cameras finished in %v", len(registered), time.Since(start))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	spots := make([]models.BlindSpot, len(results))
	for i, r := range results {
		spots[i] = models.BlindSpot{
			Latitude:  r.Point.Lat,
			Longitude: r.Point.Lng,
			Fitness:   r.Fitness,
		}
	}
	return spots, nil
}

// ImproveCoverage runs the coverage-improvement search with the requested
// configuration
func (s *OptimizerService) ImproveCoverage(ctx context.Context, req models.CoverageGARequest) (*models.CoverageGAResponse, error) {
	registered, err := s.cameras.List()
	if err != nil {
		return nil, err
	}
	if len(registered) == 0 {
		return nil, ErrNoCameras
	}

	existing := camerasToPoints(registered)
	rng := s.newRNG()

	params := ga.DefaultCoverageParams()
	params.NewCameras = req.NewCameras
	params.RadiusM = req.RadiusM
	params.GridStepM = req.GridStepM
	params.GridMaxPoints = req.GridMaxPoints
	params.PopulationSize = req.PopulationSize
	params.Generations = req.Generations
	params.Elitism = req.Elitism
	params.TournamentK = req.TournamentK
	params.BLXAlpha = req.BLXAlpha
	params.PenalizeOvercoverage = req.PenalizeOvercoverage
	params.PenalizeProximity = req.PenalizeProximity
	params.MinDistBetweenNewM = req.MinDistBetweenNewM
	params.MinDistToExistingM = req.MinDistToExistingM
	params.ProximityWeight = req.ProximityWeight

	// degenerate client configs are clamped to runnable minimums rather
	// than rejected; the search stays lenient about tuning values
	if params.NewCameras < 1 {
		params.NewCameras = 1
	}
	if params.PopulationSize < 2 {
		params.PopulationSize = 2
	}
	if params.Generations < 1 {
		params.Generations = 1
	}
	if params.TournamentK < 1 {
		params.TournamentK = 1
	}
	if params.Elitism < 0 {
		params.Elitism = 0
	}
	if params.GridStepM < 10 {
		params.GridStepM = 10
	}

	if req.SeedWithBlindSpots {
		seeds := ga.FindBlindSpots(existing, ga.DefaultBlindSpotParams(), rng)
		take := req.BlindSpotSeeds
		if take < 1 {
			take = 1
		}
		if take > len(seeds) {
			take = len(seeds)
		}
		for _, sp := range seeds[:take] {
			params.Seeds = append(params.Seeds, sp.Point)
		}
	}

	start := time.Now()
	result := ga.ImproveCoverage(existing, params, rng)
	log.Printf("Coverage GA (%d cameras, pop %d, gen %d) finished in %v, fitness %.2f",
		len(registered), params.PopulationSize, params.Generations, time.Since(start), result.Fitness)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	newCams := make([]models.NewCamera, len(result.NewCameras))
	for i, p := range result.NewCameras {
		newCams[i] = models.NewCamera{Latitude: p.Lat, Longitude: p.Lng}
	}

	return &models.CoverageGAResponse{
		NewCameras: newCams,
		Fitness:    result.Fitness,
		Metrics:    result.Metrics.ToMap(),
	}, nil
}
