package service

import (
	"context"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c5sim/coverage-sim-go/internal/config"
	"github.com/c5sim/coverage-sim-go/internal/database"
	"github.com/c5sim/coverage-sim-go/internal/models"
	"github.com/c5sim/coverage-sim-go/internal/repository"
)

func openRepos(t *testing.T) (*repository.CameraRepository, *repository.ProposalRepository, *repository.UserRepository) {
	t.Helper()
	conn, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return repository.NewCameraRepository(conn),
		repository.NewProposalRepository(conn),
		repository.NewUserRepository(conn)
}

func seededRNG() func() *rand.Rand {
	return func() *rand.Rand { return rand.New(rand.NewSource(99)) }
}

// registerSquare inserts four cameras on a ~1 km square
func registerSquare(t *testing.T, cameras *repository.CameraRepository) {
	t.Helper()
	coords := [][2]float64{
		{19.400, -99.150},
		{19.409, -99.150},
		{19.400, -99.141},
		{19.409, -99.141},
	}
	for _, c := range coords {
		_, err := cameras.Create(models.CameraCreate{Latitude: c[0], Longitude: c[1]})
		require.NoError(t, err)
	}
}

func TestCameraService_SaveGoodProposals(t *testing.T) {
	cameras, proposals, _ := openRepos(t)
	svc := NewCameraService(cameras, proposals)

	saved, err := svc.SaveGoodProposals(models.ProposalBatch{
		Cameras: []models.ProposedCameraCreate{
			{Latitude: 1, Longitude: 1, Coverage: 79.9},
			{Latitude: 2, Longitude: 2, Coverage: 80.0},
			{Latitude: 3, Longitude: 3, Coverage: 95.0},
		},
	})
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.InDelta(t, 80.0, saved[0].Coverage, 1e-9)
	assert.InDelta(t, 95.0, saved[1].Coverage, 1e-9)

	listed, err := svc.ListProposals()
	require.NoError(t, err)
	assert.Len(t, listed, 2)
}

func TestCameraService_SaveGoodProposals_NoneQualify(t *testing.T) {
	cameras, proposals, _ := openRepos(t)
	svc := NewCameraService(cameras, proposals)

	_, err := svc.SaveGoodProposals(models.ProposalBatch{
		Cameras: []models.ProposedCameraCreate{
			{Latitude: 1, Longitude: 1, Coverage: 50},
		},
	})
	assert.ErrorIs(t, err, ErrNoGoodProposals)

	_, err = svc.SaveGoodProposals(models.ProposalBatch{})
	assert.ErrorIs(t, err, ErrNoGoodProposals)
}

func TestSimulationService_Evaluate(t *testing.T) {
	cameras, _, _ := openRepos(t)
	registerSquare(t, cameras)

	svc := NewSimulationService(cameras)
	svc.SetRNGFactory(seededRNG())

	// a proposal in the center of the square adds coverage
	result, err := svc.Evaluate(models.SimulatedCameraIn{Latitude: 19.4045, Longitude: -99.1455})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, result.Coverage, 0.0)
	assert.LessOrEqual(t, result.Coverage, 100.0)
	assert.GreaterOrEqual(t, result.Delta, 0.0)

	// values come back rounded to two decimals
	assert.InDelta(t, result.Coverage, round2(result.Coverage), 1e-12)
	assert.InDelta(t, result.Delta, round2(result.Delta), 1e-12)
}

func TestSimulationService_Evaluate_NoCameras(t *testing.T) {
	cameras, _, _ := openRepos(t)
	svc := NewSimulationService(cameras)

	result, err := svc.Evaluate(models.SimulatedCameraIn{Latitude: 19.40, Longitude: -99.15})
	require.NoError(t, err)
	assert.Zero(t, result.Coverage)
	assert.Zero(t, result.Delta)
}

func TestOptimizerService_BlindSpots(t *testing.T) {
	cameras, _, _ := openRepos(t)
	registerSquare(t, cameras)

	svc := NewOptimizerService(cameras)
	svc.SetRNGFactory(seededRNG())

	spots, err := svc.BlindSpots(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, spots)
	for _, s := range spots {
		assert.False(t, s.Fitness < 0 || s.Fitness > 1)
	}
}

func TestOptimizerService_BlindSpots_NoCameras(t *testing.T) {
	cameras, _, _ := openRepos(t)
	svc := NewOptimizerService(cameras)

	_, err := svc.BlindSpots(context.Background())
	assert.ErrorIs(t, err, ErrNoCameras)
}

func TestOptimizerService_ImproveCoverage(t *testing.T) {
	cameras, _, _ := openRepos(t)
	registerSquare(t, cameras)

	svc := NewOptimizerService(cameras)
	svc.SetRNGFactory(seededRNG())

	req := models.DefaultCoverageGARequest()
	req.NewCameras = 3
	req.PopulationSize = 15
	req.Generations = 10

	resp, err := svc.ImproveCoverage(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.NewCameras, 3)
	assert.GreaterOrEqual(t, resp.Fitness, 0.0)
	assert.Contains(t, resp.Metrics, "cobertura_total")
	assert.Contains(t, resp.Metrics, "nivel_3_mas")
}

func TestOptimizerService_ImproveCoverage_DegenerateConfigs(t *testing.T) {
	cameras, _, _ := openRepos(t)
	registerSquare(t, cameras)

	svc := NewOptimizerService(cameras)
	svc.SetRNGFactory(seededRNG())

	// elitism above the population size must not fail the request
	req := models.DefaultCoverageGARequest()
	req.NewCameras = 2
	req.PopulationSize = 8
	req.Generations = 5
	req.Elitism = 30

	resp, err := svc.ImproveCoverage(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, resp.NewCameras, 2)

	// zeroed tuning values are clamped to runnable minimums
	req = models.DefaultCoverageGARequest()
	req.NewCameras = 0
	req.PopulationSize = 0
	req.Generations = 0
	req.TournamentK = 0
	req.Elitism = -1
	req.GridStepM = 0

	resp, err = svc.ImproveCoverage(context.Background(), req)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.NewCameras)
}

func TestOptimizerService_ImproveCoverage_NoCameras(t *testing.T) {
	cameras, _, _ := openRepos(t)
	svc := NewOptimizerService(cameras)

	_, err := svc.ImproveCoverage(context.Background(), models.DefaultCoverageGARequest())
	assert.ErrorIs(t, err, ErrNoCameras)
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	_, _, users := openRepos(t)
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiry: time.Hour}
	svc := NewAuthService(users, cfg)

	user, err := svc.Register(models.UserCreate{
		Name:          "Ana",
		FirstSurname:  "Lopez",
		SecondSurname: "Garcia",
		Email:         "  Ana@Example.COM ",
		Password:      "supersecret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.NotEqual(t, "supersecret1", user.PasswordHash)

	// duplicate registration, even with different casing
	_, err = svc.Register(models.UserCreate{
		Name: "Otra", FirstSurname: "X", SecondSurname: "Y",
		Email: "ANA@example.com", Password: "supersecret2",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)

	logged, token, err := svc.Login(models.LoginRequest{Email: "ana@example.com", Password: "supersecret1"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	assert.NotEmpty(t, token)

	_, _, err = svc.Login(models.LoginRequest{Email: "ana@example.com", Password: "wrongpass"})
	assert.ErrorIs(t, err, ErrBadCredentials)

	_, _, err = svc.Login(models.LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, ErrBadCredentials)
}
