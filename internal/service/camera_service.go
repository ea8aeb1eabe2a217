package service

import (
	"errors"
	"fmt"

	"github.com/c5sim/coverage-sim-go/internal/models"
	"github.com/c5sim/coverage-sim-go/internal/repository"
)

// GoodCoverageThreshold is the minimum coverage a proposal needs to be
// persisted
const GoodCoverageThreshold = 80.0

// ErrNoGoodProposals is returned when a save batch contains no proposal at
// or above the threshold
var ErrNoGoodProposals = errors.New("no proposals with coverage >= 80 to save")

// CameraService handles registered-camera and proposal business logic
type CameraService struct {
	cameras   *repository.CameraRepository
	proposals *repository.ProposalRepository
}

// NewCameraService creates a new camera service
func NewCameraService(cameras *repository.CameraRepository, proposals *repository.ProposalRepository) *CameraService {
	return &CameraService{cameras: cameras, proposals: proposals}
}

// List returns all registered cameras
func (s *CameraService) List() ([]models.Camera, error) {
	return s.cameras.List()
}

// Create registers a new camera
func (s *CameraService) Create(in models.CameraCreate) (*models.Camera, error) {
	return s.cameras.Create(in)
}

// ListProposals returns all saved camera proposals
func (s *CameraService) ListProposals() ([]models.ProposedCamera, error) {
	return s.proposals.List()
}

// SaveGoodProposals persists the proposals of a batch that meet the
// coverage threshold. The filter is re-applied server-side; the client
// filter is a convenience, not a guarantee.
func (s *CameraService) SaveGoodProposals(batch models.ProposalBatch) ([]models.ProposedCamera, error) {
	var good []models.ProposedCameraCreate
	for _, c := range batch.Cameras {
		if c.Coverage >= GoodCoverageThreshold {
			good = append(good, c)
		}
	}

	if len(good) == 0 {
		return nil, ErrNoGoodProposals
	}

	saved, err := s.proposals.SaveBatch(good)
	if err != nil {
		return nil, fmt.Errorf("failed to save proposals: %w", err)
	}
	return saved, nil
}
