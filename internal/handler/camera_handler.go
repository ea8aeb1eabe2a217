package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/c5sim/coverage-sim-go/internal/models"
	"github.com/c5sim/coverage-sim-go/internal/service"
	"github.com/c5sim/coverage-sim-go/pkg/response"
)

// CameraHandler handles HTTP requests for cameras and saved proposals
type CameraHandler struct {
	service *service.CameraService
}

// NewCameraHandler creates a new camera handler
func NewCameraHandler(service *service.CameraService) *CameraHandler {
	return &CameraHandler{service: service}
}

// List handles GET /api/camaras
func (h *CameraHandler) List(c *gin.Context) {
	cameras, err := h.service.List()
	if err != nil {
		response.InternalError(c, "Failed to list cameras")
		return
	}
	if cameras == nil {
		cameras = []models.Camera{}
	}
	c.JSON(http.StatusOK, cameras)
}

// Create handles POST /api/camaras
func (h *CameraHandler) Create(c *gin.Context) {
	var in models.CameraCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, "Invalid camera payload")
		return
	}

	camera, err := h.service.Create(in)
	if err != nil {
		response.InternalError(c, "Failed to create camera")
		return
	}
	c.JSON(http.StatusCreated, camera)
}

// ListProposals handles GET /api/camaras-propuestas
func (h *CameraHandler) ListProposals(c *gin.Context) {
	proposals, err := h.service.ListProposals()
	if err != nil {
		response.InternalError(c, "Failed to list proposals")
		return
	}
	if proposals == nil {
		proposals = []models.ProposedCamera{}
	}
	c.JSON(http.StatusOK, proposals)
}

// SaveGoodProposals handles POST /api/camaras-propuestas/guardar-buenas
func (h *CameraHandler) SaveGoodProposals(c *gin.Context) {
	var batch models.ProposalBatch
	if err := c.ShouldBindJSON(&batch); err != nil {
		response.BadRequest(c, "Invalid proposal batch")
		return
	}

	saved, err := h.service.SaveGoodProposals(batch)
	if err != nil {
		if errors.Is(err, service.ErrNoGoodProposals) {
			response.BadRequest(c, "No proposals with coverage >= 80 to save")
			return
		}
		response.InternalError(c, "Failed to save proposals")
		return
	}
	c.JSON(http.StatusCreated, saved)
}
