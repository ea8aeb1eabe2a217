package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/c5sim/coverage-sim-go/internal/models"
	"github.com/c5sim/coverage-sim-go/internal/service"
	"github.com/c5sim/coverage-sim-go/pkg/response"
)

// OptimizerHandler handles the genetic-search endpoints
type OptimizerHandler struct {
	service *service.OptimizerService
}

// NewOptimizerHandler creates a new optimizer handler
func NewOptimizerHandler(service *service.OptimizerService) *OptimizerHandler {
	return &OptimizerHandler{service: service}
}

// BlindSpots handles GET /api/ag/puntos-ciegos
func (h *OptimizerHandler) BlindSpots(c *gin.Context) {
	spots, err := h.service.BlindSpots(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoCameras) {
			response.BadRequest(c, "No registered cameras to evaluate blind spots")
			return
		}
		response.InternalError(c, "Blind-spot search failed")
		return
	}
	if spots == nil {
		spots = []models.BlindSpot{}
	}
	c.JSON(http.StatusOK, spots)
}

// ImproveCoverage handles POST /api/ga/mejorar-cobertura. Unset request
// fields fall back to the fast-mode defaults before binding so a partial
// config behaves like the documented defaults.
func (h *OptimizerHandler) ImproveCoverage(c *gin.Context) {
	req := models.DefaultCoverageGARequest()
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid optimizer configuration")
		return
	}

	result, err := h.service.ImproveCoverage(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrNoCameras) {
			response.BadRequest(c, "No registered cameras to run coverage GA")
			return
		}
		response.InternalError(c, "Coverage GA failed")
		return
	}
	c.JSON(http.StatusOK, result)
}
