package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/c5sim/coverage-sim-go/internal/models"
	"github.com/c5sim/coverage-sim-go/internal/service"
	"github.com/c5sim/coverage-sim-go/pkg/response"
)

// CoverageHandler handles single-proposal coverage evaluation
type CoverageHandler struct {
	service *service.SimulationService
}

// NewCoverageHandler creates a new coverage handler
func NewCoverageHandler(service *service.SimulationService) *CoverageHandler {
	return &CoverageHandler{service: service}
}

// EvaluateSimulated handles POST /api/cobertura/camara-simulada
func (h *CoverageHandler) EvaluateSimulated(c *gin.Context) {
	var in models.SimulatedCameraIn
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, "Invalid simulated camera payload")
		return
	}

	eval, err := h.service.Evaluate(in)
	if err != nil {
		response.InternalError(c, "Failed to evaluate coverage")
		return
	}
	c.JSON(http.StatusOK, eval)
}
