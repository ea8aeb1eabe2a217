package workflow

import (
	"context"
	"fmt"
	"net/http"

	"github.com/c5sim/coverage-sim-go/internal/backend"
	"github.com/c5sim/coverage-sim-go/internal/sim"
)

// ImproveCoverage runs the backend's coverage-improvement search with the
// session's optimizer configuration and fully replaces the optimizer
// overlay with the proposed placements. A malformed result leaves prior
// overlay state untouched.
func (s *Session) ImproveCoverage(ctx context.Context) Outcome {
	if !s.gate.TryEnter(sim.OpImproveCoverage) {
		return OutcomeSkipped
	}
	defer s.gate.Leave(sim.OpImproveCoverage)

	if !s.client.Available(ctx) {
		s.notifyUnavailable()
		return OutcomeFailed
	}

	resp := s.client.Do(ctx, http.MethodPost, backend.PathImproveCoverage, s.ImproveConfig, backend.ImproveBudget)
	if resp == nil {
		return OutcomeFailed
	}
	defer resp.Body.Close()

	if !statusOK(resp.StatusCode) {
		s.logErrorBody("coverage optimizer", resp)
		s.sink.Notify("The coverage optimizer failed on the server.", failureToast)
		return OutcomeFailed
	}

	body, ok := readBody(resp)
	if !ok {
		s.sink.Notify("Invalid server response.", failureToast)
		return OutcomeFailed
	}

	result, ok := backend.ParseImproveResponse(body)
	if !ok {
		s.sink.Notify("Invalid server response.", failureToast)
		return OutcomeFailed
	}

	s.Optimizer = &result
	s.renderer.RedrawOptimizer(result.NewCameras)

	msg := fmt.Sprintf("Optimizer proposed %d cameras, fitness %.1f.", len(result.NewCameras), result.Fitness)
	if total, ok := result.Metrics["cobertura_total"]; ok {
		msg = fmt.Sprintf("Optimizer proposed %d cameras, fitness %.1f, total coverage %.1f%%.",
			len(result.NewCameras), result.Fitness, total)
	}
	s.sink.Notify(msg, successToast)
	return OutcomeSuccess
}
