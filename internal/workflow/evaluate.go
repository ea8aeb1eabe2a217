package workflow

import (
	"context"
	"fmt"
	"net/http"

	"github.com/c5sim/coverage-sim-go/internal/backend"
	"github.com/c5sim/coverage-sim-go/internal/models"
	"github.com/c5sim/coverage-sim-go/internal/sim"
)

// EvaluateCoverage submits the most recently added proposal for backend
// evaluation and stores the returned coverage on it. The pending state is
// applied optimistically before the call so the proposal renders as
// "not evaluated" while the request is in flight.
func (s *Session) EvaluateCoverage(ctx context.Context) Outcome {
	if !s.gate.TryEnter(sim.OpEvaluate) {
		return OutcomeSkipped
	}
	defer s.gate.Leave(sim.OpEvaluate)

	// empty store aborts before any network traffic, probe included
	if s.Store.Len() == 0 {
		s.sink.Notify("Place a proposed camera on the map first.", infoToast)
		return OutcomeFailed
	}

	if !s.client.Available(ctx) {
		s.notifyUnavailable()
		return OutcomeFailed
	}

	lat, lng, err := s.Store.EvaluateLast()
	if err != nil {
		// checked above; kept for the contract
		s.sink.Notify("Place a proposed camera on the map first.", infoToast)
		return OutcomeFailed
	}

	payload := models.SimulatedCameraIn{Latitude: lat, Longitude: lng}
	resp := s.client.Do(ctx, http.MethodPost, backend.PathEvaluateSimulated, payload, backend.EvaluateBudget)
	if resp == nil {
		return OutcomeFailed
	}
	defer resp.Body.Close()

	if !statusOK(resp.StatusCode) {
		s.logErrorBody("coverage evaluation", resp)
		s.sink.Notify("The server could not evaluate the proposal.", failureToast)
		return OutcomeFailed
	}

	body, ok := readBody(resp)
	if !ok {
		s.sink.Notify("Invalid server response.", failureToast)
		return OutcomeFailed
	}

	result, ok := backend.ParseEvalResponse(body)
	if !ok {
		s.sink.Notify("Invalid server response.", failureToast)
		return OutcomeFailed
	}

	s.Store.ApplyCoverageToLast(result.Coverage)

	msg := fmt.Sprintf("Estimated coverage: %.1f%%", result.Coverage)
	if result.Delta != nil {
		msg += fmt.Sprintf(" (improvement %.1f%%)", *result.Delta)
	}
	s.sink.Notify(msg, successToast)
	return OutcomeSuccess
}
