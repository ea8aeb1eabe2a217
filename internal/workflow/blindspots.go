package workflow

import (
	"context"
	"fmt"
	"net/http"

	"github.com/c5sim/coverage-sim-go/internal/backend"
	"github.com/c5sim/coverage-sim-go/internal/sim"
)

// DetectBlindSpots asks the backend for under-covered zones and fully
// replaces the blind-spot overlay with the result. An empty result is a
// valid outcome, not an error.
func (s *Session) DetectBlindSpots(ctx context.Context) Outcome {
	if !s.gate.TryEnter(sim.OpDetectBlindSpots) {
		return OutcomeSkipped
	}
	defer s.gate.Leave(sim.OpDetectBlindSpots)

	if !s.client.Available(ctx) {
		s.notifyUnavailable()
		return OutcomeFailed
	}

	resp := s.client.Do(ctx, http.MethodGet, backend.PathBlindSpots, nil, backend.BlindSpotBudget)
	if resp == nil {
		return OutcomeFailed
	}
	defer resp.Body.Close()

	if !statusOK(resp.StatusCode) {
		s.logErrorBody("blind-spot search", resp)
		s.sink.Notify("The blind-spot search failed on the server.", failureToast)
		return OutcomeFailed
	}

	body, ok := readBody(resp)
	if !ok {
		s.sink.Notify("Invalid server response.", failureToast)
		return OutcomeFailed
	}

	spots, ok := backend.ParseBlindSpots(body)
	if !ok {
		s.sink.Notify("Invalid server response.", failureToast)
		return OutcomeFailed
	}

	s.BlindSpots = spots
	s.renderer.RedrawBlindSpots(spots)

	if len(spots) == 0 {
		s.sink.Notify("No blind spots found in this run.", infoToast)
	} else {
		s.sink.Notify(fmt.Sprintf("Found %d blind-spot zones.", len(spots)), successToast)
	}
	return OutcomeSuccess
}
