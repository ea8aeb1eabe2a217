package workflow

import (
	"context"
	"fmt"
	"net/http"

	"github.com/c5sim/coverage-sim-go/internal/backend"
	"github.com/c5sim/coverage-sim-go/internal/models"
	"github.com/c5sim/coverage-sim-go/internal/sim"
)

// PersistGoodProposals sends the proposals with coverage at or above the
// threshold to the backend for storage. Local state is untouched on
// success; saved proposals remain on the map until the operator clears
// them.
func (s *Session) PersistGoodProposals(ctx context.Context) Outcome {
	if !s.gate.TryEnter(sim.OpPersist) {
		return OutcomeSkipped
	}
	defer s.gate.Leave(sim.OpPersist)

	// filter locally first; an empty batch never reaches the network
	good := s.Store.GoodProposals(GoodProposalThreshold)
	if len(good) == 0 {
		s.sink.Notify("No proposals with coverage of 80% or more to save.", infoToast)
		return OutcomeFailed
	}

	if !s.client.Available(ctx) {
		s.notifyUnavailable()
		return OutcomeFailed
	}

	origin := "simulacion"
	payload := backend.SaveGoodPayload{
		Cameras: make([]models.ProposedCameraCreate, len(good)),
	}
	for i, g := range good {
		payload.Cameras[i] = models.ProposedCameraCreate{
			Latitude:  g.Lat,
			Longitude: g.Lng,
			Coverage:  g.Coverage,
			Origin:    &origin,
		}
	}

	resp := s.client.Do(ctx, http.MethodPost, backend.PathSaveGood, payload, backend.PersistBudget)
	if resp == nil {
		return OutcomeFailed
	}
	defer resp.Body.Close()

	if !statusOK(resp.StatusCode) {
		s.logErrorBody("proposal persistence", resp)
		s.sink.Notify("The server could not save the proposals.", failureToast)
		return OutcomeFailed
	}

	s.sink.Notify(fmt.Sprintf("Saved %d proposals with good coverage.", len(good)), successToast)
	return OutcomeSuccess
}
