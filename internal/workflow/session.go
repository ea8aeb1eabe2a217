// Package workflow composes the simulation store, the operation gate, the
// backend client and the renderer into the user-triggered operations of a
// session: evaluate a proposal, search blind spots, run the coverage
// optimizer, persist qualifying proposals.
//
// Every workflow follows the same shape: gate admission (a held gate makes
// the trigger a silent no-op), backend pre-flight, budgeted call, response
// triage, state mutation plus redraw, summary notification, unconditional
// gate release. A workflow never leaves the session in a non-interactive
// state; all failures land back in Idle.
package workflow

import (
	"context"

	"github.com/c5sim/coverage-sim-go/internal/backend"
	"github.com/c5sim/coverage-sim-go/internal/models"
	"github.com/c5sim/coverage-sim-go/internal/notify"
	"github.com/c5sim/coverage-sim-go/internal/render"
	"github.com/c5sim/coverage-sim-go/internal/sim"
)

// GoodProposalThreshold is the minimum coverage for a proposal to qualify
// for persistence
const GoodProposalThreshold = 80.0

// Outcome is the terminal state of one workflow invocation
type Outcome int

// Workflow outcomes
const (
	// OutcomeSkipped means the gate was held; the trigger was ignored
	OutcomeSkipped Outcome = iota
	OutcomeFailed
	OutcomeSuccess
)

// Session is the state of one operator's simulation view: proposed
// cameras, the latest optimization results, and the collaborators every
// workflow needs. A session is owned by a single goroutine; workflows may
// suspend on network calls but state is only touched from that owner.
type Session struct {
	Store      *sim.Store
	BlindSpots []models.BlindSpot
	Optimizer  *backend.ImproveResult

	// ImproveConfig is sent as-is to the improve-coverage endpoint;
	// operators may tune it between runs
	ImproveConfig models.CoverageGARequest

	gate     *sim.Gate
	client   *backend.Client
	renderer *render.Renderer
	sink     notify.Sink
}

// NewSession creates a session drawing on canvas and talking to the
// backend behind client
func NewSession(client *backend.Client, canvas render.Canvas, sink notify.Sink) *Session {
	s := &Session{
		ImproveConfig: models.DefaultCoverageGARequest(),
		gate:          sim.NewGate(),
		client:        client,
		renderer:      render.NewRenderer(canvas),
		sink:          sink,
	}
	s.Store = sim.NewStore(func() {
		s.renderer.RedrawProposals(s.Store.Proposals())
	})
	return s
}

// Gate exposes the operation gate, mainly for tests and status views
func (s *Session) Gate() *sim.Gate {
	return s.gate
}

// AddProposal places a proposed camera and moves the view to it.
// Deliberately not gated: the operator may keep placing cameras while an
// optimization is in flight.
func (s *Session) AddProposal(lat, lng float64) {
	s.Store.Add(lat, lng)
	s.renderer.FocusProposal(lat, lng)
}

// MetricsSummary renders the optimizer metrics panel content
func (s *Session) MetricsSummary() string {
	if s.Optimizer == nil || len(s.Optimizer.Metrics) == 0 {
		return "no metrics available"
	}
	m := s.Optimizer.Metrics
	return formatMetrics(m)
}

// FetchCameras retrieves the registered-camera list. Not gated: the table
// view refreshes independently of the simulation workflows.
func (s *Session) FetchCameras(ctx context.Context) ([]models.Camera, bool) {
	resp := s.client.Do(ctx, "GET", backend.PathCameras, nil, backend.ListBudget)
	if resp == nil {
		return nil, false
	}
	defer resp.Body.Close()

	if !statusOK(resp.StatusCode) {
		s.logErrorBody("camera list", resp)
		return nil, false
	}

	body, ok := readBody(resp)
	if !ok {
		return nil, false
	}
	cameras, ok := backend.ParseCameras(body)
	if !ok {
		return nil, false
	}
	return cameras, true
}
