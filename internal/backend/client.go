// Package backend wraps outbound calls to the optimization backend with a
// timeout/cancellation contract and uniform failure translation: a call
// either yields a response or nil, never an error the caller has to
// unwind. HTTP error statuses pass through so callers can read diagnostic
// bodies.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/c5sim/coverage-sim-go/internal/notify"
)

// Per-endpoint timeout budgets, ordered by backend computational cost
const (
	HealthBudget    = 2500 * time.Millisecond
	ListBudget      = 12 * time.Second
	EvaluateBudget  = 45 * time.Second
	PersistBudget   = 45 * time.Second
	BlindSpotBudget = 90 * time.Second
	ImproveBudget   = 120 * time.Second
)

// Notification display times
const (
	failureToast = 6 * time.Second
	probeToast   = 4 * time.Second
)

// Client issues budgeted requests against the backend
type Client struct {
	baseURL string
	http    *http.Client
	sink    notify.Sink
}

// New creates a client for the backend at baseURL. The inner http.Client
// carries no timeout of its own; every call gets a per-request budget.
func New(baseURL string, sink notify.Sink) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{},
		sink:    sink,
	}
}

// Do sends a request with a hard budget. body, when non-nil, is marshaled
// as JSON. Returns nil, after notifying the user, when the budget elapses
// or transport fails before any response; the two cases get distinct
// messages. A non-nil response may still carry an error status; that is
// the caller's to check, and the caller owns closing the body.
func (c *Client) Do(ctx context.Context, method, path string, body interface{}, budget time.Duration) *http.Response {
	ctx, cancel := context.WithTimeout(ctx, budget)

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			cancel()
			log.Printf("backend: failed to marshal %s %s body: %v", method, path, err)
			c.sink.Notify("Could not build the request.", failureToast)
			return nil
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		cancel()
		log.Printf("backend: failed to build %s %s: %v", method, path, err)
		c.sink.Notify("Could not build the request.", failureToast)
		return nil
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		cancel()
		if errors.Is(err, context.DeadlineExceeded) {
			log.Printf("backend: %s %s exceeded budget %v", method, path, budget)
			c.sink.Notify("The request timed out. Retry, or reduce the search parameters.", failureToast)
		} else {
			log.Printf("backend: %s %s transport failure: %v", method, path, err)
			c.sink.Notify("Cannot reach the server. Check that the backend is running.", failureToast)
		}
		return nil
	}

	// cancel when the body is closed, not before: the caller still has to
	// read the response within the budget's context
	resp.Body = &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
	return resp
}

// Available probes the liveness endpoint and reduces the outcome to a
// boolean. The probe is silent; callers decide how to report an
// unavailable backend.
func (c *Client) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, HealthBudget)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+PathHealth, nil)
	if err != nil {
		return false
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// cancelOnClose ties a request's context cancelation to body close
type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelOnClose) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}

// BaseURL returns the configured backend address
func (c *Client) BaseURL() string {
	return c.baseURL
}

// String implements fmt.Stringer
func (c *Client) String() string {
	return fmt.Sprintf("backend(%s)", c.baseURL)
}
