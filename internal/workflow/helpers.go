package workflow

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"sort"
	"strings"
	"time"
)

// Notification display times
const (
	infoToast    = 4 * time.Second
	successToast = 5 * time.Second
	failureToast = 6 * time.Second
)

func statusOK(code int) bool {
	return code >= 200 && code < 300
}

// readBody drains a response body, tolerating at most a few MB; the
// backend's payloads are lists in the tens of entries
func readBody(resp *http.Response) ([]byte, bool) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		log.Printf("workflow: failed to read response body: %v", err)
		return nil, false
	}
	return body, true
}

// logErrorBody reads an error response best-effort for diagnostics. The
// user gets a generic notice elsewhere; the body only goes to the log.
func (s *Session) logErrorBody(operation string, resp *http.Response) {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	log.Printf("workflow: %s returned status %d: %s", operation, resp.StatusCode, strings.TrimSpace(string(body)))
}

// notifyUnavailable is the shared pre-flight failure message
func (s *Session) notifyUnavailable() {
	s.sink.Notify("The backend is not available right now. Try again in a moment.", failureToast)
}

// metric labels for the summary panel, in display order
var metricLabels = []struct {
	key   string
	label string
}{
	{"cobertura_total", "total coverage"},
	{"sin_cobertura", "no coverage"},
	{"nivel_1", "tier 1"},
	{"nivel_2", "tier 2"},
	{"nivel_3_mas", "tier 3+"},
}

func formatMetrics(m map[string]float64) string {
	var parts []string
	seen := make(map[string]bool)
	for _, ml := range metricLabels {
		if v, ok := m[ml.key]; ok {
			parts = append(parts, fmt.Sprintf("%s %.1f%%", ml.label, v))
			seen[ml.key] = true
		}
	}
	// unknown keys still render, after the known ones
	var rest []string
	for k := range m {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, k := range rest {
		parts = append(parts, fmt.Sprintf("%s %.1f%%", k, m[k]))
	}
	if len(parts) == 0 {
		return "no metrics available"
	}
	return strings.Join(parts, ", ")
}
