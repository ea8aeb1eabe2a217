package sim

import "sync"

// Operation names one long-running workflow guarded by the Gate
type Operation string

// Guarded workflows
const (
	OpEvaluate         Operation = "evaluate"
	OpDetectBlindSpots Operation = "detectBlindSpots"
	OpImproveCoverage  Operation = "improveCoverage"
	OpPersist          Operation = "persist"
)

// Gate holds one mutual-exclusion latch per workflow. It prevents
// re-entrant triggering of the same workflow while it is in flight;
// different workflows run concurrently.
type Gate struct {
	mu   sync.Mutex
	held map[Operation]bool
}

// NewGate creates a gate with all latches released
func NewGate() *Gate {
	return &Gate{held: make(map[Operation]bool)}
}

// TryEnter acquires the latch for op. Returns false, with no state change,
// if the latch is already held.
func (g *Gate) TryEnter(op Operation) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.held[op] {
		return false
	}
	g.held[op] = true
	return true
}

// Leave releases the latch for op unconditionally
func (g *Gate) Leave(op Operation) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.held, op)
}

// Held reports whether the latch for op is currently held
func (g *Gate) Held(op Operation) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.held[op]
}
