// Package notify is the transient-message side channel of the simulation
// engine. The engine only ever emits; presentation (toast, status bar,
// terminal) is the sink's problem.
package notify

import (
	"log"
	"sync"
	"time"
)

// Sink receives user-facing messages. duration is the suggested
// auto-dismiss time; sinks without a dismissable surface may ignore it.
type Sink interface {
	Notify(message string, duration time.Duration)
}

// LogSink writes notifications to the process log
type LogSink struct{}

// Notify implements Sink
func (LogSink) Notify(message string, duration time.Duration) {
	log.Printf("[notify] %s", message)
}

// Recorder is a Sink that records every notification, for tests
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

// Entry is one recorded notification
type Entry struct {
	Message  string
	Duration time.Duration
}

// Notify implements Sink
func (r *Recorder) Notify(message string, duration time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Message: message, Duration: duration})
}

// Messages returns the recorded message texts in order
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Message
	}
	return out
}

// Len returns how many notifications were recorded
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Reset clears the recorded notifications
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
}
