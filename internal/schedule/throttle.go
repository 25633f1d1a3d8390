package schedule

import (
	"sync"
	"time"
)

// ThrottleState tracks the last accepted review time per document. It is an
// owned value with an explicit lifecycle, injected into the Scheduler, so
// tests can run against independent instances.
type ThrottleState struct {
	mu      sync.Mutex
	lastRun map[string]time.Time
}

// NewThrottleState returns an empty throttle map.
func NewThrottleState() *ThrottleState {
	return &ThrottleState{lastRun: make(map[string]time.Time)}
}

// Last returns the recorded last-run time for a document. The zero time
// means the document has never run.
func (t *ThrottleState) Last(docID string) time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastRun[docID]
}

// Mark records now as the document's last-run time.
func (t *ThrottleState) Mark(docID string, now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastRun[docID] = now
}

// Reset forgets a document's last-run time so the next submission passes
// the cooldown gate.
func (t *ThrottleState) Reset(docID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.lastRun, docID)
}

// Clear drops all recorded state. Called on shutdown.
func (t *ThrottleState) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastRun = make(map[string]time.Time)
}
