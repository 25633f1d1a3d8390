package diag

import (
	"sync"

	"github.com/dshills/redline/internal/review"
)

// Sink receives resolved diagnostics for a document. Publishing replaces
// any previously held set for that document; sets are never merged.
type Sink interface {
	Publish(docID string, issues []review.ResolvedIssue)
	// Delete drops any stored diagnostics for the document.
	Delete(docID string)
}

// VisibilityFunc reports whether a document is still open. The check runs
// at publish time because a review that started while the document was
// visible may finish after it was closed.
type VisibilityFunc func(docID string) bool

// Store is an in-memory Sink. Stale publishes for closed documents are
// discarded instead of stored.
type Store struct {
	visible VisibilityFunc

	mu   sync.RWMutex
	byID map[string][]review.ResolvedIssue
}

// NewStore creates a store. A nil visibility function treats every document
// as visible.
func NewStore(visible VisibilityFunc) *Store {
	if visible == nil {
		visible = func(string) bool { return true }
	}
	return &Store{
		visible: visible,
		byID:    make(map[string][]review.ResolvedIssue),
	}
}

// Publish replaces the document's diagnostics. If the document is no longer
// visible the stored set is cleared and the new set discarded.
func (s *Store) Publish(docID string, issues []review.ResolvedIssue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.visible(docID) {
		delete(s.byID, docID)
		return
	}
	s.byID[docID] = issues
}

// Delete drops stored diagnostics for the document.
func (s *Store) Delete(docID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byID, docID)
}

// Get returns the current diagnostics for a document.
func (s *Store) Get(docID string) []review.ResolvedIssue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byID[docID]
}

// Documents returns the IDs that currently hold diagnostics.
func (s *Store) Documents() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.byID))
	for id := range s.byID {
		ids = append(ids, id)
	}
	return ids
}
