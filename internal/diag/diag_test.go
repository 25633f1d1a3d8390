package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/redline/internal/review"
)

func issue(msg string) review.ResolvedIssue {
	return review.ResolvedIssue{
		Severity: review.SeverityWarning,
		Message:  msg,
		Located:  true,
	}
}

func TestStore_PublishReplaces(t *testing.T) {
	s := NewStore(nil)

	s.Publish("a.md", []review.ResolvedIssue{issue("first"), issue("second")})
	require.Len(t, s.Get("a.md"), 2)

	s.Publish("a.md", []review.ResolvedIssue{issue("third")})
	got := s.Get("a.md")
	require.Len(t, got, 1, "publish must replace, not merge")
	assert.Equal(t, "third", got[0].Message)
}

func TestStore_InvisibleDocumentDiscarded(t *testing.T) {
	open := map[string]bool{"open.md": true}
	s := NewStore(func(id string) bool { return open[id] })

	s.Publish("open.md", []review.ResolvedIssue{issue("kept")})
	assert.Len(t, s.Get("open.md"), 1)

	// Document closes while a review is in flight; the late publish must
	// clear what was stored and discard the new set.
	open["open.md"] = false
	s.Publish("open.md", []review.ResolvedIssue{issue("stale")})
	assert.Empty(t, s.Get("open.md"))

	s.Publish("never-open.md", []review.ResolvedIssue{issue("stale")})
	assert.Empty(t, s.Get("never-open.md"))
}

func TestStore_Delete(t *testing.T) {
	s := NewStore(nil)
	s.Publish("a.md", []review.ResolvedIssue{issue("x")})
	s.Delete("a.md")
	assert.Empty(t, s.Get("a.md"))
}

func TestStore_Documents(t *testing.T) {
	s := NewStore(nil)
	s.Publish("a.md", []review.ResolvedIssue{issue("x")})
	s.Publish("b.md", []review.ResolvedIssue{issue("y")})
	assert.ElementsMatch(t, []string{"a.md", "b.md"}, s.Documents())
}
