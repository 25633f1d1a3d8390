package runner

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/dshills/redline/internal/cache"
	"github.com/dshills/redline/internal/diag"
	"github.com/dshills/redline/internal/document"
	"github.com/dshills/redline/internal/llm"
	"github.com/dshills/redline/internal/redact"
	"github.com/dshills/redline/internal/review"
)

// Backend is the model client contract consumed by the runner.
type Backend interface {
	Review(ctx context.Context, prompt string) ([]review.RawIssue, error)
}

// Runner executes one full review cycle: prompt, backend call, snippet
// resolution, publish.
type Runner struct {
	Client       Backend
	Sink         diag.Sink
	Cache        *cache.Cache
	Model        string
	Port         int
	Instructions string
	// Redact masks secrets in the prompt copy of the document. Positions
	// still resolve against the original text, so an issue whose snippet
	// quotes a masked region simply comes back unlocated.
	Redact bool
	Log    *zap.Logger
}

// ReviewDocument reviews one document snapshot and publishes the resolved
// diagnostics. A backend failure ends the cycle quietly with no publish;
// the error is returned only so the scheduler can record it. A response
// with no usable result publishes an empty set, clearing stale diagnostics.
func (r *Runner) ReviewDocument(ctx context.Context, doc *document.Document) error {
	issues, hit := r.cachedIssues(doc)
	if !hit {
		promptDoc := doc
		if r.Redact {
			promptDoc = document.New(doc.ID(), redact.Secrets(doc.Text()))
		}
		var err error
		issues, err = r.Client.Review(ctx, review.BuildPrompt(promptDoc, r.Instructions))
		if err != nil {
			if errors.Is(err, llm.ErrNoResult) {
				r.Log.Info("backend returned no result", zap.String("doc", doc.ID()))
				r.Sink.Publish(doc.ID(), []review.ResolvedIssue{})
				return nil
			}
			return fmt.Errorf("reviewing %s: %w", doc.ID(), err)
		}
		r.storeIssues(doc, issues)
	}

	resolved := review.Resolve(issues, doc)
	r.Sink.Publish(doc.ID(), resolved)
	r.Log.Info("diagnostics published",
		zap.String("doc", doc.ID()),
		zap.Int("issues", len(resolved)),
		zap.Bool("cached", hit))
	return nil
}

func (r *Runner) cachedIssues(doc *document.Document) ([]review.RawIssue, bool) {
	if r.Cache == nil {
		return nil, false
	}
	return r.Cache.Get(cache.Key(r.Model, r.Port, doc.Text()))
}

func (r *Runner) storeIssues(doc *document.Document, issues []review.RawIssue) {
	if r.Cache == nil {
		return
	}
	if err := r.Cache.Put(cache.Key(r.Model, r.Port, doc.Text()), issues); err != nil {
		r.Log.Warn("cache write failed", zap.Error(err))
	}
}
