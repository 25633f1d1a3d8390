package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/dshills/redline/internal/document"
	"github.com/dshills/redline/internal/pathfilter"
	"github.com/dshills/redline/internal/runner"
	"github.com/dshills/redline/internal/schedule"
)

// Watcher feeds filesystem save events into the review scheduler. It is the
// standalone analog of an editor's on-save and on-open triggers.
type Watcher struct {
	root      string
	filter    *pathfilter.Filter
	scheduler *schedule.Scheduler
	runner    *runner.Runner
	log       *zap.Logger

	// submitOnStart reviews every eligible document once at startup.
	submitOnStart bool
	// ignoreSaves keeps the watch alive without submitting on write events,
	// for setups where reviews are only wanted on demand.
	ignoreSaves bool
}

// Options configures a Watcher.
type Options struct {
	Root          string
	Filter        *pathfilter.Filter
	Scheduler     *schedule.Scheduler
	Runner        *runner.Runner
	Log           *zap.Logger
	SubmitOnStart bool
	IgnoreSaves   bool
}

// New creates a watcher over the workspace root.
func New(opts Options) *Watcher {
	return &Watcher{
		root:          opts.Root,
		filter:        opts.Filter,
		scheduler:     opts.Scheduler,
		runner:        opts.Runner,
		log:           opts.Log,
		submitOnStart: opts.SubmitOnStart,
		ignoreSaves:   opts.IgnoreSaves,
	}
}

// Run watches the workspace until the context is cancelled. Directories are
// watched recursively; newly created directories are added on the fly.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	if err := w.addDirs(fsw, w.root); err != nil {
		return err
	}

	if w.submitOnStart {
		w.scanExisting()
	}

	w.log.Info("watching workspace", zap.String("root", w.root))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(fsw, ev)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(fsw *fsnotify.Watcher, ev fsnotify.Event) {
	if ev.Op.Has(fsnotify.Create) {
		// New directories need their own watch.
		if isDir(ev.Name) {
			if err := w.addDirs(fsw, ev.Name); err != nil {
				w.log.Warn("adding watch", zap.String("dir", ev.Name), zap.Error(err))
			}
			return
		}
	}
	if w.ignoreSaves {
		return
	}
	if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
		return
	}
	w.maybeSubmit(ev.Name)
}

// maybeSubmit applies the eligibility checks and offers the document to the
// scheduler. The document is loaded inside the task so the review sees the
// content as of execution time, not submission time.
func (w *Watcher) maybeSubmit(path string) {
	if !pathfilter.IsTextDocument(path) {
		return
	}
	if w.filter.Excluded(path) {
		w.log.Debug("excluded by filter", zap.String("doc", path))
		return
	}
	w.scheduler.Submit(path, func(ctx context.Context) error {
		doc, err := document.Load(path)
		if err != nil {
			return err
		}
		return w.runner.ReviewDocument(ctx, doc)
	})
}

// scanExisting submits every eligible document already in the workspace.
func (w *Watcher) scanExisting() {
	_ = filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		w.maybeSubmit(path)
		return nil
	})
}

func (w *Watcher) addDirs(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if skipDir(d.Name()) {
			return filepath.SkipDir
		}
		return fsw.Add(path)
	})
}

// skipDir prunes directories that never hold reviewable documents.
func skipDir(name string) bool {
	return name == ".git" || name == ".venv" || name == "node_modules" ||
		(strings.HasPrefix(name, ".") && name != "." && name != "..")
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
