package pathfilter

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultExcludes are the glob patterns skipped when no exclude
// configuration is given.
var DefaultExcludes = []string{".venv/**", "**/.venv/**"}

// textLanguages maps file extensions to the set of reviewable text document
// types. Anything else is never reviewed.
var textLanguages = map[string]string{
	".md":       "markdown",
	".markdown": "markdown",
	".txt":      "plaintext",
	".text":     "plaintext",
	".tex":      "latex",
	".latex":    "latex",
	".rst":      "rst",
	".org":      "org",
}

// Language returns the language id for a path and whether it is a
// reviewable text document.
func Language(fsPath string) (string, bool) {
	lang, ok := textLanguages[strings.ToLower(filepath.Ext(fsPath))]
	return lang, ok
}

// IsTextDocument reports whether the path is a reviewable text document.
func IsTextDocument(fsPath string) bool {
	_, ok := Language(fsPath)
	return ok
}

// Filter decides which workspace files are eligible for review.
type Filter struct {
	root    string
	include []string
	exclude []string
}

// New creates a filter rooted at the workspace directory. Empty excludes
// fall back to DefaultExcludes; empty includes admit everything.
func New(root string, include, exclude []string) *Filter {
	if len(exclude) == 0 {
		exclude = DefaultExcludes
	}
	return &Filter{root: root, include: include, exclude: exclude}
}

// Rel returns the workspace-relative slash path, or false when the path
// lies outside the workspace.
func (f *Filter) Rel(fsPath string) (string, bool) {
	rel, err := filepath.Rel(f.root, fsPath)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}
	return rel, true
}

// Excluded reports whether a document should be skipped. Paths outside the
// workspace are never excluded, matching the editor behavior of reviewing
// any loose file the user opens. When include patterns are configured the
// path must match at least one of them.
func (f *Filter) Excluded(fsPath string) bool {
	rel, ok := f.Rel(fsPath)
	if !ok {
		return false
	}

	if len(f.include) > 0 {
		included := false
		for _, pattern := range f.include {
			if matchGlob(pattern, rel) {
				included = true
				break
			}
		}
		if !included {
			return true
		}
	}

	for _, pattern := range f.exclude {
		if matchGlob(pattern, rel) {
			return true
		}
	}
	return false
}

// matchGlob applies globstar matching with basename semantics: a pattern
// without a slash may match the path's base name alone.
func matchGlob(pattern, rel string) bool {
	if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
		return true
	}
	if !strings.Contains(pattern, "/") {
		if ok, err := doublestar.Match(pattern, path.Base(rel)); err == nil && ok {
			return true
		}
	}
	return false
}
