package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/dshills/redline/internal/review"
)

var severityColors = map[review.Severity]*color.Color{
	review.SeverityError:   color.New(color.FgRed, color.Bold),
	review.SeverityWarning: color.New(color.FgYellow),
	review.SeverityInfo:    color.New(color.FgCyan),
	review.SeverityHint:    color.New(color.FgHiBlack),
}

// TextWriter outputs a human-readable report, one line per issue:
//
//	draft.md:3:7  WARNING  重複した単語
//
// Lines and columns print one-based for the terminal; unlocated issues
// print without a position.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, report *Report) error {
	ew := &errWriter{w: w}

	for _, doc := range report.Documents {
		if len(doc.Issues) == 0 {
			ew.printf("%s: no issues found\n", doc.Path)
			continue
		}
		for _, issue := range doc.Issues {
			label := severityColors[issue.Severity].Sprint(string(issue.Severity))
			if issue.Located {
				ew.printf("%s:%d:%d  %s  %s\n", doc.Path, issue.Line+1, issue.Col+1, label, issue.Message)
			} else {
				ew.printf("%s  %s  %s\n", doc.Path, label, issue.Message)
			}
		}
	}

	counts := report.Counts()
	total := 0
	for _, n := range counts {
		total += n
	}
	if total > 0 {
		ew.printf("\n%d issue(s): %d error, %d warning, %d info, %d hint\n",
			total,
			counts[review.SeverityError],
			counts[review.SeverityWarning],
			counts[review.SeverityInfo],
			counts[review.SeverityHint])
	}

	return ew.err
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
