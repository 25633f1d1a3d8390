package output

import (
	"io"

	"github.com/dshills/redline/internal/review"
)

// MarkdownWriter outputs a report suitable for pasting into an issue or a
// merge request comment.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, report *Report) error {
	ew := &errWriter{w: w}

	ew.printf("# Review Report\n\n")

	counts := report.Counts()
	total := 0
	for _, n := range counts {
		total += n
	}
	if total == 0 {
		ew.printf("No issues found.\n")
		return ew.err
	}

	ew.printf("%d issue(s) across %d document(s).\n\n", total, len(report.Documents))
	ew.printf("| Severity | Count |\n|---|---|\n")
	for _, sev := range []review.Severity{review.SeverityError, review.SeverityWarning, review.SeverityInfo, review.SeverityHint} {
		if counts[sev] > 0 {
			ew.printf("| %s | %d |\n", sev, counts[sev])
		}
	}
	ew.printf("\n")

	for _, doc := range report.Documents {
		if len(doc.Issues) == 0 {
			continue
		}
		ew.printf("## %s\n\n", doc.Path)
		for _, issue := range doc.Issues {
			if issue.Located {
				ew.printf("- **%s** (line %d): %s\n", issue.Severity, issue.Line+1, issue.Message)
			} else {
				ew.printf("- **%s**: %s\n", issue.Severity, issue.Message)
			}
		}
		ew.printf("\n")
	}

	return ew.err
}
