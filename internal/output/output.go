package output

import (
	"fmt"
	"io"
	"os"

	"github.com/dshills/redline/internal/review"
)

// Report is the aggregate outcome of one review invocation, one entry per
// reviewed document in a stable order.
type Report struct {
	Version   string           `json:"version"`
	Documents []DocumentResult `json:"documents"`
}

// DocumentResult holds the resolved diagnostics for one document.
type DocumentResult struct {
	Path   string                 `json:"path"`
	Issues []review.ResolvedIssue `json:"issues"`
}

// Counts tallies issues by severity across the report.
func (r *Report) Counts() map[review.Severity]int {
	counts := make(map[review.Severity]int)
	for _, d := range r.Documents {
		for _, issue := range d.Issues {
			counts[issue.Severity]++
		}
	}
	return counts
}

// Writer writes a report in a specific format.
type Writer interface {
	Write(w io.Writer, report *Report) error
}

// GetWriter returns a writer for the specified format.
func GetWriter(format string) (Writer, error) {
	switch format {
	case "text":
		return &TextWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	case "sarif":
		return &SARIFWriter{}, nil
	case "markdown":
		return &MarkdownWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteReport writes the report to the specified output (file path or stdout).
func WriteReport(report *Report, format, outPath string) error {
	writer, err := GetWriter(format)
	if err != nil {
		return err
	}

	var w io.Writer
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	} else {
		w = os.Stdout
	}

	return writer.Write(w, report)
}
