package review

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dshills/redline/internal/document"
)

// The line protocol is the boundary format between the formatter and legacy
// consumers: one issue per line, severity tag first, optional one-based
// location suffix.
//
//	[WARNING]重複した単語 [Ln 1, Col 0]
//
// Internally everything is a ResolvedIssue; serialization happens only at
// the edges.

var lineRE = regexp.MustCompile(
	`(?i)^\[(ERROR|WARNING|INFO|HINT)\]\s*:?\s*(.+?)(?:\s+\[Ln\s+(\d+)(?:,\s*Col\s+(\d+))?\])?$`,
)

// RenderLine serializes one resolved issue to the line protocol. Unlocated
// issues render without a location suffix.
func RenderLine(r ResolvedIssue) string {
	if !r.Located {
		return fmt.Sprintf("[%s]%s", r.Severity, r.Message)
	}
	return fmt.Sprintf("[%s]%s [Ln %d, Col %d]", r.Severity, r.Message, r.Line+1, r.Col)
}

// Render serializes issues one per line.
func Render(issues []ResolvedIssue) string {
	lines := make([]string, 0, len(issues))
	for _, r := range issues {
		lines = append(lines, RenderLine(r))
	}
	return strings.Join(lines, "\n")
}

// ParsedLine is one line of protocol text before document clamping. Line is
// zero-based; a missing location suffix leaves Line and Col at zero.
type ParsedLine struct {
	Severity Severity
	Message  string
	Line     int
	Col      int
	HasLoc   bool
}

// Parse reads protocol text line by line. Blank lines and lines that do not
// match the protocol are skipped; a malformed review never aborts the cycle.
func Parse(text string) []ParsedLine {
	var out []ParsedLine
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		m := lineRE.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		p := ParsedLine{
			Severity: ParseSeverity(m[1]),
			Message:  strings.TrimSpace(m[2]),
		}
		if m[3] != "" {
			n, _ := strconv.Atoi(m[3])
			p.Line = n - 1
			p.HasLoc = true
		}
		if m[4] != "" {
			p.Col, _ = strconv.Atoi(m[4])
		}
		out = append(out, p)
	}
	return out
}

// ClampToDocument converts parsed lines into resolved issues against a
// document, clamping stale line and column references into range.
func ClampToDocument(parsed []ParsedLine, doc *document.Document) []ResolvedIssue {
	out := make([]ResolvedIssue, 0, len(parsed))
	for _, p := range parsed {
		line := doc.ClampLine(p.Line)
		lineLen := len(doc.LineText(line))
		col := p.Col
		if col > lineLen {
			col = lineLen
		}
		out = append(out, ResolvedIssue{
			Severity: p.Severity,
			Message:  p.Message,
			Line:     line,
			Col:      col,
			EndLine:  line,
			EndCol:   lineLen,
			Located:  p.HasLoc,
		})
	}
	return out
}
