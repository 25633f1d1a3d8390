package review

import (
	"github.com/dshills/redline/internal/document"
	"github.com/dshills/redline/internal/locate"
)

// Resolve maps each raw issue onto a concrete range in the document, in
// input order. No deduplication or reordering happens here; the prompt asks
// the model not to repeat itself, and downstream consumers want the model's
// ordering preserved.
//
// A located issue spans from the match column to the end of that line, not
// to the end of the snippet. Whole-line highlighting is the contract
// downstream renderers rely on. An issue whose snippet cannot be located is
// pinned to line 0 with the same end-of-line span: visibly wrong beats
// silently discarded.
func Resolve(issues []RawIssue, doc *document.Document) []ResolvedIssue {
	resolved := make([]ResolvedIssue, 0, len(issues))
	for _, issue := range issues {
		resolved = append(resolved, resolveOne(issue, doc))
	}
	return resolved
}

func resolveOne(issue RawIssue, doc *document.Document) ResolvedIssue {
	r := ResolvedIssue{
		Severity: ParseSeverity(issue.Severity),
		Message:  issue.Message,
	}

	line, col := 0, 0
	if off, ok := locate.Locate(issue.CodeSnippet, doc.Text()); ok {
		pos := doc.PositionAt(off)
		line, col = pos.Line, pos.Col
		r.Located = true
	}

	line = doc.ClampLine(line)
	lineLen := len(doc.LineText(line))
	if col > lineLen {
		col = lineLen
	}

	r.Line = line
	r.Col = col
	r.EndLine = line
	r.EndCol = lineLen
	return r
}
