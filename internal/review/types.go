package review

import "strings"

// Severity is the importance of a reported issue, as declared by the model.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
	SeverityInfo    Severity = "INFO"
	SeverityHint    Severity = "HINT"
)

// SeverityRank returns a numeric rank for comparisons (higher = more severe).
func SeverityRank(s Severity) int {
	switch s {
	case SeverityError:
		return 4
	case SeverityWarning:
		return 3
	case SeverityInfo:
		return 2
	case SeverityHint:
		return 1
	default:
		return 0
	}
}

// ParseSeverity folds a severity string to its canonical value. Unknown
// values map to INFO so a sloppy model response never drops an issue.
func ParseSeverity(s string) Severity {
	switch Severity(strings.ToUpper(strings.TrimSpace(s))) {
	case SeverityError:
		return SeverityError
	case SeverityWarning:
		return SeverityWarning
	case SeverityHint:
		return SeverityHint
	default:
		return SeverityInfo
	}
}

// RawIssue is one issue as reported by the model backend. CodeSnippet is the
// model's quote of the offending text; it carries no offset and may not be
// byte-identical to the document.
type RawIssue struct {
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	CodeSnippet string `json:"codeSnippet,omitempty"`
}

// ResolvedIssue is a RawIssue whose snippet has been mapped to a concrete
// document range. Line and Col are zero-based; the range is [start, end).
type ResolvedIssue struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Line     int      `json:"line"`
	Col      int      `json:"col"`
	EndLine  int      `json:"endLine"`
	EndCol   int      `json:"endCol"`
	// Located reports whether the snippet was actually found. Unlocated
	// issues carry the default line-0 range rather than being dropped.
	Located bool `json:"located"`
}
