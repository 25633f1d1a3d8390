package document

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// Position is a zero-based (line, column) pair. Columns count bytes from the
// start of the line, matching the offsets reported by the locate package.
type Position struct {
	Line int
	Col  int
}

// Document is an immutable snapshot of one open text document. The reviewer
// never mutates a document; an edit produces a new snapshot via New or Load.
type Document struct {
	id         string
	text       string
	lineStarts []int
}

// New creates a document snapshot from in-memory text. CRLF line endings are
// normalized to LF so offsets are stable across platforms.
func New(id, text string) *Document {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return &Document{
		id:         id,
		text:       text,
		lineStarts: buildLineStarts(text),
	}
}

// Load reads a file from disk and returns its snapshot. The file path doubles
// as the document identifier.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	return New(path, string(data)), nil
}

// ID returns the stable identifier for this document.
func (d *Document) ID() string { return d.id }

// Text returns the full normalized document text.
func (d *Document) Text() string { return d.text }

// LineCount returns the number of lines. An empty document has one line.
func (d *Document) LineCount() int { return len(d.lineStarts) }

// buildLineStarts records the byte offset of the first character of each
// line. Index 0 is always 0.
func buildLineStarts(text string) []int {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// PositionAt converts a byte offset into a (line, column) position. Offsets
// outside the document are clamped to the nearest valid position.
func (d *Document) PositionAt(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(d.text) {
		offset = len(d.text)
	}
	// Largest line start <= offset.
	line := sort.Search(len(d.lineStarts), func(i int) bool {
		return d.lineStarts[i] > offset
	}) - 1
	return Position{Line: line, Col: offset - d.lineStarts[line]}
}

// OffsetAt converts a (line, column) position back into a byte offset. Lines
// and columns are clamped into range.
func (d *Document) OffsetAt(pos Position) int {
	line := clamp(pos.Line, 0, d.LineCount()-1)
	start := d.lineStarts[line]
	end := d.lineEnd(line)
	col := clamp(pos.Col, 0, end-start)
	return start + col
}

// LineText returns the text of the given line without its trailing newline.
// Out-of-range lines are clamped, so callers always get a real line back.
func (d *Document) LineText(line int) string {
	line = clamp(line, 0, d.LineCount()-1)
	return d.text[d.lineStarts[line]:d.lineEnd(line)]
}

// ClampLine clamps a line number into [0, LineCount-1].
func (d *Document) ClampLine(line int) int {
	return clamp(line, 0, d.LineCount()-1)
}

// lineEnd returns the offset just past the last character of the line,
// excluding the newline itself.
func (d *Document) lineEnd(line int) int {
	if line+1 < len(d.lineStarts) {
		return d.lineStarts[line+1] - 1
	}
	return len(d.text)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
