package review

import (
	"testing"

	"github.com/dshills/redline/internal/document"
)

func TestRenderLine(t *testing.T) {
	located := ResolvedIssue{
		Severity: SeverityWarning,
		Message:  "重複した単語",
		Line:     0,
		Col:      0,
		Located:  true,
	}
	if got := RenderLine(located); got != "[WARNING]重複した単語 [Ln 1, Col 0]" {
		t.Errorf("RenderLine(located) = %q", got)
	}

	unlocated := ResolvedIssue{Severity: SeverityError, Message: "broken"}
	if got := RenderLine(unlocated); got != "[ERROR]broken" {
		t.Errorf("RenderLine(unlocated) = %q", got)
	}
}

func TestParse_FullLine(t *testing.T) {
	parsed := Parse("[WARNING]重複した単語 [Ln 3, Col 7]")
	if len(parsed) != 1 {
		t.Fatalf("got %d parsed lines, want 1", len(parsed))
	}
	p := parsed[0]
	if p.Severity != SeverityWarning {
		t.Errorf("Severity = %q", p.Severity)
	}
	if p.Message != "重複した単語" {
		t.Errorf("Message = %q", p.Message)
	}
	if p.Line != 2 || p.Col != 7 {
		t.Errorf("location = (%d,%d), want (2,7)", p.Line, p.Col)
	}
	if !p.HasLoc {
		t.Error("HasLoc should be true")
	}
}

func TestParse_CaseInsensitiveAndOptionalColon(t *testing.T) {
	parsed := Parse("[error]: something wrong")
	if len(parsed) != 1 {
		t.Fatalf("got %d parsed lines, want 1", len(parsed))
	}
	if parsed[0].Severity != SeverityError {
		t.Errorf("Severity = %q, want ERROR", parsed[0].Severity)
	}
	if parsed[0].Message != "something wrong" {
		t.Errorf("Message = %q", parsed[0].Message)
	}
	if parsed[0].HasLoc {
		t.Error("HasLoc should be false without a location suffix")
	}
}

func TestParse_MissingColDefaultsToZero(t *testing.T) {
	parsed := Parse("[INFO]note [Ln 5]")
	if len(parsed) != 1 {
		t.Fatalf("got %d parsed lines, want 1", len(parsed))
	}
	if parsed[0].Line != 4 || parsed[0].Col != 0 {
		t.Errorf("location = (%d,%d), want (4,0)", parsed[0].Line, parsed[0].Col)
	}
}

func TestParse_SkipsBlankAndMalformedLines(t *testing.T) {
	text := "\n\nnot a protocol line\n[HINT]valid one\n   \n(ERROR) wrong brackets\n"
	parsed := Parse(text)
	if len(parsed) != 1 {
		t.Fatalf("got %d parsed lines, want 1", len(parsed))
	}
	if parsed[0].Message != "valid one" {
		t.Errorf("Message = %q", parsed[0].Message)
	}
}

func TestRenderParse_RoundTrip(t *testing.T) {
	doc := document.New("test.md", "The the cat sat.")
	resolved := Resolve([]RawIssue{
		{Severity: "WARNING", Message: "重複した単語", CodeSnippet: "The the"},
	}, doc)

	text := Render(resolved)
	if text != "[WARNING]重複した単語 [Ln 1, Col 0]" {
		t.Fatalf("Render = %q", text)
	}

	back := ClampToDocument(Parse(text), doc)
	if len(back) != 1 {
		t.Fatalf("got %d issues after round trip, want 1", len(back))
	}
	if back[0].Line != resolved[0].Line || back[0].Col != resolved[0].Col {
		t.Errorf("round trip position = (%d,%d), want (%d,%d)",
			back[0].Line, back[0].Col, resolved[0].Line, resolved[0].Col)
	}
	if back[0].EndCol != resolved[0].EndCol {
		t.Errorf("round trip EndCol = %d, want %d", back[0].EndCol, resolved[0].EndCol)
	}
}

func TestClampToDocument_OutOfRangeLine(t *testing.T) {
	doc := document.New("test.md", "only line")
	issues := ClampToDocument(Parse("[ERROR]stale [Ln 99, Col 42]"), doc)
	if len(issues) != 1 {
		t.Fatalf("got %d issues, want 1", len(issues))
	}
	if issues[0].Line != 0 {
		t.Errorf("Line = %d, want clamped to 0", issues[0].Line)
	}
	if issues[0].Col != len("only line") {
		t.Errorf("Col = %d, want clamped to line length", issues[0].Col)
	}
}
