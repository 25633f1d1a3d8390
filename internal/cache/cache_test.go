package cache

import (
	"testing"

	"github.com/dshills/redline/internal/review"
)

func TestCache_PutGet(t *testing.T) {
	c, err := New(true, t.TempDir(), 3600)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	key := Key("model-a", 8080, "document text")
	issues := []review.RawIssue{
		{Severity: "WARNING", Message: "m", CodeSnippet: "s"},
	}
	if err := c.Put(key, issues); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok := c.Get(key)
	if !ok {
		t.Fatal("expected cache hit")
	}
	if len(got) != 1 || got[0].Message != "m" {
		t.Errorf("Get = %+v", got)
	}
}

func TestCache_MissOnDifferentText(t *testing.T) {
	c, err := New(true, t.TempDir(), 3600)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c.Put(Key("m", 1, "text one"), []review.RawIssue{{Severity: "INFO", Message: "x"}})

	if _, ok := c.Get(Key("m", 1, "text two")); ok {
		t.Error("different document text must not hit")
	}
	if _, ok := c.Get(Key("other", 1, "text one")); ok {
		t.Error("different model must not hit")
	}
}

func TestCache_Disabled(t *testing.T) {
	c, err := New(false, "", 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	key := Key("m", 1, "t")
	if err := c.Put(key, nil); err != nil {
		t.Errorf("Put on disabled cache: %v", err)
	}
	if _, ok := c.Get(key); ok {
		t.Error("disabled cache must always miss")
	}
}

func TestCache_Clear(t *testing.T) {
	c, err := New(true, t.TempDir(), 3600)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	key := Key("m", 1, "t")
	c.Put(key, []review.RawIssue{{Severity: "HINT", Message: "x"}})
	if err := c.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok := c.Get(key); ok {
		t.Error("cleared cache must miss")
	}
}
