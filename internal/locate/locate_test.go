package locate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocate_Verbatim(t *testing.T) {
	text := "The quick brown fox jumps over the lazy dog."
	off, ok := Locate("brown fox", text)
	require.True(t, ok)
	assert.Equal(t, strings.Index(text, "brown fox"), off)
}

func TestLocate_FirstMatchWins(t *testing.T) {
	text := "cat dog cat dog"
	off, ok := Locate("dog", text)
	require.True(t, ok)
	assert.Equal(t, 4, off)
}

func TestLocate_EmptySnippet(t *testing.T) {
	_, ok := Locate("", "any text at all")
	assert.False(t, ok)
}

func TestLocate_WhitespaceFolding(t *testing.T) {
	text := "one two\tthree\n four"
	// Snippet whitespace differs from the document in kind and count.
	off, ok := Locate("one   two three four", text)
	require.True(t, ok)
	assert.Equal(t, 0, off)
}

func TestLocate_RegexMetacharactersAreLiteral(t *testing.T) {
	text := "use foo(.*) carefully"
	off, ok := Locate("foo(.*)", text)
	require.True(t, ok)
	assert.Equal(t, 4, off)

	// The pattern must not act as a wildcard.
	_, ok = Locate("f.o", "foo bar")
	assert.False(t, ok)
}

func TestLocate_SnippetTrimmed(t *testing.T) {
	text := "alpha beta gamma"
	off, ok := Locate("  beta  ", text)
	require.True(t, ok)
	assert.Equal(t, 6, off)
}

func TestLocate_FallbackCooccurrence(t *testing.T) {
	text := "Setup requires installing dependencies before running the server locally."
	// No exact match, but "installing" and "dependencies" co-occur.
	snippet := "installing missing dependencies first"
	off, ok := Locate(snippet, text)
	require.True(t, ok)
	assert.Equal(t, strings.Index(text, "installing"), off)
}

func TestLocate_FallbackSkipsShortSnippets(t *testing.T) {
	text := "word salad here"
	// 14 characters: below the fallback threshold, and no exact match.
	_, ok := Locate("salda wrod her", text)
	assert.False(t, ok)
}

func TestLocate_FallbackRejectsSingleTokenHit(t *testing.T) {
	// Only one of the candidate tokens appears in the document, so the
	// co-occurrence requirement fails.
	text := "the configuration file lives elsewhere entirely"
	_, ok := Locate("configuration handles startup ordering", text)
	assert.False(t, ok)
}

func TestLocate_FallbackTriesTokensInOrder(t *testing.T) {
	// First candidate token is absent; second qualifies.
	text := "please update documentation and examples together"
	snippet := "missingword documentation examples alignment"
	off, ok := Locate(snippet, text)
	require.True(t, ok)
	assert.Equal(t, strings.Index(text, "documentation"), off)
}

func TestLocate_MultibyteSnippet(t *testing.T) {
	text := "これはテストです。重複した単語が含まれます。"
	off, ok := Locate("重複した単語", text)
	require.True(t, ok)
	assert.Equal(t, strings.Index(text, "重複した単語"), off)
}

func TestLocate_FallbackCountsTokenRunes(t *testing.T) {
	// Two-character Japanese words are short tokens even though they are
	// six bytes; they must not drive a fallback match.
	text := "東京と大阪の比較資料"
	snippet := "東京 大阪 これは長い説明文です extra"
	_, ok := Locate(snippet, text)
	assert.False(t, ok)
}

func TestLocate_NoMatchAnywhere(t *testing.T) {
	_, ok := Locate("completely absent phrase never present", "short doc")
	assert.False(t, ok)
}
