package locate

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// fallbackMinSnippetLen is the snippet length above which the
	// co-occurrence fallback is allowed to run.
	fallbackMinSnippetLen = 15
	// fallbackMinTokenLen filters out short, common words from fallback
	// token candidates.
	fallbackMinTokenLen = 3
	// fallbackMaxTokens caps how many candidate tokens are tried.
	fallbackMaxTokens = 3
	// fallbackWindow is the context radius, in bytes, around a token hit.
	fallbackWindow = 50
	// fallbackMinCooccur is the minimum number of candidate tokens that
	// must appear inside the window for a hit to be accepted.
	fallbackMinCooccur = 2
)

// Strategy attempts to find a snippet in a document and returns the byte
// offset of the match, or false if the strategy found nothing.
type Strategy func(snippet, text string) (int, bool)

// defaultStrategies is the ordered pipeline tried by Locate.
var defaultStrategies = []Strategy{
	literalMatch,
	cooccurrenceMatch,
}

// Locate finds the best-matching byte offset of snippet in text. Strategies
// are tried in order and the first hit wins, so results are deterministic.
// An empty snippet never matches. Locate never fails; a snippet that cannot
// be found simply reports no match.
func Locate(snippet, text string) (int, bool) {
	if snippet == "" {
		return 0, false
	}
	for _, strategy := range defaultStrategies {
		if off, ok := strategy(snippet, text); ok {
			return off, true
		}
	}
	return 0, false
}

// literalMatch escapes the trimmed snippet and folds every whitespace run
// into \s+ before searching. The model quotes text with its own wrapping and
// indentation, so the match must tolerate any whitespace differences while
// staying literal everywhere else.
func literalMatch(snippet, text string) (int, bool) {
	escaped := regexp.QuoteMeta(strings.TrimSpace(snippet))
	pattern := whitespaceRun.ReplaceAllString(escaped, `\s+`)

	re, err := regexp.Compile(pattern)
	if err != nil {
		return 0, false
	}
	loc := re.FindStringIndex(text)
	if loc == nil {
		return 0, false
	}
	return loc[0], true
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// cooccurrenceMatch recovers partially quoted or paraphrased snippets. It
// takes the first few long tokens of the snippet and accepts the first token
// whose surrounding context contains at least two of the candidates. A
// single common word is never enough, which keeps false positives down.
func cooccurrenceMatch(snippet, text string) (int, bool) {
	if utf8.RuneCountInString(snippet) <= fallbackMinSnippetLen {
		return 0, false
	}

	var tokens []string
	for _, w := range strings.Fields(snippet) {
		if utf8.RuneCountInString(w) > fallbackMinTokenLen {
			tokens = append(tokens, w)
			if len(tokens) == fallbackMaxTokens {
				break
			}
		}
	}

	for _, token := range tokens {
		idx := strings.Index(text, token)
		if idx < 0 {
			continue
		}
		start := max(0, idx-fallbackWindow)
		end := min(len(text), idx+fallbackWindow)
		window := text[start:end]

		found := 0
		for _, w := range tokens {
			if strings.Contains(window, w) {
				found++
			}
		}
		if found >= fallbackMinCooccur {
			return idx, true
		}
	}
	return 0, false
}
