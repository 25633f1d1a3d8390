// Package locate maps free-text snippets back to byte offsets in a document.
//
// The model backend identifies issues by quoting text, not by offset, and
// the quoted text may differ from the document in whitespace or may be a
// partial paraphrase. Locate runs an ordered pipeline of strategies: an
// escaped literal match with whitespace folding, then a token co-occurrence
// heuristic for longer snippets. Matching is best effort; an unresolvable
// snippet reports no match rather than an error.
package locate
