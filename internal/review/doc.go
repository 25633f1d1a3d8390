// Package review contains the core types and formatter for LLM-based text
// review.
//
// It defines the RawIssue and ResolvedIssue types, builds the review prompt
// for one document, resolves model-quoted snippets to document ranges via
// the locate package, and serializes results to the line-based diagnostic
// protocol ("[SEVERITY]message [Ln n, Col c]") consumed at the edges.
//
// Resolution is best effort and never drops an issue: a snippet that cannot
// be located resolves to line 0 so the issue stays visible.
package review
