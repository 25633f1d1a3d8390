// Package pathfilter decides which workspace files are eligible for review.
//
// Eligibility has two parts: the file must be a known text document type
// (markdown, plaintext, latex, rst, org), and its workspace-relative path
// must clear the configured include/exclude globs. Glob matching supports
// globstar, matches dotfiles, and applies slash-free patterns to the base
// name as well.
package pathfilter
