// Package runner wires one review cycle together: it builds the prompt for
// a document snapshot, calls the backend (or the response cache), resolves
// the returned snippets to document positions, and publishes the result to
// the diagnostics sink.
package runner
