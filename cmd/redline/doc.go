// Redline is a local-first CLI that reviews prose documents with an LLM
// served from a local OpenAI-compatible backend.
//
// It maps the model's free-text findings back to concrete document
// positions and reports them as diagnostics, on demand or continuously
// while watching a workspace.
//
// Usage:
//
//	redline review draft.md           # review specific documents
//	redline review --changed          # review files changed since HEAD
//	redline watch                     # review text documents on save
//	redline config show               # print the effective configuration
//	redline cache clear               # drop cached backend responses
//
// See https://github.com/dshills/redline for full documentation.
package main
