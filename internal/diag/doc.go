// Package diag stores and renders resolved diagnostics.
//
// The Sink contract is replace-not-merge: each publish supersedes the
// document's previous diagnostics. The in-memory Store also verifies the
// document is still visible at publish time and discards results for closed
// documents, since a review may outlive the document that triggered it.
package diag
