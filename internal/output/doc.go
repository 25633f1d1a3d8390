// Package output renders review reports in text, JSON, SARIF, and
// markdown formats.
package output
