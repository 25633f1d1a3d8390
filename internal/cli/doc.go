// Package cli implements the redline command-line interface.
//
// Commands share one effective configuration built by merging defaults,
// the user config file, the workspace overlay, environment variables, and
// flags. Handlers record findings through the process exit code: 0 clean,
// 1 ERROR-severity findings, 2 usage errors, 4 runtime failures.
package cli
