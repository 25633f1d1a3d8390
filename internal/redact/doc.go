// Package redact masks secrets in document text before it is sent to the
// model backend.
//
// Detection uses regex heuristics covering common secret shapes: API keys,
// JWTs, private keys, AWS credentials, bearer tokens, and provider-specific
// tokens. It is opt-in via the redactSecrets config field.
package redact
