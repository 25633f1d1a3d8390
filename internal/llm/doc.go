// Package llm is the client for the local OpenAI-compatible review backend.
//
// It posts the review prompt to /v1/chat/completions with a single declared
// tool, reviewText, at temperature 0, and extracts the structured issue list
// from the tool-call arguments. Rate-limit and 5xx responses are retried
// with backoff; everything else is an error the caller converts into an
// empty review cycle. The backend is trusted to be local, so no API key is
// sent.
package llm
