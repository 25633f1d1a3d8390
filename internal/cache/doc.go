// Package cache provides file-based caching of raw backend review
// responses, keyed by model, port, and exact document text.
package cache
