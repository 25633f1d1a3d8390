// Package watch turns filesystem write events into review submissions.
//
// It watches the workspace recursively, filters events through the path
// filter, and offers eligible text documents to the scheduler, which
// applies the per-document cooldown. Document content is read when the
// review actually runs, so a burst of saves reviews the latest state.
package watch
