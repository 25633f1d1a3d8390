// Package schedule gates and executes review tasks.
//
// Submissions are time-gated per document: a document reviewed less than the
// cooldown ago is dropped, not deferred. Accepted tasks run on a fixed pool
// of workers in FIFO order, so a hung backend call degrades one slot without
// blocking other documents. Task failures are captured as Results and
// logged, never raised.
package schedule
