// Package document provides immutable text document snapshots with
// offset-to-position conversion.
//
// A Document indexes line starts once at construction, so PositionAt and
// OffsetAt are O(log n) binary searches. All line and column values are
// zero-based and clamped rather than rejected, because issue locations can
// reference a document that has shifted since review began.
package document
