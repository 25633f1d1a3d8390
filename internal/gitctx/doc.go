// Package gitctx lists working-tree changes from a git repository by
// shelling out to git. It backs the --changed review mode, which reviews
// only documents that differ from HEAD.
package gitctx
