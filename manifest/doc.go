// Package manifest implements the persistent codebook and hierarchy
// manifest (L4): a self-describing, versioned record of every
// sub-engram produced by a build, plus an append-only, content-addressed
// store of the literal bytes behind every block.
//
// UnifiedManifest is a tagged union so a reader can consume either a
// fresh Hierarchical manifest or a legacy Flat one without the caller
// needing to know which shape is on disk.
package manifest
