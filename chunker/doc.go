// Package chunker streams a file into fixed-size blocks, encodes each
// through codec, and bundles the results into a single per-file ternary
// vector (L2). Per-block work is embarrassingly parallel; results are
// reordered by block index before bundling so the file vector is
// independent of goroutine scheduling.
package chunker
