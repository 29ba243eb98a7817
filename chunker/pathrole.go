package chunker

import "github.com/cespare/xxhash/v2"

// pathPermutationShift derives the per-file permutation stride from the
// hash of the file's path, precomputed once per file. Applying this
// shift to every block vector before bundling keeps files that happen to
// share block content from aliasing onto the same file vector.
func pathPermutationShift(path string, dim int) int {
	h := xxhash.Sum64String(path)
	if dim <= 0 {
		return 0
	}
	return int(h % uint64(dim))
}
