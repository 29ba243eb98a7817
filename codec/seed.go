package codec

import "github.com/cespare/xxhash/v2"

// pathHash returns the non-cryptographic hash of a file path used to
// derive base_idx, so two files with identical block bytes but
// different paths do not alias onto the same support.
func pathHash(path string) uint64 {
	return xxhash.Sum64String(path)
}

// baseIdx computes base_idx = (block_index*SHIFT + hash(file_path)) mod
// Dim, anchoring each block's seeded support to its file path and index.
func baseIdx(cfg Config, filePath string, blockIndex int) int {
	h := pathHash(filePath)
	v := (uint64(blockIndex)*uint64(cfg.Shift) + h) % uint64(cfg.Dim)
	return int(v)
}

// seedOffset implements f(j, b, k): the pinned per-byte seeding
// function that spreads the K active trits for byte value b at block
// position j across indices well away from each other. It mixes
// (j, b, k) through xxhash and folds the result into [0, Dim), so two
// different (j,b,k) triples land on the same index only by chance, not
// by any structural correlation of j and k.
func seedOffset(cfg Config, j int, b byte, k int) int {
	var buf [9]byte
	buf[0] = byte(j)
	buf[1] = byte(j >> 8)
	buf[2] = byte(j >> 16)
	buf[3] = byte(j >> 24)
	buf[4] = b
	buf[5] = byte(k)
	buf[6] = byte(k >> 8)
	buf[7] = byte('f') // domain separator so seedOffset never collides with pathHash inputs
	buf[8] = byte(cfg.ActiveTritsPerByte)
	h := xxhash.Sum64(buf[:])
	return int(h % uint64(cfg.Dim))
}

// bytePolarity returns the sign assigned to byte b's seeded trits: the
// parity of the population count of b, so that bit-flipped bytes tend
// to land on opposite polarities and the codec's output isn't skewed
// toward one sign.
func bytePolarity(b byte) int8 {
	count := 0
	for v := b; v != 0; v &= v - 1 {
		count++
	}
	if count%2 == 0 {
		return 1
	}
	return -1
}
