package codec

import (
	"github.com/ternholo/engram/trit"
)

// Encode maps block bytes into a sparse ternary vector and a
// CodebookEntry. block must not exceed cfg.BlockBytes.
func Encode(cfg Config, block []byte, filePath string, blockIndex int) (trit.SparseVector, CodebookEntry, error) {
	if len(block) > cfg.BlockBytes {
		return trit.SparseVector{}, CodebookEntry{}, codecErrorf("Encode", ErrBlockTooLarge)
	}

	base := baseIdx(cfg, filePath, blockIndex)
	seen := make(map[int32]int8) // index -> polarity already assigned

	for j, b := range block {
		pol := bytePolarity(b)
		for k := 0; k < cfg.ActiveTritsPerByte; k++ {
			idx := int32((base + seedOffset(cfg, j, b, k)) % cfg.Dim)
			if existing, ok := seen[idx]; ok && existing != pol {
				// Two bytes disagree on this index's polarity; later
				// writers do not overwrite, keeping Encode deterministic
				// with respect to byte order within the block.
				continue
			}
			seen[idx] = pol
		}
	}

	var pos, neg []int32
	for idx, pol := range seen {
		if pol > 0 {
			pos = append(pos, idx)
		} else {
			neg = append(neg, idx)
		}
	}

	vec, err := trit.NewSparse(cfg.Dim, pos, neg)
	if err != nil {
		return trit.SparseVector{}, CodebookEntry{}, codecErrorf("Encode", err)
	}

	raw := append([]byte(nil), block...)
	entry := CodebookEntry{
		BlockID:     BlockID(raw),
		RawBytes:    raw,
		Fingerprint: Fingerprint(vec),
		BlockLength: len(raw),
		FilePath:    filePath,
		BlockIndex:  blockIndex,
	}
	return vec, entry, nil
}

// Decode verifies vec against entry's fingerprint and returns the
// original bytes, bounded by expectedLength. The vector itself plays no
// role in reconstructing bytes beyond this check; entry.RawBytes is
// authoritative.
func Decode(vec trit.SparseVector, expectedLength int, entry CodebookEntry) ([]byte, error) {
	if Fingerprint(vec) != entry.Fingerprint {
		return nil, codecErrorf("Decode", ErrCorrupt)
	}
	if expectedLength > len(entry.RawBytes) {
		return nil, codecErrorf("Decode", ErrTruncated)
	}
	return entry.RawBytes[:expectedLength], nil
}
