package codec

import (
	"github.com/zeebo/blake3"

	"github.com/ternholo/engram/trit"
)

// BlockID returns the content hash of a block's raw bytes, used as the
// codebook's deduplication key.
func BlockID(raw []byte) [32]byte {
	return blake3.Sum256(raw)
}

// Fingerprint returns the content hash of a vector's canonical sparse
// form, used to verify a vector against a codebook entry during decode.
// Two vectors with the same (dim, pos, neg) always hash identically
// regardless of the representation they started in, since ToSparse is
// canonical.
func Fingerprint(v trit.SparseVector) [32]byte {
	h := blake3.New()
	var buf [4]byte
	putInt32 := func(x int32) {
		buf[0] = byte(x)
		buf[1] = byte(x >> 8)
		buf[2] = byte(x >> 16)
		buf[3] = byte(x >> 24)
		_, _ = h.Write(buf[:])
	}
	putInt32(int32(v.Dim))
	for _, i := range v.Pos {
		putInt32(i)
	}
	putInt32(-1) // separator between pos and neg runs
	for _, i := range v.Neg {
		putInt32(i)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
