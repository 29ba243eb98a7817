// Package codec implements the reversible block codec (L1): encoding a
// single byte block into a sparse ternary vector plus a codebook entry,
// and decoding that pair back into the original bytes.
//
// Encode never loses information — the returned CodebookEntry carries
// the raw bytes verbatim — so Decode is a lookup plus a fingerprint
// check, not a reconstruction algorithm. The vector exists for the
// algebraic layers above this one (bundling, retrieval), not for
// decoding correctness.
package codec
