// Package trit implements the sparse ternary vector algebra that the rest
// of this module is built on: values in {-1, 0, +1} arranged into
// D-dimensional vectors, with Bind, Bundle, Permute, Dot, and Cosine
// defined identically across two representations.
//
// Sparse form lists the non-zero positions explicitly (two sorted,
// deduplicated, disjoint index slices). Dense form packs the same
// information into two bit-planes, one word-slice per polarity.
// Both forms satisfy the same algebra; Hybrid picks between them based
// on measured density so that callers never have to choose by hand.
//
// AI-Hints:
//   - Prefer Sparse for freshly seeded, low-density vectors (<0.5%);
//     prefer Dense once an accumulation (Bundle of many inputs) pushes
//     density up, since dense bit-plane ops are branch-free and SIMD-able.
//   - Vector is the capability interface everything else in this module
//     programs against; concrete types are an implementation detail.
package trit
