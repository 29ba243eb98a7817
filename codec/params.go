package codec

// Bit-exact wire-format parameters. These four constants, together with
// the seeding function f in seed.go and the canonical sparse
// serialization in manifest, constitute the interchange format this
// implementation publishes as version 1. Changing any of them changes
// the format and must bump FormatVersion.
const (
	// DefaultDim is D, the dimensionality of every ternary vector.
	DefaultDim = 10000

	// DefaultBlockBytes is B, the maximum size of one encoded block.
	DefaultBlockBytes = 4096

	// DefaultActiveTritsPerByte is K, the number of trits seeded per
	// input byte.
	DefaultActiveTritsPerByte = 3

	// DefaultShift is the stride added per block_index when deriving
	// base_idx, chosen to keep successive blocks' seeded supports
	// approximately disjoint modulo DefaultDim.
	DefaultShift = 97

	// FormatVersion identifies the pinned (SHIFT, f, path-role) wire
	// format published by this package.
	FormatVersion = 1
)
