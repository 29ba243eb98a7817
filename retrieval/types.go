package retrieval

import (
	"errors"
	"fmt"
)

// Sentinel errors for the retrieval index.
var (
	// ErrLockPoisoned is surfaced on write paths (Add) when the index's
	// guard has recorded a prior panic; read paths (Query) recover.
	ErrLockPoisoned = errors.New("retrieval: lock poisoned")

	// ErrDimensionMismatch indicates a vector added or queried against
	// an index of a different dimension.
	ErrDimensionMismatch = errors.New("retrieval: dimension mismatch")
)

func retrievalErrorf(op string, err error) error {
	return fmt.Errorf("retrieval.%s: %w", op, err)
}

// Match is one result of a top-k query: the id of a matched vector and
// its exact cosine similarity to the query.
type Match struct {
	ID     string
	Cosine float64
}

const (
	// DefaultMatchThreshold is the cosine at or above which a result is
	// treated as a positive match.
	DefaultMatchThreshold = 0.75

	// DefaultNoiseThreshold is the cosine at or below which a result is
	// treated as noise.
	DefaultNoiseThreshold = 0.3
)
