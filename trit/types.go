package trit

import (
	"errors"
	"fmt"
)

// Trit is a single ternary digit.
type Trit int8

const (
	N Trit = -1 // negative
	Z Trit = 0  // zero
	P Trit = 1  // positive
)

// Sentinel errors for ternary vector operations.
var (
	// ErrDimensionMismatch indicates an operation was attempted between
	// vectors of different dimension D.
	ErrDimensionMismatch = errors.New("trit: dimension mismatch")

	// ErrInvalidSparseForm indicates a sparse vector's pos/neg slices are
	// unsorted, contain duplicates, or overlap.
	ErrInvalidSparseForm = errors.New("trit: invalid sparse form")

	// ErrInvalidDimension indicates a non-positive D was supplied to a
	// constructor.
	ErrInvalidDimension = errors.New("trit: dimension must be positive")

	// ErrIndexOutOfRange indicates an index outside [0, D) was supplied.
	ErrIndexOutOfRange = errors.New("trit: index out of range")

	// ErrEmptyVector indicates an operation that requires a non-empty
	// vector (nnz > 0) was given an all-zero one.
	ErrEmptyVector = errors.New("trit: vector is empty")
)

// tritErrorf wraps err with the operation name, following the op-prefixed
// wrapping convention used throughout this module's packages.
func tritErrorf(op string, err error) error {
	return fmt.Errorf("trit.%s: %w", op, err)
}

// Vector is the capability interface every ternary vector representation
// satisfies, per the arena-plus-id design note: callers operate on Vector,
// never on a concrete representation, so Hybrid can swap representations
// underneath without breaking callers.
type Vector interface {
	// Len returns D, the fixed dimensionality of the vector space.
	Len() int

	// NNZ returns the number of non-zero trits.
	NNZ() int

	// At returns the trit at index i, or an error if i is out of range.
	At(i int) (Trit, error)

	// ToSparse returns the canonical sparse form of this vector.
	ToSparse() SparseVector

	// ToDense returns the dense bit-plane form of this vector.
	ToDense() DenseVector
}
