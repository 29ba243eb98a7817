package trit

import "sort"

// SparseVector is the index-list representation: Pos and Neg hold the
// sorted, deduplicated, mutually disjoint indices of the +1 and -1 trits.
// All indices not present in either slice are Z.
type SparseVector struct {
	Dim int
	Pos []int32
	Neg []int32
}

var _ Vector = SparseVector{}

// NewSparse builds a SparseVector from unsorted pos/neg index slices,
// normalizing them into canonical form (sorted, deduplicated). It returns
// ErrInvalidSparseForm if, after dedup, pos and neg still overlap (an
// index cannot be both +1 and -1).
func NewSparse(dim int, pos, neg []int32) (SparseVector, error) {
	if dim <= 0 {
		return SparseVector{}, tritErrorf("NewSparse", ErrInvalidDimension)
	}
	p := dedupSorted(pos)
	n := dedupSorted(neg)
	if overlaps(p, n) {
		return SparseVector{}, tritErrorf("NewSparse", ErrInvalidSparseForm)
	}
	return SparseVector{Dim: dim, Pos: p, Neg: n}, nil
}

// ZeroSparse returns the all-zero vector of dimension dim.
func ZeroSparse(dim int) SparseVector {
	return SparseVector{Dim: dim}
}

func dedupSorted(in []int32) []int32 {
	if len(in) == 0 {
		return nil
	}
	cp := append([]int32(nil), in...)
	sort.Slice(cp, func(i, j int) bool { return cp[i] < cp[j] })
	out := cp[:1]
	for _, v := range cp[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

// overlaps reports whether two sorted, deduplicated slices share any
// element. O(len(a)+len(b)) merge-walk.
func overlaps(a, b []int32) bool {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			return true
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return false
}

// Validate checks the canonical sparse form explicitly: Pos and Neg are
// each sorted ascending, contain no duplicates, and are disjoint.
func (v SparseVector) Validate() error {
	if !isSortedUnique(v.Pos) || !isSortedUnique(v.Neg) {
		return tritErrorf("Validate", ErrInvalidSparseForm)
	}
	if overlaps(v.Pos, v.Neg) {
		return tritErrorf("Validate", ErrInvalidSparseForm)
	}
	return nil
}

func isSortedUnique(s []int32) bool {
	for i := 1; i < len(s); i++ {
		if s[i] <= s[i-1] {
			return false
		}
	}
	return true
}

// Len returns D.
func (v SparseVector) Len() int { return v.Dim }

func (v SparseVector) NNZ() int { return len(v.Pos) + len(v.Neg) }

func (v SparseVector) At(i int) (Trit, error) {
	if i < 0 || i >= v.Dim {
		return Z, tritErrorf("At", ErrIndexOutOfRange)
	}
	if containsSorted(v.Pos, int32(i)) {
		return P, nil
	}
	if containsSorted(v.Neg, int32(i)) {
		return N, nil
	}
	return Z, nil
}

func containsSorted(s []int32, x int32) bool {
	lo, hi := 0, len(s)
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case s[mid] == x:
			return true
		case s[mid] < x:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return false
}

func (v SparseVector) ToSparse() SparseVector { return v }

func (v SparseVector) ToDense() DenseVector {
	d := NewDense(v.Dim)
	for _, i := range v.Pos {
		d.setBit(d.PosBits, int(i))
	}
	for _, i := range v.Neg {
		d.setBit(d.NegBits, int(i))
	}
	return d
}

// Density returns nnz/D.
func (v SparseVector) Density() float64 {
	if v.Dim == 0 {
		return 0
	}
	return float64(v.NNZ()) / float64(v.Dim)
}
