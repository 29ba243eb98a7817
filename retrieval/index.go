package retrieval

import (
	"sort"
	"sync"

	"github.com/bits-and-blooms/bitset"

	"github.com/ternholo/engram/trit"
)

// Index is the inverted posting-list index: for each trit position, the
// sorted ids of vectors that are +1 there and the sorted ids of vectors
// that are -1 there. A single RWMutex guards it, following the
// readers-writers discipline dag.Graph uses for its own shared state:
// Add is the only writer, Query and Len are readers.
type Index struct {
	mu  sync.RWMutex
	dim int

	ids     []string // insertion order; position is the internal candidate index
	idIndex map[string]int
	nnz     []int

	pos map[int32][]int32 // trit index -> sorted candidate indices (+1 there)
	neg map[int32][]int32 // trit index -> sorted candidate indices (-1 there)

	poisoned bool
}

// NewIndex creates an empty Index over vectors of the given dimension.
func NewIndex(dim int) *Index {
	return &Index{
		dim:     dim,
		idIndex: make(map[string]int),
		pos:     make(map[int32][]int32),
		neg:     make(map[int32][]int32),
	}
}

// Add inserts v under id. Re-adding an existing id is a no-op that
// returns nil and keeps the first vector; posting lists are never
// mutated in place for an existing entry, so replacing one means
// building a fresh Index.
func (idx *Index) Add(id string, v trit.SparseVector) (err error) {
	defer func() {
		if r := recover(); r != nil {
			idx.mu.Lock()
			idx.poisoned = true
			idx.mu.Unlock()
			err = retrievalErrorf("Add", ErrLockPoisoned)
		}
	}()
	if v.Dim != idx.dim {
		return retrievalErrorf("Add", ErrDimensionMismatch)
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()
	if idx.poisoned {
		return retrievalErrorf("Add", ErrLockPoisoned)
	}
	if _, exists := idx.idIndex[id]; exists {
		return nil
	}

	cid := int32(len(idx.ids))
	idx.ids = append(idx.ids, id)
	idx.idIndex[id] = int(cid)
	idx.nnz = append(idx.nnz, v.NNZ())

	for _, i := range v.Pos {
		idx.pos[i] = insertSorted(idx.pos[i], cid)
	}
	for _, i := range v.Neg {
		idx.neg[i] = insertSorted(idx.neg[i], cid)
	}
	return nil
}

func insertSorted(s []int32, v int32) []int32 {
	i := sort.Search(len(s), func(i int) bool { return s[i] >= v })
	s = append(s, 0)
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

// Len returns the number of indexed vectors.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.ids)
}

// candidateScores computes the raw (unnormalized) integer dot-product
// score between q and every candidate it shares a non-zero position
// with. A bitset tracks which candidate indices have been touched so
// the caller can iterate only the candidates that matched, not every
// indexed vector.
func (idx *Index) candidateScores(q trit.SparseVector) ([]int32, map[int32]int) {
	touched := bitset.New(uint(len(idx.ids)))
	scores := make(map[int32]int)

	add := func(cid int32, delta int) {
		scores[cid] += delta
		touched.Set(uint(cid))
	}

	for _, i := range q.Pos {
		for _, cid := range idx.pos[i] {
			add(cid, 1)
		}
		for _, cid := range idx.neg[i] {
			add(cid, -1)
		}
	}
	for _, i := range q.Neg {
		for _, cid := range idx.pos[i] {
			add(cid, -1)
		}
		for _, cid := range idx.neg[i] {
			add(cid, 1)
		}
	}

	candidates := make([]int32, 0, touched.Count())
	for i, e := touched.NextSet(0); e; i, e = touched.NextSet(i + 1) {
		candidates = append(candidates, int32(i))
	}
	return candidates, scores
}
