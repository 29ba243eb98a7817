package retrieval

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/ternholo/engram/trit"
)

// Query returns the top-k matches for q by exact cosine similarity:
// accumulate a raw dot-product score per candidate from the posting
// lists q's own support touches, normalize by
// sqrt(nnz(q) * nnz(candidate)), then take the top k. Ties are broken
// by lower vector id. Results below minThreshold are dropped.
func (idx *Index) Query(q trit.SparseVector, k int, minThreshold float64) ([]Match, error) {
	if q.Dim != idx.dim {
		return nil, retrievalErrorf("Query", ErrDimensionMismatch)
	}
	if k <= 0 {
		return nil, nil
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	qNNZ := len(q.Pos) + len(q.Neg)
	if qNNZ == 0 || len(idx.ids) == 0 {
		return nil, nil
	}

	candidates, raw := idx.candidateScores(q)
	if len(candidates) == 0 {
		return nil, nil
	}

	cosines := make([]float64, len(candidates))
	for i, cid := range candidates {
		cosines[i] = float64(raw[cid])
	}
	norms := make([]float64, len(candidates))
	sqrtQ := math.Sqrt(float64(qNNZ))
	for i, cid := range candidates {
		cNNZ := idx.nnz[cid]
		if cNNZ == 0 {
			norms[i] = 1
			continue
		}
		norms[i] = sqrtQ * math.Sqrt(float64(cNNZ))
	}
	floats.Div(cosines, norms)

	type scored struct {
		id     string
		cosine float64
	}
	all := make([]scored, 0, len(candidates))
	for i, cid := range candidates {
		c := cosines[i]
		if c < minThreshold {
			continue
		}
		all = append(all, scored{id: idx.ids[cid], cosine: c})
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].cosine != all[j].cosine {
			return all[i].cosine > all[j].cosine
		}
		return all[i].id < all[j].id
	})
	if len(all) > k {
		all = all[:k]
	}

	out := make([]Match, len(all))
	for i, s := range all {
		out[i] = Match{ID: s.id, Cosine: s.cosine}
	}
	return out, nil
}

// BuildIndex constructs an Index from a map of id to vector. Vectors
// are added in an order derived from sorted ids, so the result does
// not depend on map iteration order.
func BuildIndex(dim int, vectors map[string]trit.SparseVector) (*Index, error) {
	ids := make([]string, 0, len(vectors))
	for id := range vectors {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	idx := NewIndex(dim)
	for _, id := range ids {
		if err := idx.Add(id, vectors[id]); err != nil {
			return nil, retrievalErrorf("BuildIndex", err)
		}
	}
	return idx, nil
}
