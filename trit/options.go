package trit

// DefaultDensityThreshold is the nnz/D fraction below which Hybrid keeps
// a vector in sparse form; at or above it, Hybrid converts to dense.
const DefaultDensityThreshold = 0.005

// HybridOption configures a Hybrid container.
type HybridOption func(*hybridConfig)

type hybridConfig struct {
	densityThreshold float64
}

func defaultHybridConfig() hybridConfig {
	return hybridConfig{densityThreshold: DefaultDensityThreshold}
}

// WithDensityThreshold overrides the sparse/dense switchover point.
func WithDensityThreshold(t float64) HybridOption {
	return func(c *hybridConfig) { c.densityThreshold = t }
}

// Hybrid wraps a vector and picks its on-the-wire representation based on
// measured density, per the representation-selection policy: sparse
// below the configured threshold, dense bit-plane otherwise. Conversions
// are value-preserving, so every algebraic operation here delegates
// to the same Bind/Bundle/Permute/Dot/Cosine functions regardless of
// which representation is currently held.
type Hybrid struct {
	cfg   hybridConfig
	dense bool
	s     SparseVector
	d     DenseVector
}

// NewHybrid wraps v, choosing its representation from v's current
// density under the given options.
func NewHybrid(v Vector, opts ...HybridOption) Hybrid {
	cfg := defaultHybridConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	h := Hybrid{cfg: cfg}
	h.adopt(v)
	return h
}

func (h *Hybrid) adopt(v Vector) {
	density := float64(v.NNZ()) / float64(maxInt(v.Len(), 1))
	if density < h.cfg.densityThreshold {
		h.dense = false
		h.s = v.ToSparse()
	} else {
		h.dense = true
		h.d = v.ToDense()
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func (h Hybrid) Len() int {
	if h.dense {
		return h.d.Len()
	}
	return h.s.Len()
}

func (h Hybrid) NNZ() int {
	if h.dense {
		return h.d.NNZ()
	}
	return h.s.NNZ()
}

func (h Hybrid) At(i int) (Trit, error) {
	if h.dense {
		return h.d.At(i)
	}
	return h.s.At(i)
}

func (h Hybrid) ToSparse() SparseVector {
	if h.dense {
		return h.d.ToSparse()
	}
	return h.s
}

func (h Hybrid) ToDense() DenseVector {
	if h.dense {
		return h.d
	}
	return h.s.ToDense()
}

var _ Vector = Hybrid{}
