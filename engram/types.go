package engram

import (
	"errors"
	"fmt"

	"github.com/ternholo/engram/codec"
)

// Sentinel errors for hierarchy construction and decode.
var (
	// ErrEmptyInput indicates an encode was given an input path with no
	// regular files under it.
	ErrEmptyInput = errors.New("engram: no files to encode")

	// ErrHierarchyTooDeep indicates folding sub-engrams bottom-up did
	// not converge to a single root within Limits.MaxDepth levels, or that
	// a level needed more than Limits.MaxSubEngramsPerLevel sub-engrams.
	ErrHierarchyTooDeep = errors.New("engram: hierarchy exceeds maximum depth")

	// ErrCyclicHierarchy indicates the dag.Graph mirroring a manifest's
	// parent/child structure contains a cycle; a well-formed hierarchy
	// never does, so this signals a corrupt or hand-edited manifest.
	ErrCyclicHierarchy = errors.New("engram: hierarchy graph is cyclic")

	// ErrPathNotFound indicates a decode request or hierarchy traversal
	// referenced a path absent from the manifest/codebook.
	ErrPathNotFound = errors.New("engram: path not found in manifest")
)

func engramErrorf(op string, err error) error {
	return fmt.Errorf("engram.%s: %w", op, err)
}

// Limits bounds the fan-out of the hierarchy: at most MaxChunksPerSub
// children fold into one sub-engram, at most MaxSubEngramsPerLevel
// sub-engrams exist at any one level, and the hierarchy never grows
// past MaxDepth levels.
type Limits struct {
	MaxChunksPerSub       int
	MaxSubEngramsPerLevel int
	MaxDepth              int
}

// DefaultLimits returns the fan-out limits used when a Config is built
// without an explicit WithLimits option.
func DefaultLimits() Limits {
	return Limits{
		MaxChunksPerSub:       1000,
		MaxSubEngramsPerLevel: 1000,
		MaxDepth:              30,
	}
}

// Config resolves every tunable of an encode/decode run: the block
// codec parameters and the hierarchy fan-out limits.
type Config struct {
	Codec  codec.Config
	Limits Limits
}

// Option configures a Config.
type Option func(*Config)

// WithCodecOptions applies block-codec options to the resolved Config.
func WithCodecOptions(opts ...codec.Option) Option {
	return func(c *Config) {
		for _, opt := range opts {
			opt(&c.Codec)
		}
	}
}

// WithLimits overrides the hierarchy fan-out limits.
func WithLimits(l Limits) Option {
	return func(c *Config) { c.Limits = l }
}

// NewConfig resolves a Config from defaults plus the given options.
func NewConfig(opts ...Option) (Config, error) {
	codecCfg, err := codec.NewConfig()
	if err != nil {
		return Config{}, engramErrorf("NewConfig", err)
	}
	cfg := Config{Codec: codecCfg, Limits: DefaultLimits()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Codec.Dim <= 0 || cfg.Codec.BlockBytes <= 0 || cfg.Codec.ActiveTritsPerByte <= 0 {
		return Config{}, engramErrorf("NewConfig", codec.ErrInvalidConfig)
	}
	return cfg, nil
}
