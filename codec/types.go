package codec

import (
	"errors"
	"fmt"
)

// Sentinel errors for the block codec.
var (
	// ErrBlockTooLarge indicates a block exceeded Config.BlockBytes.
	ErrBlockTooLarge = errors.New("codec: block exceeds configured block size")

	// ErrCorrupt indicates a vector fingerprint did not match any
	// codebook entry.
	ErrCorrupt = errors.New("codec: corrupt codebook entry")

	// ErrTruncated indicates expected_length exceeded the stored raw
	// bytes of the matched codebook entry.
	ErrTruncated = errors.New("codec: truncated block")

	// ErrInvalidConfig indicates a non-positive Dim, BlockBytes, or K.
	ErrInvalidConfig = errors.New("codec: invalid configuration")
)

func codecErrorf(op string, err error) error {
	return fmt.Errorf("codec.%s: %w", op, err)
}

// CodebookEntry records one block's literal bytes and the metadata
// needed to place it back into its file and to verify it against a
// vector during decode.
type CodebookEntry struct {
	BlockID     [32]byte
	RawBytes    []byte
	Fingerprint [32]byte
	BlockLength int
	FilePath    string
	BlockIndex  int
}

// Config holds the resolved block-codec parameters. Use NewConfig with
// Options to build one; the zero value is not valid.
type Config struct {
	Dim                int
	BlockBytes         int
	ActiveTritsPerByte int
	Shift              int
}

// Option configures a Config.
type Option func(*Config)

// WithDim overrides D.
func WithDim(d int) Option { return func(c *Config) { c.Dim = d } }

// WithBlockBytes overrides B.
func WithBlockBytes(b int) Option { return func(c *Config) { c.BlockBytes = b } }

// WithActiveTritsPerByte overrides K.
func WithActiveTritsPerByte(k int) Option { return func(c *Config) { c.ActiveTritsPerByte = k } }

// WithShift overrides the per-block stride.
func WithShift(s int) Option { return func(c *Config) { c.Shift = s } }

// NewConfig resolves a Config from defaults plus the given options,
// validating the result.
func NewConfig(opts ...Option) (Config, error) {
	cfg := Config{
		Dim:                DefaultDim,
		BlockBytes:         DefaultBlockBytes,
		ActiveTritsPerByte: DefaultActiveTritsPerByte,
		Shift:              DefaultShift,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Dim <= 0 || cfg.BlockBytes <= 0 || cfg.ActiveTritsPerByte <= 0 {
		return Config{}, codecErrorf("NewConfig", ErrInvalidConfig)
	}
	return cfg, nil
}
