package chunker

import (
	"errors"
	"fmt"

	"github.com/ternholo/engram/codec"
	"github.com/ternholo/engram/trit"
)

// Sentinel errors for the chunker.
var (
	// ErrEmptyResult is a sentinel for "no blocks produced". EncodeFile does
	// not return it: zero-length input yields a result with a zero vector,
	// no entries and a nil error.
	ErrEmptyResult = errors.New("chunker: no blocks produced")
)

func chunkerErrorf(op string, err error) error {
	return fmt.Errorf("chunker.%s: %w", op, err)
}

// FileResult is the output of encoding one file: its bundled vector plus
// every block-level codebook entry, in block_index order.
type FileResult struct {
	Path    string
	Vector  trit.DenseVector
	Entries []codec.CodebookEntry
}
