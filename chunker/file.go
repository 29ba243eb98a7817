package chunker

import (
	"context"
	"io"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/ternholo/engram/codec"
	"github.com/ternholo/engram/trit"
)

// EncodeFile reads r in cfg.BlockBytes chunks, encodes each block in
// parallel via codec.Encode, and bundles the results into a single file
// vector using the carry-save N-way majority accumulator. Results are
// reordered by block index before bundling regardless of completion
// order, so the file vector is deterministic across worker counts.
//
// ctx is checked between block boundaries; a cancellation discards
// partial state and returns ctx.Err().
func EncodeFile(ctx context.Context, cfg codec.Config, path string, r io.Reader) (FileResult, error) {
	blocks, err := readBlocks(r, cfg.BlockBytes)
	if err != nil {
		return FileResult{}, chunkerErrorf("EncodeFile", err)
	}
	if len(blocks) == 0 {
		return emptyFileResult(cfg, path), nil
	}

	type outcome struct {
		idx   int
		vec   trit.SparseVector
		entry codec.CodebookEntry
	}
	outcomes := make([]outcome, len(blocks))

	g, gctx := errgroup.WithContext(ctx)
	for i, block := range blocks {
		i, block := i, block
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			vec, entry, err := codec.Encode(cfg, block, path, i)
			if err != nil {
				return err
			}
			outcomes[i] = outcome{idx: i, vec: vec, entry: entry}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return FileResult{}, chunkerErrorf("EncodeFile", err)
	}

	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].idx < outcomes[j].idx })

	shift := pathPermutationShift(path, cfg.Dim)
	acc := trit.NewAccumulator(cfg.Dim)
	entries := make([]codec.CodebookEntry, len(outcomes))
	for i, o := range outcomes {
		rotated := trit.Permute(o.vec, shift)
		if err := acc.Add(rotated); err != nil {
			return FileResult{}, chunkerErrorf("EncodeFile", err)
		}
		entries[i] = o.entry
	}

	return FileResult{Path: path, Vector: acc.Finalize(), Entries: entries}, nil
}

func readBlocks(r io.Reader, blockBytes int) ([][]byte, error) {
	var blocks [][]byte
	buf := make([]byte, blockBytes)
	for {
		n, err := io.ReadFull(r, buf)
		if n > 0 {
			block := make([]byte, n)
			copy(block, buf[:n])
			blocks = append(blocks, block)
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if n < blockBytes {
			break
		}
	}
	return blocks, nil
}

func emptyFileResult(cfg codec.Config, path string) FileResult {
	return FileResult{Path: path, Vector: trit.NewDense(cfg.Dim)}
}
