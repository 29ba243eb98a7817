package engram

import (
	"context"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/ternholo/engram/chunker"
	"github.com/ternholo/engram/manifest"
	"github.com/ternholo/engram/retrieval"
	"github.com/ternholo/engram/trit"
)

// Encode reads every regular file under inputPath, encodes each into a
// ternary vector and a set of codebook entries, then folds the file
// vectors into a hierarchy (or, below the fan-out limit, a flat
// manifest) and returns its root vector alongside the manifest and the
// codebook needed to decode it. Files are read and block-encoded
// concurrently; ctx is checked between files.
func Encode(ctx context.Context, inputPath string, cfg Config) (trit.SparseVector, *manifest.UnifiedManifest, *manifest.Codebook, error) {
	paths, err := discoverFiles(inputPath)
	if err != nil {
		return trit.SparseVector{}, nil, nil, engramErrorf("Encode", err)
	}
	if len(paths) == 0 {
		return trit.SparseVector{}, nil, nil, engramErrorf("Encode", ErrEmptyInput)
	}

	results := make([]chunker.FileResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	for i, relPath := range paths {
		i, relPath := i, relPath
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			f, err := os.Open(resolvePath(inputPath, relPath))
			if err != nil {
				return err
			}
			defer f.Close()
			res, err := chunker.EncodeFile(gctx, cfg.Codec, relPath, f)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return trit.SparseVector{}, nil, nil, engramErrorf("Encode", err)
	}

	cb := manifest.NewCodebook()
	for _, res := range results {
		for _, e := range res.Entries {
			if err := cb.Put(e); err != nil {
				return trit.SparseVector{}, nil, nil, engramErrorf("Encode", err)
			}
		}
	}

	if len(results) <= cfg.Limits.MaxChunksPerSub {
		root, flat := buildFlat(cfg.Codec.Dim, results)
		return root, &manifest.UnifiedManifest{Flat: flat}, cb, nil
	}

	hier, root, err := BuildHierarchy(ctx, cfg.Codec.Dim, results, cfg.Limits)
	if err != nil {
		return trit.SparseVector{}, nil, nil, engramErrorf("Encode", err)
	}
	return root, &manifest.UnifiedManifest{Hierarchical: hier}, cb, nil
}

// buildFlat bundles every file vector directly into one root, without an
// intermediate hierarchy, for input sets small enough to fit in a
// single sub-engram.
func buildFlat(dim int, results []chunker.FileResult) (trit.SparseVector, *manifest.FlatManifest) {
	acc := trit.NewAccumulator(dim)
	blocks := make([]manifest.ManifestItem, len(results))
	for i, res := range results {
		_ = acc.Add(res.Vector)
		blocks[i] = manifest.ManifestItem{Path: res.Path, SubEngramID: "file:" + res.Path}
	}
	root := acc.Finalize().ToSparse()
	return root, &manifest.FlatManifest{Version: 0, Root: root, Blocks: blocks}
}

// Decode reconstructs every file described by man under outputPath,
// using cb for the literal bytes. root is accepted to match the
// content-addressed API surface but decode correctness never depends on
// it: it is the manifest's own structure, walked via bfs.BFS for the
// hierarchical shape, that drives reconstruction.
func Decode(ctx context.Context, root trit.SparseVector, man *manifest.UnifiedManifest, cb *manifest.Codebook, outputPath string) error {
	if err := ctx.Err(); err != nil {
		return engramErrorf("Decode", err)
	}
	if man.IsHierarchical() {
		return DecodeHierarchical(man.Hierarchical, cb, outputPath)
	}
	return DecodeFlat(man.Flat, cb, outputPath)
}

// Query runs a top-k cosine search against idx.
func Query(ctx context.Context, idx *retrieval.Index, q trit.SparseVector, k int, minThreshold float64) ([]retrieval.Match, error) {
	if err := ctx.Err(); err != nil {
		return nil, engramErrorf("Query", err)
	}
	matches, err := idx.Query(q, k, minThreshold)
	if err != nil {
		return nil, engramErrorf("Query", err)
	}
	return matches, nil
}

// BuildIndex constructs a retrieval.Index over the given vectors.
func BuildIndex(ctx context.Context, vectors map[string]trit.SparseVector) (*retrieval.Index, error) {
	if err := ctx.Err(); err != nil {
		return nil, engramErrorf("BuildIndex", err)
	}
	dim := 0
	for _, v := range vectors {
		dim = v.Dim
		break
	}
	idx, err := retrieval.BuildIndex(dim, vectors)
	if err != nil {
		return nil, engramErrorf("BuildIndex", err)
	}
	return idx, nil
}
