package engram

import (
	"context"
	"fmt"

	"github.com/ternholo/engram/chunker"
	"github.com/ternholo/engram/dag"
	"github.com/ternholo/engram/dfs"
	"github.com/ternholo/engram/manifest"
	"github.com/ternholo/engram/trit"
)

// BuildHierarchy folds per-file vectors bottom-up into a hierarchy that
// respects limits. Level 0 holds one SubEngram per file; each
// subsequent level groups up to limits.MaxChunksPerSub items from the
// level below into a new SubEngram whose Root is their N-way majority
// bundle, stopping once a single item remains. The resulting hierarchy
// is mirrored as a dag.Graph and checked for cycles with dfs.DetectCycles
// before being accepted, the same validation a hand-built DAG would get.
// ctx is checked once per level, so a deep fold over a very large input
// can be aborted between levels the same way Encode's per-file phase is
// aborted between files.
func BuildHierarchy(ctx context.Context, dim int, files []chunker.FileResult, limits Limits) (*manifest.HierarchicalManifest, trit.SparseVector, error) {
	if len(files) == 0 {
		return nil, trit.SparseVector{}, engramErrorf("BuildHierarchy", ErrEmptyInput)
	}

	subEngrams := make(map[string]manifest.SubEngram, len(files))
	level0 := make([]manifest.ManifestItem, 0, len(files))
	currentIDs := make([]string, 0, len(files))

	for _, f := range files {
		id := "file:" + f.Path
		subEngrams[id] = manifest.SubEngram{
			ID:         id,
			Root:       f.Vector.ToSparse(),
			ChunkCount: len(f.Entries),
		}
		level0 = append(level0, manifest.ManifestItem{Path: f.Path, SubEngramID: id})
		currentIDs = append(currentIDs, id)
	}

	levels := []manifest.ManifestLevel{{LevelIndex: 0, Items: level0}}

	levelIndex := 0
	for len(currentIDs) > 1 {
		if err := ctx.Err(); err != nil {
			return nil, trit.SparseVector{}, engramErrorf("BuildHierarchy", err)
		}
		levelIndex++
		if levelIndex > limits.MaxDepth {
			return nil, trit.SparseVector{}, engramErrorf("BuildHierarchy", ErrHierarchyTooDeep)
		}

		groups := partition(currentIDs, limits.MaxChunksPerSub)
		if len(groups) > limits.MaxSubEngramsPerLevel {
			return nil, trit.SparseVector{}, engramErrorf("BuildHierarchy",
				fmt.Errorf("%w: level %d needs %d sub-engrams, limit is %d", ErrHierarchyTooDeep, levelIndex, len(groups), limits.MaxSubEngramsPerLevel))
		}

		nextIDs := make([]string, 0, len(groups))
		items := make([]manifest.ManifestItem, 0, len(groups))
		for gi, group := range groups {
			acc := trit.NewAccumulator(dim)
			chunkCount := 0
			for _, childID := range group {
				child := subEngrams[childID]
				if err := acc.Add(child.Root); err != nil {
					return nil, trit.SparseVector{}, engramErrorf("BuildHierarchy", err)
				}
				chunkCount += child.ChunkCount
			}
			id := fmt.Sprintf("sub:%d:%d", levelIndex, gi)
			subEngrams[id] = manifest.SubEngram{
				ID:         id,
				Root:       acc.Finalize().ToSparse(),
				ChunkCount: chunkCount,
				ChildIDs:   append([]string(nil), group...),
			}
			items = append(items, manifest.ManifestItem{SubEngramID: id})
			nextIDs = append(nextIDs, id)
		}

		levels = append(levels, manifest.ManifestLevel{LevelIndex: levelIndex, Items: items})
		currentIDs = nextIDs
	}

	man := &manifest.HierarchicalManifest{
		Version:    manifest.CurrentVersion,
		Levels:     levels,
		SubEngrams: subEngrams,
	}

	g, _, _, err := buildDecodeGraph(man)
	if err != nil {
		return nil, trit.SparseVector{}, engramErrorf("BuildHierarchy", err)
	}
	if cyclic, _, err := dfs.DetectCycles(g); err != nil {
		return nil, trit.SparseVector{}, engramErrorf("BuildHierarchy", err)
	} else if cyclic {
		return nil, trit.SparseVector{}, engramErrorf("BuildHierarchy", ErrCyclicHierarchy)
	}

	root := subEngrams[currentIDs[0]].Root
	return man, root, nil
}

// partition splits ids into contiguous groups of at most size elements.
func partition(ids []string, size int) [][]string {
	if size <= 0 {
		size = len(ids)
	}
	var groups [][]string
	for i := 0; i < len(ids); i += size {
		end := i + size
		if end > len(ids) {
			end = len(ids)
		}
		groups = append(groups, ids[i:end])
	}
	return groups
}

// dagVertex is the synthetic id for the root of the decode graph, not a
// real SubEngram.
const dagVertex = "__root__"

// buildDecodeGraph mirrors man as a dag.Graph: one vertex per SubEngram
// plus a synthetic root, with edges parent->child from ChildIDs and an
// edge from root to every top-level SubEngram (the items of the last
// level). leafPaths maps a level-0 SubEngram id back to its file path.
func buildDecodeGraph(man *manifest.HierarchicalManifest) (g *dag.Graph, rootID string, leafPaths map[string]string, err error) {
	// A sub-engram fold never needs a weighted edge, a parallel edge between
	// the same two sub-engrams, a self-referencing fold, or a per-edge
	// directedness override: every edge here is exactly one parent-to-child
	// pointer in a tree-shaped fold, so the plain directed constructor is
	// enough. Mixed-mode (dag.NewMixedGraph) stays unused by this package.
	g = dag.NewGraph(dag.WithDirected(true))
	if err := g.AddVertex(dagVertex); err != nil {
		return nil, "", nil, err
	}

	for id := range man.SubEngrams {
		if err := g.AddVertex(id); err != nil {
			return nil, "", nil, err
		}
	}
	for _, sub := range man.SubEngrams {
		for _, child := range sub.ChildIDs {
			if _, err := g.AddEdge(sub.ID, child, 0); err != nil {
				return nil, "", nil, err
			}
		}
	}

	leafPaths = make(map[string]string)
	if len(man.Levels) > 0 {
		for _, item := range man.Levels[0].Items {
			leafPaths[item.SubEngramID] = item.Path
		}
		top := man.Levels[len(man.Levels)-1]
		for _, item := range top.Items {
			if _, err := g.AddEdge(dagVertex, item.SubEngramID, 0); err != nil {
				return nil, "", nil, err
			}
		}
	}

	return g, dagVertex, leafPaths, nil
}
