package engram_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ternholo/engram/chunker"
	"github.com/ternholo/engram/codec"
	"github.com/ternholo/engram/engram"
	"github.com/ternholo/engram/trit"
)

func fileResult(t *testing.T, dim int, path string, active []int32) chunker.FileResult {
	t.Helper()
	v, err := trit.NewSparse(dim, active, nil)
	require.NoError(t, err)
	return chunker.FileResult{
		Path:   path,
		Vector: v.ToDense(),
		Entries: []codec.CodebookEntry{
			{BlockID: [32]byte{byte(len(path))}, FilePath: path, BlockIndex: 0, RawBytes: []byte(path), BlockLength: len(path)},
		},
	}
}

func TestBuildHierarchy_RejectsEmptyInput(t *testing.T) {
	_, _, err := engram.BuildHierarchy(context.Background(), 1000, nil, engram.DefaultLimits())
	require.ErrorIs(t, err, engram.ErrEmptyInput)
}

func TestBuildHierarchy_SingleFileIsItsOwnRoot(t *testing.T) {
	dim := 1000
	files := []chunker.FileResult{fileResult(t, dim, "only.txt", []int32{1, 2, 3})}

	man, root, err := engram.BuildHierarchy(context.Background(), dim, files, engram.DefaultLimits())
	require.NoError(t, err)
	require.Len(t, man.Levels, 1)
	require.Equal(t, files[0].Vector.ToSparse(), root)
}

func TestBuildHierarchy_GroupsRespectFanOutLimit(t *testing.T) {
	dim := 2000
	limits := engram.Limits{MaxChunksPerSub: 2, MaxSubEngramsPerLevel: 1000, MaxDepth: 30}

	files := make([]chunker.FileResult, 5)
	for i := range files {
		files[i] = fileResult(t, dim, string(rune('a'+i))+".txt", []int32{int32(i)})
	}

	man, root, err := engram.BuildHierarchy(context.Background(), dim, files, limits)
	require.NoError(t, err)
	require.Greater(t, len(man.Levels), 1, "5 files with fan-out 2 must need more than one level")
	require.NotZero(t, root.NNZ())

	for _, level := range man.Levels[1:] {
		for _, item := range level.Items {
			sub := man.SubEngrams[item.SubEngramID]
			require.LessOrEqual(t, len(sub.ChildIDs), limits.MaxChunksPerSub)
		}
	}
}

func TestBuildHierarchy_RejectsExcessiveDepth(t *testing.T) {
	dim := 1000
	limits := engram.Limits{MaxChunksPerSub: 2, MaxSubEngramsPerLevel: 1000, MaxDepth: 1}

	files := make([]chunker.FileResult, 5)
	for i := range files {
		files[i] = fileResult(t, dim, string(rune('a'+i))+".txt", []int32{int32(i)})
	}

	_, _, err := engram.BuildHierarchy(context.Background(), dim, files, limits)
	require.ErrorIs(t, err, engram.ErrHierarchyTooDeep)
}

func TestBuildHierarchy_RespectsContextCancellation(t *testing.T) {
	dim := 2000
	limits := engram.Limits{MaxChunksPerSub: 2, MaxSubEngramsPerLevel: 1000, MaxDepth: 30}

	files := make([]chunker.FileResult, 5)
	for i := range files {
		files[i] = fileResult(t, dim, string(rune('a'+i))+".txt", []int32{int32(i)})
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := engram.BuildHierarchy(ctx, dim, files, limits)
	require.Error(t, err, "folding must abort between levels once ctx is canceled")
}
