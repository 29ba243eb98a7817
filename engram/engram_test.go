package engram_test

import (
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ternholo/engram/codec"
	"github.com/ternholo/engram/engram"
	"github.com/ternholo/engram/trit"
)

func writeTempFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func testConfig(t *testing.T, blockBytes int, maxChunksPerSub int) engram.Config {
	t.Helper()
	cfg, err := engram.NewConfig(
		engram.WithCodecOptions(codec.WithDim(4000), codec.WithBlockBytes(blockBytes)),
		engram.WithLimits(engram.Limits{MaxChunksPerSub: maxChunksPerSub, MaxSubEngramsPerLevel: 1000, MaxDepth: 30}),
	)
	require.NoError(t, err)
	return cfg
}

func TestEncodeDecode_SingleFileRoundTrip(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := t.TempDir()
	content := []byte("Hello, World!")
	writeTempFile(t, srcDir, "greeting.txt", content)

	cfg := testConfig(t, 4096, 100)
	ctx := context.Background()

	root, man, cb, err := engram.Encode(ctx, filepath.Join(srcDir, "greeting.txt"), cfg)
	require.NoError(t, err)
	require.False(t, man.IsHierarchical())

	outPath := filepath.Join(dstDir, "greeting.txt")
	require.NoError(t, engram.Decode(ctx, root, man, cb, outPath))

	got, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.Equal(t, content, got)

	cosine, err := trit.Cosine(root, root)
	require.NoError(t, err)
	require.InDelta(t, 1.0, cosine, 1e-9)
}

func TestEncodeDecode_DirectoryRoundTrip(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := t.TempDir()
	writeTempFile(t, srcDir, "a.txt", []byte("first file contents"))
	writeTempFile(t, srcDir, "nested/b.txt", []byte("second file, nested"))

	cfg := testConfig(t, 4096, 100)
	ctx := context.Background()

	root, man, cb, err := engram.Encode(ctx, srcDir, cfg)
	require.NoError(t, err)
	require.False(t, man.IsHierarchical())
	require.NotZero(t, root.NNZ())

	require.NoError(t, engram.Decode(ctx, root, man, cb, dstDir))

	gotA, err := os.ReadFile(filepath.Join(dstDir, "a.txt"))
	require.NoError(t, err)
	require.Equal(t, []byte("first file contents"), gotA)

	gotB, err := os.ReadFile(filepath.Join(dstDir, "nested", "b.txt"))
	require.NoError(t, err)
	require.Equal(t, []byte("second file, nested"), gotB)
}

func TestEncodeDecode_DuplicateBlocksDedupeInCodebook(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := t.TempDir()
	shared := make([]byte, 64)
	for i := range shared {
		shared[i] = byte(i)
	}
	writeTempFile(t, srcDir, "one.bin", shared)
	writeTempFile(t, srcDir, "two.bin", shared)

	cfg := testConfig(t, 64, 100)
	ctx := context.Background()

	root, man, cb, err := engram.Encode(ctx, srcDir, cfg)
	require.NoError(t, err)
	require.Equal(t, 1, cb.Len(), "identical single-block files must dedupe to one codebook entry")

	require.NoError(t, engram.Decode(ctx, root, man, cb, dstDir))
	gotOne, err := os.ReadFile(filepath.Join(dstDir, "one.bin"))
	require.NoError(t, err)
	gotTwo, err := os.ReadFile(filepath.Join(dstDir, "two.bin"))
	require.NoError(t, err)
	require.Equal(t, shared, gotOne)
	require.Equal(t, shared, gotTwo)
}

func TestEncodeDecode_ForcesHierarchyAboveFanOut(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := t.TempDir()
	for i := 0; i < 10; i++ {
		writeTempFile(t, srcDir, filepath.Join("files", string(rune('a'+i))+".txt"), []byte{byte(i)})
	}

	cfg := testConfig(t, 4096, 3)
	ctx := context.Background()

	root, man, cb, err := engram.Encode(ctx, srcDir, cfg)
	require.NoError(t, err)
	require.True(t, man.IsHierarchical())
	require.Greater(t, len(man.Hierarchical.Levels), 1)
	require.NotZero(t, root.NNZ())

	require.NoError(t, engram.Decode(ctx, root, man, cb, dstDir))
	for i := 0; i < 10; i++ {
		got, err := os.ReadFile(filepath.Join(dstDir, "files", string(rune('a'+i))+".txt"))
		require.NoError(t, err)
		require.Equal(t, []byte{byte(i)}, got)
	}
}

func TestEncodeDecode_RandomBinaryRoundTrip(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := t.TempDir()
	rng := rand.New(rand.NewSource(42))
	content := make([]byte, 200*1024)
	rng.Read(content)
	writeTempFile(t, srcDir, "blob.bin", content)

	cfg := testConfig(t, 4096, 100)
	ctx := context.Background()

	root, man, cb, err := engram.Encode(ctx, filepath.Join(srcDir, "blob.bin"), cfg)
	require.NoError(t, err)

	outPath := filepath.Join(dstDir, "blob.bin")
	require.NoError(t, engram.Decode(ctx, root, man, cb, outPath))

	got, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.Equal(t, content, got)
}

func TestEncode_RejectsEmptyDirectory(t *testing.T) {
	srcDir := t.TempDir()
	cfg := testConfig(t, 4096, 100)

	_, _, _, err := engram.Encode(context.Background(), srcDir, cfg)
	require.ErrorIs(t, err, engram.ErrEmptyInput)
}

func TestEncode_RespectsContextCancellation(t *testing.T) {
	srcDir := t.TempDir()
	writeTempFile(t, srcDir, "a.txt", []byte("some content"))
	cfg := testConfig(t, 4096, 100)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, _, err := engram.Encode(ctx, srcDir, cfg)
	require.Error(t, err)
}
