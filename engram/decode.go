package engram

import (
	"os"
	"path/filepath"

	"github.com/ternholo/engram/bfs"
	"github.com/ternholo/engram/manifest"
)

// DecodeHierarchical reconstructs every file described by man under
// outputPath, using cb for the literal bytes. It rebuilds the same
// dag.Graph mirror BuildHierarchy validated and walks it with bfs.BFS
// from the synthetic root, writing out each leaf (a vertex present in
// leafPaths) as it is reached. Exact reconstruction never touches a
// vector: the codebook entries for a path already carry the literal
// bytes content-addressed by block hash, so there is nothing to invert.
func DecodeHierarchical(man *manifest.HierarchicalManifest, cb *manifest.Codebook, outputPath string) error {
	g, rootID, leafPaths, err := buildDecodeGraph(man)
	if err != nil {
		return engramErrorf("DecodeHierarchical", err)
	}

	result, err := bfs.BFS(g, rootID)
	if err != nil {
		return engramErrorf("DecodeHierarchical", err)
	}

	singleFile := len(man.Levels) > 0 && len(man.Levels[0].Items) == 1
	for _, id := range result.Order {
		path, ok := leafPaths[id]
		if !ok {
			continue
		}
		if err := writeFile(cb, path, decodeDest(outputPath, path, singleFile)); err != nil {
			return engramErrorf("DecodeHierarchical", err)
		}
	}
	return nil
}

// DecodeFlat reconstructs every file listed in man's legacy flat shape.
func DecodeFlat(man *manifest.FlatManifest, cb *manifest.Codebook, outputPath string) error {
	singleFile := len(man.Blocks) == 1
	for _, item := range man.Blocks {
		if err := writeFile(cb, item.Path, decodeDest(outputPath, item.Path, singleFile)); err != nil {
			return engramErrorf("DecodeFlat", err)
		}
	}
	return nil
}

// decodeDest resolves where one reconstructed file is written. A
// single-file encode writes directly to outputPath unless outputPath is
// an existing directory; otherwise, and for a multi-file encode,
// outputPath is treated as a directory root.
func decodeDest(outputPath, relPath string, singleFile bool) string {
	if singleFile {
		if info, err := os.Stat(outputPath); err != nil || !info.IsDir() {
			return outputPath
		}
	}
	return filepath.Join(outputPath, filepath.FromSlash(relPath))
}

// writeFile reconstructs one manifest-listed path. Zero codebook entries
// is not an error here: it is exactly what an originally empty file
// produces, since EncodeFile emits no blocks for zero-length input.
func writeFile(cb *manifest.Codebook, relPath, dest string) error {
	entries := cb.EntriesForPath(relPath)

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}

	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer f.Close()

	for _, e := range entries {
		raw := e.RawBytes
		if e.BlockLength < len(raw) {
			raw = raw[:e.BlockLength]
		}
		if _, err := f.Write(raw); err != nil {
			return err
		}
	}
	return nil
}
