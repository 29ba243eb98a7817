package manifest

import (
	"errors"
	"fmt"

	"github.com/ternholo/engram/trit"
)

// Sentinel errors for manifest and codebook operations.
var (
	// ErrUnknownVersion indicates a manifest version this reader does
	// not understand.
	ErrUnknownVersion = errors.New("manifest: unknown version")

	// ErrMissingEntry indicates a codebook lookup by fingerprint or
	// block id found no entry.
	ErrMissingEntry = errors.New("manifest: codebook entry not found")

	// ErrLockPoisoned is surfaced on write paths when the codebook's
	// guard has recorded a prior panic; read paths recover instead, and
	// Codebook.Lookup logs a warning when it does (see codebook.go).
	ErrLockPoisoned = errors.New("manifest: lock poisoned")

	// ErrUnknownTag indicates a UnifiedManifest on-disk record carried
	// neither a "flat" nor a "hierarchical" tag.
	ErrUnknownTag = errors.New("manifest: unknown manifest tag")
)

func manifestErrorf(op string, err error) error {
	return fmt.Errorf("manifest.%s: %w", op, err)
}

// CurrentVersion is the version written by this implementation's
// Hierarchical manifests.
const CurrentVersion = 1

// SubEngram is one node of the hierarchy: a bundled vector, the number
// of leaf chunks it ultimately represents, and the ids of its direct
// children (nil for level-0 leaves, which instead carry a Path).
type SubEngram struct {
	ID         string            `json:"id"`
	Root       trit.SparseVector `json:"root"`
	ChunkCount int               `json:"chunk_count"`
	ChildIDs   []string          `json:"child_ids,omitempty"`
}

// ManifestItem pairs a path with the id of the sub-engram it maps to.
// At level 0, Path is the literal file path; at higher levels, Path is
// empty (the sub-engram instead fans out via ChildIDs).
type ManifestItem struct {
	Path        string `json:"path,omitempty"`
	SubEngramID string `json:"sub_engram_id"`
}

// ManifestLevel is one layer of the hierarchy, level 0 being the file
// leaves.
type ManifestLevel struct {
	LevelIndex int            `json:"level_index"`
	Items      []ManifestItem `json:"items"`
}

// HierarchicalManifest is the full hierarchy: every level from leaves to
// the single top-level group, plus every SubEngram by id.
type HierarchicalManifest struct {
	Version    int                  `json:"version"`
	Levels     []ManifestLevel      `json:"levels"`
	SubEngrams map[string]SubEngram `json:"sub_engrams"`
}

// FlatManifest is the legacy shape: a flat list of blocks directly under
// the root, with no intermediate hierarchy. engram.Encode writes this
// shape for an input of at most Limits.MaxChunksPerSub files and the
// hierarchical shape only for larger inputs; UnifiedManifest reads both.
type FlatManifest struct {
	Version int              `json:"version"`
	Root    trit.SparseVector `json:"root"`
	Blocks  []ManifestItem   `json:"blocks"`
}

// UnifiedManifest is the tagged choice between a fresh Hierarchical
// manifest and a legacy Flat one. Exactly one of Hierarchical or Flat is
// non-nil.
type UnifiedManifest struct {
	Hierarchical *HierarchicalManifest `json:"hierarchical,omitempty"`
	Flat         *FlatManifest         `json:"flat,omitempty"`
}

// IsHierarchical reports whether this manifest carries the fresh shape.
func (u UnifiedManifest) IsHierarchical() bool { return u.Hierarchical != nil }
