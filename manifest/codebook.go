package manifest

import (
	"log"
	"sort"
	"sync"

	"github.com/ternholo/engram/codec"
)

// occurrence is one (file_path, block_index) reference to a BlockID's
// shared content. A block that recurs verbatim across files or within
// one file keeps a separate occurrence per appearance even though its
// content entry is stored once.
type occurrence struct {
	filePath   string
	blockIndex int
}

// Codebook is the in-memory, append-only-during-encode side table keyed
// by block content hash. It is read-only once encode finishes. Readers
// and writers are guarded by the same readers-writers discipline
// dag.Graph uses: a single RWMutex here because, unlike dag.Graph, a
// codebook has only one kind of shared state (the entry map) rather
// than separate vertex/edge concerns.
type Codebook struct {
	mu          sync.RWMutex
	entries     map[[32]byte]codec.CodebookEntry // keyed by BlockID, content only
	byFP        map[[32]byte][32]byte            // fingerprint -> BlockID
	occurrences map[[32]byte][]occurrence        // BlockID -> every (path, index) it was Put under
	poisoned    bool
}

// NewCodebook returns an empty Codebook.
func NewCodebook() *Codebook {
	return &Codebook{
		entries:     make(map[[32]byte]codec.CodebookEntry),
		byFP:        make(map[[32]byte][32]byte),
		occurrences: make(map[[32]byte][]occurrence),
	}
}

// Put inserts entry, deduplicating its raw bytes by BlockID: a block
// already present keeps its first-seen content (it's byte-identical by
// construction since BlockID is a content hash). entry.FilePath and
// entry.BlockIndex are never discarded on a dedup hit — each call
// records its own occurrence, so a block shared across files or
// repeated within one file decodes at every place it appears, not just
// the first. Put is a write-side operation: a poisoned guard is
// surfaced rather than silently recovered.
func (c *Codebook) Put(entry codec.CodebookEntry) (err error) {
	defer func() {
		if r := recover(); r != nil {
			c.mu.Lock()
			c.poisoned = true
			c.mu.Unlock()
			err = manifestErrorf("Codebook.Put", ErrLockPoisoned)
		}
	}()
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.poisoned {
		return manifestErrorf("Codebook.Put", ErrLockPoisoned)
	}
	if _, exists := c.entries[entry.BlockID]; !exists {
		c.entries[entry.BlockID] = entry
	}
	c.byFP[entry.Fingerprint] = entry.BlockID
	c.occurrences[entry.BlockID] = append(c.occurrences[entry.BlockID], occurrence{
		filePath:   entry.FilePath,
		blockIndex: entry.BlockIndex,
	})
	return nil
}

// Lookup returns the entry matching fingerprint. It is a read-side
// operation: on a poisoned guard it logs and recovers by treating the
// codebook as if it held only the last consistent snapshot rather than
// aborting the caller's decode.
func (c *Codebook) Lookup(fingerprint [32]byte) (codec.CodebookEntry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.poisoned {
		log.Printf("manifest: codebook lock poisoned; continuing with last consistent snapshot")
	}
	blockID, ok := c.byFP[fingerprint]
	if !ok {
		return codec.CodebookEntry{}, manifestErrorf("Codebook.Lookup", ErrMissingEntry)
	}
	entry, ok := c.entries[blockID]
	if !ok {
		return codec.CodebookEntry{}, manifestErrorf("Codebook.Lookup", ErrMissingEntry)
	}
	return entry, nil
}

// Len returns the number of distinct blocks stored.
func (c *Codebook) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// All returns one entry per occurrence recorded across every path, in
// no particular order: a block shared by two files yields two entries
// here, each with its own FilePath/BlockIndex and the same RawBytes.
// Intended for bulk persistence (BoltStore.SaveAll), which must carry
// every occurrence forward, not just the first one seen per BlockID.
func (c *Codebook) All() []codec.CodebookEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []codec.CodebookEntry
	for blockID, occs := range c.occurrences {
		content, ok := c.entries[blockID]
		if !ok {
			continue
		}
		for _, occ := range occs {
			entry := content
			entry.FilePath = occ.filePath
			entry.BlockIndex = occ.blockIndex
			out = append(out, entry)
		}
	}
	return out
}

// EntriesForPath returns every entry recorded under filePath, sorted by
// BlockIndex. This is the exact decode path: unlike vector-based
// reconstruction, it never has to invert a bundle, since the codebook
// already carries each block's literal bytes keyed by content hash. It
// walks occurrences rather than the content map directly, so a block
// whose bytes are shared with an earlier file still surfaces here under
// its own (filePath, blockIndex) reference.
func (c *Codebook) EntriesForPath(filePath string) []codec.CodebookEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []codec.CodebookEntry
	for blockID, occs := range c.occurrences {
		content, ok := c.entries[blockID]
		if !ok {
			continue
		}
		for _, occ := range occs {
			if occ.filePath != filePath {
				continue
			}
			entry := content
			entry.FilePath = occ.filePath
			entry.BlockIndex = occ.blockIndex
			out = append(out, entry)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BlockIndex < out[j].BlockIndex })
	return out
}
