package manifest

import (
	"encoding/json"
	"fmt"

	"github.com/klauspost/compress/zstd"
	bolt "go.etcd.io/bbolt"

	"github.com/ternholo/engram/codec"
)

var entriesBucket = []byte("codebook_entries")

// BoltStore persists a Codebook's entries durably, compressing RawBytes
// at rest with zstd. The compression is lossless at the byte level:
// decode still reproduces RawBytes exactly, it is just not kept
// uncompressed on disk between encode and decode.
type BoltStore struct {
	db  *bolt.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// OpenBoltStore opens (creating if necessary) a bbolt-backed codebook
// store at path.
func OpenBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, manifestErrorf("OpenBoltStore", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(entriesBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, manifestErrorf("OpenBoltStore", err)
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		_ = db.Close()
		return nil, manifestErrorf("OpenBoltStore", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		_ = db.Close()
		enc.Close()
		return nil, manifestErrorf("OpenBoltStore", err)
	}
	return &BoltStore{db: db, enc: enc, dec: dec}, nil
}

// Close releases the underlying database handle and codec resources.
func (s *BoltStore) Close() error {
	s.dec.Close()
	s.enc.Close()
	if err := s.db.Close(); err != nil {
		return manifestErrorf("Close", err)
	}
	return nil
}

// onDiskEntry mirrors codec.CodebookEntry but stores RawBytes already
// zstd-compressed, so json-decoding it directly would not match
// CodebookEntry's field; SaveAll/LoadAll translate explicitly.
type onDiskEntry struct {
	BlockID       [32]byte `json:"block_id"`
	RawCompressed []byte   `json:"raw_compressed"`
	Fingerprint   [32]byte `json:"fingerprint"`
	BlockLength   int      `json:"block_length"`
	FilePath      string   `json:"file_path"`
	BlockIndex    int      `json:"block_index"`
}

// occurrenceKey identifies one (BlockID, FilePath, BlockIndex)
// occurrence. BlockID alone is not unique across rows since cb.All now
// yields one row per occurrence, not one per distinct block.
func occurrenceKey(e codec.CodebookEntry) []byte {
	return []byte(fmt.Sprintf("%x:%s:%d", e.BlockID, e.FilePath, e.BlockIndex))
}

// SaveAll persists every occurrence currently in cb, appending (never
// overwriting an existing key, since a (BlockID, FilePath, BlockIndex)
// triple already dedupes). RawBytes is stored once per occurrence row;
// blocks shared across many files cost more disk space than a
// content-addressed store strictly needs, but every occurrence survives
// a save/load round trip intact, which is the property decode depends on.
func (s *BoltStore) SaveAll(cb *Codebook) error {
	entries := cb.All()
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(entriesBucket)
		for _, e := range entries {
			key := occurrenceKey(e)
			if b.Get(key) != nil {
				continue
			}
			rec := onDiskEntry{
				BlockID:       e.BlockID,
				RawCompressed: s.enc.EncodeAll(e.RawBytes, nil),
				Fingerprint:   e.Fingerprint,
				BlockLength:   e.BlockLength,
				FilePath:      e.FilePath,
				BlockIndex:    e.BlockIndex,
			}
			val, err := json.Marshal(rec)
			if err != nil {
				return err
			}
			if err := b.Put(key, val); err != nil {
				return err
			}
		}
		return nil
	})
}

// LoadAll reconstructs a Codebook from every entry persisted in s.
func (s *BoltStore) LoadAll() (*Codebook, error) {
	cb := NewCodebook()
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(entriesBucket)
		return b.ForEach(func(k, v []byte) error {
			var rec onDiskEntry
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}
			raw, err := s.dec.DecodeAll(rec.RawCompressed, nil)
			if err != nil {
				return err
			}
			entry := codec.CodebookEntry{
				BlockID:     rec.BlockID,
				RawBytes:    raw,
				Fingerprint: rec.Fingerprint,
				BlockLength: rec.BlockLength,
				FilePath:    rec.FilePath,
				BlockIndex:  rec.BlockIndex,
			}
			return cb.Put(entry)
		})
	})
	if err != nil {
		return nil, manifestErrorf("LoadAll", err)
	}
	return cb, nil
}
