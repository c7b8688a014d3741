package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fxamacker/cbor/v2"
)

// cborEncMode uses canonical mode for deterministic encoding.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("cache: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// envelopeVersion is the on-disk entry format version.
const envelopeVersion = 1

// envelope wraps a stored blob with enough metadata to reject stale or
// foreign files on read.
type envelope struct {
	Version int    `cbor:"version"`
	Key     string `cbor:"key"`
	Blob    []byte `cbor:"blob"`
}

// FileStore keeps one CBOR-encoded file per cache entry under a
// directory, for caches shared between processes without a database.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed and returns a store over it.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("cache: creating directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// entryPath maps a key to its file. Keys contain class names with '/'
// separators, so the file name is a digest of the key rather than the
// key itself.
func (f *FileStore) entryPath(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(f.dir, hex.EncodeToString(sum[:])+".crs")
}

// Find returns the blob stored under key, or ErrNotFound.
func (f *FileStore) Find(key string) ([]byte, error) {
	data, err := os.ReadFile(f.entryPath(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("cache: reading entry: %w", err)
	}

	var env envelope
	if err := cbor.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("cache: unmarshal entry: %w", err)
	}
	if env.Version != envelopeVersion {
		return nil, fmt.Errorf("cache: unsupported entry version: %d", env.Version)
	}
	if env.Key != key {
		// Digest collision or a foreign file; treat as absent.
		return nil, ErrNotFound
	}
	return env.Blob, nil
}

// Put stores blob under key, replacing any previous entry. The entry is
// written to a temporary file and renamed into place.
func (f *FileStore) Put(key string, blob []byte) error {
	data, err := cborEncMode.Marshal(&envelope{
		Version: envelopeVersion,
		Key:     key,
		Blob:    blob,
	})
	if err != nil {
		return fmt.Errorf("cache: marshal entry: %w", err)
	}

	path := f.entryPath(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("cache: writing entry: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("cache: publishing entry: %w", err)
	}
	return nil
}
