// Package cache is the external key→blob store used to skip relationship
// recomputation on warm starts. Backends are interchangeable; failures
// are soft conditions the verifier falls back from, never verification
// errors.
package cache

import "errors"

// ErrNotFound indicates the requested entry doesn't exist
var ErrNotFound = errors.New("cache: entry not found")

// Store is a generic persisted blob store.
type Store interface {
	// Find returns the blob stored under key, or ErrNotFound.
	Find(key string) ([]byte, error)

	// Put stores blob under key, replacing any previous entry.
	Put(key string, blob []byte) error
}

// Key derives the deterministic cache key for a class's snippet blob from
// its fully-qualified internal name.
func Key(className string) string {
	return "crs/" + className
}
