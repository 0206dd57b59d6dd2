// Package persist keeps the state of a statement across runs.
//
// A Storage is a small key/value store, two are provided: FileStorage keeps
// one file per key and SQLiteStorage one row per key. The Adapter stores the
// full state record under a fixed key.
package persist

import (
	"context"
	"errors"
	"strings"
)

// ErrInvalidKey is returned for a key that cannot be stored.
var ErrInvalidKey = errors.New("invalid storage key")

// Storage is a key/value store of opaque documents.
type Storage interface {
	// Get returns the value stored under key, and false when there is none.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error
}

// validKey rejects keys that could escape a storage directory.
func validKey(key string) bool {
	return key != "" && key != "." && key != ".." && !strings.ContainsAny(key, `/\`+"\x00")
}
