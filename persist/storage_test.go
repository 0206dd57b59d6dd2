package persist

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// storages returns every Storage implementation, each on a fresh location.
func storages(t *testing.T) map[string]Storage {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "cst.db"))
	require.NoError(t, err, "OpenSQLite should succeed")
	t.Cleanup(func() { _ = db.Close() })

	return map[string]Storage{
		"file":   NewFileStorage(filepath.Join(t.TempDir(), "store")),
		"sqlite": db,
	}
}

func TestStorage_GetPut(t *testing.T) {
	ctx := context.Background()
	for name, s := range storages(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := s.Get(ctx, "missing")
			require.NoError(t, err, "Get should succeed")
			require.False(t, ok, "missing key should be absent")

			require.NoError(t, s.Put(ctx, "k", []byte(`{"a":1}`)), "Put should succeed")
			require.NoError(t, s.Put(ctx, "k", []byte(`{"a":2}`)), "second Put should succeed")

			got, ok, err := s.Get(ctx, "k")
			require.NoError(t, err, "Get should succeed")
			require.True(t, ok, "key should be present")
			require.Equal(t, `{"a":2}`, string(got), "Put should overwrite")
		})
	}
}

func TestStorage_InvalidKey(t *testing.T) {
	ctx := context.Background()
	for name, s := range storages(t) {
		t.Run(name, func(t *testing.T) {
			for _, key := range []string{"", "..", "a/b", `a\b`} {
				require.ErrorIs(t, s.Put(ctx, key, []byte("x")), ErrInvalidKey, "Put(%q)", key)
				_, _, err := s.Get(ctx, key)
				require.ErrorIs(t, err, ErrInvalidKey, "Get(%q)", key)
			}
		})
	}
}

func TestSQLite_Memory(t *testing.T) {
	ctx := context.Background()
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err, "OpenSQLite should succeed")
	defer db.Close()

	require.NoError(t, db.Put(ctx, Key, []byte("v")), "Put should succeed")
	got, ok, err := db.Get(ctx, Key)
	require.NoError(t, err, "Get should succeed")
	require.True(t, ok)
	require.Equal(t, "v", string(got))
}

func TestFileStorage_Layout(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStorage(dir)
	require.NoError(t, s.Put(context.Background(), Key, []byte("{}")), "Put should succeed")
	require.FileExists(t, filepath.Join(dir, Key+".json"))
}
