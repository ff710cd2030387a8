package persistence

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSQLiteStore(t *testing.T) {
	t.Run("successful creation", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "test.db")

		store, err := NewSQLiteStore(dbPath)
		require.NoError(t, err)
		assert.NotNil(t, store)
		require.NoError(t, store.Close())
	})

	t.Run("invalid path", func(t *testing.T) {
		store, err := NewSQLiteStore("/invalid/path/that/does/not/exist/test.db")
		assert.Error(t, err)
		assert.Nil(t, store)
	})
}

func TestSQLiteStore_TableCreated(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer store.Close()

	var count int
	err = store.db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='kv'").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSQLiteStore_GetSet(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Get("training-enrollments")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set("training-enrollments", []byte(`[{"id":"1"}]`)))
	v, err := store.Get("training-enrollments")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, string(v))

	// set replaces the whole value
	require.NoError(t, store.Set("training-enrollments", []byte(`[]`)))
	v, err = store.Get("training-enrollments")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(v))

	var rows int
	require.NoError(t, store.db.Get(&rows, "SELECT COUNT(*) FROM kv"))
	assert.Equal(t, 1, rows)
}

func TestSQLiteStore_Keys(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer store.Close()

	keys, err := store.Keys()
	require.NoError(t, err)
	assert.Empty(t, keys)

	require.NoError(t, store.Set("training-students", []byte(`[]`)))
	require.NoError(t, store.Set("training-enrollments", []byte(`[]`)))
	keys, err = store.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"training-enrollments", "training-students"}, keys)
}

func TestSQLiteStore_Reopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Set("k", []byte("value")))
	require.NoError(t, store.Close())

	store, err = NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer store.Close()
	v, err := store.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "value", string(v))
}

func TestSQLiteStore_Closed(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	err = store.Set("k", []byte("v"))
	require.Error(t, err)
	_, err = store.Get("k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
