package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scpsl-tools/slbind/internal/models"
)

func newStore(t *testing.T) *Store {
	t.Helper()

	store, err := New(t.TempDir())
	require.NoError(t, err)

	return store
}

func TestAddAndList(t *testing.T) {
	store := newStore(t)

	res, err := store.Add("group1", "key1", "acc1", "7777")
	require.NoError(t, err)
	assert.Equal(t, Added, res)

	res, err = store.Add("group1", "key2", "acc2", "")
	require.NoError(t, err)
	assert.Equal(t, Added, res)

	bindings, err := store.List("group1")
	require.NoError(t, err)
	require.Len(t, bindings, 2)
	assert.Equal(t, models.Binding{ServerKey: "key1", AccountID: "acc1", Port: "7777"}, bindings[0])
	assert.Equal(t, models.Binding{ServerKey: "key2", AccountID: "acc2"}, bindings[1])
}

func TestAddDuplicateIdentityIgnoresPort(t *testing.T) {
	store := newStore(t)

	res, err := store.Add("group1", "key1", "acc1", "7777")
	require.NoError(t, err)
	require.Equal(t, Added, res)

	// Same identity, different port: still a duplicate.
	res, err = store.Add("group1", "key1", "acc1", "8888")
	require.NoError(t, err)
	assert.Equal(t, AlreadyExists, res)

	bindings, err := store.List("group1")
	require.NoError(t, err)
	require.Len(t, bindings, 1)
	assert.Equal(t, "7777", bindings[0].Port)
}

func TestRemoveMatchesAllPorts(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	require.NoError(t, err)

	// Manually edited file with duplicate identities on different ports.
	content := "key1 acc1 7777\nkey2 acc2\nkey1 acc1 8888\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "group1.txt"), []byte(content), 0o644))

	res, err := store.Remove("group1", "key1", "acc1")
	require.NoError(t, err)
	assert.Equal(t, Removed, res)

	bindings, err := store.List("group1")
	require.NoError(t, err)
	require.Len(t, bindings, 1)
	assert.True(t, bindings[0].Same("key2", "acc2"))
}

func TestRemoveNotFound(t *testing.T) {
	store := newStore(t)

	_, err := store.Add("group1", "key1", "acc1", "")
	require.NoError(t, err)

	res, err := store.Remove("group1", "other", "acc1")
	require.NoError(t, err)
	assert.Equal(t, NotFound, res)

	bindings, err := store.List("group1")
	require.NoError(t, err)
	assert.Len(t, bindings, 1)
}

func TestCheck(t *testing.T) {
	store := newStore(t)

	_, err := store.Add("group1", "key1", "acc1", "7777")
	require.NoError(t, err)

	exists, err := store.Check("group1", "key1", "acc1")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = store.Check("group1", "key1", "acc2")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestListUnboundGroup(t *testing.T) {
	store := newStore(t)

	bindings, err := store.List("nobody")
	require.NoError(t, err)
	assert.Empty(t, bindings)
	assert.False(t, store.Bound("nobody"))
}

func TestLoadDropsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	require.NoError(t, err)

	content := "lonely-token\nkey1 acc1 7777\n\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "group1.txt"), []byte(content), 0o644))

	bindings, err := store.List("group1")
	require.NoError(t, err)
	require.Len(t, bindings, 1)
	assert.Equal(t, "key1", bindings[0].ServerKey)
}

func TestRoundTripPreservesOrder(t *testing.T) {
	store := newStore(t)

	want := []models.Binding{
		{ServerKey: "k1", AccountID: "a1", Port: "7777"},
		{ServerKey: "k2", AccountID: "a2"},
		{ServerKey: "k3", AccountID: "a3", Port: "7779"},
	}
	for _, b := range want {
		res, err := store.Add("group1", b.ServerKey, b.AccountID, b.Port)
		require.NoError(t, err)
		require.Equal(t, Added, res)
	}

	// Fresh store over the same directory to force a reload from disk.
	reloaded, err := New(store.dir)
	require.NoError(t, err)

	got, err := reloaded.List("group1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestGroupIDCannotEscapeDir(t *testing.T) {
	store := newStore(t)

	_, err := store.Add("../evil", "key1", "acc1", "")
	require.NoError(t, err)

	assert.True(t, store.Bound("evil"))
	_, err = os.Stat(filepath.Join(store.dir, "evil.txt"))
	assert.NoError(t, err)
}
