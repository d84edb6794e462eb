package session_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/racp-protocol/racp-go/pkg/log"
	"github.com/racp-protocol/racp-go/pkg/session"
)

func newFileStore(t *testing.T) *session.FileStore {
	t.Helper()
	return session.NewFileStore(filepath.Join(t.TempDir(), "racp", "sessions.json"))
}

func TestFileStoreSaveLoad(t *testing.T) {
	store := newFileStore(t)
	rec := newTestRecord(t)

	require.NoError(t, store.Save(rec))

	loaded, err := store.Load(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, loaded.ID)
	assert.Equal(t, rec.Role, loaded.Role)
	assert.Equal(t, rec.PeerExchangePublicKey, loaded.PeerExchangePublicKey)
	assert.Equal(t, rec.PeerSigningPublicKey, loaded.PeerSigningPublicKey)
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.json")
	rec := newTestRecord(t)

	require.NoError(t, session.NewFileStore(path).Save(rec))

	loaded, err := session.NewFileStore(path).Load(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, loaded.ID)
}

func TestFileStoreSaveReplaces(t *testing.T) {
	store := newFileStore(t)
	rec := newTestRecord(t)

	require.NoError(t, store.Save(rec))

	rec.Role = log.RoleController
	require.NoError(t, store.Save(rec))

	all, err := store.List()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, rec.Role, all[0].Role)
}

func TestFileStoreLoadMissing(t *testing.T) {
	store := newFileStore(t)

	_, err := store.Load("nope")
	assert.ErrorIs(t, err, session.ErrRecordNotFound)
}

func TestFileStoreDelete(t *testing.T) {
	store := newFileStore(t)
	rec := newTestRecord(t)
	other := newTestRecord(t)

	require.NoError(t, store.Save(rec))
	require.NoError(t, store.Save(other))

	require.NoError(t, store.Delete(rec.ID))

	_, err := store.Load(rec.ID)
	assert.ErrorIs(t, err, session.ErrRecordNotFound)

	all, err := store.List()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, other.ID, all[0].ID)

	assert.ErrorIs(t, store.Delete(rec.ID), session.ErrRecordNotFound)
}

func TestFileStoreRejectsInvalidRecord(t *testing.T) {
	store := newFileStore(t)

	assert.ErrorIs(t, store.Save(nil), session.ErrInvalidRecord)
	assert.ErrorIs(t, store.Save(&session.Record{}), session.ErrInvalidRecord)
}

func TestFileStorePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.json")
	store := session.NewFileStore(path)

	require.NoError(t, store.Save(newTestRecord(t)))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
