package session

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, store CredentialStore) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, ErrNoCredential)

	require.NoError(t, store.Save(ctx, "tok1"))
	token, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok1", token)

	require.NoError(t, store.Save(ctx, "tok2"))
	token, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok2", token)

	require.NoError(t, store.Clear(ctx))
	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, ErrNoCredential)

	// Clearing twice is fine.
	require.NoError(t, store.Clear(ctx))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "credentials.json")
	exerciseStore(t, NewFileStore(path))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "empty store should remove its file")
}

func TestFileStore_LayoutAndPermissions(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "credentials.json")
	store := NewFileStore(path)

	require.NoError(t, store.Save(ctx, "tok1"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var values map[string]string
	require.NoError(t, json.Unmarshal(data, &values))
	assert.Equal(t, "tok1", values[StorageKey])
}

func TestFileStore_PreservesOtherKeys(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"theme":"dark"}`), 0o600))
	store := NewFileStore(path)

	require.NoError(t, store.Save(ctx, "tok1"))
	require.NoError(t, store.Clear(ctx))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"theme":"dark"}`, string(data))
}

func TestFileStore_CorruptFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte(`not json`), 0o600))
	store := NewFileStore(path)

	_, err := store.Load(ctx)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoCredential)

	require.NoError(t, store.Clear(ctx))
	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, ErrNoCredential)
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore(t *testing.T) {
	_, client := newTestRedis(t)
	exerciseStore(t, NewRedisStore(client, "", 0))
}

func TestRedisStore_KeyAndTTL(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewRedisStore(client, "test:", time.Hour)
	assert.Equal(t, "test:admin_token", store.Key())

	require.NoError(t, store.Save(context.Background(), "tok1"))

	val, err := mr.Get("test:admin_token")
	require.NoError(t, err)
	assert.Equal(t, "tok1", val)
	assert.Equal(t, time.Hour, mr.TTL("test:admin_token"))

	mr.FastForward(2 * time.Hour)
	_, err = store.Load(context.Background())
	assert.ErrorIs(t, err, ErrNoCredential)
}

func TestRedisStore_DefaultPrefix(t *testing.T) {
	_, client := newTestRedis(t)
	assert.Equal(t, DefaultRedisPrefix+StorageKey, NewRedisStore(client, "", 0).Key())
}

func TestRedisStore_Unavailable(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewRedisStore(client, "", 0)
	mr.Close()

	_, err := store.Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoCredential)
}
