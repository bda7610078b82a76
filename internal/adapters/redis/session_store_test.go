package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/nextgen-organics/portal-api/internal/domain/auth"
)

func newTestStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionStore(client), mr
}

func testSession(id string, ttl time.Duration) domainauth.Session {
	return domainauth.Session{
		ID:        id,
		UserID:    "u-1",
		Email:     "admin@example.com",
		Role:      domainauth.RoleAdmin,
		ExpiresAt: time.Now().Add(ttl),
	}
}

func TestSessionStore_SaveAndGet(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	sess := testSession("sess-1", time.Hour)
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, got.UserID)
	assert.Equal(t, sess.Role, got.Role)
	assert.Equal(t, sess.Email, got.Email)
}

func TestSessionStore_SaveValidation(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	t.Run("empty ID", func(t *testing.T) {
		require.Error(t, store.Save(ctx, testSession("", time.Hour)))
	})

	t.Run("already expired", func(t *testing.T) {
		require.Error(t, store.Save(ctx, testSession("sess-old", -time.Minute)))
	})
}

func TestSessionStore_GetMissing(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.Get(ctx, "no-such")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = store.Get(ctx, "")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSessionStore_KeyTTLTracksExpiry(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSession("sess-1", time.Hour)))

	ttl := mr.TTL("session:sess-1")
	assert.Greater(t, ttl, 59*time.Minute)
	assert.LessOrEqual(t, ttl, time.Hour)

	// Once the TTL elapses the key is gone and Get reports not found.
	mr.FastForward(2 * time.Hour)
	_, err := store.Get(ctx, "sess-1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSessionStore_ExpiredPayloadIsDeleted(t *testing.T) {
	// A writer with a skewed clock can leave a live key holding an expired
	// session; Get must not resurrect it.
	store, mr := newTestStore(t)
	ctx := context.Background()

	expired := testSession("sess-skew", -time.Minute)
	data, err := json.Marshal(expired)
	require.NoError(t, err)
	require.NoError(t, mr.Set("session:sess-skew", string(data)))

	_, err = store.Get(ctx, "sess-skew")
	require.ErrorIs(t, err, ErrNotFound)
	assert.False(t, mr.Exists("session:sess-skew"), "stale session should be deleted")
}

func TestSessionStore_Delete(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSession("sess-1", time.Hour)))
	require.NoError(t, store.Delete(ctx, "sess-1"))
	assert.False(t, mr.Exists("session:sess-1"))

	// Deleting a missing or empty ID is not an error.
	require.NoError(t, store.Delete(ctx, "sess-1"))
	require.NoError(t, store.Delete(ctx, ""))
}

func TestSessionStore_CustomPrefix(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewSessionStoreWithPrefix(client, "portal:sess:")
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSession("abc", time.Hour)))
	assert.True(t, mr.Exists("portal:sess:abc"))

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.UserID)
}
