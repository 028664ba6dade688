package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-press/inkwell/internal/inkwell/repository/sessionrepo"
	sessionredis "github.com/inkwell-press/inkwell/internal/inkwell/repository/sessionrepo/redis"
)

func newTestStore(t *testing.T) (sessionredis.SessionStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()}) //nolint:exhaustruct

	return sessionredis.NewWithClient(rdb, time.Hour), mr
}

func TestSessionStoreSaveGet(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	s := sessionrepo.Session{
		ID:        "abc",
		UserID:    7,
		Flashes:   []string{"Welcome back!"},
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}

	require.NoError(t, store.Save(ctx, s))

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	require.Equal(t, s.UserID, got.UserID)
	require.Equal(t, s.Flashes, got.Flashes)
}

func TestSessionStoreGetMissing(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Get(context.Background(), "nope")
	require.ErrorIs(t, err, sessionrepo.ErrNotFound)
}

func TestSessionStoreDelete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sessionrepo.Session{ID: "abc", UserID: 1})) //nolint:exhaustruct
	require.NoError(t, store.Delete(ctx, "abc"))

	_, err := store.Get(ctx, "abc")
	require.ErrorIs(t, err, sessionrepo.ErrNotFound)

	require.ErrorIs(t, store.Delete(ctx, "abc"), sessionrepo.ErrNotFound)
}

func TestSessionStoreTTL(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sessionrepo.Session{ID: "abc", UserID: 1})) //nolint:exhaustruct

	mr.FastForward(2 * time.Hour)

	_, err := store.Get(ctx, "abc")
	require.ErrorIs(t, err, sessionrepo.ErrNotFound)
}
