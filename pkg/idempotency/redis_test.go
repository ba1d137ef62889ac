package idempotency_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dwikikusuma/storefront/internal/testutil"
	"github.com/dwikikusuma/storefront/pkg/idempotency"
)

func TestRedisStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := idempotency.NewRedisStore(testutil.Redis(t), time.Minute)

	cached, found, err := store.Begin(ctx, "u1:k1")
	require.NoError(t, err)
	require.False(t, found)
	require.Nil(t, cached)

	_, _, err = store.Begin(ctx, "u1:k1")
	require.ErrorIs(t, err, idempotency.ErrInFlight)

	require.NoError(t, store.Complete(ctx, "u1:k1", []byte(`{"id":"o1"}`)))

	cached, found, err = store.Begin(ctx, "u1:k1")
	require.NoError(t, err)
	require.True(t, found)
	require.JSONEq(t, `{"id":"o1"}`, string(cached))
}

func TestRedisStoreReleaseAllowsRetry(t *testing.T) {
	ctx := context.Background()
	store := idempotency.NewRedisStore(testutil.Redis(t), time.Minute)

	_, _, err := store.Begin(ctx, "u1:k2")
	require.NoError(t, err)
	require.NoError(t, store.Release(ctx, "u1:k2"))

	_, found, err := store.Begin(ctx, "u1:k2")
	require.NoError(t, err)
	require.False(t, found)
}
