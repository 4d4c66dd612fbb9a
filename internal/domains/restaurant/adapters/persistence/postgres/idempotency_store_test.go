package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/ports"
)

func TestIdempotencyStore_SaveGetConflict(t *testing.T) {
	store := NewIdempotencyStore(setupSQLite(t))
	ctx := context.Background()

	missing, err := store.Get(ctx, "order-key")
	require.NoError(t, err)
	require.Nil(t, missing)

	saved, err := store.Save(ctx, ports.IdempotencyRecord{Key: "order-key", RequestHash: "abc", OrderID: 7})
	require.NoError(t, err)
	require.Equal(t, int64(7), saved.OrderID)

	same, err := store.Save(ctx, ports.IdempotencyRecord{Key: "order-key", RequestHash: "abc", OrderID: 7})
	require.NoError(t, err)
	require.Equal(t, "abc", same.RequestHash)

	existing, err := store.Save(ctx, ports.IdempotencyRecord{Key: "order-key", RequestHash: "def", OrderID: 8})
	require.ErrorIs(t, err, ports.ErrIdempotencyConflict)
	require.Equal(t, int64(7), existing.OrderID)

	var unset *IdempotencyStore
	_, err = unset.Get(ctx, "order-key")
	require.Error(t, err)
}
