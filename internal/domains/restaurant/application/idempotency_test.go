package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	restaurantmemory "github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/adapters/memory"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/application/types"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/domain"
	apperrors "github.com/Apurer/go-gin-restaurant-api/internal/shared/errors"
)

func TestFingerprintPlaceOrder_IgnoresOrdering(t *testing.T) {
	a, err := FingerprintPlaceOrder(types.PlaceOrderInput{
		CustomerID: 1, PaymentMethod: "cash", Type: "pickup", IdempotencyKey: "one",
		Items: []domain.ItemRequest{{FoodID: 2, AddonIDs: []int64{3, 1}}, {FoodID: 1}},
	})
	require.NoError(t, err)
	b, err := FingerprintPlaceOrder(types.PlaceOrderInput{
		CustomerID: 1, PaymentMethod: "cash", Type: "pickup", IdempotencyKey: "two",
		Items: []domain.ItemRequest{{FoodID: 1}, {FoodID: 2, AddonIDs: []int64{1, 3}}},
	})
	require.NoError(t, err)
	require.Equal(t, a, b)

	c, err := FingerprintPlaceOrder(types.PlaceOrderInput{
		CustomerID: 1, PaymentMethod: "card", Type: "pickup",
		Items: []domain.ItemRequest{{FoodID: 1}, {FoodID: 2, AddonIDs: []int64{1, 3}}},
	})
	require.NoError(t, err)
	require.NotEqual(t, a, c)
}

func TestCreateOrder_ReplaysIdempotencyKey(t *testing.T) {
	events := &recordingPublisher{}
	svc := NewService(restaurantmemory.NewGateway(),
		WithEventPublisher(events),
		WithIdempotencyStore(restaurantmemory.NewIdempotencyStore()),
	)
	f := fixture{ctx: context.Background(), svc: svc, events: events}
	customer := f.customer(t)
	salad := f.food(t, "Salad", "side", "8.00", nil)

	input := types.PlaceOrderInput{
		CustomerID:     customer.ID,
		PaymentMethod:  "cash",
		Type:           "pickup",
		Items:          []domain.ItemRequest{{FoodID: salad.ID}},
		IdempotencyKey: "retry-1",
	}
	first, err := svc.CreateOrder(f.ctx, input)
	require.NoError(t, err)
	second, err := svc.CreateOrder(f.ctx, input)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, []string{"order.placed"}, events.names())

	input.Type = "delivery"
	_, err = svc.CreateOrder(f.ctx, input)
	require.ErrorIs(t, err, apperrors.ErrImproperEntryData)

	require.NoError(t, svc.DeleteOrder(f.ctx, first.ID))
	input.Type = "pickup"
	_, err = svc.CreateOrder(f.ctx, input)
	require.ErrorIs(t, err, apperrors.ErrEntityNotFound)

	input.IdempotencyKey = ""
	third, err := svc.CreateOrder(f.ctx, input)
	require.NoError(t, err)
	require.NotEqual(t, first.ID, third.ID)
}
