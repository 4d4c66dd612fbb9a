package ports

import (
	"context"

	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/application/types"
)

// OrderWorkflows runs order placement, either inline or as a durable workflow.
type OrderWorkflows interface {
	PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (*types.OrderView, error)
}
