package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/application/types"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/ports"
	apperrors "github.com/Apurer/go-gin-restaurant-api/internal/shared/errors"
)

// PlaceOrderActivityName stores an order with all of its items in one unit of work.
const PlaceOrderActivityName = "orders.activities.PlaceOrder"

// Activities groups the activities that operate on restaurant orders.
type Activities struct {
	creator ports.Creator
}

// NewActivities wires the restaurant service into the Temporal activities bundle.
func NewActivities(creator ports.Creator) *Activities {
	return &Activities{creator: creator}
}

// PlaceOrder creates the order. Failures from the error taxonomy are the caller's
// fault and are not retried; their kind travels as the application error type.
func (a *Activities) PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (*types.OrderView, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.creator == nil {
		logger.Error("order placement activity not initialized", "customerId", input.CustomerID)
		return nil, errors.New("order placement activity not initialized")
	}
	logger.Info("PlaceOrder activity started", "customerId", input.CustomerID, "items", len(input.Items))
	view, err := a.creator.CreateOrder(ctx, input)
	if err != nil {
		logger.Error("PlaceOrder activity failed", "customerId", input.CustomerID, "error", err)
		if f, ok := apperrors.AsFailure(err); ok && f.Kind != apperrors.KindInternal {
			return nil, temporal.NewNonRetryableApplicationError(f.Message, string(f.Kind), err, f.Data)
		}
		return nil, err
	}
	logger.Info("PlaceOrder activity completed", "orderId", view.ID, "total", view.Total.StringFixed(2))
	return view, nil
}
