package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"

	restaurantmemory "github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/adapters/memory"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/application"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/application/types"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/domain"
	orderactivities "github.com/Apurer/go-gin-restaurant-api/internal/platform/temporal/activities/orders"
	apperrors "github.com/Apurer/go-gin-restaurant-api/internal/shared/errors"
)

func newEnv(t *testing.T, svc *application.Service) *testsuite.TestWorkflowEnvironment {
	t.Helper()
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(OrderPlacementWorkflow)
	acts := orderactivities.NewActivities(svc)
	env.RegisterActivityWithOptions(acts.PlaceOrder, activity.RegisterOptions{Name: orderactivities.PlaceOrderActivityName})
	return env
}

func TestOrderPlacementWorkflow_PlacesOrder(t *testing.T) {
	ctx := context.Background()
	svc := application.NewService(restaurantmemory.NewGateway())
	customer, err := svc.CreateCustomer(ctx, types.CreateCustomerInput{Name: "Ada", Phone: "555-0100"})
	require.NoError(t, err)
	food, _, err := svc.CreateFood(ctx, types.CreateFoodInput{Name: "Salad", Category: "side", Price: decimal.RequireFromString("8.00")})
	require.NoError(t, err)

	env := newEnv(t, svc)
	env.ExecuteWorkflow(OrderPlacementWorkflow, OrderPlacementWorkflowInput{Command: types.PlaceOrderInput{
		CustomerID: customer.ID, PaymentMethod: "cash", Type: "pickup",
		Items: []domain.ItemRequest{{FoodID: food.ID}},
	}})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	var view types.OrderView
	require.NoError(t, env.GetWorkflowResult(&view))
	require.Equal(t, int64(1), view.ID)
	require.True(t, decimal.NewFromInt(8).Equal(view.Total))
}

func TestOrderPlacementWorkflow_TypedFailureIsNotRetried(t *testing.T) {
	svc := application.NewService(restaurantmemory.NewGateway())
	env := newEnv(t, svc)

	env.ExecuteWorkflow(OrderPlacementWorkflow, OrderPlacementWorkflowInput{Command: types.PlaceOrderInput{
		CustomerID: 9, PaymentMethod: "cash", Type: "pickup",
		Items: []domain.ItemRequest{{FoodID: 1}},
	}})

	require.True(t, env.IsWorkflowCompleted())
	err := env.GetWorkflowError()
	require.Error(t, err)
	var appErr *temporal.ApplicationError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, string(apperrors.KindCustomerNotFound), appErr.Type())
	require.True(t, appErr.NonRetryable())
}

func TestOrderPlacementWorkflow_RetryAfterCommitReplaysOrder(t *testing.T) {
	ctx := context.Background()
	svc := application.NewService(restaurantmemory.NewGateway(),
		application.WithIdempotencyStore(restaurantmemory.NewIdempotencyStore()))
	customer, err := svc.CreateCustomer(ctx, types.CreateCustomerInput{Name: "Ada", Phone: "555-0100"})
	require.NoError(t, err)
	food, _, err := svc.CreateFood(ctx, types.CreateFoodInput{Name: "Salad", Category: "side", Price: decimal.RequireFromString("8.00")})
	require.NoError(t, err)

	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(OrderPlacementWorkflow)
	acts := orderactivities.NewActivities(svc)
	var keys []string
	lostAck := func(ctx context.Context, input types.PlaceOrderInput) (*types.OrderView, error) {
		keys = append(keys, input.IdempotencyKey)
		view, err := acts.PlaceOrder(ctx, input)
		if err == nil && len(keys) == 1 {
			return nil, errors.New("worker lost connection before reporting")
		}
		return view, err
	}
	env.RegisterActivityWithOptions(lostAck, activity.RegisterOptions{Name: orderactivities.PlaceOrderActivityName})
	env.SetStartWorkflowOptions(client.StartWorkflowOptions{ID: "order-placement-1-retry"})

	env.ExecuteWorkflow(OrderPlacementWorkflow, OrderPlacementWorkflowInput{Command: types.PlaceOrderInput{
		CustomerID: customer.ID, PaymentMethod: "cash", Type: "pickup",
		Items: []domain.ItemRequest{{FoodID: food.ID}},
	}})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	var view types.OrderView
	require.NoError(t, env.GetWorkflowResult(&view))
	require.Equal(t, int64(1), view.ID)
	require.Equal(t, []string{"order-placement-1-retry", "order-placement-1-retry"}, keys)

	_, found, err := svc.FindOrder(ctx, 2)
	require.NoError(t, err)
	require.False(t, found)
}
