package postgres

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/application"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/application/types"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/domain"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/ports"
	"github.com/Apurer/go-gin-restaurant-api/internal/platform/migrations"
	platformpostgres "github.com/Apurer/go-gin-restaurant-api/internal/platform/postgres"
)

func setupSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", name)
	db, err := gorm.Open(sqlite.Open(dsn), platformpostgres.Config())
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, migrations.Run(db))
	return db
}

func TestGateway_FoodRoundTrip(t *testing.T) {
	gw := NewGateway(setupSQLite(t))
	ctx := context.Background()
	size := "large"

	saved, err := gw.InsertFood(ctx, &domain.Food{Name: "Margherita", Category: "pizza", Price: decimal.RequireFromString("12.50"), Size: &size})
	require.NoError(t, err)
	require.NotZero(t, saved.ID)

	saved.Size = nil
	saved.Price = decimal.Zero
	rows, err := gw.UpdateFood(ctx, saved)
	require.NoError(t, err)
	require.Equal(t, int64(1), rows)

	fetched, err := gw.GetFood(ctx, saved.ID)
	require.NoError(t, err)
	require.Nil(t, fetched.Size)
	require.True(t, fetched.Price.IsZero())

	rows, err = gw.UpdateFood(ctx, &domain.Food{ID: 999, Name: "x", Category: "y"})
	require.NoError(t, err)
	require.Zero(t, rows)

	rows, err = gw.DeleteFood(ctx, saved.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), rows)

	_, err = gw.GetFood(ctx, saved.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestGateway_InTxRollsBack(t *testing.T) {
	gw := NewGateway(setupSQLite(t))
	ctx := context.Background()

	err := gw.InTx(ctx, func(tx ports.Gateway) error {
		if _, err := tx.InsertCustomer(ctx, &domain.Customer{Name: "Ada", Phone: "555-0100"}); err != nil {
			return err
		}
		_, err := tx.InsertOrderItem(ctx, &domain.OrderItem{OrderID: 404, FoodID: 1, Price: decimal.NewFromInt(1)})
		return err
	})
	require.ErrorIs(t, err, ports.ErrForeignKeyViolation)

	_, err = gw.GetCustomer(ctx, 1)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestGateway_LinkedCustomerCannotBeDeleted(t *testing.T) {
	gw := NewGateway(setupSQLite(t))
	ctx := context.Background()

	customer, err := gw.InsertCustomer(ctx, &domain.Customer{Name: "Ada", Phone: "555-0100"})
	require.NoError(t, err)
	order, err := gw.InsertOrder(ctx, &domain.Order{PaymentMethod: "cash", Type: "pickup"})
	require.NoError(t, err)
	link := domain.CustomerOrder{CustomerID: customer.ID, OrderID: order.ID}
	require.NoError(t, gw.InsertCustomerOrder(ctx, link))
	require.ErrorIs(t, gw.InsertCustomerOrder(ctx, link), ports.ErrDuplicateKey)

	_, err = gw.DeleteCustomer(ctx, customer.ID)
	require.ErrorIs(t, err, ports.ErrForeignKeyViolation)

	links, err := gw.ListCustomersOfOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Equal(t, []domain.CustomerOrder{link}, links)
}

func TestGateway_ServiceOrderLifecycle(t *testing.T) {
	svc := application.NewService(NewGateway(setupSQLite(t)))
	ctx := context.Background()

	customer, err := svc.CreateCustomer(ctx, types.CreateCustomerInput{Name: "Ada", Phone: "555-0100"})
	require.NoError(t, err)
	size := "medium"
	pizza, ok, err := svc.CreateFood(ctx, types.CreateFoodInput{Name: "Margherita", Category: "pizza", Price: decimal.RequireFromString("12.50"), Size: &size})
	require.NoError(t, err)
	require.True(t, ok)
	salad, _, err := svc.CreateFood(ctx, types.CreateFoodInput{Name: "Salad", Category: "side", Price: decimal.RequireFromString("8")})
	require.NoError(t, err)
	cheese, err := svc.CreateAddon(ctx, types.CreateAddonInput{Name: "Cheese", Type: "topping", Price: decimal.RequireFromString("1.50")})
	require.NoError(t, err)

	order, err := svc.CreateOrder(ctx, types.PlaceOrderInput{
		CustomerID:    customer.ID,
		PaymentMethod: "card",
		Type:          "delivery",
		Items: []domain.ItemRequest{
			{FoodID: pizza.ID, AddonIDs: []int64{cheese.ID}},
			{FoodID: salad.ID},
		},
	})
	require.NoError(t, err)

	found, ok, err := svc.FindOrder(ctx, order.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, decimal.NewFromInt(22).Equal(found.Total), found.Total.String())

	_, err = svc.DeleteCustomer(ctx, customer.ID, false)
	require.Error(t, err)

	ok, err = svc.DeleteCustomer(ctx, customer.ID, true)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = svc.FindOrder(ctx, order.ID)
	require.NoError(t, err)
	require.False(t, ok)
}
