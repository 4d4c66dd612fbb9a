//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/application"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/application/types"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/domain"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/ports"
	"github.com/Apurer/go-gin-restaurant-api/internal/platform/migrations"
	platformpostgres "github.com/Apurer/go-gin-restaurant-api/internal/platform/postgres"
)

func setupRestaurantPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("restaurant_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := platformpostgres.Connect(ctx, dsn)
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func TestGatewayIntegration_ForeignKeys(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupRestaurantPostgresContainer(t)
	defer cleanup()

	gw := NewGateway(db)
	ctx := context.Background()

	customer, err := gw.InsertCustomer(ctx, &domain.Customer{Name: "Ada", Phone: "555-0100"})
	require.NoError(t, err)
	order, err := gw.InsertOrder(ctx, &domain.Order{Date: time.Now(), PaymentMethod: "cash", Type: "pickup"})
	require.NoError(t, err)
	require.NoError(t, gw.InsertCustomerOrder(ctx, domain.CustomerOrder{CustomerID: customer.ID, OrderID: order.ID}))

	_, err = gw.DeleteCustomer(ctx, customer.ID)
	assert.ErrorIs(t, err, ports.ErrForeignKeyViolation)

	_, err = gw.InsertOrderItem(ctx, &domain.OrderItem{OrderID: order.ID + 100, FoodID: 1, Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, ports.ErrForeignKeyViolation)
}

func TestGatewayIntegration_OrderTotals(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupRestaurantPostgresContainer(t)
	defer cleanup()

	svc := application.NewService(NewGateway(db))
	ctx := context.Background()

	customer, err := svc.CreateCustomer(ctx, types.CreateCustomerInput{Name: "Ada", Phone: "555-0100"})
	require.NoError(t, err)
	food, _, err := svc.CreateFood(ctx, types.CreateFoodInput{Name: "Salad", Category: "side", Price: decimal.RequireFromString("8.00")})
	require.NoError(t, err)
	addon, err := svc.CreateAddon(ctx, types.CreateAddonInput{Name: "Feta", Type: "topping", Price: decimal.RequireFromString("1.25")})
	require.NoError(t, err)

	order, err := svc.CreateOrder(ctx, types.PlaceOrderInput{
		CustomerID:    customer.ID,
		PaymentMethod: "cash",
		Type:          "pickup",
		Items:         []domain.ItemRequest{{FoodID: food.ID, AddonIDs: []int64{addon.ID}}},
	})
	require.NoError(t, err)

	_, err = svc.UpdateFoodPrice(ctx, food.ID, decimal.NewFromInt(20))
	require.NoError(t, err)

	found, ok, err := svc.FindOrder(ctx, order.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, decimal.RequireFromString("9.25").Equal(found.Total))

	total, ok, err := svc.DeleteOrderItem(ctx, order.ID, order.Items[0].ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, total.IsZero())
}
