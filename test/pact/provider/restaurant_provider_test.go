//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	pacttest "github.com/Apurer/go-gin-restaurant-api/test/pact"

	restaurantserver "github.com/Apurer/go-gin-restaurant-api/go"
	restaurantmemory "github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/adapters/memory"
	restaurantobs "github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/adapters/observability"
	restaurantworkflows "github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/adapters/workflows"
	restaurantapp "github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/application"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/application/types"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/domain"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/ports"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestRestaurantProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateMenuBaseline: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset()
			return nil, nil
		},
		pacttest.StateFoodExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset()
			if setup {
				app.seedFood(t)
			}
			return nil, nil
		},
		pacttest.StateFoodMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset()
			return nil, nil
		},
		pacttest.StateOrderExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset()
			if setup {
				app.seedOrder(t)
			}
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.reset()
			return nil
		},
	})
	require.NoError(t, err)
}

// contractProviderApp serves a fresh in-memory restaurant after every reset so ids restart at 1.
type contractProviderApp struct {
	mu      sync.RWMutex
	service ports.Service
	router  http.Handler
	server  *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()
	app := &contractProviderApp{}
	app.reset()
	app.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.mu.RLock()
		router := app.router
		app.mu.RUnlock()
		router.ServeHTTP(w, r)
	}))
	t.Cleanup(app.server.Close)
	return app
}

func (a *contractProviderApp) reset() {
	service := restaurantobs.New(restaurantapp.NewService(restaurantmemory.NewGateway()))
	handlers := restaurantserver.ApiHandleFunctions{
		MenuAPI:     restaurantserver.NewMenuAPI(service, nil),
		CustomerAPI: restaurantserver.NewCustomerAPI(service, restaurantworkflows.NewInlineOrderWorkflows(service), nil),
		OrderAPI:    restaurantserver.NewOrderAPI(service, nil),
	}
	router := restaurantserver.NewRouterWithGinEngine(gin.New(), handlers, gin.Recovery())

	a.mu.Lock()
	defer a.mu.Unlock()
	a.service = service
	a.router = router
}

func (a *contractProviderApp) current() ports.Service {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.service
}

func (a *contractProviderApp) seedFood(t testing.TB) {
	t.Helper()
	size := "large"
	food, ok, err := a.current().CreateFood(context.Background(), types.CreateFoodInput{
		Name:     "Margherita",
		Category: "pizza",
		Price:    decimal.RequireFromString("12.50"),
		Size:     &size,
	})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, pacttest.ExistingFoodID, food.ID)
}

func (a *contractProviderApp) seedOrder(t testing.TB) {
	t.Helper()
	a.seedFood(t)
	ctx := context.Background()
	customer, err := a.current().CreateCustomer(ctx, types.CreateCustomerInput{Name: "Ada", Phone: "555-0100"})
	require.NoError(t, err)
	require.Equal(t, pacttest.CustomerID, customer.ID)
	order, err := a.current().CreateOrder(ctx, types.PlaceOrderInput{
		CustomerID:    customer.ID,
		PaymentMethod: "card",
		Type:          "delivery",
		Items:         []domain.ItemRequest{{FoodID: pacttest.ExistingFoodID}},
	})
	require.NoError(t, err)
	require.Equal(t, pacttest.ExistingOrderID, order.ID)
}
