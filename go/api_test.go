package restaurantserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	restaurantmemory "github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/adapters/memory"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/application"
	apierrors "github.com/Apurer/go-gin-restaurant-api/internal/shared/errors"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Code    int             `json:"code"`
	Data    map[string]any  `json:"data"`
	Results map[string]bool `json:"results"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := application.NewService(restaurantmemory.NewGateway())
	responder := apierrors.NewResponder(nil)
	return NewRouterWithGinEngine(gin.New(), ApiHandleFunctions{
		MenuAPI:     NewMenuAPI(svc, responder),
		CustomerAPI: NewCustomerAPI(svc, nil, responder),
		OrderAPI:    NewOrderAPI(svc, responder),
	})
}

func do(t *testing.T, router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func TestFoodLifecycle(t *testing.T) {
	router := newTestRouter(t)

	rec, env := do(t, router, http.MethodPost, "/api/menu/food", `{"food": {"name": "Margherita", "category": "pizza", "price": "12.50", "size": "large"}}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/api/menu/food/1", rec.Header().Get("Location"))
	assert.True(t, env.Success)
	assert.Equal(t, "12.5", env.Data["price"])

	rec, env = do(t, router, http.MethodGet, "/api/menu/food/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Margherita", env.Data["name"])

	rec, _ = do(t, router, http.MethodDelete, "/api/menu/food/1", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec, env = do(t, router, http.MethodGet, "/api/menu/food/1", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apierrors.CodeEntryNotFound, env.Code)
	assert.False(t, env.Success)

	rec, _ = do(t, router, http.MethodDelete, "/api/menu/food/1", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateFood_Failures(t *testing.T) {
	router := newTestRouter(t)

	rec, env := do(t, router, http.MethodPost, "/api/menu/food", `{"food": {"name": "Pepperoni", "category": "Pizza", "price": 11}}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apierrors.CodeMissingFoodSize, env.Code)

	rec, env = do(t, router, http.MethodPost, "/api/menu/food", `{"food": {"name": "Pepperoni"}}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apierrors.CodeMissingEntryData, env.Code)

	rec, env = do(t, router, http.MethodPost, "/api/menu/food", `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apierrors.CodeMissingEntryData, env.Code)

	rec, env = do(t, router, http.MethodPost, "/api/menu/food", `{"food": `)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apierrors.CodeGenericBadRequest, env.Code)

	rec, env = do(t, router, http.MethodGet, "/api/menu/food/abc", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apierrors.CodeGenericBadRequest, env.Code)
}

func TestUpdateFood_ReportsPartialSuccess(t *testing.T) {
	router := newTestRouter(t)
	rec, _ := do(t, router, http.MethodPost, "/api/menu/food", `{"food": {"name": "Burger", "category": "main", "price": 9}}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env := do(t, router, http.MethodPut, "/api/menu/food/1", `{"food": {"name": "Big Burger", "category": "pizza"}}`)
	require.Equal(t, http.StatusMultiStatus, rec.Code)
	assert.Equal(t, apierrors.CodePartialSuccess, env.Code)
	assert.Equal(t, map[string]bool{"name": true, "category": false}, env.Results)
	assert.Equal(t, "Big Burger", env.Data["name"])
	assert.Equal(t, "main", env.Data["category"])

	rec, env = do(t, router, http.MethodPut, "/api/menu/food/1", `{"food": {"price": 0}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "0", env.Data["price"])

	rec, env = do(t, router, http.MethodPut, "/api/menu/food/1", `{"food": {}}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apierrors.CodeBadEntryData, env.Code)

	rec, _ = do(t, router, http.MethodPut, "/api/menu/food/42", `{"food": {"name": "Ghost"}}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddonLifecycle(t *testing.T) {
	router := newTestRouter(t)

	rec, env := do(t, router, http.MethodPost, "/api/menu/addon", `{"addon": {"name": "Cheese", "type": "topping", "price": "1.50"}}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/api/menu/addon/1", rec.Header().Get("Location"))
	assert.Equal(t, "topping", env.Data["type"])

	rec, env = do(t, router, http.MethodPut, "/api/menu/addon/1", `{"addon": {"price": "2.00"}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2", env.Data["price"])

	rec, _ = do(t, router, http.MethodDelete, "/api/menu/addon/1", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func seedOrder(t *testing.T, router *gin.Engine) {
	t.Helper()
	for _, body := range []string{
		`{"food": {"name": "Margherita", "category": "pizza", "price": "12.50", "size": "large"}}`,
		`{"food": {"name": "Salad", "category": "side", "price": "8.00"}}`,
	} {
		rec, _ := do(t, router, http.MethodPost, "/api/menu/food", body)
		require.Equal(t, http.StatusCreated, rec.Code)
	}
	rec, _ := do(t, router, http.MethodPost, "/api/menu/addon", `{"addon": {"name": "Cheese", "type": "topping", "price": "1.50"}}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec, _ = do(t, router, http.MethodPost, "/api/customer", `{"customer": {"name": "Ada", "phone": "555-0100", "address": {"city": "Toronto"}}}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/api/customer/1", rec.Header().Get("Location"))
}

func TestOrderLifecycle(t *testing.T) {
	router := newTestRouter(t)
	seedOrder(t, router)

	rec, env := do(t, router, http.MethodPost, "/api/customer/1/order",
		`{"order": {"payment_method": "card", "type": "delivery"}, "items": {"1": [1], "2": []}}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/api/order/1", rec.Header().Get("Location"))
	assert.Equal(t, "22", env.Data["order_price"])
	assert.EqualValues(t, 1, env.Data["customer_id"])
	require.Len(t, env.Data["order_items"], 2)

	rec, env = do(t, router, http.MethodGet, "/api/order/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "delivery", env.Data["order_type"])

	rec, env = do(t, router, http.MethodPut, "/api/order/1", `{"order": {"order_type": "pickup"}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pickup", env.Data["order_type"])

	rec, env = do(t, router, http.MethodDelete, "/api/order/1/item/2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "14", env.Data["order_price"])

	rec, _ = do(t, router, http.MethodDelete, "/api/order/1/item/2", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, router, http.MethodDelete, "/api/order/1", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec, env = do(t, router, http.MethodDelete, "/api/order/1", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apierrors.CodeEntryNotFound, env.Code)
}

func TestPlaceOrder_Failures(t *testing.T) {
	router := newTestRouter(t)
	seedOrder(t, router)

	rec, env := do(t, router, http.MethodPost, "/api/customer/9/order",
		`{"order": {"payment_method": "card", "type": "delivery"}, "items": {"1": []}}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apierrors.CodeCustomerNotFound, env.Code)

	rec, env = do(t, router, http.MethodPost, "/api/customer/1/order", `{"order": {"payment_method": "card", "type": "delivery"}}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apierrors.CodeMissingEntryData, env.Code)

	rec, env = do(t, router, http.MethodPost, "/api/customer/1/order",
		`{"order": {"payment_method": "card", "type": "delivery"}, "items": {"one": []}}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apierrors.CodeBadEntryData, env.Code)
}

func TestDeleteCustomer_CascadeFlag(t *testing.T) {
	router := newTestRouter(t)
	seedOrder(t, router)
	rec, _ := do(t, router, http.MethodPost, "/api/customer/1/order",
		`{"order": {"payment_method": "cash", "type": "pickup"}, "items": {"2": []}}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env := do(t, router, http.MethodDelete, "/api/customer/1?cascade=false", "")
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, apierrors.CodeMustDeleteOrdersFirst, env.Code)

	rec, _ = do(t, router, http.MethodDelete, "/api/customer/1?cascade=maybe", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, router, http.MethodDelete, "/api/customer/1", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec, _ = do(t, router, http.MethodGet, "/api/order/1", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateCustomer_Address(t *testing.T) {
	router := newTestRouter(t)
	seedOrder(t, router)

	rec, env := do(t, router, http.MethodPut, "/api/customer/1", `{"customer": {"phone": "555-0199", "address": {"street": "1 King St"}}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "555-0199", env.Data["phone"])
	address := env.Data["address"].(map[string]any)
	assert.Equal(t, "1 King St", address["street"])
	assert.Equal(t, "Toronto", address["city"])
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)
	rec, _ := do(t, router, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
}
