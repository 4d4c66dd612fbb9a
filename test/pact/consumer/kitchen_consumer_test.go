//go:build pact
// +build pact

package consumer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	pacttest "github.com/Apurer/go-gin-restaurant-api/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Code    int             `json:"code"`
	Data    json.RawMessage `json:"data"`
}

type foodPayload struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    string `json:"price"`
	Size     string `json:"size"`
}

type orderPayload struct {
	ID         int64  `json:"order_id"`
	CustomerID int64  `json:"customer_id"`
	Price      string `json:"order_price"`
	Items      []struct {
		FoodID int64 `json:"food_id"`
	} `json:"order_items"`
}

type apiError struct {
	status int
	code   int
	msg    string
}

func (e apiError) Error() string {
	return fmt.Sprintf("%s (status %d, code %d)", e.msg, e.status, e.code)
}

func TestKitchenDisplayContract(t *testing.T) {
	t.Helper()
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	example := pacttest.ExampleFood()
	foodMatcher := matchers.Map{
		"id":       matchers.Like(pacttest.ExistingFoodID),
		"name":     matchers.Like(example["name"]),
		"category": matchers.Like(example["category"]),
		"price":    matchers.Term(example["price"].(string), `^\d+(\.\d+)?$`),
		"size":     matchers.Like(example["size"]),
	}
	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")

	pact.AddInteraction().
		Given(pacttest.StateMenuBaseline).
		UponReceiving("a request to add a food").
		WithRequest("POST", "/api/menu/food", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(map[string]any{"food": example})
		}).
		WillRespondWith(http.StatusCreated, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.Header("Location", matchers.Term("/api/menu/food/1", `^/api/menu/food/\d+$`))
			b.JSONBody(matchers.Map{
				"success": matchers.Like(true),
				"code":    matchers.Like(0),
				"data":    foodMatcher,
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateFoodExists).
		UponReceiving("a request to fetch an existing food").
		WithRequest("GET", fmt.Sprintf("/api/menu/food/%d", pacttest.ExistingFoodID)).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"success": matchers.Like(true),
				"data":    foodMatcher,
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateFoodMissing).
		UponReceiving("a request for a missing food").
		WithRequest("GET", fmt.Sprintf("/api/menu/food/%d", pacttest.MissingFoodID)).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"success": matchers.Like(false),
				"code":    matchers.Like(4004),
				"message": matchers.Like("Food 404 not found"),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateOrderExists).
		UponReceiving("a request to fetch an order").
		WithRequest("GET", fmt.Sprintf("/api/order/%d", pacttest.ExistingOrderID)).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"success": matchers.Like(true),
				"data": matchers.Map{
					"order_id":       matchers.Like(pacttest.ExistingOrderID),
					"customer_id":    matchers.Like(pacttest.CustomerID),
					"payment_method": matchers.Like("card"),
					"order_type":     matchers.Like("delivery"),
					"order_price":    matchers.Term("12.5", `^\d+(\.\d+)?$`),
					"order_items": matchers.EachLike(matchers.Map{
						"food_id":          matchers.Like(pacttest.ExistingFoodID),
						"order_item_price": matchers.Term("12.5", `^\d+(\.\d+)?$`),
					}, 1),
				},
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newKitchenClient(config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var created foodPayload
		if err := client.do(ctx, http.MethodPost, "/api/menu/food", map[string]any{"food": example}, &created); err != nil {
			return fmt.Errorf("create food: %w", err)
		}
		if created.ID == 0 {
			return fmt.Errorf("expected created food ID to be set")
		}

		var fetched foodPayload
		if err := client.do(ctx, http.MethodGet, fmt.Sprintf("/api/menu/food/%d", pacttest.ExistingFoodID), nil, &fetched); err != nil {
			return fmt.Errorf("get food: %w", err)
		}
		if fetched.ID != pacttest.ExistingFoodID {
			return fmt.Errorf("expected food id %d, got %+v", pacttest.ExistingFoodID, fetched)
		}

		err := client.do(ctx, http.MethodGet, fmt.Sprintf("/api/menu/food/%d", pacttest.MissingFoodID), nil, nil)
		if apiErr, ok := err.(apiError); !ok || apiErr.status != http.StatusNotFound {
			return fmt.Errorf("expected 404 for food %d, got %v", pacttest.MissingFoodID, err)
		}

		var order orderPayload
		if err := client.do(ctx, http.MethodGet, fmt.Sprintf("/api/order/%d", pacttest.ExistingOrderID), nil, &order); err != nil {
			return fmt.Errorf("get order: %w", err)
		}
		if order.CustomerID != pacttest.CustomerID || len(order.Items) == 0 {
			return fmt.Errorf("unexpected order %+v", order)
		}
		return nil
	})
	require.NoError(t, err)
}

type kitchenClient struct {
	baseURL    string
	httpClient *http.Client
}

func newKitchenClient(config pactconsumer.MockServerConfig) *kitchenClient {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	client := &http.Client{Transport: transport, Timeout: 10 * time.Second}
	return &kitchenClient{
		baseURL:    fmt.Sprintf("http://%s:%d", host, config.Port),
		httpClient: client,
	}
}

func (c *kitchenClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	var env envelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		return err
	}
	if res.StatusCode >= http.StatusBadRequest {
		return apiError{status: res.StatusCode, code: env.Code, msg: env.Message}
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}
