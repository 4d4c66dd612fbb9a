package restaurantserver

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/adapters/http/mapper"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/application/types"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/ports"
	apierrors "github.com/Apurer/go-gin-restaurant-api/internal/shared/errors"
)

// IdempotencyKeyHeader lets clients retry order placement without creating duplicates.
const IdempotencyKeyHeader = "Idempotency-Key"

// CustomerAPI exposes customers and order placement.
type CustomerAPI struct {
	service   ports.Service
	workflows ports.OrderWorkflows
	responder *apierrors.Responder
}

// NewCustomerAPI creates a CustomerAPI. Orders go through workflows when it is set.
func NewCustomerAPI(service ports.Service, workflows ports.OrderWorkflows, responder *apierrors.Responder) CustomerAPI {
	return CustomerAPI{service: service, workflows: workflows, responder: responderOrDefault(responder)}
}

// Post /api/customer
func (api *CustomerAPI) CreateCustomer(c *gin.Context) {
	var req mapper.CustomerRequest
	if !bindJSON(api.responder, c, &req) {
		return
	}
	if req.Customer == nil {
		api.responder.Respond(c, apierrors.ErrMissingEntryData)
		return
	}
	input, err := mapper.ToCreateCustomerInput(*req.Customer)
	if err != nil {
		respondMapperError(api.responder, c, err)
		return
	}
	customer, err := api.service.CreateCustomer(c.Request.Context(), input)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.Header("Location", fmt.Sprintf("/api/customer/%d", customer.ID))
	api.responder.OK(c, http.StatusCreated, mapper.FromCustomer(customer))
}

// Get /api/customer/:id
func (api *CustomerAPI) GetCustomer(c *gin.Context) {
	id, ok := parseIDParam(api.responder, c, "id")
	if !ok {
		return
	}
	customer, found, err := api.service.FindCustomer(c.Request.Context(), id)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	if !found {
		notFound(api.responder, c, "Customer", id)
		return
	}
	api.responder.OK(c, http.StatusOK, mapper.FromCustomer(customer))
}

// Put /api/customer/:id
func (api *CustomerAPI) UpdateCustomer(c *gin.Context) {
	id, ok := parseIDParam(api.responder, c, "id")
	if !ok {
		return
	}
	var req mapper.CustomerRequest
	if !bindJSON(api.responder, c, &req) {
		return
	}
	if req.Customer == nil {
		api.responder.Respond(c, apierrors.ErrMissingEntryData)
		return
	}
	customer, results, err := api.service.UpdateCustomer(c.Request.Context(), id, mapper.ToCustomerPatch(*req.Customer))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	respondUpdated(api.responder, c, mapper.FromCustomer(customer), results)
}

// Delete /api/customer/:id
// Orders of the customer are removed too unless cascade=false is passed
func (api *CustomerAPI) DeleteCustomer(c *gin.Context) {
	id, ok := parseIDParam(api.responder, c, "id")
	if !ok {
		return
	}
	cascade, err := strconv.ParseBool(strings.TrimSpace(c.DefaultQuery("cascade", "true")))
	if err != nil {
		api.responder.Respond(c, apierrors.ErrBadRequest.WithMessage("cascade must be a boolean"))
		return
	}
	deleted, err := api.service.DeleteCustomer(c.Request.Context(), id, cascade)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	if !deleted {
		notFound(api.responder, c, "Customer", id)
		return
	}
	api.responder.NoContent(c)
}

// Post /api/customer/:id/order
// Places an order for the customer
func (api *CustomerAPI) PlaceOrder(c *gin.Context) {
	id, ok := parseIDParam(api.responder, c, "id")
	if !ok {
		return
	}
	var req mapper.OrderRequest
	if !bindJSON(api.responder, c, &req) {
		return
	}
	input, err := mapper.ToPlaceOrderInput(id, req)
	if err != nil {
		respondMapperError(api.responder, c, err)
		return
	}
	input.IdempotencyKey = strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
	order, err := api.placeOrder(c.Request.Context(), input)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.Header("Location", fmt.Sprintf("/api/order/%d", order.ID))
	api.responder.OK(c, http.StatusCreated, mapper.FromOrderView(order))
}

func (api *CustomerAPI) placeOrder(ctx context.Context, input types.PlaceOrderInput) (*types.OrderView, error) {
	if api.workflows != nil {
		return api.workflows.PlaceOrder(ctx, input)
	}
	return api.service.CreateOrder(ctx, input)
}
