package restaurantserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/adapters/http/mapper"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/ports"
	apierrors "github.com/Apurer/go-gin-restaurant-api/internal/shared/errors"
)

// OrderAPI exposes placed orders.
type OrderAPI struct {
	service   ports.Service
	responder *apierrors.Responder
}

// NewOrderAPI creates an OrderAPI backed by the restaurant service.
func NewOrderAPI(service ports.Service, responder *apierrors.Responder) OrderAPI {
	return OrderAPI{service: service, responder: responderOrDefault(responder)}
}

// Get /api/order/:id
func (api *OrderAPI) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(api.responder, c, "id")
	if !ok {
		return
	}
	order, found, err := api.service.FindOrder(c.Request.Context(), id)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	if !found {
		notFound(api.responder, c, "Order", id)
		return
	}
	api.responder.OK(c, http.StatusOK, mapper.FromOrderView(order))
}

// Put /api/order/:id
func (api *OrderAPI) UpdateOrder(c *gin.Context) {
	id, ok := parseIDParam(api.responder, c, "id")
	if !ok {
		return
	}
	var req mapper.OrderRequest
	if !bindJSON(api.responder, c, &req) {
		return
	}
	if req.Order == nil {
		api.responder.Respond(c, apierrors.ErrMissingEntryData)
		return
	}
	changes, err := mapper.ToOrderChanges(*req.Order)
	if err != nil {
		respondMapperError(api.responder, c, err)
		return
	}
	order, results, err := api.service.UpdateOrder(c.Request.Context(), id, changes)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	respondUpdated(api.responder, c, mapper.FromOrderView(order), results)
}

// Delete /api/order/:id
func (api *OrderAPI) DeleteOrder(c *gin.Context) {
	id, ok := parseIDParam(api.responder, c, "id")
	if !ok {
		return
	}
	if err := api.service.DeleteOrder(c.Request.Context(), id); err != nil {
		api.responder.RespondError(c, err)
		return
	}
	api.responder.NoContent(c)
}

// Delete /api/order/:id/item/:item_id
// Removes one item and returns the re-derived order total
func (api *OrderAPI) DeleteOrderItem(c *gin.Context) {
	id, ok := parseIDParam(api.responder, c, "id")
	if !ok {
		return
	}
	itemID, ok := parseIDParam(api.responder, c, "item_id")
	if !ok {
		return
	}
	total, deleted, err := api.service.DeleteOrderItem(c.Request.Context(), id, itemID)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	if !deleted {
		api.responder.Respond(c, apierrors.ErrEntityNotFound.WithMessagef("Order item %d of order %d not found", itemID, id))
		return
	}
	api.responder.OK(c, http.StatusOK, mapper.OrderTotal{OrderID: id, Price: total})
}
