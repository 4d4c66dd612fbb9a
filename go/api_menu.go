package restaurantserver

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/adapters/http/mapper"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/ports"
	apierrors "github.com/Apurer/go-gin-restaurant-api/internal/shared/errors"
)

// MenuAPI exposes foods and addons.
type MenuAPI struct {
	service   ports.Service
	responder *apierrors.Responder
}

// NewMenuAPI creates a MenuAPI backed by the restaurant service.
func NewMenuAPI(service ports.Service, responder *apierrors.Responder) MenuAPI {
	return MenuAPI{service: service, responder: responderOrDefault(responder)}
}

// Post /api/menu/food
// Adds a food to the menu
func (api *MenuAPI) CreateFood(c *gin.Context) {
	var req mapper.FoodRequest
	if !bindJSON(api.responder, c, &req) {
		return
	}
	if req.Food == nil {
		api.responder.Respond(c, apierrors.ErrMissingEntryData)
		return
	}
	input, err := mapper.ToCreateFoodInput(*req.Food)
	if err != nil {
		respondMapperError(api.responder, c, err)
		return
	}
	food, ok, err := api.service.CreateFood(c.Request.Context(), input)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	if !ok {
		api.responder.Respond(c, apierrors.ErrMissingFoodSize.WithMessagef("Food size is required for category %q", input.Category))
		return
	}
	c.Header("Location", fmt.Sprintf("/api/menu/food/%d", food.ID))
	api.responder.OK(c, http.StatusCreated, mapper.FromFood(food))
}

// Get /api/menu/food/:id
func (api *MenuAPI) GetFood(c *gin.Context) {
	id, ok := parseIDParam(api.responder, c, "id")
	if !ok {
		return
	}
	food, found, err := api.service.FindFood(c.Request.Context(), id)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	if !found {
		notFound(api.responder, c, "Food", id)
		return
	}
	api.responder.OK(c, http.StatusOK, mapper.FromFood(food))
}

// Put /api/menu/food/:id
// Applies every supplied field and reports which ones took effect
func (api *MenuAPI) UpdateFood(c *gin.Context) {
	id, ok := parseIDParam(api.responder, c, "id")
	if !ok {
		return
	}
	var req mapper.FoodRequest
	if !bindJSON(api.responder, c, &req) {
		return
	}
	if req.Food == nil {
		api.responder.Respond(c, apierrors.ErrMissingEntryData)
		return
	}
	food, results, err := api.service.UpdateFood(c.Request.Context(), id, mapper.ToFoodPatch(*req.Food))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	respondUpdated(api.responder, c, mapper.FromFood(food), results)
}

// Delete /api/menu/food/:id
func (api *MenuAPI) DeleteFood(c *gin.Context) {
	id, ok := parseIDParam(api.responder, c, "id")
	if !ok {
		return
	}
	deleted, err := api.service.DeleteFood(c.Request.Context(), id)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	if !deleted {
		notFound(api.responder, c, "Food", id)
		return
	}
	api.responder.NoContent(c)
}

// Post /api/menu/addon
// Adds an addon to the menu
func (api *MenuAPI) CreateAddon(c *gin.Context) {
	var req mapper.AddonRequest
	if !bindJSON(api.responder, c, &req) {
		return
	}
	if req.Addon == nil {
		api.responder.Respond(c, apierrors.ErrMissingEntryData)
		return
	}
	input, err := mapper.ToCreateAddonInput(*req.Addon)
	if err != nil {
		respondMapperError(api.responder, c, err)
		return
	}
	addon, err := api.service.CreateAddon(c.Request.Context(), input)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.Header("Location", fmt.Sprintf("/api/menu/addon/%d", addon.ID))
	api.responder.OK(c, http.StatusCreated, mapper.FromAddon(addon))
}

// Get /api/menu/addon/:id
func (api *MenuAPI) GetAddon(c *gin.Context) {
	id, ok := parseIDParam(api.responder, c, "id")
	if !ok {
		return
	}
	addon, found, err := api.service.FindAddon(c.Request.Context(), id)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	if !found {
		notFound(api.responder, c, "Addon", id)
		return
	}
	api.responder.OK(c, http.StatusOK, mapper.FromAddon(addon))
}

// Put /api/menu/addon/:id
func (api *MenuAPI) UpdateAddon(c *gin.Context) {
	id, ok := parseIDParam(api.responder, c, "id")
	if !ok {
		return
	}
	var req mapper.AddonRequest
	if !bindJSON(api.responder, c, &req) {
		return
	}
	if req.Addon == nil {
		api.responder.Respond(c, apierrors.ErrMissingEntryData)
		return
	}
	addon, results, err := api.service.UpdateAddon(c.Request.Context(), id, mapper.ToAddonPatch(*req.Addon))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	respondUpdated(api.responder, c, mapper.FromAddon(addon), results)
}

// Delete /api/menu/addon/:id
func (api *MenuAPI) DeleteAddon(c *gin.Context) {
	id, ok := parseIDParam(api.responder, c, "id")
	if !ok {
		return
	}
	deleted, err := api.service.DeleteAddon(c.Request.Context(), id)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	if !deleted {
		notFound(api.responder, c, "Addon", id)
		return
	}
	api.responder.NoContent(c)
}

func respondUpdated(r *apierrors.Responder, c *gin.Context, data any, results map[string]bool) {
	for _, applied := range results {
		if !applied {
			r.Partial(c, data, results)
			return
		}
	}
	r.OK(c, http.StatusOK, data)
}
