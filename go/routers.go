package restaurantserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the handlers of every API.
type ApiHandleFunctions struct {
	MenuAPI     MenuAPI
	CustomerAPI CustomerAPI
	OrderAPI    OrderAPI
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions, middleware ...gin.HandlerFunc) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions, middleware...)
}

// NewRouterWithGinEngine adds the routes to an existing engine. Middleware is registered before the routes.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions, middleware ...gin.HandlerFunc) *gin.Engine {
	router.Use(middleware...)
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		router.Handle(route.Method, route.Pattern, route.HandlerFunc)
	}
	return router
}

// DefaultHandleFunc is the default handler for not yet implemented routes.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

// Health reports that the process is serving.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{"Health", http.MethodGet, "/health", Health},
		{"CreateFood", http.MethodPost, "/api/menu/food", handleFunctions.MenuAPI.CreateFood},
		{"GetFood", http.MethodGet, "/api/menu/food/:id", handleFunctions.MenuAPI.GetFood},
		{"UpdateFood", http.MethodPut, "/api/menu/food/:id", handleFunctions.MenuAPI.UpdateFood},
		{"DeleteFood", http.MethodDelete, "/api/menu/food/:id", handleFunctions.MenuAPI.DeleteFood},
		{"CreateAddon", http.MethodPost, "/api/menu/addon", handleFunctions.MenuAPI.CreateAddon},
		{"GetAddon", http.MethodGet, "/api/menu/addon/:id", handleFunctions.MenuAPI.GetAddon},
		{"UpdateAddon", http.MethodPut, "/api/menu/addon/:id", handleFunctions.MenuAPI.UpdateAddon},
		{"DeleteAddon", http.MethodDelete, "/api/menu/addon/:id", handleFunctions.MenuAPI.DeleteAddon},
		{"CreateCustomer", http.MethodPost, "/api/customer", handleFunctions.CustomerAPI.CreateCustomer},
		{"GetCustomer", http.MethodGet, "/api/customer/:id", handleFunctions.CustomerAPI.GetCustomer},
		{"UpdateCustomer", http.MethodPut, "/api/customer/:id", handleFunctions.CustomerAPI.UpdateCustomer},
		{"DeleteCustomer", http.MethodDelete, "/api/customer/:id", handleFunctions.CustomerAPI.DeleteCustomer},
		{"PlaceOrder", http.MethodPost, "/api/customer/:id/order", handleFunctions.CustomerAPI.PlaceOrder},
		{"GetOrder", http.MethodGet, "/api/order/:id", handleFunctions.OrderAPI.GetOrder},
		{"UpdateOrder", http.MethodPut, "/api/order/:id", handleFunctions.OrderAPI.UpdateOrder},
		{"DeleteOrder", http.MethodDelete, "/api/order/:id", handleFunctions.OrderAPI.DeleteOrder},
		{"DeleteOrderItem", http.MethodDelete, "/api/order/:id/item/:item_id", handleFunctions.OrderAPI.DeleteOrderItem},
	}
}
