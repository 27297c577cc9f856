package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/RehanAthallahAzhar/tokohobby-shippings/internal/handlers"
	"github.com/RehanAthallahAzhar/tokohobby-shippings/internal/metrics"
)

// InitRoutes registers the back office pages behind csrf and any auth
// middlewares, plus the unauthenticated operational endpoints.
func InitRoutes(e *echo.Echo, shippingHandler *handlers.ShippingHandler, healthHandler *handlers.HealthHandler, csrf echo.MiddlewareFunc, authMiddlewares ...echo.MiddlewareFunc) {
	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/Shippings")
	})
	e.GET("/healthz", healthHandler.Check())
	e.GET("/metrics", metrics.Handler())

	shippings := e.Group("/Shippings")
	shippings.Use(authMiddlewares...)
	shippings.Use(csrf)
	{
		shippings.GET("", shippingHandler.Index())
		shippings.GET("/", shippingHandler.Index())
		shippings.GET("/Index", shippingHandler.Index())
		shippings.GET("/Details", shippingHandler.Details())
		shippings.GET("/Details/:orderId", shippingHandler.Details())
		shippings.GET("/Create", shippingHandler.CreateForm())
		shippings.POST("/Create", shippingHandler.Create())
		shippings.GET("/Edit", shippingHandler.EditForm())
		shippings.GET("/Edit/:orderId", shippingHandler.EditForm())
		shippings.POST("/Edit", shippingHandler.Edit())
		shippings.GET("/AddOrderItem", shippingHandler.AddOrderItem())
		shippings.GET("/Error", shippingHandler.Error())
	}
}
