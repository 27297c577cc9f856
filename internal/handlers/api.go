package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	viewIndex     = "shippings/index"
	viewDetails   = "shippings/details"
	viewCreate    = "shippings/create"
	viewEdit      = "shippings/edit"
	viewOrderLine = "shippings/order_line"
	viewError     = "error"

	routeIndex   = "/Shippings"
	routeDetails = "/Shippings/Details/"
)

// ---- HELPERS -----

// getCSRFToken returns the token the CSRF middleware stored for this request.
func getCSRFToken(c echo.Context) string {
	if val := c.Get(middleware.DefaultCSRFConfig.ContextKey); val != nil {
		if token, ok := val.(string); ok {
			return token
		}
	}
	return ""
}

func getRequestID(c echo.Context) string {
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}

// mergeErrors copies every entry of extra into dst unless dst already holds
// a message for that field.
func mergeErrors(dst, extra map[string]string) map[string]string {
	if dst == nil {
		dst = make(map[string]string, len(extra))
	}
	for field, msg := range extra {
		if _, exists := dst[field]; !exists {
			dst[field] = msg
		}
	}
	return dst
}
