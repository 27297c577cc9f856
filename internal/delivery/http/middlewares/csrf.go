package middlewares

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	CSRFFormField = "_csrf"
	CSRFCookie    = "_csrf"
)

// CSRF issues a token on safe requests and checks it on form posts. Forms
// send it in the hidden _csrf field, scripts in the X-CSRF-Token header.
func CSRF(cookieSecure bool) echo.MiddlewareFunc {
	return middleware.CSRFWithConfig(middleware.CSRFConfig{
		TokenLookup:    "header:" + echo.HeaderXCSRFToken + ",form:" + CSRFFormField,
		CookieName:     CSRFCookie,
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSecure:   cookieSecure,
		CookieSameSite: http.SameSiteStrictMode,
	})
}
