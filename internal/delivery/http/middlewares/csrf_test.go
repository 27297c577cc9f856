package middlewares

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCSRFServer() *echo.Echo {
	e := echo.New()
	e.Use(CSRF(false))
	e.GET("/form", func(c echo.Context) error {
		return c.String(http.StatusOK, c.Get("csrf").(string))
	})
	e.POST("/form", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})
	return e
}

func TestCSRFRoundTrip(t *testing.T) {
	e := newCSRFServer()

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/form", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	token := rec.Body.String()
	require.NotEmpty(t, token)
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	form := url.Values{CSRFFormField: {token}}
	req := httptest.NewRequest(http.MethodPost, "/form", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	req.AddCookie(&http.Cookie{Name: CSRFCookie, Value: token})

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCSRFRejectsPostWithoutToken(t *testing.T) {
	e := newCSRFServer()

	req := httptest.NewRequest(http.MethodPost, "/form", strings.NewReader("company_name=Acme"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.NotEqual(t, http.StatusNoContent, rec.Code)
}

func TestCSRFRejectsMismatchedToken(t *testing.T) {
	e := newCSRFServer()

	form := url.Values{CSRFFormField: {"forged"}}
	req := httptest.NewRequest(http.MethodPost, "/form", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	req.AddCookie(&http.Cookie{Name: CSRFCookie, Value: "genuine"})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
