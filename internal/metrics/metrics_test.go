package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareCountsRequests(t *testing.T) {
	e := echo.New()
	e.Use(Middleware())
	e.GET("/Shippings", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/Shippings", "200"))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/Shippings", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/Shippings", "200"))
	assert.Equal(t, before+1, after)
}

func TestRecordShippingMutation(t *testing.T) {
	before := testutil.ToFloat64(shippingMutationsTotal.WithLabelValues("create"))

	RecordShippingMutation("create")

	assert.Equal(t, before+1, testutil.ToFloat64(shippingMutationsTotal.WithLabelValues("create")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	RecordCacheLookup(true)

	e := echo.New()
	e.GET("/metrics", Handler())

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "backoffice_cache_lookups_total")
}
