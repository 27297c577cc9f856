package helpers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RehanAthallahAzhar/tokohobby-shippings/internal/pkg/errors"
)

func TestGetFromPathParam(t *testing.T) {
	e := echo.New()

	t.Run("path wins", func(t *testing.T) {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/Shippings/Details/abc?orderId=xyz", nil), httptest.NewRecorder())
		c.SetParamNames("orderId")
		c.SetParamValues("abc")

		got, err := GetFromPathParam(c, "orderId")
		require.NoError(t, err)
		assert.Equal(t, "abc", got)
	})

	t.Run("query fallback", func(t *testing.T) {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/Shippings/Details?orderId=xyz", nil), httptest.NewRecorder())

		got, err := GetFromPathParam(c, "orderId")
		require.NoError(t, err)
		assert.Equal(t, "xyz", got)
	})

	t.Run("missing", func(t *testing.T) {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/Shippings/Details", nil), httptest.NewRecorder())

		_, err := GetFromPathParam(c, "orderId")
		assert.ErrorIs(t, err, errors.ErrInvalidRequestPayload)
	})
}

func TestToSet(t *testing.T) {
	set := ToSet([]string{"a", " b ", "", "a"})

	assert.Len(t, set, 2)
	assert.Contains(t, set, "a")
	assert.Contains(t, set, "b")
}

func TestGenerateNewID(t *testing.T) {
	_, err := uuid.Parse(GenerateNewID())
	assert.NoError(t, err)
}
