package helpers

import (
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/RehanAthallahAzhar/tokohobby-shippings/internal/pkg/errors"
)

// GenerateNewID returns the identifier given to a new shipping.
func GenerateNewID() string {
	return uuid.New().String()
}

// GetFromPathParam reads key from the path, falling back to the query string
// so that both /Details/abc and /Details?orderId=abc resolve.
func GetFromPathParam(c echo.Context, key string) (string, error) {
	val := strings.TrimSpace(c.Param(key))
	if val == "" {
		val = strings.TrimSpace(c.QueryParam(key))
	}
	if val == "" {
		return "", errors.ErrInvalidRequestPayload
	}

	return val, nil
}

// ToSet collects the non-empty values into a lookup set.
func ToSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}
