package middlewares

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/RehanAthallahAzhar/tokohobby-shippings/internal/pkg/errors"
	"github.com/RehanAthallahAzhar/tokohobby-shippings/internal/pkg/grpc/account"
)

const testSecret = "s3cret"

type stubValidator struct {
	info account.TokenInfo
	err  error
	got  string
}

func (s *stubValidator) ValidateToken(ctx context.Context, token string) (account.TokenInfo, error) {
	s.got = token
	return s.info, s.err
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func signedToken(t *testing.T, audience string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"aud": audience,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func serve(mw echo.MiddlewareFunc, req *http.Request) (*httptest.ResponseRecorder, echo.Context, error) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen echo.Context
	handler := mw(func(c echo.Context) error {
		seen = c
		return c.NoContent(http.StatusNoContent)
	})
	err := handler(c)

	return rec, seen, err
}

// statusOf mirrors how the HTTP error handler picks a status code.
func statusOf(err error) int {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return apperrors.StatusCode(err)
}

func TestAuthMiddlewareAcceptsBearerHeader(t *testing.T) {
	validator := &stubValidator{info: account.TokenInfo{Valid: true, UserID: "u-1", Role: "admin"}}
	token := signedToken(t, "backoffice")

	req := httptest.NewRequest(http.MethodGet, "/Shippings", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)

	rec, c, err := serve(AuthMiddleware(validator, testSecret, "backoffice", quietLogger()), req)

	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, token, validator.got)
	require.NotNil(t, c)
	assert.Equal(t, "u-1", c.Get(ContextKeyUserID))
	assert.Equal(t, "admin", c.Get(ContextKeyRole))
}

func TestAuthMiddlewareAcceptsCookie(t *testing.T) {
	validator := &stubValidator{info: account.TokenInfo{Valid: true, UserID: "u-2", Role: "staff"}}

	req := httptest.NewRequest(http.MethodGet, "/Shippings", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "opaque"})

	rec, _, err := serve(AuthMiddleware(validator, testSecret, "", quietLogger()), req)

	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "opaque", validator.got)
}

func TestAuthMiddlewareRejects(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		validator *stubValidator
		audience  string
		want      int
	}{
		{name: "missing token", validator: &stubValidator{}, want: http.StatusUnauthorized},
		{name: "not a bearer token", header: "Basic abc", validator: &stubValidator{}, want: http.StatusUnauthorized},
		{name: "account service says no", header: "Bearer x", validator: &stubValidator{info: account.TokenInfo{Valid: false, ErrorMessage: "expired"}}, want: http.StatusUnauthorized},
		{name: "account service down", header: "Bearer x", validator: &stubValidator{err: errors.New("unavailable")}, want: http.StatusInternalServerError},
		{name: "wrong audience", header: "Bearer " + signedToken(t, "storefront"), validator: &stubValidator{info: account.TokenInfo{Valid: true}}, audience: "backoffice", want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/Shippings", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}

			rec, c, err := serve(AuthMiddleware(tt.validator, testSecret, tt.audience, quietLogger()), req)

			require.Error(t, err)
			assert.Equal(t, tt.want, statusOf(err))
			assert.Nil(t, c)
			assert.Zero(t, rec.Body.Len(), "response is left to the error handler")
		})
	}
}

func TestRequireRoles(t *testing.T) {
	tests := []struct {
		name string
		role interface{}
		want int
	}{
		{name: "allowed", role: "staff", want: http.StatusNoContent},
		{name: "forbidden", role: "customer", want: http.StatusForbidden},
		{name: "no session", role: nil, want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/Shippings", nil), rec)
			if tt.role != nil {
				c.Set(ContextKeyRole, tt.role)
			}

			err := RequireRoles("admin", "staff")(func(c echo.Context) error {
				return c.NoContent(http.StatusNoContent)
			})(c)

			if tt.want == http.StatusNoContent {
				require.NoError(t, err)
				assert.Equal(t, tt.want, rec.Code)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.want, statusOf(err))
			assert.Zero(t, rec.Body.Len())
		})
	}
}
