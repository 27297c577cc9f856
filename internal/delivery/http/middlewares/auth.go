package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	apperrors "github.com/RehanAthallahAzhar/tokohobby-shippings/internal/pkg/errors"
	"github.com/RehanAthallahAzhar/tokohobby-shippings/internal/pkg/grpc/account"
)

const (
	ContextKeyUserID   = "userID"
	ContextKeyUsername = "username"
	ContextKeyRole     = "role"

	// AccessTokenCookie carries the bearer token for browser sessions.
	AccessTokenCookie = "access_token"
)

// TokenValidator is implemented by account.AuthClient.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (account.TokenInfo, error)
}

// RequireRoles lets the request through only for the given roles. Like
// AuthMiddleware it returns failures as errors and leaves the response to
// the HTTP error handler.
func RequireRoles(allowedRoles ...string) echo.MiddlewareFunc {
	roleSet := make(map[string]struct{})
	for _, r := range allowedRoles {
		roleSet[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(ContextKeyRole).(string)
			if !ok {
				return apperrors.ErrInvalidUserSession
			}

			if _, allowed := roleSet[role]; !allowed {
				return echo.NewHTTPError(http.StatusForbidden, "Access denied")
			}

			return next(c)
		}
	}
}

// AuthMiddleware checks the bearer token with the account service and
// stores the session claims on the context.
func AuthMiddleware(authClient TokenValidator, jwtSecret string, audience string, log *logrus.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, ok := bearerToken(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authorization token not found")
			}

			// check token via rpc
			info, err := authClient.ValidateToken(c.Request().Context(), tokenString)
			if err != nil {
				log.WithError(err).Error("Token validation against account service failed")
				return echo.NewHTTPError(http.StatusInternalServerError, "Server error during token validation").SetInternal(err)
			}

			if !info.Valid {
				msg := info.ErrorMessage
				if msg == "" {
					msg = "Invalid token"
				}
				return echo.NewHTTPError(http.StatusUnauthorized, msg)
			}

			// check audience
			if audience != "" {
				token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
					return []byte(jwtSecret), nil
				}, jwt.WithAudience(audience), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

				if err != nil || !token.Valid {
					log.Warnf("Invalid audience or signature check locally: %v", err)
					return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token audience")
				}
			}

			c.Set(ContextKeyUserID, info.UserID)
			c.Set(ContextKeyUsername, info.Username)
			c.Set(ContextKeyRole, info.Role)

			return next(c)
		}
	}
}

// bearerToken reads the token from the Authorization header, falling back to
// the access token cookie set by the login page.
func bearerToken(c echo.Context) (string, bool) {
	if authHeader := c.Request().Header.Get(echo.HeaderAuthorization); authHeader != "" {
		if len(authHeader) > 7 && strings.HasPrefix(authHeader, "Bearer ") {
			return authHeader[7:], true
		}
		return "", false
	}

	cookie, err := c.Cookie(AccessTokenCookie)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	return cookie.Value, true
}
