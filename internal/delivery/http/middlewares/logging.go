package middlewares

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	apperrors "github.com/RehanAthallahAzhar/tokohobby-shippings/internal/pkg/errors"
)

func LoggingMiddleware(log *logrus.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogError:     true,
		LogLatency:   true,
		LogMethod:    true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogUserAgent: true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			status := v.Status
			if v.Error != nil {
				status = apperrors.StatusCode(v.Error)
				if he, ok := v.Error.(*echo.HTTPError); ok {
					status = he.Code
				}
			}

			entry := log.WithFields(logrus.Fields{
				"request_id": v.RequestID,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     status,
				"latency":    v.Latency.String(),
				"ip":         v.RemoteIP,
				"user_agent": v.UserAgent,
			})

			if userID, ok := c.Get(ContextKeyUserID).(string); ok && userID != "" {
				entry = entry.WithField("user_id", userID)
			}

			switch {
			case status >= 500:
				entry.WithError(v.Error).Error("request")
			case status >= 400:
				entry.Warn("request")
			default:
				entry.Info("request")
			}

			return nil
		},
	})
}
