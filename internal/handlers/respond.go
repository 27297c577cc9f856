package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/RehanAthallahAzhar/tokohobby-shippings/internal/models"
	apperrors "github.com/RehanAthallahAzhar/tokohobby-shippings/internal/pkg/errors"
)

const (
	msgGenericError     = "An error occurred while processing your request."
	msgShippingNotFound = "The requested shipping could not be found."
)

// HTTPErrorHandler turns handler errors into the error page, or into a JSON
// body for clients that ask for one.
func HTTPErrorHandler(log *logrus.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, message := describeError(err)
		requestID := getRequestID(c)

		entry := log.WithFields(logrus.Fields{
			"request_id": requestID,
			"status":     status,
			"uri":        c.Request().RequestURI,
		})
		if status >= http.StatusInternalServerError {
			entry.WithError(err).Error("Unhandled error")
		} else {
			entry.WithError(err).Debug("Request failed")
		}

		var respErr error
		switch {
		case c.Request().Method == http.MethodHead:
			respErr = c.NoContent(status)
		case wantsJSON(c):
			respErr = c.JSON(status, models.ErrorResponse{Error: message, RequestID: requestID})
		default:
			respErr = c.Render(status, viewError, models.ErrorPage{
				Status:    status,
				Message:   message,
				RequestID: requestID,
			})
		}

		if respErr != nil {
			log.WithError(respErr).Error("Failed to write error response")
			if !c.Response().Committed {
				_ = c.String(status, message)
			}
		}
	}
}

func describeError(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprint(he.Message)
	}

	status := apperrors.StatusCode(err)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return status, msgShippingNotFound
	case errors.Is(err, apperrors.ErrNoProductsAvailable),
		errors.Is(err, apperrors.ErrInvalidRequestPayload),
		errors.Is(err, apperrors.ErrInvalidUserSession):
		return status, err.Error()
	case status < http.StatusInternalServerError:
		return status, http.StatusText(status)
	default:
		return status, msgGenericError
	}
}

func wantsJSON(c echo.Context) bool {
	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}
