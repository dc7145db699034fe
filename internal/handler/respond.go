package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "github.com/eskalate/jobboard/internal/errors"
)

// Envelope is the shared response shape for every endpoint.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Object  interface{} `json:"object"`
	Errors  []string    `json:"errors"`
}

// PagedEnvelope extends Envelope for list endpoints.
type PagedEnvelope struct {
	Envelope
	PageNumber int   `json:"pageNumber"`
	PageSize   int   `json:"pageSize"`
	TotalSize  int64 `json:"totalSize"`
}

func respond(c echo.Context, status int, message string, object interface{}) error {
	return c.JSON(status, Envelope{Success: true, Message: message, Object: object})
}

func respondPage(c echo.Context, message string, object interface{}, page, size int, total int64) error {
	return c.JSON(http.StatusOK, PagedEnvelope{
		Envelope:   Envelope{Success: true, Message: message, Object: object},
		PageNumber: page,
		PageSize:   size,
		TotalSize:  total,
	})
}

// HTTPErrorHandler renders every error through the shared envelope. Domain
// errors keep their message and status; anything unexpected becomes a 500
// with the detail logged rather than surfaced.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		message := http.StatusText(echoErr.Code)
		if m, ok := echoErr.Message.(string); ok {
			message = m
		}
		_ = c.JSON(echoErr.Code, Envelope{Success: false, Message: message, Errors: []string{message}})
		return
	}

	httpErr := apperrors.MapErrorToHTTP(err)
	if httpErr.StatusCode == http.StatusInternalServerError {
		c.Logger().Error(err)
	}
	_ = c.JSON(httpErr.StatusCode, Envelope{
		Success: false,
		Message: httpErr.Message,
		Errors:  []string{httpErr.Code},
	})
}
