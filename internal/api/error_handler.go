package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/jobqueue-gateway/internal/core/domain"
)

const realm = "jobqueue"

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Renders authentication failures as 401 with a WWW-Authenticate challenge
//     naming the expected scheme, and authorization failures as 403.
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var authErr *domain.AuthError
		if errors.As(err, &authErr) {
			code := http.StatusForbidden
			if authErr.Denied() {
				code = http.StatusUnauthorized
				c.Response().Header().Set(echo.HeaderWWWAuthenticate,
					fmt.Sprintf("%s realm=%q", authErr.Scheme, realm))
			}
			_ = c.JSON(code, errorResponse{Error: authErr.Reason, Code: authErr.Code()})
			return
		}

		code, body := resolveError(err, log, c)
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrJobNotFound):
		return http.StatusNotFound, errorResponse{Error: "job not found", Code: "job_not_found"}
	case errors.Is(err, domain.ErrUnknownTarget):
		return http.StatusUnprocessableEntity, errorResponse{Error: "target user not found", Code: "unknown_target"}
	}

	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{
			Error: fmt.Sprintf("%v", he.Message),
			Code:  codeForStatus(he.Code),
		}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error", Code: "internal"}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusMethodNotAllowed:
		return "method_not_allowed"
	case http.StatusUnprocessableEntity:
		return "unprocessable"
	}
	if status >= http.StatusInternalServerError {
		return "internal"
	}
	return "error"
}
