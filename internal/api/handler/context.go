package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/99minutos/jobqueue-gateway/internal/api/middleware"
	"github.com/99minutos/jobqueue-gateway/internal/core/domain"
)

// errorBody documents the error envelope rendered by the HTTP error handler.
type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// currentUser returns the record verified by the gateway on the login path.
// Its absence means the route was reached without Basic authentication.
func currentUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.ContextKeyUser).(*domain.User)
	if user == nil {
		return nil, domain.CredentialsRequired()
	}
	return user, nil
}
