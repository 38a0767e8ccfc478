package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/jobqueue-gateway/internal/api/metrics"
	"github.com/99minutos/jobqueue-gateway/internal/core/ports"
)

// AuthHandler serves the token-issuance endpoint. Credentials are checked by
// the gateway middleware before the handler runs.
type AuthHandler struct {
	issuer ports.TokenIssuer
}

func NewAuthHandler(issuer ports.TokenIssuer) *AuthHandler {
	return &AuthHandler{issuer: issuer}
}

// Token issues a bearer token for the Basic-authenticated caller and makes it
// the caller's only active token.
//
// @Summary      Get a JSON Web Token
// @Tags         auth
// @Produce      json
// @Security     BasicAuth
// @Success      200  {object}  domain.TokenEnvelope
// @Failure      401  {object}  errorBody
// @Failure      500  {object}  errorBody
// @Router       /jwt [get]
func (h *AuthHandler) Token(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	envelope, err := h.issuer.Issue(c.Request().Context(), user)
	if err != nil {
		return err
	}

	metrics.TokensIssuedTotal.Inc()
	return c.JSON(http.StatusOK, envelope)
}
