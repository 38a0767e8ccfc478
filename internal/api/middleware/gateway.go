package middleware

import (
	"errors"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/jobqueue-gateway/internal/api/metrics"
	"github.com/99minutos/jobqueue-gateway/internal/core/domain"
	"github.com/99minutos/jobqueue-gateway/internal/core/ports"
)

// Echo context keys set by Gateway.
const (
	ContextKeySecurity = "security"
	ContextKeyUser     = "auth.user"
)

const schemeNone = "none"

// Gateway runs every request through gw before routing. On success the
// security context is stored under ContextKeySecurity and in the request
// context; on the login path the verified user is also stored under
// ContextKeyUser. Rejections are returned unchanged for the HTTP error
// handler to render.
func Gateway(gw ports.Gateway, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			start := time.Now()

			auth, err := gw.Authenticate(req.Context(), ports.GatewayRequest{
				Method: req.Method,
				Path:   req.URL.Path,
				Header: req.Header,
				Secure: req.TLS != nil,
			})

			scheme := decisionScheme(gw, req.Method, req.URL.Path, auth, err)
			metrics.AuthDecisionDuration.WithLabelValues(scheme).Observe(time.Since(start).Seconds())

			if err != nil {
				var authErr *domain.AuthError
				if !errors.As(err, &authErr) {
					metrics.AuthDecisionsTotal.WithLabelValues(scheme, metrics.OutcomeError).Inc()
					log.Error().Err(err).
						Str("method", req.Method).
						Str("path", req.URL.Path).
						Msg("authentication failed")
					return err
				}

				outcome := metrics.OutcomeDenied
				if !authErr.Denied() {
					outcome = metrics.OutcomeForbidden
				}
				metrics.AuthDecisionsTotal.WithLabelValues(scheme, outcome).Inc()

				ev := log.Warn().
					Str("code", authErr.Code()).
					Str("method", req.Method).
					Str("path", req.URL.Path)
				if authErr.Cause != nil {
					ev = ev.AnErr("cause", authErr.Cause)
				}
				ev.Msg("request rejected")
				return err
			}

			if auth == nil {
				metrics.AuthDecisionsTotal.WithLabelValues(scheme, metrics.OutcomeBypassed).Inc()
				return next(c)
			}

			metrics.AuthDecisionsTotal.WithLabelValues(scheme, metrics.OutcomeGranted).Inc()
			log.Debug().
				Str("principal", auth.Context.Principal).
				Strs("roles", auth.Context.Roles.Names()).
				Str("scheme", auth.Context.Scheme).
				Msg("request authorized")
			c.Set(ContextKeySecurity, auth.Context)
			if auth.User != nil {
				c.Set(ContextKeyUser, auth.User)
			}
			c.SetRequest(req.WithContext(domain.ContextWithSecurity(req.Context(), auth.Context)))

			return next(c)
		}
	}
}

func decisionScheme(gw ports.Gateway, method, path string, auth *ports.Authentication, err error) string {
	var authErr *domain.AuthError
	switch {
	case errors.As(err, &authErr):
		return authErr.Scheme
	case auth != nil && auth.Context != nil:
		return auth.Context.Scheme
	case err == nil:
		return schemeNone
	case gw.IsLogin(method, path):
		return domain.SchemeBasic
	default:
		return domain.SchemeBearer
	}
}
