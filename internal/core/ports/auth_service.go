package ports

import (
	"context"
	"net/http"

	"github.com/99minutos/jobqueue-gateway/internal/core/domain"
)

// PasswordVerifier checks a Basic Authorization header against the
// credential store.
type PasswordVerifier interface {
	Verify(ctx context.Context, authorization string) (*domain.User, error)
}

// TokenIssuer mints a bearer token and makes it the user's only active one.
type TokenIssuer interface {
	Issue(ctx context.Context, user *domain.User) (*domain.TokenEnvelope, error)
}

// AuthorizeInput carries the request data the bearer check needs.
// HasPathUser is false when the request path names no user id.
type AuthorizeInput struct {
	Authorization string
	PathUserID    int64
	HasPathUser   bool
	Secure        bool
}

// TokenAuthorizer validates a bearer token and decides access to the path.
type TokenAuthorizer interface {
	Authorize(ctx context.Context, in AuthorizeInput) (*domain.SecurityContext, error)
}

// GatewayRequest is the transport-neutral view of an inbound request.
type GatewayRequest struct {
	Method string
	Path   string
	Header http.Header
	Secure bool
}

// Authentication is the Gateway's outcome. User is set only on the
// token-issuance path, where the issuer needs the verified record.
type Authentication struct {
	Context *domain.SecurityContext
	User    *domain.User
}

// Gateway authenticates and authorizes every inbound request. A nil
// Authentication with a nil error means the request needs no credentials.
type Gateway interface {
	Authenticate(ctx context.Context, req GatewayRequest) (*Authentication, error)
	IsLogin(method, path string) bool
}
