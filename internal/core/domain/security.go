package domain

import "context"

// Authentication schemes accepted in the Authorization header.
const (
	SchemeBasic  = "Basic"
	SchemeBearer = "Bearer"
)

// SecurityContext is the per-request identity built after a successful
// credential or token check. It lives for one request only.
type SecurityContext struct {
	Principal string
	UserID    int64
	Roles     RoleSet
	Scheme    string
	Secure    bool
}

// NewSecurityContext builds the context for an authenticated user record.
func NewSecurityContext(u *User, scheme string, secure bool) *SecurityContext {
	return &SecurityContext{
		Principal: u.Email,
		UserID:    u.ID,
		Roles:     u.Roles(),
		Scheme:    scheme,
		Secure:    secure,
	}
}

// IsUserInRole reports whether the principal holds role, by exact name.
func (s *SecurityContext) IsUserInRole(role string) bool {
	if s == nil {
		return false
	}
	return s.Roles.Has(Role(role))
}

type securityCtxKey struct{}

// ContextWithSecurity attaches sc to ctx.
func ContextWithSecurity(ctx context.Context, sc *SecurityContext) context.Context {
	return context.WithValue(ctx, securityCtxKey{}, sc)
}

// SecurityFromContext returns the SecurityContext attached to ctx, if any.
func SecurityFromContext(ctx context.Context) (*SecurityContext, bool) {
	sc, ok := ctx.Value(securityCtxKey{}).(*SecurityContext)
	return sc, ok && sc != nil
}
