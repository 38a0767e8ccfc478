package domain

import "errors"

// Rejection kinds. Match them with errors.Is; the concrete error returned by
// the auth services is always a fresh *AuthError wrapping one of these.
var (
	ErrCredentialsRequired = errors.New("credentials required")
	ErrTokenRequired       = errors.New("token required")
	ErrSchemeRequired      = errors.New("scheme required")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrExpiredToken        = errors.New("expired token")
	ErrInvalidToken        = errors.New("invalid token")
	ErrForbidden           = errors.New("access forbidden")
)

// Store errors.
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrJobNotFound   = errors.New("job not found")
	ErrUnknownTarget = errors.New("target user not found")
)

var errorCodes = map[error]string{
	ErrCredentialsRequired: "credentials_required",
	ErrTokenRequired:       "token_required",
	ErrSchemeRequired:      "scheme_required",
	ErrInvalidCredentials:  "invalid_credentials",
	ErrExpiredToken:        "expired_token",
	ErrInvalidToken:        "invalid_token",
	ErrForbidden:           "forbidden",
}

// AuthError is a request rejection. Reason is safe to show to the caller;
// Cause is kept for logs only.
type AuthError struct {
	Kind   error
	Scheme string
	Reason string
	Cause  error
}

func (e *AuthError) Error() string {
	return e.Reason
}

// Unwrap exposes both the kind and the underlying cause to errors.Is/As.
func (e *AuthError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// Code returns the stable machine-readable code of the rejection kind.
func (e *AuthError) Code() string {
	return errorCodes[e.Kind]
}

// Denied reports whether the rejection is an authentication failure
// (as opposed to an authorization failure).
func (e *AuthError) Denied() bool {
	return e.Kind != ErrForbidden
}

func newAuthError(kind error, scheme, reason string, cause error) *AuthError {
	return &AuthError{Kind: kind, Scheme: scheme, Reason: reason, Cause: cause}
}

// CredentialsRequired: no Authorization header on the token-issuance path.
func CredentialsRequired() *AuthError {
	return newAuthError(ErrCredentialsRequired, SchemeBasic, "User credentials are required.", nil)
}

// BasicSchemeRequired: the token-issuance path was called without Basic.
func BasicSchemeRequired() *AuthError {
	return newAuthError(ErrSchemeRequired, SchemeBasic,
		"Basic Authentication scheme is required to get the JSON Web Token(JWT).", nil)
}

// InvalidCredentials: email/password did not match a stored record.
func InvalidCredentials(cause error) *AuthError {
	return newAuthError(ErrInvalidCredentials, SchemeBasic, "Invalid user credentials.", cause)
}

// TokenRequired: no Authorization header on a protected path.
func TokenRequired() *AuthError {
	return newAuthError(ErrTokenRequired, SchemeBearer, "JSON Web Token(JWT) is required.", nil)
}

// BearerSchemeRequired: a protected path was called without Bearer.
func BearerSchemeRequired() *AuthError {
	return newAuthError(ErrSchemeRequired, SchemeBearer,
		"Bearer Authentication scheme is required to access this resource.", nil)
}

// ExpiredToken: the token's exp claim is in the past.
func ExpiredToken() *AuthError {
	return newAuthError(ErrExpiredToken, SchemeBearer,
		"Your JSON Web Token(JWT) has expired, please get a new one and try again.", nil)
}

// InvalidToken: bad signature, issuer or structure, unknown subject, or a
// token superseded by a newer login.
func InvalidToken(cause error) *AuthError {
	return newAuthError(ErrInvalidToken, SchemeBearer, "Invalid JSON Web Token(JWT).", cause)
}

// Forbidden: the identity is valid but may not act on the requested path.
func Forbidden() *AuthError {
	return newAuthError(ErrForbidden, SchemeBearer, "You don't have permission to access this resource.", nil)
}
