package domain

import (
	"errors"
	"testing"
)

func TestAuthError_KindsAreDistinct(t *testing.T) {
	cases := []struct {
		err    *AuthError
		kind   error
		code   string
		scheme string
		denied bool
	}{
		{CredentialsRequired(), ErrCredentialsRequired, "credentials_required", SchemeBasic, true},
		{BasicSchemeRequired(), ErrSchemeRequired, "scheme_required", SchemeBasic, true},
		{InvalidCredentials(nil), ErrInvalidCredentials, "invalid_credentials", SchemeBasic, true},
		{TokenRequired(), ErrTokenRequired, "token_required", SchemeBearer, true},
		{BearerSchemeRequired(), ErrSchemeRequired, "scheme_required", SchemeBearer, true},
		{ExpiredToken(), ErrExpiredToken, "expired_token", SchemeBearer, true},
		{InvalidToken(nil), ErrInvalidToken, "invalid_token", SchemeBearer, true},
		{Forbidden(), ErrForbidden, "forbidden", SchemeBearer, false},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			if !errors.Is(tc.err, tc.kind) {
				t.Fatalf("%v does not match its kind", tc.err)
			}
			if tc.err.Code() != tc.code || tc.err.Scheme != tc.scheme || tc.err.Denied() != tc.denied {
				t.Fatalf("unexpected error: %+v", tc.err)
			}
			if tc.err.Error() == "" {
				t.Fatal("reason must not be empty")
			}
			for _, other := range []error{ErrCredentialsRequired, ErrTokenRequired, ErrSchemeRequired, ErrInvalidCredentials, ErrExpiredToken, ErrInvalidToken, ErrForbidden} {
				if other != tc.kind && errors.Is(tc.err, other) {
					t.Fatalf("%v also matches %v", tc.err, other)
				}
			}
		})
	}
}

func TestAuthError_FreshValues(t *testing.T) {
	if ExpiredToken() == ExpiredToken() {
		t.Fatal("each rejection must be a new value")
	}
}

func TestAuthError_CauseIsReachable(t *testing.T) {
	cause := errors.New("signature is invalid")
	err := InvalidToken(cause)
	if !errors.Is(err, cause) || !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected both kind and cause to match: %v", err)
	}
	if err.Error() != "Invalid JSON Web Token(JWT)." {
		t.Fatalf("cause must not leak into the reason: %q", err.Error())
	}
}
