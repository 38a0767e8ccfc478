package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/99minutos/jobqueue-gateway/internal/core/domain"
	"github.com/99minutos/jobqueue-gateway/internal/core/ports"
)

var (
	errMalformedToken = errors.New("malformed bearer credentials")
	errSuperseded     = errors.New("token superseded by a newer login")
	errMissingExpiry  = errors.New("token carries no expiry")
)

// tokenClaims is the signed payload. Times are epoch milliseconds, so the
// jwt library's seconds-based time checks are turned off by returning nil
// from the time getters; expiry is checked by Authorize instead.
type tokenClaims struct {
	Issuer    string `json:"iss"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
	UserID    int64  `json:"uid"`
}

func (c tokenClaims) GetExpirationTime() (*jwt.NumericDate, error) { return nil, nil }
func (c tokenClaims) GetIssuedAt() (*jwt.NumericDate, error)       { return nil, nil }
func (c tokenClaims) GetNotBefore() (*jwt.NumericDate, error)      { return nil, nil }
func (c tokenClaims) GetIssuer() (string, error)                   { return c.Issuer, nil }
func (c tokenClaims) GetSubject() (string, error)                  { return "", nil }
func (c tokenClaims) GetAudience() (jwt.ClaimStrings, error)       { return nil, nil }

// TokenConfig holds the signing settings shared by issuance and validation.
type TokenConfig struct {
	Secret   string
	Issuer   string
	Lifetime time.Duration
}

// TokenService mints bearer tokens and validates them on every protected
// request.
//
// Each user has at most one active token: Issue overwrites the record's
// current token, and Authorize rejects any token that is not the stored one.
// Concurrent logins by the same user race on that field and the last write
// wins, silently retiring a token issued moments earlier.
type TokenService struct {
	repo     ports.UserRepository
	secret   []byte
	issuer   string
	lifetime time.Duration
	parser   *jwt.Parser
	now      func() time.Time
	log      zerolog.Logger
}

// TokenOption customises a TokenService.
type TokenOption func(*TokenService)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) { s.now = now }
}

func NewTokenService(repo ports.UserRepository, cfg TokenConfig, log zerolog.Logger, opts ...TokenOption) *TokenService {
	s := &TokenService{
		repo:     repo,
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		lifetime: cfg.Lifetime,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(cfg.Issuer),
		),
		now: time.Now,
		log: log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue signs a new token for user and stores it as the user's current
// token, retiring whatever token was active before. The record is updated in
// place and written once; a failed write fails the login.
func (s *TokenService) Issue(ctx context.Context, user *domain.User) (*domain.TokenEnvelope, error) {
	now := s.now()
	claims := tokenClaims{
		Issuer:    s.issuer,
		IssuedAt:  now.UnixMilli(),
		ExpiresAt: now.Add(s.lifetime).UnixMilli(),
		UserID:    user.ID,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	user.CurrentToken = token
	user.UpdatedAt = now.UTC()
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("store token: %w", err)
	}

	s.log.Info().Int64("user_id", user.ID).Msg("token issued")

	return &domain.TokenEnvelope{
		UserID:    user.ID,
		Token:     token,
		IssuedAt:  claims.IssuedAt,
		Lifetime:  int64(s.lifetime / time.Second),
		ExpiresAt: claims.ExpiresAt,
	}, nil
}

// Authorize validates a Bearer header and decides whether its subject may act
// on the requested path. The checks run in a fixed order: header, scheme,
// signature and issuer, expiry, subject lookup, ownership, and finally the
// single-active-token comparison.
func (s *TokenService) Authorize(ctx context.Context, in ports.AuthorizeInput) (*domain.SecurityContext, error) {
	if in.Authorization == "" {
		return nil, domain.TokenRequired()
	}
	if !hasScheme(in.Authorization, domain.SchemeBearer) {
		return nil, domain.BearerSchemeRequired()
	}

	raw, ok := credential(in.Authorization)
	if !ok {
		return nil, domain.InvalidToken(errMalformedToken)
	}

	var claims tokenClaims
	if _, err := s.parser.ParseWithClaims(raw, &claims, s.keyFunc); err != nil {
		return nil, domain.InvalidToken(err)
	}

	if claims.ExpiresAt == 0 {
		return nil, domain.InvalidToken(errMissingExpiry)
	}
	if s.now().UnixMilli() > claims.ExpiresAt {
		return nil, domain.ExpiredToken()
	}

	user, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.InvalidToken(err)
		}
		return nil, fmt.Errorf("load token subject: %w", err)
	}

	sc := domain.NewSecurityContext(user, domain.SchemeBearer, in.Secure)
	if !sc.IsUserInRole(string(domain.RoleAdmin)) && !(in.HasPathUser && claims.UserID == in.PathUserID) {
		return nil, domain.Forbidden()
	}

	if !user.HoldsToken(raw) {
		return nil, domain.InvalidToken(errSuperseded)
	}

	return sc, nil
}

func (s *TokenService) keyFunc(*jwt.Token) (any, error) {
	return s.secret, nil
}
