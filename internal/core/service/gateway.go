package service

import (
	"context"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/99minutos/jobqueue-gateway/internal/core/domain"
	"github.com/99minutos/jobqueue-gateway/internal/core/ports"
)

const (
	DefaultLoginPath = "/jwt"
	DocsPathPrefix   = "/swagger/"
)

// defaultPublicPaths are GET paths that carry no user data: liveness,
// readiness and metrics probes.
var defaultPublicPaths = []string{"/health", "/health/ready", "/metrics"}

// GatewayConfig selects the token-issuance path and the unauthenticated
// surface.
type GatewayConfig struct {
	LoginPath   string
	DocsPrefix  string
	PublicPaths []string
}

// Gateway routes each request to Basic or Bearer handling. Only GET on the
// login path uses Basic; every other non-public request needs a Bearer token.
type Gateway struct {
	verifier   ports.PasswordVerifier
	authorizer ports.TokenAuthorizer
	loginPath  string
	docsPrefix string
	public     map[string]struct{}
}

func NewGateway(verifier ports.PasswordVerifier, authorizer ports.TokenAuthorizer, cfg GatewayConfig) *Gateway {
	if cfg.LoginPath == "" {
		cfg.LoginPath = DefaultLoginPath
	}
	if cfg.DocsPrefix == "" {
		cfg.DocsPrefix = DocsPathPrefix
	}
	if cfg.PublicPaths == nil {
		cfg.PublicPaths = defaultPublicPaths
	}

	public := make(map[string]struct{}, len(cfg.PublicPaths))
	for _, p := range cfg.PublicPaths {
		public[NormalizePath(p)] = struct{}{}
	}

	return &Gateway{
		verifier:   verifier,
		authorizer: authorizer,
		loginPath:  NormalizePath(cfg.LoginPath),
		docsPrefix: cfg.DocsPrefix,
		public:     public,
	}
}

// Authenticate returns nil, nil for requests that need no credentials.
// Otherwise it returns the request's security context or the rejection
// raised by the delegated check, unchanged.
func (g *Gateway) Authenticate(ctx context.Context, req ports.GatewayRequest) (*ports.Authentication, error) {
	p := NormalizePath(req.Path)
	if g.isPublic(req.Method, p) {
		return nil, nil
	}

	authorization := req.Header.Get("Authorization")

	if g.IsLogin(req.Method, p) {
		user, err := g.verifier.Verify(ctx, authorization)
		if err != nil {
			return nil, err
		}
		return &ports.Authentication{
			Context: domain.NewSecurityContext(user, domain.SchemeBasic, req.Secure),
			User:    user,
		}, nil
	}

	uid, ok := PathUserID(p)
	sc, err := g.authorizer.Authorize(ctx, ports.AuthorizeInput{
		Authorization: authorization,
		PathUserID:    uid,
		HasPathUser:   ok,
		Secure:        req.Secure,
	})
	if err != nil {
		return nil, err
	}
	return &ports.Authentication{Context: sc}, nil
}

// IsLogin reports whether method and path address the token-issuance endpoint.
func (g *Gateway) IsLogin(method, p string) bool {
	return method == http.MethodGet && NormalizePath(p) == g.loginPath
}

func (g *Gateway) isPublic(method, p string) bool {
	if method != http.MethodGet {
		return false
	}
	if strings.HasPrefix(p+"/", g.docsPrefix) {
		return true
	}
	_, ok := g.public[p]
	return ok
}

// NormalizePath cleans p and roots it, so "jwt", "/jwt/" and "//jwt" are the
// same path.
func NormalizePath(p string) string {
	return path.Clean("/" + p)
}

// PathUserID parses the first segment of a normalized path as the acting
// user's id. It reports false when the segment is missing or not an integer.
func PathUserID(p string) (int64, bool) {
	seg, _, _ := strings.Cut(strings.TrimPrefix(p, "/"), "/")
	if seg == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(seg, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
