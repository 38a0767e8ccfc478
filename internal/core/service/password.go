package service

import (
	"context"
	"crypto/md5"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/jobqueue-gateway/internal/core/domain"
	"github.com/99minutos/jobqueue-gateway/internal/core/ports"
)

var (
	errMalformedCredentials = errors.New("malformed basic credentials")
	errDigestMismatch       = errors.New("password digest mismatch")
)

// PasswordVerifier checks Basic credentials against the salted digest stored
// on the user record.
type PasswordVerifier struct {
	repo ports.UserRepository
	salt string
	log  zerolog.Logger
}

func NewPasswordVerifier(repo ports.UserRepository, salt string, log zerolog.Logger) *PasswordVerifier {
	return &PasswordVerifier{repo: repo, salt: salt, log: log}
}

// Verify resolves the user named by a Basic Authorization header. It issues
// no token; the caller does that with the returned record.
func (v *PasswordVerifier) Verify(ctx context.Context, authorization string) (*domain.User, error) {
	if authorization == "" {
		return nil, domain.CredentialsRequired()
	}
	if !hasScheme(authorization, domain.SchemeBasic) {
		return nil, domain.BasicSchemeRequired()
	}

	email, password, err := decodeBasic(authorization)
	if err != nil {
		return nil, domain.InvalidCredentials(err)
	}

	digest := LegacyDigest(password, v.salt)

	user, err := v.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.InvalidCredentials(err)
		}
		return nil, fmt.Errorf("verify credentials: %w", err)
	}

	if !v.matches(user.PasswordDigest, password, digest) {
		v.log.Debug().Int64("user_id", user.ID).Msg("password digest mismatch")
		return nil, domain.InvalidCredentials(errDigestMismatch)
	}
	return user, nil
}

func (v *PasswordVerifier) matches(stored, password, legacy string) bool {
	if isBcrypt(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(legacy)) == 1
}

// LegacyDigest computes the stored password form: MD5 over the password,
// then MD5 over that hex digest with the salt appended. Each round is
// rendered as lowercase hex without leading zeros, matching the records the
// credential store already holds.
func LegacyDigest(password, salt string) string {
	first := md5.Sum([]byte(password))
	second := md5.Sum([]byte(trimmedHex(first[:]) + salt))
	return trimmedHex(second[:])
}

func trimmedHex(b []byte) string {
	s := strings.TrimLeft(hex.EncodeToString(b), "0")
	if s == "" {
		return "0"
	}
	return s
}

func isBcrypt(digest string) bool {
	return strings.HasPrefix(digest, "$2a$") ||
		strings.HasPrefix(digest, "$2b$") ||
		strings.HasPrefix(digest, "$2y$")
}

// hasScheme reports whether header starts with scheme followed by
// whitespace, ignoring case.
func hasScheme(header, scheme string) bool {
	if len(header) <= len(scheme) {
		return false
	}
	if !strings.EqualFold(header[:len(scheme)], scheme) {
		return false
	}
	switch header[len(scheme)] {
	case ' ', '\t':
		return true
	}
	return false
}

// credential returns the second whitespace-delimited segment of header.
func credential(header string) (string, bool) {
	fields := strings.Fields(header)
	if len(fields) < 2 {
		return "", false
	}
	return fields[1], true
}

// decodeBasic splits the base64 payload on its first colon. The email must
// not contain a colon; the password may, and is kept whole.
func decodeBasic(header string) (email, password string, err error) {
	payload, ok := credential(header)
	if !ok {
		return "", "", errMalformedCredentials
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", errMalformedCredentials, err)
	}
	email, password, ok = strings.Cut(string(raw), ":")
	if !ok || email == "" || password == "" {
		return "", "", errMalformedCredentials
	}
	return email, password, nil
}
