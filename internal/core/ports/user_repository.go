package ports

import (
	"context"

	"github.com/99minutos/jobqueue-gateway/internal/core/domain"
)

// UserRepository is the credential store adapter. Lookups return
// domain.ErrUserNotFound when no record matches.
type UserRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Save persists the mutable fields of an existing record, replacing the
	// stored current token with user.CurrentToken.
	Save(ctx context.Context, user *domain.User) error
}
