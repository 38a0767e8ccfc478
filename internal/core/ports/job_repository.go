package ports

import (
	"context"
	"time"

	"github.com/99minutos/jobqueue-gateway/internal/core/domain"
)

// JobRepository persists queued jobs. Owner-scoped lookups return
// domain.ErrJobNotFound for jobs that do not exist or belong to someone else.
type JobRepository interface {
	// Create assigns the job a new id and stores it.
	Create(ctx context.Context, job *domain.Job) (*domain.Job, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Job, error)
	FindByIDAndOwner(ctx context.Context, id, ownerID int64) (*domain.Job, error)
	// Delete removes the job and reports whether anything was removed.
	Delete(ctx context.Context, id, ownerID int64) (bool, error)
}

// IdempotencyStore remembers which job an Idempotency-Key produced.
type IdempotencyStore interface {
	Lookup(ctx context.Context, ownerID int64, key string) (jobID int64, found bool, err error)
	Remember(ctx context.Context, ownerID int64, key string, jobID int64, ttl time.Duration) error
}
