package ports

import (
	"context"

	"github.com/99minutos/jobqueue-gateway/internal/core/domain"
)

// EnqueueJobInput carries a new recommendation request.
type EnqueueJobInput struct {
	OwnerID        int64
	TargetUserID   int64
	IdempotencyKey string
}

// EnqueueJobResult is returned by Enqueue. Replayed is true when the
// Idempotency-Key matched an earlier request.
type EnqueueJobResult struct {
	Job      *domain.Job
	Replayed bool
}

// JobService defines the job-queue use cases behind the gateway.
type JobService interface {
	Enqueue(ctx context.Context, in EnqueueJobInput) (*EnqueueJobResult, error)
	List(ctx context.Context, ownerID int64) ([]*domain.Job, error)
	Status(ctx context.Context, ownerID, jobID int64) (*domain.Job, error)
	Cancel(ctx context.Context, ownerID, jobID int64) (bool, error)
}
