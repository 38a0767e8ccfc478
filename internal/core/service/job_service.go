package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/jobqueue-gateway/internal/core/domain"
	"github.com/99minutos/jobqueue-gateway/internal/core/ports"
)

const defaultIdempotencyTTL = 24 * time.Hour

type JobService struct {
	jobs   ports.JobRepository
	users  ports.UserRepository
	idem   ports.IdempotencyStore
	ttl    time.Duration
	now    func() time.Time
	logger zerolog.Logger
}

func NewJobService(jobs ports.JobRepository, users ports.UserRepository, idem ports.IdempotencyStore, ttl time.Duration, logger zerolog.Logger) *JobService {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	return &JobService{jobs: jobs, users: users, idem: idem, ttl: ttl, now: time.Now, logger: logger}
}

// Enqueue queues a recommendation job for the owner. If an idempotency key is
// provided and already seen for this owner, the earlier job is returned and
// nothing new is stored. Idempotency store failures never fail the request.
func (s *JobService) Enqueue(ctx context.Context, in ports.EnqueueJobInput) (*ports.EnqueueJobResult, error) {
	if in.IdempotencyKey != "" && s.idem != nil {
		if job := s.replay(ctx, in.OwnerID, in.IdempotencyKey); job != nil {
			return &ports.EnqueueJobResult{Job: job, Replayed: true}, nil
		}
	}

	if _, err := s.users.FindByID(ctx, in.TargetUserID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnknownTarget
		}
		return nil, fmt.Errorf("enqueue job: %w", err)
	}

	job, err := s.jobs.Create(ctx, &domain.Job{
		OwnerID:      in.OwnerID,
		TargetUserID: in.TargetUserID,
		Status:       domain.JobQueued,
		AddedTime:    s.now().UTC(),
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("owner_id", in.OwnerID).Msg("failed to enqueue job")
		return nil, fmt.Errorf("enqueue job: %w", err)
	}

	if in.IdempotencyKey != "" && s.idem != nil {
		if err := s.idem.Remember(ctx, in.OwnerID, in.IdempotencyKey, job.ID, s.ttl); err != nil {
			s.logger.Warn().Err(err).Int64("job_id", job.ID).Msg("failed to store idempotency key")
		}
	}

	s.logger.Info().Int64("job_id", job.ID).Int64("owner_id", in.OwnerID).Msg("job enqueued")
	return &ports.EnqueueJobResult{Job: job}, nil
}

func (s *JobService) replay(ctx context.Context, ownerID int64, key string) *domain.Job {
	jobID, found, err := s.idem.Lookup(ctx, ownerID, key)
	if err != nil {
		s.logger.Warn().Err(err).Int64("owner_id", ownerID).Msg("idempotency lookup failed, enqueueing anyway")
		return nil
	}
	if !found {
		return nil
	}
	job, err := s.jobs.FindByIDAndOwner(ctx, jobID, ownerID)
	if err != nil {
		// The remembered job was canceled or is unreadable; treat the key as fresh.
		s.logger.Debug().Err(err).Int64("job_id", jobID).Msg("idempotent job not found")
		return nil
	}
	s.logger.Info().Str("idempotency_key", key).Int64("job_id", job.ID).Msg("idempotent replay")
	return job
}

// List returns every job owned by ownerID, oldest first.
func (s *JobService) List(ctx context.Context, ownerID int64) ([]*domain.Job, error) {
	jobs, err := s.jobs.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	if jobs == nil {
		jobs = []*domain.Job{}
	}
	return jobs, nil
}

func (s *JobService) Status(ctx context.Context, ownerID, jobID int64) (*domain.Job, error) {
	return s.jobs.FindByIDAndOwner(ctx, jobID, ownerID)
}

// Cancel removes a job from the queue. It reports false when the owner has
// no such job.
func (s *JobService) Cancel(ctx context.Context, ownerID, jobID int64) (bool, error) {
	removed, err := s.jobs.Delete(ctx, jobID, ownerID)
	if err != nil {
		return false, fmt.Errorf("cancel job: %w", err)
	}
	if removed {
		s.logger.Info().Int64("job_id", jobID).Int64("owner_id", ownerID).Msg("job canceled")
	}
	return removed, nil
}
