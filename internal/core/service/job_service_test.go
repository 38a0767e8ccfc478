package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/99minutos/jobqueue-gateway/internal/core/domain"
	"github.com/99minutos/jobqueue-gateway/internal/core/ports"
)

func newJobFixture() (*JobService, *stubJobRepo, *stubIdempotency) {
	users := newStubUserRepo(
		&domain.User{ID: 7, Email: "a@x.com", RoleID: 1},
		&domain.User{ID: 8, Email: "b@x.com", RoleID: 1},
	)
	jobs := newStubJobRepo()
	idem := newStubIdempotency()
	svc := NewJobService(jobs, users, idem, time.Hour, discardLogger)
	svc.now = func() time.Time { return baseTime }
	return svc, jobs, idem
}

func TestJobService_Enqueue_Success(t *testing.T) {
	svc, jobs, _ := newJobFixture()

	res, err := svc.Enqueue(context.Background(), ports.EnqueueJobInput{OwnerID: 7, TargetUserID: 8})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if res.Replayed {
		t.Fatal("fresh enqueue reported as replay")
	}
	job := res.Job
	if job.ID == 0 || job.OwnerID != 7 || job.TargetUserID != 8 || job.Status != domain.JobQueued {
		t.Fatalf("unexpected job: %+v", job)
	}
	if !job.AddedTime.Equal(baseTime) {
		t.Fatalf("added_time = %v", job.AddedTime)
	}
	if len(jobs.jobs) != 1 {
		t.Fatalf("expected one stored job, got %d", len(jobs.jobs))
	}
}

func TestJobService_Enqueue_UnknownTarget(t *testing.T) {
	svc, jobs, _ := newJobFixture()

	_, err := svc.Enqueue(context.Background(), ports.EnqueueJobInput{OwnerID: 7, TargetUserID: 404})
	if !errors.Is(err, domain.ErrUnknownTarget) {
		t.Fatalf("expected ErrUnknownTarget, got %v", err)
	}
	if len(jobs.jobs) != 0 {
		t.Fatal("no job should be stored")
	}
}

func TestJobService_Enqueue_IdempotentReplay(t *testing.T) {
	svc, jobs, _ := newJobFixture()
	in := ports.EnqueueJobInput{OwnerID: 7, TargetUserID: 8, IdempotencyKey: "k-1"}

	first, err := svc.Enqueue(context.Background(), in)
	if err != nil {
		t.Fatalf("first enqueue: %v", err)
	}
	second, err := svc.Enqueue(context.Background(), in)
	if err != nil {
		t.Fatalf("second enqueue: %v", err)
	}
	if !second.Replayed || second.Job.ID != first.Job.ID {
		t.Fatalf("expected replay of job %d, got %+v", first.Job.ID, second)
	}
	if len(jobs.jobs) != 1 {
		t.Fatalf("expected one stored job, got %d", len(jobs.jobs))
	}

	// Keys are scoped per owner.
	other, err := svc.Enqueue(context.Background(), ports.EnqueueJobInput{OwnerID: 8, TargetUserID: 7, IdempotencyKey: "k-1"})
	if err != nil {
		t.Fatalf("other owner enqueue: %v", err)
	}
	if other.Replayed {
		t.Fatal("idempotency key leaked across owners")
	}
}

func TestJobService_Enqueue_IdempotencyFailuresAreNonFatal(t *testing.T) {
	svc, jobs, idem := newJobFixture()
	idem.lookupErr = errors.New("redis timeout")
	idem.rememberErr = errors.New("redis timeout")

	res, err := svc.Enqueue(context.Background(), ports.EnqueueJobInput{OwnerID: 7, TargetUserID: 8, IdempotencyKey: "k"})
	if err != nil {
		t.Fatalf("expected enqueue to proceed, got %v", err)
	}
	if res.Replayed || len(jobs.jobs) != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestJobService_Enqueue_CanceledReplayTargetEnqueuesFresh(t *testing.T) {
	svc, jobs, _ := newJobFixture()
	in := ports.EnqueueJobInput{OwnerID: 7, TargetUserID: 8, IdempotencyKey: "k"}

	first, _ := svc.Enqueue(context.Background(), in)
	if _, err := svc.Cancel(context.Background(), 7, first.Job.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	second, err := svc.Enqueue(context.Background(), in)
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if second.Replayed || second.Job.ID == first.Job.ID {
		t.Fatalf("expected a fresh job, got %+v", second)
	}
	if len(jobs.jobs) != 1 {
		t.Fatalf("expected one stored job, got %d", len(jobs.jobs))
	}
}

func TestJobService_Enqueue_StoreFailure(t *testing.T) {
	svc, jobs, _ := newJobFixture()
	jobs.createErr = errors.New("mongo unavailable")

	if _, err := svc.Enqueue(context.Background(), ports.EnqueueJobInput{OwnerID: 7, TargetUserID: 8}); err == nil {
		t.Fatal("expected error")
	}
}

func TestJobService_ListStatusCancel(t *testing.T) {
	svc, _, _ := newJobFixture()
	ctx := context.Background()

	empty, err := svc.List(ctx, 7)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", empty)
	}

	a, _ := svc.Enqueue(ctx, ports.EnqueueJobInput{OwnerID: 7, TargetUserID: 8})
	_, _ = svc.Enqueue(ctx, ports.EnqueueJobInput{OwnerID: 7, TargetUserID: 7})
	_, _ = svc.Enqueue(ctx, ports.EnqueueJobInput{OwnerID: 8, TargetUserID: 7})

	mine, _ := svc.List(ctx, 7)
	if len(mine) != 2 {
		t.Fatalf("expected 2 jobs for owner 7, got %d", len(mine))
	}

	job, err := svc.Status(ctx, 7, a.Job.ID)
	if err != nil || job.ID != a.Job.ID {
		t.Fatalf("status: %+v / %v", job, err)
	}
	if _, err := svc.Status(ctx, 8, a.Job.ID); !errors.Is(err, domain.ErrJobNotFound) {
		t.Fatalf("foreign job: expected ErrJobNotFound, got %v", err)
	}

	if ok, _ := svc.Cancel(ctx, 8, a.Job.ID); ok {
		t.Fatal("another owner must not cancel the job")
	}
	if ok, err := svc.Cancel(ctx, 7, a.Job.ID); !ok || err != nil {
		t.Fatalf("cancel: %v / %v", ok, err)
	}
	if ok, _ := svc.Cancel(ctx, 7, a.Job.ID); ok {
		t.Fatal("second cancel must report false")
	}
}
