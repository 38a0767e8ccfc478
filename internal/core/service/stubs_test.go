package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/jobqueue-gateway/internal/core/domain"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory credential store
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users   map[int64]*domain.User
	saveErr error
	findErr error
	saves   int
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[int64]*domain.User)}
	for _, u := range users {
		clone := *u
		r.users[u.ID] = &clone
	}
	return r
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Save(_ context.Context, user *domain.User) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.saves++
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

// ---------------------------------------------------------------------------
// In-memory job store + idempotency store
// ---------------------------------------------------------------------------

type stubJobRepo struct {
	jobs      map[int64]*domain.Job
	nextID    int64
	createErr error
}

func newStubJobRepo() *stubJobRepo {
	return &stubJobRepo{jobs: make(map[int64]*domain.Job)}
}

func (r *stubJobRepo) Create(_ context.Context, job *domain.Job) (*domain.Job, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	clone := *job
	clone.ID = r.nextID
	r.jobs[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubJobRepo) ListByOwner(_ context.Context, ownerID int64) ([]*domain.Job, error) {
	var out []*domain.Job
	for _, j := range r.jobs {
		if j.OwnerID == ownerID {
			clone := *j
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].ID < out[k].ID })
	return out, nil
}

func (r *stubJobRepo) FindByIDAndOwner(_ context.Context, id, ownerID int64) (*domain.Job, error) {
	j, ok := r.jobs[id]
	if !ok || j.OwnerID != ownerID {
		return nil, domain.ErrJobNotFound
	}
	clone := *j
	return &clone, nil
}

func (r *stubJobRepo) Delete(_ context.Context, id, ownerID int64) (bool, error) {
	j, ok := r.jobs[id]
	if !ok || j.OwnerID != ownerID {
		return false, nil
	}
	delete(r.jobs, id)
	return true, nil
}

type stubIdempotency struct {
	keys        map[string]int64
	lookupErr   error
	rememberErr error
}

func newStubIdempotency() *stubIdempotency {
	return &stubIdempotency{keys: make(map[string]int64)}
}

func (s *stubIdempotency) Lookup(_ context.Context, ownerID int64, key string) (int64, bool, error) {
	if s.lookupErr != nil {
		return 0, false, s.lookupErr
	}
	id, ok := s.keys[idemKey(ownerID, key)]
	return id, ok, nil
}

func (s *stubIdempotency) Remember(_ context.Context, ownerID int64, key string, jobID int64, _ time.Duration) error {
	if s.rememberErr != nil {
		return s.rememberErr
	}
	s.keys[idemKey(ownerID, key)] = jobID
	return nil
}

func idemKey(ownerID int64, key string) string {
	return fmt.Sprintf("%d:%s", ownerID, key)
}
