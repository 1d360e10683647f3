package memory

import (
	"context"
	"time"

	"github.com/alertwise/alertwise-backend/internal/sos/domain"
)

type SOSRepo struct {
	s *Store
}

func (r *SOSRepo) Create(ctx context.Context, req *domain.Request) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	req.CreatedAt, req.UpdatedAt = now, now
	r.s.sos = append(r.s.sos, *req)
	return nil
}

func (r *SOSRepo) GetByID(ctx context.Context, id string) (*domain.Request, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, req := range r.s.sos {
		if req.ID == id {
			return &req, nil
		}
	}
	return nil, domain.ErrRequestNotFound
}

func (r *SOSRepo) ListBySubject(ctx context.Context, subjectID string) ([]domain.Request, error) {
	return r.list(ctx, func(req domain.Request) bool { return req.SubjectID == subjectID })
}

func (r *SOSRepo) ListAll(ctx context.Context) ([]domain.Request, error) {
	return r.list(ctx, func(domain.Request) bool { return true })
}

func (r *SOSRepo) list(ctx context.Context, match func(domain.Request) bool) ([]domain.Request, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.Request, 0)
	for i := len(r.s.sos) - 1; i >= 0; i-- {
		if match(r.s.sos[i]) {
			out = append(out, r.s.sos[i])
		}
	}
	return out, nil
}

// TransitionFromPending moves a pending request to status. The check and
// the write happen under one lock, so at most one caller wins.
func (r *SOSRepo) TransitionFromPending(ctx context.Context, id string, status domain.Status, operatorResponse string) (*domain.Request, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.sos {
		req := &r.s.sos[i]
		if req.ID != id {
			continue
		}
		if req.Status != domain.StatusPending {
			return nil, domain.ErrAlreadyResolved
		}
		req.Status = status
		req.OperatorResponse = operatorResponse
		req.UpdatedAt = r.s.now()
		out := *req
		return &out, nil
	}
	return nil, domain.ErrRequestNotFound
}

func (r *SOSRepo) CountPendingOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for _, req := range r.s.sos {
		if req.Status == domain.StatusPending && req.CreatedAt.Before(cutoff) {
			n++
		}
	}
	return n, nil
}
