package memory

import (
	"context"

	"github.com/alertwise/alertwise-backend/internal/auth/domain"
)

type CitizenRepo struct {
	s *Store
}

func (r *CitizenRepo) Upsert(ctx context.Context, req domain.SyncRequest) (*domain.Citizen, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	c, ok := r.s.citizens[req.SubjectID]
	if !ok {
		c = domain.Citizen{
			SubjectID: req.SubjectID,
			Role:      domain.RoleMember,
			CreatedAt: now,
		}
		r.s.citizenOrder = append(r.s.citizenOrder, req.SubjectID)
	}
	c.Email = req.Email
	c.GivenName = req.GivenName
	c.FamilyName = req.FamilyName
	c.AvatarURL = req.AvatarURL
	c.UpdatedAt = now
	r.s.citizens[req.SubjectID] = c

	return &c, !ok, nil
}

func (r *CitizenRepo) GetBySubjectID(ctx context.Context, subjectID string) (*domain.Citizen, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.citizens[subjectID]
	if !ok {
		return nil, domain.ErrCitizenNotFound
	}
	return &c, nil
}

// List returns citizens newest first.
func (r *CitizenRepo) List(ctx context.Context) ([]domain.Citizen, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.Citizen, 0, len(r.s.citizenOrder))
	for i := len(r.s.citizenOrder) - 1; i >= 0; i-- {
		out = append(out, r.s.citizens[r.s.citizenOrder[i]])
	}
	return out, nil
}

func (r *CitizenRepo) SetRole(ctx context.Context, subjectID string, role domain.Role) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.citizens[subjectID]
	if !ok {
		return domain.ErrCitizenNotFound
	}
	c.Role = role
	c.UpdatedAt = r.s.now()
	r.s.citizens[subjectID] = c
	return nil
}
