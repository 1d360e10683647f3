package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alertwise/alertwise-backend/internal/activity"
	"github.com/alertwise/alertwise-backend/internal/apperr"
	"github.com/alertwise/alertwise-backend/internal/auth/domain"
	"github.com/alertwise/alertwise-backend/internal/platform/logger"
)

type fakeCitizenRepo struct {
	mu       sync.Mutex
	citizens map[string]domain.Citizen
	err      error
}

func newFakeCitizenRepo() *fakeCitizenRepo {
	return &fakeCitizenRepo{citizens: make(map[string]domain.Citizen)}
}

func (f *fakeCitizenRepo) Upsert(_ context.Context, req domain.SyncRequest) (*domain.Citizen, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, false, f.err
	}
	now := time.Now()
	c, ok := f.citizens[req.SubjectID]
	if !ok {
		c = domain.Citizen{SubjectID: req.SubjectID, Role: domain.RoleMember, CreatedAt: now}
	}
	c.Email, c.GivenName, c.FamilyName, c.AvatarURL = req.Email, req.GivenName, req.FamilyName, req.AvatarURL
	c.UpdatedAt = now
	f.citizens[req.SubjectID] = c
	return &c, !ok, nil
}

func (f *fakeCitizenRepo) GetBySubjectID(_ context.Context, subjectID string) (*domain.Citizen, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.citizens[subjectID]
	if !ok {
		return nil, domain.ErrCitizenNotFound
	}
	return &c, nil
}

func (f *fakeCitizenRepo) List(context.Context) ([]domain.Citizen, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Citizen, 0, len(f.citizens))
	for _, c := range f.citizens {
		out = append(out, c)
	}
	return out, f.err
}

func (f *fakeCitizenRepo) promote(subjectID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := f.citizens[subjectID]
	c.Role = domain.RoleElevated
	f.citizens[subjectID] = c
}

type recordingFeed struct {
	events []activity.Event
}

func (r *recordingFeed) Record(_ context.Context, e activity.Event) error {
	r.events = append(r.events, e)
	return nil
}

func newTestService(repo CitizenRepository, feed activity.Recorder) *AuthService {
	return NewAuthService(repo, feed, nil, logger.NewNop())
}

func TestAuthService_SyncCitizen(t *testing.T) {
	ctx := context.Background()

	t.Run("creates member and records activity", func(t *testing.T) {
		repo := newFakeCitizenRepo()
		feed := &recordingFeed{}
		svc := newTestService(repo, feed)

		c, err := svc.SyncCitizen(ctx, "u_1", domain.SyncRequest{SubjectID: "u_1", Email: "a@x", GivenName: "A", FamilyName: "B"})
		require.NoError(t, err)
		assert.Equal(t, domain.RoleMember, c.Role)
		assert.Equal(t, "a@x", c.Email)
		require.Len(t, feed.events, 1)
		assert.Equal(t, activity.KindUser, feed.events[0].Kind)
		assert.Equal(t, "New user registered: A B", feed.events[0].Message)
	})

	t.Run("sync is idempotent and never demotes", func(t *testing.T) {
		repo := newFakeCitizenRepo()
		feed := &recordingFeed{}
		svc := newTestService(repo, feed)
		req := domain.SyncRequest{Email: "a@x", GivenName: "A"}

		_, err := svc.SyncCitizen(ctx, "u_1", req)
		require.NoError(t, err)
		repo.promote("u_1")

		first, err := svc.SyncCitizen(ctx, "u_1", req)
		require.NoError(t, err)
		second, err := svc.SyncCitizen(ctx, "u_1", req)
		require.NoError(t, err)

		assert.Equal(t, domain.RoleElevated, second.Role)
		assert.Equal(t, first.Email, second.Email)
		assert.Equal(t, first.GivenName, second.GivenName)
		assert.Len(t, feed.events, 1, "only the first sync registers")
	})

	t.Run("overwrites profile fields", func(t *testing.T) {
		repo := newFakeCitizenRepo()
		svc := newTestService(repo, activity.NopFeed{})

		_, err := svc.SyncCitizen(ctx, "u_1", domain.SyncRequest{Email: "a@x", GivenName: "A", AvatarURL: "http://old"})
		require.NoError(t, err)
		c, err := svc.SyncCitizen(ctx, "u_1", domain.SyncRequest{Email: "b@x", GivenName: "Z"})
		require.NoError(t, err)

		assert.Equal(t, "b@x", c.Email)
		assert.Equal(t, "Z", c.GivenName)
		assert.Equal(t, "", c.AvatarURL)
	})

	t.Run("subject mismatch is forbidden", func(t *testing.T) {
		svc := newTestService(newFakeCitizenRepo(), activity.NopFeed{})

		_, err := svc.SyncCitizen(ctx, "u_1", domain.SyncRequest{SubjectID: "u_2", Email: "a@x"})
		assert.ErrorIs(t, err, domain.ErrSubjectMismatch)
		assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	})

	t.Run("email required", func(t *testing.T) {
		svc := newTestService(newFakeCitizenRepo(), activity.NopFeed{})

		_, err := svc.SyncCitizen(ctx, "u_1", domain.SyncRequest{Email: "  "})
		assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
	})

	t.Run("no subject is unauthenticated", func(t *testing.T) {
		svc := newTestService(newFakeCitizenRepo(), activity.NopFeed{})

		_, err := svc.SyncCitizen(ctx, "", domain.SyncRequest{Email: "a@x"})
		assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
	})

	t.Run("store failure is internal", func(t *testing.T) {
		repo := newFakeCitizenRepo()
		repo.err = errors.New("db down")
		svc := newTestService(repo, activity.NopFeed{})

		_, err := svc.SyncCitizen(ctx, "u_1", domain.SyncRequest{Email: "a@x"})
		assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
		assert.Equal(t, "internal server error", apperr.PublicMessage(err))
	})
}

func TestAuthService_RequireElevated(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCitizenRepo()
	svc := newTestService(repo, activity.NopFeed{})

	_, err := svc.SyncCitizen(ctx, "member", domain.SyncRequest{Email: "m@x"})
	require.NoError(t, err)
	_, err = svc.SyncCitizen(ctx, "admin", domain.SyncRequest{Email: "a@x"})
	require.NoError(t, err)
	repo.promote("admin")

	assert.NoError(t, svc.RequireElevated(ctx, "admin"))
	assert.ErrorIs(t, svc.RequireElevated(ctx, "member"), domain.ErrNotElevated)
	assert.ErrorIs(t, svc.RequireElevated(ctx, "unknown"), domain.ErrNotElevated)
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(svc.RequireElevated(ctx, "")))

	ok, err := svc.IsElevated(ctx, "admin")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.IsElevated(ctx, "")
	require.NoError(t, err)
	assert.False(t, ok)

	repo.err = errors.New("db down")
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(svc.RequireElevated(ctx, "admin")))
	_, err = svc.IsElevated(ctx, "admin")
	assert.Error(t, err)
}
