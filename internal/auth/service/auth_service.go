package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alertwise/alertwise-backend/internal/activity"
	"github.com/alertwise/alertwise-backend/internal/apperr"
	"github.com/alertwise/alertwise-backend/internal/auth/domain"
	"github.com/alertwise/alertwise-backend/internal/platform/logger"
	"github.com/alertwise/alertwise-backend/internal/platform/metrics"
)

// CitizenRepository is the store contract for Citizens.
type CitizenRepository interface {
	Upsert(ctx context.Context, req domain.SyncRequest) (*domain.Citizen, bool, error)
	GetBySubjectID(ctx context.Context, subjectID string) (*domain.Citizen, error)
	List(ctx context.Context) ([]domain.Citizen, error)
}

type AuthService struct {
	citizens CitizenRepository
	feed     activity.Recorder
	metrics  *metrics.Metrics
	log      *logger.Logger
}

func NewAuthService(citizens CitizenRepository, feed activity.Recorder, m *metrics.Metrics, log *logger.Logger) *AuthService {
	return &AuthService{
		citizens: citizens,
		feed:     feed,
		metrics:  m,
		log:      log.With("service", "AuthService"),
	}
}

// SyncCitizen creates or refreshes the Citizen for subjectID. The request's
// SubjectID, when set, must match the verified subject.
func (s *AuthService) SyncCitizen(ctx context.Context, subjectID string, req domain.SyncRequest) (*domain.Citizen, error) {
	if subjectID == "" {
		return nil, domain.ErrUnauthenticated
	}
	req.SubjectID = strings.TrimSpace(req.SubjectID)
	if req.SubjectID == "" {
		req.SubjectID = subjectID
	}
	if req.SubjectID != subjectID {
		return nil, domain.ErrSubjectMismatch
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		return nil, apperr.Invalid("email is required")
	}
	req.GivenName = strings.TrimSpace(req.GivenName)
	req.FamilyName = strings.TrimSpace(req.FamilyName)
	req.AvatarURL = strings.TrimSpace(req.AvatarURL)

	citizen, created, err := s.citizens.Upsert(ctx, req)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to sync user", err)
	}

	s.metrics.IncCitizensSynced()
	if created {
		s.log.Info("citizen registered", "subject_id", citizen.SubjectID)
		activity.RecordQuietly(ctx, s.feed, s.log, activity.KindUser,
			fmt.Sprintf("New user registered: %s", citizen.DisplayName()))
	}

	return citizen, nil
}

// GetCitizen retrieves a Citizen by subject.
func (s *AuthService) GetCitizen(ctx context.Context, subjectID string) (*domain.Citizen, error) {
	return s.citizens.GetBySubjectID(ctx, subjectID)
}

// ListCitizens returns all Citizens, newest first.
func (s *AuthService) ListCitizens(ctx context.Context) ([]domain.Citizen, error) {
	return s.citizens.List(ctx)
}

// RequireElevated passes only when subjectID belongs to an elevated Citizen.
func (s *AuthService) RequireElevated(ctx context.Context, subjectID string) error {
	if subjectID == "" {
		return domain.ErrUnauthenticated
	}

	citizen, err := s.citizens.GetBySubjectID(ctx, subjectID)
	if errors.Is(err, domain.ErrCitizenNotFound) {
		return domain.ErrNotElevated
	}
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to resolve role", err)
	}
	if !citizen.IsElevated() {
		return domain.ErrNotElevated
	}
	return nil
}

// IsElevated is the non-failing form of RequireElevated used on public
// routes that reveal more to elevated callers.
func (s *AuthService) IsElevated(ctx context.Context, subjectID string) (bool, error) {
	err := s.RequireElevated(ctx, subjectID)
	if err == nil {
		return true, nil
	}
	if apperr.KindOf(err) == apperr.KindInternal {
		return false, err
	}
	return false, nil
}
