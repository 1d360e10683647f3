package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/alertwise/alertwise-backend/internal/activity"
	"github.com/alertwise/alertwise-backend/internal/apperr"
	authdomain "github.com/alertwise/alertwise-backend/internal/auth/domain"
	"github.com/alertwise/alertwise-backend/internal/platform/logger"
	"github.com/alertwise/alertwise-backend/internal/platform/metrics"
	"github.com/alertwise/alertwise-backend/internal/sos/domain"
)

type RequestRepository interface {
	Create(ctx context.Context, req *domain.Request) error
	GetByID(ctx context.Context, id string) (*domain.Request, error)
	ListBySubject(ctx context.Context, subjectID string) ([]domain.Request, error)
	ListAll(ctx context.Context) ([]domain.Request, error)
	TransitionFromPending(ctx context.Context, id string, status domain.Status, operatorResponse string) (*domain.Request, error)
}

// CitizenReader resolves the Citizen whose details are copied onto a new
// request.
type CitizenReader interface {
	GetBySubjectID(ctx context.Context, subjectID string) (*authdomain.Citizen, error)
}

type SOSService struct {
	requests RequestRepository
	citizens CitizenReader
	feed     activity.Recorder
	metrics  *metrics.Metrics
	log      *logger.Logger
}

func NewSOSService(requests RequestRepository, citizens CitizenReader, feed activity.Recorder, m *metrics.Metrics, log *logger.Logger) *SOSService {
	return &SOSService{
		requests: requests,
		citizens: citizens,
		feed:     feed,
		metrics:  m,
		log:      log.With("service", "SOSService"),
	}
}

// Create raises a pending request for subjectID, snapshotting the
// Citizen's email and display name.
func (s *SOSService) Create(ctx context.Context, subjectID string, in domain.CreateRequest) (*domain.Request, error) {
	if subjectID == "" {
		return nil, apperr.Unauthenticated("unauthorized")
	}
	in.Location = strings.TrimSpace(in.Location)
	in.Message = strings.TrimSpace(in.Message)
	if in.Location == "" {
		return nil, apperr.Invalid("location is required")
	}
	if in.Message == "" {
		return nil, apperr.Invalid("message is required")
	}

	citizen, err := s.citizens.GetBySubjectID(ctx, subjectID)
	if errors.Is(err, authdomain.ErrCitizenNotFound) {
		return nil, domain.ErrCitizenNotFound
	}
	if err != nil {
		return nil, err
	}

	req := &domain.Request{
		ID:              uuid.NewString(),
		SubjectID:       subjectID,
		UserEmail:       citizen.Email,
		UserDisplayName: citizen.DisplayName(),
		Location:        in.Location,
		Message:         in.Message,
		Status:          domain.StatusPending,
	}
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, err
	}

	s.metrics.IncSOSCreated()
	s.log.Warn("sos request raised", "request_id", req.ID, "subject_id", subjectID)
	activity.RecordQuietly(ctx, s.feed, s.log, activity.KindSOS,
		fmt.Sprintf("SOS request from %s at %s", req.UserDisplayName, req.Location))
	return req, nil
}

func (s *SOSService) ListOwn(ctx context.Context, subjectID string) ([]domain.Request, error) {
	if subjectID == "" {
		return nil, apperr.Unauthenticated("unauthorized")
	}
	return s.requests.ListBySubject(ctx, subjectID)
}

func (s *SOSService) ListAll(ctx context.Context) ([]domain.Request, error) {
	return s.requests.ListAll(ctx)
}

// Transition resolves a pending request. A request that was already
// resolved yields domain.ErrAlreadyResolved.
func (s *SOSService) Transition(ctx context.Context, id string, in domain.TransitionRequest) (*domain.Request, error) {
	if _, err := s.requests.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if !in.Status.Terminal() {
		return nil, domain.ErrInvalidStatus
	}

	req, err := s.requests.TransitionFromPending(ctx, id, in.Status, strings.TrimSpace(in.OperatorResponse))
	if err != nil {
		return nil, err
	}

	s.metrics.IncSOSTransition(string(req.Status))
	s.log.Info("sos request resolved", "request_id", req.ID, "status", req.Status)
	activity.RecordQuietly(ctx, s.feed, s.log, activity.KindSOS,
		fmt.Sprintf("SOS request from %s %s", req.UserDisplayName, req.Status))
	return req, nil
}
