package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/alertwise/alertwise-backend/internal/apperr"
	"github.com/alertwise/alertwise-backend/internal/attempts/domain"
	contentdomain "github.com/alertwise/alertwise-backend/internal/content/domain"
	"github.com/alertwise/alertwise-backend/internal/platform/logger"
	"github.com/alertwise/alertwise-backend/internal/platform/metrics"
)

type AttemptRepository interface {
	Create(ctx context.Context, a *domain.Attempt) error
	ListBySubjectAndQuiz(ctx context.Context, subjectID, quizID string) ([]domain.Attempt, error)
	ListAll(ctx context.Context) ([]domain.AttemptView, error)
}

// QuizReader loads the quiz an attempt is submitted against.
type QuizReader interface {
	GetByID(ctx context.Context, id string) (*contentdomain.Quiz, error)
}

type AttemptService struct {
	attempts AttemptRepository
	quizzes  QuizReader
	metrics  *metrics.Metrics
	log      *logger.Logger
}

func NewAttemptService(attempts AttemptRepository, quizzes QuizReader, m *metrics.Metrics, log *logger.Logger) *AttemptService {
	return &AttemptService{
		attempts: attempts,
		quizzes:  quizzes,
		metrics:  m,
		log:      log.With("service", "AttemptService"),
	}
}

// Submit appends an attempt for subjectID on quizID. When req carries
// answers the score is computed here and any client score is ignored.
func (s *AttemptService) Submit(ctx context.Context, subjectID, quizID string, req domain.SubmitRequest) (*domain.Attempt, error) {
	if subjectID == "" {
		return nil, apperr.Unauthenticated("unauthorized")
	}

	quiz, err := s.quizzes.GetByID(ctx, quizID)
	if err != nil {
		return nil, err
	}

	score, total, err := scoreOf(quiz, req)
	if err != nil {
		return nil, err
	}

	a := &domain.Attempt{
		ID:        uuid.NewString(),
		SubjectID: subjectID,
		QuizID:    quiz.ID,
		Score:     score,
		Total:     total,
	}
	if err := s.attempts.Create(ctx, a); err != nil {
		return nil, err
	}

	s.metrics.IncAttemptsSubmitted()
	s.log.Info("attempt submitted", "quiz_id", quiz.ID, "subject_id", subjectID, "score", score, "total", total)
	return a, nil
}

func scoreOf(quiz *contentdomain.Quiz, req domain.SubmitRequest) (int, int, error) {
	if req.Answers != nil {
		total := len(quiz.Questions)
		if total < 1 {
			return 0, 0, apperr.Invalid("quiz has no questions to answer")
		}
		score, err := quiz.Score(req.Answers)
		if err != nil {
			return 0, 0, err
		}
		return score, total, nil
	}

	if req.Score == nil || req.Total == nil {
		return 0, 0, apperr.Invalid("score and total are required")
	}
	score, total := *req.Score, *req.Total
	switch {
	case total < 1:
		return 0, 0, apperr.Invalid("total must be at least 1")
	case score < 0:
		return 0, 0, apperr.Invalid("score must not be negative")
	case score > total:
		return 0, 0, apperr.Invalid("score must not exceed total")
	}
	return score, total, nil
}

// ListOwn returns subjectID's attempts on quizID, newest first. Attempts
// on deleted quizzes are still returned.
func (s *AttemptService) ListOwn(ctx context.Context, subjectID, quizID string) ([]domain.Attempt, error) {
	if subjectID == "" {
		return nil, apperr.Unauthenticated("unauthorized")
	}
	return s.attempts.ListBySubjectAndQuiz(ctx, subjectID, quizID)
}

func (s *AttemptService) ListAll(ctx context.Context) ([]domain.AttemptView, error) {
	return s.attempts.ListAll(ctx)
}
