package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/alertwise/alertwise-backend/internal/activity"
	"github.com/alertwise/alertwise-backend/internal/apperr"
	"github.com/alertwise/alertwise-backend/internal/content/domain"
	"github.com/alertwise/alertwise-backend/internal/platform/logger"
)

type QuizRepository interface {
	List(ctx context.Context) ([]domain.Quiz, error)
	GetByID(ctx context.Context, id string) (*domain.Quiz, error)
	Create(ctx context.Context, q *domain.Quiz) error
	Update(ctx context.Context, q *domain.Quiz) error
	Delete(ctx context.Context, id string) error
}

type QuizService struct {
	quizzes QuizRepository
	feed    activity.Recorder
	log     *logger.Logger
}

func NewQuizService(quizzes QuizRepository, feed activity.Recorder, log *logger.Logger) *QuizService {
	return &QuizService{
		quizzes: quizzes,
		feed:    feed,
		log:     log.With("service", "QuizService"),
	}
}

func (s *QuizService) List(ctx context.Context) ([]domain.Quiz, error) {
	return s.quizzes.List(ctx)
}

func (s *QuizService) Get(ctx context.Context, id string) (*domain.Quiz, error) {
	return s.quizzes.GetByID(ctx, id)
}

func (s *QuizService) Create(ctx context.Context, q domain.Quiz) (*domain.Quiz, error) {
	if err := q.Prepare(); err != nil {
		return nil, err
	}
	q.ID = uuid.NewString()

	if err := s.quizzes.Create(ctx, &q); err != nil {
		return nil, err
	}

	s.log.Info("quiz created", "quiz_id", q.ID, "questions", len(q.Questions))
	activity.RecordQuietly(ctx, s.feed, s.log, activity.KindQuiz,
		fmt.Sprintf("New quiz published: %s", q.Title))
	return &q, nil
}

func (s *QuizService) Update(ctx context.Context, id string, patch domain.QuizPatch) (*domain.Quiz, error) {
	q, err := s.quizzes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(q)
	if err := q.Prepare(); err != nil {
		return nil, err
	}

	if err := s.quizzes.Update(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// Delete removes the quiz. Past attempts stay in the ledger.
func (s *QuizService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperr.Invalid("id is required")
	}
	if err := s.quizzes.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("quiz deleted", "quiz_id", id)
	return nil
}
