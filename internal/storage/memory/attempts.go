package memory

import (
	"context"

	"github.com/alertwise/alertwise-backend/internal/attempts/domain"
)

type AttemptRepo struct {
	s *Store
}

func (r *AttemptRepo) Create(ctx context.Context, a *domain.Attempt) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a.CompletedAt = r.s.now()
	r.s.attempts = append(r.s.attempts, *a)
	return nil
}

// ListBySubjectAndQuiz returns the subject's attempts on quizID, newest
// first.
func (r *AttemptRepo) ListBySubjectAndQuiz(ctx context.Context, subjectID, quizID string) ([]domain.Attempt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.Attempt, 0)
	for i := len(r.s.attempts) - 1; i >= 0; i-- {
		a := r.s.attempts[i]
		if a.SubjectID == subjectID && a.QuizID == quizID {
			out = append(out, a)
		}
	}
	return out, nil
}

// ListAll returns every attempt newest first, joined with quiz titles and
// citizen emails.
func (r *AttemptRepo) ListAll(ctx context.Context) ([]domain.AttemptView, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	titles := make(map[string]string, len(r.s.quizzes))
	for _, q := range r.s.quizzes {
		titles[q.ID] = q.Title
	}

	out := make([]domain.AttemptView, 0, len(r.s.attempts))
	for i := len(r.s.attempts) - 1; i >= 0; i-- {
		v := domain.AttemptView{Attempt: r.s.attempts[i]}
		if title, ok := titles[v.QuizID]; ok {
			v.QuizTitle = &title
		}
		if c, ok := r.s.citizens[v.SubjectID]; ok {
			email := c.Email
			v.UserEmail = &email
		}
		v.Resolve()
		out = append(out, v)
	}
	return out, nil
}
