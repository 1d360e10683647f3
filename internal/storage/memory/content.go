package memory

import (
	"context"

	"github.com/alertwise/alertwise-backend/internal/content/domain"
)

type ModuleRepo struct {
	s *Store
}

func (r *ModuleRepo) List(ctx context.Context) ([]domain.Module, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.Module, 0, len(r.s.modules))
	for _, m := range r.s.modules {
		out = append(out, cloneModule(m))
	}
	return out, nil
}

func (r *ModuleRepo) GetBySlug(ctx context.Context, slug string) (*domain.Module, error) {
	return r.find(ctx, func(m domain.Module) bool { return m.Slug == slug })
}

func (r *ModuleRepo) GetByID(ctx context.Context, id string) (*domain.Module, error) {
	return r.find(ctx, func(m domain.Module) bool { return m.ID == id })
}

func (r *ModuleRepo) find(ctx context.Context, match func(domain.Module) bool) (*domain.Module, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, m := range r.s.modules {
		if match(m) {
			out := cloneModule(m)
			return &out, nil
		}
	}
	return nil, domain.ErrModuleNotFound
}

func (r *ModuleRepo) Create(ctx context.Context, m *domain.Module) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.slugTaken(m.Slug, "") {
		return domain.ErrSlugTaken
	}
	now := r.s.now()
	m.CreatedAt, m.UpdatedAt = now, now
	r.s.modules = append(r.s.modules, cloneModule(*m))
	return nil
}

func (r *ModuleRepo) Update(ctx context.Context, m *domain.Module) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.modules {
		if r.s.modules[i].ID != m.ID {
			continue
		}
		if r.slugTaken(m.Slug, m.ID) {
			return domain.ErrSlugTaken
		}
		m.CreatedAt = r.s.modules[i].CreatedAt
		m.UpdatedAt = r.s.now()
		r.s.modules[i] = cloneModule(*m)
		return nil
	}
	return domain.ErrModuleNotFound
}

func (r *ModuleRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.modules {
		if r.s.modules[i].ID == id {
			r.s.modules = append(r.s.modules[:i], r.s.modules[i+1:]...)
			return nil
		}
	}
	return domain.ErrModuleNotFound
}

// slugTaken must be called with the lock held.
func (r *ModuleRepo) slugTaken(slug, exceptID string) bool {
	for _, m := range r.s.modules {
		if m.Slug == slug && m.ID != exceptID {
			return true
		}
	}
	return false
}

type QuizRepo struct {
	s *Store
}

func (r *QuizRepo) List(ctx context.Context) ([]domain.Quiz, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.Quiz, 0, len(r.s.quizzes))
	for _, q := range r.s.quizzes {
		out = append(out, cloneQuiz(q))
	}
	return out, nil
}

func (r *QuizRepo) GetByID(ctx context.Context, id string) (*domain.Quiz, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, q := range r.s.quizzes {
		if q.ID == id {
			out := cloneQuiz(q)
			return &out, nil
		}
	}
	return nil, domain.ErrQuizNotFound
}

func (r *QuizRepo) Create(ctx context.Context, q *domain.Quiz) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	q.CreatedAt, q.UpdatedAt = now, now
	r.s.quizzes = append(r.s.quizzes, cloneQuiz(*q))
	return nil
}

func (r *QuizRepo) Update(ctx context.Context, q *domain.Quiz) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.quizzes {
		if r.s.quizzes[i].ID == q.ID {
			q.CreatedAt = r.s.quizzes[i].CreatedAt
			q.UpdatedAt = r.s.now()
			r.s.quizzes[i] = cloneQuiz(*q)
			return nil
		}
	}
	return domain.ErrQuizNotFound
}

func (r *QuizRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.quizzes {
		if r.s.quizzes[i].ID == id {
			r.s.quizzes = append(r.s.quizzes[:i], r.s.quizzes[i+1:]...)
			return nil
		}
	}
	return domain.ErrQuizNotFound
}

func cloneModule(m domain.Module) domain.Module {
	m.Tips = domain.Tips{
		Before: append([]string{}, m.Tips.Before...),
		During: append([]string{}, m.Tips.During...),
		After:  append([]string{}, m.Tips.After...),
	}
	return m
}

func cloneQuiz(q domain.Quiz) domain.Quiz {
	questions := make([]domain.Question, len(q.Questions))
	for i, question := range q.Questions {
		question.Options = append([]string{}, question.Options...)
		questions[i] = question
	}
	q.Questions = questions
	return q
}
