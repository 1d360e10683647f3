package http

import (
	"context"

	"github.com/alertwise/alertwise-backend/internal/content/domain"
	"github.com/alertwise/alertwise-backend/internal/content/service"
)

// Elevation tells the quiz handlers whether the caller may see answers.
type Elevation interface {
	IsElevated(ctx context.Context, subjectID string) (bool, error)
}

type Handler struct {
	modules   *service.ModuleService
	quizzes   *service.QuizService
	elevation Elevation
}

func New(modules *service.ModuleService, quizzes *service.QuizService, elevation Elevation) *Handler {
	return &Handler{
		modules:   modules,
		quizzes:   quizzes,
		elevation: elevation,
	}
}

type moduleRequest struct {
	Slug     string          `json:"slug"`
	Title    string          `json:"title"`
	Summary  string          `json:"summary"`
	Body     string          `json:"body"`
	ImageURL string          `json:"image_url"`
	Category domain.Category `json:"category"`
	Tips     domain.Tips     `json:"tips"`
}

func (r moduleRequest) toModule() domain.Module {
	return domain.Module{
		Slug:     r.Slug,
		Title:    r.Title,
		Summary:  r.Summary,
		Body:     r.Body,
		ImageURL: r.ImageURL,
		Category: r.Category,
		Tips:     r.Tips,
	}
}

type quizRequest struct {
	Title     string            `json:"title"`
	Summary   string            `json:"summary"`
	ImageURL  string            `json:"image_url"`
	Questions []domain.Question `json:"questions"`
}

func (r quizRequest) toQuiz() domain.Quiz {
	return domain.Quiz{
		Title:     r.Title,
		Summary:   r.Summary,
		ImageURL:  r.ImageURL,
		Questions: r.Questions,
	}
}
