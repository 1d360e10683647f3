package domain

import (
	"regexp"
	"strings"
	"time"

	"github.com/alertwise/alertwise-backend/internal/apperr"
)

type Category string

const (
	CategoryNatural Category = "natural"
	CategorySafety  Category = "safety"
)

func (c Category) Valid() bool {
	return c == CategoryNatural || c == CategorySafety
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ValidSlug reports whether s is a lowercase, hyphen-separated slug.
func ValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// Tips groups preparedness advice by phase.
type Tips struct {
	Before []string `json:"before"`
	During []string `json:"during"`
	After  []string `json:"after"`
}

// Normalize replaces nil sequences with empty ones so the JSON form is
// always three arrays.
func (t Tips) Normalize() Tips {
	if t.Before == nil {
		t.Before = []string{}
	}
	if t.During == nil {
		t.During = []string{}
	}
	if t.After == nil {
		t.After = []string{}
	}
	return t
}

type Module struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Body      string    `json:"body"`
	ImageURL  string    `json:"image_url"`
	Category  Category  `json:"category"`
	Tips      Tips      `json:"tips"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ModulePatch carries a partial update; nil fields are left untouched.
type ModulePatch struct {
	Slug     *string   `json:"slug"`
	Title    *string   `json:"title"`
	Summary  *string   `json:"summary"`
	Body     *string   `json:"body"`
	ImageURL *string   `json:"image_url"`
	Category *Category `json:"category"`
	Tips     *Tips     `json:"tips"`
}

func (p ModulePatch) Apply(m *Module) {
	if p.Slug != nil {
		m.Slug = *p.Slug
	}
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Summary != nil {
		m.Summary = *p.Summary
	}
	if p.Body != nil {
		m.Body = *p.Body
	}
	if p.ImageURL != nil {
		m.ImageURL = *p.ImageURL
	}
	if p.Category != nil {
		m.Category = *p.Category
	}
	if p.Tips != nil {
		m.Tips = *p.Tips
	}
}

// Prepare trims the text fields, applies defaults and validates m.
func (m *Module) Prepare() error {
	m.Slug = strings.TrimSpace(m.Slug)
	m.Title = strings.TrimSpace(m.Title)
	m.Summary = strings.TrimSpace(m.Summary)
	m.Body = strings.TrimSpace(m.Body)
	m.ImageURL = strings.TrimSpace(m.ImageURL)
	if m.Category == "" {
		m.Category = CategoryNatural
	}
	m.Tips = m.Tips.Normalize()

	switch {
	case m.Slug == "":
		return apperr.Invalid("slug is required")
	case !ValidSlug(m.Slug):
		return apperr.Invalid("slug must match [a-z0-9]+(-[a-z0-9]+)*")
	case m.Title == "":
		return apperr.Invalid("title is required")
	case m.Summary == "":
		return apperr.Invalid("summary is required")
	case m.Body == "":
		return apperr.Invalid("body is required")
	case m.ImageURL == "":
		return apperr.Invalid("image_url is required")
	case !m.Category.Valid():
		return apperr.Invalid("category must be one of natural, safety")
	}
	return nil
}

type Question struct {
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
}

type Quiz struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Summary   string     `json:"summary"`
	ImageURL  string     `json:"image_url"`
	Questions []Question `json:"questions"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type QuizPatch struct {
	Title     *string     `json:"title"`
	Summary   *string     `json:"summary"`
	ImageURL  *string     `json:"image_url"`
	Questions *[]Question `json:"questions"`
}

func (p QuizPatch) Apply(q *Quiz) {
	if p.Title != nil {
		q.Title = *p.Title
	}
	if p.Summary != nil {
		q.Summary = *p.Summary
	}
	if p.ImageURL != nil {
		q.ImageURL = *p.ImageURL
	}
	if p.Questions != nil {
		q.Questions = *p.Questions
	}
}

func (q *Quiz) Prepare() error {
	q.Title = strings.TrimSpace(q.Title)
	q.Summary = strings.TrimSpace(q.Summary)
	q.ImageURL = strings.TrimSpace(q.ImageURL)
	if q.Questions == nil {
		q.Questions = []Question{}
	}

	switch {
	case q.Title == "":
		return apperr.Invalid("title is required")
	case q.Summary == "":
		return apperr.Invalid("summary is required")
	case q.ImageURL == "":
		return apperr.Invalid("image_url is required")
	}

	for i := range q.Questions {
		question := &q.Questions[i]
		question.Prompt = strings.TrimSpace(question.Prompt)
		if question.Prompt == "" {
			return apperr.Invalid("questions[%d].prompt is required", i)
		}
		if len(question.Options) < 2 {
			return apperr.Invalid("questions[%d] needs at least 2 options", i)
		}
		if question.CorrectIndex < 0 || question.CorrectIndex >= len(question.Options) {
			return apperr.Invalid("questions[%d].correct_index out of range", i)
		}
	}
	return nil
}

// Score counts the answers that match each question's correct index.
// answers must have one entry per question.
func (q *Quiz) Score(answers []int) (int, error) {
	if len(answers) != len(q.Questions) {
		return 0, apperr.Invalid("expected %d answers, got %d", len(q.Questions), len(answers))
	}
	score := 0
	for i, a := range answers {
		if a == q.Questions[i].CorrectIndex {
			score++
		}
	}
	return score, nil
}

// PublicQuestion is a Question without its answer.
type PublicQuestion struct {
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

type PublicQuiz struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Summary   string           `json:"summary"`
	ImageURL  string           `json:"image_url"`
	Questions []PublicQuestion `json:"questions"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// Public strips correct_index from every question.
func (q Quiz) Public() PublicQuiz {
	out := PublicQuiz{
		ID:        q.ID,
		Title:     q.Title,
		Summary:   q.Summary,
		ImageURL:  q.ImageURL,
		Questions: make([]PublicQuestion, len(q.Questions)),
		CreatedAt: q.CreatedAt,
		UpdatedAt: q.UpdatedAt,
	}
	for i, question := range q.Questions {
		out.Questions[i] = PublicQuestion{Prompt: question.Prompt, Options: question.Options}
	}
	return out
}
