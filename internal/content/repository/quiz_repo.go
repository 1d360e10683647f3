package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alertwise/alertwise-backend/internal/content/domain"
)

const quizColumns = `id, title, summary, image_url, questions, created_at, updated_at`

type QuizRepository struct {
	db *sql.DB
}

func NewQuizRepository(db *sql.DB) *QuizRepository {
	return &QuizRepository{db: db}
}

func (r *QuizRepository) List(ctx context.Context) ([]domain.Quiz, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+quizColumns+` FROM quizzes ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	defer rows.Close()

	quizzes := make([]domain.Quiz, 0)
	for rows.Next() {
		q, err := scanQuiz(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quiz: %w", err)
		}
		quizzes = append(quizzes, *q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	return quizzes, nil
}

func (r *QuizRepository) GetByID(ctx context.Context, id string) (*domain.Quiz, error) {
	q, err := scanQuiz(r.db.QueryRowContext(ctx, `SELECT `+quizColumns+` FROM quizzes WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrQuizNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get quiz: %w", err)
	}
	return q, nil
}

func (r *QuizRepository) Create(ctx context.Context, q *domain.Quiz) error {
	questions, err := json.Marshal(q.Questions)
	if err != nil {
		return fmt.Errorf("marshal questions: %w", err)
	}

	err = r.db.QueryRowContext(ctx, `
		INSERT INTO quizzes (id, title, summary, image_url, questions)
		VALUES ($1, $2, $3, $4, $5::jsonb)
		RETURNING created_at, updated_at
	`, q.ID, q.Title, q.Summary, q.ImageURL, string(questions),
	).Scan(&q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert quiz: %w", err)
	}
	return nil
}

func (r *QuizRepository) Update(ctx context.Context, q *domain.Quiz) error {
	questions, err := json.Marshal(q.Questions)
	if err != nil {
		return fmt.Errorf("marshal questions: %w", err)
	}

	err = r.db.QueryRowContext(ctx, `
		UPDATE quizzes
		SET title = $2, summary = $3, image_url = $4, questions = $5::jsonb, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`, q.ID, q.Title, q.Summary, q.ImageURL, string(questions),
	).Scan(&q.CreatedAt, &q.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrQuizNotFound
	}
	if err != nil {
		return fmt.Errorf("update quiz: %w", err)
	}
	return nil
}

// Delete removes the quiz only. Attempts that reference it are kept.
func (r *QuizRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM quizzes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete quiz: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrQuizNotFound
	}
	return nil
}

func scanQuiz(row rowScanner) (*domain.Quiz, error) {
	var q domain.Quiz
	var questions []byte
	if err := row.Scan(
		&q.ID,
		&q.Title,
		&q.Summary,
		&q.ImageURL,
		&questions,
		&q.CreatedAt,
		&q.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(questions) > 0 {
		if err := json.Unmarshal(questions, &q.Questions); err != nil {
			return nil, fmt.Errorf("decode questions: %w", err)
		}
	}
	if q.Questions == nil {
		q.Questions = []domain.Question{}
	}
	return &q, nil
}
