package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alertwise/alertwise-backend/internal/attempts/domain"
)

type AttemptRepository struct {
	db *sql.DB
}

func NewAttemptRepository(db *sql.DB) *AttemptRepository {
	return &AttemptRepository{db: db}
}

func (r *AttemptRepository) Create(ctx context.Context, a *domain.Attempt) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO quiz_attempts (id, subject_id, quiz_id, score, total)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING completed_at
	`, a.ID, a.SubjectID, a.QuizID, a.Score, a.Total).Scan(&a.CompletedAt)
	if err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	return nil
}

func (r *AttemptRepository) ListBySubjectAndQuiz(ctx context.Context, subjectID, quizID string) ([]domain.Attempt, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, subject_id, quiz_id, score, total, completed_at
		FROM quiz_attempts
		WHERE subject_id = $1 AND quiz_id = $2
		ORDER BY completed_at DESC
	`, subjectID, quizID)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	attempts := make([]domain.Attempt, 0)
	for rows.Next() {
		var a domain.Attempt
		if err := rows.Scan(&a.ID, &a.SubjectID, &a.QuizID, &a.Score, &a.Total, &a.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	return attempts, nil
}

// ListAll returns every attempt newest first. The quiz and citizen are
// joined at read time; either side may be gone.
func (r *AttemptRepository) ListAll(ctx context.Context) ([]domain.AttemptView, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT a.id, a.subject_id, a.quiz_id, a.score, a.total, a.completed_at,
		       q.title, c.email
		FROM quiz_attempts a
		LEFT JOIN quizzes q ON q.id = a.quiz_id
		LEFT JOIN citizens c ON c.subject_id = a.subject_id
		ORDER BY a.completed_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list all attempts: %w", err)
	}
	defer rows.Close()

	views := make([]domain.AttemptView, 0)
	for rows.Next() {
		var v domain.AttemptView
		var title, email sql.NullString
		if err := rows.Scan(
			&v.ID, &v.SubjectID, &v.QuizID, &v.Score, &v.Total, &v.CompletedAt,
			&title, &email,
		); err != nil {
			return nil, fmt.Errorf("scan attempt view: %w", err)
		}
		if title.Valid {
			v.QuizTitle = &title.String
		}
		if email.Valid {
			v.UserEmail = &email.String
		}
		v.Resolve()
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list all attempts: %w", err)
	}
	return views, nil
}
