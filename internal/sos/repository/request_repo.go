package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alertwise/alertwise-backend/internal/sos/domain"
)

const requestColumns = `id, subject_id, user_email, user_display_name, location, message, status, operator_response, created_at, updated_at`

type RequestRepository struct {
	db *sql.DB
}

func NewRequestRepository(db *sql.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

func (r *RequestRepository) Create(ctx context.Context, req *domain.Request) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO sos_requests (id, subject_id, user_email, user_display_name, location, message, status, operator_response)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`, req.ID, req.SubjectID, req.UserEmail, req.UserDisplayName, req.Location, req.Message, req.Status, req.OperatorResponse,
	).Scan(&req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert sos request: %w", err)
	}
	return nil
}

func (r *RequestRepository) GetByID(ctx context.Context, id string) (*domain.Request, error) {
	req, err := scanRequest(r.db.QueryRowContext(ctx, `SELECT `+requestColumns+` FROM sos_requests WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get sos request: %w", err)
	}
	return req, nil
}

func (r *RequestRepository) ListBySubject(ctx context.Context, subjectID string) ([]domain.Request, error) {
	return r.list(ctx, `SELECT `+requestColumns+` FROM sos_requests WHERE subject_id = $1 ORDER BY created_at DESC`, subjectID)
}

func (r *RequestRepository) ListAll(ctx context.Context) ([]domain.Request, error) {
	return r.list(ctx, `SELECT `+requestColumns+` FROM sos_requests ORDER BY created_at DESC`)
}

func (r *RequestRepository) list(ctx context.Context, query string, args ...any) ([]domain.Request, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sos requests: %w", err)
	}
	defer rows.Close()

	requests := make([]domain.Request, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sos request: %w", err)
		}
		requests = append(requests, *req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sos requests: %w", err)
	}
	return requests, nil
}

// TransitionFromPending moves the request to status only while it is still
// pending. When no row matches, a follow-up read tells a missing request
// apart from one that was already resolved.
func (r *RequestRepository) TransitionFromPending(ctx context.Context, id string, status domain.Status, operatorResponse string) (*domain.Request, error) {
	req, err := scanRequest(r.db.QueryRowContext(ctx, `
		UPDATE sos_requests
		SET status = $2, operator_response = $3, updated_at = GREATEST(NOW(), created_at)
		WHERE id = $1 AND status = 'pending'
		RETURNING `+requestColumns,
		id, status, operatorResponse,
	))
	if err == nil {
		return req, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("transition sos request: %w", err)
	}

	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return nil, domain.ErrAlreadyResolved
}

// CountPendingOlderThan counts pending requests created before cutoff.
func (r *RequestRepository) CountPendingOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sos_requests WHERE status = 'pending' AND created_at < $1`, cutoff,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count stale sos requests: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequest(row rowScanner) (*domain.Request, error) {
	var req domain.Request
	if err := row.Scan(
		&req.ID,
		&req.SubjectID,
		&req.UserEmail,
		&req.UserDisplayName,
		&req.Location,
		&req.Message,
		&req.Status,
		&req.OperatorResponse,
		&req.CreatedAt,
		&req.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &req, nil
}
