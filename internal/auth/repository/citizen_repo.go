package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alertwise/alertwise-backend/internal/auth/domain"
)

const citizenColumns = `subject_id, email, given_name, family_name, avatar_url, role, created_at, updated_at`

// CitizenRepository persists Citizens in Postgres.
type CitizenRepository struct {
	db *sql.DB
}

func NewCitizenRepository(db *sql.DB) *CitizenRepository {
	return &CitizenRepository{db: db}
}

// Upsert creates the Citizen with role member, or overwrites the profile
// fields of the existing one. The role column is never touched on
// conflict. created reports whether a new row was inserted.
func (r *CitizenRepository) Upsert(ctx context.Context, req domain.SyncRequest) (*domain.Citizen, bool, error) {
	query := `
		INSERT INTO citizens (subject_id, email, given_name, family_name, avatar_url, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (subject_id) DO UPDATE
		SET email = EXCLUDED.email,
		    given_name = EXCLUDED.given_name,
		    family_name = EXCLUDED.family_name,
		    avatar_url = EXCLUDED.avatar_url,
		    updated_at = NOW()
		RETURNING ` + citizenColumns + `, (xmax = 0) AS inserted
	`

	var c domain.Citizen
	var inserted bool
	err := r.db.QueryRowContext(ctx, query,
		req.SubjectID,
		req.Email,
		req.GivenName,
		req.FamilyName,
		req.AvatarURL,
		domain.RoleMember,
	).Scan(
		&c.SubjectID,
		&c.Email,
		&c.GivenName,
		&c.FamilyName,
		&c.AvatarURL,
		&c.Role,
		&c.CreatedAt,
		&c.UpdatedAt,
		&inserted,
	)
	if err != nil {
		return nil, false, fmt.Errorf("upsert citizen: %w", err)
	}

	return &c, inserted, nil
}

// GetBySubjectID retrieves a Citizen by the provider subject.
func (r *CitizenRepository) GetBySubjectID(ctx context.Context, subjectID string) (*domain.Citizen, error) {
	query := `SELECT ` + citizenColumns + ` FROM citizens WHERE subject_id = $1`

	c, err := scanCitizen(r.db.QueryRowContext(ctx, query, subjectID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCitizenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get citizen: %w", err)
	}
	return c, nil
}

// List returns every Citizen, newest first.
func (r *CitizenRepository) List(ctx context.Context) ([]domain.Citizen, error) {
	query := `SELECT ` + citizenColumns + ` FROM citizens ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list citizens: %w", err)
	}
	defer rows.Close()

	citizens := make([]domain.Citizen, 0)
	for rows.Next() {
		c, err := scanCitizen(rows)
		if err != nil {
			return nil, fmt.Errorf("scan citizen: %w", err)
		}
		citizens = append(citizens, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list citizens: %w", err)
	}
	return citizens, nil
}

// SetRole changes a Citizen's role. Only the operator CLI calls this.
func (r *CitizenRepository) SetRole(ctx context.Context, subjectID string, role domain.Role) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE citizens SET role = $2, updated_at = NOW() WHERE subject_id = $1`,
		subjectID, role,
	)
	if err != nil {
		return fmt.Errorf("set role: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrCitizenNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCitizen(row rowScanner) (*domain.Citizen, error) {
	var c domain.Citizen
	if err := row.Scan(
		&c.SubjectID,
		&c.Email,
		&c.GivenName,
		&c.FamilyName,
		&c.AvatarURL,
		&c.Role,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}
