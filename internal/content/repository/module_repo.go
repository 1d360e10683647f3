package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alertwise/alertwise-backend/internal/content/domain"
	"github.com/alertwise/alertwise-backend/internal/storage/postgres"
)

const moduleColumns = `id, slug, title, summary, body, image_url, category, tips, created_at, updated_at`

type ModuleRepository struct {
	db *sql.DB
}

func NewModuleRepository(db *sql.DB) *ModuleRepository {
	return &ModuleRepository{db: db}
}

// List returns all modules in creation order.
func (r *ModuleRepository) List(ctx context.Context) ([]domain.Module, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+moduleColumns+` FROM modules ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}
	defer rows.Close()

	modules := make([]domain.Module, 0)
	for rows.Next() {
		m, err := scanModule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan module: %w", err)
		}
		modules = append(modules, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}
	return modules, nil
}

func (r *ModuleRepository) GetBySlug(ctx context.Context, slug string) (*domain.Module, error) {
	return r.getOne(ctx, `SELECT `+moduleColumns+` FROM modules WHERE slug = $1`, slug)
}

func (r *ModuleRepository) GetByID(ctx context.Context, id string) (*domain.Module, error) {
	return r.getOne(ctx, `SELECT `+moduleColumns+` FROM modules WHERE id = $1`, id)
}

func (r *ModuleRepository) getOne(ctx context.Context, query string, arg string) (*domain.Module, error) {
	m, err := scanModule(r.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrModuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get module: %w", err)
	}
	return m, nil
}

// Create inserts m and fills in the server timestamps.
func (r *ModuleRepository) Create(ctx context.Context, m *domain.Module) error {
	tips, err := json.Marshal(m.Tips)
	if err != nil {
		return fmt.Errorf("marshal tips: %w", err)
	}

	err = r.db.QueryRowContext(ctx, `
		INSERT INTO modules (id, slug, title, summary, body, image_url, category, tips)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8::jsonb)
		RETURNING created_at, updated_at
	`, m.ID, m.Slug, m.Title, m.Summary, m.Body, m.ImageURL, m.Category, string(tips),
	).Scan(&m.CreatedAt, &m.UpdatedAt)
	if postgres.IsUniqueViolation(err) {
		return domain.ErrSlugTaken
	}
	if err != nil {
		return fmt.Errorf("insert module: %w", err)
	}
	return nil
}

// Update overwrites every mutable column of the module with m.ID.
func (r *ModuleRepository) Update(ctx context.Context, m *domain.Module) error {
	tips, err := json.Marshal(m.Tips)
	if err != nil {
		return fmt.Errorf("marshal tips: %w", err)
	}

	err = r.db.QueryRowContext(ctx, `
		UPDATE modules
		SET slug = $2, title = $3, summary = $4, body = $5, image_url = $6,
		    category = $7, tips = $8::jsonb, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`, m.ID, m.Slug, m.Title, m.Summary, m.Body, m.ImageURL, m.Category, string(tips),
	).Scan(&m.CreatedAt, &m.UpdatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return domain.ErrModuleNotFound
	case postgres.IsUniqueViolation(err):
		return domain.ErrSlugTaken
	case err != nil:
		return fmt.Errorf("update module: %w", err)
	}
	return nil
}

func (r *ModuleRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM modules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete module: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrModuleNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanModule(row rowScanner) (*domain.Module, error) {
	var m domain.Module
	var tips []byte
	if err := row.Scan(
		&m.ID,
		&m.Slug,
		&m.Title,
		&m.Summary,
		&m.Body,
		&m.ImageURL,
		&m.Category,
		&tips,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(tips) > 0 {
		if err := json.Unmarshal(tips, &m.Tips); err != nil {
			return nil, fmt.Errorf("decode tips: %w", err)
		}
	}
	m.Tips = m.Tips.Normalize()
	return &m, nil
}
