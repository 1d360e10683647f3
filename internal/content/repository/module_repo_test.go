package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alertwise/alertwise-backend/internal/content/domain"
)

var moduleRowColumns = []string{"id", "slug", "title", "summary", "body", "image_url", "category", "tips", "created_at", "updated_at"}

func setupModuleRepo(t *testing.T) (*ModuleRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return NewModuleRepository(db), mock, db
}

func TestModuleRepository_List(t *testing.T) {
	repo, mock, db := setupModuleRepo(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT .* FROM modules ORDER BY created_at ASC`).
		WillReturnRows(sqlmock.NewRows(moduleRowColumns).
			AddRow("m1", "quake", "Q", "s", "b", "i", "natural", []byte(`{"before":["drop"],"during":[],"after":[]}`), now, now).
			AddRow("m2", "fire", "F", "s", "b", "i", "safety", []byte(`{}`), now, now))

	modules, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, modules, 2)
	assert.Equal(t, []string{"drop"}, modules[0].Tips.Before)
	assert.Equal(t, domain.CategorySafety, modules[1].Category)
	assert.NotNil(t, modules[1].Tips.After)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestModuleRepository_GetBySlug(t *testing.T) {
	repo, mock, db := setupModuleRepo(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM modules WHERE slug = \$1`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrModuleNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestModuleRepository_Create(t *testing.T) {
	repo, mock, db := setupModuleRepo(t)
	defer db.Close()

	m := &domain.Module{ID: "m1", Slug: "quake", Title: "Q", Summary: "s", Body: "b", ImageURL: "i",
		Category: domain.CategoryNatural, Tips: domain.Tips{}.Normalize()}
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO modules`).
		WithArgs("m1", "quake", "Q", "s", "b", "i", domain.CategoryNatural, `{"before":[],"during":[],"after":[]}`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	require.NoError(t, repo.Create(context.Background(), m))
	assert.Equal(t, now, m.CreatedAt)

	mock.ExpectQuery(`INSERT INTO modules`).
		WillReturnError(&pq.Error{Code: "23505"})
	err := repo.Create(context.Background(), m)
	assert.ErrorIs(t, err, domain.ErrSlugTaken)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestModuleRepository_Update(t *testing.T) {
	repo, mock, db := setupModuleRepo(t)
	defer db.Close()

	m := &domain.Module{ID: "m1", Slug: "quake", Tips: domain.Tips{}.Normalize()}

	mock.ExpectQuery(`UPDATE modules`).WillReturnError(sql.ErrNoRows)
	assert.ErrorIs(t, repo.Update(context.Background(), m), domain.ErrModuleNotFound)

	mock.ExpectQuery(`UPDATE modules`).WillReturnError(&pq.Error{Code: "23505"})
	assert.ErrorIs(t, repo.Update(context.Background(), m), domain.ErrSlugTaken)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestModuleRepository_Delete(t *testing.T) {
	repo, mock, db := setupModuleRepo(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM modules WHERE id = \$1`).
		WithArgs("m1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), "m1"))

	mock.ExpectExec(`DELETE FROM modules WHERE id = \$1`).
		WithArgs("m1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), "m1"), domain.ErrModuleNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}
