package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alertwise/alertwise-backend/internal/admin/domain"
)

type StatsRepository struct {
	db *sql.DB
}

func NewStatsRepository(db *sql.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// Counts reads all dashboard totals in one round trip.
func (r *StatsRepository) Counts(ctx context.Context) (domain.Counts, error) {
	var c domain.Counts
	err := r.db.QueryRowContext(ctx, `
		SELECT
		  (SELECT COUNT(*) FROM citizens),
		  (SELECT COUNT(*) FROM sos_requests WHERE status = 'pending'),
		  (SELECT COUNT(*) FROM modules),
		  (SELECT COUNT(*) FROM quizzes)
	`).Scan(&c.TotalCitizens, &c.ActiveSOS, &c.TotalModules, &c.TotalQuizzes)
	if err != nil {
		return domain.Counts{}, fmt.Errorf("load dashboard counts: %w", err)
	}
	return c, nil
}
