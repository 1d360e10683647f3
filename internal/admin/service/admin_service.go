package service

import (
	"context"
	"time"

	"github.com/alertwise/alertwise-backend/internal/activity"
	"github.com/alertwise/alertwise-backend/internal/admin/domain"
	"github.com/alertwise/alertwise-backend/internal/platform/logger"
)

// RecentActivityLimit is how many feed entries the dashboard shows.
const RecentActivityLimit = 10

type Counter interface {
	Counts(ctx context.Context) (domain.Counts, error)
}

type AdminService struct {
	counter Counter
	feed    activity.Reader
	log     *logger.Logger
	now     func() time.Time
}

func NewAdminService(counter Counter, feed activity.Reader, log *logger.Logger) *AdminService {
	return &AdminService{
		counter: counter,
		feed:    feed,
		log:     log.With("service", "AdminService"),
		now:     time.Now,
	}
}

// Stats returns the dashboard totals and the latest activity. A feed
// failure leaves the activity list empty rather than failing the call.
func (s *AdminService) Stats(ctx context.Context) (*domain.Stats, error) {
	counts, err := s.counter.Counts(ctx)
	if err != nil {
		return nil, err
	}

	stats := &domain.Stats{Counts: counts, RecentActivity: []domain.ActivityEntry{}}
	if s.feed == nil {
		return stats, nil
	}

	events, err := s.feed.Recent(ctx, RecentActivityLimit)
	if err != nil {
		s.log.Warn("recent activity unavailable", "error", err)
		return stats, nil
	}

	now := s.now()
	for _, e := range events {
		stats.RecentActivity = append(stats.RecentActivity, domain.ActivityEntry{
			Kind:         string(e.Kind),
			Message:      e.Message,
			RelativeTime: activity.Relative(e.OccurredAt, now),
			OccurredAt:   e.OccurredAt,
		})
	}
	return stats, nil
}
