package cronjob

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/alertwise/alertwise-backend/internal/activity"
	"github.com/alertwise/alertwise-backend/internal/platform/logger"
	"github.com/alertwise/alertwise-backend/internal/platform/metrics"
)

// PendingCounter counts pending SOS requests created before cutoff.
type PendingCounter interface {
	CountPendingOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}

// Scheduler periodically checks for SOS requests that have waited longer
// than the threshold without an operator decision.
type Scheduler struct {
	counter   PendingCounter
	feed      activity.Recorder
	metrics   *metrics.Metrics
	log       *logger.Logger
	schedule  string
	threshold time.Duration
	now       func() time.Time

	cron *cron.Cron
}

func NewScheduler(counter PendingCounter, feed activity.Recorder, m *metrics.Metrics, log *logger.Logger, schedule string, threshold time.Duration) *Scheduler {
	return &Scheduler{
		counter:   counter,
		feed:      feed,
		metrics:   m,
		log:       log.With("job", "sos_backlog"),
		schedule:  schedule,
		threshold: threshold,
		now:       time.Now,
	}
}

// Start registers the backlog check and starts the cron runner.
func (s *Scheduler) Start() error {
	c := cron.New()

	if _, err := c.AddFunc(s.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := s.RunOnce(ctx); err != nil {
			s.log.Error("backlog check failed", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("schedule backlog check %q: %w", s.schedule, err)
	}

	s.cron = c
	c.Start()
	s.log.Info("backlog monitor started", "schedule", s.schedule, "threshold", s.threshold.String())
	return nil
}

// Stop halts the runner and waits for a running check to finish.
func (s *Scheduler) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
}

// RunOnce performs a single backlog check and returns the stale count.
func (s *Scheduler) RunOnce(ctx context.Context) (int, error) {
	cutoff := s.now().UTC().Add(-s.threshold)

	n, err := s.counter.CountPendingOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	s.metrics.SetSOSPendingStale(n)
	if n > 0 {
		s.log.Warn("sos requests waiting for an operator", "count", n, "older_than", s.threshold.String())
		activity.RecordQuietly(ctx, s.feed, s.log, activity.KindSystem,
			fmt.Sprintf("%d SOS request(s) pending for more than %s", n, s.threshold))
	}
	return n, nil
}
