// Package activity keeps a short feed of recent platform events for the
// administrator dashboard.
package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/alertwise/alertwise-backend/internal/platform/logger"
)

type Kind string

const (
	KindUser    Kind = "user"
	KindSOS     Kind = "sos"
	KindContent Kind = "content"
	KindQuiz    Kind = "quiz"
	KindSystem  Kind = "system"
)

type Event struct {
	Kind       Kind      `json:"kind"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Recorder interface {
	Record(ctx context.Context, e Event) error
}

type Reader interface {
	Recent(ctx context.Context, n int) ([]Event, error)
}

// Feed is a Recorder that can also be read back.
type Feed interface {
	Recorder
	Reader
}

// RecordQuietly records an event stamped now. A failure is logged and
// otherwise ignored so the feed never fails the request that produced it.
func RecordQuietly(ctx context.Context, r Recorder, log *logger.Logger, kind Kind, message string) {
	if r == nil {
		return
	}
	e := Event{Kind: kind, Message: message, OccurredAt: time.Now().UTC()}
	if err := r.Record(ctx, e); err != nil {
		log.Warn("activity record failed", "kind", kind, "error", err)
	}
}

// Relative renders the age of t as seen at now, e.g. "10 mins ago".
func Relative(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d/time.Minute), "min")
	case d < 24*time.Hour:
		return plural(int(d/time.Hour), "hour")
	default:
		return plural(int(d/(24*time.Hour)), "day")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// NopFeed is used when Redis is not configured.
type NopFeed struct{}

func (NopFeed) Record(context.Context, Event) error { return nil }

func (NopFeed) Recent(context.Context, int) ([]Event, error) { return []Event{}, nil }
