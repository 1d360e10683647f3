package activity

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	feedKey     = "alertwise:activity"        // capped list, newest at the head
	feedChannel = "alertwise:activity:events" // pub/sub fan-out of every recorded event
	feedMaxLen  = 100
)

// RedisFeed stores events in a capped Redis list and publishes each one.
type RedisFeed struct {
	client *redis.Client
}

func NewRedisFeed(client *redis.Client) *RedisFeed {
	return &RedisFeed{client: client}
}

func (f *RedisFeed) Record(ctx context.Context, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal activity: %w", err)
	}

	pipe := f.client.TxPipeline()
	pipe.LPush(ctx, feedKey, data)
	pipe.LTrim(ctx, feedKey, 0, feedMaxLen-1)
	pipe.Publish(ctx, feedChannel, data)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record activity: %w", err)
	}
	return nil
}

// Recent returns up to n events, newest first. Malformed entries are skipped.
func (f *RedisFeed) Recent(ctx context.Context, n int) ([]Event, error) {
	if n <= 0 {
		return []Event{}, nil
	}

	raw, err := f.client.LRange(ctx, feedKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read activity: %w", err)
	}

	events := make([]Event, 0, len(raw))
	for _, item := range raw {
		var e Event
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			continue
		}
		events = append(events, e)
	}
	return events, nil
}

// Subscribe exposes the event channel for consumers that want a live tail.
func (f *RedisFeed) Subscribe(ctx context.Context) *redis.PubSub {
	return f.client.Subscribe(ctx, feedChannel)
}
