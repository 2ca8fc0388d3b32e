package alerts

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/restock/pkg/stock"
)

// DefaultStreamMaxLen caps the stream length when no limit is configured.
const DefaultStreamMaxLen = 10000

// Stream publishes alerts to a Redis stream for other services to consume.
type Stream struct {
	client redis.Cmdable
	key    string
	maxLen int64
}

// StreamOption configures a Stream.
type StreamOption func(*Stream)

// WithMaxLen sets the approximate stream length kept by XADD.
func WithMaxLen(n int64) StreamOption {
	return func(s *Stream) {
		if n > 0 {
			s.maxLen = n
		}
	}
}

// NewStream returns a subscriber that appends alerts to the stream at key.
func NewStream(client redis.Cmdable, key string, opts ...StreamOption) *Stream {
	s := &Stream{client: client, key: key, maxLen: DefaultStreamMaxLen}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Stream) Channel() string { return ChannelStream }

// Key returns the stream key.
func (s *Stream) Key() string { return s.key }

func (s *Stream) Receive(ctx context.Context, alert stock.Alert) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}

	err = s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: s.key,
		MaxLen: s.maxLen,
		Approx: true,
		Values: map[string]any{
			"id":          alert.ID,
			"resource":    alert.Resource,
			"count":       strconv.Itoa(alert.Count),
			"previous":    strconv.Itoa(alert.Previous),
			"forced":      strconv.FormatBool(alert.Forced),
			"occurred_at": alert.OccurredAt.UTC().Format(time.RFC3339Nano),
			"alert":       string(payload),
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}
	return nil
}
