// Package redis publishes notifications to a Redis pub/sub channel for the
// delivery gateway to fan out.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/heartmarshall/doccontrol-backend/internal/domain"
)

type publisher interface {
	Publish(ctx context.Context, channel string, message any) *goredis.IntCmd
}

// Sink implements notify.Sink over Redis PUBLISH.
type Sink struct {
	client  publisher
	channel string
	now     func() time.Time
}

// NewSink creates a Sink publishing to channel.
func NewSink(client publisher, channel string) *Sink {
	return &Sink{client: client, channel: channel, now: time.Now}
}

// Dial connects to addr and verifies the connection with PING.
func Dial(ctx context.Context, addr string) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return rdb, nil
}

type message struct {
	UserID     string    `json:"user_id"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	SentAt     time.Time `json:"sent_at"`
}

// Send publishes n as JSON.
func (s *Sink) Send(ctx context.Context, n domain.Notification) error {
	raw, err := json.Marshal(message{
		UserID:     n.UserID.String(),
		Title:      n.Title,
		Message:    n.Message,
		EntityType: n.EntityType,
		EntityID:   n.EntityID,
		SentAt:     s.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	if err := s.client.Publish(ctx, s.channel, raw).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", s.channel, err)
	}
	return nil
}
