package notify

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/doccontrol-backend/internal/domain"
)

// LogSink writes notifications to the log. Used when no transport is configured.
type LogSink struct {
	log *slog.Logger
}

// NewLogSink creates a LogSink.
func NewLogSink(log *slog.Logger) *LogSink {
	return &LogSink{log: log.With("sink", "log")}
}

// Send logs n at info level.
func (s *LogSink) Send(ctx context.Context, n domain.Notification) error {
	s.log.InfoContext(ctx, "notification",
		slog.String("user_id", n.UserID.String()),
		slog.String("title", n.Title),
		slog.String("message", n.Message),
		slog.String("entity_type", n.EntityType),
		slog.String("entity_id", n.EntityID),
	)
	return nil
}
