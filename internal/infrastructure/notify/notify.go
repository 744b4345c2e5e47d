package notify

import (
	"context"
	"errors"
	"log/slog"

	"github.com/kirillkom/docqa-client/internal/core/domain"
	"github.com/kirillkom/docqa-client/internal/core/ports"
)

// Fanout delivers every notification to all of its notifiers.
type Fanout []ports.Notifier

func (f Fanout) Notify(ctx context.Context, notification domain.Notification) error {
	var errs []error
	for _, n := range f {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, notification); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LogNotifier writes notifications to a structured logger.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, notification domain.Notification) error {
	level := slog.LevelInfo
	if notification.Level == domain.LevelError {
		level = slog.LevelWarn
	}
	n.logger.Log(ctx, level, "user_notification",
		"session_id", notification.SessionID,
		"kind", string(notification.Kind),
		"message", notification.Message,
		"detail", notification.Detail,
	)
	return nil
}
