package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/kirillkom/docqa-client/internal/core/domain"
	"github.com/kirillkom/docqa-client/internal/core/ports"
)

// reporter delivers notifications and operation metrics for both coordinators.
type reporter struct {
	notifier ports.Notifier
	recorder ports.OperationRecorder
	logger   *slog.Logger
	now      func() time.Time
}

func newReporter(notifier ports.Notifier, recorder ports.OperationRecorder, logger *slog.Logger) reporter {
	if logger == nil {
		logger = slog.Default()
	}
	return reporter{
		notifier: notifier,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
}

func (r reporter) start(operation string) time.Time {
	if r.recorder != nil {
		r.recorder.StartOperation(operation)
	}
	return r.now()
}

func (r reporter) finish(operation string, started time.Time, err error) {
	if r.recorder != nil {
		r.recorder.FinishOperation(operation, outcomeOf(err), r.now().Sub(started))
	}
}

func (r reporter) notifySuccess(ctx context.Context, session *domain.Session, message, detail string) {
	r.notify(ctx, domain.Notification{
		SessionID: session.ID(),
		Kind:      domain.NotifyUploadSucceeded,
		Level:     domain.LevelInfo,
		Message:   message,
		Detail:    detail,
		At:        r.now().UTC(),
	})
}

func (r reporter) notifyFailure(ctx context.Context, session *domain.Session, err error) {
	r.notify(ctx, domain.Notification{
		SessionID: sessionID(session),
		Kind:      notificationKind(err),
		Level:     domain.LevelError,
		Message:   UserMessage(err),
		Detail:    err.Error(),
		At:        r.now().UTC(),
	})
}

func (r reporter) notify(ctx context.Context, notification domain.Notification) {
	if r.notifier == nil {
		return
	}
	if err := r.notifier.Notify(ctx, notification); err != nil {
		r.logger.Warn("notification_failed",
			"session_id", notification.SessionID,
			"kind", string(notification.Kind),
			"error", err,
		)
	}
}

func sessionID(session *domain.Session) string {
	if session == nil {
		return ""
	}
	return session.ID()
}
