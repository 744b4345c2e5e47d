package terminal

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/kirillkom/docqa-client/internal/core/domain"
)

// Notifier prints notifications as dialog lines.
type Notifier struct {
	mu sync.Mutex
	w  io.Writer
}

func NewNotifier(w io.Writer) *Notifier {
	return &Notifier{w: w}
}

func (n *Notifier) Notify(_ context.Context, notification domain.Notification) error {
	prefix := "[ok]"
	if notification.Level == domain.LevelError {
		prefix = "[error]"
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if _, err := fmt.Fprintf(n.w, "%s %s\n", prefix, notification.Message); err != nil {
		return fmt.Errorf("write notification: %w", err)
	}
	return nil
}
