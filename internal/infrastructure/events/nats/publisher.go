package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/kirillkom/docqa-client/internal/core/domain"
)

// Publisher mirrors user notifications to a NATS subject.
type Publisher struct {
	conn    *nats.Conn
	subject string
}

type Options struct {
	ConnectTimeout time.Duration
	ReconnectWait  time.Duration
	MaxReconnects  int
	Logger         *slog.Logger
}

func NewWithOptions(url, subject string, options Options) (*Publisher, error) {
	connectTimeout := options.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = 2 * time.Second
	}
	reconnectWait := options.ReconnectWait
	if reconnectWait <= 0 {
		reconnectWait = 2 * time.Second
	}
	maxReconnects := options.MaxReconnects
	if maxReconnects <= 0 {
		maxReconnects = 60
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := nats.Connect(
		url,
		nats.Name("docqa-client"),
		nats.Timeout(connectTimeout),
		nats.ReconnectWait(reconnectWait),
		nats.MaxReconnects(maxReconnects),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("nats_disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats_reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return &Publisher{conn: conn, subject: subject}, nil
}

func (p *Publisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}

func (p *Publisher) Notify(_ context.Context, notification domain.Notification) error {
	msg, err := encodeNotification(p.subject, notification)
	if err != nil {
		return err
	}
	if err := p.conn.PublishMsg(msg); err != nil {
		return fmt.Errorf("nats publish: %w", err)
	}
	return nil
}

func encodeNotification(subject string, notification domain.Notification) (*nats.Msg, error) {
	payload, err := json.Marshal(notification)
	if err != nil {
		return nil, fmt.Errorf("marshal notification: %w", err)
	}
	msg := nats.NewMsg(subject)
	msg.Data = payload
	msg.Header.Set("Docqa-Kind", string(notification.Kind))
	msg.Header.Set("Docqa-Session", notification.SessionID)
	return msg, nil
}
