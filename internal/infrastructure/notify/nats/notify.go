// Package nats consumes workflow-engine step-change events so pending
// queues refresh without polling.
package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/ggh0223/lias-client-sub001/internal/core/ports"
)

var _ ports.StepEventSource = (*Subscriber)(nil)

type Subscriber struct {
	conn    *nats.Conn
	subject string
}

func New(url, subject string) (*Subscriber, error) {
	conn, err := nats.Connect(
		url,
		nats.Name("lias-client-gateway"),
		nats.Timeout(2*time.Second),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(60),
		nats.RetryOnFailedConnect(true),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			slog.Warn("nats_disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			slog.Info("nats_reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return &Subscriber{conn: conn, subject: subject}, nil
}

func (s *Subscriber) Close() {
	if s.conn != nil {
		s.conn.Close()
	}
}

type stepEvent struct {
	UserID     string `json:"user_id"`
	DocumentID string `json:"document_id"`
}

// SubscribeStepChanges invokes handler with the affected user id for every
// step-change event. Malformed events are logged and skipped.
func (s *Subscriber) SubscribeStepChanges(ctx context.Context, handler func(ctx context.Context, userID string) error) error {
	sub, err := s.conn.Subscribe(s.subject, func(msg *nats.Msg) {
		var event stepEvent
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			slog.Warn("step_event_malformed", "subject", s.subject, "error", err)
			return
		}
		if event.UserID == "" {
			slog.Warn("step_event_missing_user", "subject", s.subject)
			return
		}
		if err := handler(ctx, event.UserID); err != nil {
			slog.Warn("step_event_handler_failed", "user_id", event.UserID, "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", s.subject, err)
	}

	go func() {
		<-ctx.Done()
		_ = sub.Unsubscribe()
	}()
	return nil
}
