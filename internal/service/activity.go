package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// ActivityPublisher emits best-effort domain events for downstream consumers
// (audit trails, notifications). Publishing never blocks or fails the request
// that triggered the event.
type ActivityPublisher interface {
	Publish(ctx context.Context, action string, metadata map[string]interface{})
}

type activityEvent struct {
	Action   string                 `json:"action"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	SentAt   time.Time              `json:"sent_at"`
}

type natsActivityPublisher struct {
	conn    *nats.Conn
	subject string
	logger  zerolog.Logger
}

// NewActivityPublisher constructs a NATS-backed publisher. A nil connection
// yields a publisher that drops every event, so callers never have to guard.
func NewActivityPublisher(conn *nats.Conn, subject string, logger zerolog.Logger) ActivityPublisher {
	return &natsActivityPublisher{
		conn:    conn,
		subject: subject,
		logger:  logger.With().Str("component", "activity_publisher").Logger(),
	}
}

func (p *natsActivityPublisher) Publish(_ context.Context, action string, metadata map[string]interface{}) {
	if p.conn == nil || p.subject == "" {
		return
	}

	payload, err := json.Marshal(activityEvent{
		Action:   action,
		Metadata: metadata,
		SentAt:   time.Now().UTC(),
	})
	if err != nil {
		p.logger.Warn().Err(err).Str("action", action).Msg("failed to encode activity event")
		return
	}

	if err := p.conn.Publish(p.subject, payload); err != nil {
		p.logger.Warn().Err(err).Str("action", action).Msg("failed to publish activity event")
	}
}
