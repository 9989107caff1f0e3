package nats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Envelope wraps every published payload.
type Envelope struct {
	EventID    string          `json:"event_id"`
	Subject    string          `json:"subject"`
	OccurredAt time.Time       `json:"occurred_at"`
	Producer   string          `json:"producer"`
	Payload    json.RawMessage `json:"payload"`
}

// Conn is the subset of *nats.Conn used for publishing.
type Conn interface {
	Publish(subject string, data []byte) error
}

type Publisher struct {
	conn     Conn
	producer string
	now      func() time.Time
}

func NewPublisher(conn Conn, producer string) (*Publisher, error) {
	if conn == nil {
		return nil, errors.New("NATS connection cannot be nil")
	}
	return &Publisher{
		conn:     conn,
		producer: producer,
		now:      time.Now,
	}, nil
}

func (p *Publisher) Publish(ctx context.Context, subject string, message interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal payload for subject %s: %w", subject, err)
	}

	data, err := json.Marshal(Envelope{
		EventID:    uuid.NewString(),
		Subject:    subject,
		OccurredAt: p.now().UTC(),
		Producer:   p.producer,
		Payload:    payload,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal envelope for subject %s: %w", subject, err)
	}

	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish to NATS subject %s: %w", subject, err)
	}
	return nil
}
