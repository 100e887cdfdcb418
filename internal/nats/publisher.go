package nats

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"match3battle/internal/battle"
)

// Conn is the part of *nats.Conn the publisher needs.
type Conn interface {
	Publish(subject string, data []byte) error
}

// OutcomeMessage is the payload published when a battle ends.
type OutcomeMessage struct {
	ID         string        `json:"id"`
	SessionID  string        `json:"session_id"`
	Result     battle.Result `json:"result"`
	LocationID string        `json:"location_id,omitempty"`
	QuestID    string        `json:"quest_id,omitempty"`
	Turns      int           `json:"turns"`
	At         time.Time     `json:"at"`
}

// OutcomePublisher reports battle outcomes to a subject. It satisfies
// battle.Progression.
type OutcomePublisher struct {
	conn    Conn
	subject string
	now     func() time.Time
	logger  *slog.Logger
}

func NewOutcomePublisher(conn Conn, subject string) *OutcomePublisher {
	return &OutcomePublisher{
		conn:    conn,
		subject: subject,
		now:     time.Now,
		logger:  slog.Default(),
	}
}

func (p *OutcomePublisher) ReportOutcome(ctx context.Context, o battle.Outcome) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := OutcomeMessage{
		ID:         uuid.NewString(),
		SessionID:  o.SessionID,
		Result:     o.Result,
		LocationID: o.LocationID,
		QuestID:    o.QuestID,
		Turns:      o.Turns,
		At:         p.now().UTC(),
	}
	data, err := json.Marshal(msg)
	if err != nil {
		p.logger.Error("failed to marshal outcome", "error", err)
		return err
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		p.logger.Error("failed to publish outcome", "subject", p.subject, "session", o.SessionID, "error", err)
		return err
	}
	p.logger.Debug("published outcome", "subject", p.subject, "session", o.SessionID, "result", o.Result)
	return nil
}
