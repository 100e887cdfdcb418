package nats

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"match3battle/internal/battle"
)

type captured struct {
	subject string
	data    []byte
}

type fakeConn struct {
	sent []captured
	err  error
}

func (f *fakeConn) Publish(subject string, data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, captured{subject: subject, data: data})
	return nil
}

var _ battle.Progression = (*OutcomePublisher)(nil)

func TestOutcomePublisherPayload(t *testing.T) {
	conn := &fakeConn{}
	p := NewOutcomePublisher(conn, "match3.battle.outcome")
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return at }

	o := battle.Outcome{
		SessionID: "s-1",
		Result:    battle.Victory,
		Ref:       battle.Ref{LocationID: "forest", QuestID: "forest_boss"},
		Turns:     7,
	}
	require.NoError(t, p.ReportOutcome(context.Background(), o))
	require.Len(t, conn.sent, 1)
	assert.Equal(t, "match3.battle.outcome", conn.sent[0].subject)

	var msg OutcomeMessage
	require.NoError(t, json.Unmarshal(conn.sent[0].data, &msg))
	_, err := uuid.Parse(msg.ID)
	assert.NoError(t, err)
	assert.Equal(t, "s-1", msg.SessionID)
	assert.Equal(t, battle.Victory, msg.Result)
	assert.Equal(t, "forest", msg.LocationID)
	assert.Equal(t, "forest_boss", msg.QuestID)
	assert.Equal(t, 7, msg.Turns)
	assert.True(t, at.Equal(msg.At))
}

func TestOutcomePublisherErrors(t *testing.T) {
	boom := errors.New("no responders")
	p := NewOutcomePublisher(&fakeConn{err: boom}, "x")
	assert.ErrorIs(t, p.ReportOutcome(context.Background(), battle.Outcome{Result: battle.Defeat}), boom)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	conn := &fakeConn{}
	p = NewOutcomePublisher(conn, "x")
	assert.ErrorIs(t, p.ReportOutcome(ctx, battle.Outcome{}), context.Canceled)
	assert.Empty(t, conn.sent)
}
