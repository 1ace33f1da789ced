package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"volunteerHub/internal/lib/logger/handlers/slogdiscard"
	"volunteerHub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistration() models.Registration {
	return models.Registration{
		RegistrationKey: models.RegistrationKey{
			ParticipantID: 11,
			EventID:       4,
			Start:         time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC),
		},
		Status: models.StatusCancelled,
	}
}

func TestPublisher_StatusChanged(t *testing.T) {
	log := slogdiscard.NewDiscardLogger()
	pubSub := NewGoChannel(log)
	defer pubSub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	msgs, err := pubSub.Subscribe(ctx, TopicRegistrationStatusChanged)
	require.NoError(t, err)

	fixed := time.Date(2025, 6, 30, 8, 0, 0, 0, time.UTC)
	p := NewPublisher(log, pubSub)
	p.now = func() time.Time { return fixed }

	p.RegistrationStatusChanged(ctx, testRegistration(), models.StatusTBD)

	select {
	case msg := <-msgs:
		msg.Ack()

		var ev RegistrationEvent
		require.NoError(t, json.Unmarshal(msg.Payload, &ev))

		assert.Equal(t, 11, ev.ParticipantID)
		assert.Equal(t, 4, ev.EventID)
		assert.Equal(t, models.StatusCancelled, ev.Status)
		assert.Equal(t, models.StatusTBD, ev.PreviousStatus)
		assert.True(t, fixed.Equal(ev.OccurredAt))
		assert.NotEmpty(t, msg.UUID)
	case <-ctx.Done():
		t.Fatal("event was not delivered")
	}
}

func TestPublisher_Nil(t *testing.T) {
	var p *Publisher

	assert.NotPanics(t, func() {
		p.RegistrationCreated(context.Background(), testRegistration())
		p.RegistrationRemoved(context.Background(), testRegistration())
	})
}

func TestRunAuditLog(t *testing.T) {
	log := slogdiscard.NewDiscardLogger()
	pubSub := NewGoChannel(log)
	defer pubSub.Close()

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- RunAuditLog(ctx, log, pubSub)
	}()

	p := NewPublisher(log, pubSub)
	p.RegistrationCreated(ctx, testRegistration())

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("audit log did not stop after cancellation")
	}
}
