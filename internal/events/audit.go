package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"volunteerHub/internal/lib/logger/sl"

	"github.com/ThreeDotsLabs/watermill/message"
)

// RunAuditLog logs every registration event until ctx is done.
func RunAuditLog(ctx context.Context, log *slog.Logger, sub message.Subscriber) error {
	log = log.With(slog.String("component", "events/audit"))

	var wg sync.WaitGroup

	for _, topic := range Topics {
		msgs, err := sub.Subscribe(ctx, topic)
		if err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", topic, err)
		}

		wg.Add(1)
		go func(topic string, msgs <-chan *message.Message) {
			defer wg.Done()

			for msg := range msgs {
				auditMessage(log, topic, msg)
				msg.Ack()
			}
		}(topic, msgs)
	}

	log.Info("audit log started")

	wg.Wait()

	log.Info("audit log stopped")

	return nil
}

func auditMessage(log *slog.Logger, topic string, msg *message.Message) {
	var ev RegistrationEvent
	if err := json.Unmarshal(msg.Payload, &ev); err != nil {
		log.Error("malformed event", slog.String("topic", topic), slog.String("uuid", msg.UUID), sl.Err(err))
		return
	}

	log.Info("registration event",
		slog.String("topic", topic),
		slog.String("uuid", msg.UUID),
		slog.Int("participant_id", ev.ParticipantID),
		slog.Int("event_id", ev.EventID),
		slog.Time("event_datetime_start", ev.Start),
		slog.String("status", string(ev.Status)),
		slog.String("previous_status", string(ev.PreviousStatus)),
	)
}
