// Package events publishes registration changes after they are committed
// and logs them through an audit consumer.
package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"volunteerHub/internal/lib/logger/sl"
	"volunteerHub/internal/models"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

const (
	TopicRegistrationCreated       = "registration.created"
	TopicRegistrationStatusChanged = "registration.status_changed"
	TopicRegistrationRemoved       = "registration.removed"
)

var Topics = []string{
	TopicRegistrationCreated,
	TopicRegistrationStatusChanged,
	TopicRegistrationRemoved,
}

type RegistrationEvent struct {
	ParticipantID  int           `json:"participant_id"`
	EventID        int           `json:"event_id"`
	Start          time.Time     `json:"event_datetime_start"`
	Status         models.Status `json:"status"`
	PreviousStatus models.Status `json:"previous_status,omitempty"`
	OccurredAt     time.Time     `json:"occurred_at"`
}

// NewGoChannel returns the in-process pub/sub used as both publisher and
// subscriber.
func NewGoChannel(log *slog.Logger) *gochannel.GoChannel {
	return gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NewSlogLogger(log),
	)
}

// Publisher is nil safe: a nil *Publisher drops every event.
type Publisher struct {
	pub message.Publisher
	log *slog.Logger
	now func() time.Time
}

func NewPublisher(log *slog.Logger, pub message.Publisher) *Publisher {
	return &Publisher{
		pub: pub,
		log: log.With(slog.String("component", "events/publisher")),
		now: time.Now,
	}
}

func (p *Publisher) RegistrationCreated(ctx context.Context, reg models.Registration) {
	p.publish(ctx, TopicRegistrationCreated, reg, "")
}

func (p *Publisher) RegistrationStatusChanged(ctx context.Context, reg models.Registration, prev models.Status) {
	p.publish(ctx, TopicRegistrationStatusChanged, reg, prev)
}

func (p *Publisher) RegistrationRemoved(ctx context.Context, reg models.Registration) {
	p.publish(ctx, TopicRegistrationRemoved, reg, reg.Status)
}

// publish never fails the caller: the change is already committed.
func (p *Publisher) publish(ctx context.Context, topic string, reg models.Registration, prev models.Status) {
	if p == nil || p.pub == nil {
		return
	}

	payload, err := json.Marshal(RegistrationEvent{
		ParticipantID:  reg.ParticipantID,
		EventID:        reg.EventID,
		Start:          reg.Start,
		Status:         reg.Status,
		PreviousStatus: prev,
		OccurredAt:     p.now().UTC(),
	})
	if err != nil {
		p.log.Error("failed to encode event", slog.String("topic", topic), sl.Err(err))
		return
	}

	msg := message.NewMessage(uuid.NewString(), payload)
	msg.SetContext(ctx)

	if err = p.pub.Publish(topic, msg); err != nil {
		p.log.Error("failed to publish event", slog.String("topic", topic), sl.Err(err))
		return
	}

	p.log.Debug("event published", slog.String("topic", topic), slog.String("uuid", msg.UUID))
}
