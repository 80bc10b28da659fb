// Package eventbus drains aggregate event buffers onto RabbitMQ after a
// successful persistence commit. Events never leave the process before the
// write they describe is durable.
package eventbus

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-marketplace-ddd/internal/domain/event"
	"github.com/oksasatya/go-marketplace-ddd/pkg/helpers"
)

// envelope is the wire shape for a published domain event. The payload keeps
// the event struct's own JSON fields.
type envelope struct {
	Name        string          `json:"name"`
	AggregateID string          `json:"aggregate_id"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Payload     json.RawMessage `json:"payload"`
}

// Recorder is the part of an aggregate the publisher needs: the pending
// events and the ability to clear them once published.
type Recorder interface {
	Events() []event.Event
	ClearEvents()
}

// Publisher publishes domain events to a durable queue.
type Publisher struct {
	rabbit *helpers.RabbitPublisher
	logger *logrus.Logger
}

func NewPublisher(rabbit *helpers.RabbitPublisher, logger *logrus.Logger) *Publisher {
	return &Publisher{rabbit: rabbit, logger: logger}
}

// Drain publishes every pending event of the aggregate in recording order,
// then clears the buffer. Publish failures are logged and swallowed: the
// state change is already committed and must not be rolled back for a
// messaging hiccup.
func (p *Publisher) Drain(ctx context.Context, agg Recorder) {
	if p == nil || p.rabbit == nil {
		if agg != nil {
			agg.ClearEvents()
		}
		return
	}
	for _, e := range agg.Events() {
		if err := p.publish(ctx, e); err != nil {
			helpers.LogError(p.logger, "publish domain event", err, logrus.Fields{
				"event":        e.EventName(),
				"aggregate_id": e.AggregateID(),
			})
		}
	}
	agg.ClearEvents()
}

func (p *Publisher) publish(ctx context.Context, e event.Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return p.rabbit.PublishJSON(ctx, envelope{
		Name:        e.EventName(),
		AggregateID: e.AggregateID(),
		OccurredAt:  e.OccurredAt(),
		Payload:     payload,
	})
}
