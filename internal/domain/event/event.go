// Package event defines the immutable records aggregates emit for their own
// state changes, and the per-aggregate buffer that accumulates them. The
// core performs no I/O; an external publisher drains the buffer after a
// successful persistence commit.
package event

import "time"

// Event is a domain event record. Implementations are immutable value
// structs; payload fields are exported for JSON publishing.
type Event interface {
	EventName() string
	AggregateID() string
	OccurredAt() time.Time
}

type base struct {
	ID         string    `json:"aggregate_id"`
	OccurredOn time.Time `json:"occurred_at"`
}

func newBase(aggregateID string) base {
	return base{ID: aggregateID, OccurredOn: time.Now().UTC()}
}

func (b base) AggregateID() string   { return b.ID }
func (b base) OccurredAt() time.Time { return b.OccurredOn }

// Buffer is embedded in aggregates to collect events in mutation order.
// It is not safe for concurrent use; aggregates are single-writer.
type Buffer struct {
	events []Event
}

// Record appends one event. Aggregates call it exactly once per observable
// mutation and never for no-ops.
func (b *Buffer) Record(e Event) {
	b.events = append(b.events, e)
}

// Events returns the pending events in order. The returned slice is a copy.
func (b *Buffer) Events() []Event {
	out := make([]Event, len(b.events))
	copy(out, b.events)
	return out
}

// ClearEvents empties the buffer; the publisher calls it after a successful
// commit and publish.
func (b *Buffer) ClearEvents() {
	b.events = nil
}
