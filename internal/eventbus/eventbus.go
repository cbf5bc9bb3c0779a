// Package eventbus fans domain events out to live listeners: browsers over
// the WebSocket hub and, when configured, a RabbitMQ topic exchange.
package eventbus

import (
	"context"
	"sync"
	"time"
)

// Event types emitted by the services.
const (
	PanierUpdated     = "panier.updated"
	PanierDeleted     = "panier.deleted"
	PaiementCreated   = "paiement.created"
	PaiementCancelled = "paiement.cancelled"
	NaCashRedeemed    = "nacash.redeemed"
	NaCashImported    = "nacash.imported"
	CatalogChanged    = "catalog.changed"
)

type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
	At      time.Time   `json:"at"`
}

func New(eventType string, payload interface{}) Event {
	return Event{Type: eventType, Payload: payload, At: time.Now()}
}

// Publisher delivers events. Publish must not block the caller for long and
// never fails the operation that produced the event.
type Publisher interface {
	Publish(ctx context.Context, ev Event)
}

// Multi publishes to every publisher in order.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, ev Event) {
	for _, p := range m {
		if p != nil {
			p.Publish(ctx, ev)
		}
	}
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) {}

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(_ context.Context, ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

// Types returns the recorded event types in publish order.
func (r *Recorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Type
	}
	return out
}
