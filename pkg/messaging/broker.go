package messaging

import (
	"context"
)

// Broker defines the interface for message brokers
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
	Close() error
}

// EventsChannel carries every entity mutation event.
const EventsChannel = "agendou:events"

// Message is the envelope published for every entity mutation.
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
