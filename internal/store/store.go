package store

import (
	"context"
	"time"
)

// Message is a persisted entry in the gateway's message log.
type Message struct {
	ID        int64
	MsgID     string // wire-level uuid, distinct from the row id
	Kind      string
	Sender    string
	Text      string
	CreatedAt time.Time
}

// MessageLog is the storage surface the demo gateway needs. Implementations
// must be safe for concurrent use.
type MessageLog interface {
	Append(ctx context.Context, msg Message) (int64, error)
	// List returns messages in append order. A positive limit keeps only
	// the most recent entries; non-positive returns everything.
	List(ctx context.Context, limit int) ([]Message, error)
	Clear(ctx context.Context) error
	Close() error
}
