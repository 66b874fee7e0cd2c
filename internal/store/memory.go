package store

import (
	"context"
	"sync"
	"time"
)

// MemoryLog is an in-memory MessageLog. It is the default for demo runs
// where nothing should outlive the process.
type MemoryLog struct {
	mu     sync.Mutex
	msgs   []Message
	nextID int64
}

// NewMemoryLog creates an empty in-memory message log.
func NewMemoryLog() *MemoryLog {
	return &MemoryLog{nextID: 1}
}

func (m *MemoryLog) Append(_ context.Context, msg Message) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	msg.ID = m.nextID
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	m.nextID++
	m.msgs = append(m.msgs, msg)
	return msg.ID, nil
}

func (m *MemoryLog) List(_ context.Context, limit int) ([]Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	msgs := m.msgs
	if limit > 0 && limit < len(msgs) {
		msgs = msgs[len(msgs)-limit:]
	}
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

func (m *MemoryLog) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.msgs = nil
	return nil
}

func (m *MemoryLog) Close() error {
	return nil
}
