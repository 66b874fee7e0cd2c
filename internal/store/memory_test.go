package store

import (
	"context"
	"testing"
)

func TestMemoryLogAppendOrder(t *testing.T) {
	l := NewMemoryLog()
	ctx := context.Background()

	for _, text := range []string{"a", "b", "c"} {
		if _, err := l.Append(ctx, Message{Text: text}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	msgs, err := l.List(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	for i, want := range []string{"a", "b", "c"} {
		if msgs[i].Text != want {
			t.Errorf("message %d: expected %q, got %q", i, want, msgs[i].Text)
		}
	}
}

func TestMemoryLogLimitAndClear(t *testing.T) {
	l := NewMemoryLog()
	ctx := context.Background()

	for _, text := range []string{"a", "b", "c"} {
		if _, err := l.Append(ctx, Message{Text: text}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	msgs, err := l.List(ctx, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(msgs) != 2 || msgs[0].Text != "b" || msgs[1].Text != "c" {
		t.Fatalf("expected most recent two in order, got %+v", msgs)
	}

	if err := l.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	msgs, _ = l.List(ctx, 0)
	if len(msgs) != 0 {
		t.Errorf("expected empty log after clear, got %d", len(msgs))
	}
}
