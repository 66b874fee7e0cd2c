package sqlite

import (
	"context"
	"testing"

	"github.com/disasternet/relay/internal/store"
)

func newTestLog(t *testing.T) *Log {
	t.Helper()

	l, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory log: %v", err)
	}
	t.Cleanup(func() { l.Close() })
	return l
}

func TestAppendAndList(t *testing.T) {
	l := newTestLog(t)
	ctx := context.Background()

	texts := []string{"need water at shelter 3", "road to north bridge blocked", "all clear downtown"}
	for i, text := range texts {
		id, err := l.Append(ctx, store.Message{MsgID: "m", Kind: "CHAT", Sender: "UI", Text: text})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
		if id != int64(i+1) {
			t.Errorf("expected row id %d, got %d", i+1, id)
		}
	}

	msgs, err := l.List(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(msgs) != len(texts) {
		t.Fatalf("expected %d messages, got %d", len(texts), len(msgs))
	}
	for i, m := range msgs {
		if m.Text != texts[i] {
			t.Errorf("message %d: expected %q, got %q", i, texts[i], m.Text)
		}
	}
}

func TestListLimitKeepsMostRecent(t *testing.T) {
	l := newTestLog(t)
	ctx := context.Background()

	for _, text := range []string{"one", "two", "three", "four"} {
		if _, err := l.Append(ctx, store.Message{MsgID: "m", Kind: "CHAT", Sender: "UI", Text: text}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	msgs, err := l.List(ctx, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Text != "three" || msgs[1].Text != "four" {
		t.Errorf("expected the two most recent in order, got %q, %q", msgs[0].Text, msgs[1].Text)
	}
}

func TestClear(t *testing.T) {
	l := newTestLog(t)
	ctx := context.Background()

	if _, err := l.Append(ctx, store.Message{MsgID: "m", Kind: "SOS", Sender: "UI", Text: "trapped"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := l.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}

	msgs, err := l.List(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(msgs) != 0 {
		t.Errorf("expected empty log after clear, got %d messages", len(msgs))
	}
}
