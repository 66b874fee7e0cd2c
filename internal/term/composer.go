package term

import (
	"context"
	"strings"
)

// Submitter is the write half the composer needs; *poller.Poller
// satisfies it.
type Submitter interface {
	Submit(ctx context.Context, text string) error
}

// Composer holds the user's draft line. On a successful submit the draft
// is cleared; on failure it stays so the user can retry.
type Composer struct {
	draft string
}

// Set replaces the draft.
func (c *Composer) Set(text string) {
	c.draft = text
}

// Draft returns the current draft.
func (c *Composer) Draft() string {
	return c.draft
}

// Commit submits the draft. Whitespace-only drafts are dropped without a
// write. The draft is cleared on success (including the dropped-empty
// case) and kept on failure.
func (c *Composer) Commit(ctx context.Context, s Submitter) error {
	if strings.TrimSpace(c.draft) == "" {
		c.draft = ""
		return nil
	}
	if err := s.Submit(ctx, c.draft); err != nil {
		return err
	}
	c.draft = ""
	return nil
}
