// Package poller keeps a local view of peers and messages approximately
// fresh by polling the relay on a fixed interval, and submits user-authored
// messages. Freshness is best-effort: a failed tick leaves the previous
// view stale until the next successful one.
package poller

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/disasternet/relay/internal/mesh"
	"github.com/disasternet/relay/internal/seal"
)

// Gateway is the read/write surface the poller needs. *mesh.Client
// satisfies it; tests substitute fakes.
type Gateway interface {
	Peers(ctx context.Context) (mesh.PeerSnapshot, error)
	Messages(ctx context.Context) (mesh.MessageList, error)
	Send(ctx context.Context, msg mesh.Outbound) (json.RawMessage, error)
}

// View is the rendered snapshot. It is replaced wholesale on every applied
// poll result, never merged.
type View struct {
	Peers      mesh.PeerSnapshot
	Messages   mesh.MessageList
	PeersOK    bool // false renders the empty-peers marker
	MessagesOK bool // false renders the "no messages available" fallback
	UpdatedAt  time.Time
}

// Poller owns the polling lifecycle as an explicit resource: Start begins
// the ticker, Stop cancels it and guarantees no in-flight completion
// mutates the view afterwards.
type Poller struct {
	gw       Gateway
	interval time.Duration
	log      *zerolog.Logger
	kind     string
	sealer   *seal.Sealer // optional
	onUpdate func(View)   // optional, called with the mutex held

	mu   sync.Mutex
	view View

	running bool
	gen     uint64 // bumped on every Stop, guards late completions
	cancel  context.CancelFunc

	seq            uint64 // tick sequence, shared by both streams
	appliedPeerSeq uint64
	appliedMsgSeq  uint64
}

// Option configures a Poller.
type Option func(*Poller)

// WithSealer makes the poller open sealed message text on reads and seal
// outbound text on Submit.
func WithSealer(s *seal.Sealer) Option {
	return func(p *Poller) { p.sealer = s }
}

// WithKind sets the outbound message type. The wire accepts any string;
// defaults to CHAT.
func WithKind(kind string) Option {
	return func(p *Poller) { p.kind = kind }
}

// WithOnUpdate registers a hook invoked after every applied view replace.
// The hook receives a copy of the view and must not call back into the
// poller.
func WithOnUpdate(fn func(View)) Option {
	return func(p *Poller) { p.onUpdate = fn }
}

// New builds a poller. The interval is fixed for the poller's lifetime; no
// backoff, no jitter.
func New(gw Gateway, interval time.Duration, logger *zerolog.Logger, opts ...Option) *Poller {
	p := &Poller{
		gw:       gw,
		interval: interval,
		log:      logger,
		kind:     mesh.KindChat,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start begins polling. Calling Start on a running poller is a no-op. The
// first tick fires immediately, then every interval.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	ctx, p.cancel = context.WithCancel(ctx)
	gen := p.gen
	p.mu.Unlock()

	go p.loop(ctx, gen)
}

// Stop cancels the ticker and discards any in-flight completions. It is
// idempotent and safe to call on a poller that was never started.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}
	p.running = false
	p.gen++
	p.cancel()
	p.cancel = nil
}

// Snapshot returns a copy of the current view.
func (p *Poller) Snapshot() View {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.view
}

// Submit validates and sends user-authored text. Whitespace-only text is
// silently ignored with zero write requests. On failure the caller keeps
// its input; on success it clears it.
func (p *Poller) Submit(ctx context.Context, text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	if p.sealer != nil {
		sealed, err := p.sealer.Seal(trimmed)
		if err != nil {
			return err
		}
		trimmed = sealed
	}

	_, err := p.gw.Send(ctx, mesh.Outbound{Type: p.kind, Text: trimmed})
	return err
}

func (p *Poller) loop(ctx context.Context, gen uint64) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.tick(ctx, gen)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.tick(ctx, gen)
		}
	}
}

// tick launches both stream reads tagged with a fresh sequence number. Reads
// are fire-and-forget relative to the ticker: a slow read never delays the
// next tick, and overlap is resolved by sequence at apply time
// (last-started-wins).
func (p *Poller) tick(ctx context.Context, gen uint64) {
	p.mu.Lock()
	p.seq++
	seq := p.seq
	p.mu.Unlock()

	go p.fetchMessages(ctx, gen, seq)
	go p.fetchPeers(ctx, gen, seq)
}

func (p *Poller) fetchMessages(ctx context.Context, gen, seq uint64) {
	list, err := p.gw.Messages(ctx)
	if err == nil && p.sealer != nil {
		for i, line := range list {
			list[i] = p.sealer.OpenInline(line)
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.alive(gen) || seq < p.appliedMsgSeq {
		return
	}

	switch {
	case err == nil:
		p.appliedMsgSeq = seq
		p.view.Messages = list
		p.view.MessagesOK = true
	case isBadShape(err):
		p.appliedMsgSeq = seq
		p.view.Messages = nil
		p.view.MessagesOK = false
		p.log.Warn().Err(err).Msg("messages poll returned unexpected shape")
	default:
		// Transport failure: keep the stale view, try again next tick.
		p.log.Warn().Err(err).Msg("messages poll failed")
		return
	}
	p.view.UpdatedAt = time.Now()
	p.notifyLocked()
}

func (p *Poller) fetchPeers(ctx context.Context, gen, seq uint64) {
	snap, err := p.gw.Peers(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.alive(gen) || seq < p.appliedPeerSeq {
		return
	}

	switch {
	case err == nil:
		p.appliedPeerSeq = seq
		p.view.Peers = snap
		p.view.PeersOK = true
	case isBadShape(err):
		p.appliedPeerSeq = seq
		p.view.Peers = nil
		p.view.PeersOK = false
		p.log.Warn().Err(err).Msg("peers poll returned unexpected shape")
	default:
		p.log.Warn().Err(err).Msg("peers poll failed")
		return
	}
	p.view.UpdatedAt = time.Now()
	p.notifyLocked()
}

// alive reports whether a completion tagged with gen may still touch the
// view. Stop bumps the generation, so completions from before the Stop are
// discarded even if the poller is started again.
func (p *Poller) alive(gen uint64) bool {
	return p.running && gen == p.gen
}

func (p *Poller) notifyLocked() {
	if p.onUpdate != nil {
		p.onUpdate(p.view)
	}
}

func isBadShape(err error) bool {
	return errors.Is(err, mesh.ErrBadShape)
}
