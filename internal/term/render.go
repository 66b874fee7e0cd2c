// Package term renders the polled view in a terminal and feeds typed lines
// back as outbound messages. It is the Go sibling of the built-in browser
// page: same snapshot-replace rendering, same Enter-to-send input.
package term

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/disasternet/relay/internal/poller"
)

// Renderer writes each applied view snapshot to out. Safe for concurrent
// use, since the poller invokes it from its fetch goroutines.
type Renderer struct {
	mu  sync.Mutex
	out io.Writer
}

// NewRenderer creates a renderer writing to out.
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// Render replaces the displayed state with the given view. The previous
// render is not patched; the whole snapshot is printed again.
func (r *Renderer) Render(v poller.View) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintln(r.out, "----------------------------------------")

	switch {
	case !v.PeersOK:
		fmt.Fprintln(r.out, "peers: unavailable")
	case len(v.Peers) == 0:
		fmt.Fprintln(r.out, "peers: none online")
	default:
		ids := make([]string, 0, len(v.Peers))
		for id := range v.Peers {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		fmt.Fprintf(r.out, "peers: %d online", len(ids))
		for _, id := range ids {
			fmt.Fprintf(r.out, "  %s", id)
		}
		fmt.Fprintln(r.out)
	}

	switch {
	case !v.MessagesOK:
		fmt.Fprintln(r.out, "no messages available")
	case len(v.Messages) == 0:
		fmt.Fprintln(r.out, "(no messages yet)")
	default:
		for _, line := range v.Messages {
			fmt.Fprintln(r.out, line)
		}
	}
}
