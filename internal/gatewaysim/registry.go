package gatewaysim

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/disasternet/relay/internal/mesh"
)

type peerEntry struct {
	meta json.RawMessage
	seen time.Time
}

// Registry tracks announced peers. A peer that is not re-announced within
// the TTL drops out of subsequent snapshots; there is no distinction
// between "left" and "temporarily unreachable".
type Registry struct {
	mu     sync.Mutex
	ttl    time.Duration
	selfID string
	peers  map[string]peerEntry
	now    func() time.Time
}

// NewRegistry creates a registry for the node identified by selfID.
func NewRegistry(selfID string, ttl time.Duration) *Registry {
	return &Registry{
		ttl:    ttl,
		selfID: selfID,
		peers:  make(map[string]peerEntry),
		now:    time.Now,
	}
}

// Announce records or refreshes a peer. Metadata replaces whatever was
// stored before.
func (r *Registry) Announce(id string, meta json.RawMessage) {
	if id == "" || id == r.selfID {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.peers[id] = peerEntry{meta: meta, seen: r.now()}
}

// Snapshot returns the live peers as a fresh mapping, sweeping out entries
// past the TTL.
func (r *Registry) Snapshot() mesh.PeerSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.ttl)
	snap := make(mesh.PeerSnapshot, len(r.peers))
	for id, entry := range r.peers {
		if entry.seen.Before(cutoff) {
			delete(r.peers, id)
			continue
		}
		snap[id] = entry.meta
	}
	return snap
}

// Leader returns the highest peer id, self included. Every node computes
// the same answer from the same snapshot, which is all the coordination
// this system needs.
func (r *Registry) Leader() string {
	leader := r.selfID
	for id := range r.Snapshot() {
		if id > leader {
			leader = id
		}
	}
	return leader
}
