// Package gatewaysim is a stand-in for the external mesh backend. It
// implements the backend gateway contract the relay consumes — /peers,
// /messages, /send — over a local peer registry and a message log, so the
// whole loop can run without a real mesh transport behind it.
package gatewaysim

import (
	"fmt"
	stdhttp "net/http"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/disasternet/relay/internal/config"
	"github.com/disasternet/relay/internal/store"
)

// Gateway is the demo backend node: a peer registry plus a message log.
type Gateway struct {
	registry *Registry
	msgs     store.MessageLog
	log      *zerolog.Logger
	started  time.Time
}

// New builds a gateway around the given message log. selfID identifies
// this node in leader election; empty means "derive from hostname".
func New(selfID string, msgs store.MessageLog, ttl time.Duration, logger *zerolog.Logger) *Gateway {
	if selfID == "" {
		selfID = deriveSelfID()
	}
	return &Gateway{
		registry: NewRegistry(selfID, ttl),
		msgs:     msgs,
		log:      logger,
		started:  time.Now(),
	}
}

// Registry exposes the peer registry, mainly for tests and for wiring a
// discovery source.
func (g *Gateway) Registry() *Registry {
	return g.registry
}

// NewServer builds the HTTP server for the gateway contract.
func NewServer(g *Gateway, cfg *config.Config) *stdhttp.Server {
	return &stdhttp.Server{
		Addr:              cfg.GatewayAddr,
		Handler:           g.routes(),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func deriveSelfID() string {
	host, err := os.Hostname()
	if err != nil {
		return fmt.Sprintf("node-%d", os.Getpid())
	}
	return host
}
