package app

import (
	"context"
	"io"
	stdhttp "net/http"
	"time"

	"github.com/rs/zerolog"
)

// App runs one HTTP server with graceful shutdown and closes any attached
// resources afterwards. Both the relay and the demo gateway run through it.
type App struct {
	server          *stdhttp.Server
	shutdownTimeout time.Duration
	log             *zerolog.Logger
	closers         []io.Closer
}

// New wraps a configured server. Closers are closed after the server
// stops, in the order given.
func New(server *stdhttp.Server, shutdownTimeout time.Duration, logger *zerolog.Logger, closers ...io.Closer) *App {
	return &App{
		server:          server,
		shutdownTimeout: shutdownTimeout,
		log:             logger,
		closers:         closers,
	}
}

// Run starts the HTTP server and blocks until context cancellation or a
// fatal server error.
func (a *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		a.cleanup()
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down http server")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			a.cleanup()
			return err
		}

		a.cleanup()
		return <-serverErr
	}
}

func (a *App) cleanup() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.log.Warn().Err(err).Msg("failed to close resource")
		}
	}
}
