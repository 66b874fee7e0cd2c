package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/disasternet/relay/internal/app"
	"github.com/disasternet/relay/internal/mesh"
	"github.com/disasternet/relay/internal/relay"
)

var relayCmd = &cobra.Command{
	Use:   "relay",
	Short: "Run the relay server",
	Long: `Run the relay: a same-origin API for the browser client that
forwards every call verbatim to the backend gateway.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}
		if backend, _ := cmd.Flags().GetString("backend"); backend != "" {
			cfg.BackendBase = backend
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		gw := mesh.NewClient(cfg.BackendBase, cfg.RequestTimeout)
		server := relay.NewServer(gw, &cfg, logger)

		logger.Info().
			Str("addr", cfg.Addr).
			Str("backend", cfg.BackendBase).
			Msg("starting relay")

		application := app.New(server, cfg.ShutdownTimeout, logger)
		if err := application.Run(ctx); err != nil {
			return err
		}
		logger.Info().Msg("relay stopped")
		return nil
	},
}

func init() {
	relayCmd.Flags().String("addr", "", "listen address (overrides config)")
	relayCmd.Flags().String("backend", "", "backend gateway base URL (overrides config)")
}
