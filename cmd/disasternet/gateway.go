package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/disasternet/relay/internal/app"
	"github.com/disasternet/relay/internal/gatewaysim"
	"github.com/disasternet/relay/internal/store"
	"github.com/disasternet/relay/internal/store/sqlite"
)

var gatewayCmd = &cobra.Command{
	Use:   "gateway",
	Short: "Run the demo backend gateway",
	Long: `Run a stand-in for the external mesh backend: a peer registry and
a message log behind the /peers, /messages and /send contract. With a
database path configured, the message log persists across restarts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.GatewayAddr = addr
		}
		if db, _ := cmd.Flags().GetString("db"); db != "" {
			cfg.DatabasePath = db
		}
		selfID, _ := cmd.Flags().GetString("id")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var msgs store.MessageLog
		if cfg.DatabasePath != "" {
			var err error
			msgs, err = sqlite.New(cfg.DatabasePath)
			if err != nil {
				return err
			}
			logger.Info().Str("db_path", cfg.DatabasePath).Msg("message log on sqlite")
		} else {
			msgs = store.NewMemoryLog()
		}

		g := gatewaysim.New(selfID, msgs, cfg.PeerTTL, logger)
		server := gatewaysim.NewServer(g, &cfg)

		logger.Info().Str("addr", cfg.GatewayAddr).Msg("starting demo gateway")

		application := app.New(server, cfg.ShutdownTimeout, logger, msgs)
		if err := application.Run(ctx); err != nil {
			return err
		}
		logger.Info().Msg("gateway stopped")
		return nil
	},
}

func init() {
	gatewayCmd.Flags().String("addr", "", "listen address (overrides config)")
	gatewayCmd.Flags().String("db", "", "sqlite path for the message log (default in-memory)")
	gatewayCmd.Flags().String("id", "", "node id for leader election (default hostname)")
}
