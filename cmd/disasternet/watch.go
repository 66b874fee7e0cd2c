package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/disasternet/relay/internal/mesh"
	"github.com/disasternet/relay/internal/poller"
	"github.com/disasternet/relay/internal/seal"
	"github.com/disasternet/relay/internal/term"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll a relay and chat from the terminal",
	Long: `Poll the relay for peers and messages on a fixed interval,
render each snapshot, and send lines typed on stdin. Type quit to leave.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		applyClientFlags(cmd)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		opts, err := clientOptions()
		if err != nil {
			return err
		}

		renderer := term.NewRenderer(os.Stdout)
		opts = append(opts, poller.WithOnUpdate(renderer.Render))

		gw := mesh.NewClient(cfg.RelayBase+"/api", cfg.RequestTimeout)
		p := poller.New(gw, cfg.PollInterval, logger, opts...)

		p.Start(ctx)
		defer p.Stop()

		logger.Info().
			Str("relay", cfg.RelayBase).
			Dur("interval", cfg.PollInterval).
			Msg("watching; type a message and press Enter to send")

		return term.RunInput(ctx, os.Stdin, os.Stdout, p, logger)
	},
}

func init() {
	addClientFlags(watchCmd)
}

// addClientFlags registers the flags shared by the polling clients.
func addClientFlags(cmd *cobra.Command) {
	cmd.Flags().String("relay", "", "relay base URL (overrides config)")
	cmd.Flags().Duration("interval", 0, "poll interval (overrides config)")
	cmd.Flags().String("keyfile", "", "shared key file for sealed message text")
}

func applyClientFlags(cmd *cobra.Command) {
	if relayBase, _ := cmd.Flags().GetString("relay"); relayBase != "" {
		cfg.RelayBase = relayBase
	}
	if interval, _ := cmd.Flags().GetDuration("interval"); interval > 0 {
		cfg.PollInterval = interval
	}
	if keyFile, _ := cmd.Flags().GetString("keyfile"); keyFile != "" {
		cfg.KeyFile = keyFile
	}
}

// clientOptions builds the poller options implied by the config, currently
// just the optional sealer.
func clientOptions() ([]poller.Option, error) {
	if cfg.KeyFile == "" {
		return nil, nil
	}

	key, err := seal.LoadOrCreateKey(cfg.KeyFile)
	if err != nil {
		return nil, err
	}
	sealer, err := seal.New(key)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("key_file", cfg.KeyFile).Msg("sealing outbound text")
	return []poller.Option{poller.WithSealer(sealer)}, nil
}
