package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/disasternet/relay/internal/mesh"
	"github.com/disasternet/relay/internal/poller"
)

var sendCmd = &cobra.Command{
	Use:   "send [text...]",
	Short: "Send one message through a relay",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		applyClientFlags(cmd)

		opts, err := clientOptions()
		if err != nil {
			return err
		}
		if sos, _ := cmd.Flags().GetBool("sos"); sos {
			opts = append(opts, poller.WithKind(mesh.KindSOS))
		}

		gw := mesh.NewClient(cfg.RelayBase+"/api", cfg.RequestTimeout)
		p := poller.New(gw, cfg.PollInterval, logger, opts...)

		text := strings.Join(args, " ")
		if err := p.Submit(cmd.Context(), text); err != nil {
			return err
		}
		if strings.TrimSpace(text) == "" {
			logger.Info().Msg("nothing to send")
			return nil
		}
		logger.Info().Msg("message sent")
		return nil
	},
}

func init() {
	addClientFlags(sendCmd)
	sendCmd.Flags().Bool("sos", false, "mark the message as an SOS")
}
