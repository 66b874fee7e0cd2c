package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/disasternet/relay/internal/config"
	"github.com/disasternet/relay/internal/log"
)

var (
	cfgFile  string
	logLevel string

	cfg    config.Config
	logger *zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "disasternet",
	Short: "Offline-first disaster messaging relay",
	Long: `disasternet runs the pieces of a local disaster messaging loop:
a relay that fronts the mesh backend, a demo gateway standing in for that
backend, and polling clients for reading and sending messages.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		bootstrap := log.New(logLevel)

		var err error
		cfg, _, err = config.Load(bootstrap, cfgFile)
		if err != nil {
			return err
		}

		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		logger = log.New(cfg.LogLevel)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./disasternet.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(relayCmd, gatewayCmd, watchCmd, sendCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
