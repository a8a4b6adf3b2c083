package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sellfast/marketplace/internal/config"
	"github.com/sellfast/marketplace/internal/logger"
)

var (
	Version = "dev"
	Commit  = "unknown"

	configPath string
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "sellfast",
	Short:         "SellFast marketplace backend",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		logger.Setup(cfg.Log.Level, cfg.Log.NoColor)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.toml", "path to config")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
