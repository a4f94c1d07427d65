package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gmod-tts/internal/config"
	"gmod-tts/internal/logger"
)

var voicesCmd = &cobra.Command{
	Use:   "voices",
	Short: "Load the voice definitions and print the voice table",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		log, err := logger.New(cfg.Debug)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		reg, engines, err := loadVoices(cmd.Context(), cfg, log.WithOptions(zap.IncreaseLevel(zap.WarnLevel)))
		if err != nil {
			return err
		}
		defer func() { _ = engines.Close() }()

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(reg.Describe())
	},
}
