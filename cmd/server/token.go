package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"gmod-tts/internal/auth"
	"gmod-tts/internal/config"
)

var (
	tokenTTL    time.Duration
	tokenClient string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print a bearer token signed with GMOD_TTS_SECRET_KEY",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		token, err := auth.New(cfg.SecretKey).GenerateToken(tokenClient, tokenTTL)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
		return err
	},
}

func init() {
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
	tokenCmd.Flags().StringVar(&tokenClient, "client", "gmod", "client name stored in the token")
}
