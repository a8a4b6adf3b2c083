package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sellfast/marketplace/internal/domain/auth"
	"github.com/sellfast/marketplace/internal/gateways/database"
	"github.com/sellfast/marketplace/internal/gateways/database/repositories"
)

var (
	tokenUserID string
	tokenTTL    time.Duration
)

var tokenCMD = &cobra.Command{
	Use:   "token",
	Short: "issue a bearer token for a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		ctx := cmd.Context()

		db, err := database.New(ctx, cfg.DB)
		if err != nil {
			return err
		}
		defer db.Close()

		service := auth.NewService(
			auth.NewSigner(cfg.Web.SessionKey),
			repositories.NewUserRepository(db.BunDB()),
			cfg.Market.TokenTTL.Duration,
		)
		token, err := service.IssueToken(ctx, tokenUserID, tokenTTL)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCMD.Flags().StringVar(&tokenUserID, "user", "", "user id")
	tokenCMD.Flags().DurationVar(&tokenTTL, "ttl", 0, "token lifetime (defaults to market.token_ttl)")
	_ = tokenCMD.MarkFlagRequired("user")
	rootCmd.AddCommand(tokenCMD)
}
