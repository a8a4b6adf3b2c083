package cmd

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sellfast/marketplace/internal/domain/ledger"
	"github.com/sellfast/marketplace/internal/gateways/database"
	"github.com/sellfast/marketplace/internal/gateways/database/models"
	"github.com/sellfast/marketplace/internal/gateways/database/repositories"
	"github.com/sellfast/marketplace/internal/logger"
)

var (
	userName    string
	userEmail   string
	userAdmin   bool
	userBalance int64
)

var userCMD = &cobra.Command{
	Use:   "user",
	Short: "manage users",
}

var userCreateCMD = &cobra.Command{
	Use:   "create",
	Short: "create a user, optionally with a starting balance",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		db, err := database.New(ctx, cfg.DB)
		if err != nil {
			return err
		}
		defer db.Close()

		user := &models.User{
			ID:     uuid.NewString(),
			Name:   strings.TrimSpace(userName),
			Email:  strings.ToLower(strings.TrimSpace(userEmail)),
			Role:   models.RoleUser,
			Active: true,
		}
		if userAdmin {
			user.Role = models.RoleAdmin
		}
		if err := repositories.NewUserRepository(db.BunDB()).Create(ctx, user); err != nil {
			return err
		}

		if userBalance > 0 {
			tm := database.NewTransactionManager(db.BunDB(), cfg.Market.TxTimeout.Duration)
			coins := ledger.NewService(
				repositories.NewLedgerRepository(db.BunDB()),
				repositories.NewLedgerUnitOfWork(tm),
			)
			if _, err := coins.Credit(ctx, ledger.Entry{
				UserID:      user.ID,
				Amount:      userBalance,
				Kind:        models.CoinRecharge,
				Description: "Starting balance",
			}); err != nil {
				return err
			}
		}

		logger.LogSystem("User created",
			"user_id", user.ID,
			"role", user.Role)
		fmt.Fprintln(cmd.OutOrStdout(), user.ID)
		return nil
	},
}

func init() {
	userCreateCMD.Flags().StringVar(&userName, "name", "", "display name")
	userCreateCMD.Flags().StringVar(&userEmail, "email", "", "email address")
	userCreateCMD.Flags().BoolVar(&userAdmin, "admin", false, "grant the admin role")
	userCreateCMD.Flags().Int64Var(&userBalance, "balance", 0, "starting coin balance")
	_ = userCreateCMD.MarkFlagRequired("name")
	_ = userCreateCMD.MarkFlagRequired("email")

	userCMD.AddCommand(userCreateCMD)
	rootCmd.AddCommand(userCMD)
}
