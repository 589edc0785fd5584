package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GushALKDev/solana-pulsar-dao/internal/repository"
	"github.com/GushALKDev/solana-pulsar-dao/internal/service"
)

var (
	initAdmin string
	initToken string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the global governance configuration",
	Long: `Create the global governance configuration (genesis).

The admin and token id default to governance.admin and governance.token_id
from the config file. Genesis can only run once.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVar(&initAdmin, "admin", "", "Admin identity (defaults to governance.admin)")
	initCmd.Flags().StringVar(&initToken, "token", "", "Governance token id (defaults to governance.token_id)")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	admin := initAdmin
	if admin == "" {
		admin = cfg.Governance.Admin
	}
	token := initToken
	if token == "" {
		token = cfg.Governance.TokenID
	}

	db, err := openDatabase()
	if err != nil {
		return err
	}
	defer closeDatabase(db)

	svc := service.New(repository.NewStore(db), nil, nil, cfg.Governance)
	gc, err := svc.Admin.Initialize(cmd.Context(), admin, token)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Governance initialized: admin=%s token=%s\n", gc.Admin, gc.TokenID)
	return nil
}
