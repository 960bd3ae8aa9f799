package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bakery-production/internal/middleware/auth"
	"bakery-production/internal/storage"
)

type tokenOptions struct {
	userID   int64
	fullName string
	role     string
}

// newTokenCommand mints session tokens for the external login service.
func newTokenCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &tokenOptions{}

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a session token and its CSRF value",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rootOpts.loadConfig()
			if err != nil {
				return err
			}

			token, csrf, err := auth.IssueToken(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL,
				opts.userID, opts.fullName, storage.Role(opts.role))
			if err != nil {
				return fmt.Errorf("issue token: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "token: %s\ncsrf: %s\n", token, csrf)
			return nil
		},
	}

	cmd.Flags().Int64Var(&opts.userID, "user-id", 0, "user id from tbl_users")
	cmd.Flags().StringVar(&opts.fullName, "full-name", "", "display name carried in the session")
	cmd.Flags().StringVar(&opts.role, "role", string(storage.RoleBaker), "Admin, Supervisor or Baker")
	_ = cmd.MarkFlagRequired("user-id")

	return cmd
}
