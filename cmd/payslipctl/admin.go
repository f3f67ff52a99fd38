package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/DrOksusu/email-automation/internal/domain/auth"
	"github.com/DrOksusu/email-automation/internal/platform/config"
	"github.com/DrOksusu/email-automation/internal/platform/db"
)

func migrateCmd(cfg config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfg.DatabaseURL == "" {
				return fmt.Errorf("DATABASE_URL is required")
			}
			pool, err := db.Connect(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("db connect failed: %w", err)
			}
			defer pool.Close()
			if err := db.Migrate(cmd.Context(), pool); err != nil {
				return err
			}
			slog.Info("migrations applied")
			return nil
		},
	}
}

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print a bcrypt hash for ADMIN_PASSWORD_HASH (reads stdin when no argument is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password := ""
			if len(args) == 1 {
				password = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}
			if password == "" {
				return fmt.Errorf("password must not be empty")
			}
			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
			return err
		},
	}
}

func totpSecretCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "totp-secret",
		Short: "Generate an ADMIN_TOTP_SECRET and its enrolment URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			account, _ := cmd.Flags().GetString("account")
			issuer, _ := cmd.Flags().GetString("issuer")
			if account == "" {
				return fmt.Errorf("--account is required")
			}
			secret, url, err := auth.GenerateTOTP(issuer, account)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]string{"secret": secret, "url": url})
		},
	}
	cmd.Flags().String("account", "", "operator email shown in the authenticator app")
	cmd.Flags().String("issuer", "Payslip Dispatch", "issuer shown in the authenticator app")
	return cmd
}
