package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/DrOksusu/email-automation/internal/platform/config"
	"github.com/DrOksusu/email-automation/internal/platform/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := config.Load()
	root := &cobra.Command{
		Use:           "payslipctl",
		Short:         "Operate the payslip ingestion and dispatch pipeline",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level, _ := cmd.Flags().GetString("log-level")
			format, _ := cmd.Flags().GetString("log-format")
			return logging.Setup(level, format, cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().String("log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-format", "console", "log format (console, json)")

	root.AddCommand(
		ingestCmd(cfg),
		dispatchCmd(cfg),
		previewCmd(cfg),
		exportCmd(cfg),
		importEmployeesCmd(cfg),
		migrateCmd(cfg),
		hashPasswordCmd(),
		totpSecretCmd(),
	)
	return root
}
