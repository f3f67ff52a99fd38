package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/DrOksusu/email-automation/internal/domain/report"
	"github.com/DrOksusu/email-automation/internal/platform/config"
)

func exportCmd(cfg config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the payslip register for a period as an .xlsx workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			period, _ := cmd.Flags().GetString("period")
			out, _ := cmd.Flags().GetString("out")

			services, pool, err := connect(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			records, err := services.Payslips.List(cmd.Context(), period)
			if err != nil {
				return fmt.Errorf("list payslips: %w", err)
			}
			buf, filename, err := report.BuildRegister(period, records)
			if err != nil {
				return err
			}
			if out == "" {
				out = filename
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return err
			}
			slog.Info("register written", "path", out, "rows", len(records))
			return nil
		},
	}
	cmd.Flags().String("period", "", "pay period (YYYY-MM); all periods when empty")
	cmd.Flags().String("out", "", "output path (default: generated file name)")
	return cmd
}
