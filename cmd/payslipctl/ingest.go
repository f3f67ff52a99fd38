package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/DrOksusu/email-automation/internal/domain/payslip"
	"github.com/DrOksusu/email-automation/internal/platform/config"
	"github.com/DrOksusu/email-automation/internal/platform/jobs"
)

func ingestCmd(cfg config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <file>",
		Short: "Ingest extracted payslip text (pages separated by form feeds)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, _ := cmd.Flags().GetString("source")
			if source == "" {
				source = filepath.Base(args[0])
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			pages := payslip.SplitPages(string(data))

			services, pool, err := connect(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			out, err := services.Jobs.RunNow(cmd.Context(), jobs.JobIngest, source, func(ctx context.Context) (any, error) {
				return services.Payslips.Ingest(ctx, pages, source)
			})
			if err != nil {
				return fmt.Errorf("ingest failed: %w", err)
			}
			result, _ := out.(payslip.IngestResult)
			slog.Info("ingest finished", "source", source, "pages", result.PagesSeen, "created", result.Created, "updated", result.Updated, "errors", len(result.Errors))
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().String("source", "", "source label recorded with the batch (default: file name)")
	return cmd
}
