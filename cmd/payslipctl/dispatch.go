package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/DrOksusu/email-automation/internal/domain/dispatch"
	"github.com/DrOksusu/email-automation/internal/platform/config"
	"github.com/DrOksusu/email-automation/internal/platform/jobs"
)

func dispatchCmd(cfg config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "dispatch <payslip-id>...",
		Short: "Send payslip notices by email",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			services, pool, err := connect(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			out, _ := services.Jobs.RunNow(cmd.Context(), jobs.JobDispatch, fmt.Sprintf("%d payslips", len(args)), func(ctx context.Context) (any, error) {
				return services.Dispatch.DispatchBatch(ctx, args), nil
			})
			summary, _ := out.(dispatch.Summary)
			slog.Info("dispatch finished", "sent", summary.Sent, "failed", summary.Failed, "skipped", summary.Skipped)
			return printJSON(cmd.OutOrStdout(), summary)
		},
	}
}
