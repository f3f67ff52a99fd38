package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/DrOksusu/email-automation/internal/platform/config"
	"github.com/DrOksusu/email-automation/internal/platform/jobs"
)

func importEmployeesCmd(cfg config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "import-employees <csv>",
		Short: "Create or update employees from a registry CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			services, pool, err := connect(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			out, err := services.Jobs.RunNow(cmd.Context(), jobs.JobImport, filepath.Base(args[0]), func(ctx context.Context) (any, error) {
				return services.Employees.ImportCSV(ctx, f)
			})
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
}
