package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/DrOksusu/email-automation/internal/domain/report"
	"github.com/DrOksusu/email-automation/internal/platform/config"
)

func previewCmd(cfg config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview [payslip-id]",
		Short: "Render a payslip notice as HTML (the built-in sample when no id is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pdfPath, _ := cmd.Flags().GetString("pdf")

			rec, emp := report.Sample()
			if len(args) == 1 {
				services, pool, err := connect(cmd.Context(), cfg)
				if err != nil {
					return err
				}
				defer pool.Close()
				if rec, err = services.Payslips.Get(cmd.Context(), args[0]); err != nil {
					return err
				}
				if emp, err = services.Employees.Get(cmd.Context(), rec.EmployeeID); err != nil {
					return err
				}
			}

			if pdfPath != "" {
				data, err := report.RenderPDF(rec, emp)
				if err != nil {
					return fmt.Errorf("render pdf: %w", err)
				}
				return os.WriteFile(pdfPath, data, 0o644)
			}
			doc, err := report.Render(rec, emp)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), doc.HTML)
			return err
		},
	}
	cmd.Flags().String("pdf", "", "write a PDF to this path instead of printing HTML")
	return cmd
}
