package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tecnosoft/academy/internal/model"
	"github.com/tecnosoft/academy/internal/report"
)

// ReportPaymentsOptions holds flags for the payments report command.
type ReportPaymentsOptions struct {
	*RootOptions
	From   string
	To     string
	Output string
}

// NewReportCommand creates the report command group.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate reports",
	}
	cmd.AddCommand(newReportPaymentsCommand(rootOpts))
	return cmd
}

func newReportPaymentsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportPaymentsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "payments",
		Short: "Build the payments summary workbook",
		Long: `Aggregate bookings by payment date into an xlsx workbook: overall
totals for paid, discount and remaining amounts, plus per-date paid
amounts. --from/--to bound the range inclusively; either may be
omitted.

Example:
  academy report payments --from 2024-09-01 --to 2024-09-30 -o september.xlsx`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReportPayments(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.From, "from", "", "inclusive start date YYYY-MM-DD")
	cmd.Flags().StringVar(&opts.To, "to", "", "inclusive end date YYYY-MM-DD")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "payments.xlsx", "workbook file path")

	return cmd
}

func runReportPayments(opts *ReportPaymentsOptions, cmd *cobra.Command) error {
	out := opts.formatter(cmd)

	for _, bound := range []string{opts.From, opts.To} {
		if bound == "" {
			continue
		}
		if _, err := time.Parse(model.DateLayout, bound); err != nil {
			_ = out.Error("E_VALIDATION", "range bounds must be calendar dates (YYYY-MM-DD)", nil)
			return WrapExitError(ExitFailure, "invalid date range", err)
		}
	}

	s, _, err := opts.openStore()
	if err != nil {
		return err
	}
	defer closeStore(s)

	bookings, err := s.ListBookings(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list bookings", err)
	}

	sum := report.BuildPayments(bookings, opts.From, opts.To)
	if err := report.WriteWorkbook(sum, opts.Output); err != nil {
		return WrapExitError(ExitCommandError, "failed to write workbook", err)
	}

	out.VerboseLog("payments report: %d bookings, paid %.2f, discount %.2f, remaining %.2f",
		len(sum.Bookings), sum.TotalPaid, sum.TotalDiscount, sum.TotalRemaining)

	if opts.Format == "json" {
		return out.Success(map[string]any{
			"path":           opts.Output,
			"bookings":       len(sum.Bookings),
			"totalPaid":      sum.TotalPaid,
			"totalDiscount":  sum.TotalDiscount,
			"totalRemaining": sum.TotalRemaining,
		})
	}
	return out.Success(fmt.Sprintf("Wrote payments report to %s (%d bookings, paid %.2f)",
		opts.Output, len(sum.Bookings), sum.TotalPaid))
}
