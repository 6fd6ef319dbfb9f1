package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tecnosoft/academy/internal/model"
	"github.com/tecnosoft/academy/internal/store"
)

// bookingNumbers issues process-wide booking numbers.
var bookingNumbers = model.NewBookingNumberGenerator()

// BookingAddOptions holds flags for the booking add command.
type BookingAddOptions struct {
	*RootOptions
	StudentID   int64
	CourseID    int64
	Level       int
	Paid        float64
	Discount    float64
	PaymentDate string
}

// NewBookingCommand creates the booking command group.
func NewBookingCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "booking",
		Short: "Manage course bookings",
	}
	cmd.AddCommand(newBookingAddCommand(rootOpts))
	cmd.AddCommand(newBookingListCommand(rootOpts))
	cmd.AddCommand(newBookingDeleteCommand(rootOpts))
	return cmd
}

func newBookingAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BookingAddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Book a student onto a course",
		Long: `Create a booking. The student's name and the course's name and
price are captured as snapshots; the remaining amount is fixed at
creation as price - paid - discount and may be negative when overpaid.

Example:
  academy booking add --student 1 --course 2 --level 1 --paid 300 --date 2024-09-02`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBookingAdd(opts, cmd)
		},
	}

	cmd.Flags().Int64Var(&opts.StudentID, "student", 0, "student identity (required)")
	cmd.Flags().Int64Var(&opts.CourseID, "course", 0, "course identity (required)")
	cmd.Flags().IntVar(&opts.Level, "level", 1, "course level")
	cmd.Flags().Float64Var(&opts.Paid, "paid", 0, "amount paid")
	cmd.Flags().Float64Var(&opts.Discount, "discount", 0, "discount amount")
	cmd.Flags().StringVar(&opts.PaymentDate, "date", "", "payment date YYYY-MM-DD (defaults to today)")
	_ = cmd.MarkFlagRequired("student")
	_ = cmd.MarkFlagRequired("course")

	return cmd
}

func runBookingAdd(opts *BookingAddOptions, cmd *cobra.Command) error {
	out := opts.formatter(cmd)
	ctx := cmd.Context()

	s, _, err := opts.openStore()
	if err != nil {
		return err
	}
	defer closeStore(s)

	st, err := s.GetStudent(ctx, opts.StudentID)
	if err != nil {
		if store.IsNotFound(err) {
			_ = out.Error("E_NOT_FOUND", fmt.Sprintf("no student #%d", opts.StudentID), nil)
			return WrapExitError(ExitFailure, "student not found", err)
		}
		return WrapExitError(ExitCommandError, "failed to load student", err)
	}
	c, err := s.GetCourse(ctx, opts.CourseID)
	if err != nil {
		if store.IsNotFound(err) {
			_ = out.Error("E_NOT_FOUND", fmt.Sprintf("no course #%d", opts.CourseID), nil)
			return WrapExitError(ExitFailure, "course not found", err)
		}
		return WrapExitError(ExitCommandError, "failed to load course", err)
	}

	now := time.Now().UTC()
	paymentDate := opts.PaymentDate
	if paymentDate == "" {
		paymentDate = now.Format(model.DateLayout)
	}

	b := model.NewBooking(st, c, opts.Level, opts.Paid, opts.Discount, paymentDate, bookingNumbers.Next(), now)
	if err := b.Validate(); err != nil {
		_ = out.Error("E_VALIDATION", err.Error(), nil)
		return WrapExitError(ExitFailure, "invalid booking", err)
	}

	if err := s.InsertBooking(ctx, &b); err != nil {
		if store.IsUniqueViolation(err) {
			_ = out.Error("E_DUPLICATE", "booking number collision", nil)
			return WrapExitError(ExitFailure, "duplicate booking number", err)
		}
		return WrapExitError(ExitCommandError, "failed to store booking", err)
	}

	if opts.Format == "json" {
		return out.Success(b)
	}
	return out.Success(fmt.Sprintf("Booked %s onto %s: %s (remaining %.2f)",
		b.StudentName, b.CourseName, b.BookingNumber, b.RemainingAmount))
}

func newBookingListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List bookings",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBookingList(rootOpts, cmd)
		},
	}
	return cmd
}

func runBookingList(opts *RootOptions, cmd *cobra.Command) error {
	out := opts.formatter(cmd)

	s, _, err := opts.openStore()
	if err != nil {
		return err
	}
	defer closeStore(s)

	bookings, err := s.ListBookings(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list bookings", err)
	}

	if opts.Format == "json" {
		return out.Success(bookings)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d booking(s)\n", len(bookings))
	for _, bk := range bookings {
		fmt.Fprintf(&b, "  #%-4d %-24s %-20s -> %-24s paid %.2f remaining %.2f (%s)\n",
			bk.BookingID, bk.BookingNumber, bk.StudentName, bk.CourseName,
			bk.PaidAmount, bk.RemainingAmount, bk.PaymentDate)
	}
	return out.Success(strings.TrimRight(b.String(), "\n"))
}

// BookingDeleteOptions holds flags for the privileged booking deletion.
type BookingDeleteOptions struct {
	*RootOptions
	BookingID int64
	Secret    string
}

func newBookingDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BookingDeleteOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "delete",
		Short:         "Delete a booking (privileged)",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBookingDelete(opts, cmd)
		},
	}

	cmd.Flags().Int64Var(&opts.BookingID, "id", 0, "booking identity (required)")
	cmd.Flags().StringVar(&opts.Secret, "secret", "", "admin secret")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func runBookingDelete(opts *BookingDeleteOptions, cmd *cobra.Command) error {
	out := opts.formatter(cmd)

	s, cfg, err := opts.openStore()
	if err != nil {
		return err
	}
	defer closeStore(s)

	if err := authorize(cfg, opts.Secret); err != nil {
		_ = out.Error("E_DENIED", "admin secret required for booking deletion", nil)
		return err
	}

	if err := s.DeleteBooking(cmd.Context(), opts.BookingID); err != nil {
		return WrapExitError(ExitCommandError, "failed to delete booking", err)
	}
	return out.Success(fmt.Sprintf("Deleted booking #%d", opts.BookingID))
}
