package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tecnosoft/academy/internal/checkin"
	"github.com/tecnosoft/academy/internal/model"
	"github.com/tecnosoft/academy/internal/store"
)

// NewAttendanceCommand creates the attendance command group.
func NewAttendanceCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attendance",
		Short: "Record and review check-ins",
	}
	cmd.AddCommand(newAttendanceRecordCommand(rootOpts))
	cmd.AddCommand(newAttendanceListCommand(rootOpts))
	cmd.AddCommand(newAttendanceScanCommand(rootOpts))
	return cmd
}

// AttendanceRecordOptions holds flags for the manual check-in command.
type AttendanceRecordOptions struct {
	*RootOptions
	StudentID int64
}

func newAttendanceRecordCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AttendanceRecordOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Check a student in manually",
		Long: `Record attendance for a student, dated today. Check-ins are
append-only: recording the same student twice on one day creates two
records.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAttendanceRecord(opts, cmd)
		},
	}

	cmd.Flags().Int64Var(&opts.StudentID, "student", 0, "student identity (required)")
	_ = cmd.MarkFlagRequired("student")

	return cmd
}

func runAttendanceRecord(opts *AttendanceRecordOptions, cmd *cobra.Command) error {
	out := opts.formatter(cmd)
	ctx := cmd.Context()

	s, cfg, err := opts.openStore()
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

	session := checkin.NewSession(s, checkin.Options{
		Window:    cfg.ScanWindow,
		Announcer: checkin.WriterAnnouncer{W: cmd.OutOrStdout()},
	})
	rec, err := session.RecordAttendance(ctx, st)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to record attendance", err)
	}

	if opts.Format == "json" {
		return out.Success(rec)
	}
	return out.Success(fmt.Sprintf("Recorded attendance #%d for %s on %s", rec.AttendanceID, rec.StudentName, rec.Date))
}

// AttendanceListOptions holds flags for the attendance list command.
type AttendanceListOptions struct {
	*RootOptions
	Date string
}

func newAttendanceListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AttendanceListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List check-ins, optionally for one date",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAttendanceList(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Date, "date", "", "only check-ins on this date (YYYY-MM-DD)")

	return cmd
}

func runAttendanceList(opts *AttendanceListOptions, cmd *cobra.Command) error {
	out := opts.formatter(cmd)

	if opts.Date != "" {
		if _, err := time.Parse(model.DateLayout, opts.Date); err != nil {
			_ = out.Error("E_VALIDATION", "date must be a calendar date (YYYY-MM-DD)", nil)
			return WrapExitError(ExitFailure, "invalid date", err)
		}
	}

	s, _, err := opts.openStore()
	if err != nil {
		return err
	}
	defer closeStore(s)

	records, err := s.ListAttendance(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list attendance", err)
	}

	filtered := records[:0:0]
	for _, r := range records {
		if opts.Date == "" || r.Date == opts.Date {
			filtered = append(filtered, r)
		}
	}
	if filtered == nil {
		filtered = []model.AttendanceRecord{}
	}

	if opts.Format == "json" {
		return out.Success(filtered)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d check-in(s)\n", len(filtered))
	for _, r := range filtered {
		fmt.Fprintf(&b, "  #%-4d %-24s %s\n", r.AttendanceID, r.StudentName, r.Date)
	}
	return out.Success(strings.TrimRight(b.String(), "\n"))
}

func newAttendanceScanCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Run the scan-driven check-in loop",
		Long: `Start the check-in loop over newline-delimited scan payloads on
stdin (the keyboard-wedge scanner convention). Payloads of the form
STUDENT_ID:<n> check the matching student in; anything else is silently
ignored. An identical payload repeated within the suppression window is
ignored too, so a badge held in front of the scanner checks in once.

Stops on Ctrl-C or when the input is exhausted.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAttendanceScan(rootOpts, cmd)
		},
	}
	return cmd
}

func runAttendanceScan(opts *RootOptions, cmd *cobra.Command) error {
	s, cfg, err := opts.openStore()
	if err != nil {
		return err
	}
	defer closeStore(s)

	session := checkin.NewSession(s, checkin.Options{
		Window:    cfg.ScanWindow,
		Announcer: checkin.WriterAnnouncer{W: cmd.OutOrStdout()},
	})
	if err := session.LoadStudents(cmd.Context()); err != nil {
		return WrapExitError(ExitCommandError, "failed to load student roster", err)
	}

	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("received signal, stopping scan session", "signal", sig)
			session.Stop()
			cancel()
		case <-ctx.Done():
		}
	}()

	slog.Info("scan session starting", "window", cfg.ScanWindow, "interval", cfg.ScanInterval)
	fmt.Fprintln(cmd.OutOrStdout(), "Scanning. Present badges now; Ctrl-C to stop.")

	src := checkin.NewReaderSource(cmd.InOrStdin())
	if err := session.Run(ctx, src, cfg.ScanInterval); err != nil && err != context.Canceled {
		return WrapExitError(ExitFailure, "scan session error", err)
	}

	slog.Info("scan session stopped")
	return nil
}
