// Package cli implements the academy command tree: record management,
// scan-driven check-in, backup, wipe, and the payments report.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tecnosoft/academy/internal/config"
	"github.com/tecnosoft/academy/internal/gate"
	"github.com/tecnosoft/academy/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
	Database   string // overrides the configured database path
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the academy CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "academy",
		Short: "Academy - training center management",
		Long: `Manage a training center's students, courses, bookings and attendance
over an embedded SQLite database, including scan-driven check-in,
backup export/import and payment reporting.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			opts.setupLogging()
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to YAML config file")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite database (overrides config)")

	cmd.AddCommand(NewStudentCommand(opts))
	cmd.AddCommand(NewCourseCommand(opts))
	cmd.AddCommand(NewBookingCommand(opts))
	cmd.AddCommand(NewAttendanceCommand(opts))
	cmd.AddCommand(NewBackupCommand(opts))
	cmd.AddCommand(NewDBCommand(opts))
	cmd.AddCommand(NewReportCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

func (o *RootOptions) setupLogging() {
	logLevel := slog.LevelInfo
	if o.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(handler))
}

// loadConfig resolves the effective configuration for this invocation.
func (o *RootOptions) loadConfig() (config.Config, error) {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return config.Config{}, WrapExitError(ExitCommandError, "failed to load configuration", err)
	}
	if o.Database != "" {
		cfg.DatabasePath = o.Database
	}
	return cfg, nil
}

// openStore loads the configuration and opens the database. The caller
// owns the returned store and must close it.
func (o *RootOptions) openStore() (*store.Store, config.Config, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, config.Config{}, err
	}
	slog.Debug("opening database", "path", cfg.DatabasePath)
	s, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return nil, config.Config{}, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return s, cfg, nil
}

// formatter builds the output formatter bound to the command's writers.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

// authorize checks the supplied secret against the configured one and
// maps a denial to a failure exit code.
func authorize(cfg config.Config, secret string) error {
	if err := gate.New(cfg.AdminSecret).Authorize(secret); err != nil {
		return WrapExitError(ExitFailure, "permission denied", err)
	}
	return nil
}

func closeStore(s *store.Store) {
	if err := s.Close(); err != nil {
		slog.Error("error closing database", "error", err)
	}
}
