package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tecnosoft/academy/internal/backup"
)

// NewBackupCommand creates the backup command group.
func NewBackupCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export and restore database snapshots",
	}
	cmd.AddCommand(newBackupExportCommand(rootOpts))
	cmd.AddCommand(newBackupImportCommand(rootOpts))
	return cmd
}

// BackupExportOptions holds flags for the backup export command.
type BackupExportOptions struct {
	*RootOptions
	Output string
}

func newBackupExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BackupExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the full database to a snapshot file",
		Long: `Write the whole database - students, courses, bookings, attendance -
to one JSON snapshot file. Without -o the file is named
academy_backup_<date>.json in the working directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackupExport(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "snapshot file path")

	return cmd
}

func runBackupExport(opts *BackupExportOptions, cmd *cobra.Command) error {
	out := opts.formatter(cmd)

	s, _, err := opts.openStore()
	if err != nil {
		return err
	}
	defer closeStore(s)

	snap, err := backup.NewExporter().Export(cmd.Context(), s)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to export snapshot", err)
	}
	data, err := snap.Marshal()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to encode snapshot", err)
	}

	path := opts.Output
	if path == "" {
		path = backup.Filename(time.Now())
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return WrapExitError(ExitCommandError, "failed to write snapshot file", err)
	}

	out.VerboseLog("snapshot %s: %d students, %d courses, %d bookings, %d check-ins",
		snap.SnapshotID, len(snap.Students), len(snap.Courses), len(snap.Bookings), len(snap.Attendance))

	if opts.Format == "json" {
		return out.Success(map[string]any{"path": path, "snapshotId": snap.SnapshotID})
	}
	return out.Success(fmt.Sprintf("Exported snapshot to %s", path))
}

// BackupImportOptions holds flags for the privileged import command.
type BackupImportOptions struct {
	*RootOptions
	File    string
	Secret  string
	Confirm bool
}

func newBackupImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BackupImportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Restore a snapshot by full replacement (privileged)",
		Long: `Replace the entire database with a snapshot file's contents.
Requires the admin secret and an explicit --yes; the current contents
are destroyed. Record identities from the snapshot are preserved.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackupImport(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.File, "file", "", "snapshot file to restore (required)")
	cmd.Flags().StringVar(&opts.Secret, "secret", "", "admin secret")
	cmd.Flags().BoolVar(&opts.Confirm, "yes", false, "confirm the destructive replacement")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runBackupImport(opts *BackupImportOptions, cmd *cobra.Command) error {
	out := opts.formatter(cmd)

	data, err := os.ReadFile(opts.File)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read snapshot file", err)
	}

	s, cfg, err := opts.openStore()
	if err != nil {
		return err
	}
	defer closeStore(s)

	if err := authorize(cfg, opts.Secret); err != nil {
		_ = out.Error("E_DENIED", "admin secret required for restore", nil)
		return err
	}

	if err := backup.Import(cmd.Context(), s, data, opts.Confirm); err != nil {
		if errors.Is(err, backup.ErrNotConfirmed) {
			_ = out.Error("E_NOT_CONFIRMED", "restore replaces the whole database; re-run with --yes", nil)
			return WrapExitError(ExitFailure, "restore not confirmed", err)
		}
		_ = out.Error("E_RESTORE", err.Error(), nil)
		return WrapExitError(ExitFailure, "restore failed", err)
	}

	return out.Success(fmt.Sprintf("Restored database from %s", opts.File))
}
