package cli

import (
	"github.com/spf13/cobra"
)

// NewDBCommand creates the db command group.
func NewDBCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database maintenance",
	}
	cmd.AddCommand(newDBWipeCommand(rootOpts))
	return cmd
}

// DBWipeOptions holds flags for the privileged wipe command.
type DBWipeOptions struct {
	*RootOptions
	Secret  string
	Confirm bool
}

func newDBWipeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DBWipeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "wipe",
		Short: "Delete every record (privileged)",
		Long: `Empty all four collections in one transaction. Requires the admin
secret and an explicit --yes. Identities are never reused: records
created after a wipe continue the existing identity sequences.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDBWipe(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Secret, "secret", "", "admin secret")
	cmd.Flags().BoolVar(&opts.Confirm, "yes", false, "confirm the destructive wipe")

	return cmd
}

func runDBWipe(opts *DBWipeOptions, cmd *cobra.Command) error {
	out := opts.formatter(cmd)

	s, cfg, err := opts.openStore()
	if err != nil {
		return err
	}
	defer closeStore(s)

	if err := authorize(cfg, opts.Secret); err != nil {
		_ = out.Error("E_DENIED", "admin secret required for wipe", nil)
		return err
	}

	if !opts.Confirm {
		_ = out.Error("E_NOT_CONFIRMED", "wipe destroys every record; re-run with --yes", nil)
		return NewExitError(ExitFailure, "wipe not confirmed")
	}

	if err := s.ClearAll(cmd.Context()); err != nil {
		return WrapExitError(ExitCommandError, "failed to wipe database", err)
	}
	return out.Success("Database wiped")
}
