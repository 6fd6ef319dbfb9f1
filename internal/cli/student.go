package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tecnosoft/academy/internal/model"
	"github.com/tecnosoft/academy/internal/store"
)

// StudentAddOptions holds flags for the student add command.
type StudentAddOptions struct {
	*RootOptions
	Name     string
	Age      int
	Address  string
	Phone    string
	Siblings string
}

// NewStudentCommand creates the student command group.
func NewStudentCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "student",
		Short: "Manage registered students",
	}
	cmd.AddCommand(newStudentAddCommand(rootOpts))
	cmd.AddCommand(newStudentListCommand(rootOpts))
	return cmd
}

func newStudentAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StudentAddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new student",
		Long: `Register a student. Phone numbers are unique across students; a
duplicate phone is rejected and nothing is stored.

Example:
  academy student add --name "Sara" --age 10 --phone 0100000000 --siblings no`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStudentAdd(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "student name (required)")
	cmd.Flags().IntVar(&opts.Age, "age", 0, "student age (required)")
	cmd.Flags().StringVar(&opts.Address, "address", "", "home address")
	cmd.Flags().StringVar(&opts.Phone, "phone", "", "contact phone, unique (required)")
	cmd.Flags().StringVar(&opts.Siblings, "siblings", "no", "has enrolled siblings (yes|no)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("age")
	_ = cmd.MarkFlagRequired("phone")

	return cmd
}

func runStudentAdd(opts *StudentAddOptions, cmd *cobra.Command) error {
	out := opts.formatter(cmd)

	st := model.Student{
		Name:        model.NormalizeName(opts.Name),
		Age:         opts.Age,
		Address:     strings.TrimSpace(opts.Address),
		Phone:       strings.TrimSpace(opts.Phone),
		HasSiblings: model.SiblingFlag(opts.Siblings),
		CreatedAt:   time.Now().UTC(),
	}
	if err := st.Validate(); err != nil {
		_ = out.Error("E_VALIDATION", err.Error(), nil)
		return WrapExitError(ExitFailure, "invalid student", err)
	}

	s, _, err := opts.openStore()
	if err != nil {
		return err
	}
	defer closeStore(s)

	if err := s.InsertStudent(cmd.Context(), &st); err != nil {
		if store.IsUniqueViolation(err) {
			_ = out.Error("E_DUPLICATE", "a student with this phone already exists", nil)
			return WrapExitError(ExitFailure, "duplicate phone", err)
		}
		return WrapExitError(ExitCommandError, "failed to store student", err)
	}

	if opts.Format == "json" {
		return out.Success(st)
	}
	return out.Success(fmt.Sprintf("Registered student #%d: %s", st.StudentID, st.Name))
}

// StudentListOptions holds flags for the student list command.
type StudentListOptions struct {
	*RootOptions
	Search string
}

func newStudentListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StudentListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List students, optionally filtered by name",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStudentList(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Search, "search", "", "filter by normalized name substring")

	return cmd
}

func runStudentList(opts *StudentListOptions, cmd *cobra.Command) error {
	out := opts.formatter(cmd)

	s, _, err := opts.openStore()
	if err != nil {
		return err
	}
	defer closeStore(s)

	students, err := s.ListStudents(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list students", err)
	}

	filtered := students[:0:0]
	for _, st := range students {
		if model.MatchesSearch(st.Name, opts.Search) {
			filtered = append(filtered, st)
		}
	}
	if filtered == nil {
		filtered = []model.Student{}
	}

	if opts.Format == "json" {
		return out.Success(filtered)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d student(s)\n", len(filtered))
	for _, st := range filtered {
		fmt.Fprintf(&b, "  #%-4d %-24s age %-3d phone %-14s siblings %s\n",
			st.StudentID, st.Name, st.Age, st.Phone, st.HasSiblings)
	}
	return out.Success(strings.TrimRight(b.String(), "\n"))
}
