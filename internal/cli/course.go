package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tecnosoft/academy/internal/model"
	"github.com/tecnosoft/academy/internal/store"
)

// CourseAddOptions holds flags for the course add command.
type CourseAddOptions struct {
	*RootOptions
	Name  string
	Price float64
}

// NewCourseCommand creates the course command group.
func NewCourseCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "course",
		Short: "Manage offered courses",
	}
	cmd.AddCommand(newCourseAddCommand(rootOpts))
	cmd.AddCommand(newCourseListCommand(rootOpts))
	cmd.AddCommand(newCourseSetPriceCommand(rootOpts))
	return cmd
}

func newCourseAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CourseAddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "add",
		Short:         "Add a new course",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCourseAdd(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "course name, unique (required)")
	cmd.Flags().Float64Var(&opts.Price, "price", 0, "course price (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("price")

	return cmd
}

func runCourseAdd(opts *CourseAddOptions, cmd *cobra.Command) error {
	out := opts.formatter(cmd)

	c := model.Course{
		CourseName: model.NormalizeName(opts.Name),
		Price:      opts.Price,
		CreatedAt:  time.Now().UTC(),
	}
	if err := c.Validate(); err != nil {
		_ = out.Error("E_VALIDATION", err.Error(), nil)
		return WrapExitError(ExitFailure, "invalid course", err)
	}

	s, _, err := opts.openStore()
	if err != nil {
		return err
	}
	defer closeStore(s)

	if err := s.InsertCourse(cmd.Context(), &c); err != nil {
		if store.IsUniqueViolation(err) {
			_ = out.Error("E_DUPLICATE", "a course with this name already exists", nil)
			return WrapExitError(ExitFailure, "duplicate course name", err)
		}
		return WrapExitError(ExitCommandError, "failed to store course", err)
	}

	if opts.Format == "json" {
		return out.Success(c)
	}
	return out.Success(fmt.Sprintf("Added course #%d: %s (%.2f)", c.CourseID, c.CourseName, c.Price))
}

func newCourseListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List courses",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCourseList(rootOpts, cmd)
		},
	}
	return cmd
}

func runCourseList(opts *RootOptions, cmd *cobra.Command) error {
	out := opts.formatter(cmd)

	s, _, err := opts.openStore()
	if err != nil {
		return err
	}
	defer closeStore(s)

	courses, err := s.ListCourses(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list courses", err)
	}

	if opts.Format == "json" {
		return out.Success(courses)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d course(s)\n", len(courses))
	for _, c := range courses {
		fmt.Fprintf(&b, "  #%-4d %-32s %.2f\n", c.CourseID, c.CourseName, c.Price)
	}
	return out.Success(strings.TrimRight(b.String(), "\n"))
}

// CourseSetPriceOptions holds flags for the privileged price correction.
type CourseSetPriceOptions struct {
	*RootOptions
	CourseID int64
	Price    float64
	Secret   string
}

func newCourseSetPriceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CourseSetPriceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "set-price",
		Short: "Correct a course price (privileged)",
		Long: `Correct a course's price. Requires the admin secret. Existing
bookings keep the price snapshot taken when they were created; only
future bookings see the new price.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCourseSetPrice(opts, cmd)
		},
	}

	cmd.Flags().Int64Var(&opts.CourseID, "id", 0, "course identity (required)")
	cmd.Flags().Float64Var(&opts.Price, "price", 0, "new price (required)")
	cmd.Flags().StringVar(&opts.Secret, "secret", "", "admin secret")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("price")

	return cmd
}

func runCourseSetPrice(opts *CourseSetPriceOptions, cmd *cobra.Command) error {
	out := opts.formatter(cmd)

	s, cfg, err := opts.openStore()
	if err != nil {
		return err
	}
	defer closeStore(s)

	if err := authorize(cfg, opts.Secret); err != nil {
		_ = out.Error("E_DENIED", "admin secret required for price correction", nil)
		return err
	}

	if opts.Price < 0 {
		_ = out.Error("E_VALIDATION", "price must not be negative", nil)
		return NewExitError(ExitFailure, "invalid price")
	}

	c, err := s.GetCourse(cmd.Context(), opts.CourseID)
	if err != nil {
		if store.IsNotFound(err) {
			_ = out.Error("E_NOT_FOUND", fmt.Sprintf("no course #%d", opts.CourseID), nil)
			return WrapExitError(ExitFailure, "course not found", err)
		}
		return WrapExitError(ExitCommandError, "failed to load course", err)
	}

	c.Price = opts.Price
	if err := s.UpdateCourse(cmd.Context(), c); err != nil {
		return WrapExitError(ExitCommandError, "failed to update course", err)
	}

	if opts.Format == "json" {
		return out.Success(c)
	}
	return out.Success(fmt.Sprintf("Course #%d %s price set to %.2f", c.CourseID, c.CourseName, c.Price))
}
