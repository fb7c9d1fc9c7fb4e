package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Hero-Over/TachiyomiSY-sub001/internal/category"
	"github.com/Hero-Over/TachiyomiSY-sub001/internal/interactor"
	"github.com/Hero-Over/TachiyomiSY-sub001/internal/reorder"
)

// CategoryOptions holds flags shared by the category subcommands.
type CategoryOptions struct {
	*RootOptions
	Collection string
}

// ResultData is the JSON payload of a mutating category command.
type ResultData struct {
	Result   string                   `json:"result"`
	Category *category.Category       `json:"category,omitempty"`
	Updates  []category.PartialUpdate `json:"updates,omitempty"`
}

// CheckData is the JSON payload of the check command.
type CheckData struct {
	Collection string `json:"collection"`
	Count      int    `json:"count"`
	Contiguous bool   `json:"contiguous"`
}

// NewCategoryCommand creates the category command and its subcommands.
func NewCategoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CategoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage the categories of a collection",
	}
	cmd.PersistentFlags().StringVar(&opts.Collection, "collection", "", "collection to act on (default from config)")

	cmd.AddCommand(newCategoryListCommand(opts))
	cmd.AddCommand(newCategoryCreateCommand(opts))
	cmd.AddCommand(newCategoryRenameCommand(opts))
	cmd.AddCommand(newCategoryDeleteCommand(opts))
	cmd.AddCommand(newCategoryReorderCommand(opts))
	cmd.AddCommand(newCategorySortCommand(opts))
	cmd.AddCommand(newCategoryCheckCommand(opts))
	cmd.AddCommand(newCategoryCollectionsCommand(opts))

	return cmd
}

// withSession wraps a RunE body with session setup and teardown.
func withSession(opts *CategoryOptions, fn func(s *session, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := openSession(opts.RootOptions, cmd)
		if err != nil {
			return err
		}
		defer s.close()
		return fn(s, cmd, args)
	}
}

func newCategoryListCommand(opts *CategoryOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories in order",
		Args:  cobra.NoArgs,
		RunE: withSession(opts, func(s *session, cmd *cobra.Command, args []string) error {
			cats, err := s.it.List(cmd.Context(), s.collection(opts.Collection))
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to list categories", err)
			}
			if s.out.JSON() {
				return s.out.Success(cats)
			}
			if len(cats) == 0 {
				fmt.Fprintln(s.out.Writer, "No categories.")
				return nil
			}
			for _, c := range cats {
				fmt.Fprintf(s.out.Writer, "%d\t%s\t%s\n", c.Order, c.ID, c.Name)
			}
			return nil
		}),
	}
}

func newCategoryCollectionsCommand(opts *CategoryOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "collections",
		Short: "List collections that hold categories",
		Args:  cobra.NoArgs,
		RunE: withSession(opts, func(s *session, cmd *cobra.Command, args []string) error {
			names, err := s.store.Collections(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to list collections", err)
			}
			if s.out.JSON() {
				return s.out.Success(names)
			}
			for _, name := range names {
				fmt.Fprintln(s.out.Writer, name)
			}
			return nil
		}),
	}
}

func newCategoryCreateCommand(opts *CategoryOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create a category at the end of the collection",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(opts, func(s *session, cmd *cobra.Command, args []string) error {
			res := s.it.Create(cmd.Context(), s.collection(opts.Collection), args[0])
			return reportInteractor(s.out, res)
		}),
	}
}

func newCategoryRenameCommand(opts *CategoryOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a category",
		Args:  cobra.ExactArgs(2),
		RunE: withSession(opts, func(s *session, cmd *cobra.Command, args []string) error {
			return reportInteractor(s.out, s.it.Rename(cmd.Context(), args[0], args[1]))
		}),
	}
}

func newCategoryDeleteCommand(opts *CategoryOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category and close the gap it leaves",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(opts, func(s *session, cmd *cobra.Command, args []string) error {
			res := s.it.Delete(cmd.Context(), s.collection(opts.Collection), args[0])
			return reportInteractor(s.out, res)
		}),
	}
}

func newCategoryReorderCommand(opts *CategoryOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <id> <position>",
		Short: "Move a category to a zero-based position",
		Long: `Move a category to a zero-based position within its collection.

Every category in the collection is renumbered in a single batch. Moving a
category to the position it already has changes nothing.

Example:
  shelf category reorder 0192f6c4-3f7e-7c47-b1d0-1b2f0a3e4b5c 0`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			position, err := strconv.Atoi(args[1])
			if err != nil {
				return WrapExitError(ExitCommandError, fmt.Sprintf("invalid position %q", args[1]), err)
			}
			return withSession(opts, func(s *session, cmd *cobra.Command, args []string) error {
				res := s.it.Reorder(cmd.Context(), s.collection(opts.Collection), args[0], position)
				return reportReorder(s.out, res)
			})(cmd, args)
		},
	}
}

func newCategorySortCommand(opts *CategoryOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sort",
		Short: "Sort the collection alphabetically by name",
		Args:  cobra.NoArgs,
		RunE: withSession(opts, func(s *session, cmd *cobra.Command, args []string) error {
			return reportInteractor(s.out, s.it.SortAlphabetically(cmd.Context(), s.collection(opts.Collection)))
		}),
	}
}

func newCategoryCheckCommand(opts *CategoryOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify that order values are exactly 0..N-1",
		Args:  cobra.NoArgs,
		RunE: withSession(opts, func(s *session, cmd *cobra.Command, args []string) error {
			collection := s.collection(opts.Collection)
			cats, err := s.it.List(cmd.Context(), collection)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to list categories", err)
			}

			err = s.it.Check(cmd.Context(), collection)
			if errors.Is(err, reorder.ErrNotContiguous) {
				if ferr := s.out.Error(ErrCodeNotContig, err.Error(), CheckData{Collection: collection, Count: len(cats)}); ferr != nil {
					return ferr
				}
				return &ExitError{Code: ExitFailure, Message: "collection is not contiguous", Err: err, Reported: true}
			}
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to check collection", err)
			}

			if s.out.JSON() {
				return s.out.Success(CheckData{Collection: collection, Count: len(cats), Contiguous: true})
			}
			fmt.Fprintf(s.out.Writer, "Collection %s is contiguous (%d categories)\n", collection, len(cats))
			return nil
		}),
	}
}

// reportInteractor writes an interactor result and maps failures to
// ExitFailure.
func reportInteractor(out *OutputFormatter, res interactor.Result) error {
	switch res.Kind {
	case interactor.KindSuccess, interactor.KindUnchanged:
		return reportOK(out, ResultData{Result: res.Kind.String(), Category: res.Category, Updates: res.Updates})
	case interactor.KindNotFound:
		return reportFailure(out, ErrCodeNotFound, "category not found", nil)
	case interactor.KindInvalidName:
		return reportFailure(out, ErrCodeInvalidName, "category name must not be blank", nil)
	case interactor.KindNameAlreadyExists:
		return reportFailure(out, ErrCodeNameExists, "a category with that name already exists", nil)
	default:
		return reportFailure(out, ErrCodeInternal, res.String(), res.Err)
	}
}

// reportReorder writes a reconciler result and maps failures to ExitFailure.
func reportReorder(out *OutputFormatter, res reorder.Result) error {
	switch {
	case res.OK():
		return reportOK(out, ResultData{Result: res.Kind.String(), Updates: res.Updates})
	case errors.Is(res.Err, reorder.ErrEntityNotFound):
		return reportFailure(out, ErrCodeNotFound, res.Err.Error(), res.Err)
	case errors.Is(res.Err, reorder.ErrPositionOutOfRange):
		return reportFailure(out, ErrCodeOutOfRange, res.Err.Error(), res.Err)
	default:
		return reportFailure(out, ErrCodeInternal, res.String(), res.Err)
	}
}

func reportOK(out *OutputFormatter, data ResultData) error {
	if out.JSON() {
		return out.Success(data)
	}

	switch {
	case data.Category != nil && len(data.Updates) == 0:
		fmt.Fprintf(out.Writer, "%s: %s %q at %d\n", data.Result, data.Category.ID, data.Category.Name, data.Category.Order)
	default:
		fmt.Fprintln(out.Writer, data.Result)
	}
	for _, u := range data.Updates {
		fmt.Fprintf(out.Writer, "  %s\n", u)
	}
	return nil
}

func reportFailure(out *OutputFormatter, code, message string, err error) error {
	if ferr := out.Error(code, message, nil); ferr != nil {
		return ferr
	}
	return &ExitError{Code: ExitFailure, Message: message, Err: err, Reported: true}
}
