package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/workoutlog/internal/cli/formatter"
	"github.com/alexanderramin/workoutlog/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var entryFlagNames = []string{"date", "type", "minutes", "value", "note"}

// anyChanged reports whether any of the named flags was set on the command line.
func anyChanged(fs *pflag.FlagSet, names ...string) bool {
	for _, name := range names {
		if f := fs.Lookup(name); f != nil && f.Changed {
			return true
		}
	}
	return false
}

func newAddCmd(app *App) *cobra.Command {
	var fields entryFormFields

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a workout",
		Long: "Record a workout. Without flags on an interactive terminal a form\n" +
			"collects the fields. The date defaults to today.",
		Example: `  workoutlog add --type running --minutes 30 --value 5 --note "easy pace"
  workoutlog add --date 2024-11-15 --type "jump rope" --value 300`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("date") {
				fields.Date = domain.Today(app.now())
			}
			if !anyChanged(cmd.Flags(), entryFlagNames...) && app.interactive() {
				if err := newEntryForm(app.workoutTypes(), &fields).Run(); err != nil {
					return err
				}
			}

			res, err := app.controller(newTerminalView(cmd, nil)).OnSubmitForm(cmd.Context(), fields.formData())
			if err != nil {
				return reported(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatEntryAdded(res.Entry))
			return nil
		},
	}

	cmd.Flags().StringVar(&fields.Date, "date", "", "Workout date, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&fields.Type, "type", "", "Workout type, e.g. running")
	cmd.Flags().StringVar(&fields.Minutes, "minutes", "", "Duration in minutes")
	cmd.Flags().StringVar(&fields.Value, "value", "", "Count or distance")
	cmd.Flags().StringVar(&fields.Note, "note", "", "Free-text note")
	_ = cmd.RegisterFlagCompletionFunc("type", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return app.workoutTypes(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func newListCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List workouts, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := app.controller(newTerminalView(cmd, renderList))
			return reported(ctrl.OnRequestFilter(cmd.Context(), date))
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Only show workouts on this date (YYYY-MM-DD)")
	return cmd
}

func newSummaryCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show totals per workout type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := app.controller(newTerminalView(cmd, renderSummary))
			return reported(ctrl.OnRequestFilter(cmd.Context(), date))
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Only total workouts on this date (YYYY-MM-DD)")
	return cmd
}

func newDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete one workout by ID or unique ID prefix",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, found, err := resolveEntryID(ctx, app, strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}
			if err := app.controller(newTerminalView(cmd, nil)).OnRequestDelete(ctx, id); err != nil {
				return reported(err)
			}

			out := cmd.OutOrStdout()
			if !found {
				fmt.Fprintln(out, formatter.Dim(fmt.Sprintf("No entry with ID %q. Nothing deleted.", args[0])))
				return nil
			}
			fmt.Fprintln(out, formatter.Success("Deleted "+id))
			return nil
		},
	}
}

// resolveEntryID expands a unique ID prefix to the full ID. Unknown IDs are
// returned as given with found=false.
func resolveEntryID(ctx context.Context, app *App, arg string) (id string, found bool, err error) {
	if arg == "" {
		return "", false, nil
	}
	entries, err := app.Entries.GetAll(ctx)
	if err != nil {
		return "", false, reported(err)
	}

	var matches []string
	for _, e := range entries {
		if e.ID == arg {
			return arg, true, nil
		}
		if strings.HasPrefix(e.ID, arg) {
			matches = append(matches, e.ID)
		}
	}
	switch len(matches) {
	case 0:
		return arg, false, nil
	case 1:
		return matches[0], true, nil
	default:
		return "", false, fmt.Errorf("ID prefix %q matches %d entries; use more characters", arg, len(matches))
	}
}

func newClearCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every workout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !app.interactive() {
				return errors.New("refusing to clear without confirmation on a non-interactive terminal; pass --yes")
			}

			view := newTerminalView(cmd, nil)
			view.confirm = func(prompt string) bool {
				if yes {
					return true
				}
				var ok bool
				if err := newConfirmForm(prompt, &ok).Run(); err != nil {
					return false
				}
				return ok
			}

			cleared, err := app.controller(view).OnRequestClearAll(cmd.Context())
			if err != nil {
				return reported(err)
			}
			if !cleared {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled. Nothing deleted."))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newTypesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the suggested workout types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTypes(app.workoutTypes()))
			return nil
		},
	}
}
