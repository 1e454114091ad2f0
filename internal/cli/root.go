package cli

import (
	"errors"
	"time"

	"github.com/alexanderramin/workoutlog/internal/domain"
	"github.com/alexanderramin/workoutlog/internal/service"
	"github.com/spf13/cobra"
)

// ConnectOptions carries the root flags that decide where entries live.
type ConnectOptions struct {
	ConfigPath string
	Ephemeral  bool
}

// App holds the services and terminal facts the commands need.
type App struct {
	Entries      service.EntryService
	WorkoutTypes []string

	// IsInteractive reports whether stdin is a terminal. Forms, prompts and
	// the browser are only offered when it returns true.
	IsInteractive func() bool
	Now           func() time.Time

	// Connect, when set, fills Entries and WorkoutTypes from the root flags
	// before a command runs. Tests set Entries directly instead.
	Connect func(opts ConnectOptions) error
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) workoutTypes() []string {
	if len(a.WorkoutTypes) == 0 {
		return domain.DefaultWorkoutTypes
	}
	return a.WorkoutTypes
}

// NewRootCmd creates the top-level "workoutlog" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var opts ConnectOptions

	root := &cobra.Command{
		Use:           "workoutlog",
		Short:         "Record and review workouts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Entries == nil && app.Connect != nil {
				if err := app.Connect(opts); err != nil {
					return err
				}
			}
			if app.Entries == nil {
				return errors.New("no entry store configured")
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "Config file (default ~/.workoutlog/config.yaml)")
	root.PersistentFlags().BoolVar(&opts.Ephemeral, "ephemeral", false, "Keep entries in memory for this run only")

	root.AddCommand(
		newAddCmd(app),
		newListCmd(app),
		newDeleteCmd(app),
		newClearCmd(app),
		newSummaryCmd(app),
		newTypesCmd(app),
		newBrowseCmd(app),
	)

	return root
}

// reportedError marks an error the command already printed.
type reportedError struct{ err error }

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}

// AlreadyReported reports whether err has been shown to the user, so the
// entrypoint only needs to set the exit status.
func AlreadyReported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}
