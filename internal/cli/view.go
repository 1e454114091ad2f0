package cli

import (
	"fmt"
	"io"

	"github.com/alexanderramin/workoutlog/internal/app"
	"github.com/alexanderramin/workoutlog/internal/cli/formatter"
	"github.com/alexanderramin/workoutlog/internal/domain"
	"github.com/spf13/cobra"
)

// renderFunc draws the entry list for one command. Commands that only
// report an outcome leave it nil.
type renderFunc func(w io.Writer, entries []domain.WorkoutEntry, summary domain.Summary, filterDate string)

// terminalView prints controller output for one-shot commands.
type terminalView struct {
	out     io.Writer
	errOut  io.Writer
	render  renderFunc
	confirm func(prompt string) bool
}

var _ app.View = (*terminalView)(nil)

func newTerminalView(cmd *cobra.Command, render renderFunc) *terminalView {
	return &terminalView{
		out:    cmd.OutOrStdout(),
		errOut: cmd.ErrOrStderr(),
		render: render,
	}
}

func (v *terminalView) RenderEntries(entries []domain.WorkoutEntry, summary domain.Summary, filterDate string) {
	if v.render != nil {
		v.render(v.out, entries, summary, filterDate)
	}
}

func (v *terminalView) ShowError(err error) {
	fmt.Fprintln(v.errOut, formatter.FormatError(err))
}

func (v *terminalView) ShowWarnings(warnings []string) {
	fmt.Fprintln(v.errOut, formatter.FormatWarnings(warnings))
}

func (v *terminalView) ShowInfo(msg string) {
	fmt.Fprintln(v.out, formatter.Success(msg))
}

func (v *terminalView) Confirm(prompt string) bool {
	if v.confirm == nil {
		return false
	}
	return v.confirm(prompt)
}

func renderList(w io.Writer, entries []domain.WorkoutEntry, _ domain.Summary, filterDate string) {
	fmt.Fprint(w, formatter.FormatEntryList(entries, filterDate))
}

func renderSummary(w io.Writer, _ []domain.WorkoutEntry, summary domain.Summary, filterDate string) {
	fmt.Fprintln(w, formatter.FormatSummary(summary, filterDate))
}

// controller binds a fresh controller to view.
func (a *App) controller(view app.View) *app.Controller {
	return app.NewController(a.Entries, view)
}
