package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/alexanderramin/workoutlog/internal/app"
	"github.com/alexanderramin/workoutlog/internal/cli/formatter"
	"github.com/alexanderramin/workoutlog/internal/domain"
	"github.com/alexanderramin/workoutlog/internal/service"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func newBrowseCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse, filter and delete workouts in a full-screen view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.interactive() {
				return errors.New("browse needs an interactive terminal; use list instead")
			}
			m := newBrowseModel(cmd.Context(), a.Entries)
			_, err := tea.NewProgram(m,
				tea.WithAltScreen(),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			).Run()
			return err
		},
	}
}

// browseKeyMap lists the browser's key bindings.
type browseKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Filter      key.Binding
	ClearFilter key.Binding
	Delete      key.Binding
	ClearAll    key.Binding
	Refresh     key.Binding
	Quit        key.Binding
}

func newBrowseKeyMap() browseKeyMap {
	return browseKeyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Filter:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter by date")),
		ClearFilter: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "show all")),
		Delete:      key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "delete")),
		ClearAll:    key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear all")),
		Refresh:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k browseKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Filter, k.Delete, k.ClearAll, k.Refresh, k.Quit}
}

func (k browseKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.ClearFilter}}
}

// snapshot is what the controller pushed to the view during one operation.
type snapshot struct {
	rendered   bool
	entries    []domain.WorkoutEntry
	summary    domain.Summary
	filterDate string
	err        error
	info       string
}

// browseResultMsg carries a finished controller operation back to Update.
type browseResultMsg snapshot

// snapshotView collects controller callbacks made off the UI goroutine.
// Confirm always agrees: the browser asks before starting a clear.
type snapshotView struct {
	mu  sync.Mutex
	cur snapshot
}

var _ app.View = (*snapshotView)(nil)

func (v *snapshotView) RenderEntries(entries []domain.WorkoutEntry, summary domain.Summary, filterDate string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cur.rendered = true
	v.cur.entries = entries
	v.cur.summary = summary
	v.cur.filterDate = filterDate
}

func (v *snapshotView) ShowError(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cur.err = err
}

func (v *snapshotView) ShowWarnings([]string) {}

func (v *snapshotView) ShowInfo(msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cur.info = msg
}

func (v *snapshotView) Confirm(string) bool { return true }

func (v *snapshotView) take() snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	s := v.cur
	v.cur = snapshot{}
	return s
}

type browseMode int

const (
	modeList browseMode = iota
	modeFilter
	modeConfirmClear
)

// browseModel is the full-screen entry browser.
type browseModel struct {
	ctx  context.Context
	ctrl *app.Controller
	view *snapshotView

	entries    []domain.WorkoutEntry
	summary    domain.Summary
	filterDate string
	cursor     int
	busy       bool
	err        error
	info       string

	mode   browseMode
	filter textinput.Model
	keys   browseKeyMap
	help   help.Model
}

func newBrowseModel(ctx context.Context, entries service.EntryService) *browseModel {
	view := &snapshotView{}
	ti := textinput.New()
	ti.Placeholder = "YYYY-MM-DD (empty shows all)"
	ti.CharLimit = len("2006-01-02")
	ti.Prompt = "/ "

	return &browseModel{
		ctx:    ctx,
		ctrl:   app.NewController(entries, view),
		view:   view,
		filter: ti,
		keys:   newBrowseKeyMap(),
		help:   help.New(),
	}
}

func (m *browseModel) Init() tea.Cmd {
	return m.run(m.ctrl.Refresh)
}

// run executes one controller operation off the UI goroutine. Only one
// operation is in flight at a time.
func (m *browseModel) run(op func(ctx context.Context) error) tea.Cmd {
	m.busy = true
	ctx, view := m.ctx, m.view
	return func() tea.Msg {
		_ = op(ctx) // failures reach the view through ShowError
		return browseResultMsg(view.take())
	}
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case browseResultMsg:
		m.busy = false
		m.err = msg.err
		m.info = msg.info
		if msg.rendered {
			m.entries = msg.entries
			m.summary = msg.summary
			m.filterDate = msg.filterDate
			if m.cursor >= len(m.entries) {
				m.cursor = max(len(m.entries)-1, 0)
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) && (m.mode == modeList || msg.Type == tea.KeyCtrlC) {
			return m, tea.Quit
		}
		if m.busy {
			return m, nil
		}
		switch m.mode {
		case modeFilter:
			return m.updateFilter(msg)
		case modeConfirmClear:
			return m.updateConfirm(msg)
		default:
			return m.updateList(msg)
		}
	}
	return m, nil
}

func (m *browseModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.info = ""
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Filter):
		m.mode = modeFilter
		m.filter.SetValue(m.filterDate)
		m.filter.CursorEnd()
		return m, m.filter.Focus()
	case key.Matches(msg, m.keys.ClearFilter):
		if m.filterDate != "" {
			return m, m.run(func(ctx context.Context) error { return m.ctrl.OnRequestFilter(ctx, "") })
		}
	case key.Matches(msg, m.keys.Delete):
		if len(m.entries) > 0 {
			id := m.entries[m.cursor].ID
			return m, m.run(func(ctx context.Context) error { return m.ctrl.OnRequestDelete(ctx, id) })
		}
	case key.Matches(msg, m.keys.ClearAll):
		m.mode = modeConfirmClear
	case key.Matches(msg, m.keys.Refresh):
		return m, m.run(m.ctrl.Refresh)
	}
	return m, nil
}

func (m *browseModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeList
		m.filter.Blur()
		return m, nil
	case tea.KeyEnter:
		m.mode = modeList
		m.filter.Blur()
		m.cursor = 0
		date := m.filter.Value()
		return m, m.run(func(ctx context.Context) error { return m.ctrl.OnRequestFilter(ctx, date) })
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	return m, cmd
}

func (m *browseModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = modeList
	if msg.String() == "y" || msg.String() == "Y" {
		m.cursor = 0
		return m, m.run(func(ctx context.Context) error {
			_, err := m.ctrl.OnRequestClearAll(ctx)
			return err
		})
	}
	m.info = "Clear cancelled."
	return m, nil
}

func (m *browseModel) View() string {
	var b strings.Builder

	title := "Workout log"
	if m.filterDate != "" {
		title += " · " + m.filterDate
	}
	b.WriteString(formatter.Header(title))
	b.WriteString("\n\n")

	switch {
	case m.busy && len(m.entries) == 0:
		b.WriteString(formatter.Dim("Loading...") + "\n")
	case len(m.entries) == 0:
		b.WriteString(formatter.Dim("No entries.") + "\n")
	default:
		for i, e := range m.entries {
			b.WriteString(m.renderRow(i, e))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(formatter.Dim(fmt.Sprintf("%s · %s · value %d",
		formatter.Plural(m.summary.Entries, "entry", "entries"),
		formatter.FormatMinutes(m.summary.Minutes),
		m.summary.Value)))
	b.WriteString("\n")

	switch m.mode {
	case modeFilter:
		b.WriteString("\n" + m.filter.View() + "\n")
	case modeConfirmClear:
		b.WriteString("\n" + formatter.StyleRed.Render(app.ClearConfirmPrompt+" [y/N]") + "\n")
	}
	if m.err != nil {
		b.WriteString("\n" + formatter.FormatError(m.err) + "\n")
	}
	if m.info != "" {
		b.WriteString("\n" + formatter.Success(m.info) + "\n")
	}

	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

func (m *browseModel) renderRow(i int, e domain.WorkoutEntry) string {
	cursor := "  "
	if i == m.cursor {
		cursor = formatter.StyleGreen.Render("▸ ")
	}
	note := formatter.Truncate(e.Note, 30)
	return fmt.Sprintf("%s%s  %s  %s  %s  %s",
		cursor,
		e.Date,
		padRight(formatter.TypeBadge(formatter.Truncate(e.Type, 14)), 14),
		padLeft(strconv.Itoa(e.Minutes)+"m", 5),
		padLeft(strconv.Itoa(e.Value), 6),
		formatter.Dim(note),
	)
}

// padRight pads a possibly styled string to width visible cells.
func padRight(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func padLeft(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return strings.Repeat(" ", width-n) + s
	}
	return s
}
