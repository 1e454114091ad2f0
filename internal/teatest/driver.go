// Package teatest drives bubbletea models synchronously in tests.
//
// It calls Update directly and drains the returned commands in the test
// goroutine instead of running a tea.Program. Commands that do not return
// within the driver's timeout (cursor blinks wait on a ~530ms timer) are
// dropped.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxDrainDepth bounds command chains so a model that keeps scheduling work
// cannot hang a test.
const MaxDrainDepth = 100

// DefaultCmdTimeout separates real work (store reads, message factories)
// from timer-based commands.
const DefaultCmdTimeout = 100 * time.Millisecond

// Driver is a synchronous harness for a model of concrete type M. Models
// must return themselves (or another M) from Update.
type Driver[M tea.Model] struct {
	T     *testing.T
	Model M

	// Quitting is set once a tea.QuitMsg has been produced.
	Quitting bool

	cmdTimeout time.Duration
}

// Option configures a Driver.
type Option[M tea.Model] func(*Driver[M])

// WithSize sends a WindowSizeMsg before anything else.
func WithSize[M tea.Model](w, h int) Option[M] {
	return func(d *Driver[M]) {
		d.Send(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// WithCmdTimeout overrides DefaultCmdTimeout.
func WithCmdTimeout[M tea.Model](timeout time.Duration) Option[M] {
	return func(d *Driver[M]) {
		d.cmdTimeout = timeout
	}
}

// New wraps model. Call DrainInit to run the model's Init command.
func New[M tea.Model](t *testing.T, model M, opts ...Option[M]) *Driver[M] {
	t.Helper()
	d := &Driver[M]{T: t, Model: model, cmdTimeout: DefaultCmdTimeout}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DrainInit runs Init and every command it leads to.
func (d *Driver[M]) DrainInit() {
	d.T.Helper()
	d.drain(d.Model.Init(), 0)
}

// Send dispatches msg through Update and drains the resulting commands.
func (d *Driver[M]) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	updated, cmd := d.Model.Update(msg)
	d.set(updated)
	d.drain(cmd, 0)
}

// Press sends one key by its bubbletea name: "enter", "esc", "up",
// "ctrl+c", or a single rune such as "x".
func (d *Driver[M]) Press(name string) {
	d.T.Helper()
	d.Send(KeyMsg(name))
}

// Type sends s one rune at a time.
func (d *Driver[M]) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// View renders the current model.
func (d *Driver[M]) View() string {
	return d.Model.View()
}

// KeyMsg builds the tea.KeyMsg whose String() is name.
func KeyMsg(name string) tea.KeyMsg {
	switch name {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
}

func (d *Driver[M]) set(updated tea.Model) {
	d.T.Helper()
	next, ok := updated.(M)
	if !ok {
		d.T.Fatalf("teatest: Update returned %T, want %T", updated, d.Model)
	}
	d.Model = next
}

func (d *Driver[M]) drain(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= MaxDrainDepth {
		d.T.Logf("teatest: drain depth limit (%d) reached", MaxDrainDepth)
		return
	}

	msg := d.exec(cmd)
	if msg == nil || isCursorBlink(msg) {
		return
	}

	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, sub := range msg {
			d.drain(sub, depth+1)
		}
		return
	case tea.QuitMsg:
		d.Quitting = true
		return
	}

	updated, next := d.Model.Update(msg)
	d.set(updated)
	d.drain(next, depth+1)
}

// exec runs cmd with the driver's timeout. A command that times out is
// abandoned; its goroutine finishes on its own.
func (d *Driver[M]) exec(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() {
		ch <- cmd()
	}()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(d.cmdTimeout):
		return nil
	}
}

// isCursorBlink matches the bubbles cursor blink messages, whose types are
// unexported.
func isCursorBlink(msg tea.Msg) bool {
	t := fmt.Sprintf("%T", msg)
	return strings.Contains(t, "Blink") || strings.Contains(t, "blink")
}
