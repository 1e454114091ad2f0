package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/workoutlog/internal/cli/formatter"
	"github.com/alexanderramin/workoutlog/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// otherType is the select option that switches to a free-text type.
const otherType = "__other__"

// workoutlogHuhTheme returns a huh theme using the gruvbox palette.
func workoutlogHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// entryFormFields is bound to the add form. Type holds the select choice;
// CustomType is used when the choice is otherType.
type entryFormFields struct {
	domain.FormData
	CustomType string
}

// formData resolves the select choice into the submitted form.
func (f *entryFormFields) formData() domain.FormData {
	in := f.FormData
	if in.Type == otherType {
		in.Type = strings.TrimSpace(f.CustomType)
	}
	return in
}

// newEntryForm builds the interactive add form. Field values in f are used
// as defaults.
func newEntryForm(types []string, f *entryFormFields) *huh.Form {
	options := make([]huh.Option[string], 0, len(types)+1)
	for _, t := range types {
		options = append(options, huh.NewOption(t, t))
	}
	options = append(options, huh.NewOption("other…", otherType))
	if f.Type == "" && len(types) > 0 {
		f.Type = types[0]
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&f.Date).
				Validate(validateDate),
			huh.NewSelect[string]().
				Title("Type").
				Options(options...).
				Value(&f.Type),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Type name").
				Value(&f.CustomType).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("enter a type")
					}
					return nil
				}),
		).WithHideFunc(func() bool { return f.Type != otherType }),
		huh.NewGroup(
			huh.NewInput().
				Title("Minutes").
				Placeholder("0").
				Value(&f.Minutes).
				Validate(validateNonNegativeInt),
			huh.NewInput().
				Title("Count / distance (optional)").
				Placeholder("0").
				Value(&f.Value).
				Validate(validateNonNegativeInt),
			huh.NewText().
				Title("Note (optional)").
				Value(&f.Note),
		),
	).WithTheme(workoutlogHuhTheme()).WithShowHelp(false)
}

// newConfirmForm asks a yes/no question.
func newConfirmForm(title string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Delete").
				Negative("Cancel").
				Value(result),
		),
	).WithTheme(workoutlogHuhTheme()).WithShowHelp(false)
}

// validateDate accepts YYYY-MM-DD.
func validateDate(s string) error {
	if !domain.IsDate(s) {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

// validateNonNegativeInt accepts empty or a non-negative integer.
func validateNonNegativeInt(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return fmt.Errorf("enter a non-negative number")
	}
	return nil
}
