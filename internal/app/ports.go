package app

import "github.com/alexanderramin/workoutlog/internal/domain"

// View is the presentation surface a Controller drives. Implementations
// decide how things look; the controller decides when they happen.
type View interface {
	// RenderEntries shows the current list, its totals, and the active
	// date filter ("" when unfiltered).
	RenderEntries(entries []domain.WorkoutEntry, summary domain.Summary, filterDate string)
	ShowError(err error)
	// ShowWarnings shows non-blocking validation warnings after a save.
	ShowWarnings(warnings []string)
	ShowInfo(msg string)
	// Confirm asks a yes/no question. Destructive actions proceed only on true.
	Confirm(prompt string) bool
}
