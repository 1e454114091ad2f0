package formatter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/workoutlog/internal/domain"
	"github.com/alexanderramin/workoutlog/internal/repository"
)

const noteWidth = 40

var entryColumns = []Column{
	{Title: "DATE"},
	{Title: "TYPE"},
	{Title: "MIN", Right: true},
	{Title: "VALUE", Right: true},
	{Title: "NOTE"},
	{Title: "ID"},
}

// FormatEntryList renders entries as a table with a total count underneath.
func FormatEntryList(entries []domain.WorkoutEntry, filterDate string) string {
	if len(entries) == 0 {
		return Dim("No entries.") + "\n"
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		note := Truncate(e.Note, noteWidth)
		if note == "" {
			note = Dim("—")
		}
		rows = append(rows, []string{
			e.Date,
			TypeBadge(e.Type),
			strconv.Itoa(e.Minutes),
			strconv.Itoa(e.Value),
			note,
			Dim(e.ID),
		})
	}

	title := "Workouts"
	if filterDate != "" {
		title += " · " + filterDate
	}

	var b strings.Builder
	b.WriteString(Header(title))
	b.WriteString("\n")
	b.WriteString(RenderTable(entryColumns, rows))
	b.WriteString("\n")
	b.WriteString(Dim("Total: " + Plural(len(entries), "entry", "entries")))
	b.WriteString("\n")
	return b.String()
}

// FormatSummary renders per-type totals in a box.
func FormatSummary(s domain.Summary, filterDate string) string {
	title := "Summary"
	if filterDate != "" {
		title += " · " + filterDate
	}
	if s.Entries == 0 {
		return RenderBox(title, Dim("No entries."))
	}

	rows := make([][]string, 0, len(s.ByType))
	for _, t := range s.ByType {
		rows = append(rows, []string{
			TypeBadge(t.Type),
			strconv.Itoa(t.Entries),
			FormatMinutes(t.Minutes),
			strconv.Itoa(t.Value),
		})
	}
	table := RenderTable([]Column{
		{Title: "TYPE"},
		{Title: "ENTRIES", Right: true},
		{Title: "TIME", Right: true},
		{Title: "VALUE", Right: true},
	}, rows)

	total := fmt.Sprintf("%s  %s  %s",
		Bold(Plural(s.Entries, "entry", "entries")),
		Bold(FormatMinutes(s.Minutes)),
		Bold("value "+strconv.Itoa(s.Value)))

	return RenderBox(title, strings.TrimRight(table, "\n")+"\n\n"+total)
}

// FormatEntryAdded confirms a saved entry.
func FormatEntryAdded(e domain.WorkoutEntry) string {
	return Success(fmt.Sprintf("Added %s on %s: %dm, value %d %s",
		Bold(e.Type), e.Date, e.Minutes, e.Value, Dim("("+e.ID+")")))
}

// FormatError renders err for the terminal. Validation problems are listed
// one per line; unreadable data comes with a recovery hint.
func FormatError(err error) string {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		var b strings.Builder
		b.WriteString(StyleRed.Render("✖ Entry not saved:"))
		for _, p := range verr.Problems {
			b.WriteString("\n  • " + p)
		}
		return b.String()
	}

	msg := StyleRed.Render("✖ " + err.Error())
	if errors.Is(err, repository.ErrDataCorruption) {
		msg += "\n  " + Dim("Stored entries could not be read. Run `workoutlog clear` to start over.")
	}
	return msg
}

// FormatWarnings renders non-blocking validation warnings.
func FormatWarnings(warnings []string) string {
	lines := make([]string, 0, len(warnings))
	for _, w := range warnings {
		lines = append(lines, StyleYellow.Render("! ")+w)
	}
	return strings.Join(lines, "\n")
}

// FormatTypes lists the workout type catalogue.
func FormatTypes(types []string) string {
	var b strings.Builder
	b.WriteString(Header("Workout types"))
	b.WriteString("\n")
	for _, t := range types {
		b.WriteString("  " + TypeBadge(t) + "\n")
	}
	b.WriteString(Dim("Any other label is accepted too."))
	b.WriteString("\n")
	return b.String()
}
