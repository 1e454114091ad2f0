package domain

import (
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Factory builds new entries from form input. The zero value uses
// NewEntryID and the wall clock.
type Factory struct {
	NewID func() string
	Now   func() time.Time
}

// FromForm converts raw input into an entry with a fresh id and timestamp.
// Date and type are copied as given so that Validate can report them.
func (f Factory) FromForm(in FormData) WorkoutEntry {
	newID := f.NewID
	if newID == nil {
		newID = NewEntryID
	}
	now := f.Now
	if now == nil {
		now = time.Now
	}

	return WorkoutEntry{
		ID:        newID(),
		Date:      in.Date,
		Type:      in.Type,
		Minutes:   ParseCount(in.Minutes),
		Value:     ParseCount(in.Value),
		Note:      strings.TrimSpace(in.Note),
		CreatedAt: now().UnixMilli(),
		Version:   CurrentEntryVersion,
	}
}

// ParseCount reads a non-negative integer from user input. Leading whitespace
// (including full-width and no-break spaces) and an optional sign are accepted and anything after the first run of digits
// is ignored, so "30min" reads as 30. Empty, non-numeric, negative or
// out-of-range input yields 0.
func ParseCount(s string) int {
	s = strings.TrimLeftFunc(s, isLeadingSpace)
	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 || negative {
		return 0
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

func isLeadingSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// Today returns the local calendar date of t in DateLayout.
func Today(t time.Time) string {
	return t.Format(DateLayout)
}
