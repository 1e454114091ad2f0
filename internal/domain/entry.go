package domain

import (
	"regexp"
	"strings"
)

// CurrentEntryVersion is the schema tag written on every new entry.
// Records persisted before the tag existed decode as this version.
const CurrentEntryVersion = 1

// DateLayout is the calendar-date format used for WorkoutEntry.Date.
const DateLayout = "2006-01-02"

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// WorkoutEntry is one recorded exercise session. Entries are values: there is
// no update path, only creation and deletion.
type WorkoutEntry struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Type      string `json:"type"`
	Minutes   int    `json:"minutes"`
	Value     int    `json:"value"`
	Note      string `json:"note"`
	CreatedAt int64  `json:"createdAt"`
	Version   int    `json:"version,omitempty"`
}

// FormData is raw, unparsed input for a new entry as typed by a user.
type FormData struct {
	Date    string
	Type    string
	Minutes string
	Value   string
	Note    string
}

// ValidationResult lists every rule an entry violates. Warnings never block
// persistence.
type ValidationResult struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// Validate checks e against the entry rules. All violations are collected.
func Validate(e WorkoutEntry) ValidationResult {
	var errs, warnings []string

	if e.Type == "" {
		errs = append(errs, "type is required")
	}

	if e.Date == "" {
		errs = append(errs, "date is required")
	} else if !IsDate(e.Date) {
		errs = append(errs, "date must use the YYYY-MM-DD format")
	}

	if e.Minutes < 0 {
		errs = append(errs, "minutes must be 0 or greater")
	}
	if e.Value < 0 {
		errs = append(errs, "value must be 0 or greater")
	}

	if e.Minutes == 0 && e.Value == 0 {
		warnings = append(warnings, "consider recording minutes or a count/distance")
	}

	return ValidationResult{
		Valid:    len(errs) == 0,
		Errors:   errs,
		Warnings: warnings,
	}
}

// IsDate reports whether s has the YYYY-MM-DD shape. It does not check that
// the date exists on the calendar.
func IsDate(s string) bool {
	return datePattern.MatchString(s)
}

// ValidationError is returned when an entry fails Validate.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, ", ")
}
