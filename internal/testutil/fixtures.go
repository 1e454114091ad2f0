package testutil

import (
	"sync/atomic"
	"time"

	"github.com/alexanderramin/workoutlog/internal/domain"
	"github.com/google/uuid"
)

var testClock atomic.Int64

// EntryOption customizes a test entry.
type EntryOption func(*domain.WorkoutEntry)

func WithDate(d string) EntryOption {
	return func(e *domain.WorkoutEntry) {
		e.Date = d
	}
}

func WithType(t string) EntryOption {
	return func(e *domain.WorkoutEntry) {
		e.Type = t
	}
}

func WithMinutes(m int) EntryOption {
	return func(e *domain.WorkoutEntry) {
		e.Minutes = m
	}
}

func WithValue(v int) EntryOption {
	return func(e *domain.WorkoutEntry) {
		e.Value = v
	}
}

func WithNote(n string) EntryOption {
	return func(e *domain.WorkoutEntry) {
		e.Note = n
	}
}

func WithCreatedAt(ms int64) EntryOption {
	return func(e *domain.WorkoutEntry) {
		e.CreatedAt = ms
	}
}

// NewTestEntry builds a valid entry. Successive calls get strictly increasing
// CreatedAt values unless overridden.
func NewTestEntry(opts ...EntryOption) domain.WorkoutEntry {
	base := time.Date(2024, 11, 15, 8, 0, 0, 0, time.UTC).UnixMilli()
	e := domain.WorkoutEntry{
		ID:        uuid.New().String(),
		Date:      "2024-11-15",
		Type:      "running",
		Minutes:   30,
		Value:     5,
		CreatedAt: base + testClock.Add(1),
		Version:   domain.CurrentEntryVersion,
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// FixedClock returns a clock that advances by step on every call, starting at start.
func FixedClock(start time.Time, step time.Duration) func() time.Time {
	var calls atomic.Int64
	return func() time.Time {
		n := calls.Add(1) - 1
		return start.Add(time.Duration(n) * step)
	}
}

// NewTestForm returns valid form input.
func NewTestForm() domain.FormData {
	return domain.FormData{
		Date:    "2024-11-15",
		Type:    "running",
		Minutes: "30",
		Value:   "5",
		Note:    "test",
	}
}
