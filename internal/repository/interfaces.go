package repository

import (
	"context"

	"github.com/alexanderramin/workoutlog/internal/domain"
)

// DefaultEntriesKey is the storage key holding the entry collection.
const DefaultEntriesKey = "workoutLogEntries"

// EntryStore is the only gateway to persisted entries. The whole collection
// is read and written as one list.
type EntryStore interface {
	ReadAll(ctx context.Context) ([]domain.WorkoutEntry, error)
	WriteAll(ctx context.Context, entries []domain.WorkoutEntry) error
	Clear(ctx context.Context) error
	// Transaction reads the list, applies fn and writes the result back.
	// Nothing is written when fn returns an error. Returning ErrSkipWrite
	// ends the transaction without a write and without an error.
	Transaction(ctx context.Context, fn func(entries []domain.WorkoutEntry) ([]domain.WorkoutEntry, error)) error
}
