package service

import (
	"context"

	"github.com/alexanderramin/workoutlog/internal/domain"
)

// AddResult is the outcome of a successful Add.
type AddResult struct {
	Entry    domain.WorkoutEntry
	Warnings []string
}

// EntryService is the business surface over persisted entries. Every call
// re-reads storage.
type EntryService interface {
	// GetAll returns every entry, newest first.
	GetAll(ctx context.Context) ([]domain.WorkoutEntry, error)
	// GetByDate returns entries whose date equals date exactly, newest first.
	// An empty date behaves like GetAll.
	GetByDate(ctx context.Context, date string) ([]domain.WorkoutEntry, error)
	// Add builds, validates and stores a new entry. Invalid input yields a
	// *domain.ValidationError and nothing is written.
	Add(ctx context.Context, in domain.FormData) (*AddResult, error)
	// Delete removes the entry with id. Empty or unknown ids are a no-op.
	Delete(ctx context.Context, id string) error
	// ClearAll removes the whole collection.
	ClearAll(ctx context.Context) error
	// Summarize totals the entries GetByDate(date) would return.
	Summarize(ctx context.Context, date string) (*domain.Summary, error)
}
