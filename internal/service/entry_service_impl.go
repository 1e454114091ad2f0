package service

import (
	"context"
	"time"

	"github.com/alexanderramin/workoutlog/internal/domain"
	"github.com/alexanderramin/workoutlog/internal/repository"
)

type entryService struct {
	store    repository.EntryStore
	factory  domain.Factory
	observer UseCaseObserver
}

// NewEntryService creates an EntryService over store. The zero Factory uses
// UUIDv7 ids and the wall clock.
func NewEntryService(store repository.EntryStore, factory domain.Factory, observers ...UseCaseObserver) EntryService {
	return &entryService{
		store:    store,
		factory:  factory,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *entryService) GetAll(ctx context.Context) ([]domain.WorkoutEntry, error) {
	return s.GetByDate(ctx, "")
}

func (s *entryService) GetByDate(ctx context.Context, date string) (entries []domain.WorkoutEntry, err error) {
	fields := map[string]any{"date": date}
	defer observe(ctx, s.observer, "list-entries", time.Now(), fields, &err)

	all, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	entries = sortNewestFirst(filterByDate(all, date))
	fields["count"] = len(entries)
	return entries, nil
}

func (s *entryService) Add(ctx context.Context, in domain.FormData) (result *AddResult, err error) {
	fields := map[string]any{"type": in.Type, "date": in.Date}
	defer observe(ctx, s.observer, "add-entry", time.Now(), fields, &err)

	entry := s.factory.FromForm(in)
	check := domain.Validate(entry)
	if !check.Valid {
		return nil, &domain.ValidationError{Problems: check.Errors}
	}

	err = s.store.Transaction(ctx, func(entries []domain.WorkoutEntry) ([]domain.WorkoutEntry, error) {
		return append(entries, entry), nil
	})
	if err != nil {
		return nil, err
	}
	fields["id"] = entry.ID
	return &AddResult{Entry: entry, Warnings: check.Warnings}, nil
}

func (s *entryService) Delete(ctx context.Context, id string) (err error) {
	fields := map[string]any{"id": id, "removed": false}
	defer observe(ctx, s.observer, "delete-entry", time.Now(), fields, &err)
	if id == "" {
		return nil
	}

	removed := false
	err = s.store.Transaction(ctx, func(entries []domain.WorkoutEntry) ([]domain.WorkoutEntry, error) {
		kept, ok := removeByID(entries, id)
		if !ok {
			return nil, repository.ErrSkipWrite
		}
		removed = true
		return kept, nil
	})
	fields["removed"] = removed
	return err
}

func (s *entryService) ClearAll(ctx context.Context) (err error) {
	defer observe(ctx, s.observer, "clear-entries", time.Now(), nil, &err)
	return s.store.Clear(ctx)
}

func (s *entryService) Summarize(ctx context.Context, date string) (*domain.Summary, error) {
	entries, err := s.GetByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	summary := domain.Summarize(entries)
	return &summary, nil
}
