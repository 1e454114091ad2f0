package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexanderramin/workoutlog/internal/domain"
	"github.com/alexanderramin/workoutlog/internal/storage"
)

// KVEntryStore implements EntryStore as a JSON array under one key.
type KVEntryStore struct {
	store storage.TxStore
	key   string
}

// NewKVEntryStore creates a KVEntryStore. An empty key selects DefaultEntriesKey.
func NewKVEntryStore(store storage.TxStore, key string) *KVEntryStore {
	if key == "" {
		key = DefaultEntriesKey
	}
	return &KVEntryStore{store: store, key: key}
}

// Key returns the storage key holding the collection.
func (r *KVEntryStore) Key() string {
	return r.key
}

func (r *KVEntryStore) ReadAll(ctx context.Context) ([]domain.WorkoutEntry, error) {
	return r.readFrom(ctx, r.store)
}

func (r *KVEntryStore) WriteAll(ctx context.Context, entries []domain.WorkoutEntry) error {
	return r.writeTo(ctx, r.store, entries)
}

func (r *KVEntryStore) Clear(ctx context.Context) error {
	if err := r.store.Delete(ctx, r.key); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}

func (r *KVEntryStore) Transaction(ctx context.Context, fn func([]domain.WorkoutEntry) ([]domain.WorkoutEntry, error)) error {
	err := r.store.WithinTx(ctx, func(ctx context.Context, tx storage.Store) error {
		entries, err := r.readFrom(ctx, tx)
		if err != nil {
			return err
		}
		next, err := fn(entries)
		if err != nil {
			return err
		}
		return r.writeTo(ctx, tx, next)
	})
	if errors.Is(err, ErrSkipWrite) {
		return nil
	}
	return err
}

func (r *KVEntryStore) readFrom(ctx context.Context, s storage.Store) ([]domain.WorkoutEntry, error) {
	raw, found, err := s.Get(ctx, r.key)
	if err != nil {
		return nil, fmt.Errorf("reading entries: %w", err)
	}
	if !found {
		return []domain.WorkoutEntry{}, nil
	}
	return decodeEntries(raw)
}

func (r *KVEntryStore) writeTo(ctx context.Context, s storage.Store, entries []domain.WorkoutEntry) error {
	raw, err := encodeEntries(entries)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	if err := s.Put(ctx, r.key, raw); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}

// decodeEntries parses the persisted array. Records without id or createdAt
// are rejected; records without version get the current version.
func decodeEntries(raw []byte) ([]domain.WorkoutEntry, error) {
	var entries []domain.WorkoutEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataCorruption, err)
	}
	if entries == nil {
		entries = []domain.WorkoutEntry{}
	}
	for i := range entries {
		if entries[i].ID == "" || entries[i].CreatedAt == 0 {
			return nil, fmt.Errorf("%w: record %d is missing id or createdAt", ErrDataCorruption, i)
		}
		if entries[i].Version == 0 {
			entries[i].Version = domain.CurrentEntryVersion
		}
	}
	return entries, nil
}

func encodeEntries(entries []domain.WorkoutEntry) ([]byte, error) {
	if entries == nil {
		entries = []domain.WorkoutEntry{}
	}
	return json.Marshal(entries)
}

var _ EntryStore = (*KVEntryStore)(nil)
