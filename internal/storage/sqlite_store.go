package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/workoutlog/internal/db"
)

// SQLiteStore implements TxStore on the kv_store table.
type SQLiteStore struct {
	db   db.DBTX
	uow  db.UnitOfWork
	opts options
}

// NewSQLiteStore creates a SQLiteStore on an opened database.
func NewSQLiteStore(database *sql.DB, opts ...Option) *SQLiteStore {
	return &SQLiteStore{
		db:   database,
		uow:  db.NewSQLiteUnitOfWork(database),
		opts: buildOptions(opts),
	}
}

func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading key %q: %w", key, err)
	}
	return []byte(value), true, nil
}

func (s *SQLiteStore) Put(ctx context.Context, key string, value []byte) error {
	if err := s.opts.checkSize(value); err != nil {
		return err
	}
	query := `INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	_, err := s.db.ExecContext(ctx, query, key, string(value), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("writing key %q: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv_store WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting key %q: %w", key, err)
	}
	return nil
}

// WithinTx runs fn against a store bound to one SQL transaction.
func (s *SQLiteStore) WithinTx(ctx context.Context, fn func(ctx context.Context, st Store) error) error {
	if s.uow == nil {
		// Already tx-scoped.
		return fn(ctx, s)
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &SQLiteStore{db: tx, opts: s.opts})
	})
}
