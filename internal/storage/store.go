// Package storage provides the key-value stores that hold persisted blobs.
// Values are opaque bytes; callers own their encoding.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// DefaultMaxValueBytes mirrors the per-origin quota common to browser
// key-value storage.
const DefaultMaxValueBytes = 5 << 20

// ErrQuotaExceeded is returned by Put when a value is larger than the
// store's limit. The previous value under the key is left untouched.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// Store is a flat key-value store.
type Store interface {
	// Get returns the value under key. found is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	// Put replaces the value under key in a single write.
	Put(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// TxStore is a Store that can group a read-modify-write into one unit.
// Writes made through the Store passed to fn are discarded when fn fails.
type TxStore interface {
	Store
	WithinTx(ctx context.Context, fn func(ctx context.Context, s Store) error) error
}

type options struct {
	maxValueBytes int
}

// Option configures a store.
type Option func(*options)

// WithMaxValueBytes caps the size of a single value. n <= 0 disables the cap.
func WithMaxValueBytes(n int) Option {
	return func(o *options) {
		o.maxValueBytes = n
	}
}

func buildOptions(opts []Option) options {
	o := options{maxValueBytes: DefaultMaxValueBytes}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) checkSize(value []byte) error {
	if o.maxValueBytes > 0 && len(value) > o.maxValueBytes {
		return fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrQuotaExceeded, len(value), o.maxValueBytes)
	}
	return nil
}
