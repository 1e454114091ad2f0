package testutil

import (
	"context"
	"sync/atomic"

	"github.com/alexanderramin/workoutlog/internal/storage"
)

// FailOnNthPutStore wraps a TxStore and injects Err on the Nth Put, counting
// from 1 across direct and in-transaction writes. Reads and deletes pass
// through. FailOn <= 0 fails every Put.
type FailOnNthPutStore struct {
	storage.TxStore
	FailOn int32
	Err    error

	count atomic.Int32
}

func (f *FailOnNthPutStore) Put(ctx context.Context, key string, value []byte) error {
	if f.shouldFail() {
		return f.Err
	}
	return f.TxStore.Put(ctx, key, value)
}

func (f *FailOnNthPutStore) WithinTx(ctx context.Context, fn func(ctx context.Context, s storage.Store) error) error {
	return f.TxStore.WithinTx(ctx, func(ctx context.Context, s storage.Store) error {
		return fn(ctx, &failingTxView{Store: s, parent: f})
	})
}

func (f *FailOnNthPutStore) shouldFail() bool {
	n := f.count.Add(1)
	return f.FailOn <= 0 || n == f.FailOn
}

type failingTxView struct {
	storage.Store
	parent *FailOnNthPutStore
}

func (v *failingTxView) Put(ctx context.Context, key string, value []byte) error {
	if v.parent.shouldFail() {
		return v.parent.Err
	}
	return v.Store.Put(ctx, key, value)
}
