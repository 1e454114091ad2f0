package storage

import (
	"context"
	"sync"
)

// MemoryStore implements TxStore in process memory. It backs tests and
// ephemeral sessions.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
	opts options
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore(opts ...Option) *MemoryStore {
	return &MemoryStore{
		data: make(map[string][]byte),
		opts: buildOptions(opts),
	}
}

func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return memoryView{m}.Get(ctx, key)
}

func (m *MemoryStore) Put(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return memoryView{m}.Put(ctx, key, value)
}

func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return memoryView{m}.Delete(ctx, key)
}

// WithinTx holds the store lock for the duration of fn. Writes are staged and
// applied only when fn succeeds.
func (m *MemoryStore) WithinTx(ctx context.Context, fn func(ctx context.Context, s Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	staged := &stagedView{base: m, puts: make(map[string][]byte), deletes: make(map[string]bool)}
	if err := fn(ctx, staged); err != nil {
		return err
	}
	for key := range staged.deletes {
		delete(m.data, key)
	}
	for key, value := range staged.puts {
		m.data[key] = value
	}
	return nil
}

// memoryView accesses the map without locking; the caller holds m.mu.
type memoryView struct {
	m *MemoryStore
}

func (v memoryView) Get(_ context.Context, key string) ([]byte, bool, error) {
	value, ok := v.m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

func (v memoryView) Put(_ context.Context, key string, value []byte) error {
	if err := v.m.opts.checkSize(value); err != nil {
		return err
	}
	v.m.data[key] = append([]byte(nil), value...)
	return nil
}

func (v memoryView) Delete(_ context.Context, key string) error {
	delete(v.m.data, key)
	return nil
}

// stagedView buffers writes made inside WithinTx.
type stagedView struct {
	base    *MemoryStore
	puts    map[string][]byte
	deletes map[string]bool
}

func (s *stagedView) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if s.deletes[key] {
		return nil, false, nil
	}
	if value, ok := s.puts[key]; ok {
		return append([]byte(nil), value...), true, nil
	}
	return memoryView{s.base}.Get(ctx, key)
}

func (s *stagedView) Put(_ context.Context, key string, value []byte) error {
	if err := s.base.opts.checkSize(value); err != nil {
		return err
	}
	delete(s.deletes, key)
	s.puts[key] = append([]byte(nil), value...)
	return nil
}

func (s *stagedView) Delete(_ context.Context, key string) error {
	delete(s.puts, key)
	s.deletes[key] = true
	return nil
}

var (
	_ TxStore = (*MemoryStore)(nil)
	_ TxStore = (*SQLiteStore)(nil)
)
