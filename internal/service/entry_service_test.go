package service

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/workoutlog/internal/domain"
	"github.com/alexanderramin/workoutlog/internal/repository"
	"github.com/alexanderramin/workoutlog/internal/storage"
	"github.com/alexanderramin/workoutlog/internal/testutil"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStart = time.Date(2024, 11, 15, 7, 0, 0, 0, time.UTC)

// setupService wires an EntryService over a SQLite-backed gateway with a
// clock that advances one second per entry.
func setupService(t *testing.T) (EntryService, *repository.KVEntryStore, *storage.SQLiteStore) {
	t.Helper()
	kv := testutil.NewTestKV(t)
	repo := repository.NewKVEntryStore(kv, "")
	factory := domain.Factory{Now: testutil.FixedClock(testStart, time.Second)}
	return NewEntryService(repo, factory), repo, kv
}

// recordingStore is an EntryStore double that counts calls and can fail reads.
type recordingStore struct {
	entries      []domain.WorkoutEntry
	readErr      error
	writes       int
	clears       int
	transactions int
}

func (r *recordingStore) ReadAll(context.Context) ([]domain.WorkoutEntry, error) {
	if r.readErr != nil {
		return nil, r.readErr
	}
	return append([]domain.WorkoutEntry(nil), r.entries...), nil
}

func (r *recordingStore) WriteAll(_ context.Context, entries []domain.WorkoutEntry) error {
	r.writes++
	r.entries = entries
	return nil
}

func (r *recordingStore) Clear(context.Context) error {
	r.clears++
	r.entries = nil
	return nil
}

func (r *recordingStore) Transaction(ctx context.Context, fn func([]domain.WorkoutEntry) ([]domain.WorkoutEntry, error)) error {
	r.transactions++
	entries, err := r.ReadAll(ctx)
	if err != nil {
		return err
	}
	next, err := fn(entries)
	if errors.Is(err, repository.ErrSkipWrite) {
		return nil
	}
	if err != nil {
		return err
	}
	return r.WriteAll(ctx, next)
}

var _ repository.EntryStore = (*recordingStore)(nil)

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func TestAdd_ScenarioRunning(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	res, err := svc.Add(ctx, domain.FormData{
		Date: "2024-11-15", Type: "ランニング", Minutes: "30", Value: "5", Note: "test",
	})
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "ランニング", all[0].Type)
	assert.Equal(t, "2024-11-15", all[0].Date)
	assert.Equal(t, 30, all[0].Minutes)
	assert.Equal(t, 5, all[0].Value)
	assert.Equal(t, "test", all[0].Note)
	assert.Equal(t, res.Entry, all[0])
}

func TestAdd_ZeroDefaultsAndWarning(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	res, err := svc.Add(ctx, domain.FormData{Date: "2024-11-15", Type: "stretching", Minutes: "", Value: "abc"})
	require.NoError(t, err)
	assert.Zero(t, res.Entry.Minutes)
	assert.Zero(t, res.Entry.Value)
	assert.Len(t, res.Warnings, 1, "nothing measured is a warning, not an error")
}

func TestAdd_ValidationFailureWritesNothing(t *testing.T) {
	cases := map[string]domain.FormData{
		"empty type":  {Date: "2024-11-15", Minutes: "10"},
		"empty date":  {Type: "running", Minutes: "10"},
		"bad date":    {Date: "15/11/2024", Type: "running", Minutes: "10"},
		"both absent": {Minutes: "10"},
	}
	for name, form := range cases {
		t.Run(name, func(t *testing.T) {
			svc, _, kv := setupService(t)
			ctx := context.Background()
			_, err := svc.Add(ctx, testutil.NewTestForm())
			require.NoError(t, err)
			before, err := svc.GetAll(ctx)
			require.NoError(t, err)

			_, err = svc.Add(ctx, form)
			require.Error(t, err)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.NotEmpty(t, verr.Problems)

			after, err := svc.GetAll(ctx)
			require.NoError(t, err)
			assert.Equal(t, before, after)

			_, found, err := kv.Get(ctx, repository.DefaultEntriesKey)
			require.NoError(t, err)
			assert.True(t, found)
		})
	}
}

func TestAdd_ValidationErrorListsEveryProblem(t *testing.T) {
	svc, _, _ := setupService(t)

	_, err := svc.Add(context.Background(), domain.FormData{})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"type is required", "date is required"}, verr.Problems)
}

func TestAdd_ValidationFailureNeverTouchesStore(t *testing.T) {
	store := &recordingStore{}
	svc := NewEntryService(store, domain.Factory{})

	_, err := svc.Add(context.Background(), domain.FormData{Type: "running"})
	require.Error(t, err)
	assert.Zero(t, store.transactions)
	assert.Zero(t, store.writes)
}

func TestGetAll_SortedNewestFirst(t *testing.T) {
	store := &recordingStore{}
	for i := 0; i < 50; i++ {
		store.entries = append(store.entries, testutil.NewTestEntry(
			testutil.WithCreatedAt(int64(gofakeit.Number(1, 1_000_000))),
		))
	}
	svc := NewEntryService(store, domain.Factory{})

	all, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 50)
	for i := 0; i+1 < len(all); i++ {
		assert.GreaterOrEqual(t, all[i].CreatedAt, all[i+1].CreatedAt)
	}
}

func TestGetAll_TiesKeepStoredOrder(t *testing.T) {
	a := testutil.NewTestEntry(testutil.WithCreatedAt(100), testutil.WithNote("a"))
	b := testutil.NewTestEntry(testutil.WithCreatedAt(100), testutil.WithNote("b"))
	c := testutil.NewTestEntry(testutil.WithCreatedAt(200), testutil.WithNote("c"))
	svc := NewEntryService(&recordingStore{entries: []domain.WorkoutEntry{a, b, c}}, domain.Factory{})

	all, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, []string{all[0].Note, all[1].Note, all[2].Note})
}

func TestGetByDate_Scenario(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	first, err := svc.Add(ctx, domain.FormData{Date: "2024-11-15", Type: "running", Minutes: "30"})
	require.NoError(t, err)
	_, err = svc.Add(ctx, domain.FormData{Date: "2024-11-14", Type: "walking", Minutes: "20"})
	require.NoError(t, err)

	got, err := svc.GetByDate(ctx, "2024-11-15")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, first.Entry.ID, got[0].ID)
}

func TestGetByDate_EmptyDateIsGetAll(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()
	for _, d := range []string{"2024-11-13", "2024-11-14", "2024-11-15"} {
		_, err := svc.Add(ctx, domain.FormData{Date: d, Type: "running", Minutes: "10"})
		require.NoError(t, err)
	}

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	filtered, err := svc.GetByDate(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, all, filtered)
}

func TestGetByDate_FilterIsExactAndComplete(t *testing.T) {
	dates := []string{"2024-11-13", "2024-11-14", "2024-11-15", "2024-11"}
	store := &recordingStore{}
	for i := 0; i < 60; i++ {
		store.entries = append(store.entries, testutil.NewTestEntry(
			testutil.WithDate(gofakeit.RandomString(dates)),
		))
	}
	svc := NewEntryService(store, domain.Factory{})
	ctx := context.Background()

	for _, d := range dates {
		got, err := svc.GetByDate(ctx, d)
		require.NoError(t, err)

		want := 0
		for _, e := range store.entries {
			if e.Date == d {
				want++
			}
		}
		assert.Len(t, got, want, "date=%s", d)
		for _, e := range got {
			assert.Equal(t, d, e.Date, "no partial-date matches")
		}
	}
}

func TestDelete_RemovesEntry(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()
	keep, err := svc.Add(ctx, testutil.NewTestForm())
	require.NoError(t, err)
	drop, err := svc.Add(ctx, testutil.NewTestForm())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, drop.Entry.ID))

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, keep.Entry.ID, all[0].ID)
}

func TestDelete_UnknownOrEmptyIDIsNoop(t *testing.T) {
	store := &recordingStore{entries: []domain.WorkoutEntry{testutil.NewTestEntry()}}
	svc := NewEntryService(store, domain.Factory{})
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, ""))
	assert.Zero(t, store.transactions, "empty id should not reach storage")

	require.NoError(t, svc.Delete(ctx, "does-not-exist"))
	assert.Zero(t, store.writes, "unknown id should not write")
	assert.Len(t, store.entries, 1)
}

func TestClearAll_RemovesKey(t *testing.T) {
	svc, _, kv := setupService(t)
	ctx := context.Background()
	_, err := svc.Add(ctx, testutil.NewTestForm())
	require.NoError(t, err)

	require.NoError(t, svc.ClearAll(ctx))

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	_, found, err := kv.Get(ctx, repository.DefaultEntriesKey)
	require.NoError(t, err)
	assert.False(t, found, "storage key should be absent after clear")
}

func TestGetAll_CorruptDataSurfaces(t *testing.T) {
	svc, _, kv := setupService(t)
	ctx := context.Background()
	require.NoError(t, kv.Put(ctx, repository.DefaultEntriesKey, []byte("{broken")))

	_, err := svc.GetAll(ctx)
	assert.ErrorIs(t, err, repository.ErrDataCorruption)

	_, err = svc.Add(ctx, testutil.NewTestForm())
	assert.ErrorIs(t, err, repository.ErrDataCorruption, "add must not overwrite unreadable data")

	require.NoError(t, svc.ClearAll(ctx), "clear is the recovery path")
	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestAdd_WriteFailurePropagates(t *testing.T) {
	failing := &testutil.FailOnNthPutStore{
		TxStore: storage.NewMemoryStore(),
		FailOn:  2,
		Err:     storage.ErrQuotaExceeded,
	}
	svc := NewEntryService(repository.NewKVEntryStore(failing, ""), domain.Factory{})
	ctx := context.Background()

	first, err := svc.Add(ctx, testutil.NewTestForm())
	require.NoError(t, err)

	_, err = svc.Add(ctx, testutil.NewTestForm())
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrWriteFailed)
	assert.ErrorIs(t, err, storage.ErrQuotaExceeded)

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, first.Entry.ID, all[0].ID)
}

func TestSummarize_MatchesFilteredEntries(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()
	forms := []domain.FormData{
		{Date: "2024-11-15", Type: "running", Minutes: "30", Value: "5"},
		{Date: "2024-11-15", Type: "strength", Minutes: "20", Value: "40"},
		{Date: "2024-11-14", Type: "running", Minutes: "10", Value: "2"},
	}
	for _, f := range forms {
		_, err := svc.Add(ctx, f)
		require.NoError(t, err)
	}

	s, err := svc.Summarize(ctx, "2024-11-15")
	require.NoError(t, err)
	assert.Equal(t, 2, s.Entries)
	assert.Equal(t, 50, s.Minutes)
	assert.Equal(t, 45, s.Value)
	require.Len(t, s.ByType, 2)
	assert.Equal(t, "running", s.ByType[0].Type)

	all, err := svc.Summarize(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 3, all.Entries)
}

func TestObserver_ReceivesUseCaseEvents(t *testing.T) {
	obs := &recordingObserver{}
	store := &recordingStore{}
	svc := NewEntryService(store, domain.Factory{}, obs)
	ctx := context.Background()

	_, err := svc.Add(ctx, testutil.NewTestForm())
	require.NoError(t, err)
	_, err = svc.Add(ctx, domain.FormData{})
	require.Error(t, err)
	store.readErr = errors.New("unreadable")
	_, err = svc.GetAll(ctx)
	require.Error(t, err)

	require.Len(t, obs.events, 3)
	assert.Equal(t, "add-entry", obs.events[0].Name)
	assert.True(t, obs.events[0].Success)
	assert.NotEmpty(t, obs.events[0].Fields["id"])
	assert.False(t, obs.events[1].Success)
	assert.Equal(t, "list-entries", obs.events[2].Name)
	assert.EqualError(t, obs.events[2].Err, "unreadable")
}

func TestObserver_SeesEveryDelete(t *testing.T) {
	obs := &recordingObserver{}
	store := &recordingStore{entries: []domain.WorkoutEntry{testutil.NewTestEntry()}}
	svc := NewEntryService(store, domain.Factory{}, obs)
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, ""))
	require.NoError(t, svc.Delete(ctx, store.entries[0].ID))

	require.Len(t, obs.events, 2)
	for _, ev := range obs.events {
		assert.Equal(t, "delete-entry", ev.Name)
		assert.True(t, ev.Success)
	}
	assert.Equal(t, false, obs.events[0].Fields["removed"])
	assert.Equal(t, true, obs.events[1].Fields["removed"])
	assert.Equal(t, 1, store.transactions, "only the non-empty id reaches storage")
}

func TestLogUseCaseObserver_Levels(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf)
	ctx := context.Background()

	obs.ObserveUseCase(ctx, UseCaseEvent{Name: "add-entry", Success: true})
	obs.ObserveUseCase(ctx, UseCaseEvent{Name: "add-entry", Err: &domain.ValidationError{Problems: []string{"type is required"}}})
	obs.ObserveUseCase(ctx, UseCaseEvent{Name: "list-entries", Err: repository.ErrDataCorruption})

	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "use_case=add-entry")
}

func TestNewLogUseCaseObserver_NilWriterIsNoop(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
}
