package cli

import (
	"context"
	"testing"

	"github.com/alexanderramin/workoutlog/internal/domain"
	"github.com/alexanderramin/workoutlog/internal/repository"
	"github.com/alexanderramin/workoutlog/internal/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type browseDriver = teatest.Driver[*browseModel]

func seededBrowser(t *testing.T) (*browseDriver, *App) {
	t.Helper()
	app, _ := testApp(t)
	ctx := context.Background()
	for _, in := range []domain.FormData{
		{Date: "2024-11-14", Type: "walking", Minutes: "20"},
		{Date: "2024-11-15", Type: "running", Minutes: "30", Value: "5"},
		{Date: "2024-11-15", Type: "strength", Minutes: "15", Value: "40"},
	} {
		_, err := app.Entries.Add(ctx, in)
		require.NoError(t, err)
	}

	d := teatest.New(t, newBrowseModel(ctx, app.Entries), teatest.WithSize[*browseModel](100, 30))
	d.DrainInit()
	require.False(t, d.Model.busy)
	return d, app
}

func TestBrowse_InitLoadsNewestFirst(t *testing.T) {
	d, _ := seededBrowser(t)
	m := d.Model

	require.Len(t, m.entries, 3)
	assert.Equal(t, "strength", m.entries[0].Type)
	assert.Equal(t, 3, m.summary.Entries)
	assert.Contains(t, d.View(), "running")
	assert.Contains(t, d.View(), "3 entries")
}

func TestBrowse_CursorStaysInBounds(t *testing.T) {
	d, _ := seededBrowser(t)

	d.Press("up")
	assert.Equal(t, 0, d.Model.cursor)
	for i := 0; i < 5; i++ {
		d.Press("j")
	}
	assert.Equal(t, 2, d.Model.cursor)
	d.Press("k")
	assert.Equal(t, 1, d.Model.cursor)
}

func TestBrowse_DeleteUnderCursor(t *testing.T) {
	d, app := seededBrowser(t)
	d.Press("down")
	target := d.Model.entries[1].ID

	d.Press("x")

	require.Len(t, d.Model.entries, 2)
	for _, e := range d.Model.entries {
		assert.NotEqual(t, target, e.ID)
	}
	stored, err := app.Entries.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestBrowse_DeleteLastRowMovesCursorUp(t *testing.T) {
	d, _ := seededBrowser(t)
	d.Press("j")
	d.Press("j")

	d.Press("x")
	assert.Equal(t, 1, d.Model.cursor)
}

func TestBrowse_FilterByDate(t *testing.T) {
	d, _ := seededBrowser(t)

	d.Press("/")
	require.Equal(t, modeFilter, d.Model.mode)
	d.Send(teatest.KeyMsg("2024-11-14"))
	assert.Equal(t, "2024-11-14", d.Model.filter.Value())
	d.Press("enter")

	m := d.Model
	assert.Equal(t, modeList, m.mode)
	assert.Equal(t, "2024-11-14", m.filterDate)
	require.Len(t, m.entries, 1)
	assert.Equal(t, "walking", m.entries[0].Type)
	assert.Contains(t, d.View(), "WORKOUT LOG · 2024-11-14")

	// esc drops the filter
	d.Press("esc")
	assert.Empty(t, d.Model.filterDate)
	assert.Len(t, d.Model.entries, 3)
}

func TestBrowse_FilterInputSwallowsQuitKey(t *testing.T) {
	d, _ := seededBrowser(t)
	d.Press("/")

	d.Press("q")
	assert.False(t, d.Quitting)
	assert.Equal(t, modeFilter, d.Model.mode)
	assert.Equal(t, "q", d.Model.filter.Value())

	d.Press("esc")
	assert.Equal(t, modeList, d.Model.mode)
	assert.Len(t, d.Model.entries, 3, "esc while typing keeps the current list")
}

func TestBrowse_ClearNeedsConfirmation(t *testing.T) {
	d, app := seededBrowser(t)

	d.Press("C")
	require.Equal(t, modeConfirmClear, d.Model.mode)
	assert.Contains(t, d.View(), "[y/N]")
	d.Press("n")
	assert.Equal(t, modeList, d.Model.mode)
	assert.Len(t, d.Model.entries, 3)
	assert.Equal(t, "Clear cancelled.", d.Model.info)

	d.Press("C")
	d.Press("y")
	assert.Empty(t, d.Model.entries)
	assert.Equal(t, "All entries deleted.", d.Model.info)
	assert.Contains(t, d.View(), "No entries.")

	stored, err := app.Entries.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestBrowse_RefreshPicksUpExternalWrites(t *testing.T) {
	d, app := seededBrowser(t)
	_, err := app.Entries.Add(context.Background(), domain.FormData{Date: "2024-11-16", Type: "yoga", Minutes: "60"})
	require.NoError(t, err)

	d.Press("r")
	assert.Len(t, d.Model.entries, 4)
}

func TestBrowse_ShowsStorageErrors(t *testing.T) {
	app, kv := testApp(t)
	require.NoError(t, kv.Put(context.Background(), repository.DefaultEntriesKey, []byte("[{")))

	d := teatest.New(t, newBrowseModel(context.Background(), app.Entries))
	d.DrainInit()

	assert.ErrorIs(t, d.Model.err, repository.ErrDataCorruption)
	assert.Contains(t, d.View(), "workoutlog clear")
}

func TestBrowse_Quit(t *testing.T) {
	d, _ := seededBrowser(t)

	d.Press("q")
	assert.True(t, d.Quitting)
}

func TestBrowse_CtrlCQuitsFromFilter(t *testing.T) {
	d, _ := seededBrowser(t)
	d.Press("/")

	d.Press("ctrl+c")
	assert.True(t, d.Quitting)
}

func TestBrowse_KeysIgnoredWhileBusy(t *testing.T) {
	d, _ := seededBrowser(t)
	d.Model.busy = true

	d.Press("x")
	assert.Len(t, d.Model.entries, 3)
}
