package app

import (
	"context"
	"strings"

	"github.com/alexanderramin/workoutlog/internal/domain"
	"github.com/alexanderramin/workoutlog/internal/service"
)

const (
	ClearConfirmPrompt = "Delete all entries? This cannot be undone."
	ClearedMessage     = "All entries deleted."
)

// Controller translates user intents into service calls and pushes the
// results to a View. It holds the active date filter and nothing else.
type Controller struct {
	entries    service.EntryService
	view       View
	filterDate string
}

func NewController(entries service.EntryService, view View) *Controller {
	return &Controller{entries: entries, view: view}
}

// FilterDate returns the active date filter, "" when showing everything.
func (c *Controller) FilterDate() string {
	return c.filterDate
}

// Refresh re-reads storage and renders the filtered list.
func (c *Controller) Refresh(ctx context.Context) error {
	entries, err := c.entries.GetByDate(ctx, c.filterDate)
	if err != nil {
		c.view.ShowError(err)
		return err
	}
	c.view.RenderEntries(entries, domain.Summarize(entries), c.filterDate)
	return nil
}

// OnSubmitForm saves a new entry. Rejected input is shown and returned as a
// *domain.ValidationError; nothing is rendered in that case.
func (c *Controller) OnSubmitForm(ctx context.Context, in domain.FormData) (*service.AddResult, error) {
	res, err := c.entries.Add(ctx, in)
	if err != nil {
		c.view.ShowError(err)
		return nil, err
	}
	if len(res.Warnings) > 0 {
		c.view.ShowWarnings(res.Warnings)
	}
	return res, c.Refresh(ctx)
}

// OnRequestFilter narrows the list to one date. An empty date clears the filter.
func (c *Controller) OnRequestFilter(ctx context.Context, date string) error {
	c.filterDate = strings.TrimSpace(date)
	return c.Refresh(ctx)
}

func (c *Controller) OnRequestDelete(ctx context.Context, id string) error {
	if err := c.entries.Delete(ctx, id); err != nil {
		c.view.ShowError(err)
		return err
	}
	return c.Refresh(ctx)
}

// OnRequestClearAll asks for confirmation, then removes every entry and
// drops the filter. It reports whether the clear happened.
func (c *Controller) OnRequestClearAll(ctx context.Context) (bool, error) {
	if !c.view.Confirm(ClearConfirmPrompt) {
		return false, nil
	}
	if err := c.entries.ClearAll(ctx); err != nil {
		c.view.ShowError(err)
		return false, err
	}
	c.filterDate = ""
	if err := c.Refresh(ctx); err != nil {
		return true, err
	}
	c.view.ShowInfo(ClearedMessage)
	return true, nil
}
