package service

import (
	"sort"

	"github.com/alexanderramin/workoutlog/internal/domain"
)

// sortNewestFirst orders entries by CreatedAt descending. Entries with equal
// timestamps keep their stored order.
func sortNewestFirst(entries []domain.WorkoutEntry) []domain.WorkoutEntry {
	sorted := make([]domain.WorkoutEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt > sorted[j].CreatedAt
	})
	return sorted
}

// filterByDate keeps entries whose Date equals date. An empty date keeps all.
func filterByDate(entries []domain.WorkoutEntry, date string) []domain.WorkoutEntry {
	if date == "" {
		return entries
	}
	filtered := make([]domain.WorkoutEntry, 0, len(entries))
	for _, e := range entries {
		if e.Date == date {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// removeByID returns entries without the one whose ID is id, and whether
// anything was removed.
func removeByID(entries []domain.WorkoutEntry, id string) ([]domain.WorkoutEntry, bool) {
	kept := make([]domain.WorkoutEntry, 0, len(entries))
	for _, e := range entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	return kept, len(kept) != len(entries)
}
