package domain

import "sort"

// TypeTotals aggregates the entries of one workout type.
type TypeTotals struct {
	Type    string
	Entries int
	Minutes int
	Value   int
}

// Summary is a derived view over a list of entries. It is never persisted.
type Summary struct {
	Entries int
	Minutes int
	Value   int
	ByType  []TypeTotals
}

// Summarize totals entries overall and per type. ByType is ordered by type label.
func Summarize(entries []WorkoutEntry) Summary {
	var s Summary
	index := make(map[string]int)
	for _, e := range entries {
		s.Entries++
		s.Minutes += e.Minutes
		s.Value += e.Value

		i, ok := index[e.Type]
		if !ok {
			i = len(s.ByType)
			index[e.Type] = i
			s.ByType = append(s.ByType, TypeTotals{Type: e.Type})
		}
		s.ByType[i].Entries++
		s.ByType[i].Minutes += e.Minutes
		s.ByType[i].Value += e.Value
	}

	sort.Slice(s.ByType, func(i, j int) bool {
		return s.ByType[i].Type < s.ByType[j].Type
	})
	return s
}
