package domain

import "github.com/google/uuid"

// NewEntryID returns a time-ordered UUIDv7: a millisecond timestamp followed
// by random bits, so ids created within the same millisecond still differ.
func NewEntryID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the random source does.
		return uuid.New().String()
	}
	return id.String()
}
