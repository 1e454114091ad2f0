package repository

import "errors"

var (
	// ErrDataCorruption wraps failures to decode the persisted collection.
	ErrDataCorruption = errors.New("stored entries are corrupted")

	// ErrWriteFailed wraps failures to persist or clear the collection.
	ErrWriteFailed = errors.New("saving entries failed")

	// ErrSkipWrite lets a Transaction callback finish without writing.
	ErrSkipWrite = errors.New("skip write")
)
