package repository

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrFailedToInsert  = errors.New("failed to insert record")
	ErrFailedToGet     = errors.New("failed to get record")
	ErrFailedToList    = errors.New("failed to list records")
	ErrFailedToUpdate  = errors.New("failed to update record")
	ErrFailedToMigrate = errors.New("failed to create schema")
	ErrSessionMissing  = errors.New("session row does not exist")
	ErrTimeout         = errors.New("store operation timed out")
)

// Classify returns sentinel, additionally marked with ErrTimeout when ctx
// expired before the backend answered.
func Classify(ctx context.Context, sentinel error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", sentinel, ErrTimeout)
	}
	return sentinel
}
