// Package common holds helpers shared by the use case packages.
package common

import (
	"context"
	"errors"
	"fmt"

	apperrors "redsys/internal/shared/errors"
	"redsys/internal/shared/lock"
)

// LockError reports a lock wait that ran out as a conflict, so the caller
// may retry, and passes cancellation through unchanged.
func LockError(err error, key string) error {
	switch {
	case errors.Is(err, lock.ErrLockTimeout):
		return apperrors.NewConflictError("resource is busy, please retry", key)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}
}
