package common

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "redsys/internal/shared/errors"
	"redsys/internal/shared/lock"
)

func TestLockError(t *testing.T) {
	err := LockError(fmt.Errorf("%w: article:1", lock.ErrLockTimeout), "article:1")
	assert.True(t, apperrors.IsConflictError(err))

	err = LockError(context.Canceled, "article:1")
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, apperrors.IsAppError(err))

	redisDown := errors.New("dial tcp: connection refused")
	err = LockError(redisDown, "ticket:2")
	assert.ErrorIs(t, err, redisDown)
	assert.Contains(t, err.Error(), "ticket:2")
}
