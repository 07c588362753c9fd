// Package lock serializes work on a single entity across goroutines and,
// with a distributed backend, across processes.
package lock

import (
	"context"
	"errors"
	"fmt"
)

// ErrLockTimeout is returned when a key could not be acquired in time.
var ErrLockTimeout = errors.New("timed out waiting for lock")

// Locker hands out exclusive keyed locks.
//
// Acquire blocks until key is held, the wait limit passes or ctx is done. The
// returned context records key as held; Acquire with that context and the
// same key returns immediately with a no-op release.
type Locker interface {
	Acquire(ctx context.Context, key string) (context.Context, func(), error)
}

func ArticleKey(articleID uint) string {
	return fmt.Sprintf("article:%d", articleID)
}

func TicketKey(ticketID uint) string {
	return fmt.Sprintf("ticket:%d", ticketID)
}

type heldKeysCtxKey struct{}

// IsHeld reports whether ctx was returned by an Acquire for key.
func IsHeld(ctx context.Context, key string) bool {
	held, _ := ctx.Value(heldKeysCtxKey{}).(map[string]struct{})
	_, ok := held[key]
	return ok
}

// MarkHeld returns a child context recording key as held.
func MarkHeld(ctx context.Context, key string) context.Context {
	prev, _ := ctx.Value(heldKeysCtxKey{}).(map[string]struct{})
	held := make(map[string]struct{}, len(prev)+1)
	for k := range prev {
		held[k] = struct{}{}
	}
	held[key] = struct{}{}
	return context.WithValue(ctx, heldKeysCtxKey{}, held)
}

func noop() {}

// AcquireAll takes keys in order and releases them in reverse.
func AcquireAll(ctx context.Context, l Locker, keys ...string) (context.Context, func(), error) {
	releases := make([]func(), 0, len(keys))
	releaseAll := func() {
		for i := len(releases) - 1; i >= 0; i-- {
			releases[i]()
		}
	}

	for _, key := range keys {
		lockedCtx, release, err := l.Acquire(ctx, key)
		if err != nil {
			releaseAll()
			return ctx, noop, err
		}
		ctx = lockedCtx
		releases = append(releases, release)
	}
	return ctx, releaseAll, nil
}
