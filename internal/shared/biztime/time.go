// Package biztime provides the clock used by the domain. All storage uses UTC;
// the business timezone is only applied when formatting for display.
package biztime

import (
	"fmt"
	"sync"
	"time"
)

// DefaultTimezone is the default business timezone.
const DefaultTimezone = "Europe/Prague"

var (
	bizLocation *time.Location
	locationMu  sync.RWMutex
	nowFunc     = time.Now
)

// Init loads the business timezone. If tz is empty, DefaultTimezone is used.
func Init(tz string) error {
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("failed to load business timezone %q: %w", tz, err)
	}
	locationMu.Lock()
	bizLocation = loc
	locationMu.Unlock()
	return nil
}

// Location returns the business timezone, falling back to UTC when Init was not called.
func Location() *time.Location {
	locationMu.RLock()
	defer locationMu.RUnlock()
	if bizLocation == nil {
		return time.UTC
	}
	return bizLocation
}

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return nowFunc().UTC()
}

// SetClock replaces the clock and returns a function restoring the previous one.
// Tests use it to make publication timestamps deterministic.
func SetClock(now func() time.Time) (restore func()) {
	prev := nowFunc
	nowFunc = now
	return func() { nowFunc = prev }
}

// FormatInBizTimezone formats a UTC time as RFC3339 in the business timezone.
func FormatInBizTimezone(t time.Time) string {
	return t.In(Location()).Format(time.RFC3339)
}
