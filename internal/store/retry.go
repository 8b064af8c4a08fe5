package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const (
	// maxAttempts bounds the retry loop on a locked database. Contention
	// here is a handful of browser sessions, so a short budget is enough.
	maxAttempts = 5
	backoff     = 100 * time.Millisecond
)

// ErrBusy is returned after the retry budget is exhausted. Callers surface
// it as "try again"; the operation was never partially applied.
var ErrBusy = errors.New("system busy")

// withRetry runs fn up to maxAttempts times, backing off between attempts,
// retrying only on transient lock contention. Any other error is returned
// as-is on the first occurrence. The exhausted final attempt returns
// immediately, without a trailing backoff.
func withRetry(ctx context.Context, fn func() error) error {
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !isLocked(err) {
			return err
		}
		if attempt == maxAttempts {
			return fmt.Errorf("%w: %v", ErrBusy, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
}

// isLocked reports whether err is SQLITE_BUSY or SQLITE_LOCKED, including
// their extended result codes.
func isLocked(err error) bool {
	var serr *sqlite.Error
	if !errors.As(err, &serr) {
		return false
	}
	switch serr.Code() & 0xff {
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return true
	}
	return false
}
