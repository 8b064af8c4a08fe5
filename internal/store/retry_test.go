package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lunchroom/lunchbox/internal/models"
)

func TestWriteAgainstLockedDatabaseSurfacesBusy(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// A second session holding the write lock on the same file, the way a
	// concurrent browser session mid-write would.
	blocker, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)", s.path))
	if err != nil {
		t.Fatalf("open blocker: %v", err)
	}
	t.Cleanup(func() { blocker.Close() })

	conn, err := blocker.Conn(ctx)
	if err != nil {
		t.Fatalf("blocker conn: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if _, err := conn.ExecContext(ctx, `BEGIN IMMEDIATE`); err != nil {
		t.Fatalf("acquire write lock: %v", err)
	}

	start := time.Now()
	_, err = s.Add(ctx, newLine("Alice", models.CategoryFood, "Rice", 80, 1, ""))
	if !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy after exhausting retries, got %v", err)
	}
	// Four backoffs between five attempts, none after the last.
	if elapsed := time.Since(start); elapsed < 3*backoff {
		t.Errorf("expected backoff between attempts, gave up after %v", elapsed)
	}

	// Contention was transient: once the lock drops, the same write lands.
	if _, err := conn.ExecContext(ctx, `ROLLBACK`); err != nil {
		t.Fatalf("release write lock: %v", err)
	}
	if _, err := s.Add(ctx, newLine("Alice", models.CategoryFood, "Rice", 80, 1, "")); err != nil {
		t.Fatalf("add after lock released: %v", err)
	}

	lines, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(lines) != 1 {
		t.Errorf("expected exactly the post-release write, got %d lines", len(lines))
	}
}

func TestWithRetryPassesThroughNonLockErrors(t *testing.T) {
	boom := errors.New("constraint failed")
	calls := 0

	err := withRetry(context.Background(), func() error {
		calls++
		return boom
	})

	if !errors.Is(err, boom) {
		t.Fatalf("expected the original error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("non-transient errors must not be retried, got %d calls", calls)
	}
}

func TestWithRetrySuccess(t *testing.T) {
	calls := 0
	err := withRetry(context.Background(), func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected a single call, got %d", calls)
	}
}

func TestIsLockedIgnoresPlainErrors(t *testing.T) {
	if isLocked(errors.New("database is locked")) {
		t.Error("a plain error must not be treated as lock contention")
	}
	if isLocked(nil) {
		t.Error("nil is not a lock error")
	}
}
