package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/lunchroom/lunchbox/internal/models"
)

// Store owns the durable order table and the configuration registry, both
// kept in a single local SQLite file. Every other component works on
// snapshots fetched from here and re-fetches after any mutation.
type Store struct {
	db   *sql.DB
	path string
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS orders (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		person        TEXT    NOT NULL,
		category      TEXT    NOT NULL,
		item_name     TEXT    NOT NULL,
		unit_price    INTEGER NOT NULL,
		quantity      INTEGER NOT NULL,
		total_price   INTEGER NOT NULL,
		customization TEXT    NOT NULL DEFAULT '',
		created_at    TEXT    NOT NULL,
		paid          INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS participants (
		id   INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS options (
		id       INTEGER PRIMARY KEY AUTOINCREMENT,
		category TEXT NOT NULL,
		value    TEXT NOT NULL
	)`,
}

// Open opens (creating if necessary) the SQLite file at path and ensures
// the schema exists.
func Open(path string) (*Store, error) {
	// busy_timeout stays 0: lock contention is handled by the bounded
	// retry wrapper, not by driver-level blocking.
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(0)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	for _, ddl := range schema {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// FileSize returns the size of the database file in bytes, 0 if the file
// does not exist yet.
func (s *Store) FileSize() int64 {
	info, err := os.Stat(s.path)
	if err != nil {
		return 0
	}
	return info.Size()
}

// Add persists a new order line. TotalPrice is computed here, once, and
// never recomputed; created_at is stamped in UTC and paid starts false.
// Returns the assigned id.
func (s *Store) Add(ctx context.Context, line models.NewOrderLine) (int64, error) {
	total := line.UnitPrice * int64(line.Quantity)
	createdAt := time.Now().UTC().Format(time.RFC3339)

	var id int64
	err := withRetry(ctx, func() error {
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO orders (person, category, item_name, unit_price, quantity, total_price, customization, created_at, paid)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0)`,
			line.Person, string(line.Category), line.ItemName,
			line.UnitPrice, line.Quantity, total, line.Customization, createdAt)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("add order: %w", err)
	}
	return id, nil
}

// Remove deletes the line with the given id. Deleting an absent id is a
// no-op: two sessions racing to delete the same line is normal, not an
// error.
func (s *Store) Remove(ctx context.Context, id int64) error {
	err := withRetry(ctx, func() error {
		_, err := s.db.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id)
		return err
	})
	if err != nil {
		return fmt.Errorf("remove order: %w", err)
	}
	return nil
}

// ListAll returns a snapshot of every order line in insertion order.
func (s *Store) ListAll(ctx context.Context) ([]models.OrderLine, error) {
	return s.list(ctx, `SELECT id, person, category, item_name, unit_price, quantity, total_price, customization, created_at, paid
		FROM orders ORDER BY id`)
}

// ListByPerson returns a snapshot of one person's lines in insertion order.
func (s *Store) ListByPerson(ctx context.Context, person string) ([]models.OrderLine, error) {
	return s.list(ctx, `SELECT id, person, category, item_name, unit_price, quantity, total_price, customization, created_at, paid
		FROM orders WHERE person = ? ORDER BY id`, person)
}

// SetPaid bulk-updates the paid flag for exactly the given ids in a single
// statement, so a partial bulk-mark can never be observed. Absent ids are
// silently ignored; an empty id set does nothing.
func (s *Store) SetPaid(ctx context.Context, ids []int64, paid bool) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, 0, len(ids)+1)
	args = append(args, boolToInt(paid))
	for _, id := range ids {
		args = append(args, id)
	}

	err := withRetry(ctx, func() error {
		_, err := s.db.ExecContext(ctx,
			fmt.Sprintf(`UPDATE orders SET paid = ? WHERE id IN (%s)`, placeholders), args...)
		return err
	})
	if err != nil {
		return fmt.Errorf("set paid: %w", err)
	}
	return nil
}

// ClearAll irreversibly empties the order table (daily reset) and vacuums
// the file back down to size.
func (s *Store) ClearAll(ctx context.Context) error {
	err := withRetry(ctx, func() error {
		_, err := s.db.ExecContext(ctx, `DELETE FROM orders`)
		return err
	})
	if err != nil {
		return fmt.Errorf("clear orders: %w", err)
	}

	err = withRetry(ctx, func() error {
		_, err := s.db.ExecContext(ctx, `VACUUM`)
		return err
	})
	if err != nil {
		return fmt.Errorf("vacuum: %w", err)
	}
	return nil
}

func (s *Store) list(ctx context.Context, query string, args ...any) ([]models.OrderLine, error) {
	lines := make([]models.OrderLine, 0)
	err := withRetry(ctx, func() error {
		rows, err := s.db.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		lines = lines[:0]
		for rows.Next() {
			var (
				line      models.OrderLine
				category  string
				createdAt string
				paid      int
			)
			if err := rows.Scan(&line.ID, &line.Person, &category, &line.ItemName,
				&line.UnitPrice, &line.Quantity, &line.TotalPrice,
				&line.Customization, &createdAt, &paid); err != nil {
				return err
			}
			line.Category = models.Category(category)
			line.Paid = paid != 0
			if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
				line.CreatedAt = t
			}
			lines = append(lines, line)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return lines, nil
}

// inTx runs fn inside a transaction, rolling back on error. Used by the
// registry's full-list replacements so a half-replaced list can never be
// read.
func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
