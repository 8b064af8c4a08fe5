package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Option vocabulary categories understood by the ordering screen. These are
// seed categories, not an enum: ReplaceOptions accepts any category name.
const (
	OptionSpicy = "spicy"
	OptionIce   = "ice"
	OptionSugar = "sugar"
	OptionTags  = "tags"
	OptionSize  = "size"
)

// seedOptions are installed on first run when the options table is empty.
type seedGroup struct {
	category string
	values   []string
}

var seedOptions = []seedGroup{
	{OptionSpicy, []string{"No spice", "Mild", "Medium", "Hot", "Extra hot"}},
	{OptionIce, []string{"Normal ice", "Less ice", "Light ice", "No ice", "Warm", "Hot"}},
	{OptionSugar, []string{"Normal sugar", "Less sugar", "Half sugar", "Light sugar", "No sugar"}},
	{OptionTags, []string{"No onion", "No garlic", "No cilantro", "Less rice", "Extra rice"}},
	{OptionSize, []string{"M", "L", "XL"}},
}

// Participants returns the participant names in display order.
func (s *Store) Participants(ctx context.Context) ([]string, error) {
	return s.listValues(ctx, `SELECT name FROM participants ORDER BY id`)
}

// Options returns one category's option values in display order. An unknown
// category yields an empty list, not an error.
func (s *Store) Options(ctx context.Context, category string) ([]string, error) {
	return s.listValues(ctx, `SELECT value FROM options WHERE category = ? ORDER BY id`, category)
}

// HasParticipant reports whether name is currently on the participant list.
func (s *Store) HasParticipant(ctx context.Context, name string) (bool, error) {
	var found bool
	err := withRetry(ctx, func() error {
		var n int
		err := s.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM participants WHERE name = ?`, name).Scan(&n)
		found = n > 0
		return err
	})
	if err != nil {
		return false, fmt.Errorf("lookup participant: %w", err)
	}
	return found, nil
}

// ReplaceParticipants swaps the whole participant list in one transaction,
// preserving the given order as display order. Blank entries are skipped.
// Existing order lines keep whatever person they were created with.
func (s *Store) ReplaceParticipants(ctx context.Context, names []string) error {
	err := withRetry(ctx, func() error {
		return s.inTx(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, `DELETE FROM participants`); err != nil {
				return err
			}
			for _, name := range names {
				if name = strings.TrimSpace(name); name == "" {
					continue
				}
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO participants (name) VALUES (?)`, name); err != nil {
					return err
				}
			}
			return nil
		})
	})
	if err != nil {
		return fmt.Errorf("replace participants: %w", err)
	}
	return nil
}

// ReplaceOptions swaps one category's option list in one transaction,
// preserving the given order as display order. Blank entries are skipped.
func (s *Store) ReplaceOptions(ctx context.Context, category string, values []string) error {
	err := withRetry(ctx, func() error {
		return s.inTx(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx,
				`DELETE FROM options WHERE category = ?`, category); err != nil {
				return err
			}
			for _, value := range values {
				if value = strings.TrimSpace(value); value == "" {
					continue
				}
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO options (category, value) VALUES (?, ?)`, category, value); err != nil {
					return err
				}
			}
			return nil
		})
	})
	if err != nil {
		return fmt.Errorf("replace options: %w", err)
	}
	return nil
}

// Seed installs the default option vocabularies and the configured
// participant list, each only when its table is still empty, so a restart
// never overwrites admin edits.
func (s *Store) Seed(ctx context.Context, participants []string) error {
	var optionCount, participantCount int
	err := withRetry(ctx, func() error {
		if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM options`).Scan(&optionCount); err != nil {
			return err
		}
		return s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM participants`).Scan(&participantCount)
	})
	if err != nil {
		return fmt.Errorf("seed registry: %w", err)
	}

	if optionCount == 0 {
		for _, group := range seedOptions {
			if err := s.ReplaceOptions(ctx, group.category, group.values); err != nil {
				return err
			}
		}
	}
	if participantCount == 0 && len(participants) > 0 {
		if err := s.ReplaceParticipants(ctx, participants); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) listValues(ctx context.Context, query string, args ...any) ([]string, error) {
	values := make([]string, 0)
	err := withRetry(ctx, func() error {
		rows, err := s.db.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		values = values[:0]
		for rows.Next() {
			var v string
			if err := rows.Scan(&v); err != nil {
				return err
			}
			values = append(values, v)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("list registry values: %w", err)
	}
	return values, nil
}
