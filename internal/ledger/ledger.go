// Package ledger tracks payment collection over a snapshot of order lines:
// overall progress, who still owes what, and person-level bulk
// collect/undo.
package ledger

import (
	"context"

	"github.com/google/uuid"

	"github.com/lunchroom/lunchbox/internal/aggregate"
	"github.com/lunchroom/lunchbox/internal/models"
)

// OrderStore is the slice of the store the ledger mutates through. The
// ledger itself never fails; every error here comes from the store (e.g.
// system busy).
type OrderStore interface {
	ListByPerson(ctx context.Context, person string) ([]models.OrderLine, error)
	SetPaid(ctx context.Context, ids []int64, paid bool) error
}

// Progress reports collected vs. total amounts. Ratio is guarded against an
// empty snapshot: 0 when there is nothing to collect. Collected flips true
// exactly when every line is paid and the total is positive, which the UI
// turns into the "fully collected" banner.
func Progress(lines []models.OrderLine) models.Progress {
	var p models.Progress
	for _, line := range lines {
		p.TotalAmount += line.TotalPrice
		if line.Paid {
			p.PaidAmount += line.TotalPrice
		}
	}
	if p.TotalAmount > 0 {
		p.Ratio = float64(p.PaidAmount) / float64(p.TotalAmount)
		p.Collected = p.PaidAmount == p.TotalAmount
	}
	return p
}

// UnpaidByPerson groups outstanding lines by person, in order of each
// person's first unpaid line. Persons with nothing outstanding are absent
// entirely.
func UnpaidByPerson(lines []models.OrderLine) []models.UnpaidGroup {
	groups := make([]models.UnpaidGroup, 0)
	index := make(map[string]int)

	for _, line := range lines {
		if line.Paid {
			continue
		}
		i, ok := index[line.Person]
		if !ok {
			i = len(groups)
			index[line.Person] = i
			groups = append(groups, models.UnpaidGroup{Person: line.Person})
		}
		groups[i].Lines = append(groups[i].Lines, line)
		groups[i].TotalOwed += line.TotalPrice
	}

	return groups
}

// Partition splits a snapshot into unpaid and paid lines, preserving order.
// Backs the collect screen's two lists (outstanding cards, settled
// strikethrough list).
func Partition(lines []models.OrderLine) (unpaid, paid []models.OrderLine) {
	for _, line := range lines {
		if line.Paid {
			paid = append(paid, line)
		} else {
			unpaid = append(unpaid, line)
		}
	}
	return unpaid, paid
}

// MarkPersonPaid marks every line a person currently has as paid, in one
// bulk update, and returns a receipt for the collected amount.
//
// The id set comes from a fresh snapshot taken here; a line added between
// this snapshot and the update keeps its unpaid state and shows up on the
// next poll. That race is accepted for this human-paced workload.
func MarkPersonPaid(ctx context.Context, store OrderStore, person string) (models.Receipt, error) {
	return setPersonPaid(ctx, store, person, true)
}

// MarkPersonUnpaid is the inverse of MarkPersonPaid, undoing a collection
// recorded by mistake.
func MarkPersonUnpaid(ctx context.Context, store OrderStore, person string) (models.Receipt, error) {
	return setPersonPaid(ctx, store, person, false)
}

func setPersonPaid(ctx context.Context, store OrderStore, person string, paid bool) (models.Receipt, error) {
	lines, err := store.ListByPerson(ctx, person)
	if err != nil {
		return models.Receipt{}, err
	}

	receipt := models.Receipt{Person: person, Paid: paid}
	if len(lines) == 0 {
		return receipt, nil
	}

	ids := make([]int64, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ID)
	}
	if err := store.SetPaid(ctx, ids, paid); err != nil {
		return models.Receipt{}, err
	}

	receipt.ReceiptID = uuid.New().String()
	receipt.Amount = aggregate.TotalAmount(lines)
	receipt.LineCount = len(lines)
	return receipt, nil
}
