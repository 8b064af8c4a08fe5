package service

import (
	"context"
	"errors"

	"github.com/lunchroom/lunchbox/internal/aggregate"
	"github.com/lunchroom/lunchbox/internal/ledger"
	"github.com/lunchroom/lunchbox/internal/models"
)

var (
	ErrEmptyItemName   = errors.New("item name must not be empty")
	ErrZeroPrice       = errors.New("unit price must be at least 1")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrEmptyCategory   = errors.New("category must not be empty")
	ErrUnknownPerson   = errors.New("person is not on the participant list")
)

// OrderStore is the durable order table the service writes through.
type OrderStore interface {
	Add(ctx context.Context, line models.NewOrderLine) (int64, error)
	Remove(ctx context.Context, id int64) error
	ListAll(ctx context.Context) ([]models.OrderLine, error)
	ListByPerson(ctx context.Context, person string) ([]models.OrderLine, error)
	SetPaid(ctx context.Context, ids []int64, paid bool) error
	ClearAll(ctx context.Context) error
}

// Registry is the participant list and option vocabularies consumed by the
// ordering screen and edited by the admin endpoints.
type Registry interface {
	Participants(ctx context.Context) ([]string, error)
	Options(ctx context.Context, category string) ([]string, error)
	HasParticipant(ctx context.Context, name string) (bool, error)
	ReplaceParticipants(ctx context.Context, names []string) error
	ReplaceOptions(ctx context.Context, category string, values []string) error
}

// OrderService validates commands and orchestrates the store, the
// aggregation engine and the payment ledger. It holds no notion of a
// "current user": every call names the person explicitly.
type OrderService struct {
	store    OrderStore
	registry Registry
}

// NewOrderService creates a new order service
func NewOrderService(store OrderStore, registry Registry) *OrderService {
	return &OrderService{
		store:    store,
		registry: registry,
	}
}

// AddOrder validates and persists a new order line, returning its id.
// A zero unit price is rejected by business rule (the original refused to
// queue items without a price), not by data integrity. The person must be
// on the participant list at creation time; later registry edits never
// cascade to existing lines.
func (s *OrderService) AddOrder(ctx context.Context, line models.NewOrderLine) (int64, error) {
	if line.ItemName == "" {
		return 0, ErrEmptyItemName
	}
	if line.UnitPrice < 1 {
		return 0, ErrZeroPrice
	}
	if line.Quantity < 1 {
		return 0, ErrInvalidQuantity
	}
	if line.Category == "" {
		return 0, ErrEmptyCategory
	}

	known, err := s.registry.HasParticipant(ctx, line.Person)
	if err != nil {
		return 0, err
	}
	if !known {
		return 0, ErrUnknownPerson
	}

	return s.store.Add(ctx, line)
}

// RemoveOrder deletes a line. A missing id is a no-op so two sessions
// deleting the same line never alarm anyone.
func (s *OrderService) RemoveOrder(ctx context.Context, id int64) error {
	return s.store.Remove(ctx, id)
}

// ListAll returns every queued line in insertion order.
func (s *OrderService) ListAll(ctx context.Context) ([]models.OrderLine, error) {
	return s.store.ListAll(ctx)
}

// ListMine returns one person's queued lines.
func (s *OrderService) ListMine(ctx context.Context, person string) ([]models.OrderLine, error) {
	return s.store.ListByPerson(ctx, person)
}

// SummarizeByItem returns one category's item groups from a fresh snapshot.
func (s *OrderService) SummarizeByItem(ctx context.Context, category models.Category) ([]models.ItemGroup, error) {
	lines, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate.SummarizeByItem(lines, category), nil
}

// SummarizeByPerson returns all lines grouped by person.
func (s *OrderService) SummarizeByPerson(ctx context.Context) ([]models.PersonOrders, error) {
	lines, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate.SummarizeByPerson(lines), nil
}

// ShoppingList renders one category's printable numbered list.
func (s *OrderService) ShoppingList(ctx context.Context, category models.Category) (string, error) {
	lines, err := s.store.ListAll(ctx)
	if err != nil {
		return "", err
	}
	return aggregate.ShoppingList(lines, category), nil
}

// Progress reports overall collection progress.
func (s *OrderService) Progress(ctx context.Context) (models.Progress, error) {
	lines, err := s.store.ListAll(ctx)
	if err != nil {
		return models.Progress{}, err
	}
	return ledger.Progress(lines), nil
}

// UnpaidByPerson returns who still owes, grouped and ordered by first
// unpaid line.
func (s *OrderService) UnpaidByPerson(ctx context.Context) ([]models.UnpaidGroup, error) {
	lines, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return ledger.UnpaidByPerson(lines), nil
}

// PaymentLines partitions one category's lines into outstanding and
// settled, for the collect screen's two lists.
func (s *OrderService) PaymentLines(ctx context.Context, category models.Category) (unpaid, paid []models.OrderLine, err error) {
	lines, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	var byCategory []models.OrderLine
	for _, line := range lines {
		if line.Category == category {
			byCategory = append(byCategory, line)
		}
	}
	unpaid, paid = ledger.Partition(byCategory)
	return unpaid, paid, nil
}

// MarkPersonPaid bulk-marks a person's current lines as paid.
func (s *OrderService) MarkPersonPaid(ctx context.Context, person string) (models.Receipt, error) {
	return ledger.MarkPersonPaid(ctx, s.store, person)
}

// MarkPersonUnpaid undoes a collection.
func (s *OrderService) MarkPersonUnpaid(ctx context.Context, person string) (models.Receipt, error) {
	return ledger.MarkPersonUnpaid(ctx, s.store, person)
}

// ResetAll irreversibly clears the whole order table (end-of-day reset).
func (s *OrderService) ResetAll(ctx context.Context) error {
	return s.store.ClearAll(ctx)
}

// Participants returns the participant list in display order.
func (s *OrderService) Participants(ctx context.Context) ([]string, error) {
	return s.registry.Participants(ctx)
}

// Options returns one option vocabulary in display order.
func (s *OrderService) Options(ctx context.Context, category string) ([]string, error) {
	return s.registry.Options(ctx, category)
}

// ReplaceParticipants swaps the participant list (admin operation).
func (s *OrderService) ReplaceParticipants(ctx context.Context, names []string) error {
	return s.registry.ReplaceParticipants(ctx, names)
}

// ReplaceOptions swaps one option vocabulary (admin operation).
func (s *OrderService) ReplaceOptions(ctx context.Context, category string, values []string) error {
	return s.registry.ReplaceOptions(ctx, category, values)
}
