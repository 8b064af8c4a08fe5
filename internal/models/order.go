package models

import "time"

// Category classifies an order line for aggregation and display.
// The two built-in categories mirror the ordering screen's columns;
// arbitrary values are accepted so new sections can be added without
// a schema change.
type Category string

const (
	CategoryFood  Category = "Food"
	CategoryDrink Category = "Drink"
)

// OrderLine is one item, with quantity and price, ordered by one person.
// TotalPrice is computed once at creation and never updated; edits are
// delete + re-add.
type OrderLine struct {
	ID            int64     `json:"id"`
	Person        string    `json:"person"`
	Category      Category  `json:"category"`
	ItemName      string    `json:"itemName"`
	UnitPrice     int64     `json:"unitPrice"`
	Quantity      int       `json:"quantity"`
	TotalPrice    int64     `json:"totalPrice"`
	Customization string    `json:"customization"`
	CreatedAt     time.Time `json:"createdAt"`
	Paid          bool      `json:"paid"`
}

// NewOrderLine carries the caller-supplied fields of an order about to be
// placed. TotalPrice, CreatedAt and Paid are assigned by the store.
type NewOrderLine struct {
	Person        string   `json:"person"`
	Category      Category `json:"category"`
	ItemName      string   `json:"itemName"`
	UnitPrice     int64    `json:"unitPrice"`
	Quantity      int      `json:"quantity"`
	Customization string   `json:"customization"`
}
