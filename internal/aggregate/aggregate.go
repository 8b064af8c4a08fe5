// Package aggregate derives vendor- and coordinator-facing summaries from a
// snapshot of order lines. Everything here is a pure function: no store
// access, deterministic for a given snapshot.
package aggregate

import (
	"fmt"
	"strings"

	"github.com/lunchroom/lunchbox/internal/models"
)

// groupKey identifies an item group. Matching is exact-string on both
// fields: "Spicy" and "spicy " are different groups on purpose, the text is
// opaque and never normalized.
type groupKey struct {
	itemName      string
	customization string
}

// SummarizeByItem groups the lines of one category by (itemName,
// customization), summing quantities. Groups appear in order of first
// appearance in the snapshot — the numbered shopping list depends on that,
// so the order is part of the contract, not an accident.
func SummarizeByItem(lines []models.OrderLine, category models.Category) []models.ItemGroup {
	groups := make([]models.ItemGroup, 0)
	index := make(map[groupKey]int)

	for _, line := range lines {
		if line.Category != category {
			continue
		}

		key := groupKey{line.ItemName, line.Customization}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, models.ItemGroup{
				ItemName:      line.ItemName,
				Customization: line.Customization,
			})
		}
		groups[i].TotalQuantity += line.Quantity
		groups[i].LineCount++
	}

	return groups
}

// SummarizeByPerson groups lines by person, preserving each person's line
// insertion order. Persons appear in order of their first line.
func SummarizeByPerson(lines []models.OrderLine) []models.PersonOrders {
	groups := make([]models.PersonOrders, 0)
	index := make(map[string]int)

	for _, line := range lines {
		i, ok := index[line.Person]
		if !ok {
			i = len(groups)
			index[line.Person] = i
			groups = append(groups, models.PersonOrders{Person: line.Person})
		}
		groups[i].Lines = append(groups[i].Lines, line)
	}

	return groups
}

// TotalAmount sums TotalPrice across the given lines, 0 for an empty
// snapshot.
func TotalAmount(lines []models.OrderLine) int64 {
	var total int64
	for _, line := range lines {
		total += line.TotalPrice
	}
	return total
}

// ShoppingList renders one category's item groups as a numbered, printable
// list for the person phoning the vendor, e.g.
//
//  1. Chicken Rice x2 (Spicy)
//  2. Milk Tea x1 (L/Normal ice/Half sugar)
func ShoppingList(lines []models.OrderLine, category models.Category) string {
	var b strings.Builder
	for i, group := range SummarizeByItem(lines, category) {
		fmt.Fprintf(&b, "%d. %s x%d", i+1, group.ItemName, group.TotalQuantity)
		if group.Customization != "" {
			fmt.Fprintf(&b, " (%s)", group.Customization)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
