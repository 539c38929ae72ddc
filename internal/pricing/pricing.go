// Package pricing resolves subscription plan prices and a-la-carte order
// totals.
package pricing

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrPlanNotFound    = errors.New("invalid subscription configuration")
	ErrEmptySelection  = errors.New("no items selected")
	ErrUnknownItem     = errors.New("unknown pricing item")
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
)

// PlanPrice is the resolved price of one subscription plan.
type PlanPrice struct {
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

type planKey struct {
	subType   string
	frequency string
	tier      int
}

// PlanCatalog is the fixed subscription price grid, read-only after
// construction.
type PlanCatalog struct {
	grid map[planKey]PlanPrice
}

// DefaultPlanCatalog returns the current subscription catalog: two plan types
// by two frequencies by three tiers.
func DefaultPlanCatalog() *PlanCatalog {
	return &PlanCatalog{grid: map[planKey]PlanPrice{
		{"laundry", "weekly", 1}: {15.99, "1 bag per week"},
		{"laundry", "weekly", 2}: {28.99, "2 bags per week"},
		{"laundry", "weekly", 3}: {39.99, "3 bags per week"},

		{"laundry", "fortnightly", 1}: {14.99, "1 bag every 2 weeks"},
		{"laundry", "fortnightly", 2}: {26.99, "2 bags every 2 weeks"},
		{"laundry", "fortnightly", 3}: {36.99, "3 bags every 2 weeks"},

		{"shirts_trousers", "weekly", 1}: {12.99, "5 items per week"},
		{"shirts_trousers", "weekly", 2}: {22.99, "10 items per week"},
		{"shirts_trousers", "weekly", 3}: {31.99, "15 items per week"},

		{"shirts_trousers", "fortnightly", 1}: {11.99, "5 items every 2 weeks"},
		{"shirts_trousers", "fortnightly", 2}: {20.99, "10 items every 2 weeks"},
		{"shirts_trousers", "fortnightly", 3}: {29.99, "15 items every 2 weeks"},
	}}
}

// Lookup resolves a plan price by exact key. Any key outside the enumerated
// domain is ErrPlanNotFound.
func (c *PlanCatalog) Lookup(subType, frequency string, tier int) (PlanPrice, error) {
	price, ok := c.grid[planKey{subType, frequency, tier}]
	if !ok {
		return PlanPrice{}, ErrPlanNotFound
	}
	return price, nil
}

// Grid renders the catalog as nested type → frequency → tier maps for the
// public pricing endpoint.
func (c *PlanCatalog) Grid() map[string]map[string]map[int]PlanPrice {
	out := make(map[string]map[string]map[int]PlanPrice)
	for key, price := range c.grid {
		if out[key.subType] == nil {
			out[key.subType] = make(map[string]map[int]PlanPrice)
		}
		if out[key.subType][key.frequency] == nil {
			out[key.subType][key.frequency] = make(map[int]PlanPrice)
		}
		out[key.subType][key.frequency][key.tier] = price
	}
	return out
}

// CatalogItem is one priced a-la-carte item.
type CatalogItem struct {
	ID        string
	Name      string
	UnitPrice float64
}

// LineItem is one computed order line.
type LineItem struct {
	ItemID    string  `json:"item_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`
}

// Quote is a fully priced a-la-carte selection.
type Quote struct {
	Lines []LineItem `json:"line_items"`
	Total float64    `json:"total"`
}

// ComputeOrder prices a selection (item id → quantity) against the catalog.
// Line order follows catalog order, so repeated computation of the same
// selection yields identical output. A zero quantity unselects the item; a
// negative quantity or an unknown item id is an error, as is a selection with
// nothing left in it.
func ComputeOrder(catalog []CatalogItem, selections map[string]int) (Quote, error) {
	if len(selections) == 0 {
		return Quote{}, ErrEmptySelection
	}

	byID := make(map[string]CatalogItem, len(catalog))
	for _, item := range catalog {
		byID[item.ID] = item
	}

	for id, qty := range selections {
		if _, ok := byID[id]; !ok {
			return Quote{}, fmt.Errorf("%w: %s", ErrUnknownItem, id)
		}
		if qty < 0 {
			return Quote{}, ErrInvalidQuantity
		}
	}

	quote := Quote{Lines: []LineItem{}}
	for _, item := range catalog {
		qty, ok := selections[item.ID]
		if !ok || qty == 0 {
			continue
		}

		subtotal := Round2(item.UnitPrice * float64(qty))
		quote.Lines = append(quote.Lines, LineItem{
			ItemID:    item.ID,
			Name:      item.Name,
			Quantity:  qty,
			UnitPrice: item.UnitPrice,
			Subtotal:  subtotal,
		})
		quote.Total += subtotal
	}

	if len(quote.Lines) == 0 {
		return Quote{}, ErrEmptySelection
	}

	quote.Total = Round2(quote.Total)
	return quote, nil
}

// Round2 rounds a money value to 2 decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
