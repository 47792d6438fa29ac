// Package inventory lists café stock and flags items running low.
package inventory

import (
	"strings"
	"time"

	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/enum"
)

// Item is a stocked ingredient or supply.
type Item struct {
	ID          int
	Name        string
	Category    string
	Quantity    int
	Unit        string
	Threshold   int
	LastUpdated time.Time
}

// Status derives the stock status: empty is out of stock, below the
// threshold is low.
func (it Item) Status() string {
	switch {
	case it.Quantity <= 0:
		return enum.StockStatusOut
	case it.Quantity < it.Threshold:
		return enum.StockStatusLow
	}
	return enum.StockStatusIn
}

// Summary counts items by stock status.
type Summary struct {
	Total      int `json:"total_items"`
	LowStock   int `json:"low_stock"`
	OutOfStock int `json:"out_of_stock"`
}

// Inventory is a read-only stock list.
type Inventory struct {
	items []Item
}

func New(items []Item) *Inventory {
	cp := make([]Item, len(items))
	copy(cp, items)
	return &Inventory{items: cp}
}

// Search returns items whose name or category contains query, ignoring case.
// An empty query returns everything.
func (inv *Inventory) Search(query string) []Item {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Item, 0, len(inv.items))
	for _, it := range inv.items {
		if q == "" ||
			strings.Contains(strings.ToLower(it.Name), q) ||
			strings.Contains(strings.ToLower(it.Category), q) {
			out = append(out, it)
		}
	}
	return out
}

// Summary counts over the whole inventory, regardless of any search.
func (inv *Inventory) Summary() Summary {
	s := Summary{Total: len(inv.items)}
	for _, it := range inv.items {
		switch it.Status() {
		case enum.StockStatusLow:
			s.LowStock++
		case enum.StockStatusOut:
			s.OutOfStock++
		}
	}
	return s
}

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

// Default returns the café's stock list.
func Default() *Inventory {
	return New([]Item{
		{ID: 1, Name: "Coffee Beans - Arabica", Category: "Beans", Quantity: 24, Unit: "kg", Threshold: 10, LastUpdated: day("2023-10-15")},
		{ID: 2, Name: "Coffee Beans - Robusta", Category: "Beans", Quantity: 8, Unit: "kg", Threshold: 10, LastUpdated: day("2023-10-12")},
		{ID: 3, Name: "Milk - Whole", Category: "Dairy", Quantity: 35, Unit: "liters", Threshold: 15, LastUpdated: day("2023-10-17")},
		{ID: 4, Name: "Milk - Almond", Category: "Dairy Alternative", Quantity: 12, Unit: "liters", Threshold: 8, LastUpdated: day("2023-10-16")},
		{ID: 5, Name: "Sugar - White", Category: "Sweeteners", Quantity: 5, Unit: "kg", Threshold: 7, LastUpdated: day("2023-10-10")},
		{ID: 6, Name: "Chocolate Syrup", Category: "Syrups", Quantity: 0, Unit: "bottles", Threshold: 3, LastUpdated: day("2023-10-05")},
		{ID: 7, Name: "Vanilla Syrup", Category: "Syrups", Quantity: 8, Unit: "bottles", Threshold: 5, LastUpdated: day("2023-10-14")},
		{ID: 8, Name: "Caramel Syrup", Category: "Syrups", Quantity: 4, Unit: "bottles", Threshold: 5, LastUpdated: day("2023-10-11")},
	})
}
