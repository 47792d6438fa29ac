// Package menu holds the café menu: the closed set of categories, the items
// sold in each, and the per-category customization schema.
package menu

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrItemNotFound is returned when an item ID is not part of a category.
var ErrItemNotFound = errors.New("menu item not found")

// Item is an immutable catalog entry.
type Item struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"price"`
	Category  Category        `json:"category"`
}

// Catalog maps each category to its items. It is read-only after construction.
type Catalog struct {
	items map[Category][]Item
}

// NewCatalog builds a catalog from items grouped by category. Item IDs must be
// unique across the whole catalog and prices non-negative.
func NewCatalog(items map[Category][]Item) (*Catalog, error) {
	seen := make(map[int]bool)
	copied := make(map[Category][]Item, len(items))
	for c, list := range items {
		if !c.Valid() {
			return nil, fmt.Errorf("%w: %d", ErrUnknownCategory, int(c))
		}
		out := make([]Item, len(list))
		for i, it := range list {
			if seen[it.ID] {
				return nil, fmt.Errorf("duplicate menu item id %d", it.ID)
			}
			if it.UnitPrice.IsNegative() {
				return nil, fmt.Errorf("menu item %d: negative price", it.ID)
			}
			seen[it.ID] = true
			it.Category = c
			out[i] = it
		}
		copied[c] = out
	}
	return &Catalog{items: copied}, nil
}

// Items returns the items of a category in display order.
func (c *Catalog) Items(cat Category) []Item {
	list := c.items[cat]
	out := make([]Item, len(list))
	copy(out, list)
	return out
}

// Lookup finds an item by ID within a category.
func (c *Catalog) Lookup(cat Category, id int) (Item, error) {
	for _, it := range c.items[cat] {
		if it.ID == id {
			return it, nil
		}
	}
	return Item{}, fmt.Errorf("%w: %s/%d", ErrItemNotFound, cat, id)
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// DefaultCatalog returns the café's standard menu.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(map[Category][]Item{
		Coffee: {
			{ID: 1, Name: "Espresso", UnitPrice: price("2.50")},
			{ID: 2, Name: "Americano", UnitPrice: price("3.00")},
			{ID: 3, Name: "Cappuccino", UnitPrice: price("3.50")},
			{ID: 4, Name: "Latte", UnitPrice: price("3.75")},
			{ID: 5, Name: "Mocha", UnitPrice: price("4.00")},
			{ID: 6, Name: "Macchiato", UnitPrice: price("3.25")},
		},
		Tea: {
			{ID: 7, Name: "Green Tea", UnitPrice: price("2.75")},
			{ID: 8, Name: "Black Tea", UnitPrice: price("2.75")},
			{ID: 9, Name: "Chai Tea Latte", UnitPrice: price("3.50")},
			{ID: 10, Name: "Herbal Tea", UnitPrice: price("2.50")},
		},
		Pastries: {
			{ID: 11, Name: "Croissant", UnitPrice: price("2.50")},
			{ID: 12, Name: "Blueberry Muffin", UnitPrice: price("2.75")},
			{ID: 13, Name: "Chocolate Chip Cookie", UnitPrice: price("1.50")},
			{ID: 14, Name: "Cinnamon Roll", UnitPrice: price("3.00")},
		},
		Sandwiches: {
			{ID: 15, Name: "Avocado Toast", UnitPrice: price("5.50")},
			{ID: 16, Name: "Chicken Panini", UnitPrice: price("6.50")},
			{ID: 17, Name: "Veggie Wrap", UnitPrice: price("5.75")},
			{ID: 18, Name: "BLT Sandwich", UnitPrice: price("6.00")},
		},
	})
	if err != nil {
		panic(err)
	}
	return c
}
