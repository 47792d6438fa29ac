package menu

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCategory is returned when a category key does not name a menu category.
var ErrUnknownCategory = errors.New("unknown category")

// Category is the closed set of menu sections. Every variant must be handled
// by Attributes and by the catalog; menu_test.go walks Categories() to
// catch a variant that was added in one place but not the other.
type Category int

const (
	Coffee Category = iota + 1
	Tea
	Pastries
	Sandwiches
)

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{Coffee, Tea, Pastries, Sandwiches}
}

// String returns the lowercase key used in URLs and JSON.
func (c Category) String() string {
	switch c {
	case Coffee:
		return "coffee"
	case Tea:
		return "tea"
	case Pastries:
		return "pastries"
	case Sandwiches:
		return "sandwiches"
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// DisplayName returns the human readable section title.
func (c Category) DisplayName() string {
	switch c {
	case Coffee:
		return "Coffee"
	case Tea:
		return "Tea"
	case Pastries:
		return "Pastries"
	case Sandwiches:
		return "Sandwiches"
	}
	return c.String()
}

// Valid reports whether c is one of the declared variants.
func (c Category) Valid() bool {
	return c >= Coffee && c <= Sandwiches
}

// ParseCategory maps a key such as "coffee" to its Category.
func ParseCategory(s string) (Category, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, c := range Categories() {
		if c.String() == key {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// MarshalText implements encoding.TextMarshaler so categories serialize as keys.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCategory, int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(b []byte) error {
	parsed, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
