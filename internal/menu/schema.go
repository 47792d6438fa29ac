package menu

import "fmt"

// Attribute is one customizable property of the items in a category.
// AllowedValues is never empty and its first entry is the default.
type Attribute struct {
	ID            string   `json:"id"`
	DisplayName   string   `json:"name"`
	AllowedValues []string `json:"options"`
}

// Default returns the value a new line starts with.
func (a Attribute) Default() string {
	return a.AllowedValues[0]
}

// Allows reports whether v is one of the attribute's values.
func (a Attribute) Allows(v string) bool {
	for _, allowed := range a.AllowedValues {
		if allowed == v {
			return true
		}
	}
	return false
}

var (
	coffeeAttributes = []Attribute{
		{ID: "milk", DisplayName: "Milk", AllowedValues: []string{"Regular", "Skim", "Almond", "Oat", "Soy"}},
		{ID: "sugar", DisplayName: "Sugar", AllowedValues: []string{"None", "Regular", "Brown", "Stevia"}},
		{ID: "shots", DisplayName: "Extra Shots", AllowedValues: []string{"0", "1", "2"}},
		{ID: "syrup", DisplayName: "Syrup", AllowedValues: []string{"None", "Vanilla", "Caramel", "Hazelnut", "Chocolate"}},
	}
	teaAttributes = []Attribute{
		{ID: "milk", DisplayName: "Milk", AllowedValues: []string{"None", "Regular", "Skim", "Almond", "Oat", "Soy"}},
		{ID: "sugar", DisplayName: "Sugar", AllowedValues: []string{"None", "Regular", "Brown", "Honey"}},
	}
	pastryAttributes = []Attribute{
		{ID: "warmed", DisplayName: "Warmed", AllowedValues: []string{"Yes", "No"}},
	}
	sandwichAttributes = []Attribute{
		{ID: "toasted", DisplayName: "Toasted", AllowedValues: []string{"Yes", "No"}},
		{ID: "side", DisplayName: "Side", AllowedValues: []string{"None", "Chips", "Fruit", "Salad"}},
	}
)

// Attributes returns the customization schema for the category. The returned
// slice is shared and must not be modified.
func (c Category) Attributes() []Attribute {
	switch c {
	case Coffee:
		return coffeeAttributes
	case Tea:
		return teaAttributes
	case Pastries:
		return pastryAttributes
	case Sandwiches:
		return sandwichAttributes
	}
	panic(fmt.Sprintf("menu: no customization schema for %v", c))
}

// Attribute looks up a single attribute of the category's schema.
func (c Category) Attribute(id string) (Attribute, bool) {
	for _, a := range c.Attributes() {
		if a.ID == id {
			return a, true
		}
	}
	return Attribute{}, false
}

// DefaultCustomizations returns a fresh map holding the default value of every
// attribute in the category's schema.
func (c Category) DefaultCustomizations() map[string]string {
	attrs := c.Attributes()
	values := make(map[string]string, len(attrs))
	for _, a := range attrs {
		values[a.ID] = a.Default()
	}
	return values
}
