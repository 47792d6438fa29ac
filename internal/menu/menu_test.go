package menu_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/menu"
	"github.com/shopspring/decimal"
)

func TestEveryCategoryHasSchemaAndItems(t *testing.T) {
	catalog := menu.DefaultCatalog()
	for _, c := range menu.Categories() {
		t.Run(c.String(), func(t *testing.T) {
			if !c.Valid() {
				t.Fatalf("category %v not valid", c)
			}
			if len(catalog.Items(c)) == 0 {
				t.Errorf("no items for %s", c)
			}
			for _, a := range c.Attributes() {
				if len(a.AllowedValues) == 0 {
					t.Errorf("attribute %s has no values", a.ID)
				}
			}
		})
	}
}

func TestAttributesPanicsForUnknownCategory(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for undeclared category")
		}
	}()
	menu.Category(99).Attributes()
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in      string
		want    menu.Category
		wantErr bool
	}{
		{"coffee", menu.Coffee, false},
		{" Tea ", menu.Tea, false},
		{"PASTRIES", menu.Pastries, false},
		{"sandwiches", menu.Sandwiches, false},
		{"soup", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := menu.ParseCategory(tt.in)
		if tt.wantErr {
			if !errors.Is(err, menu.ErrUnknownCategory) {
				t.Errorf("ParseCategory(%q): expected ErrUnknownCategory, got %v", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseCategory(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseCategory(%q): got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDefaultCustomizations(t *testing.T) {
	got := menu.Coffee.DefaultCustomizations()
	want := map[string]string{"milk": "Regular", "sugar": "None", "shots": "0", "syrup": "None"}
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s: got %q, want %q", k, got[k], v)
		}
	}

	// The returned map must be a fresh copy.
	got["milk"] = "Oat"
	if menu.Coffee.DefaultCustomizations()["milk"] != "Regular" {
		t.Error("DefaultCustomizations returned shared state")
	}
}

func TestAttributeAllows(t *testing.T) {
	a, ok := menu.Tea.Attribute("sugar")
	if !ok {
		t.Fatal("tea has no sugar attribute")
	}
	if !a.Allows("Honey") {
		t.Error("expected Honey to be allowed")
	}
	if a.Allows("Stevia") {
		t.Error("Stevia is a coffee option, not tea")
	}
	if _, ok := menu.Pastries.Attribute("milk"); ok {
		t.Error("pastries should not have milk")
	}
}

func TestCatalogLookup(t *testing.T) {
	catalog := menu.DefaultCatalog()

	it, err := catalog.Lookup(menu.Coffee, 1)
	if err != nil {
		t.Fatalf("lookup espresso: %v", err)
	}
	if it.Name != "Espresso" || !it.UnitPrice.Equal(decimal.RequireFromString("2.50")) {
		t.Errorf("unexpected item %+v", it)
	}
	if it.Category != menu.Coffee {
		t.Errorf("category: got %v, want coffee", it.Category)
	}

	// Croissant exists, but not under coffee.
	if _, err := catalog.Lookup(menu.Coffee, 11); !errors.Is(err, menu.ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}
}

func TestCatalogItemsReturnsCopy(t *testing.T) {
	catalog := menu.DefaultCatalog()
	items := catalog.Items(menu.Tea)
	items[0].Name = "Changed"
	if catalog.Items(menu.Tea)[0].Name != "Green Tea" {
		t.Error("Items exposed internal slice")
	}
}

func TestNewCatalogRejectsDuplicateIDs(t *testing.T) {
	_, err := menu.NewCatalog(map[menu.Category][]menu.Item{
		menu.Coffee: {{ID: 1, Name: "A", UnitPrice: decimal.NewFromInt(1)}},
		menu.Tea:    {{ID: 1, Name: "B", UnitPrice: decimal.NewFromInt(1)}},
	})
	if err == nil {
		t.Fatal("expected duplicate id error")
	}
}

func TestNewCatalogRejectsNegativePrice(t *testing.T) {
	_, err := menu.NewCatalog(map[menu.Category][]menu.Item{
		menu.Coffee: {{ID: 1, Name: "A", UnitPrice: decimal.NewFromInt(-1)}},
	})
	if err == nil {
		t.Fatal("expected negative price error")
	}
}

func TestCategoryJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		C menu.Category `json:"c"`
	}{menu.Sandwiches})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"c":"sandwiches"}` {
		t.Errorf("got %s", b)
	}

	var out struct {
		C menu.Category `json:"c"`
	}
	if err := json.Unmarshal([]byte(`{"c":"tea"}`), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.C != menu.Tea {
		t.Errorf("got %v, want tea", out.C)
	}
}
