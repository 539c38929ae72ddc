package pricing

import (
	"errors"
	"reflect"
	"testing"
)

func TestLookupKnownPlans(t *testing.T) {
	plans := DefaultPlanCatalog()

	cases := []struct {
		subType   string
		frequency string
		tier      int
		price     float64
		desc      string
	}{
		{"laundry", "weekly", 1, 15.99, "1 bag per week"},
		{"laundry", "weekly", 3, 39.99, "3 bags per week"},
		{"laundry", "fortnightly", 2, 26.99, "2 bags every 2 weeks"},
		{"shirts_trousers", "weekly", 1, 12.99, "5 items per week"},
		{"shirts_trousers", "fortnightly", 3, 29.99, "15 items every 2 weeks"},
	}

	for _, tc := range cases {
		got, err := plans.Lookup(tc.subType, tc.frequency, tc.tier)
		if err != nil {
			t.Fatalf("Lookup(%s, %s, %d): %v", tc.subType, tc.frequency, tc.tier, err)
		}
		if got.Price != tc.price || got.Description != tc.desc {
			t.Errorf("Lookup(%s, %s, %d) = %+v, want {%v %q}",
				tc.subType, tc.frequency, tc.tier, got, tc.price, tc.desc)
		}

		// Lookups are deterministic.
		again, _ := plans.Lookup(tc.subType, tc.frequency, tc.tier)
		if again != got {
			t.Errorf("repeated lookup differed: %+v vs %+v", got, again)
		}
	}
}

func TestLookupOutsideDomain(t *testing.T) {
	plans := DefaultPlanCatalog()

	cases := []struct {
		subType   string
		frequency string
		tier      int
	}{
		{"laundry", "weekly", 0},
		{"laundry", "weekly", 4},
		{"laundry", "monthly", 1},
		{"ironing", "weekly", 1},
		{"", "", 0},
	}

	for _, tc := range cases {
		if _, err := plans.Lookup(tc.subType, tc.frequency, tc.tier); !errors.Is(err, ErrPlanNotFound) {
			t.Errorf("Lookup(%q, %q, %d): expected ErrPlanNotFound, got %v",
				tc.subType, tc.frequency, tc.tier, err)
		}
	}
}

func TestGridCoversFullCatalog(t *testing.T) {
	grid := DefaultPlanCatalog().Grid()

	if len(grid) != 2 {
		t.Fatalf("expected 2 plan types, got %d", len(grid))
	}
	for subType, frequencies := range grid {
		if len(frequencies) != 2 {
			t.Errorf("%s: expected 2 frequencies, got %d", subType, len(frequencies))
		}
		for frequency, tiers := range frequencies {
			if len(tiers) != 3 {
				t.Errorf("%s/%s: expected 3 tiers, got %d", subType, frequency, len(tiers))
			}
		}
	}
}

func testCatalog() []CatalogItem {
	return []CatalogItem{
		{ID: "shirt", Name: "Shirt", UnitPrice: 3.50},
		{ID: "trousers", Name: "Trousers", UnitPrice: 5.00},
		{ID: "tie", Name: "Tie", UnitPrice: 4.00},
	}
}

func TestComputeOrderTotals(t *testing.T) {
	quote, err := ComputeOrder(testCatalog(), map[string]int{"shirt": 2, "trousers": 1})
	if err != nil {
		t.Fatalf("ComputeOrder: %v", err)
	}

	if len(quote.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(quote.Lines))
	}

	// Line order follows catalog order.
	if quote.Lines[0].ItemID != "shirt" || quote.Lines[1].ItemID != "trousers" {
		t.Errorf("unexpected line order: %+v", quote.Lines)
	}
	if quote.Lines[0].Subtotal != 7.00 {
		t.Errorf("shirt subtotal = %v, want 7.00", quote.Lines[0].Subtotal)
	}
	if quote.Lines[1].Subtotal != 5.00 {
		t.Errorf("trousers subtotal = %v, want 5.00", quote.Lines[1].Subtotal)
	}
	if quote.Total != 12.00 {
		t.Errorf("total = %v, want 12.00", quote.Total)
	}
}

func TestComputeOrderIdempotent(t *testing.T) {
	selections := map[string]int{"shirt": 3, "tie": 2}

	first, err := ComputeOrder(testCatalog(), selections)
	if err != nil {
		t.Fatalf("ComputeOrder: %v", err)
	}
	second, err := ComputeOrder(testCatalog(), selections)
	if err != nil {
		t.Fatalf("ComputeOrder: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated computation differed: %+v vs %+v", first, second)
	}
}

func TestComputeOrderZeroQuantityUnselects(t *testing.T) {
	withZero, err := ComputeOrder(testCatalog(), map[string]int{"shirt": 2, "tie": 0})
	if err != nil {
		t.Fatalf("ComputeOrder: %v", err)
	}
	without, err := ComputeOrder(testCatalog(), map[string]int{"shirt": 2})
	if err != nil {
		t.Fatalf("ComputeOrder: %v", err)
	}

	if !reflect.DeepEqual(withZero, without) {
		t.Errorf("zero quantity should equal omission: %+v vs %+v", withZero, without)
	}
}

func TestComputeOrderRejections(t *testing.T) {
	catalog := testCatalog()

	if _, err := ComputeOrder(catalog, nil); !errors.Is(err, ErrEmptySelection) {
		t.Errorf("nil selections: expected ErrEmptySelection, got %v", err)
	}
	if _, err := ComputeOrder(catalog, map[string]int{}); !errors.Is(err, ErrEmptySelection) {
		t.Errorf("empty selections: expected ErrEmptySelection, got %v", err)
	}
	if _, err := ComputeOrder(catalog, map[string]int{"shirt": 0}); !errors.Is(err, ErrEmptySelection) {
		t.Errorf("all-zero selections: expected ErrEmptySelection, got %v", err)
	}
	if _, err := ComputeOrder(catalog, map[string]int{"jacket": 1}); !errors.Is(err, ErrUnknownItem) {
		t.Errorf("unknown item: expected ErrUnknownItem, got %v", err)
	}
	if _, err := ComputeOrder(catalog, map[string]int{"shirt": -1}); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("negative quantity: expected ErrInvalidQuantity, got %v", err)
	}
}

func TestComputeOrderRounding(t *testing.T) {
	catalog := []CatalogItem{{ID: "wash", Name: "Wash", UnitPrice: 3.33}}

	quote, err := ComputeOrder(catalog, map[string]int{"wash": 3})
	if err != nil {
		t.Fatalf("ComputeOrder: %v", err)
	}
	if quote.Total != 9.99 {
		t.Errorf("total = %v, want 9.99", quote.Total)
	}
}

func TestRound2(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0.1 + 0.2, 0.3},
		{3.33 * 3, 9.99},
		{0, 0},
		{7.0000000001, 7.0},
		{12.344, 12.34},
	}

	for _, tc := range cases {
		if got := Round2(tc.in); got != tc.want {
			t.Errorf("Round2(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
