package catalog

import (
	"errors"
	"testing"

	"dressshop-backend/models"
)

func TestFixedSpec(t *testing.T) {
	products, err := FixedSpec{
		Name:          "  School Tie  ",
		CostPrice:     40,
		SellingPrice:  60,
		StockQuantity: 25,
	}.Products()
	if err != nil {
		t.Fatal(err)
	}
	if len(products) != 1 {
		t.Fatalf("products = %d, want 1", len(products))
	}

	p := products[0]
	if p.Name != "School Tie" {
		t.Errorf("name = %q", p.Name)
	}
	if p.PricingMode != models.PricingFixed {
		t.Errorf("pricing mode = %q", p.PricingMode)
	}
	if !p.Active {
		t.Error("new product should be active")
	}
}

func TestFixedSpecInvalid(t *testing.T) {
	tests := []struct {
		name string
		spec FixedSpec
	}{
		{"empty name", FixedSpec{Name: "   ", SellingPrice: 10}},
		{"negative cost", FixedSpec{Name: "Tie", CostPrice: -1}},
		{"negative price", FixedSpec{Name: "Tie", SellingPrice: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.spec.Products(); !errors.Is(err, ErrInvalidSpec) {
				t.Errorf("err = %v, want ErrInvalidSpec", err)
			}
		})
	}
}

func TestBulkSizeSpecGeneratesVariants(t *testing.T) {
	products, err := BulkSizeSpec{
		BaseName:         "Shirt",
		SizeStart:        20,
		SizeEnd:          26,
		SizeIncrement:    2,
		BaseCostPrice:    100,
		BaseSellingPrice: 120,
		PriceIncrement:   10,
		StockPerVariant:  15,
	}.Products()
	if err != nil {
		t.Fatal(err)
	}
	if len(products) != 4 {
		t.Fatalf("variants = %d, want 4", len(products))
	}

	wantNames := []string{"Shirt - Size 20", "Shirt - Size 22", "Shirt - Size 24", "Shirt - Size 26"}
	wantSelling := []float64{120, 130, 140, 150}
	wantCost := []float64{100, 110, 120, 130}
	for i, p := range products {
		if p.Name != wantNames[i] {
			t.Errorf("name[%d] = %q, want %q", i, p.Name, wantNames[i])
		}
		if p.SellingPrice != wantSelling[i] {
			t.Errorf("selling[%d] = %v, want %v", i, p.SellingPrice, wantSelling[i])
		}
		if p.CostPrice != wantCost[i] {
			t.Errorf("cost[%d] = %v, want %v", i, p.CostPrice, wantCost[i])
		}
		if p.StockQuantity != 15 {
			t.Errorf("stock[%d] = %v, want 15", i, p.StockQuantity)
		}
		if p.PricingMode != models.PricingFixed {
			t.Errorf("pricing mode[%d] = %q", i, p.PricingMode)
		}
		if p.Tags["base_product"] != "Shirt" {
			t.Errorf("base_product tag[%d] = %v", i, p.Tags["base_product"])
		}
	}
	if products[1].Tags["size"] != "22" {
		t.Errorf("size tag = %v, want 22", products[1].Tags["size"])
	}
}

func TestBulkSizeSpecVariantCount(t *testing.T) {
	tests := []struct {
		name           string
		start, end, by float64
		want           int
	}{
		{"single size", 30, 30, 2, 1},
		{"exact steps", 20, 26, 2, 4},
		{"partial last step truncates", 20, 25, 2, 3},
		{"fractional increment", 1, 2, 0.25, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, err := BulkSizeSpec{
				BaseName:         "Skirt",
				SizeStart:        tt.start,
				SizeEnd:          tt.end,
				SizeIncrement:    tt.by,
				BaseSellingPrice: 100,
			}.Products()
			if err != nil {
				t.Fatal(err)
			}
			if len(products) != tt.want {
				t.Errorf("variants = %d, want %d", len(products), tt.want)
			}
		})
	}
}

func TestBulkSizeSpecInvalid(t *testing.T) {
	tests := []struct {
		name string
		spec BulkSizeSpec
	}{
		{"empty base name", BulkSizeSpec{SizeStart: 20, SizeEnd: 26, SizeIncrement: 2}},
		{"zero increment", BulkSizeSpec{BaseName: "Shirt", SizeStart: 20, SizeEnd: 26}},
		{"negative increment", BulkSizeSpec{BaseName: "Shirt", SizeStart: 20, SizeEnd: 26, SizeIncrement: -2}},
		{"end before start", BulkSizeSpec{BaseName: "Shirt", SizeStart: 26, SizeEnd: 20, SizeIncrement: 2}},
		{"negative base price", BulkSizeSpec{BaseName: "Shirt", SizeStart: 20, SizeEnd: 26, SizeIncrement: 2, BaseSellingPrice: -5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.spec.Products(); !errors.Is(err, ErrInvalidSpec) {
				t.Errorf("err = %v, want ErrInvalidSpec", err)
			}
		})
	}
}

func TestLengthSpec(t *testing.T) {
	products, err := LengthSpec{
		Name:          "Suiting Fabric",
		RatePerUnit:   250,
		StockQuantity: 42.5,
		Unit:          "m",
		MinIncrement:  0.5,
	}.Products()
	if err != nil {
		t.Fatal(err)
	}
	p := products[0]
	if p.PricingMode != models.PricingLengthBased {
		t.Errorf("pricing mode = %q", p.PricingMode)
	}
	if p.Unit != "m" || p.MinIncrement != 0.5 {
		t.Errorf("unit = %q min = %v", p.Unit, p.MinIncrement)
	}
	// cost untracked by default
	if p.CostPrice != 0 {
		t.Errorf("cost = %v, want 0", p.CostPrice)
	}
	if p.StockQuantity != 42.5 {
		t.Errorf("stock = %v", p.StockQuantity)
	}
}

func TestLengthSpecInvalid(t *testing.T) {
	tests := []struct {
		name string
		spec LengthSpec
	}{
		{"missing unit", LengthSpec{Name: "Fabric", RatePerUnit: 250, MinIncrement: 0.5}},
		{"zero min increment", LengthSpec{Name: "Fabric", RatePerUnit: 250, Unit: "m"}},
		{"negative rate", LengthSpec{Name: "Fabric", RatePerUnit: -1, Unit: "m", MinIncrement: 0.5}},
		{"empty name", LengthSpec{Unit: "m", MinIncrement: 0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.spec.Products(); !errors.Is(err, ErrInvalidSpec) {
				t.Errorf("err = %v, want ErrInvalidSpec", err)
			}
		})
	}
}
