package ledger

import (
	"math"
	"testing"
	"time"

	"dressshop-backend/models"
)

func approx(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func strPtr(s string) *string { return &s }

func product(id string, cost float64) *models.Product {
	return &models.Product{Id: id, Name: id, CostPrice: cost}
}

func TestBreakdownProratesDiscountAcrossItems(t *testing.T) {
	sale := &models.Sale{
		TotalAmount: 1000,
		AmountPaid:  900,
		SchoolID:    strPtr("s1"),
		Items: []models.SaleItem{
			{
				ProductID: "p1", Product: product("p1", 60),
				Quantity: 10, UnitPrice: 100,
				IsCommissioned: true, CommissionAmount: 5,
			},
		},
	}

	b := Breakdown(sale)

	approx(t, "revenue", b.Revenue, 900)
	approx(t, "discount", b.Discount, 100)
	approx(t, "cost", b.Cost, 600)
	// 5 per unit * 10 units, unaffected by the discount
	approx(t, "commission", b.Commission, 50)
	// 10*100*0.9 - 600 - 50
	approx(t, "profit", b.Profit, 250)
}

func TestBreakdownPartialPayment(t *testing.T) {
	// cost 50, price 100, qty 2, paid 180 of 200
	base := models.Sale{
		TotalAmount: 200,
		AmountPaid:  180,
		Items: []models.SaleItem{
			{ProductID: "p1", Product: product("p1", 50), Quantity: 2, UnitPrice: 100},
		},
	}

	t.Run("walk-in", func(t *testing.T) {
		sale := base
		b := Breakdown(&sale)
		approx(t, "discount", b.Discount, 20)
		approx(t, "cost", b.Cost, 100)
		approx(t, "profit", b.Profit, 80)
	})

	t.Run("with school commission", func(t *testing.T) {
		sale := base
		sale.SchoolID = strPtr("s1")
		sale.Items = []models.SaleItem{
			{ProductID: "p1", Product: product("p1", 50), Quantity: 2, UnitPrice: 100, IsCommissioned: true, CommissionAmount: 15},
		}
		b := Breakdown(&sale)
		approx(t, "commission", b.Commission, 30)
		approx(t, "profit", b.Profit, 50)
	})
}

func TestBreakdownZeroTotalSale(t *testing.T) {
	sale := &models.Sale{
		TotalAmount: 0,
		AmountPaid:  0,
		Items: []models.SaleItem{
			{ProductID: "p1", Product: product("p1", 30), Quantity: 1, UnitPrice: 0},
		},
	}

	b := Breakdown(sale)

	// factor degrades to 0: no NaN, cost still counts
	approx(t, "revenue", b.Revenue, 0)
	approx(t, "cost", b.Cost, 30)
	approx(t, "profit", b.Profit, -30)
	if math.IsNaN(b.Profit) {
		t.Fatal("profit is NaN")
	}
}

func TestBreakdownSkipsUnresolvedProducts(t *testing.T) {
	sale := &models.Sale{
		TotalAmount: 200,
		AmountPaid:  200,
		SchoolID:    strPtr("s1"),
		Items: []models.SaleItem{
			{ProductID: "gone", Product: nil, Quantity: 2, UnitPrice: 50, IsCommissioned: true, CommissionAmount: 10},
			{ProductID: "p1", Product: product("p1", 40), Quantity: 1, UnitPrice: 100},
		},
	}

	b := Breakdown(sale)

	// sale-level figures stay intact, the orphaned item contributes nothing
	approx(t, "revenue", b.Revenue, 200)
	approx(t, "discount", b.Discount, 0)
	approx(t, "cost", b.Cost, 40)
	approx(t, "commission", b.Commission, 0)
	approx(t, "profit", b.Profit, 60)
}

func TestBreakdownSnapshotIsAuthoritative(t *testing.T) {
	// Settled under a zero-amount agreement: the frozen snapshot is 0 and must
	// stay 0 no matter what the live commission table says afterwards.
	sale := &models.Sale{
		TotalAmount: 100,
		AmountPaid:  100,
		SchoolID:    strPtr("s1"),
		Items: []models.SaleItem{
			{ProductID: "p1", Product: product("p1", 0), Quantity: 4, UnitPrice: 25, IsCommissioned: true, CommissionAmount: 0},
		},
	}

	b := Breakdown(sale)
	approx(t, "commission", b.Commission, 0)
	approx(t, "profit", b.Profit, 100)

	report := Compute([]models.Sale{*sale}, time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC))
	approx(t, "total commission", report.TotalCommission, 0)
	if report.ActivePartners != 0 {
		t.Errorf("active partners = %d, want 0 for zero-commission sales", report.ActivePartners)
	}
}

func TestBreakdownIgnoresCommissionWithoutSchool(t *testing.T) {
	sale := &models.Sale{
		TotalAmount: 100,
		AmountPaid:  100,
		Items: []models.SaleItem{
			{ProductID: "p1", Product: product("p1", 0), Quantity: 2, UnitPrice: 50, IsCommissioned: true, CommissionAmount: 5},
		},
	}
	b := Breakdown(sale)
	approx(t, "commission", b.Commission, 0)
}

func TestComputeExcludesCancelledSales(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	sales := []models.Sale{
		{
			TotalAmount: 100, AmountPaid: 100, CreatedAt: now,
			Items: []models.SaleItem{{ProductID: "p1", Product: product("p1", 40), Quantity: 1, UnitPrice: 100}},
		},
		{
			TotalAmount: 500, AmountPaid: 500, CreatedAt: now,
			Cancellation: &models.Cancellation{SaleID: "x", Reason: "wrong size"},
			Items:        []models.SaleItem{{ProductID: "p1", Product: product("p1", 40), Quantity: 5, UnitPrice: 100}},
		},
	}

	report := Compute(sales, now)

	approx(t, "total revenue", report.TotalRevenue, 100)
	approx(t, "total profit", report.TotalProfit, 60)
	approx(t, "total discount", report.TotalDiscount, 0)
}

func TestComputePerSchoolOrderingAndPartners(t *testing.T) {
	now := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	lastMonth := now.AddDate(0, -1, 0)

	alpha := &models.School{Id: "alpha", Name: "Alpha Public"}
	beta := &models.School{Id: "beta", Name: "Beta Convent"}
	gamma := &models.School{Id: "gamma", Name: "Gamma High"}

	item := func(per float64, qty float64) []models.SaleItem {
		return []models.SaleItem{{
			ProductID: "p1", Product: product("p1", 0),
			Quantity: qty, UnitPrice: 10,
			IsCommissioned: true, CommissionAmount: per,
		}}
	}

	sales := []models.Sale{
		// alpha first seen, 20 commission this month
		{TotalAmount: 100, AmountPaid: 100, SchoolID: &alpha.Id, School: alpha, CreatedAt: now, Items: item(2, 10)},
		// beta, 50 commission last month
		{TotalAmount: 100, AmountPaid: 100, SchoolID: &beta.Id, School: beta, CreatedAt: lastMonth, Items: item(5, 10)},
		// gamma ties alpha at 20, seen after alpha
		{TotalAmount: 100, AmountPaid: 100, SchoolID: &gamma.Id, School: gamma, CreatedAt: now, Items: item(2, 10)},
	}

	report := Compute(sales, now)

	approx(t, "total commission", report.TotalCommission, 90)
	approx(t, "commission this month", report.CommissionThisMonth, 20)
	if report.ActivePartners != 3 {
		t.Errorf("active partners = %d, want 3", report.ActivePartners)
	}

	want := []string{"beta", "alpha", "gamma"} // desc by commission, ties first-seen
	if len(report.PerSchool) != len(want) {
		t.Fatalf("per-school entries = %d, want %d", len(report.PerSchool), len(want))
	}
	for i, id := range want {
		if report.PerSchool[i].SchoolID != id {
			t.Errorf("per_school[%d] = %s, want %s", i, report.PerSchool[i].SchoolID, id)
		}
	}
	if report.PerSchool[0].SchoolName != "Beta Convent" {
		t.Errorf("school name not carried: %q", report.PerSchool[0].SchoolName)
	}

	top := TopSchools(report.PerSchool, 2)
	if len(top) != 2 || top[0].SchoolID != "beta" || top[1].SchoolID != "alpha" {
		t.Errorf("top 2 = %+v", top)
	}
	if got := TopSchools(report.PerSchool, 10); len(got) != 3 {
		t.Errorf("top beyond length = %d entries, want 3", len(got))
	}
}

func TestSchoolRollupGroupsByProductWithinRange(t *testing.T) {
	schoolID := "s1"
	jan := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

	shirt := product("shirt", 0)
	shirt.Name = "Shirt"
	belt := product("belt", 0)
	belt.Name = "Belt"

	sales := []models.Sale{
		{
			SchoolID: &schoolID, TotalAmount: 250, AmountPaid: 200, CreatedAt: jan,
			Items: []models.SaleItem{
				{ProductID: "shirt", Product: shirt, Quantity: 2, UnitPrice: 100, IsCommissioned: true, CommissionAmount: 10},
				{ProductID: "belt", Product: belt, Quantity: 1, UnitPrice: 50, IsCommissioned: true, CommissionAmount: 2},
			},
		},
		{
			SchoolID: &schoolID, TotalAmount: 100, AmountPaid: 100, CreatedAt: jan,
			Items: []models.SaleItem{
				{ProductID: "shirt", Product: shirt, Quantity: 1, UnitPrice: 100, IsCommissioned: true, CommissionAmount: 10},
			},
		},
		// outside the range
		{
			SchoolID: &schoolID, TotalAmount: 100, AmountPaid: 100, CreatedAt: feb,
			Items: []models.SaleItem{
				{ProductID: "shirt", Product: shirt, Quantity: 1, UnitPrice: 100, IsCommissioned: true, CommissionAmount: 10},
			},
		},
		// cancelled
		{
			SchoolID: &schoolID, TotalAmount: 100, AmountPaid: 100, CreatedAt: jan,
			Cancellation: &models.Cancellation{SaleID: "x", Reason: "void"},
			Items: []models.SaleItem{
				{ProductID: "shirt", Product: shirt, Quantity: 1, UnitPrice: 100, IsCommissioned: true, CommissionAmount: 10},
			},
		},
	}

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 31, 23, 59, 59, 0, time.UTC)
	rollup := SchoolRollup(sales, schoolID, start, end)

	if len(rollup) != 2 {
		t.Fatalf("rollup rows = %d, want 2", len(rollup))
	}

	// sorted by commission desc: shirt (30) then belt (2)
	shirtRow := rollup[0]
	if shirtRow.ProductID != "shirt" {
		t.Fatalf("first row = %s, want shirt", shirtRow.ProductID)
	}
	approx(t, "shirt quantity", shirtRow.TotalQuantity, 3)
	// gross is billed amount, not prorated by the discount
	approx(t, "shirt gross", shirtRow.TotalSalesGross, 300)
	approx(t, "shirt rate", shirtRow.CommissionRate, 10)
	approx(t, "shirt commission", shirtRow.TotalCommission, 30)
	if shirtRow.SalesCount != 2 {
		t.Errorf("shirt sales count = %d, want 2", shirtRow.SalesCount)
	}

	beltRow := rollup[1]
	approx(t, "belt commission", beltRow.TotalCommission, 2)
}

func TestSchoolRollupCountsDistinctSales(t *testing.T) {
	schoolID := "s1"
	jan := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	shirt := product("shirt", 0)

	// two lines of the same product within one sale count as one sale
	sales := []models.Sale{
		{
			SchoolID: &schoolID, TotalAmount: 300, AmountPaid: 300, CreatedAt: jan,
			Items: []models.SaleItem{
				{ProductID: "shirt", Product: shirt, Quantity: 2, UnitPrice: 100, IsCommissioned: true, CommissionAmount: 10},
				{ProductID: "shirt", Product: shirt, Quantity: 1, UnitPrice: 100, IsCommissioned: true, CommissionAmount: 10},
			},
		},
	}

	rollup := SchoolRollup(sales, schoolID, time.Time{}, jan.AddDate(0, 1, 0))
	if len(rollup) != 1 {
		t.Fatalf("rollup rows = %d, want 1", len(rollup))
	}
	if rollup[0].SalesCount != 1 {
		t.Errorf("sales count = %d, want 1 distinct sale", rollup[0].SalesCount)
	}
	approx(t, "quantity", rollup[0].TotalQuantity, 3)
	approx(t, "commission", rollup[0].TotalCommission, 30)
}

func TestSchoolRollupZeroStartIsOpenLowerBound(t *testing.T) {
	schoolID := "s1"
	old := time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC)
	shirt := product("shirt", 0)

	sales := []models.Sale{
		{
			SchoolID: &schoolID, TotalAmount: 100, AmountPaid: 100, CreatedAt: old,
			Items: []models.SaleItem{
				{ProductID: "shirt", Product: shirt, Quantity: 1, UnitPrice: 100, IsCommissioned: true, CommissionAmount: 5},
			},
		},
	}

	rollup := SchoolRollup(sales, schoolID, time.Time{}, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC))
	if len(rollup) != 1 {
		t.Fatalf("old sale excluded: rollup rows = %d, want 1", len(rollup))
	}
}
