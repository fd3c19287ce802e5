// Package ledger derives the financial view (revenue, cost, profit, commission,
// discount) from a snapshot of settled sales. It is pure and side-effect free:
// the dashboard, the sales history and the school reports all call into this
// package so the figures cannot drift apart.
package ledger

import (
	"sort"
	"time"

	"dressshop-backend/models"
)

// Report is the aggregate over every non-cancelled sale in the snapshot.
type Report struct {
	TotalRevenue        float64       `json:"total_revenue"`
	TotalProfit         float64       `json:"total_profit"`
	TotalCommission     float64       `json:"total_commission"`
	TotalDiscount       float64       `json:"total_discount"`
	CommissionThisMonth float64       `json:"commission_this_month"`
	ActivePartners      int           `json:"active_partners"`
	PerSchool           []SchoolTotal `json:"per_school"`
}

// SchoolTotal is a per-school commission rollup entry.
type SchoolTotal struct {
	SchoolID        string  `json:"school_id"`
	SchoolName      string  `json:"school_name"`
	TotalCommission float64 `json:"total_commission"`
}

// SaleBreakdown is the per-sale profit decomposition shown in the history and
// receipt detail views. It is computed with the exact item math Compute uses.
type SaleBreakdown struct {
	Revenue    float64 `json:"revenue"`
	Cost       float64 `json:"cost"`
	Commission float64 `json:"commission"`
	Discount   float64 `json:"discount"`
	Profit     float64 `json:"profit"`
}

// prorateFactor distributes the collected amount over the items. A zero-total
// sale carries no revenue, so the factor degrades to 0 instead of dividing.
func prorateFactor(sale *models.Sale) float64 {
	if sale.TotalAmount == 0 {
		return 0
	}
	return sale.AmountPaid / sale.TotalAmount
}

// itemCommission reads only the snapshot frozen at settlement. Editing or
// deleting a live Commission row must never reprice a settled sale, so the
// live table is not consulted here at all.
func itemCommission(sale *models.Sale, item *models.SaleItem) float64 {
	if !item.IsCommissioned || sale.SchoolID == nil {
		return 0
	}
	return item.CommissionAmount * item.Quantity
}

// Breakdown decomposes a single sale. Items whose product reference cannot be
// resolved are skipped from profit and commission; the sale-level revenue and
// discount stay intact since they depend only on amount_paid.
func Breakdown(sale *models.Sale) SaleBreakdown {
	b := SaleBreakdown{
		Revenue:  sale.AmountPaid,
		Discount: sale.TotalAmount - sale.AmountPaid,
	}
	factor := prorateFactor(sale)

	for i := range sale.Items {
		item := &sale.Items[i]
		if item.Product == nil {
			continue
		}
		itemRevenue := item.Quantity * item.UnitPrice * factor
		itemCost := item.Quantity * item.Product.CostPrice
		commission := itemCommission(sale, item)

		b.Cost += itemCost
		b.Commission += commission
		b.Profit += itemRevenue - itemCost - commission
	}
	return b
}

// Compute aggregates every non-cancelled sale. The caller's clock decides what
// "this month" means. Per-school totals come back sorted by commission
// descending, ties kept in first-seen order.
func Compute(sales []models.Sale, now time.Time) Report {
	report := Report{}

	order := []string{}
	bySchool := map[string]*SchoolTotal{}
	partners := map[string]struct{}{}

	for i := range sales {
		sale := &sales[i]
		if sale.Cancelled() {
			continue
		}

		report.TotalRevenue += sale.AmountPaid
		report.TotalDiscount += sale.TotalAmount - sale.AmountPaid

		b := Breakdown(sale)
		report.TotalProfit += b.Profit
		report.TotalCommission += b.Commission

		if b.Commission > 0 && sale.SchoolID != nil {
			partners[*sale.SchoolID] = struct{}{}

			if sale.CreatedAt.Year() == now.Year() && sale.CreatedAt.Month() == now.Month() {
				report.CommissionThisMonth += b.Commission
			}

			entry, ok := bySchool[*sale.SchoolID]
			if !ok {
				entry = &SchoolTotal{SchoolID: *sale.SchoolID}
				if sale.School != nil {
					entry.SchoolName = sale.School.Name
				}
				bySchool[*sale.SchoolID] = entry
				order = append(order, *sale.SchoolID)
			}
			entry.TotalCommission += b.Commission
		}
	}

	report.ActivePartners = len(partners)
	report.PerSchool = make([]SchoolTotal, 0, len(order))
	for _, id := range order {
		report.PerSchool = append(report.PerSchool, *bySchool[id])
	}
	sort.SliceStable(report.PerSchool, func(i, j int) bool {
		return report.PerSchool[i].TotalCommission > report.PerSchool[j].TotalCommission
	})

	return report
}

// TopSchools slices the leaderboard to at most n entries.
func TopSchools(perSchool []SchoolTotal, n int) []SchoolTotal {
	if n < 0 || n > len(perSchool) {
		n = len(perSchool)
	}
	return perSchool[:n]
}
