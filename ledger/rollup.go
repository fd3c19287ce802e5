package ledger

import (
	"sort"
	"time"

	"dressshop-backend/models"
)

// ProductRollup is one row of a school's per-product commission statement.
type ProductRollup struct {
	ProductID       string  `json:"product_id"`
	ProductName     string  `json:"product_name"`
	TotalQuantity   float64 `json:"total_quantity"`
	TotalSalesGross float64 `json:"total_sales_amount"`
	CommissionRate  float64 `json:"commission_rate"`
	TotalCommission float64 `json:"total_commission"`
	SalesCount      int     `json:"sales_count"`
}

// SchoolRollup groups a school's commissioned, non-cancelled sale items by
// product within [start, end]. Gross amounts are quantity * unit_price (not
// prorated): the statement reflects what was billed, commissions are flat per
// unit either way. Rates come from the item snapshots, never the live table.
func SchoolRollup(sales []models.Sale, schoolID string, start, end time.Time) []ProductRollup {
	byProduct := map[string]*ProductRollup{}
	for i := range sales {
		sale := &sales[i]
		if sale.Cancelled() || sale.SchoolID == nil || *sale.SchoolID != schoolID {
			continue
		}
		if sale.CreatedAt.Before(start) || sale.CreatedAt.After(end) {
			continue
		}

		countedInSale := map[string]bool{}
		for j := range sale.Items {
			item := &sale.Items[j]
			if !item.IsCommissioned || item.Product == nil {
				continue
			}

			entry, ok := byProduct[item.ProductID]
			if !ok {
				entry = &ProductRollup{
					ProductID:      item.ProductID,
					ProductName:    item.Product.Name,
					CommissionRate: item.CommissionAmount,
				}
				byProduct[item.ProductID] = entry
			}

			entry.TotalQuantity += item.Quantity
			entry.TotalSalesGross += item.Quantity * item.UnitPrice
			entry.TotalCommission += itemCommission(sale, item)
			if !countedInSale[item.ProductID] {
				countedInSale[item.ProductID] = true
				entry.SalesCount++
			}
		}
	}

	rollup := make([]ProductRollup, 0, len(byProduct))
	for _, entry := range byProduct {
		rollup = append(rollup, *entry)
	}
	sort.SliceStable(rollup, func(i, j int) bool {
		return rollup[i].TotalCommission > rollup[j].TotalCommission
	})
	return rollup
}
