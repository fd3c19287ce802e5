// Package settlement owns the write paths of the ledger: committing a cart
// into a Sale with frozen price/commission snapshots, and cancelling a sale
// with exact stock restoration. Both run as single transactions; the data
// store is the sole arbiter of consistency.
package settlement

import (
	"errors"
	"strings"

	"dressshop-backend/models"
	"dressshop-backend/utils"

	"gorm.io/gorm"
)

// Commit settles a cart into a Sale. Stock policy is strict all-or-nothing:
// every line is re-checked against current stock inside the transaction and
// decremented with a guarded UPDATE, so a concurrent sale depleting the same
// product rejects this commit rather than driving stock negative.
func Commit(db *gorm.DB, cart Cart, schoolID *string, customerName string, amountPaid float64) (*models.Sale, error) {
	if err := cart.validate(); err != nil {
		return nil, err
	}
	if amountPaid <= 0 {
		return nil, validationf("amount paid must be greater than 0")
	}
	customerName = strings.TrimSpace(customerName)
	if customerName == "" {
		customerName = "Cash"
	}

	var sale models.Sale
	err := db.Transaction(func(tx *gorm.DB) error {
		lines := cart.merged()

		subtotal := 0.0
		items := make([]models.SaleItem, 0, len(lines))

		for _, line := range lines {
			var product models.Product
			if err := tx.First(&product, "id = ?", line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return validationf("product %s not found", line.ProductID)
				}
				return err
			}
			if !product.Active {
				return validationf("product %s is archived", product.Name)
			}
			if product.PricingMode == models.PricingLengthBased && line.Quantity < product.MinIncrement {
				return validationf("minimum purchase for %s is %v %s",
					product.Name, product.MinIncrement, product.Unit)
			}
			if product.StockQuantity < line.Quantity {
				return &InsufficientStockError{
					ProductID:   product.Id,
					ProductName: product.Name,
					Available:   product.StockQuantity,
					Requested:   line.Quantity,
				}
			}

			// Freeze commission eligibility and amount for this line.
			isCommissioned := false
			commissionAmount := 0.0
			if schoolID != nil {
				var commission models.Commission
				err := tx.Where("school_id = ? AND product_id = ?", *schoolID, product.Id).
					First(&commission).Error
				switch {
				case err == nil:
					isCommissioned = true
					commissionAmount = commission.CommissionAmount
				case errors.Is(err, gorm.ErrRecordNotFound):
					// no agreement for this pair
				default:
					return err
				}
			}

			subtotal += product.SellingPrice * line.Quantity
			items = append(items, models.SaleItem{
				ProductID:        product.Id,
				Quantity:         line.Quantity,
				UnitPrice:        product.SellingPrice,
				IsCommissioned:   isCommissioned,
				CommissionAmount: commissionAmount,
			})
		}

		subtotal = utils.Round2(subtotal)
		if amountPaid > subtotal {
			return validationf("amount paid %.2f exceeds total %.2f", amountPaid, subtotal)
		}

		// Guarded decrement: the stock predicate repeats inside the UPDATE so
		// two concurrent commits cannot both pass the read-time check.
		for _, line := range cart.merged() {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock_quantity >= ?", line.ProductID, line.Quantity).
				UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", line.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				var product models.Product
				tx.Select("id", "name", "stock_quantity").First(&product, "id = ?", line.ProductID)
				return &InsufficientStockError{
					ProductID:   line.ProductID,
					ProductName: product.Name,
					Available:   product.StockQuantity,
					Requested:   line.Quantity,
				}
			}
		}

		sale = models.Sale{
			CustomerName: customerName,
			SchoolID:     schoolID,
			TotalAmount:  subtotal,
			AmountPaid:   utils.Round2(amountPaid),
			Items:        items,
		}
		return tx.Create(&sale).Error
	})
	if err != nil {
		return nil, err
	}

	// Reload with item products for receipt generation.
	if err := db.Preload("Items.Product").Preload("School").First(&sale, "id = ?", sale.Id).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}
