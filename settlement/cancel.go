package settlement

import (
	"errors"
	"fmt"
	"strings"

	"dressshop-backend/models"

	"gorm.io/gorm"
)

// Cancel voids a sale: restores every line's quantity to its product's stock
// (the exact inverse of the commit-time decrement) and writes the immutable
// cancellation record. The sale and its items are kept for the audit trail.
// Cancelling twice fails with ErrAlreadyCancelled and mutates nothing.
func Cancel(db *gorm.DB, saleID string, reason string) (*models.Cancellation, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, validationf("cancellation reason is required")
	}

	var cancellation models.Cancellation
	err := db.Transaction(func(tx *gorm.DB) error {
		var existing models.Cancellation
		err := tx.Where("sale_id = ?", saleID).First(&existing).Error
		switch {
		case err == nil:
			return ErrAlreadyCancelled
		case errors.Is(err, gorm.ErrRecordNotFound):
			// first cancellation for this sale
		default:
			return err
		}

		var sale models.Sale
		if err := tx.Preload("Items").First(&sale, "id = ?", saleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSaleNotFound
			}
			return err
		}

		// Stock restoration happens inside the same transaction as the record
		// insert: either both land or neither does.
		for _, item := range sale.Items {
			res := tx.Model(&models.Product{}).
				Where("id = ?", item.ProductID).
				UpdateColumn("stock_quantity", gorm.Expr("stock_quantity + ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("restore stock: product %s no longer exists", item.ProductID)
			}
		}

		cancellation = models.Cancellation{SaleID: sale.Id, Reason: reason}
		return tx.Create(&cancellation).Error
	})
	if err != nil {
		return nil, err
	}
	return &cancellation, nil
}
