package database

import (
	"fmt"

	"dressshop-backend/models"

	"gorm.io/gorm"
)

// Migrate applies (idempotent) schema migrations. It performs:
// - AutoMigrate (tables/columns/index tags)
// - Money column types (NUMERIC(12,2)) and quantity columns (NUMERIC(12,3))
// - Unique index on (school_id, product_id) commission pairs
// - Unique index on cancellations.sale_id (at most one per sale)
// - Basic CHECK constraints (non-negative money, amount_paid <= total_amount)
func Migrate() error {
	return DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.AutoMigrate(
			&models.User{},
			&models.School{},
			&models.Product{},
			&models.Commission{},
			&models.Sale{},
			&models.SaleItem{},
			&models.Cancellation{},
			&models.IdempotencyKey{},
		); err != nil {
			return fmt.Errorf("automigrate failed: %w", err)
		}

		// --- Enforce money/quantity column types (idempotent ALTERs) ---
		alters := []string{
			`ALTER TABLE products    ALTER COLUMN cost_price        TYPE numeric(12,2)`,
			`ALTER TABLE products    ALTER COLUMN selling_price     TYPE numeric(12,2)`,
			`ALTER TABLE products    ALTER COLUMN stock_quantity    TYPE numeric(12,3)`,
			`ALTER TABLE products    ALTER COLUMN min_increment     TYPE numeric(12,3)`,
			`ALTER TABLE commissions ALTER COLUMN commission_amount TYPE numeric(12,2)`,
			`ALTER TABLE sales       ALTER COLUMN total_amount      TYPE numeric(12,2)`,
			`ALTER TABLE sales       ALTER COLUMN amount_paid       TYPE numeric(12,2)`,
			`ALTER TABLE sale_items  ALTER COLUMN quantity          TYPE numeric(12,3)`,
			`ALTER TABLE sale_items  ALTER COLUMN unit_price        TYPE numeric(12,2)`,
			`ALTER TABLE sale_items  ALTER COLUMN commission_amount TYPE numeric(12,2)`,
		}
		for _, stmt := range alters {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("money type migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Composite / helpful indexes (idempotent) ---
		indexes := []string{
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_commissions_school_product ON commissions (school_id, product_id)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_cancellations_sale ON cancellations (sale_id)`,
			`CREATE INDEX IF NOT EXISTS idx_sale_items_sale ON sale_items (sale_id)`,
			`CREATE INDEX IF NOT EXISTS idx_sale_items_product ON sale_items (product_id)`,
			`CREATE INDEX IF NOT EXISTS idx_sales_school_created_at ON sales (school_id, created_at)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_idempotency_keys_key ON idempotency_keys (key)`,
		}
		for _, stmt := range indexes {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("index migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Basic CHECK constraints (idempotent) ---
		checks := []string{
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'products'::regclass
					  AND conname  = 'chk_products_prices_nonneg'
				) THEN
					ALTER TABLE products
					ADD CONSTRAINT chk_products_prices_nonneg
					CHECK (cost_price >= 0 AND selling_price >= 0);
				END IF;
			END $$;`,
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'commissions'::regclass
					  AND conname  = 'chk_commissions_amount_nonneg'
				) THEN
					ALTER TABLE commissions
					ADD CONSTRAINT chk_commissions_amount_nonneg
					CHECK (commission_amount >= 0);
				END IF;
			END $$;`,
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'sales'::regclass
					  AND conname  = 'chk_sales_paid_le_total'
				) THEN
					ALTER TABLE sales
					ADD CONSTRAINT chk_sales_paid_le_total
					CHECK (amount_paid >= 0 AND amount_paid <= total_amount);
				END IF;
			END $$;`,
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'sale_items'::regclass
					  AND conname  = 'chk_sale_items_quantity_pos'
				) THEN
					ALTER TABLE sale_items
					ADD CONSTRAINT chk_sale_items_quantity_pos
					CHECK (quantity > 0);
				END IF;
			END $$;`,
		}
		for _, stmt := range checks {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("check constraint migration failed: %w", err)
			}
		}

		return nil
	})
}
