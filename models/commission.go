package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Commission is a flat per-unit amount owed to a school for a specific product.
// It is a rate card, not a ledger entry: settlement snapshots the amount onto
// the sale item, so editing or deleting a row never rewrites history.
type Commission struct {
	Id        string `json:"id" gorm:"primaryKey"`
	SchoolID  string `json:"school_id" gorm:"not null;index:idx_commissions_school_product,unique,priority:1"`
	ProductID string `json:"product_id" gorm:"not null;index:idx_commissions_school_product,unique,priority:2"`

	School  *School  `json:"school,omitempty" gorm:"foreignKey:SchoolID;references:Id"`
	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID;references:Id"`

	// Flat amount per unit sold, not a percentage.
	CommissionAmount float64 `json:"commission_amount" gorm:"type:numeric(12,2)"`
}

func (commission *Commission) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	if commission.Id == "" {
		commission.Id = uuid.NewString()
	}
	return
}
