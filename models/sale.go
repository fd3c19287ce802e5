package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sale is the settled transaction header. TotalAmount is fixed at creation as
// the sum of item unit_price * quantity; AmountPaid is what was actually
// collected (the difference is the discount given). Only CustomerName and
// AmountPaid may change after settlement.
type Sale struct {
	Id           string  `json:"id" gorm:"primaryKey"`
	CustomerName string  `json:"customer_name" gorm:"default:'Cash'"`
	SchoolID     *string `json:"school_id" gorm:"index"`
	School       *School `json:"school,omitempty" gorm:"foreignKey:SchoolID;references:Id"`

	TotalAmount float64 `json:"total_amount" gorm:"type:numeric(12,2)"`
	AmountPaid  float64 `json:"amount_paid" gorm:"type:numeric(12,2)"`

	Items []SaleItem `json:"items" gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`

	// At most one. Its presence voids the sale in every aggregate.
	Cancellation *Cancellation `json:"cancellation,omitempty" gorm:"foreignKey:SaleID"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

func (sale *Sale) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	if sale.Id == "" {
		sale.Id = uuid.NewString()
	}
	return
}

// Cancelled reports whether the sale has been voided.
func (sale *Sale) Cancelled() bool {
	return sale.Cancellation != nil
}

// SaleItem is an immutable line of a sale. UnitPrice, IsCommissioned and
// CommissionAmount are point-in-time snapshots taken at settlement; later
// changes to the product or the commission table do not touch them.
type SaleItem struct {
	Id        string `json:"id" gorm:"primaryKey"`
	SaleID    string `json:"sale_id" gorm:"not null;index"`
	ProductID string `json:"product_id" gorm:"not null;index"`

	// Reference, not ownership: the product may be archived later.
	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID;references:Id;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`

	// Fractional for length-based products.
	Quantity  float64 `json:"quantity" gorm:"type:numeric(12,3)"`
	UnitPrice float64 `json:"unit_price" gorm:"type:numeric(12,2)"`

	IsCommissioned bool `json:"is_commissioned"`
	// Per-unit flat commission frozen at settlement; 0 when not commissioned.
	CommissionAmount float64 `json:"commission_amount" gorm:"type:numeric(12,2)"`
}

func (item *SaleItem) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	if item.Id == "" {
		item.Id = uuid.NewString()
	}
	return
}
