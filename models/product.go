package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Pricing modes. Fixed products sell in whole units at a fixed price;
// length-based products sell by continuous quantity (e.g. meters of fabric).
const (
	PricingFixed       = "fixed"
	PricingLengthBased = "length_based"
)

type Product struct {
	Id           string  `json:"id" gorm:"primaryKey"`
	Name         string  `json:"name" gorm:"not null;index"`
	CostPrice    float64 `json:"cost_price" gorm:"type:numeric(12,2)"`
	SellingPrice float64 `json:"selling_price" gorm:"type:numeric(12,2)"`

	// Signed: length-based stock may be driven negative by catalog corrections.
	StockQuantity float64 `json:"stock_quantity" gorm:"type:numeric(12,3)"`

	// Soft-delete flag. Products referenced by sale items are archived, never deleted.
	Active bool `json:"is_active" gorm:"default:true"`

	PricingMode string `json:"pricing_mode" gorm:"type:VARCHAR(20);default:'fixed'"`
	// Length-based only: unit label ("m", "ft") and smallest sellable quantity.
	Unit         string  `json:"unit,omitempty"`
	MinIncrement float64 `json:"min_increment,omitempty" gorm:"type:numeric(12,3)"`

	// Optional partner school association (reference, not ownership).
	SchoolID *string `json:"school_id" gorm:"index"`
	School   *School `json:"school,omitempty" gorm:"foreignKey:SchoolID;references:Id"`

	// Free-form display metadata (size, base_product, ...). Display only;
	// pricing semantics live in the typed columns above.
	Tags datatypes.JSONMap `json:"tags,omitempty"`
}

func (product *Product) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	if product.Id == "" {
		product.Id = uuid.NewString()
	}
	return
}
