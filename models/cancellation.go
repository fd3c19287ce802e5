package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cancellation voids a sale. Immutable audit record: it is never updated or
// deleted, and "un-cancel" is not an operation. Writing one restores the stock
// that the sale consumed.
type Cancellation struct {
	Id          string    `json:"id" gorm:"primaryKey"`
	SaleID      string    `json:"sale_id" gorm:"not null;uniqueIndex"`
	Reason      string    `json:"reason" gorm:"not null"`
	CancelledAt time.Time `json:"cancelled_at"`
}

func (cancellation *Cancellation) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	if cancellation.Id == "" {
		cancellation.Id = uuid.NewString()
	}
	if cancellation.CancelledAt.IsZero() {
		cancellation.CancelledAt = time.Now().UTC()
	}
	return
}
