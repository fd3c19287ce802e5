package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type School struct {
	Id   string `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"not null;unique"`

	// Owned: deleting a school removes its commission agreements.
	Commissions []Commission `json:"commissions,omitempty" gorm:"foreignKey:SchoolID;constraint:OnDelete:CASCADE"`
}

func (school *School) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	if school.Id == "" {
		school.Id = uuid.NewString()
	}
	return
}
