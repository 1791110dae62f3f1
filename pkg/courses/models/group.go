package models

import (
	"time"

	"gorm.io/gorm"
)

// Group represents a capacity-bounded set of students within a product.
// The capacity limit lives on the owning product (MaxGroupCapacity) and is
// enforced by the membership ledger, not by the model itself.
type Group struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	ProductID uint           `gorm:"not null;index" json:"product_id"`
	Name      string         `json:"name"`

	// Relationships
	Product  Product      `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Students []Enrollment `gorm:"foreignKey:GroupID" json:"students,omitempty"`
}
