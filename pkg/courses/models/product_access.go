package models

import (
	"time"
)

// ProductAccess represents the many-to-many relationship between products and
// the users allowed to view their lessons. Kept synchronized with group
// enrollments by the membership ledger. Join rows are hard-deleted so a
// revoked grant can be re-created without tripping the unique index.
type ProductAccess struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_product_user" json:"product_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_product_user" json:"user_id"`

	// Relationships
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
