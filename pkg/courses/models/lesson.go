package models

import (
	"time"

	"gorm.io/gorm"
)

// Lesson represents a single lesson belonging to a product
type Lesson struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	ProductID uint           `gorm:"not null;index" json:"product_id"`
	Title     string         `json:"title"`
	URL       string         `gorm:"not null" json:"url"`

	// Relationships
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}
