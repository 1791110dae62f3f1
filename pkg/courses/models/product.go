package models

import (
	"time"

	"gorm.io/gorm"
)

// Product represents a purchasable course
type Product struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
	Name             string         `gorm:"not null" json:"name"`
	Author           string         `json:"author"`
	StartsAt         time.Time      `gorm:"not null" json:"starts_at"`
	Price            float64        `json:"price"`
	MaxGroupCapacity int            `gorm:"default:10" json:"max_group_capacity"`

	// Relationships
	Lessons      []Lesson        `gorm:"foreignKey:ProductID" json:"lessons,omitempty"`
	Groups       []Group         `gorm:"foreignKey:ProductID" json:"groups,omitempty"`
	AccessGrants []ProductAccess `gorm:"foreignKey:ProductID" json:"access_grants,omitempty"`
}
