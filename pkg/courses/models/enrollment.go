package models

import (
	"time"
)

// Enrollment represents the many-to-many relationship between groups and
// their students. Join rows are hard-deleted: a soft-deleted row would keep
// occupying the unique index and block re-enrollment of the same pair.
type Enrollment struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	GroupID   uint      `gorm:"not null;uniqueIndex:idx_group_student" json:"group_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_group_student" json:"user_id"`

	// Relationships
	Group Group `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
