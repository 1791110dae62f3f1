package models

import "gorm.io/gorm"

// AllModels returns all models for migration
// Note: Product must be migrated before its dependent models
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Product{},
		&Lesson{},
		&Group{},
		&Enrollment{},
		&ProductAccess{},
	}
}

// AutoMigrate runs GORM auto-migration for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
