package membership

import (
	"errors"

	"github.com/Rainmakeroffire/Training-course-API/pkg/courses/models"
	"gorm.io/gorm"
)

var (
	ErrGroupNotFound    = errors.New("group not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrCapacityExceeded = errors.New("group capacity exceeded")
)

// Ledger owns every mutation of the two membership relations: group students
// (Enrollment) and product access (ProductAccess). It keeps them synchronized:
// a student placed in a group always gains access to the owning product, and a
// student who loses access is dropped from every group of that product.
// Callers must never write Enrollment or ProductAccess rows directly.
type Ledger struct {
	db *gorm.DB
}

// NewLedger creates a ledger over the given database
func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// AddStudent places a user into a group and grants them access to the owning
// product. Adding a student who is already in the group is a no-op. The
// capacity check runs before any write, so a full group vetoes the whole
// mutation and no partial state is left behind.
func (l *Ledger) AddStudent(groupID, userID uint) error {
	var group models.Group
	if err := l.db.Preload("Product").First(&group, groupID).Error; err != nil {
		return ErrGroupNotFound
	}

	return l.db.Transaction(func(tx *gorm.DB) error {
		// Already enrolled: nothing to apply, nothing to propagate
		var existing models.Enrollment
		if err := tx.Where("group_id = ? AND user_id = ?", groupID, userID).First(&existing).Error; err == nil {
			return nil
		}

		var count int64
		if err := tx.Model(&models.Enrollment{}).Where("group_id = ?", groupID).Count(&count).Error; err != nil {
			return err
		}
		if int(count)+1 > group.Product.MaxGroupCapacity {
			return ErrCapacityExceeded
		}

		enrollment := models.Enrollment{GroupID: groupID, UserID: userID}
		if err := tx.Create(&enrollment).Error; err != nil {
			return err
		}

		return ensureAccess(tx, group.ProductID, userID)
	})
}

// RemoveStudent removes a user from a group. If an enrollment row was actually
// deleted, the user's access to the owning product is revoked as well — a
// direct mirror of the group mutation, deliberately not conditional on the
// user's membership in any sibling group of the same product. Removing a user
// who is not in the group is a no-op and must not touch product access.
func (l *Ledger) RemoveStudent(groupID, userID uint) error {
	var group models.Group
	if err := l.db.First(&group, groupID).Error; err != nil {
		return ErrGroupNotFound
	}

	return l.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("group_id = ? AND user_id = ?", groupID, userID).Delete(&models.Enrollment{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		return tx.Where("product_id = ? AND user_id = ?", group.ProductID, userID).
			Delete(&models.ProductAccess{}).Error
	})
}

// GrantAccess adds a user to a product's allowed users without placing them in
// a group. Access additions never propagate to groups.
func (l *Ledger) GrantAccess(productID, userID uint) error {
	if err := l.db.First(&models.Product{}, productID).Error; err != nil {
		return ErrProductNotFound
	}
	return ensureAccess(l.db, productID, userID)
}

// RevokeAccess removes a user from a product's allowed users and cascades the
// removal into every group of that product. Revoking access a user does not
// hold is a no-op.
func (l *Ledger) RevokeAccess(productID, userID uint) error {
	if err := l.db.First(&models.Product{}, productID).Error; err != nil {
		return ErrProductNotFound
	}

	return l.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("product_id = ? AND user_id = ?", productID, userID).Delete(&models.ProductAccess{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		var groupIDs []uint
		if err := tx.Model(&models.Group{}).Where("product_id = ?", productID).Pluck("id", &groupIDs).Error; err != nil {
			return err
		}
		if len(groupIDs) == 0 {
			return nil
		}

		return tx.Where("group_id IN ? AND user_id = ?", groupIDs, userID).
			Delete(&models.Enrollment{}).Error
	})
}

// ensureAccess creates a ProductAccess row if one does not already exist
func ensureAccess(tx *gorm.DB, productID, userID uint) error {
	var existing models.ProductAccess
	if err := tx.Where("product_id = ? AND user_id = ?", productID, userID).First(&existing).Error; err == nil {
		return nil
	}
	access := models.ProductAccess{ProductID: productID, UserID: userID}
	return tx.Create(&access).Error
}

// StudentCount returns the current number of students in a group
func (l *Ledger) StudentCount(groupID uint) (int, error) {
	var count int64
	err := l.db.Model(&models.Enrollment{}).Where("group_id = ?", groupID).Count(&count).Error
	return int(count), err
}

// HasAccess reports whether a user is in a product's allowed users
func (l *Ledger) HasAccess(productID, userID uint) bool {
	var access models.ProductAccess
	return l.db.Where("product_id = ? AND user_id = ?", productID, userID).First(&access).Error == nil
}
