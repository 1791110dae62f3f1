package enrollment

import (
	"errors"
	"time"

	"github.com/Rainmakeroffire/Training-course-API/pkg/courses/membership"
	"github.com/Rainmakeroffire/Training-course-API/pkg/courses/models"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrEnrollmentFull  = errors.New("enrollment full")
)

// Engine decides whether and where to enroll a student on a product.
// Courses that have already started fill groups front to back; courses that
// have not started yet distribute students so group sizes stay within one of
// each other.
type Engine struct {
	db     *gorm.DB
	ledger *membership.Ledger
	now    func() time.Time
}

// NewEngine creates an enrollment engine over the given database
func NewEngine(db *gorm.DB) *Engine {
	return &Engine{
		db:     db,
		ledger: membership.NewLedger(db),
		now:    time.Now,
	}
}

// Enroll places a user into one of the product's groups, or fails with
// ErrEnrollmentFull when no group can take them. The placement is a single
// synchronous decision: the student ends up in exactly one group plus the
// product's allowed users, or nowhere.
func (e *Engine) Enroll(userID, productID uint) error {
	var product models.Product
	if err := e.db.First(&product, productID).Error; err != nil {
		return ErrProductNotFound
	}

	var groups []models.Group
	if err := e.db.Where("product_id = ?", product.ID).Order("id").Find(&groups).Error; err != nil {
		return err
	}

	if product.StartsAt.Before(e.now()) {
		return e.enrollStarted(userID, product, groups)
	}
	return e.enrollBalanced(userID, product, groups)
}

// enrollStarted picks the first group with a free seat, in group order
func (e *Engine) enrollStarted(userID uint, product models.Product, groups []models.Group) error {
	for _, group := range groups {
		count, err := e.ledger.StudentCount(group.ID)
		if err != nil {
			return err
		}
		if count < product.MaxGroupCapacity {
			return e.ledger.AddStudent(group.ID, userID)
		}
	}
	return ErrEnrollmentFull
}

// enrollBalanced picks the group with the fewest students. Ties go to the
// first such group in group order, and if that particular group is already at
// capacity the enrollment fails — no second candidate is considered.
func (e *Engine) enrollBalanced(userID uint, product models.Product, groups []models.Group) error {
	var target *models.Group
	minCount := 0

	for i := range groups {
		count, err := e.ledger.StudentCount(groups[i].ID)
		if err != nil {
			return err
		}
		if target == nil || count < minCount {
			target = &groups[i]
			minCount = count
		}
	}

	if target == nil || minCount >= product.MaxGroupCapacity {
		return ErrEnrollmentFull
	}
	return e.ledger.AddStudent(target.ID, userID)
}
