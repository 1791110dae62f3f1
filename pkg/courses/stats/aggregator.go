package stats

import (
	"math"

	"github.com/Rainmakeroffire/Training-course-API/pkg/courses/models"
	"gorm.io/gorm"
)

// ProductStat holds the computed enrollment metrics for one product
type ProductStat struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	StudentCount  int     `json:"student_count"`
	OccupancyRate float64 `json:"occupancy_rate"`
	PurchaseRate  float64 `json:"purchase_rate"`
}

// ComputeStats recomputes the per-product metrics from scratch, one entry per
// product in id order. Occupancy is the share of total group capacity filled;
// purchase rate is the share of all platform users allowed on the product.
// Zero denominators yield a zero rate rather than an error.
func ComputeStats(db *gorm.DB) ([]ProductStat, error) {
	var products []models.Product
	if err := db.Order("id").Find(&products).Error; err != nil {
		return nil, err
	}

	var totalUsers int64
	if err := db.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		return nil, err
	}

	result := make([]ProductStat, len(products))
	for i, product := range products {
		var studentCount int64
		if err := db.Model(&models.ProductAccess{}).Where("product_id = ?", product.ID).Count(&studentCount).Error; err != nil {
			return nil, err
		}

		var groupIDs []uint
		if err := db.Model(&models.Group{}).Where("product_id = ?", product.ID).Pluck("id", &groupIDs).Error; err != nil {
			return nil, err
		}

		var enrolled int64
		if len(groupIDs) > 0 {
			if err := db.Model(&models.Enrollment{}).Where("group_id IN ?", groupIDs).Count(&enrolled).Error; err != nil {
				return nil, err
			}
		}

		totalCapacity := len(groupIDs) * product.MaxGroupCapacity

		var occupancy, purchase float64
		if totalCapacity > 0 {
			occupancy = roundPercent(100 * float64(enrolled) / float64(totalCapacity))
		}
		if totalUsers > 0 {
			purchase = roundPercent(100 * float64(studentCount) / float64(totalUsers))
		}

		result[i] = ProductStat{
			ID:            product.ID,
			Name:          product.Name,
			StudentCount:  int(studentCount),
			OccupancyRate: occupancy,
			PurchaseRate:  purchase,
		}
	}

	return result, nil
}

// roundPercent rounds half-up to two decimal places
func roundPercent(x float64) float64 {
	return math.Round(x*100) / 100
}
