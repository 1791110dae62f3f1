package stats

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Rainmakeroffire/Training-course-API/pkg/courses/models"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	models.AutoMigrate(db)
	return db
}

func createProduct(t *testing.T, db *gorm.DB, name string, capacity int) models.Product {
	product := models.Product{
		Name:             name,
		StartsAt:         time.Now().Add(24 * time.Hour),
		MaxGroupCapacity: capacity,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("Failed to create product: %v", err)
	}
	return product
}

func seedGroupWithStudents(t *testing.T, db *gorm.DB, product models.Product, name string, n int, grantAccess bool) models.Group {
	group := models.Group{ProductID: product.ID, Name: name}
	if err := db.Create(&group).Error; err != nil {
		t.Fatalf("Failed to create group: %v", err)
	}
	for i := 0; i < n; i++ {
		user := models.User{
			Email: fmt.Sprintf("%s-%d@example.com", name, i),
			Name:  "Student",
		}
		if err := db.Create(&user).Error; err != nil {
			t.Fatalf("Failed to create user: %v", err)
		}
		db.Create(&models.Enrollment{GroupID: group.ID, UserID: user.ID})
		if grantAccess {
			db.Create(&models.ProductAccess{ProductID: product.ID, UserID: user.ID})
		}
	}
	return group
}

func TestComputeStatsNoUsers(t *testing.T) {
	db := setupTestDB(t)
	createProduct(t, db, "Empty Course", 10)

	result, err := ComputeStats(db)
	if err != nil {
		t.Fatalf("ComputeStats failed: %v", err)
	}

	if len(result) != 1 {
		t.Fatalf("Expected 1 stat entry, got %d", len(result))
	}
	if result[0].PurchaseRate != 0 {
		t.Errorf("Expected purchase_rate 0 with no platform users, got %v", result[0].PurchaseRate)
	}
	if result[0].OccupancyRate != 0 {
		t.Errorf("Expected occupancy_rate 0 with no groups, got %v", result[0].OccupancyRate)
	}
}

func TestComputeStatsRates(t *testing.T) {
	db := setupTestDB(t)
	product := createProduct(t, db, "Go Course", 10)
	seedGroupWithStudents(t, db, product, "g1", 3, true)
	seedGroupWithStudents(t, db, product, "g2", 2, true)

	// 3 extra platform users without access: 8 users total, 5 with access
	for i := 0; i < 3; i++ {
		db.Create(&models.User{Email: fmt.Sprintf("bystander%d@example.com", i), Name: "Bystander"})
	}

	result, err := ComputeStats(db)
	if err != nil {
		t.Fatalf("ComputeStats failed: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("Expected 1 stat entry, got %d", len(result))
	}

	stat := result[0]
	if stat.StudentCount != 5 {
		t.Errorf("Expected student_count 5, got %d", stat.StudentCount)
	}
	// 5 of 20 seats filled
	if stat.OccupancyRate != 25.0 {
		t.Errorf("Expected occupancy_rate 25.0, got %v", stat.OccupancyRate)
	}
	// 5 of 8 platform users
	if stat.PurchaseRate != 62.5 {
		t.Errorf("Expected purchase_rate 62.5, got %v", stat.PurchaseRate)
	}
}

func TestComputeStatsRounding(t *testing.T) {
	db := setupTestDB(t)
	product := createProduct(t, db, "Rounding Course", 3)
	seedGroupWithStudents(t, db, product, "g1", 1, true)
	seedGroupWithStudents(t, db, product, "g2", 1, false)

	result, err := ComputeStats(db)
	if err != nil {
		t.Fatalf("ComputeStats failed: %v", err)
	}

	// 2 of 6 seats: 33.333... rounds to 33.33
	if result[0].OccupancyRate != 33.33 {
		t.Errorf("Expected occupancy_rate 33.33, got %v", result[0].OccupancyRate)
	}
	// 1 of 2 users has access
	if result[0].PurchaseRate != 50.0 {
		t.Errorf("Expected purchase_rate 50.0, got %v", result[0].PurchaseRate)
	}
}

func TestComputeStatsOrderedByProduct(t *testing.T) {
	db := setupTestDB(t)
	first := createProduct(t, db, "First", 10)
	second := createProduct(t, db, "Second", 10)

	result, err := ComputeStats(db)
	if err != nil {
		t.Fatalf("ComputeStats failed: %v", err)
	}

	if len(result) != 2 || result[0].ID != first.ID || result[1].ID != second.ID {
		t.Errorf("Expected stats in product id order, got %+v", result)
	}
}

func TestStatsEndpoint(t *testing.T) {
	db := setupTestDB(t)
	product := createProduct(t, db, "Go Course", 10)
	seedGroupWithStudents(t, db, product, "g1", 4, true)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(db).RegisterRoutes(r.Group(""))

	req, _ := http.NewRequest("GET", "/products/stats", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var stats []ProductStat
	json.Unmarshal(resp.Body.Bytes(), &stats)
	if len(stats) != 1 {
		t.Fatalf("Expected 1 stat entry, got %d", len(stats))
	}
	if stats[0].Name != "Go Course" || stats[0].StudentCount != 4 {
		t.Errorf("Unexpected stat entry: %+v", stats[0])
	}
	if stats[0].OccupancyRate != 40.0 {
		t.Errorf("Expected occupancy_rate 40.0, got %v", stats[0].OccupancyRate)
	}
	if stats[0].PurchaseRate != 100.0 {
		t.Errorf("Expected purchase_rate 100.0, got %v", stats[0].PurchaseRate)
	}
}
