package products

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Rainmakeroffire/Training-course-API/pkg/courses/auth"
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

func setupTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewHandler(db)

	handler.RegisterRoutes(r.Group(""))

	admin := r.Group("/admin")
	admin.Use(auth.AuthMiddleware(), auth.RequireAdmin())
	handler.RegisterAdminRoutes(admin)

	return r
}

func createAdmin(t *testing.T, db *gorm.DB) models.User {
	user := models.User{
		Email:      "admin@example.com",
		Name:       "Admin",
		SystemRole: models.SystemRoleAdmin,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create admin: %v", err)
	}
	return user
}

func getAuthHeader(user models.User) string {
	token, _ := auth.GenerateToken(user.ID, user.Email, string(user.SystemRole))
	return "Bearer " + token
}

func TestListProductsWithLessonCount(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	product := models.Product{Name: "Go Course", Author: "Jane", StartsAt: time.Now(), MaxGroupCapacity: 10}
	db.Create(&product)
	db.Create(&models.Lesson{ProductID: product.ID, Title: "Intro", URL: "https://example.com/1"})
	db.Create(&models.Lesson{ProductID: product.ID, Title: "Basics", URL: "https://example.com/2"})

	user := models.User{Email: "student@example.com", Name: "Student"}
	db.Create(&user)
	db.Create(&models.ProductAccess{ProductID: product.ID, UserID: user.ID})

	req, _ := http.NewRequest("GET", "/products", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var responses []ProductResponse
	json.Unmarshal(resp.Body.Bytes(), &responses)
	if len(responses) != 1 {
		t.Fatalf("Expected 1 product, got %d", len(responses))
	}
	if responses[0].LessonCount != 2 {
		t.Errorf("Expected lesson_count 2, got %d", responses[0].LessonCount)
	}
	if len(responses[0].AllowedUsers) != 1 || responses[0].AllowedUsers[0].Email != "student@example.com" {
		t.Errorf("Expected allowed user embedded, got %+v", responses[0].AllowedUsers)
	}
}

func TestCreateProductDefaultsCapacity(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	admin := createAdmin(t, db)

	body := CreateProductRequest{
		Name:     "New Course",
		StartsAt: time.Now().Add(24 * time.Hour),
		Price:    49.99,
	}
	jsonBody, _ := json.Marshal(body)

	req, _ := http.NewRequest("POST", "/admin/products", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", getAuthHeader(admin))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var response ProductResponse
	json.Unmarshal(resp.Body.Bytes(), &response)
	if response.MaxGroupCapacity != 10 {
		t.Errorf("Expected default capacity 10, got %d", response.MaxGroupCapacity)
	}
}

func TestCreateProductRejectsZeroCapacity(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	admin := createAdmin(t, db)

	jsonBody := []byte(`{"name":"Bad Course","starts_at":"2024-05-01T00:00:00Z","max_group_capacity":-1}`)

	req, _ := http.NewRequest("POST", "/admin/products", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", getAuthHeader(admin))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for nonpositive capacity, got %d", resp.Code)
	}
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	user := models.User{Email: "student@example.com", Name: "Student", SystemRole: models.SystemRoleUser}
	db.Create(&user)

	jsonBody := []byte(`{"name":"Course","starts_at":"2024-05-01T00:00:00Z"}`)
	req, _ := http.NewRequest("POST", "/admin/products", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", getAuthHeader(user))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Errorf("Expected status 403 for non-admin, got %d", resp.Code)
	}
}

func TestDeleteProductCascades(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	admin := createAdmin(t, db)

	product := models.Product{Name: "Doomed Course", StartsAt: time.Now(), MaxGroupCapacity: 10}
	db.Create(&product)
	group := models.Group{ProductID: product.ID, Name: "Group 1"}
	db.Create(&group)
	user := models.User{Email: "student@example.com", Name: "Student"}
	db.Create(&user)
	db.Create(&models.Enrollment{GroupID: group.ID, UserID: user.ID})
	db.Create(&models.ProductAccess{ProductID: product.ID, UserID: user.ID})
	db.Create(&models.Lesson{ProductID: product.ID, Title: "Intro", URL: "https://example.com/1"})

	req, _ := http.NewRequest("DELETE", "/admin/products/1", nil)
	req.Header.Set("Authorization", getAuthHeader(admin))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var counts [4]int64
	db.Model(&models.Group{}).Where("product_id = ?", product.ID).Count(&counts[0])
	db.Model(&models.Lesson{}).Where("product_id = ?", product.ID).Count(&counts[1])
	db.Model(&models.Enrollment{}).Where("group_id = ?", group.ID).Count(&counts[2])
	db.Model(&models.ProductAccess{}).Where("product_id = ?", product.ID).Count(&counts[3])
	for i, c := range counts {
		if c != 0 {
			t.Errorf("Expected cascade to remove dependent rows, count[%d] = %d", i, c)
		}
	}
}
