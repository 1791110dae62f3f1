package lessons

import (
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
	handler.RegisterRoutes(r.Group("", auth.AuthMiddleware()))
	return r
}

func createUser(t *testing.T, db *gorm.DB, email string) models.User {
	user := models.User{Email: email, Name: "Test User"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return user
}

func getAuthHeader(user models.User) string {
	token, _ := auth.GenerateToken(user.ID, user.Email, string(user.SystemRole))
	return "Bearer " + token
}

func TestListLessonsWithAccess(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	product := models.Product{Name: "Go Course", StartsAt: time.Now(), MaxGroupCapacity: 10}
	db.Create(&product)
	db.Create(&models.Lesson{ProductID: product.ID, Title: "Intro", URL: "https://example.com/1"})
	db.Create(&models.Lesson{ProductID: product.ID, Title: "Basics", URL: "https://example.com/2"})

	user := createUser(t, db, "student@example.com")
	db.Create(&models.ProductAccess{ProductID: product.ID, UserID: user.ID})

	req, _ := http.NewRequest("GET", "/lessons/1", nil)
	req.Header.Set("Authorization", getAuthHeader(user))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var responses []LessonResponse
	json.Unmarshal(resp.Body.Bytes(), &responses)
	if len(responses) != 2 {
		t.Fatalf("Expected 2 lessons, got %d", len(responses))
	}
	for _, lesson := range responses {
		if lesson.Product.ID != product.ID || lesson.Product.Name != "Go Course" {
			t.Errorf("Expected product embedded in lesson, got %+v", lesson.Product)
		}
	}
}

func TestListLessonsWithoutAccess(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	product := models.Product{Name: "Go Course", StartsAt: time.Now(), MaxGroupCapacity: 10}
	db.Create(&product)
	user := createUser(t, db, "outsider@example.com")

	req, _ := http.NewRequest("GET", "/lessons/1", nil)
	req.Header.Set("Authorization", getAuthHeader(user))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("Expected status 403, got %d: %s", resp.Code, resp.Body.String())
	}

	var body map[string]string
	json.Unmarshal(resp.Body.Bytes(), &body)
	if body["error"] == "" {
		t.Error("Expected an error message in the 403 body")
	}
}

func TestListLessonsUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createUser(t, db, "student@example.com")

	req, _ := http.NewRequest("GET", "/lessons/42", nil)
	req.Header.Set("Authorization", getAuthHeader(user))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestListLessonsRequiresAuth(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	req, _ := http.NewRequest("GET", "/lessons/1", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", resp.Code)
	}
}
