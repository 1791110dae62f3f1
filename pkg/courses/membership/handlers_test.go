package membership

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Rainmakeroffire/Training-course-API/pkg/courses/auth"
	"github.com/Rainmakeroffire/Training-course-API/pkg/courses/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func setupTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewHandler(db)

	admin := r.Group("", auth.AuthMiddleware(), auth.RequireAdmin())
	handler.RegisterRoutes(admin)

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

func TestGrantAccessEndpoint(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	admin := createAdmin(t, db)
	product := createProduct(t, db, 10)
	group := createGroup(t, db, product.ID, "Group 1")
	user := createUser(t, db, "student@example.com")

	body, _ := json.Marshal(GrantAccessRequest{UserID: user.ID})
	req, _ := http.NewRequest("POST", fmt.Sprintf("/products/%d/access", product.ID), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", getAuthHeader(admin))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	if !hasAccess(db, product.ID, user.ID) {
		t.Error("Expected access grant to be created")
	}
	if enrollmentCount(db, group.ID) != 0 {
		t.Error("Granting access must not place the user in a group")
	}
}

func TestRevokeAccessEndpointCascades(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	admin := createAdmin(t, db)
	product := createProduct(t, db, 10)
	group := createGroup(t, db, product.ID, "Group 1")
	user := createUser(t, db, "student@example.com")

	ledger := NewLedger(db)
	if err := ledger.AddStudent(group.ID, user.ID); err != nil {
		t.Fatalf("AddStudent failed: %v", err)
	}

	req, _ := http.NewRequest("DELETE", fmt.Sprintf("/products/%d/access/%d", product.ID, user.ID), nil)
	req.Header.Set("Authorization", getAuthHeader(admin))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	if hasAccess(db, product.ID, user.ID) {
		t.Error("Expected access grant removed")
	}
	if enrollmentCount(db, group.ID) != 0 {
		t.Error("Expected revocation to cascade out of the group")
	}
}

func TestGrantAccessUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	admin := createAdmin(t, db)
	user := createUser(t, db, "student@example.com")

	body, _ := json.Marshal(GrantAccessRequest{UserID: user.ID})
	req, _ := http.NewRequest("POST", "/products/42/access", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", getAuthHeader(admin))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", resp.Code)
	}
}
