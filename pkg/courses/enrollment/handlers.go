package enrollment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Rainmakeroffire/Training-course-API/pkg/courses/auth"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler handles course signup requests
type Handler struct {
	engine *Engine
}

// NewHandler creates a new enrollment handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{engine: NewEngine(db)}
}

// SignupResponse represents the signup response body
type SignupResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Signup enrolls the current user on a course
// @Summary Sign up for a course
// @Description Enroll the authenticated user into one of the course's groups
// @Tags products
// @Produce json
// @Param product_id path int true "Product ID"
// @Success 200 {object} SignupResponse
// @Failure 400 {object} SignupResponse "Enrollment full"
// @Failure 404 {object} map[string]string "Product not found"
// @Security BearerAuth
// @Router /products/signup/{product_id} [post]
func (h *Handler) Signup(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	if err := h.engine.Enroll(userID, uint(productID)); err != nil {
		switch {
		case errors.Is(err, ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		case errors.Is(err, ErrEnrollmentFull):
			c.JSON(http.StatusBadRequest, SignupResponse{
				Success: false,
				Error:   "Could not sign up, enrollment for this course is closed.",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign up"})
		}
		return
	}

	c.JSON(http.StatusOK, SignupResponse{
		Success: true,
		Message: "You have successfully signed up for the course.",
	})
}

// RegisterRoutes registers enrollment routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/products/signup/:product_id", h.Signup)
}
