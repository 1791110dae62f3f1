package membership

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Rainmakeroffire/Training-course-API/pkg/courses/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler exposes product access grants over HTTP
type Handler struct {
	db     *gorm.DB
	ledger *Ledger
}

// NewHandler creates a new membership handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db, ledger: NewLedger(db)}
}

// GrantAccessRequest represents a request to grant a user access to a product
type GrantAccessRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

// GrantAccess adds a user to a product's allowed users without placing them in
// a group
// @Summary Grant product access
// @Description Add a user to a product's allowed users
// @Tags access
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body GrantAccessRequest true "User to grant"
// @Success 201 {object} map[string]string "Access granted"
// @Failure 404 {object} map[string]string "Product or user not found"
// @Security BearerAuth
// @Router /admin/products/{id}/access [post]
func (h *Handler) GrantAccess(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var req GrantAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.db.First(&models.User{}, req.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := h.ledger.GrantAccess(uint(productID), req.UserID); err != nil {
		if errors.Is(err, ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to grant access"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Access granted"})
}

// RevokeAccess removes a user from a product's allowed users and out of every
// group of that product
// @Summary Revoke product access
// @Description Remove a user from a product's allowed users and all its groups
// @Tags access
// @Produce json
// @Param id path int true "Product ID"
// @Param userId path int true "User ID"
// @Success 200 {object} map[string]string "Access revoked"
// @Failure 404 {object} map[string]string "Product not found"
// @Security BearerAuth
// @Router /admin/products/{id}/access/{userId} [delete]
func (h *Handler) RevokeAccess(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if err := h.ledger.RevokeAccess(uint(productID), uint(userID)); err != nil {
		if errors.Is(err, ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to revoke access"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Access revoked"})
}

// RegisterRoutes registers access grant routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/products/:id/access", h.GrantAccess)
	rg.DELETE("/products/:id/access/:userId", h.RevokeAccess)
}
