package groups

import (
	"net/http"
	"strconv"

	"github.com/Rainmakeroffire/Training-course-API/pkg/courses/membership"
	"github.com/Rainmakeroffire/Training-course-API/pkg/courses/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler handles group management requests
type Handler struct {
	db     *gorm.DB
	ledger *membership.Ledger
}

// NewHandler creates a new groups handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db, ledger: membership.NewLedger(db)}
}

// CreateGroupRequest represents the request to create a group
type CreateGroupRequest struct {
	Name string `json:"name" binding:"required"`
}

// GroupResponse represents a group in API responses
type GroupResponse struct {
	ID           uint   `json:"id"`
	ProductID    uint   `json:"product_id"`
	Name         string `json:"name"`
	StudentCount int    `json:"student_count"`
}

// ListForProduct returns all groups of a product
// @Summary List groups
// @Description Get all groups of a product with their student counts
// @Tags groups
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {array} GroupResponse
// @Failure 404 {object} map[string]string "Product not found"
// @Security BearerAuth
// @Router /admin/products/{id}/groups [get]
func (h *Handler) ListForProduct(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var product models.Product
	if err := h.db.First(&product, productID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var groups []models.Group
	if err := h.db.Where("product_id = ?", product.ID).Order("id").Find(&groups).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch groups"})
		return
	}

	responses := make([]GroupResponse, len(groups))
	for i, group := range groups {
		count, err := h.ledger.StudentCount(group.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch groups"})
			return
		}
		responses[i] = GroupResponse{
			ID:           group.ID,
			ProductID:    group.ProductID,
			Name:         group.Name,
			StudentCount: count,
		}
	}

	c.JSON(http.StatusOK, responses)
}

// Create creates a group under a product
// @Summary Create a group
// @Description Create a group belonging to a product
// @Tags groups
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body CreateGroupRequest true "Group details"
// @Success 201 {object} GroupResponse
// @Failure 404 {object} map[string]string "Product not found"
// @Security BearerAuth
// @Router /admin/products/{id}/groups [post]
func (h *Handler) Create(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var product models.Product
	if err := h.db.First(&product, productID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group := models.Group{
		ProductID: product.ID,
		Name:      req.Name,
	}

	if err := h.db.Create(&group).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create group"})
		return
	}

	c.JSON(http.StatusCreated, GroupResponse{
		ID:        group.ID,
		ProductID: group.ProductID,
		Name:      group.Name,
	})
}

// Delete deletes a group and its enrollments
// @Summary Delete a group
// @Description Delete a group and the enrollments it holds
// @Tags groups
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {object} map[string]string "Group deleted"
// @Failure 404 {object} map[string]string "Group not found"
// @Security BearerAuth
// @Router /admin/groups/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	groupID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	var group models.Group
	if err := h.db.First(&group, groupID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", group.ID).Delete(&models.Enrollment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&group).Error
	})

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete group"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Group deleted"})
}

// RegisterRoutes registers group management routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/products/:id/groups", h.ListForProduct)
	rg.POST("/products/:id/groups", h.Create)
	rg.DELETE("/groups/:id", h.Delete)
}
