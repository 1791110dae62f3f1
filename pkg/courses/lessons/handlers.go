package lessons

import (
	"net/http"
	"strconv"

	"github.com/Rainmakeroffire/Training-course-API/pkg/courses/auth"
	"github.com/Rainmakeroffire/Training-course-API/pkg/courses/membership"
	"github.com/Rainmakeroffire/Training-course-API/pkg/courses/models"
	"github.com/Rainmakeroffire/Training-course-API/pkg/courses/products"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler handles lesson-related requests
type Handler struct {
	db     *gorm.DB
	ledger *membership.Ledger
}

// NewHandler creates a new lessons handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db, ledger: membership.NewLedger(db)}
}

// LessonResponse represents a lesson in API responses, embedding its product
type LessonResponse struct {
	ID      uint                     `json:"id"`
	Title   string                   `json:"title"`
	URL     string                   `json:"url"`
	Product products.ProductResponse `json:"product"`
}

// CreateLessonRequest represents the request to create a lesson
type CreateLessonRequest struct {
	Title string `json:"title" binding:"required"`
	URL   string `json:"url" binding:"required,url"`
}

// UpdateLessonRequest represents the request to update a lesson
type UpdateLessonRequest struct {
	Title string `json:"title"`
	URL   string `json:"url" binding:"omitempty,url"`
}

// ListForProduct returns the lessons of a product the current user has access to
// @Summary List accessible lessons
// @Description Get the lessons of a product, if the current user is in its allowed users
// @Tags lessons
// @Produce json
// @Param product_id path int true "Product ID"
// @Success 200 {array} LessonResponse
// @Failure 403 {object} map[string]string "No access to this course"
// @Failure 404 {object} map[string]string "Product not found"
// @Security BearerAuth
// @Router /lessons/{product_id} [get]
func (h *Handler) ListForProduct(c *gin.Context) {
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

	var product models.Product
	if err := h.db.First(&product, productID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	if !h.ledger.HasAccess(product.ID, userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this course."})
		return
	}

	var lessons []models.Lesson
	if err := h.db.Where("product_id = ?", product.ID).Order("id").Find(&lessons).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch lessons"})
		return
	}

	productData, err := products.NewHandler(h.db).Serialize(product)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch lessons"})
		return
	}
	responses := make([]LessonResponse, len(lessons))
	for i, lesson := range lessons {
		responses[i] = LessonResponse{
			ID:      lesson.ID,
			Title:   lesson.Title,
			URL:     lesson.URL,
			Product: productData,
		}
	}

	c.JSON(http.StatusOK, responses)
}

// Create creates a lesson under a product (admin only)
// @Summary Create a lesson
// @Description Create a lesson belonging to a product
// @Tags lessons
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body CreateLessonRequest true "Lesson details"
// @Success 201 {object} models.Lesson
// @Failure 404 {object} map[string]string "Product not found"
// @Security BearerAuth
// @Router /admin/products/{id}/lessons [post]
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

	var req CreateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lesson := models.Lesson{
		ProductID: product.ID,
		Title:     req.Title,
		URL:       req.URL,
	}

	if err := h.db.Create(&lesson).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create lesson"})
		return
	}

	c.JSON(http.StatusCreated, lesson)
}

// Update updates a lesson (admin only)
// @Summary Update a lesson
// @Description Update a lesson's title or URL
// @Tags lessons
// @Accept json
// @Produce json
// @Param id path int true "Lesson ID"
// @Param request body UpdateLessonRequest true "Updated lesson details"
// @Success 200 {object} models.Lesson
// @Failure 404 {object} map[string]string "Lesson not found"
// @Security BearerAuth
// @Router /admin/lessons/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	lessonID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lesson ID"})
		return
	}

	var lesson models.Lesson
	if err := h.db.First(&lesson, lessonID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}

	var req UpdateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Title != "" {
		lesson.Title = req.Title
	}
	if req.URL != "" {
		lesson.URL = req.URL
	}

	if err := h.db.Save(&lesson).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update lesson"})
		return
	}

	c.JSON(http.StatusOK, lesson)
}

// Delete deletes a lesson (admin only)
// @Summary Delete a lesson
// @Description Delete a lesson
// @Tags lessons
// @Produce json
// @Param id path int true "Lesson ID"
// @Success 200 {object} map[string]string "Lesson deleted"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Security BearerAuth
// @Router /admin/lessons/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	lessonID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lesson ID"})
		return
	}

	result := h.db.Delete(&models.Lesson{}, lessonID)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete lesson"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Lesson deleted"})
}

// RegisterRoutes registers the lesson listing route
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/lessons/:product_id", h.ListForProduct)
}

// RegisterAdminRoutes registers the lesson management routes
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/products/:id/lessons", h.Create)
	rg.PUT("/lessons/:id", h.Update)
	rg.DELETE("/lessons/:id", h.Delete)
}
