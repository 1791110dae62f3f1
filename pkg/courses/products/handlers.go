package products

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Rainmakeroffire/Training-course-API/pkg/courses/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler handles product-related requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new products handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// AllowedUserResponse represents an allowed user embedded in a product
type AllowedUserResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID               uint                  `json:"id"`
	Name             string                `json:"name"`
	Author           string                `json:"author"`
	StartsAt         time.Time             `json:"starts_at"`
	Price            float64               `json:"price"`
	MaxGroupCapacity int                   `json:"max_group_capacity"`
	AllowedUsers     []AllowedUserResponse `json:"allowed_users"`
	LessonCount      int64                 `json:"lesson_count"`
}

// CreateProductRequest represents the request to create a product
type CreateProductRequest struct {
	Name             string    `json:"name" binding:"required"`
	Author           string    `json:"author"`
	StartsAt         time.Time `json:"starts_at" binding:"required"`
	Price            float64   `json:"price"`
	MaxGroupCapacity int       `json:"max_group_capacity" binding:"omitempty,min=1"`
}

// UpdateProductRequest represents the request to update a product
type UpdateProductRequest struct {
	Name             string     `json:"name"`
	Author           string     `json:"author"`
	StartsAt         *time.Time `json:"starts_at"`
	Price            *float64   `json:"price"`
	MaxGroupCapacity *int       `json:"max_group_capacity" binding:"omitempty,min=1"`
}

// Serialize builds the API representation of a product, including its allowed
// users and lesson count
func (h *Handler) Serialize(product models.Product) (ProductResponse, error) {
	var grants []models.ProductAccess
	if err := h.db.Preload("User").Where("product_id = ?", product.ID).Find(&grants).Error; err != nil {
		return ProductResponse{}, err
	}

	allowed := make([]AllowedUserResponse, len(grants))
	for i, g := range grants {
		allowed[i] = AllowedUserResponse{
			ID:    g.User.ID,
			Name:  g.User.Name,
			Email: g.User.Email,
		}
	}

	var lessonCount int64
	if err := h.db.Model(&models.Lesson{}).Where("product_id = ?", product.ID).Count(&lessonCount).Error; err != nil {
		return ProductResponse{}, err
	}

	return ProductResponse{
		ID:               product.ID,
		Name:             product.Name,
		Author:           product.Author,
		StartsAt:         product.StartsAt,
		Price:            product.Price,
		MaxGroupCapacity: product.MaxGroupCapacity,
		AllowedUsers:     allowed,
		LessonCount:      lessonCount,
	}, nil
}

// List returns all products available for purchase
// @Summary List products
// @Description Get all products with their allowed users and lesson counts
// @Tags products
// @Produce json
// @Success 200 {array} ProductResponse
// @Router /products [get]
func (h *Handler) List(c *gin.Context) {
	var products []models.Product
	if err := h.db.Order("id").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	responses := make([]ProductResponse, len(products))
	for i, product := range products {
		response, err := h.Serialize(product)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		responses[i] = response
	}

	c.JSON(http.StatusOK, responses)
}

// Get returns a specific product
// @Summary Get a product
// @Description Get details of a specific product
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 404 {object} map[string]string "Product not found"
// @Security BearerAuth
// @Router /products/{id} [get]
func (h *Handler) Get(c *gin.Context) {
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

	response, err := h.Serialize(product)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// Create creates a new product (admin only)
// @Summary Create a product
// @Description Create a new course product
// @Tags products
// @Accept json
// @Produce json
// @Param request body CreateProductRequest true "Product details"
// @Success 201 {object} ProductResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /products [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	capacity := req.MaxGroupCapacity
	if capacity == 0 {
		capacity = 10
	}

	product := models.Product{
		Name:             req.Name,
		Author:           req.Author,
		StartsAt:         req.StartsAt,
		Price:            req.Price,
		MaxGroupCapacity: capacity,
	}

	if err := h.db.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	response, err := h.Serialize(product)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Update updates a product (admin only)
// @Summary Update a product
// @Description Update a course product
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body UpdateProductRequest true "Updated product details"
// @Success 200 {object} ProductResponse
// @Failure 404 {object} map[string]string "Product not found"
// @Security BearerAuth
// @Router /products/{id} [put]
func (h *Handler) Update(c *gin.Context) {
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

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Author != "" {
		product.Author = req.Author
	}
	if req.StartsAt != nil {
		product.StartsAt = *req.StartsAt
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.MaxGroupCapacity != nil {
		product.MaxGroupCapacity = *req.MaxGroupCapacity
	}

	if err := h.db.Save(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	response, err := h.Serialize(product)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// Delete deletes a product and everything belonging to it (admin only)
// @Summary Delete a product
// @Description Delete a product with its lessons, groups, enrollments and access grants
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} map[string]string "Product deleted"
// @Failure 404 {object} map[string]string "Product not found"
// @Security BearerAuth
// @Router /products/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
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

	err = h.db.Transaction(func(tx *gorm.DB) error {
		var groupIDs []uint
		if err := tx.Model(&models.Group{}).Where("product_id = ?", product.ID).Pluck("id", &groupIDs).Error; err != nil {
			return err
		}
		if len(groupIDs) > 0 {
			if err := tx.Where("group_id IN ?", groupIDs).Delete(&models.Enrollment{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductAccess{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.Group{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.Lesson{}).Error; err != nil {
			return err
		}
		return tx.Delete(&product).Error
	})

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// RegisterRoutes registers the public product routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/products", h.List)
}

// RegisterAdminRoutes registers the product management routes
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/products", h.Create)
	rg.GET("/products/:id", h.Get)
	rg.PUT("/products/:id", h.Update)
	rg.DELETE("/products/:id", h.Delete)
}
