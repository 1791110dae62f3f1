package stats

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler handles stats requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new stats handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// GetStats returns enrollment statistics for every product
// @Summary Product statistics
// @Description Get per-product student counts, occupancy rate and purchase rate
// @Tags products
// @Produce json
// @Success 200 {array} ProductStat
// @Router /products/stats [get]
func (h *Handler) GetStats(c *gin.Context) {
	result, err := ComputeStats(h.db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// RegisterRoutes registers stats routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/products/stats", h.GetStats)
}
