package groups

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Rainmakeroffire/Training-course-API/pkg/courses/membership"
	"github.com/Rainmakeroffire/Training-course-API/pkg/courses/models"
	"github.com/gin-gonic/gin"
)

// StudentResponse represents a group student in API responses
type StudentResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// AddStudentRequest represents a request to place a user in a group
type AddStudentRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

// ListStudents returns all students of a group
func (h *Handler) ListStudents(c *gin.Context) {
	groupID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	if err := h.db.First(&models.Group{}, groupID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	var enrollments []models.Enrollment
	if err := h.db.Preload("User").Where("group_id = ?", groupID).Find(&enrollments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch students"})
		return
	}

	students := make([]StudentResponse, len(enrollments))
	for i, e := range enrollments {
		students[i] = StudentResponse{
			ID:    e.User.ID,
			Email: e.User.Email,
			Name:  e.User.Name,
		}
	}

	c.JSON(http.StatusOK, students)
}

// AddStudent places a user into a group through the membership ledger, so the
// capacity check and access propagation apply
func (h *Handler) AddStudent(c *gin.Context) {
	groupID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	var req AddStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var targetUser models.User
	if err := h.db.First(&targetUser, req.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	// Check if already a student
	var existing models.Enrollment
	if err := h.db.Where("group_id = ? AND user_id = ?", groupID, req.UserID).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "User is already in this group"})
		return
	}

	if err := h.ledger.AddStudent(uint(groupID), req.UserID); err != nil {
		switch {
		case errors.Is(err, membership.ErrGroupNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		case errors.Is(err, membership.ErrCapacityExceeded):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Group is at maximum capacity"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add student"})
		}
		return
	}

	c.JSON(http.StatusCreated, StudentResponse{
		ID:    targetUser.ID,
		Email: targetUser.Email,
		Name:  targetUser.Name,
	})
}

// RemoveStudent removes a user from a group through the membership ledger,
// which also revokes their access to the owning product
func (h *Handler) RemoveStudent(c *gin.Context) {
	groupID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}
	studentID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	// Resolve membership before the ledger call so an absent student is a 404,
	// not a silent no-op
	var existing models.Enrollment
	if err := h.db.Where("group_id = ? AND user_id = ?", groupID, studentID).First(&existing).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}

	if err := h.ledger.RemoveStudent(uint(groupID), uint(studentID)); err != nil {
		if errors.Is(err, membership.ErrGroupNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove student"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Student removed"})
}

// RegisterStudentRoutes registers student management routes
func (h *Handler) RegisterStudentRoutes(rg *gin.RouterGroup) {
	rg.GET("/groups/:id/students", h.ListStudents)
	rg.POST("/groups/:id/students", h.AddStudent)
	rg.DELETE("/groups/:id/students/:userId", h.RemoveStudent)
}
