package api

import (
	"errors"
	"net/http"

	"github.com/Ab4kshin/Unost-backend/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// StudentProfile returns the student record owned by the acting user.
// Accounts without one (the admin) get a 404
func (a *API) StudentProfile(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(uint)

	var student model.Student
	err := a.DB.
		Preload("Group").
		Where("user_id = ?", userID).
		First(&student).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "No student profile for this account",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch profile", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	group := ""
	if student.Group != nil {
		group = student.Group.Name
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         student.ID,
		"full_name":  student.FullName,
		"birth_date": student.BirthDate.Format("2006-01-02"),
		"phone":      student.Phone,
		"group":      group,
	})
}

// studentOf resolves the acting user to their student record. Writes the
// error response itself so callers can just bail out
func (a *API) studentOf(c *gin.Context) (*model.Student, bool) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(uint)

	var student model.Student
	err := a.DB.Where("user_id = ?", userID).First(&student).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "No student profile for this account",
				"requestID": requestID,
			})
			return nil, false
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to resolve student", zap.Error(err), zap.String("requestID", requestID))
		return nil, false
	}

	return &student, true
}
