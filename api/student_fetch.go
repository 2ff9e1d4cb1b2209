package api

import (
	"errors"
	"net/http"

	"github.com/Ab4kshin/Unost-backend/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type gradeEntry struct {
	Subject string `json:"subject"`
	Grade   int    `json:"grade"`
	Date    string `json:"date"`
}

func (a *API) StudentFetch(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	studentID := c.Param("id")
	if studentID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "No student ID provided",
			"requestID": requestID,
		})
		return
	}

	var student model.Student
	err := a.DB.
		Preload("Group").
		Preload("Grades").
		Where("id = ?", studentID).
		First(&student).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "Student not found",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch student", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	grades := make([]gradeEntry, 0, len(student.Grades))
	for _, g := range student.Grades {
		grades = append(grades, gradeEntry{
			Subject: g.Subject,
			Grade:   g.Grade,
			Date:    g.Date.Format("2006-01-02"),
		})
	}

	group := ""
	if student.Group != nil {
		group = student.Group.Name
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        student.ID,
		"full_name": student.FullName,
		"group":     group,
		"grades":    grades,
	})
}
