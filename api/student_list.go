package api

import (
	"net/http"

	"github.com/Ab4kshin/Unost-backend/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type studentSummary struct {
	ID       uint   `json:"id"`
	FullName string `json:"full_name"`
	Group    string `json:"group"`
}

func (a *API) StudentList(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var students []model.Student
	err := a.DB.Preload("Group").Find(&students).Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list students", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	out := make([]studentSummary, 0, len(students))
	for _, s := range students {
		entry := studentSummary{
			ID:       s.ID,
			FullName: s.FullName,
		}
		if s.Group != nil {
			entry.Group = s.Group.Name
		}

		out = append(out, entry)
	}

	c.JSON(http.StatusOK, out)
}
