package api

import (
	"net/http"

	"github.com/Ab4kshin/Unost-backend/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (a *API) PortfolioList(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	student, ok := a.studentOf(c)
	if !ok {
		return
	}

	files := make([]model.PortfolioFile, 0)
	err := a.DB.Where("student_id = ?", student.ID).Find(&files).Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list portfolio files", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, files)
}
