package api

import (
	"errors"
	"net/http"

	"github.com/Ab4kshin/Unost-backend/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PortfolioDelete removes a file record and its backing content. Content
// removal is best-effort: a record whose content already vanished still
// gets deleted. A repeated delete of the same id is a plain 404
func (a *API) PortfolioDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	student, ok := a.studentOf(c)
	if !ok {
		return
	}

	fileID := c.Param("id")
	if fileID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "No file ID provided",
			"requestID": requestID,
		})
		return
	}

	var rec model.PortfolioFile
	err := a.DB.
		Where("student_id = ? AND id = ?", student.ID, fileID).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "File not found. It either doesn't exist or you don't own it",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to look up file", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := a.Storage.Remove(rec.SavedFilename); err != nil {
		zap.L().Warn("Failed to remove stored content", zap.Error(err), zap.String("requestID", requestID))
	}

	if err := a.DB.Delete(&model.PortfolioFile{}, rec.ID).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete file record", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.Status(http.StatusOK)
}
