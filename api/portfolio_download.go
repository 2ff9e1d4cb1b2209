package api

import (
	"errors"
	"net/http"

	"github.com/Ab4kshin/Unost-backend/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PortfolioDownload streams a file owned by the acting student. A record
// whose backing content has gone missing is reported the same way as a
// record that was never there
func (a *API) PortfolioDownload(c *gin.Context) {
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

	if !a.Storage.Exists(rec.SavedFilename) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "File not found. It either doesn't exist or you don't own it",
			"requestID": requestID,
		})

		zap.L().Warn("File record has no backing content",
			zap.Uint("fileID", rec.ID),
			zap.String("savedFilename", rec.SavedFilename),
			zap.String("requestID", requestID))
		return
	}

	c.FileAttachment(a.Storage.Path(rec.SavedFilename), rec.Filename)
}
