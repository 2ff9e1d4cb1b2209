package api

import (
	"errors"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/Ab4kshin/Unost-backend/internal/model"
	"github.com/Ab4kshin/Unost-backend/validators"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PortfolioUpload stores an uploaded document under a generated name and
// records it for the acting student. Content is written to disk first;
// if the record insert then fails the content is removed again
func (a *API) PortfolioUpload(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	student, ok := a.studentOf(c)
	if !ok {
		return
	}

	if !strings.HasPrefix(c.Request.Header.Get("Content-Type"), "multipart/form-data") {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request",
			"requestID": requestID,
		})
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     validators.ErrNoFile.Error(),
			"requestID": requestID,
		})
		return
	}

	code, f, err := validators.PortfolioFileValidator(fh)
	if err != nil {
		if code == http.StatusInternalServerError {
			zap.L().Error("Failed to validate file", zap.Error(err), zap.String("requestID", requestID))

			// That's to set the error into a general one for the users
			err = errors.New("internal server error")
		}

		c.AbortWithStatusJSON(code, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}
	defer f.Close()

	savedName := uuid.NewString() + strings.ToLower(path.Ext(fh.Filename))

	size, err := a.Storage.Save(savedName, f)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to store file content", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	rec := model.PortfolioFile{
		StudentID:     student.ID,
		Filename:      fh.Filename,
		SavedFilename: savedName,
		FileSize:      size,
		UploadedAt:    time.Now(),
	}

	if err := a.DB.Create(&rec).Error; err != nil {
		if rmErr := a.Storage.Remove(savedName); rmErr != nil {
			zap.L().Warn("Failed to clean up stored content", zap.Error(rmErr), zap.String("requestID", requestID))
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to save file record to db", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, rec)
}
