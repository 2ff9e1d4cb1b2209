package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/Ab4kshin/Unost-backend/internal/model"
	"github.com/Ab4kshin/Unost-backend/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type feedbackBody struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (a *API) FeedbackCreate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data feedbackBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	if strings.TrimSpace(data.Name) == "" || strings.TrimSpace(data.Message) == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Name and message fields can't be empty",
			"requestID": requestID,
		})
		return
	}

	if err := validators.EmailValidator(data.Email); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	rec := model.Feedback{
		Name:      data.Name,
		Email:     data.Email,
		Message:   data.Message,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		CreatedAt: time.Now(),
	}

	if err := a.DB.Create(&rec).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to save feedback", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, rec)
}

func (a *API) FeedbackList(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	feedback := make([]model.Feedback, 0)
	err := a.DB.Order("created_at desc").Find(&feedback).Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list feedback", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, feedback)
}

func (a *API) FeedbackStats(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	total, week, err := rollingCounts(a, model.Feedback{})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to count feedback", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":       total,
		"last_7_days": week,
	})
}
