package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/Ab4kshin/Unost-backend/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type complaintBody struct {
	Text string `json:"text"`
}

// ComplaintCreate files an anonymous complaint. The submitter's address
// and user agent are kept so abuse can be traced later
func (a *API) ComplaintCreate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data complaintBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	if strings.TrimSpace(data.Text) == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Complaint text can't be empty",
			"requestID": requestID,
		})
		return
	}

	rec := model.Complaint{
		IPAddress:     c.ClientIP(),
		UserAgent:     c.Request.UserAgent(),
		ComplaintText: data.Text,
		CreatedAt:     time.Now(),
	}

	if err := a.DB.Create(&rec).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to save complaint", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, rec)
}

func (a *API) ComplaintList(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	complaints := make([]model.Complaint, 0)
	err := a.DB.Order("created_at desc").Find(&complaints).Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list complaints", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, complaints)
}

func (a *API) ComplaintStats(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	total, week, err := rollingCounts(a, model.Complaint{})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to count complaints", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":       total,
		"last_7_days": week,
	})
}

// rollingCounts returns the all-time row count and the count over the
// trailing seven days for the given model
func rollingCounts(a *API, m any) (total, week int64, err error) {
	if err = a.DB.Model(m).Count(&total).Error; err != nil {
		return 0, 0, err
	}

	err = a.DB.Model(m).
		Where("created_at >= ?", time.Now().AddDate(0, 0, -7)).
		Count(&week).
		Error
	if err != nil {
		return 0, 0, err
	}

	return total, week, nil
}
