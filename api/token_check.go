package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// TokenCheck reports the identity a bearer token resolves to. The JWT
// middleware has already done the heavy lifting by the time this runs
func (a *API) TokenCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"user_id": c.MustGet("userID").(uint),
	})
}
