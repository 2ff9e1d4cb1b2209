package api

import (
	"net/http"
	"time"

	"github.com/Ab4kshin/Unost-backend/internal/model"
	"github.com/Ab4kshin/Unost-backend/pkg/security"
	"github.com/Ab4kshin/Unost-backend/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type registerBody struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FullName  string `json:"full_name"`
	Phone     string `json:"phone"`
	BirthDate string `json:"birth_date"`
	Group     string `json:"group"`
}

// UserRegister creates a student account. The user row, the student row
// and (if unseen) the group row are committed in one transaction so a
// failed registration leaves nothing behind
func (a *API) UserRegister(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data registerBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := validators.EmailValidator(data.Email); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	if err := validators.PasswordValidator(data.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	if data.FullName == "" || data.Phone == "" || data.Group == "" || data.BirthDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Fields full_name, phone, birth_date and group are all required",
			"requestID": requestID,
		})
		return
	}

	birthDate, err := time.Parse("2006-01-02", data.BirthDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Birth date must be a valid date in YYYY-MM-DD format",
			"requestID": requestID,
		})
		return
	}

	var found bool
	r := a.DB.Model(model.User{}).
		Select("count(*) > 0").
		Where("email = ?", data.Email).
		Find(&found)
	if r.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to check if user is registered", zap.Error(r.Error), zap.String("requestID", requestID))
		return
	}

	if found {
		c.JSON(http.StatusConflict, gin.H{
			"error":     "This email is already registered. Please login or use a different email",
			"requestID": requestID,
		})
		return
	}

	hash, err := a.Argon.GenerateFromPassword(data.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to hash password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	user := model.User{
		Email:        data.Email,
		PasswordHash: hash,
		Role:         model.RoleStudent,
	}

	err = a.DB.Transaction(func(tx *gorm.DB) error {
		var group model.Group
		if err := tx.Where("name = ?", data.Group).
			FirstOrCreate(&group, model.Group{Name: data.Group}).
			Error; err != nil {
			return err
		}

		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		student := model.Student{
			UserID:    user.ID,
			FullName:  data.FullName,
			BirthDate: birthDate,
			Phone:     data.Phone,
			GroupID:   &group.ID,
		}

		return tx.Create(&student).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	token, err := security.MakeToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to sign token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user": gin.H{
			"id":        user.ID,
			"email":     user.Email,
			"role":      user.Role,
			"full_name": data.FullName,
			"group":     data.Group,
		},
	})
}
