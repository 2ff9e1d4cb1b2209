package api

import (
	"github.com/Ab4kshin/Unost-backend/internal/model"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// ensureAdmin creates the configured admin account unless it already
// exists. Ran on startup when the --create-admin flag is set
func (a *API) ensureAdmin() error {
	email := viper.GetString("admin.email")

	var found bool
	err := a.DB.Model(model.User{}).
		Select("count(*) > 0").
		Where("email = ?", email).
		Find(&found).
		Error
	if err != nil {
		return err
	}

	if found {
		return nil
	}

	hash, err := a.Argon.GenerateFromPassword(viper.GetString("admin.password"))
	if err != nil {
		return err
	}

	err = a.DB.Create(&model.User{
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}).Error
	if err != nil {
		return err
	}

	zap.L().Info("Created admin account", zap.String("email", email))
	return nil
}
