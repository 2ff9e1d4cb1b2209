// Package db contains the database connection setup
package db

import (
	"fmt"

	"github.com/Ab4kshin/Unost-backend/internal/model"

	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func New() (*gorm.DB, error) {
	var dial gorm.Dialector

	switch driver := viper.GetString("db.driver"); driver {
	case "postgres":
		dial = postgres.Open(viper.GetString("db.dsn"))
	case "sqlite":
		dial = sqlite.Open(viper.GetString("db.dsn"))
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dial)
	if err != nil {
		return nil, fmt.Errorf("failed to open database, %w", err)
	}

	err = db.AutoMigrate(
		model.User{},
		model.Student{},
		model.Group{},
		model.Grade{},
		model.PortfolioFile{},
		model.Complaint{},
		model.Feedback{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return db, nil
}
