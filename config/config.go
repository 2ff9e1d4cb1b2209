// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
)

var (
	createAdmin    = pflag.Bool("create-admin", false, "Creates the bootstrap admin account on startup")
	validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}
	validDrivers   = []string{"sqlite", "postgres"}
)

func genSecret() string {
	b := make([]byte, 64)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() error {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "app_log_level")

	v.BindEnv("host.port", "host_port")

	v.BindEnv("db.driver", "db_driver")
	v.BindEnv("db.dsn", "db_dsn")

	v.BindEnv("jwt.secret", "jwt_secret")
	v.BindEnv("jwt.ttl_hours", "jwt_ttl_hours")

	v.BindEnv("storage.path", "storage_path")

	v.BindEnv("upload.max_size", "upload_max_size")

	v.BindEnv("cors.origins", "cors_origins")

	v.BindEnv("admin.email", "admin_email")
	v.BindEnv("admin.password", "admin_password")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 8080)

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "unost.db")

	v.SetDefault("jwt.ttl_hours", 720)

	v.SetDefault("storage.path", "uploads/portfolio")

	v.SetDefault("upload.max_size", 10)

	v.SetDefault("cors.origins", []string{"http://localhost:5173"})

	v.SetDefault("admin.email", "admin@college.ru")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(v.ConfigFileNotFoundError); ok {
			return errors.New("config.toml file is missing")
		}

		return fmt.Errorf("failed to read config file, %w", err)
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	if !slices.Contains(validDrivers, v.GetString("db.driver")) {
		return errors.New("invalid database driver provided")
	}

	if v.GetString("db.dsn") == "" {
		return errors.New("database DSN can't be empty")
	}

	if v.GetString("jwt.secret") == "" {
		fmt.Println("WARNING: You haven't set a JWT secret, so it has been generated for you. Please set it as an environment variable or in the config.toml file.\nYour random JWT secret:\n\n" + genSecret() + "\n\nPaste it into your config.toml file.")
		os.Exit(0)
	}

	if v.GetInt("jwt.ttl_hours") <= 0 {
		return errors.New("jwt.ttl_hours must be bigger than 0")
	}

	if v.GetString("storage.path") == "" {
		return errors.New("storage path can't be empty")
	}

	if v.GetInt("upload.max_size") <= 0 {
		return errors.New("max upload size must be bigger than 0")
	}

	if *createAdmin && v.GetString("admin.password") == "" {
		return errors.New("admin.password must be set to create the admin account")
	}

	// Configured in MiB, used in bytes everywhere else
	v.Set("upload.max_size", v.GetInt64("upload.max_size")<<20)
	return nil
}
