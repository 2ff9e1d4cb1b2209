// Package model defines database models
package model

import "time"

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string    `gorm:"unique;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"not null;default:student" json:"role"`
	CreatedAt    time.Time `json:"created_at"`

	Student *Student `gorm:"foreignKey:UserID" json:"-"`
}
