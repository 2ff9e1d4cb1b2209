package model

import "time"

type Feedback struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"not null" json:"email"`
	Message   string    `gorm:"not null" json:"message"`
	IPAddress string    `gorm:"not null" json:"ip_address"`
	UserAgent string    `gorm:"not null" json:"user_agent"`
	CreatedAt time.Time `json:"created_at"`
}
