package model

import "time"

type Complaint struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	IPAddress     string    `gorm:"not null" json:"ip_address"`
	UserAgent     string    `gorm:"not null" json:"user_agent"`
	ComplaintText string    `gorm:"not null" json:"complaint_text"`
	CreatedAt     time.Time `json:"created_at"`
}
