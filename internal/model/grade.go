package model

import "time"

type Grade struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	StudentID uint      `gorm:"not null;index" json:"-"`
	Subject   string    `gorm:"not null" json:"subject"`
	Grade     int       `json:"grade"`
	Date      time.Time `json:"date"`
}
