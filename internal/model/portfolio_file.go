package model

import "time"

type PortfolioFile struct {
	ID        uint `gorm:"primaryKey;autoIncrement;index" json:"id"`
	StudentID uint `gorm:"not null;index" json:"-"`

	// Original file name, kept for display and as the download name
	Filename string `gorm:"not null" json:"filename"`

	// Server-generated name the content is stored under. Avoids
	// collisions between students uploading identically named files
	SavedFilename string `gorm:"not null" json:"saved_filename"`

	FileSize   int64     `gorm:"not null" json:"size"`
	UploadedAt time.Time `json:"uploaded_at"`
}
