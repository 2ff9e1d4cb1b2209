package model

import "time"

type Student struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex" json:"-"`
	FullName  string    `gorm:"not null" json:"full_name"`
	BirthDate time.Time `json:"birth_date"`
	Phone     string    `json:"phone"`
	GroupID   *uint     `json:"-"`

	Group          *Group          `gorm:"foreignKey:GroupID" json:"-"`
	Grades         []Grade         `gorm:"foreignKey:StudentID" json:"-"`
	PortfolioFiles []PortfolioFile `gorm:"foreignKey:StudentID" json:"-"`
}
