package model

// Groups are created lazily the first time a registration mentions
// their name and shared by every student referencing them
type Group struct {
	ID     uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name   string `gorm:"unique;not null" json:"name"`
	Course int    `json:"course"`
}
