package models

import "time"

type Comment struct {
	ID        uint   `gorm:"primaryKey"`
	Title     string `gorm:"not null"`
	Content   string `gorm:"not null"`
	CreatedOn time.Time
	StockID   uint   `gorm:"index;not null"`
	UserID    string `gorm:"type:varchar(36);index"`
	User      User   `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
}
