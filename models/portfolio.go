package models

// Portfolio links a user to a stock they hold. The composite primary key keeps
// at most one row per (user, stock) pair.
type Portfolio struct {
	UserID  string `gorm:"type:varchar(36);primaryKey"`
	StockID uint   `gorm:"primaryKey"`
	User    User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Stock   Stock  `gorm:"foreignKey:StockID;constraint:OnDelete:CASCADE"`
}
