package models

import (
	"github.com/shopspring/decimal"
)

type Stock struct {
	ID          uint            `gorm:"primaryKey"`
	Symbol      string          `gorm:"uniqueIndex;not null"`
	CompanyName string          `gorm:"not null"`
	Purchase    decimal.Decimal `gorm:"type:decimal(18,2)"`
	LastDiv     decimal.Decimal `gorm:"type:decimal(18,2)"`
	Industry    string
	MarketCap   int64
	Comments    []Comment `gorm:"constraint:OnDelete:CASCADE"`
}
