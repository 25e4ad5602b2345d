package database

import (
	"context"
	"fmt"
	"strings"

	"stocks-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PortfolioRepository struct {
	db *gorm.DB
}

func NewPortfolioRepository(db *gorm.DB) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

// GetUserPortfolio returns the stocks held by the user, each with its comments.
func (r *PortfolioRepository) GetUserPortfolio(ctx context.Context, userID string) ([]models.Stock, error) {
	stocks := []models.Stock{}
	err := withComments(r.db.WithContext(ctx)).
		Joins("JOIN portfolios ON portfolios.stock_id = stocks.id").
		Where("portfolios.user_id = ?", userID).
		Order("stocks.id ASC").
		Find(&stocks).Error
	if err != nil {
		return nil, fmt.Errorf("load portfolio of %s: %w", userID, err)
	}
	return stocks, nil
}

// Create inserts the holding. A second row for the same pair fails with
// ErrDuplicate.
func (r *PortfolioRepository) Create(ctx context.Context, p *models.Portfolio) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error; err != nil {
		return fmt.Errorf("create portfolio entry: %w", translate(err))
	}
	return nil
}

// Delete removes the user's holding whose symbol matches case-insensitively.
func (r *PortfolioRepository) Delete(ctx context.Context, userID, symbol string) (*models.Portfolio, error) {
	var entry models.Portfolio
	err := r.db.WithContext(ctx).
		Joins("JOIN stocks ON stocks.id = portfolios.stock_id").
		Where("portfolios.user_id = ? AND LOWER(stocks.symbol) = ?", userID, strings.ToLower(symbol)).
		First(&entry).Error
	if err != nil {
		return nil, translate(err)
	}
	err = r.db.WithContext(ctx).
		Where("user_id = ? AND stock_id = ?", entry.UserID, entry.StockID).
		Delete(&models.Portfolio{}).Error
	if err != nil {
		return nil, fmt.Errorf("delete portfolio entry: %w", err)
	}
	return &entry, nil
}
