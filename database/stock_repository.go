package database

import (
	"context"
	"fmt"

	"stocks-api/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StockRepository struct {
	db          *gorm.DB
	cache       *StockCache
	log         logrus.FieldLogger
	maxPageSize int
}

func NewStockRepository(db *gorm.DB, cache *StockCache, log logrus.FieldLogger, maxPageSize int) *StockRepository {
	return &StockRepository{db: db, cache: cache, log: log, maxPageSize: maxPageSize}
}

// withComments preloads each stock's comments together with their authors.
func withComments(q *gorm.DB) *gorm.DB {
	return q.Preload("Comments", func(db *gorm.DB) *gorm.DB {
		return db.Order("comments.id ASC")
	}).Preload("Comments.User")
}

func (r *StockRepository) List(ctx context.Context, f StockFilter) ([]models.Stock, error) {
	plan := BuildStockQuery(f, r.maxPageSize)
	stocks := []models.Stock{}
	if plan.Empty {
		return stocks, nil
	}
	if err := plan.Apply(withComments(r.db.WithContext(ctx))).Find(&stocks).Error; err != nil {
		return nil, fmt.Errorf("list stocks: %w", err)
	}
	return stocks, nil
}

func (r *StockRepository) GetByID(ctx context.Context, id uint) (*models.Stock, error) {
	var stock models.Stock
	if err := withComments(r.db.WithContext(ctx)).First(&stock, id).Error; err != nil {
		return nil, translate(err)
	}
	return &stock, nil
}

// GetBySymbol matches the symbol exactly, case included.
func (r *StockRepository) GetBySymbol(ctx context.Context, symbol string) (*models.Stock, error) {
	if cached, ok, err := r.cache.Get(ctx, symbol); err != nil {
		r.log.WithError(err).Warn("stock cache read failed")
	} else if ok {
		return cached, nil
	}

	var stock models.Stock
	if err := r.db.WithContext(ctx).Where("symbol = ?", symbol).First(&stock).Error; err != nil {
		return nil, translate(err)
	}
	if err := r.cache.Set(ctx, &stock); err != nil {
		r.log.WithError(err).Warn("stock cache write failed")
	}
	return &stock, nil
}

func (r *StockRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Stock{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check stock %d: %w", id, err)
	}
	return count > 0, nil
}

func (r *StockRepository) Create(ctx context.Context, stock *models.Stock) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(stock).Error; err != nil {
		return fmt.Errorf("create stock: %w", translate(err))
	}
	return nil
}

// Update overwrites every editable field of the stock with the given id.
func (r *StockRepository) Update(ctx context.Context, id uint, fields models.Stock) (*models.Stock, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oldSymbol := existing.Symbol

	existing.Symbol = fields.Symbol
	existing.CompanyName = fields.CompanyName
	existing.Purchase = fields.Purchase
	existing.LastDiv = fields.LastDiv
	existing.Industry = fields.Industry
	existing.MarketCap = fields.MarketCap

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(existing).Error; err != nil {
		return nil, fmt.Errorf("update stock %d: %w", id, translate(err))
	}
	r.invalidate(ctx, oldSymbol, existing.Symbol)
	return existing, nil
}

// Delete removes the stock and returns it as it was before deletion.
func (r *StockRepository) Delete(ctx context.Context, id uint) (*models.Stock, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Select(clause.Associations).Delete(existing).Error; err != nil {
		return nil, fmt.Errorf("delete stock %d: %w", id, err)
	}
	r.invalidate(ctx, existing.Symbol)
	return existing, nil
}

func (r *StockRepository) invalidate(ctx context.Context, symbols ...string) {
	if err := r.cache.Invalidate(ctx, symbols...); err != nil {
		r.log.WithError(err).Warn("stock cache invalidation failed")
	}
}
