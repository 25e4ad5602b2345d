package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"stocks-api/models"

	"github.com/go-redis/redis/v8"
)

const defaultCacheExpiration = 5 * time.Minute

// StockCache keeps symbol lookups in Redis. A nil *StockCache is valid and
// caches nothing.
type StockCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStockCache(rdb *redis.Client, ttl time.Duration) *StockCache {
	if rdb == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = defaultCacheExpiration
	}
	return &StockCache{rdb: rdb, ttl: ttl}
}

func symbolKey(symbol string) string {
	return fmt.Sprintf("stock:symbol:%s", symbol)
}

// Get returns the cached stock, or ok=false on a miss.
func (c *StockCache) Get(ctx context.Context, symbol string) (*models.Stock, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	data, err := c.rdb.Get(ctx, symbolKey(symbol)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get %s: %w", symbol, err)
	}
	var stock models.Stock
	if err := json.Unmarshal(data, &stock); err != nil {
		return nil, false, fmt.Errorf("cache decode %s: %w", symbol, err)
	}
	return &stock, true, nil
}

func (c *StockCache) Set(ctx context.Context, stock *models.Stock) error {
	if c == nil || stock == nil {
		return nil
	}
	entry := *stock
	entry.Comments = nil
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", stock.Symbol, err)
	}
	return c.rdb.Set(ctx, symbolKey(stock.Symbol), data, c.ttl).Err()
}

func (c *StockCache) Invalidate(ctx context.Context, symbols ...string) error {
	if c == nil || len(symbols) == 0 {
		return nil
	}
	keys := make([]string, 0, len(symbols))
	for _, s := range symbols {
		keys = append(keys, symbolKey(s))
	}
	return c.rdb.Del(ctx, keys...).Err()
}
