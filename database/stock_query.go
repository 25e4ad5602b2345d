package database

import (
	"math"
	"strings"

	"gorm.io/gorm"
)

const (
	DefaultPageSize = 20
	sortBySymbol    = "symbol"
)

// StockFilter is the caller-supplied listing request.
type StockFilter struct {
	CompanyName  string
	Symbol       string
	SortBy       string
	IsDescending bool
	PageNumber   int
	PageSize     int
}

type condition struct {
	Clause string
	Args   []interface{}
}

// StockQueryPlan is a bounded, parameterized listing query. Empty marks a page
// that lies past any addressable row.
type StockQueryPlan struct {
	Conditions []condition
	OrderBy    string
	Offset     int
	Limit      int
	Empty      bool
}

// BuildStockQuery turns a filter into a query plan. Page numbers below one are
// treated as the first page and page sizes are clamped to [1, maxPageSize].
func BuildStockQuery(f StockFilter, maxPageSize int) StockQueryPlan {
	var plan StockQueryPlan

	if s := strings.TrimSpace(f.CompanyName); s != "" {
		plan.Conditions = append(plan.Conditions, condition{
			Clause: `LOWER(company_name) LIKE ? ESCAPE '\'`,
			Args:   []interface{}{containsPattern(s)},
		})
	}
	if s := strings.TrimSpace(f.Symbol); s != "" {
		plan.Conditions = append(plan.Conditions, condition{
			Clause: `LOWER(symbol) LIKE ? ESCAPE '\'`,
			Args:   []interface{}{containsPattern(s)},
		})
	}

	plan.OrderBy = "id ASC"
	if strings.EqualFold(strings.TrimSpace(f.SortBy), sortBySymbol) {
		if f.IsDescending {
			plan.OrderBy = "symbol DESC"
		} else {
			plan.OrderBy = "symbol ASC"
		}
	}

	if maxPageSize <= 0 {
		maxPageSize = DefaultPageSize
	}
	page := f.PageNumber
	if page < 1 {
		page = 1
	}
	size := f.PageSize
	switch {
	case size < 1:
		size = DefaultPageSize
	case size > maxPageSize:
		size = maxPageSize
	}

	plan.Limit = size
	if page-1 > math.MaxInt/size {
		plan.Empty = true
		return plan
	}
	plan.Offset = (page - 1) * size
	return plan
}

// Apply adds the plan's clauses to the given query.
func (p StockQueryPlan) Apply(q *gorm.DB) *gorm.DB {
	for _, c := range p.Conditions {
		q = q.Where(c.Clause, c.Args...)
	}
	return q.Order(p.OrderBy).Offset(p.Offset).Limit(p.Limit)
}

func containsPattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(s)) + "%"
}
