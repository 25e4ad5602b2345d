package handlers

import (
	"time"

	"stocks-api/models"

	"github.com/shopspring/decimal"
)

// Money fields go over the wire as JSON numbers.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

type StockDto struct {
	ID          uint            `json:"id"`
	Symbol      string          `json:"symbol"`
	CompanyName string          `json:"companyName"`
	Purchase    decimal.Decimal `json:"purchase"`
	LastDiv     decimal.Decimal `json:"lastDiv"`
	Industry    string          `json:"industry"`
	MarketCap   int64           `json:"marketCap"`
	Comments    []CommentDto    `json:"comments"`
}

type CommentDto struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedOn time.Time `json:"createdOn"`
	CreatedBy string    `json:"createdBy"`
	StockID   uint      `json:"stockId"`
}

type NewUserDto struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Token    string `json:"token"`
}

func toStockDto(s models.Stock) StockDto {
	comments := make([]CommentDto, 0, len(s.Comments))
	for _, c := range s.Comments {
		comments = append(comments, toCommentDto(c))
	}
	return StockDto{
		ID:          s.ID,
		Symbol:      s.Symbol,
		CompanyName: s.CompanyName,
		Purchase:    s.Purchase,
		LastDiv:     s.LastDiv,
		Industry:    s.Industry,
		MarketCap:   s.MarketCap,
		Comments:    comments,
	}
}

func toStockDtos(stocks []models.Stock) []StockDto {
	out := make([]StockDto, 0, len(stocks))
	for _, s := range stocks {
		out = append(out, toStockDto(s))
	}
	return out
}

func toCommentDto(c models.Comment) CommentDto {
	return CommentDto{
		ID:        c.ID,
		Title:     c.Title,
		Content:   c.Content,
		CreatedOn: c.CreatedOn,
		CreatedBy: c.User.Username,
		StockID:   c.StockID,
	}
}
