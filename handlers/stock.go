package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"stocks-api/database"
	"stocks-api/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type StockQuery struct {
	CompanyName  string `form:"companyName"`
	Symbol       string `form:"symbol"`
	SortBy       string `form:"sortBy"`
	IsDescending bool   `form:"isDescending"`
	PageNumber   int    `form:"pageNumber,default=1"`
	PageSize     int    `form:"pageSize,default=20"`
}

// StockInput is the body of both create and update requests.
type StockInput struct {
	Symbol      string          `json:"symbol" binding:"required,max=10"`
	CompanyName string          `json:"companyName" binding:"required,max=100"`
	Purchase    decimal.Decimal `json:"purchase"`
	LastDiv     decimal.Decimal `json:"lastDiv"`
	Industry    string          `json:"industry" binding:"max=100"`
	MarketCap   int64           `json:"marketCap" binding:"gte=0"`
}

func (in StockInput) validate() error {
	if strings.TrimSpace(in.Symbol) == "" {
		return invalidf("symbol must not be blank")
	}
	if strings.TrimSpace(in.CompanyName) == "" {
		return invalidf("companyName must not be blank")
	}
	if !in.Purchase.IsPositive() {
		return invalidf("purchase must be greater than zero")
	}
	if in.LastDiv.IsNegative() {
		return invalidf("lastDiv must not be negative")
	}
	return nil
}

func (in StockInput) toModel() models.Stock {
	return models.Stock{
		Symbol:      strings.TrimSpace(in.Symbol),
		CompanyName: strings.TrimSpace(in.CompanyName),
		Purchase:    in.Purchase,
		LastDiv:     in.LastDiv,
		Industry:    strings.TrimSpace(in.Industry),
		MarketCap:   in.MarketCap,
	}
}

type StockHandler struct {
	stocks *database.StockRepository
	log    logrus.FieldLogger
}

func NewStockHandler(stocks *database.StockRepository, log logrus.FieldLogger) *StockHandler {
	return &StockHandler{stocks: stocks, log: log}
}

func (h *StockHandler) List(c *gin.Context) {
	var q StockQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, h.log, invalid(err))
		return
	}

	stocks, err := h.stocks.List(c.Request.Context(), database.StockFilter{
		CompanyName:  q.CompanyName,
		Symbol:       q.Symbol,
		SortBy:       q.SortBy,
		IsDescending: q.IsDescending,
		PageNumber:   q.PageNumber,
		PageSize:     q.PageSize,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toStockDtos(stocks))
}

func (h *StockHandler) GetByID(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	stock, err := h.stocks.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, fmt.Errorf("stock %d: %w", id, err))
		return
	}
	c.JSON(http.StatusOK, toStockDto(*stock))
}

func (h *StockHandler) Create(c *gin.Context) {
	var input StockInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, h.log, invalid(err))
		return
	}
	if err := input.validate(); err != nil {
		respondError(c, h.log, err)
		return
	}

	stock := input.toModel()
	if err := h.stocks.Create(c.Request.Context(), &stock); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Header("Location", fmt.Sprintf("/api/stock/%d", stock.ID))
	c.JSON(http.StatusCreated, toStockDto(stock))
}

func (h *StockHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	var input StockInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, h.log, invalid(err))
		return
	}
	if err := input.validate(); err != nil {
		respondError(c, h.log, err)
		return
	}

	stock, err := h.stocks.Update(c.Request.Context(), id, input.toModel())
	if err != nil {
		respondError(c, h.log, fmt.Errorf("stock %d: %w", id, err))
		return
	}
	c.JSON(http.StatusOK, toStockDto(*stock))
}

func (h *StockHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if _, err := h.stocks.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, fmt.Errorf("stock %d: %w", id, err))
		return
	}
	c.Status(http.StatusNoContent)
}
