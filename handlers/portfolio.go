package handlers

import (
	"errors"
	"net/http"
	"strings"

	"stocks-api/database"
	"stocks-api/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type PortfolioHandler struct {
	portfolios *database.PortfolioRepository
	stocks     *database.StockRepository
	users      *database.UserRepository
	log        logrus.FieldLogger
}

func NewPortfolioHandler(portfolios *database.PortfolioRepository, stocks *database.StockRepository, users *database.UserRepository, log logrus.FieldLogger) *PortfolioHandler {
	return &PortfolioHandler{portfolios: portfolios, stocks: stocks, users: users, log: log}
}

func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	user, err := currentUser(c, h.users)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	stocks, err := h.portfolios.GetUserPortfolio(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toStockDtos(stocks))
}

func (h *PortfolioHandler) AddStock(c *gin.Context) {
	symbol := strings.TrimSpace(c.Query("symbol"))
	if symbol == "" {
		respondError(c, h.log, invalidf("symbol is required"))
		return
	}
	user, err := currentUser(c, h.users)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	ctx := c.Request.Context()
	stock, err := h.stocks.GetBySymbol(ctx, symbol)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Stock not found"})
		return
	}
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	held, err := h.portfolios.GetUserPortfolio(ctx, user.ID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if len(matchSymbol(held, symbol)) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot add same stock to portfolio"})
		return
	}

	entry := models.Portfolio{UserID: user.ID, StockID: stock.ID}
	err = h.portfolios.Create(ctx, &entry)
	if errors.Is(err, database.ErrDuplicate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot add same stock to portfolio"})
		return
	}
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusCreated)
}

func (h *PortfolioHandler) DeleteStock(c *gin.Context) {
	symbol := strings.TrimSpace(c.Query("symbol"))
	if symbol == "" {
		respondError(c, h.log, invalidf("symbol is required"))
		return
	}
	user, err := currentUser(c, h.users)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	ctx := c.Request.Context()
	held, err := h.portfolios.GetUserPortfolio(ctx, user.ID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if len(matchSymbol(held, symbol)) != 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Stock not in your portfolio"})
		return
	}

	if _, err := h.portfolios.Delete(ctx, user.ID, symbol); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Stock not in your portfolio"})
			return
		}
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusOK)
}

func matchSymbol(stocks []models.Stock, symbol string) []models.Stock {
	var out []models.Stock
	for _, s := range stocks {
		if strings.EqualFold(s.Symbol, symbol) {
			out = append(out, s)
		}
	}
	return out
}
