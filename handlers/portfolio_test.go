package handlers

import (
	"net/http"
	"testing"

	"stocks-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortfolioLifecycle(t *testing.T) {
	s := setupServer(t)
	token := s.register(t, "alice")
	s.createStock(t, "AAPL")
	s.createStock(t, "MSFT")

	w := s.do(t, http.MethodGet, "/api/portfolio", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	w = s.do(t, http.MethodPost, "/api/portfolio?symbol=AAPL", nil, token)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/portfolio?symbol=AAPL", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Cannot add same stock to portfolio")

	w = s.do(t, http.MethodGet, "/api/portfolio", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	var held []StockDto
	decode(t, w, &held)
	require.Len(t, held, 1)
	assert.Equal(t, "AAPL", held[0].Symbol)

	w = s.do(t, http.MethodDelete, "/api/portfolio?symbol=aapl", nil, token)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodDelete, "/api/portfolio?symbol=MSFT", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Stock not in your portfolio")

	var count int64
	require.NoError(t, s.db.Model(&models.Portfolio{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPortfolioUnknownSymbol(t *testing.T) {
	s := setupServer(t)
	token := s.register(t, "alice")

	w := s.do(t, http.MethodPost, "/api/portfolio?symbol=ZZZZ", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Stock not found")

	w = s.do(t, http.MethodPost, "/api/portfolio", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPortfolioIsPerUser(t *testing.T) {
	s := setupServer(t)
	alice := s.register(t, "alice")
	bob := s.register(t, "bob")
	s.createStock(t, "AAPL")

	w := s.do(t, http.MethodPost, "/api/portfolio?symbol=AAPL", nil, alice)
	require.Equal(t, http.StatusCreated, w.Code)
	w = s.do(t, http.MethodPost, "/api/portfolio?symbol=AAPL", nil, bob)
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(t, http.MethodDelete, "/api/portfolio?symbol=AAPL", nil, bob)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/portfolio", nil, alice)
	require.Equal(t, http.StatusOK, w.Code)
	var held []StockDto
	decode(t, w, &held)
	require.Len(t, held, 1)
}

func TestPortfolioRequiresToken(t *testing.T) {
	s := setupServer(t)

	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodDelete} {
		w := s.do(t, method, "/api/portfolio?symbol=AAPL", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, method)
	}

	w := s.do(t, http.MethodGet, "/api/portfolio", nil, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHealthz(t *testing.T) {
	s := setupServer(t)
	w := s.do(t, http.MethodGet, "/healthz", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}
