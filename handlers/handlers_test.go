package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"stocks-api/auth"
	"stocks-api/config"
	"stocks-api/database"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testPassword = "Str0ng#Password!"

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
	tokens *auth.TokenService
}

// setupServer builds the full router over a fresh SQLite database.
func setupServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, _ := test.NewNullLogger()

	cfg := config.Load()
	cfg.DBDriver = "sqlite"
	cfg.DBPath = filepath.Join(t.TempDir(), "test.db")
	db, err := config.InitDB(cfg, log)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	tokens, err := auth.NewTokenService(auth.TokenOptions{
		Secret:   "handlers-test-key",
		Issuer:   "stocks-api",
		Audience: "stocks-api",
		TTL:      time.Hour,
	})
	require.NoError(t, err)

	router := NewRouter(Deps{
		DB:          db,
		Tokens:      tokens,
		Log:         log,
		MaxPageSize: 100,
	})
	return &testServer{router: router, db: db, tokens: tokens}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

// register creates an account and returns its bearer token.
func (s *testServer) register(t *testing.T, username string) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/account/register", RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: testPassword,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var out NewUserDto
	decode(t, w, &out)
	require.NotEmpty(t, out.Token)
	return out.Token
}

func (s *testServer) createStock(t *testing.T, symbol string) StockDto {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/stock", map[string]interface{}{
		"symbol":      symbol,
		"companyName": symbol + " Corp",
		"purchase":    100.5,
		"lastDiv":     1.2,
		"industry":    "Tech",
		"marketCap":   1000000,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var out StockDto
	decode(t, w, &out)
	return out
}
