package handlers

import (
	"net/http"

	"stocks-api/auth"
	"stocks-api/database"
	"stocks-api/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Deps struct {
	DB          *gorm.DB
	Cache       *database.StockCache
	Tokens      *auth.TokenService
	Log         logrus.FieldLogger
	Metrics     *middleware.Metrics
	MaxPageSize int
}

// NewRouter wires repositories and handlers onto a fresh gin engine.
func NewRouter(d Deps) *gin.Engine {
	users := database.NewUserRepository(d.DB)
	stocks := database.NewStockRepository(d.DB, d.Cache, d.Log, d.MaxPageSize)
	comments := database.NewCommentRepository(d.DB)
	portfolios := database.NewPortfolioRepository(d.DB)

	account := NewAccountHandler(users, d.Tokens, d.Log)
	stock := NewStockHandler(stocks, d.Log)
	comment := NewCommentHandler(comments, stocks, users, d.Log)
	portfolio := NewPortfolioHandler(portfolios, stocks, users, d.Log)

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(d.Log))
	if d.Metrics != nil {
		router.Use(d.Metrics.Instrument())
		router.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}
	router.GET("/healthz", health(d.DB))

	requireAuth := middleware.JWTAuth(d.Tokens)
	api := router.Group("/api")
	{
		api.POST("/account/register", account.Register)
		api.POST("/account/login", account.Login)

		api.GET("/stock", stock.List)
		api.GET("/stock/:id", stock.GetByID)
		api.POST("/stock", stock.Create)
		api.PUT("/stock/:id", stock.Update)
		api.DELETE("/stock/:id", stock.Delete)

		api.GET("/comment", comment.List)
		api.GET("/comment/:id", comment.GetByID)
		api.POST("/comment/:stockId", requireAuth, comment.Create)
		api.PUT("/comment/:id", comment.Update)
		api.DELETE("/comment/:id", comment.Delete)
	}

	portfolioRoutes := api.Group("/portfolio")
	portfolioRoutes.Use(requireAuth)
	{
		portfolioRoutes.GET("", portfolio.GetPortfolio)
		portfolioRoutes.POST("", portfolio.AddStock)
		portfolioRoutes.DELETE("", portfolio.DeleteStock)
	}

	return router
}

func health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
