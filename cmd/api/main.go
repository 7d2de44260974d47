package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"folio/internal/config"
	"folio/internal/handlers"
	"folio/internal/logger"
	"folio/internal/middleware"
	"folio/internal/quote"
	"folio/internal/storage"
	"folio/internal/store"
	"folio/internal/validator"

	_ "folio/internal/docs" // Import swagger docs
)

// @title           Folio API
// @version         1.0
// @description     Folio is a portfolio tracking service for stocks and cryptocurrencies: manage holdings, fetch live and historical prices, and compute aggregate performance metrics.

// @host      localhost:8080
// @BasePath  /api/v1

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Open the local snapshot store and hydrate portfolio state
	snapshots, err := storage.Open(appConfig.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open snapshot store: %w", err)
	}
	defer func() {
		if err := snapshots.Close(); err != nil {
			log.Warnf("failed to close snapshot store: %v", err)
		}
	}()

	portfolioStore := store.New(snapshots)

	// Quote providers: Finnhub for stocks, Coinbase for crypto
	httpClient := &http.Client{Timeout: appConfig.HistoryTimeout}
	quoteService := quote.NewService([]quote.Provider{
		quote.NewFinnhubProvider(httpClient, appConfig.FinnhubBaseURL, appConfig.FinnhubAPIKey),
		quote.NewCoinbaseProvider(httpClient, appConfig.CoinbaseBaseURL, appConfig.CoinbaseExchangeURL),
	}, appConfig.QuoteTimeout, appConfig.HistoryTimeout)

	// Initialize handlers
	portfolioHandler := handlers.NewPortfolioHandler(portfolioStore)
	assetHandler := handlers.NewAssetHandler(portfolioStore)
	marketHandler := handlers.NewMarketHandler(portfolioStore, quoteService)
	transferHandler := handlers.NewTransferHandler(portfolioStore)

	// Initialize Gin router
	if appConfig.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	portfolios := v1.Group("/portfolios")
	portfolios.GET("", portfolioHandler.ListPortfolios)
	portfolios.POST("", portfolioHandler.CreatePortfolio)
	portfolios.GET("/:id", portfolioHandler.GetPortfolio)
	portfolios.PUT("/:id", portfolioHandler.UpdatePortfolio)
	portfolios.DELETE("/:id", portfolioHandler.DeletePortfolio)

	portfolios.POST("/:id/assets", assetHandler.AddAsset)
	portfolios.PUT("/:id/assets/:assetId", assetHandler.UpdateAsset)
	portfolios.DELETE("/:id/assets/:assetId", assetHandler.RemoveAsset)

	portfolios.GET("/:id/quotes", marketHandler.GetQuotes)
	portfolios.GET("/:id/metrics", marketHandler.GetMetrics)
	portfolios.GET("/:id/history", marketHandler.GetHistory)

	v1.GET("/selection", portfolioHandler.GetSelection)
	v1.PUT("/selection", portfolioHandler.SetSelection)

	v1.GET("/export", transferHandler.Export)
	v1.POST("/import", transferHandler.Import)

	log.Infof("Starting server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
