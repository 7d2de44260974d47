package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "folio/internal/errors"
	"folio/internal/history"
	"folio/internal/metrics"
	"folio/internal/models"
	"folio/internal/quote"
	"folio/internal/store"
)

// MarketHandler serves live quotes, performance metrics, and the historical
// return curve for a portfolio.
type MarketHandler struct {
	store  *store.Store
	quotes *quote.Service
}

// NewMarketHandler creates a new MarketHandler.
func NewMarketHandler(s *store.Store, quotes *quote.Service) *MarketHandler {
	return &MarketHandler{store: s, quotes: quotes}
}

// QuotesResponse carries per-symbol prices and per-symbol failure messages.
// One symbol's failure never fails the whole response.
type QuotesResponse struct {
	Prices map[string]models.AssetPrice `json:"prices"`
	Errors map[string]string            `json:"errors,omitempty"`
}

// MetricsResponse is the computed metrics plus the prices they were
// computed from.
type MetricsResponse struct {
	Metrics models.Metrics               `json:"metrics"`
	Prices  map[string]models.AssetPrice `json:"prices"`
	Errors  map[string]string            `json:"errors,omitempty"`
}

// HistoryResponse is the aggregated portfolio return curve.
type HistoryResponse struct {
	Range  string                    `json:"range"`
	Points []models.PerformancePoint `json:"points"`
}

// timeRanges maps the supported chart ranges to their lookback windows.
// ALL looks back five years.
var timeRanges = map[string]func(time.Time) time.Time{
	"1M":  func(now time.Time) time.Time { return now.AddDate(0, -1, 0) },
	"3M":  func(now time.Time) time.Time { return now.AddDate(0, -3, 0) },
	"6M":  func(now time.Time) time.Time { return now.AddDate(0, -6, 0) },
	"1Y":  func(now time.Time) time.Time { return now.AddDate(-1, 0, 0) },
	"ALL": func(now time.Time) time.Time { return now.AddDate(-5, 0, 0) },
}

// fetchPrices fans out one current-price lookup per asset and joins the
// settled results. Failed symbols land in the errors map instead of
// aborting the rest.
func (h *MarketHandler) fetchPrices(ctx context.Context, assets []models.Asset) (map[string]models.AssetPrice, map[string]string) {
	prices := make(map[string]models.AssetPrice, len(assets))
	failures := make(map[string]string)

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, asset := range assets {
		wg.Add(1)
		go func(asset models.Asset) {
			defer wg.Done()
			price, err := h.quotes.CurrentPrice(ctx, asset.Type, asset.Symbol)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures[asset.Symbol] = providerAppError(err).Message
				return
			}
			prices[asset.Symbol] = price
		}(asset)
	}
	wg.Wait()

	return prices, failures
}

// GetQuotes returns current prices for every asset in a portfolio.
// @Summary     Get quotes
// @Description Fetch current prices for all assets; failed symbols are reported inline
// @Tags        market
// @Produce     json
// @Param       id path string true "Portfolio ID"
// @Success     200 {object} QuotesResponse
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Router      /portfolios/{id}/quotes [get]
func (h *MarketHandler) GetQuotes(c *gin.Context) {
	portfolio, ok := h.store.Portfolio(c.Param("id"))
	if !ok {
		respondWithError(c, apperrors.ErrPortfolioNotFound)
		return
	}

	// An empty portfolio never triggers a provider request.
	if len(portfolio.Assets) == 0 {
		c.JSON(http.StatusOK, QuotesResponse{Prices: map[string]models.AssetPrice{}})
		return
	}

	prices, failures := h.fetchPrices(c.Request.Context(), portfolio.Assets)
	c.JSON(http.StatusOK, QuotesResponse{Prices: prices, Errors: failures})
}

// GetMetrics computes aggregate performance metrics over live quotes.
// @Summary     Get metrics
// @Description Compute current value, cost basis, and simple and annualized return
// @Tags        market
// @Produce     json
// @Param       id path string true "Portfolio ID"
// @Success     200 {object} MetricsResponse
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Router      /portfolios/{id}/metrics [get]
func (h *MarketHandler) GetMetrics(c *gin.Context) {
	portfolio, ok := h.store.Portfolio(c.Param("id"))
	if !ok {
		respondWithError(c, apperrors.ErrPortfolioNotFound)
		return
	}

	if len(portfolio.Assets) == 0 {
		c.JSON(http.StatusOK, MetricsResponse{
			Metrics: models.Metrics{},
			Prices:  map[string]models.AssetPrice{},
		})
		return
	}

	prices, failures := h.fetchPrices(c.Request.Context(), portfolio.Assets)

	priceBySymbol := make(map[string]float64, len(prices))
	for symbol, price := range prices {
		priceBySymbol[symbol] = price.Price
	}

	c.JSON(http.StatusOK, MetricsResponse{
		Metrics: metrics.Compute(portfolio.Assets, priceBySymbol),
		Prices:  prices,
		Errors:  failures,
	})
}

// GetHistory returns the aggregated historical return curve.
// @Summary     Get history
// @Description Aggregate per-asset daily series into one portfolio return curve
// @Tags        market
// @Produce     json
// @Param       id path string true "Portfolio ID"
// @Param       range query string false "Time range: 1M, 3M, 6M, 1Y, ALL" default(6M)
// @Success     200 {object} HistoryResponse
// @Failure     400 {object} ErrorResponse "Invalid range"
// @Failure     404 {object} ErrorResponse "Portfolio not found or no data"
// @Router      /portfolios/{id}/history [get]
func (h *MarketHandler) GetHistory(c *gin.Context) {
	portfolio, ok := h.store.Portfolio(c.Param("id"))
	if !ok {
		respondWithError(c, apperrors.ErrPortfolioNotFound)
		return
	}

	rangeKey := c.DefaultQuery("range", "6M")
	lookback, ok := timeRanges[rangeKey]
	if !ok {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "range must be one of 1M, 3M, 6M, 1Y, ALL"))
		return
	}

	if len(portfolio.Assets) == 0 {
		c.JSON(http.StatusOK, HistoryResponse{Range: rangeKey, Points: []models.PerformancePoint{}})
		return
	}

	now := time.Now().UTC()
	from := startOfDay(lookback(now))

	points, err := history.Aggregate(c.Request.Context(), portfolio.Assets, from, h.quotes)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, HistoryResponse{Range: rangeKey, Points: points})
}

// startOfDay truncates t to midnight UTC.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
