package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"folio/internal/models"
)

// FinnhubProvider fetches stock quotes and daily candles from Finnhub.
type FinnhubProvider struct {
	httpClient *http.Client
	baseURL    string // overridable for tests
	apiKey     string
}

// NewFinnhubProvider creates a new Finnhub stock provider.
func NewFinnhubProvider(httpClient *http.Client, baseURL, apiKey string) *FinnhubProvider {
	return &FinnhubProvider{httpClient: httpClient, baseURL: baseURL, apiKey: apiKey}
}

// Name returns the provider's display name.
func (p *FinnhubProvider) Name() string { return "Finnhub" }

// Supports returns true for the stock asset type only.
func (p *FinnhubProvider) Supports(assetType models.AssetType) bool {
	return assetType == models.AssetTypeStock
}

// finnhubQuote is the Finnhub /quote response. Field c is the current price.
type finnhubQuote struct {
	Current *float64 `json:"c"`
}

// finnhubCandle is the Finnhub /stock/candle response: parallel arrays
// indexed by day, with s reporting "ok" or "no_data".
type finnhubCandle struct {
	Status string    `json:"s"`
	T      []int64   `json:"t"`
	O      []float64 `json:"o"`
	H      []float64 `json:"h"`
	L      []float64 `json:"l"`
	C      []float64 `json:"c"`
	V      []float64 `json:"v"`
}

// CurrentPrice fetches the current price for a stock symbol. Finnhub
// returns prices in USD.
func (p *FinnhubProvider) CurrentPrice(ctx context.Context, symbol string) (models.AssetPrice, error) {
	symbol = normalizeSymbol(symbol)

	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("token", p.apiKey)

	var quote finnhubQuote
	if err := p.getJSON(ctx, symbol, p.baseURL+"/quote?"+q.Encode(), &quote); err != nil {
		return models.AssetPrice{}, err
	}

	// Finnhub reports unknown symbols as a null or zero price, not an
	// HTTP error.
	if quote.Current == nil || *quote.Current == 0 || math.IsNaN(*quote.Current) {
		return models.AssetPrice{}, newError(KindNotFound, symbol, fmt.Errorf("no data found for symbol %s", symbol))
	}

	return models.AssetPrice{
		Symbol:    symbol,
		Price:     *quote.Current,
		Currency:  "USD",
		Timestamp: time.Now().UTC(),
	}, nil
}

// History fetches daily candles for a stock symbol in [from, to].
func (p *FinnhubProvider) History(ctx context.Context, symbol string, from, to time.Time) ([]models.HistoryPoint, error) {
	symbol = normalizeSymbol(symbol)

	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("resolution", "D")
	q.Set("from", strconv.FormatInt(from.Unix(), 10))
	q.Set("to", strconv.FormatInt(to.Unix(), 10))
	q.Set("token", p.apiKey)

	var candle finnhubCandle
	if err := p.getJSON(ctx, symbol, p.baseURL+"/stock/candle?"+q.Encode(), &candle); err != nil {
		return nil, err
	}

	if candle.Status == "no_data" {
		return nil, newError(KindNoData, symbol, fmt.Errorf("no historical data available for %s", symbol))
	}
	if candle.Status != "ok" || len(candle.T) == 0 {
		return nil, newError(KindNoData, symbol, fmt.Errorf("invalid data received for %s", symbol))
	}

	// All candle arrays must be parallel to the timestamp array.
	n := len(candle.T)
	if len(candle.O) != n || len(candle.H) != n || len(candle.L) != n || len(candle.C) != n || len(candle.V) != n {
		return nil, newError(KindNoData, symbol, fmt.Errorf("incomplete data received for %s", symbol))
	}

	points := make([]models.HistoryPoint, 0, n)
	for i := 0; i < n; i++ {
		point := models.HistoryPoint{
			Date:   time.Unix(candle.T[i], 0).UTC(),
			Open:   candle.O[i],
			High:   candle.H[i],
			Low:    candle.L[i],
			Close:  candle.C[i],
			Volume: candle.V[i],
		}
		// Drop corrupt rows rather than failing the series.
		if math.IsNaN(point.Open) || math.IsNaN(point.High) || math.IsNaN(point.Low) ||
			math.IsNaN(point.Close) || math.IsNaN(point.Volume) {
			continue
		}
		points = append(points, point)
	}

	points = dedupeSortPoints(points)
	if len(points) == 0 {
		return nil, newError(KindNoData, symbol, fmt.Errorf("no valid historical data found for %s", symbol))
	}
	return points, nil
}

// getJSON performs a GET request and decodes the JSON body into out,
// classifying HTTP and transport failures.
func (p *FinnhubProvider) getJSON(ctx context.Context, symbol, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return newError(KindNetwork, symbol, fmt.Errorf("building request: %w", err))
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return newError(KindNetwork, symbol, fmt.Errorf("http request: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return newError(KindAuthFailure, symbol, fmt.Errorf("unexpected status %d", resp.StatusCode))
	case http.StatusTooManyRequests:
		return newError(KindRateLimited, symbol, fmt.Errorf("unexpected status %d", resp.StatusCode))
	default:
		return newError(KindNetwork, symbol, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return newError(KindNetwork, symbol, fmt.Errorf("decoding response: %w", err))
	}
	return nil
}

// normalizeSymbol uppercases and trims a ticker.
func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// dedupeSortPoints sorts points ascending by date and drops duplicate days,
// keeping the first occurrence.
func dedupeSortPoints(points []models.HistoryPoint) []models.HistoryPoint {
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	out := points[:0]
	seen := ""
	for _, pt := range points {
		day := pt.Date.Format("2006-01-02")
		if day == seen {
			continue
		}
		seen = day
		out = append(out, pt)
	}
	return out
}
