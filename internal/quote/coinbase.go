package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"folio/internal/models"
)

// CoinbaseProvider fetches cryptocurrency spot prices from the Coinbase
// API and daily candles from the Coinbase Exchange API. All prices are
// quoted against USD.
type CoinbaseProvider struct {
	httpClient  *http.Client
	baseURL     string // spot price API, overridable for tests
	exchangeURL string // candle API, overridable for tests
}

// NewCoinbaseProvider creates a new Coinbase crypto provider.
func NewCoinbaseProvider(httpClient *http.Client, baseURL, exchangeURL string) *CoinbaseProvider {
	return &CoinbaseProvider{httpClient: httpClient, baseURL: baseURL, exchangeURL: exchangeURL}
}

// Name returns the provider's display name.
func (p *CoinbaseProvider) Name() string { return "Coinbase" }

// Supports returns true for the crypto asset type only.
func (p *CoinbaseProvider) Supports(assetType models.AssetType) bool {
	return assetType == models.AssetTypeCrypto
}

// coinbaseSpot is the Coinbase /prices/{pair}/spot response.
type coinbaseSpot struct {
	Data struct {
		Amount   string `json:"amount"`
		Currency string `json:"currency"`
	} `json:"data"`
}

// CurrentPrice fetches the current USD spot price for a coin symbol.
func (p *CoinbaseProvider) CurrentPrice(ctx context.Context, symbol string) (models.AssetPrice, error) {
	symbol = normalizeSymbol(symbol)
	pair := symbol + "-USD"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		p.baseURL+"/prices/"+url.PathEscape(pair)+"/spot", nil)
	if err != nil {
		return models.AssetPrice{}, newError(KindNetwork, symbol, fmt.Errorf("building request: %w", err))
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return models.AssetPrice{}, newError(KindNetwork, symbol, fmt.Errorf("http request: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	if err := classifyStatus(resp.StatusCode, symbol); err != nil {
		return models.AssetPrice{}, err
	}

	var spot coinbaseSpot
	if err := json.NewDecoder(resp.Body).Decode(&spot); err != nil {
		return models.AssetPrice{}, newError(KindNetwork, symbol, fmt.Errorf("decoding response: %w", err))
	}
	if spot.Data.Amount == "" {
		return models.AssetPrice{}, newError(KindNotFound, symbol, fmt.Errorf("no data found for crypto %s", symbol))
	}

	price, err := strconv.ParseFloat(spot.Data.Amount, 64)
	if err != nil {
		return models.AssetPrice{}, newError(KindNetwork, symbol, fmt.Errorf("parsing price %q: %w", spot.Data.Amount, err))
	}

	return models.AssetPrice{
		Symbol:    symbol,
		Price:     price,
		Currency:  "USD",
		Timestamp: time.Now().UTC(),
	}, nil
}

// History fetches daily candles for a coin in [from, to]. The exchange API
// returns rows of [time, low, high, open, close, volume], newest first.
func (p *CoinbaseProvider) History(ctx context.Context, symbol string, from, to time.Time) ([]models.HistoryPoint, error) {
	symbol = normalizeSymbol(symbol)
	pair := symbol + "-USD"

	q := url.Values{}
	q.Set("granularity", "86400")
	q.Set("start", from.UTC().Format(time.RFC3339))
	q.Set("end", to.UTC().Format(time.RFC3339))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		p.exchangeURL+"/products/"+url.PathEscape(pair)+"/candles?"+q.Encode(), nil)
	if err != nil {
		return nil, newError(KindNetwork, symbol, fmt.Errorf("building request: %w", err))
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, newError(KindNetwork, symbol, fmt.Errorf("http request: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	if err := classifyStatus(resp.StatusCode, symbol); err != nil {
		return nil, err
	}

	var rows [][]float64
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, newError(KindNetwork, symbol, fmt.Errorf("decoding response: %w", err))
	}

	points := make([]models.HistoryPoint, 0, len(rows))
	for _, row := range rows {
		if len(row) < 6 {
			continue
		}
		points = append(points, models.HistoryPoint{
			Date:   time.Unix(int64(row[0]), 0).UTC(),
			Low:    row[1],
			High:   row[2],
			Open:   row[3],
			Close:  row[4],
			Volume: row[5],
		})
	}

	points = dedupeSortPoints(points)
	if len(points) == 0 {
		return nil, newError(KindNoData, symbol, fmt.Errorf("no historical data available for %s", symbol))
	}
	return points, nil
}

// classifyStatus maps HTTP status codes to provider error kinds.
// 404 means the trading pair does not exist.
func classifyStatus(status int, symbol string) error {
	switch status {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return newError(KindNotFound, symbol, fmt.Errorf("cryptocurrency %s not found", symbol))
	case http.StatusUnauthorized, http.StatusForbidden:
		return newError(KindAuthFailure, symbol, fmt.Errorf("unexpected status %d", status))
	case http.StatusTooManyRequests:
		return newError(KindRateLimited, symbol, fmt.Errorf("unexpected status %d", status))
	default:
		return newError(KindNetwork, symbol, fmt.Errorf("unexpected status %d", status))
	}
}
