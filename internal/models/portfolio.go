package models

import "time"

// AssetType distinguishes which quote provider serves an asset.
type AssetType string

const (
	AssetTypeStock  AssetType = "stock"
	AssetTypeCrypto AssetType = "crypto"
)

// Valid reports whether t is a known asset type.
func (t AssetType) Valid() bool {
	return t == AssetTypeStock || t == AssetTypeCrypto
}

// Asset represents a single holding inside a portfolio.
// JSON field names match the versioned export format, so exported files
// round-trip byte-compatible with the documented envelope.
type Asset struct {
	ID           string    `json:"id"`
	Symbol       string    `json:"symbol"`
	Name         string    `json:"name"`
	Quantity     float64   `json:"quantity"`
	CostBasis    float64   `json:"costBasis"`
	PurchaseDate string    `json:"purchaseDate"` // calendar date, YYYY-MM-DD
	Currency     string    `json:"currency"`
	Type         AssetType `json:"type"`
}

// Portfolio is a named, user-owned collection of assets.
// Assets keep insertion order; asset ids are unique within a portfolio.
type Portfolio struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Assets    []Asset   `json:"assets"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Clone returns a deep copy of the portfolio. Store snapshots hand out
// clones only, so no caller ever mutates store internals.
func (p Portfolio) Clone() Portfolio {
	out := p
	out.Assets = make([]Asset, len(p.Assets))
	copy(out.Assets, p.Assets)
	return out
}

// AssetPrice is the result of one quote provider lookup. Not persisted.
// Timestamp is assignment-time, not provider-time, since providers do not
// all surface it.
type AssetPrice struct {
	Symbol    string    `json:"symbol"`
	Price     float64   `json:"price"`
	Currency  string    `json:"currency"`
	Timestamp time.Time `json:"timestamp"`
}

// HistoryPoint is one daily OHLCV entry for a single asset.
type HistoryPoint struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// PerformancePoint is one day of the aggregated portfolio return curve.
type PerformancePoint struct {
	Date      string  `json:"date"` // YYYY-MM-DD
	Value     float64 `json:"value"`
	Cost      float64 `json:"cost"`
	ReturnPct float64 `json:"returnPct"`
}

// Metrics holds aggregate performance figures for a set of holdings.
type Metrics struct {
	TotalValue       float64 `json:"totalValue"`
	TotalCost        float64 `json:"totalCost"`
	TotalReturn      float64 `json:"totalReturn"`
	AnnualizedReturn float64 `json:"annualizedReturn"`
}
