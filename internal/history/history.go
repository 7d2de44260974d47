// Package history merges per-asset daily price series into a single
// date-indexed portfolio return curve. Per-asset fetches run concurrently
// and fail independently, so a portfolio with one delisted symbol still
// yields a curve for the rest.
package history

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	apperrors "folio/internal/errors"
	"folio/internal/logger"
	"folio/internal/models"
)

// QuoteSource fetches one asset's daily history. Implemented by the quote
// service, which owns routing, timeouts, and retries.
type QuoteSource interface {
	History(ctx context.Context, assetType models.AssetType, symbol string, from, to time.Time) ([]models.HistoryPoint, error)
}

// dayTotals accumulates one calendar day's portfolio-level contribution.
type dayTotals struct {
	value decimal.Decimal
	cost  decimal.Decimal
}

// Aggregate fetches each asset's daily history in [from, now], scales
// closing prices into portfolio-level contributions, and merges them by
// exact calendar date. Days are summed across assets with no interpolation
// for missing business days; the summation assumes all markets trade on
// the same calendar, a documented simplification.
//
// A per-asset failure or empty series contributes nothing and never aborts
// the rest. If no asset had any data in range, ErrNoHistoryData is
// returned rather than an empty success.
func Aggregate(ctx context.Context, assets []models.Asset, from time.Time, src QuoteSource) ([]models.PerformancePoint, error) {
	to := time.Now().UTC()

	// Fan out one fetch per asset, collect settled results.
	type assetSeries struct {
		asset  models.Asset
		points []models.HistoryPoint
	}

	var mu sync.Mutex
	series := make([]assetSeries, 0, len(assets))

	var wg sync.WaitGroup
	for _, asset := range assets {
		wg.Add(1)
		go func(asset models.Asset) {
			defer wg.Done()
			points, err := src.History(ctx, asset.Type, asset.Symbol, from, to)
			if err != nil {
				logger.Get().Warnw("history fetch failed, excluding asset from curve",
					"symbol", asset.Symbol,
					"error", err,
				)
				return
			}
			mu.Lock()
			series = append(series, assetSeries{asset: asset, points: points})
			mu.Unlock()
		}(asset)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		// Superseded or cancelled aggregations discard their results.
		return nil, err
	}

	// Merge by calendar date, summing value and cost across assets. Cost
	// is constant per day, reflecting the static cost basis.
	days := make(map[string]dayTotals)
	for _, s := range series {
		qty := decimal.NewFromFloat(s.asset.Quantity)
		cost := decimal.NewFromFloat(s.asset.CostBasis).Mul(qty)
		for _, pt := range s.points {
			date := pt.Date.Format("2006-01-02")
			totals := days[date]
			totals.value = totals.value.Add(decimal.NewFromFloat(pt.Close).Mul(qty))
			totals.cost = totals.cost.Add(cost)
			days[date] = totals
		}
	}

	if len(days) == 0 {
		return nil, apperrors.ErrNoHistoryData
	}

	curve := make([]models.PerformancePoint, 0, len(days))
	for date, totals := range days {
		var returnPct float64
		if totals.cost.IsPositive() {
			returnPct = totals.value.Sub(totals.cost).Div(totals.cost).InexactFloat64() * 100
		}
		curve = append(curve, models.PerformancePoint{
			Date:      date,
			Value:     totals.value.InexactFloat64(),
			Cost:      totals.cost.InexactFloat64(),
			ReturnPct: returnPct,
		})
	}

	sort.Slice(curve, func(i, j int) bool { return curve[i].Date < curve[j].Date })
	return curve, nil
}
