// Package metrics computes aggregate performance figures for a set of
// holdings against a map of current prices. The computation is a pure
// function over its inputs; it never fetches anything itself.
package metrics

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"folio/internal/models"
)

// Compute aggregates current value, cost basis, and simple and annualized
// return for the given assets. Assets whose symbol is missing from prices
// (a failed or skipped lookup) are excluded from both sums entirely, not
// treated as zero-value contributions.
func Compute(assets []models.Asset, prices map[string]float64) models.Metrics {
	return computeAt(assets, prices, time.Now().UTC())
}

func computeAt(assets []models.Asset, prices map[string]float64, now time.Time) models.Metrics {
	totalValue := decimal.Zero
	totalCost := decimal.Zero

	// Oldest purchase date among priced assets only. Defaults to now,
	// which degenerates holding-period math to the one-day floor below.
	oldest := now

	for _, asset := range assets {
		price, ok := prices[asset.Symbol]
		if !ok || price == 0 {
			continue
		}

		qty := decimal.NewFromFloat(asset.Quantity)
		totalValue = totalValue.Add(decimal.NewFromFloat(price).Mul(qty))
		totalCost = totalCost.Add(decimal.NewFromFloat(asset.CostBasis).Mul(qty))

		if purchased, err := time.Parse("2006-01-02", asset.PurchaseDate); err == nil {
			if purchased.Before(oldest) {
				oldest = purchased
			}
		}
	}

	var totalReturn float64
	if totalCost.IsPositive() {
		totalReturn = totalValue.Sub(totalCost).Div(totalCost).InexactFloat64()
	}

	// Holding period is floored at one day to avoid division blow-up.
	daysHeld := int(now.Sub(oldest).Hours() / 24)
	if daysHeld < 1 {
		daysHeld = 1
	}
	yearsHeld := float64(daysHeld) / 365

	annualized := math.Pow(1+totalReturn, 1/yearsHeld) - 1

	return models.Metrics{
		TotalValue:       totalValue.InexactFloat64(),
		TotalCost:        totalCost.InexactFloat64(),
		TotalReturn:      totalReturn,
		AnnualizedReturn: annualized,
	}
}
