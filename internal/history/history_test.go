package history

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	apperrors "folio/internal/errors"
	"folio/internal/models"
)

type fakeSource struct {
	series map[string][]models.HistoryPoint
	errs   map[string]error
	calls  atomic.Int64
}

func (f *fakeSource) History(ctx context.Context, assetType models.AssetType, symbol string, from, to time.Time) ([]models.HistoryPoint, error) {
	f.calls.Add(1)
	if err, ok := f.errs[symbol]; ok {
		return nil, err
	}
	return f.series[symbol], nil
}

func day(date string, close float64) models.HistoryPoint {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return models.HistoryPoint{Date: t, Close: close}
}

func asset(symbol string, quantity, costBasis float64) models.Asset {
	return models.Asset{
		ID:           symbol + "-id",
		Symbol:       symbol,
		Name:         symbol,
		Quantity:     quantity,
		CostBasis:    costBasis,
		PurchaseDate: "2023-01-01",
		Currency:     "USD",
		Type:         models.AssetTypeStock,
	}
}

func TestAggregateMergesByDate(t *testing.T) {
	// Two assets overlapping on 2024-03-01: 100*2 + 50*1 = 250.
	src := &fakeSource{series: map[string][]models.HistoryPoint{
		"AAA": {day("2024-03-01", 100), day("2024-03-02", 110)},
		"BBB": {day("2024-03-01", 50)},
	}}
	assets := []models.Asset{asset("AAA", 2, 80), asset("BBB", 1, 40)}

	curve, err := Aggregate(context.Background(), assets, time.Now().AddDate(0, -1, 0), src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(curve) != 2 {
		t.Fatalf("expected 2 points, got %d", len(curve))
	}

	first := curve[0]
	if first.Date != "2024-03-01" {
		t.Errorf("expected first point 2024-03-01, got %s", first.Date)
	}
	if first.Value != 250 {
		t.Errorf("expected merged value 250, got %f", first.Value)
	}
	// Cost is constant per day: 2*80 + 1*40 = 200.
	if first.Cost != 200 {
		t.Errorf("expected merged cost 200, got %f", first.Cost)
	}
	if first.ReturnPct != 25 {
		t.Errorf("expected 25%% return, got %f", first.ReturnPct)
	}

	// The second day only has AAA, so BBB contributes neither value nor cost.
	second := curve[1]
	if second.Value != 220 || second.Cost != 160 {
		t.Errorf("expected 220/160 on day two, got %f/%f", second.Value, second.Cost)
	}
}

func TestAggregateAscendingOrder(t *testing.T) {
	src := &fakeSource{series: map[string][]models.HistoryPoint{
		"AAA": {day("2024-03-03", 3), day("2024-03-01", 1), day("2024-03-02", 2)},
	}}

	curve, err := Aggregate(context.Background(), []models.Asset{asset("AAA", 1, 1)}, time.Now().AddDate(0, -1, 0), src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(curve); i++ {
		if curve[i-1].Date >= curve[i].Date {
			t.Errorf("curve not ascending at %d: %s >= %s", i, curve[i-1].Date, curve[i].Date)
		}
	}
}

func TestAggregateFaultIsolation(t *testing.T) {
	src := &fakeSource{
		series: map[string][]models.HistoryPoint{
			"AAA": {day("2024-03-01", 100)},
		},
		errs: map[string]error{"BAD": errors.New("upstream down")},
	}
	assets := []models.Asset{asset("AAA", 1, 80), asset("BAD", 1, 80)}

	curve, err := Aggregate(context.Background(), assets, time.Now().AddDate(0, -1, 0), src)
	if err != nil {
		t.Fatalf("expected partial success, got %v", err)
	}
	if len(curve) != 1 || curve[0].Value != 100 || curve[0].Cost != 80 {
		t.Errorf("expected curve from the healthy asset only, got %+v", curve)
	}
}

func TestAggregateNoData(t *testing.T) {
	t.Run("all_fetches_fail", func(t *testing.T) {
		src := &fakeSource{errs: map[string]error{"BAD": errors.New("upstream down")}}
		_, err := Aggregate(context.Background(), []models.Asset{asset("BAD", 1, 1)}, time.Now().AddDate(0, -1, 0), src)
		if !errors.Is(err, apperrors.ErrNoHistoryData) {
			t.Errorf("expected ErrNoHistoryData, got %v", err)
		}
	})

	t.Run("all_series_empty", func(t *testing.T) {
		src := &fakeSource{series: map[string][]models.HistoryPoint{"AAA": {}}}
		_, err := Aggregate(context.Background(), []models.Asset{asset("AAA", 1, 1)}, time.Now().AddDate(0, -1, 0), src)
		if !errors.Is(err, apperrors.ErrNoHistoryData) {
			t.Errorf("expected ErrNoHistoryData, got %v", err)
		}
	})

	t.Run("no_assets", func(t *testing.T) {
		src := &fakeSource{}
		_, err := Aggregate(context.Background(), nil, time.Now().AddDate(0, -1, 0), src)
		if !errors.Is(err, apperrors.ErrNoHistoryData) {
			t.Errorf("expected ErrNoHistoryData, got %v", err)
		}
		if got := src.calls.Load(); got != 0 {
			t.Errorf("expected no fetches for empty portfolio, got %d", got)
		}
	})
}

func TestAggregateCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &fakeSource{series: map[string][]models.HistoryPoint{
		"AAA": {day("2024-03-01", 100)},
	}}

	_, err := Aggregate(ctx, []models.Asset{asset("AAA", 1, 1)}, time.Now().AddDate(0, -1, 0), src)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
