package quote

import (
	"context"
	"errors"
	"testing"
	"time"

	"folio/internal/models"
)

// fakeProvider counts calls and returns a scripted sequence of errors
// before succeeding.
type fakeProvider struct {
	assetType models.AssetType
	failures  []error
	calls     int
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Supports(assetType models.AssetType) bool {
	return assetType == f.assetType
}

func (f *fakeProvider) CurrentPrice(ctx context.Context, symbol string) (models.AssetPrice, error) {
	f.calls++
	if len(f.failures) > 0 {
		err := f.failures[0]
		f.failures = f.failures[1:]
		return models.AssetPrice{}, err
	}
	return models.AssetPrice{Symbol: symbol, Price: 100, Currency: "USD", Timestamp: time.Now()}, nil
}

func (f *fakeProvider) History(ctx context.Context, symbol string, from, to time.Time) ([]models.HistoryPoint, error) {
	f.calls++
	if len(f.failures) > 0 {
		err := f.failures[0]
		f.failures = f.failures[1:]
		return nil, err
	}
	return []models.HistoryPoint{{Date: from, Close: 100}}, nil
}

func newTestService(p Provider) *Service {
	return NewService([]Provider{p}, time.Second, time.Second)
}

func TestServiceRouting(t *testing.T) {
	stock := &fakeProvider{assetType: models.AssetTypeStock}
	crypto := &fakeProvider{assetType: models.AssetTypeCrypto}
	svc := NewService([]Provider{stock, crypto}, time.Second, time.Second)

	if _, err := svc.CurrentPrice(context.Background(), models.AssetTypeCrypto, "BTC"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stock.calls != 0 || crypto.calls != 1 {
		t.Errorf("expected crypto provider to serve the call, got stock=%d crypto=%d", stock.calls, crypto.calls)
	}

	if _, err := svc.CurrentPrice(context.Background(), "bond", "XYZ"); err == nil {
		t.Error("expected error for unsupported asset type")
	}
}

func TestServiceRetries(t *testing.T) {
	defer func(d time.Duration) { retryBaseDelay = d }(retryBaseDelay)
	retryBaseDelay = time.Millisecond

	transient := func() error {
		return &ProviderError{Kind: KindNetwork, Symbol: "AAPL", Err: errors.New("connection reset")}
	}
	terminal := func() error {
		return &ProviderError{Kind: KindNotFound, Symbol: "AAPL", Err: errors.New("unknown symbol")}
	}

	t.Run("quote_retries_once_then_succeeds", func(t *testing.T) {
		p := &fakeProvider{assetType: models.AssetTypeStock, failures: []error{transient()}}
		price, err := newTestService(p).CurrentPrice(context.Background(), models.AssetTypeStock, "AAPL")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.calls != 2 {
			t.Errorf("expected 2 attempts, got %d", p.calls)
		}
		if price.Price != 100 {
			t.Errorf("unexpected price %f", price.Price)
		}
	})

	t.Run("quote_gives_up_after_two_attempts", func(t *testing.T) {
		p := &fakeProvider{assetType: models.AssetTypeStock, failures: []error{transient(), transient(), transient()}}
		_, err := newTestService(p).CurrentPrice(context.Background(), models.AssetTypeStock, "AAPL")
		if err == nil {
			t.Fatal("expected error")
		}
		if p.calls != 2 {
			t.Errorf("expected 2 attempts, got %d", p.calls)
		}
	})

	t.Run("history_allows_three_attempts", func(t *testing.T) {
		p := &fakeProvider{assetType: models.AssetTypeStock, failures: []error{transient(), transient()}}
		points, err := newTestService(p).History(context.Background(), models.AssetTypeStock, "AAPL",
			time.Now().AddDate(0, -1, 0), time.Now())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.calls != 3 {
			t.Errorf("expected 3 attempts, got %d", p.calls)
		}
		if len(points) != 1 {
			t.Errorf("expected 1 point, got %d", len(points))
		}
	})

	t.Run("terminal_failure_not_retried", func(t *testing.T) {
		p := &fakeProvider{assetType: models.AssetTypeStock, failures: []error{terminal(), terminal()}}
		_, err := newTestService(p).CurrentPrice(context.Background(), models.AssetTypeStock, "AAPL")
		assertKind(t, err, KindNotFound)
		if p.calls != 1 {
			t.Errorf("expected 1 attempt, got %d", p.calls)
		}
	})

	t.Run("plain_error_not_retried", func(t *testing.T) {
		p := &fakeProvider{assetType: models.AssetTypeStock, failures: []error{errors.New("boom"), errors.New("boom")}}
		_, err := newTestService(p).CurrentPrice(context.Background(), models.AssetTypeStock, "AAPL")
		if err == nil {
			t.Fatal("expected error")
		}
		if p.calls != 1 {
			t.Errorf("expected 1 attempt, got %d", p.calls)
		}
	})

	t.Run("cancelled_context_stops_retries", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		p := &fakeProvider{assetType: models.AssetTypeStock}
		_, err := newTestService(p).CurrentPrice(ctx, models.AssetTypeStock, "AAPL")
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if p.calls != 0 {
			t.Errorf("expected no attempts, got %d", p.calls)
		}
	})
}

func TestProviderErrorRetryable(t *testing.T) {
	retryable := []ErrorKind{KindNetwork, KindTimeout, KindRateLimited}
	terminal := []ErrorKind{KindNotFound, KindAuthFailure, KindNoData}

	for _, kind := range retryable {
		if !(&ProviderError{Kind: kind}).Retryable() {
			t.Errorf("expected %s to be retryable", kind)
		}
	}
	for _, kind := range terminal {
		if (&ProviderError{Kind: kind}).Retryable() {
			t.Errorf("expected %s to be terminal", kind)
		}
	}
}

func TestNewErrorFoldsDeadline(t *testing.T) {
	err := newError(KindNetwork, "AAPL", context.DeadlineExceeded)
	if err.Kind != KindTimeout {
		t.Errorf("expected deadline folded to timeout, got %s", err.Kind)
	}
}
