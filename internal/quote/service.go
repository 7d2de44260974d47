package quote

import (
	"context"
	"fmt"
	"time"

	"folio/internal/models"
)

const (
	quoteAttempts   = 2 // one retry for current price lookups
	historyAttempts = 3 // two retries for historical fetches
)

// retryBaseDelay is the pause before the first retry; it grows linearly
// with the attempt number.
var retryBaseDelay = 250 * time.Millisecond

// Service routes lookups to the provider supporting each asset type and
// applies per-request timeouts and bounded retries. Only failures the
// provider classified as transient are retried.
type Service struct {
	providers      []Provider
	quoteTimeout   time.Duration
	historyTimeout time.Duration
}

// NewService creates a quote service over the given providers.
func NewService(providers []Provider, quoteTimeout, historyTimeout time.Duration) *Service {
	return &Service{
		providers:      providers,
		quoteTimeout:   quoteTimeout,
		historyTimeout: historyTimeout,
	}
}

// providerFor returns the first provider supporting the asset type.
func (s *Service) providerFor(assetType models.AssetType) (Provider, error) {
	for _, p := range s.providers {
		if p.Supports(assetType) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("no provider supports asset type %q", assetType)
}

// CurrentPrice fetches the current price for a symbol of the given type.
func (s *Service) CurrentPrice(ctx context.Context, assetType models.AssetType, symbol string) (models.AssetPrice, error) {
	p, err := s.providerFor(assetType)
	if err != nil {
		return models.AssetPrice{}, err
	}

	var price models.AssetPrice
	err = withRetry(ctx, quoteAttempts, func(ctx context.Context) error {
		reqCtx, cancel := context.WithTimeout(ctx, s.quoteTimeout)
		defer cancel()
		var err error
		price, err = p.CurrentPrice(reqCtx, symbol)
		return err
	})
	return price, err
}

// History fetches the daily series for a symbol of the given type in
// [from, to].
func (s *Service) History(ctx context.Context, assetType models.AssetType, symbol string, from, to time.Time) ([]models.HistoryPoint, error) {
	p, err := s.providerFor(assetType)
	if err != nil {
		return nil, err
	}

	var points []models.HistoryPoint
	err = withRetry(ctx, historyAttempts, func(ctx context.Context) error {
		reqCtx, cancel := context.WithTimeout(ctx, s.historyTimeout)
		defer cancel()
		var err error
		points, err = p.History(reqCtx, symbol, from, to)
		return err
	})
	return points, err
}

// withRetry runs fn up to attempts times, retrying only retryable provider
// failures. The parent context cancels retries; a superseded caller's
// cancellation is honored between attempts.
func withRetry(ctx context.Context, attempts int, fn func(context.Context) error) error {
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}

		provErr, ok := lastErr.(*ProviderError)
		if !ok || !provErr.Retryable() || attempt == attempts {
			return lastErr
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * retryBaseDelay):
		}
	}
	return lastErr
}
