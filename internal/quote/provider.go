// Package quote fetches current and historical prices from external
// providers. Each asset class has one concrete provider; the Service
// routes lookups, applies per-request timeouts, and retries failures
// the provider classified as transient.
package quote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"folio/internal/models"
)

// ErrorKind classifies a provider failure. The classification decides both
// the user-facing message and whether a retry is worthwhile.
type ErrorKind string

const (
	KindNotFound    ErrorKind = "not_found"
	KindAuthFailure ErrorKind = "auth_failure"
	KindRateLimited ErrorKind = "rate_limited"
	KindNetwork     ErrorKind = "network"
	KindTimeout     ErrorKind = "timeout"
	KindNoData      ErrorKind = "no_data"
)

// ProviderError is a classified failure for one quote or history request.
type ProviderError struct {
	Kind   ErrorKind
	Symbol string
	Err    error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s for %s: %v", e.Kind, errKindText(e.Kind), e.Symbol, e.Err)
}

// Unwrap returns the underlying error.
func (e *ProviderError) Unwrap() error { return e.Err }

// Retryable reports whether retrying the request may succeed. Definitive
// answers (unknown symbol, bad credentials, no data) never are.
func (e *ProviderError) Retryable() bool {
	switch e.Kind {
	case KindNetwork, KindTimeout, KindRateLimited:
		return true
	default:
		return false
	}
}

func errKindText(k ErrorKind) string {
	switch k {
	case KindNotFound:
		return "symbol not found"
	case KindAuthFailure:
		return "authentication failed"
	case KindRateLimited:
		return "rate limit exceeded"
	case KindTimeout:
		return "request timed out"
	case KindNoData:
		return "no data available"
	default:
		return "request failed"
	}
}

// newError builds a ProviderError, folding context cancellation into the
// timeout kind so callers see one classification for expired requests.
func newError(kind ErrorKind, symbol string, err error) *ProviderError {
	if errors.Is(err, context.DeadlineExceeded) {
		kind = KindTimeout
	}
	return &ProviderError{Kind: kind, Symbol: symbol, Err: err}
}

// Provider fetches prices for the asset types it supports.
type Provider interface {
	// Name returns the provider's display name (e.g., "Finnhub", "Coinbase").
	Name() string

	// Supports returns true if this provider serves the given asset type.
	Supports(assetType models.AssetType) bool

	// CurrentPrice fetches the current price for a symbol. The returned
	// AssetPrice carries an assignment-time timestamp.
	CurrentPrice(ctx context.Context, symbol string) (models.AssetPrice, error)

	// History fetches the daily OHLCV series for a symbol in [from, to].
	// The returned series is deduplicated, fully formed (partial or NaN
	// rows dropped), and sorted ascending by date.
	History(ctx context.Context, symbol string, from, to time.Time) ([]models.HistoryPoint, error)
}
