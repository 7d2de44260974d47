// Package errors provides custom error types for the Folio API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Portfolio and asset errors.
var (
	ErrPortfolioNotFound = &AppError{Code: "PORTFOLIO_NOT_FOUND", Message: "Portfolio not found", StatusCode: http.StatusNotFound}
	ErrAssetNotFound     = &AppError{Code: "ASSET_NOT_FOUND", Message: "Asset not found", StatusCode: http.StatusNotFound}
)

// Quote provider errors. One request's failure never propagates to
// unrelated requests; handlers attach these to the specific symbol.
var (
	ErrSymbolNotFound      = &AppError{Code: "SYMBOL_NOT_FOUND", Message: "Symbol not found", StatusCode: http.StatusNotFound}
	ErrProviderAuth        = &AppError{Code: "PROVIDER_AUTH", Message: "Quote provider authentication failed. Please try again later", StatusCode: http.StatusBadGateway}
	ErrProviderRateLimited = &AppError{Code: "PROVIDER_RATE_LIMITED", Message: "Quote provider rate limit exceeded. Please try again in a minute", StatusCode: http.StatusBadGateway}
	ErrProviderNetwork     = &AppError{Code: "PROVIDER_NETWORK", Message: "Failed to reach quote provider. Please try again later", StatusCode: http.StatusBadGateway}
	ErrProviderTimeout     = &AppError{Code: "PROVIDER_TIMEOUT", Message: "Quote provider request timed out. Please try again", StatusCode: http.StatusGatewayTimeout}
	ErrNoHistoryData       = &AppError{Code: "NO_HISTORY_DATA", Message: "No historical data available for the selected time range", StatusCode: http.StatusNotFound}
)

// Import errors.
var (
	ErrInvalidImport = &AppError{Code: "INVALID_IMPORT", Message: "Invalid portfolio data format", StatusCode: http.StatusBadRequest}
)
