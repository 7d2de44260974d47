// Package testutil provides test helpers for setting up snapshot stores,
// creating fixtures, and making assertions.
package testutil

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	apperrors "folio/internal/errors"
	"folio/internal/models"
	"folio/internal/storage"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// SetupSnapshots creates a SQLite snapshot store in a per-test temp
// directory. The store is closed automatically when the test ends.
func SetupSnapshots(t *testing.T) *storage.Snapshots {
	t.Helper()

	path := filepath.Join(t.TempDir(), "folio-test.db")
	snapshots, err := storage.Open(path)
	if err != nil {
		t.Fatalf("failed to open test snapshot store: %v", err)
	}
	t.Cleanup(func() {
		if err := snapshots.Close(); err != nil {
			t.Errorf("failed to close test snapshot store: %v", err)
		}
	})
	return snapshots
}

// MakePortfolio creates a portfolio fixture with a unique id.
func MakePortfolio(name string) models.Portfolio {
	now := time.Now().UTC()
	return models.Portfolio{
		ID:        fmt.Sprintf("portfolio-%d", nextID()),
		Name:      name,
		Assets:    []models.Asset{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// MakeAsset creates a stock asset fixture with a unique id.
func MakeAsset(symbol string, quantity, costBasis float64) models.Asset {
	return models.Asset{
		ID:           fmt.Sprintf("asset-%d", nextID()),
		Symbol:       symbol,
		Name:         symbol + " Holding",
		Quantity:     quantity,
		CostBasis:    costBasis,
		PurchaseDate: "2023-01-01",
		Currency:     "USD",
		Type:         models.AssetTypeStock,
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertAppError checks that err is an *AppError with the expected error code.
func AssertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", expectedCode)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}

	if appErr.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}
