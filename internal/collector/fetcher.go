package collector

import (
	"context"
	"errors"
	"fmt"

	"StockAnalyzer/internal/model"
)

var (
	// ErrNotFound means the provider has no data for the symbol.
	ErrNotFound = errors.New("no data found")
	// ErrNetwork means the provider could not be reached or answered with
	// something unusable.
	ErrNetwork = errors.New("market data provider unavailable")
)

// Fetcher defines the interface for fetching daily price history.
type Fetcher interface {
	// FetchHistory returns daily bars covering the last days calendar days.
	FetchHistory(ctx context.Context, symbol string, days int) (*model.PriceSeries, error)
	Name() string
}

// ProviderError describes a failed provider call. It unwraps to ErrNotFound or
// ErrNetwork.
type ProviderError struct {
	Symbol string
	Status int
	Err    error
}

func (e *ProviderError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %v (status %d)", e.Symbol, e.Err, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Symbol, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

func notFound(symbol string, status int, detail string) error {
	err := ErrNotFound
	if detail != "" {
		err = fmt.Errorf("%w: %s", ErrNotFound, detail)
	}
	return &ProviderError{Symbol: symbol, Status: status, Err: err}
}

func networkError(symbol string, status int, cause error) error {
	err := ErrNetwork
	if cause != nil {
		err = fmt.Errorf("%w: %w", ErrNetwork, cause)
	}
	return &ProviderError{Symbol: symbol, Status: status, Err: err}
}
