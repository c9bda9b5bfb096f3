package repositories

import (
	"context"
	"time"

	"github.com/finbook/finbook_app/internal/core/domain"
)

// PriceReader defines read operations for price data.
type PriceReader interface {
	// ListPricesByCommodity returns all prices quoting the commodity, newest first.
	ListPricesByCommodity(ctx context.Context, commodityID int64) ([]domain.Price, error)

	// LatestPrices returns the single most recent price per (commodity, unit)
	// pair across all backends. Ties on date are broken by highest price ID.
	LatestPrices(ctx context.Context) ([]domain.Price, error)

	// LatestDates returns, per commodity ID, the most recent price date
	// recorded by the named backend. unitID restricts the pair when non-nil.
	LatestDates(ctx context.Context, backend string, commodityIDs []int64, unitID *int64) (map[int64]time.Time, error)
}

// PriceWriter defines write operations for price data.
type PriceWriter interface {
	// SavePrice inserts a single price row and fills in its generated ID.
	SavePrice(ctx context.Context, price *domain.Price) error

	// BulkInsertPrices inserts the given rows in one batch inside a single
	// database transaction. Returns the number of rows written.
	BulkInsertPrices(ctx context.Context, prices []domain.Price) (int64, error)
}

// PriceRepositoryFacade combines all price repository interfaces.
type PriceRepositoryFacade interface {
	PriceReader
	PriceWriter
}
