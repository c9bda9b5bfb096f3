package backends

import (
	"context"
	"fmt"
	"time"

	"github.com/finbook/finbook_app/internal/apperrors"
	"github.com/finbook/finbook_app/internal/core/domain"
	portsrepo "github.com/finbook/finbook_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// Quote is one fetched price observation, not yet persisted.
type Quote struct {
	Commodity domain.Commodity
	Unit      domain.Commodity
	Price     decimal.Decimal
	Date      time.Time
}

// Backend is a price ingestion source. Implementations fetch quotes for the
// commodities tagged with their backend kind; the shared UpdatePrices driver
// turns the quotes into price rows.
type Backend interface {
	Name() string

	// Capabilities lists the commodity types the backend can quote.
	// domain.CapabilityAll bypasses type filtering entirely.
	Capabilities() []domain.CommodityType

	// FetchCommodities returns, keyed by code, the commodities this backend
	// should update: matching capability set and backend tag, auto_update set.
	FetchCommodities(ctx context.Context) (map[string]domain.Commodity, error)

	// FetchPrices fetches quotes for the given commodities over period
	// (e.g. "7d", "1mo").
	FetchPrices(ctx context.Context, commodities map[string]domain.Commodity, period string) ([]Quote, error)
}

// baseBackend carries the configuration and repository access shared by all
// backends. Concrete backends embed it and override FetchPrices.
type baseBackend struct {
	name         string
	tag          domain.BackendKind
	capabilities []domain.CommodityType
	baseCurrency string

	commodityRepo portsrepo.CommodityRepositoryFacade
	priceRepo     portsrepo.PriceRepositoryFacade
}

func (b *baseBackend) Name() string {
	return b.name
}

func (b *baseBackend) Capabilities() []domain.CommodityType {
	return b.capabilities
}

func (b *baseBackend) FetchCommodities(ctx context.Context) (map[string]domain.Commodity, error) {
	types := b.capabilities
	for _, t := range types {
		if t == domain.CapabilityAll {
			types = nil
			break
		}
	}

	list, err := b.commodityRepo.ListAutoUpdating(ctx, b.tag, types)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to fetch commodities: %w", b.name, err)
	}

	commodities := make(map[string]domain.Commodity, len(list))
	for _, c := range list {
		commodities[c.Code] = c
	}
	return commodities, nil
}

// FetchPrices on the base driver is a placeholder for concrete backends.
func (b *baseBackend) FetchPrices(ctx context.Context, commodities map[string]domain.Commodity, period string) ([]Quote, error) {
	return nil, fmt.Errorf("%s: fetch prices: %w", b.name, apperrors.ErrNotImplemented)
}

// latestDates maps commodity ID to the newest price date already stored for
// this backend, optionally restricted to one unit.
func (b *baseBackend) latestDates(ctx context.Context, commodities map[string]domain.Commodity, unitID *int64) (map[int64]time.Time, error) {
	ids := make([]int64, 0, len(commodities))
	for _, c := range commodities {
		ids = append(ids, c.CommodityID)
	}
	return b.priceRepo.LatestDates(ctx, b.name, ids, unitID)
}

// UpdatePrices runs one full ingestion pass for the backend: fetch the
// commodities it owns, fetch their quotes for the period, and persist the
// resulting price rows in a single database transaction.
func UpdatePrices(ctx context.Context, b Backend, priceRepo portsrepo.PriceRepositoryFacade, period string) error {
	commodities, err := b.FetchCommodities(ctx)
	if err != nil {
		return err
	}

	quotes, err := b.FetchPrices(ctx, commodities, period)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	rows := make([]domain.Price, len(quotes))
	for i, q := range quotes {
		rows[i] = domain.Price{
			CommodityID: q.Commodity.CommodityID,
			UnitID:      q.Unit.CommodityID,
			Price:       q.Price,
			Date:        q.Date,
			Backend:     b.Name(),
			AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
		}
	}

	if _, err := priceRepo.BulkInsertPrices(ctx, rows); err != nil {
		return fmt.Errorf("%s: failed to store prices: %w", b.Name(), err)
	}
	return nil
}

// dateOf truncates a timestamp to its UTC calendar day.
func dateOf(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}
