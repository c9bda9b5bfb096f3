package services

import (
	"context"

	"github.com/finbook/finbook_app/internal/core/domain"
	"github.com/finbook/finbook_app/internal/dto"
	"github.com/shopspring/decimal"
)

// CommoditySvcFacade defines the business operations for commodities,
// including the conversion graph resolver.
type CommoditySvcFacade interface {
	CreateCommodity(ctx context.Context, req dto.CreateCommodityRequest) (*domain.Commodity, error)
	GetCommodityByID(ctx context.Context, commodityID int64) (*domain.Commodity, error)
	GetCommodityByCode(ctx context.Context, code string) (*domain.Commodity, error)
	ListCommodities(ctx context.Context) ([]domain.Commodity, error)

	// EnsureBaseCurrency returns the configured base currency commodity,
	// creating it on first use.
	EnsureBaseCurrency(ctx context.Context) (*domain.Commodity, error)

	// ConvertTo returns the multiplicative factor F such that an amount in
	// `from` times F is the equivalent amount in the commodity named by
	// targetCode. An unknown code or a missing price path yields factor 1.
	ConvertTo(ctx context.Context, from domain.Commodity, targetCode string) (decimal.Decimal, error)

	// ConvertToCommodity is ConvertTo for an already resolved target.
	ConvertToCommodity(ctx context.Context, from, to domain.Commodity) (decimal.Decimal, error)

	// Factor exposes the underlying two-valued result: the conversion factor
	// and whether a price path was actually found. Callers that must
	// distinguish "no conversion needed" from "no path" use this.
	Factor(ctx context.Context, from, to domain.Commodity) (decimal.Decimal, bool, error)
}
