package repositories

import (
	"context"

	"github.com/finbook/finbook_app/internal/core/domain"
)

// CommodityReader defines read operations for commodity data.
type CommodityReader interface {
	FindCommodityByID(ctx context.Context, commodityID int64) (*domain.Commodity, error)
	FindCommodityByCode(ctx context.Context, code string) (*domain.Commodity, error)
	ListCommodities(ctx context.Context) ([]domain.Commodity, error)

	// ListAutoUpdating returns the commodities flagged for auto update that
	// carry the given backend tag and whose type is within types. An empty
	// types slice means no type filtering (the "__all__" capability).
	ListAutoUpdating(ctx context.Context, backend domain.BackendKind, types []domain.CommodityType) ([]domain.Commodity, error)
}

// CommodityWriter defines write operations for commodity data.
type CommodityWriter interface {
	// SaveCommodity inserts a new commodity and fills in its generated ID.
	SaveCommodity(ctx context.Context, commodity *domain.Commodity) error

	// GetOrCreateCommodity finds a commodity by (name, code) or creates it
	// with the given type. Used by the base-currency bootstrap.
	GetOrCreateCommodity(ctx context.Context, name, code string, commodityType domain.CommodityType) (*domain.Commodity, error)
}

// CommodityRepositoryFacade combines all commodity repository interfaces.
type CommodityRepositoryFacade interface {
	CommodityReader
	CommodityWriter
}
