package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finbook/finbook_app/internal/apperrors"
	"github.com/finbook/finbook_app/internal/core/domain"
	portsrepo "github.com/finbook/finbook_app/internal/core/ports/repositories"
	portssvc "github.com/finbook/finbook_app/internal/core/ports/services"
	"github.com/finbook/finbook_app/internal/dto"
	"github.com/shopspring/decimal"
)

// priceService provides business logic for manually recorded prices.
type priceService struct {
	priceRepo     portsrepo.PriceRepositoryFacade
	commodityRepo portsrepo.CommodityReader
}

// NewPriceService creates a new price service.
func NewPriceService(priceRepo portsrepo.PriceRepositoryFacade, commodityRepo portsrepo.CommodityReader) portssvc.PriceSvcFacade {
	return &priceService{
		priceRepo:     priceRepo,
		commodityRepo: commodityRepo,
	}
}

var _ portssvc.PriceSvcFacade = (*priceService)(nil)

// CreatePrice records a manually entered price.
func (s *priceService) CreatePrice(ctx context.Context, req dto.CreatePriceRequest) (*domain.Price, error) {
	if req.Price.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: price must be positive", apperrors.ErrValidation)
	}

	commodity, err := s.commodityRepo.FindCommodityByCode(ctx, req.CommodityCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: commodity '%s' not found", apperrors.ErrValidation, req.CommodityCode)
		}
		return nil, fmt.Errorf("failed to resolve commodity '%s': %w", req.CommodityCode, err)
	}

	unit, err := s.commodityRepo.FindCommodityByCode(ctx, req.UnitCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: unit '%s' not found", apperrors.ErrValidation, req.UnitCode)
		}
		return nil, fmt.Errorf("failed to resolve unit '%s': %w", req.UnitCode, err)
	}

	now := time.Now().UTC()
	price := domain.Price{
		CommodityID: commodity.CommodityID,
		UnitID:      unit.CommodityID,
		Price:       req.Price,
		Date:        req.Date.Truncate(24 * time.Hour),
		Backend:     domain.ManualBackendName,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.priceRepo.SavePrice(ctx, &price); err != nil {
		return nil, fmt.Errorf("failed to save price: %w", err)
	}
	return &price, nil
}

// ListPricesByCommodityCode returns a commodity's prices, newest first.
func (s *priceService) ListPricesByCommodityCode(ctx context.Context, code string) ([]domain.Price, error) {
	commodity, err := s.commodityRepo.FindCommodityByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return s.priceRepo.ListPricesByCommodity(ctx, commodity.CommodityID)
}
