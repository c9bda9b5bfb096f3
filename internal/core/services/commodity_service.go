package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/finbook/finbook_app/internal/apperrors"
	"github.com/finbook/finbook_app/internal/core/domain"
	portsrepo "github.com/finbook/finbook_app/internal/core/ports/repositories"
	portssvc "github.com/finbook/finbook_app/internal/core/ports/services"
	"github.com/finbook/finbook_app/internal/dto"
	"github.com/shopspring/decimal"
)

// commodityService provides commodity management and the conversion resolver.
type commodityService struct {
	commodityRepo portsrepo.CommodityRepositoryFacade
	priceRepo     portsrepo.PriceReader

	baseCurrencyName string
	baseCurrencyCode string
}

// NewCommodityService creates a new commodity service. baseName/baseCode name
// the bootstrap base currency (e.g. "Euro"/"EUR").
func NewCommodityService(commodityRepo portsrepo.CommodityRepositoryFacade, priceRepo portsrepo.PriceReader, baseName, baseCode string) portssvc.CommoditySvcFacade {
	return &commodityService{
		commodityRepo:    commodityRepo,
		priceRepo:        priceRepo,
		baseCurrencyName: baseName,
		baseCurrencyCode: baseCode,
	}
}

var _ portssvc.CommoditySvcFacade = (*commodityService)(nil)

// CreateCommodity handles the creation of a new commodity.
func (s *commodityService) CreateCommodity(ctx context.Context, req dto.CreateCommodityRequest) (*domain.Commodity, error) {
	commodityType := req.CommodityType
	if commodityType == "" {
		commodityType = domain.CommodityOther
	}

	var websiteCurrencyID *int64
	if req.WebsiteCurrencyCode != "" {
		unit, err := s.commodityRepo.FindCommodityByCode(ctx, strings.ToUpper(req.WebsiteCurrencyCode))
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: website currency '%s' not found", apperrors.ErrValidation, req.WebsiteCurrencyCode)
			}
			return nil, fmt.Errorf("failed to resolve website currency: %w", err)
		}
		websiteCurrencyID = &unit.CommodityID
	}

	now := time.Now().UTC()
	commodity := domain.Commodity{
		Name:              req.Name,
		Code:              strings.ToUpper(req.Code),
		CommodityType:     commodityType,
		Backend:           req.Backend,
		AutoUpdate:        req.AutoUpdate,
		Website:           req.Website,
		PriceSelector:     req.PriceSelector,
		WebsiteCurrencyID: websiteCurrencyID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.commodityRepo.SaveCommodity(ctx, &commodity); err != nil {
		return nil, fmt.Errorf("failed to create commodity: %w", err)
	}
	return &commodity, nil
}

// GetCommodityByID retrieves a commodity by its ID.
func (s *commodityService) GetCommodityByID(ctx context.Context, commodityID int64) (*domain.Commodity, error) {
	return s.commodityRepo.FindCommodityByID(ctx, commodityID)
}

// GetCommodityByCode retrieves a commodity by its unique code.
func (s *commodityService) GetCommodityByCode(ctx context.Context, code string) (*domain.Commodity, error) {
	return s.commodityRepo.FindCommodityByCode(ctx, strings.ToUpper(code))
}

// ListCommodities retrieves all commodities.
func (s *commodityService) ListCommodities(ctx context.Context) ([]domain.Commodity, error) {
	return s.commodityRepo.ListCommodities(ctx)
}

// EnsureBaseCurrency returns the configured base currency, creating the
// commodity row on first use.
func (s *commodityService) EnsureBaseCurrency(ctx context.Context) (*domain.Commodity, error) {
	return s.commodityRepo.GetOrCreateCommodity(ctx, s.baseCurrencyName, s.baseCurrencyCode, domain.CommodityCurrency)
}

// ConvertTo returns the factor converting `from` into the commodity named by
// targetCode. A code that matches no commodity yields the identity factor:
// conversion is undefined there but must not fail the caller.
func (s *commodityService) ConvertTo(ctx context.Context, from domain.Commodity, targetCode string) (decimal.Decimal, error) {
	target, err := s.commodityRepo.FindCommodityByCode(ctx, strings.ToUpper(targetCode))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.NewFromInt(1), nil
		}
		return decimal.Decimal{}, fmt.Errorf("failed to resolve conversion target '%s': %w", targetCode, err)
	}
	return s.ConvertToCommodity(ctx, from, *target)
}

// ConvertToCommodity returns the conversion factor between two commodities,
// falling back to the identity factor when no price path connects them.
func (s *commodityService) ConvertToCommodity(ctx context.Context, from, to domain.Commodity) (decimal.Decimal, error) {
	factor, _, err := s.Factor(ctx, from, to)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return factor, nil
}

// Factor builds the conversion snapshot from the latest price per
// (commodity, unit) pair and walks it breadth-first. The boolean reports
// whether a path was found; the factor is 1 when it was not.
func (s *commodityService) Factor(ctx context.Context, from, to domain.Commodity) (decimal.Decimal, bool, error) {
	if from.CommodityID == to.CommodityID {
		return decimal.NewFromInt(1), true, nil
	}

	latest, err := s.priceRepo.LatestPrices(ctx)
	if err != nil {
		return decimal.Decimal{}, false, fmt.Errorf("failed to load latest prices: %w", err)
	}

	factor, found := newRateGraph(latest).factor(from.CommodityID, to.CommodityID)
	return factor, found, nil
}
