package services

import (
	"context"

	"github.com/finbook/finbook_app/internal/core/domain"
	"github.com/finbook/finbook_app/internal/dto"
)

// PriceSvcFacade defines the business operations for prices.
type PriceSvcFacade interface {
	// CreatePrice records a manually entered price (backend "Manual").
	CreatePrice(ctx context.Context, req dto.CreatePriceRequest) (*domain.Price, error)

	// ListPricesByCommodityCode returns a commodity's prices, newest first.
	ListPricesByCommodityCode(ctx context.Context, code string) ([]domain.Price, error)
}
