package dto

import (
	"time"

	"github.com/finbook/finbook_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePriceRequest defines the data needed to record a price manually.
type CreatePriceRequest struct {
	CommodityCode string          `json:"commodityCode" binding:"required,commoditycode"`
	UnitCode      string          `json:"unitCode" binding:"required,commoditycode"`
	Price         decimal.Decimal `json:"price" binding:"required"`
	Date          time.Time       `json:"date" binding:"required"`
}

// PriceResponse defines the data returned for a price row.
type PriceResponse struct {
	PriceID       int64           `json:"priceID"`
	CommodityID   int64           `json:"commodityID"`
	UnitID        int64           `json:"unitID"`
	Price         decimal.Decimal `json:"price"`
	Date          string          `json:"date"`
	Backend       string          `json:"backend"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ToPriceResponse converts a domain.Price to its response DTO.
func ToPriceResponse(p *domain.Price) PriceResponse {
	return PriceResponse{
		PriceID:       p.PriceID,
		CommodityID:   p.CommodityID,
		UnitID:        p.UnitID,
		Price:         p.Price,
		Date:          p.Date.Format("2006-01-02"),
		Backend:       p.Backend,
		CreatedAt:     p.CreatedAt,
		LastUpdatedAt: p.LastUpdatedAt,
	}
}

// ToListPriceResponse converts a slice of prices to response DTOs.
func ToListPriceResponse(prices []domain.Price) []PriceResponse {
	res := make([]PriceResponse, len(prices))
	for i := range prices {
		res[i] = ToPriceResponse(&prices[i])
	}
	return res
}
