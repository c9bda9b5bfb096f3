package dto

import (
	"time"

	"github.com/finbook/finbook_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCommodityRequest defines the data needed to create a new commodity.
type CreateCommodityRequest struct {
	Name          string               `json:"name" binding:"required,max=100"`
	Code          string               `json:"code" binding:"required,commoditycode"`
	CommodityType domain.CommodityType `json:"commodityType" binding:"omitempty,oneof=currency stock fund warrant asset other"`
	Backend       domain.BackendKind   `json:"backend" binding:"omitempty,oneof=yahoo website custom"`
	AutoUpdate    bool                 `json:"autoUpdate"`

	Website             string `json:"website" binding:"omitempty,url"`
	PriceSelector       string `json:"priceSelector"`
	WebsiteCurrencyCode string `json:"websiteCurrencyCode" binding:"omitempty,commoditycode"`
}

// CommodityResponse defines the data returned for a commodity.
type CommodityResponse struct {
	CommodityID   int64                `json:"commodityID"`
	Name          string               `json:"name"`
	Code          string               `json:"code"`
	CommodityType domain.CommodityType `json:"commodityType"`
	Backend       domain.BackendKind   `json:"backend,omitempty"`
	AutoUpdate    bool                 `json:"autoUpdate"`
	Website       string               `json:"website,omitempty"`
	PriceSelector string               `json:"priceSelector,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
	LastUpdatedAt time.Time            `json:"lastUpdatedAt"`
}

// ConversionResponse is the result of a conversion factor lookup.
type ConversionResponse struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Factor decimal.Decimal `json:"factor"`
}

// ToCommodityResponse converts a domain.Commodity to its response DTO.
func ToCommodityResponse(c *domain.Commodity) CommodityResponse {
	return CommodityResponse{
		CommodityID:   c.CommodityID,
		Name:          c.Name,
		Code:          c.Code,
		CommodityType: c.CommodityType,
		Backend:       c.Backend,
		AutoUpdate:    c.AutoUpdate,
		Website:       c.Website,
		PriceSelector: c.PriceSelector,
		CreatedAt:     c.CreatedAt,
		LastUpdatedAt: c.LastUpdatedAt,
	}
}

// ToListCommodityResponse converts a slice of commodities to response DTOs.
func ToListCommodityResponse(commodities []domain.Commodity) []CommodityResponse {
	res := make([]CommodityResponse, len(commodities))
	for i := range commodities {
		res[i] = ToCommodityResponse(&commodities[i])
	}
	return res
}
