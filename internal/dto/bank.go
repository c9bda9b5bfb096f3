package dto

import (
	"time"

	"github.com/finbook/finbook_app/internal/core/domain"
)

// CreateBankRequest defines the data needed to create a bank.
type CreateBankRequest struct {
	Name string `json:"name" binding:"required,max=250"`
}

// BankResponse defines the data returned for a bank.
type BankResponse struct {
	BankID        int64     `json:"bankID"`
	Name          string    `json:"name"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ToBankResponse converts a domain.Bank to its response DTO.
func ToBankResponse(b *domain.Bank) BankResponse {
	return BankResponse{
		BankID:        b.BankID,
		Name:          b.Name,
		CreatedAt:     b.CreatedAt,
		LastUpdatedAt: b.LastUpdatedAt,
	}
}

// ToListBankResponse converts a slice of banks to response DTOs.
func ToListBankResponse(banks []domain.Bank) []BankResponse {
	res := make([]BankResponse, len(banks))
	for i := range banks {
		res[i] = ToBankResponse(&banks[i])
	}
	return res
}
