package services

import (
	"context"

	"github.com/finbook/finbook_app/internal/core/domain"
	"github.com/finbook/finbook_app/internal/dto"
)

// BankSvcFacade defines the business operations for banks.
type BankSvcFacade interface {
	CreateBank(ctx context.Context, req dto.CreateBankRequest) (*domain.Bank, error)
	GetBankByID(ctx context.Context, bankID int64) (*domain.Bank, error)
	ListBanks(ctx context.Context) ([]domain.Bank, error)
}
