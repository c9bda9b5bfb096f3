package repositories

import (
	"context"

	"github.com/finbook/finbook_app/internal/core/domain"
)

// BankRepositoryFacade defines persistence operations for banks.
type BankRepositoryFacade interface {
	SaveBank(ctx context.Context, bank *domain.Bank) error
	FindBankByID(ctx context.Context, bankID int64) (*domain.Bank, error)
	ListBanks(ctx context.Context) ([]domain.Bank, error)
}
