package services

import (
	"context"

	"github.com/Rhymond/go-money"
	"github.com/finbook/finbook_app/internal/core/domain"
	"github.com/finbook/finbook_app/internal/dto"
)

// AccountSvcFacade defines the business operations for ledger accounts.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID int64) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// GetBalance derives the account balance: the signed sum of its postings,
	// converted into the account's default currency.
	GetBalance(ctx context.Context, accountID int64) (*money.Money, error)
}
