package repositories

import (
	"context"

	"github.com/finbook/finbook_app/internal/core/domain"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// TotalsByCommodity sums the account's posting amounts grouped by the
	// posting commodity. Balances are derived, never stored.
	TotalsByCommodity(ctx context.Context, accountID int64) ([]domain.CommodityTotal, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccount inserts a new account and fills in its generated ID.
	SaveAccount(ctx context.Context, account *domain.Account) error
}

// AccountRepositoryFacade combines all account repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
