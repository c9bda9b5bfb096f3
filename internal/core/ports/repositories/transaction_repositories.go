package repositories

import (
	"context"

	"github.com/finbook/finbook_app/internal/core/domain"
)

// TransactionReader defines read operations for transaction data.
type TransactionReader interface {
	FindTransactionByID(ctx context.Context, transactionID int64) (*domain.Transaction, error)
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)

	// AssetTotalsByCommodity sums the transaction's posting amounts grouped by
	// commodity, restricted to postings under ASSETS-type accounts. Feeds the
	// transaction's derived display balance.
	AssetTotalsByCommodity(ctx context.Context, transactionID int64) ([]domain.CommodityTotal, error)
}

// TransactionWriter defines write operations for transaction data.
type TransactionWriter interface {
	// SaveTransaction inserts a new transaction and fills in its generated ID.
	SaveTransaction(ctx context.Context, transaction *domain.Transaction) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
