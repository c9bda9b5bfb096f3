package services

import (
	"context"

	"github.com/Rhymond/go-money"
	"github.com/finbook/finbook_app/internal/core/domain"
	"github.com/finbook/finbook_app/internal/dto"
)

// TransactionSvcFacade defines the business operations for transactions.
type TransactionSvcFacade interface {
	// CreateTransaction persists a transaction and runs every posting through
	// the posting save pipeline, so the balance leg ends up reconciled.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, []domain.Posting, error)

	GetTransactionByID(ctx context.Context, transactionID int64) (*domain.Transaction, []domain.Posting, error)
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)

	// GetBalance derives the transaction's display balance: the sum of its
	// postings under ASSETS accounts, converted into the base currency.
	GetBalance(ctx context.Context, transactionID int64) (*money.Money, error)
}
