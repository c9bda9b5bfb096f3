package pgsql

import (
	portsrepo "github.com/finbook/finbook_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CommodityRepo:   newPgxCommodityRepository(dbPool),
		PriceRepo:       newPgxPriceRepository(dbPool),
		BankRepo:        newPgxBankRepository(dbPool),
		AccountRepo:     newPgxAccountRepository(dbPool),
		TransactionRepo: newPgxTransactionRepository(dbPool),
		PostingRepo:     newPgxPostingRepository(dbPool),
	}
}
