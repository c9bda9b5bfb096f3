package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/finbook/finbook_app/internal/apperrors"
	"github.com/finbook/finbook_app/internal/core/domain"
	portsrepo "github.com/finbook/finbook_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxTransactionRepository persists transactions in postgres.
type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for transaction data.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (domain.Transaction, error) {
	var t domain.Transaction
	err := row.Scan(&t.TransactionID, &t.Description, &t.Date, &t.CreatedAt, &t.LastUpdatedAt)
	return t, err
}

// SaveTransaction inserts a new transaction and fills in its generated ID.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, transaction *domain.Transaction) error {
	query := `
		INSERT INTO transactions (description, date, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING transaction_id;
	`
	err := r.Pool.QueryRow(ctx, query,
		transaction.Description,
		transaction.Date,
		transaction.CreatedAt,
		transaction.LastUpdatedAt,
	).Scan(&transaction.TransactionID)

	if err != nil {
		return fmt.Errorf("failed to save transaction: %w", mapPgError(err))
	}
	return nil
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID int64) (*domain.Transaction, error) {
	query := `SELECT transaction_id, description, date, created_at, last_updated_at FROM transactions WHERE transaction_id = $1;`
	t, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %d: %w", transactionID, err)
	}
	return &t, nil
}

// ListTransactions retrieves all transactions, newest first.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	query := `SELECT transaction_id, description, date, created_at, last_updated_at FROM transactions ORDER BY date DESC, transaction_id DESC;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	transactions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Transaction, error) {
		return scanTransaction(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan transactions: %w", err)
	}
	return transactions, nil
}

// AssetTotalsByCommodity sums the transaction's posting amounts grouped by
// commodity, counting only postings under ASSETS-type accounts.
func (r *PgxTransactionRepository) AssetTotalsByCommodity(ctx context.Context, transactionID int64) ([]domain.CommodityTotal, error) {
	query := `
		SELECT p.commodity_id, c.code, COALESCE(SUM(p.amount), 0)
		FROM postings p
		JOIN commodities c ON c.commodity_id = p.commodity_id
		JOIN accounts a ON a.account_id = p.account_id
		WHERE p.transaction_id = $1 AND a.account_type = 'assets'
		GROUP BY p.commodity_id, c.code;
	`
	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction totals: %w", err)
	}
	defer rows.Close()

	totals, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CommodityTotal, error) {
		var t domain.CommodityTotal
		err := row.Scan(&t.CommodityID, &t.Code, &t.Total)
		return t, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan transaction totals: %w", err)
	}
	return totals, nil
}
