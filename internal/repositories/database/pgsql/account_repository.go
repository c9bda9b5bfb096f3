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

const accountColumns = `account_id, name, account_type, parent_account_id, bank_id, default_currency_id, created_at, last_updated_at`

// PgxAccountRepository persists ledger accounts in postgres.
type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (domain.Account, error) {
	var a domain.Account
	err := row.Scan(
		&a.AccountID,
		&a.Name,
		&a.AccountType,
		&a.ParentAccountID,
		&a.BankID,
		&a.DefaultCurrencyID,
		&a.CreatedAt,
		&a.LastUpdatedAt,
	)
	return a, err
}

// SaveAccount inserts a new account and fills in its generated ID. The
// sibling-name uniqueness constraint surfaces as apperrors.ErrDuplicate.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (name, account_type, parent_account_id, bank_id, default_currency_id, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING account_id;
	`
	err := r.Pool.QueryRow(ctx, query,
		account.Name,
		account.AccountType,
		account.ParentAccountID,
		account.BankID,
		account.DefaultCurrencyID,
		account.CreatedAt,
		account.LastUpdatedAt,
	).Scan(&account.AccountID)

	if err != nil {
		return fmt.Errorf("failed to save account %s: %w", account.Name, mapPgError(err))
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	a, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account %d: %w", accountID, err)
	}
	return &a, nil
}

// ListAccounts retrieves all accounts ordered by name.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Account, error) {
		return scanAccount(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan accounts: %w", err)
	}
	return accounts, nil
}

// TotalsByCommodity sums the account's posting amounts grouped by commodity.
func (r *PgxAccountRepository) TotalsByCommodity(ctx context.Context, accountID int64) ([]domain.CommodityTotal, error) {
	query := `
		SELECT p.commodity_id, c.code, COALESCE(SUM(p.amount), 0)
		FROM postings p
		JOIN commodities c ON c.commodity_id = p.commodity_id
		WHERE p.account_id = $1
		GROUP BY p.commodity_id, c.code;
	`
	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query account totals: %w", err)
	}
	defer rows.Close()

	totals, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CommodityTotal, error) {
		var t domain.CommodityTotal
		err := row.Scan(&t.CommodityID, &t.Code, &t.Total)
		return t, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan account totals: %w", err)
	}
	return totals, nil
}
