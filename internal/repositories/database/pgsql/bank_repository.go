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

// PgxBankRepository persists banks in postgres.
type PgxBankRepository struct {
	BaseRepository
}

// newPgxBankRepository creates a new repository for bank data.
func newPgxBankRepository(pool *pgxpool.Pool) portsrepo.BankRepositoryFacade {
	return &PgxBankRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.BankRepositoryFacade = (*PgxBankRepository)(nil)

// SaveBank inserts a new bank and fills in its generated ID.
func (r *PgxBankRepository) SaveBank(ctx context.Context, bank *domain.Bank) error {
	query := `
		INSERT INTO banks (name, created_at, last_updated_at)
		VALUES ($1, $2, $3)
		RETURNING bank_id;
	`
	err := r.Pool.QueryRow(ctx, query, bank.Name, bank.CreatedAt, bank.LastUpdatedAt).Scan(&bank.BankID)
	if err != nil {
		return fmt.Errorf("failed to save bank %s: %w", bank.Name, mapPgError(err))
	}
	return nil
}

// FindBankByID retrieves a bank by its ID.
func (r *PgxBankRepository) FindBankByID(ctx context.Context, bankID int64) (*domain.Bank, error) {
	query := `SELECT bank_id, name, created_at, last_updated_at FROM banks WHERE bank_id = $1;`
	var b domain.Bank
	err := r.Pool.QueryRow(ctx, query, bankID).Scan(&b.BankID, &b.Name, &b.CreatedAt, &b.LastUpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find bank %d: %w", bankID, err)
	}
	return &b, nil
}

// ListBanks retrieves all banks ordered by name.
func (r *PgxBankRepository) ListBanks(ctx context.Context) ([]domain.Bank, error) {
	query := `SELECT bank_id, name, created_at, last_updated_at FROM banks ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query banks: %w", err)
	}
	defer rows.Close()

	banks, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Bank, error) {
		var b domain.Bank
		err := row.Scan(&b.BankID, &b.Name, &b.CreatedAt, &b.LastUpdatedAt)
		return b, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan banks: %w", err)
	}
	return banks, nil
}
