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
	"github.com/shopspring/decimal"
)

const postingColumns = `posting_id, transaction_id, account_id, amount, commodity_id, foreign_amount, foreign_commodity_id, is_balance_posting, created_at, last_updated_at`

// PgxPostingRepository persists postings in postgres. Write methods take an
// explicit pgx.Tx because a posting save and the transaction's balance
// recompute must commit together.
type PgxPostingRepository struct {
	BaseRepository
}

// newPgxPostingRepository creates a new repository for posting data.
func newPgxPostingRepository(pool *pgxpool.Pool) portsrepo.PostingRepositoryWithTx {
	return &PgxPostingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PostingRepositoryWithTx = (*PgxPostingRepository)(nil)

func scanPosting(row pgx.Row) (domain.Posting, error) {
	var p domain.Posting
	err := row.Scan(
		&p.PostingID,
		&p.TransactionID,
		&p.AccountID,
		&p.Amount,
		&p.CommodityID,
		&p.ForeignAmount,
		&p.ForeignCommodityID,
		&p.IsBalancePosting,
		&p.CreatedAt,
		&p.LastUpdatedAt,
	)
	return p, err
}

// SavePosting inserts the posting when its ID is zero, otherwise updates the
// existing row in place.
func (r *PgxPostingRepository) SavePosting(ctx context.Context, tx pgx.Tx, posting *domain.Posting) error {
	if posting.PostingID == 0 {
		query := `
			INSERT INTO postings (transaction_id, account_id, amount, commodity_id, foreign_amount, foreign_commodity_id, is_balance_posting, created_at, last_updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING posting_id;
		`
		err := tx.QueryRow(ctx, query,
			posting.TransactionID,
			posting.AccountID,
			posting.Amount,
			posting.CommodityID,
			posting.ForeignAmount,
			posting.ForeignCommodityID,
			posting.IsBalancePosting,
			posting.CreatedAt,
			posting.LastUpdatedAt,
		).Scan(&posting.PostingID)

		if err != nil {
			return fmt.Errorf("failed to save posting: %w", mapPgError(err))
		}
		return nil
	}

	query := `
		UPDATE postings
		SET transaction_id = $2, account_id = $3, amount = $4, commodity_id = $5,
		    foreign_amount = $6, foreign_commodity_id = $7, is_balance_posting = $8,
		    last_updated_at = $9
		WHERE posting_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		posting.PostingID,
		posting.TransactionID,
		posting.AccountID,
		posting.Amount,
		posting.CommodityID,
		posting.ForeignAmount,
		posting.ForeignCommodityID,
		posting.IsBalancePosting,
		posting.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update posting %d: %w", posting.PostingID, mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindBalancePosting returns the transaction's balance posting. With more
// than one flagged row the lowest posting ID wins.
func (r *PgxPostingRepository) FindBalancePosting(ctx context.Context, tx pgx.Tx, transactionID int64) (*domain.Posting, error) {
	query := `
		SELECT ` + postingColumns + `
		FROM postings
		WHERE transaction_id = $1 AND is_balance_posting = true
		ORDER BY posting_id
		LIMIT 1;
	`
	p, err := scanPosting(tx.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find balance posting for transaction %d: %w", transactionID, err)
	}
	return &p, nil
}

// ListPostingsByTransactionTx lists the transaction's postings within tx.
func (r *PgxPostingRepository) ListPostingsByTransactionTx(ctx context.Context, tx pgx.Tx, transactionID int64) ([]domain.Posting, error) {
	query := `
		SELECT ` + postingColumns + `
		FROM postings
		WHERE transaction_id = $1
		ORDER BY posting_id;
	`
	rows, err := tx.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query postings: %w", err)
	}
	defer rows.Close()

	postings, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Posting, error) {
		return scanPosting(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan postings: %w", err)
	}
	return postings, nil
}

// UpdatePostingAmount rewrites only the amount column. The balance recompute
// uses this so that updating the balance posting does not loop back through
// the posting save pipeline.
func (r *PgxPostingRepository) UpdatePostingAmount(ctx context.Context, tx pgx.Tx, postingID int64, amount decimal.Decimal) error {
	query := `UPDATE postings SET amount = $2, last_updated_at = now() WHERE posting_id = $1;`
	tag, err := tx.Exec(ctx, query, postingID, amount)
	if err != nil {
		return fmt.Errorf("failed to update posting %d amount: %w", postingID, mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindPostingByID retrieves a posting by its ID.
func (r *PgxPostingRepository) FindPostingByID(ctx context.Context, postingID int64) (*domain.Posting, error) {
	query := `SELECT ` + postingColumns + ` FROM postings WHERE posting_id = $1;`
	p, err := scanPosting(r.Pool.QueryRow(ctx, query, postingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find posting %d: %w", postingID, err)
	}
	return &p, nil
}

// ListPostingsByTransaction lists the transaction's postings outside any
// explicit transaction.
func (r *PgxPostingRepository) ListPostingsByTransaction(ctx context.Context, transactionID int64) ([]domain.Posting, error) {
	query := `
		SELECT ` + postingColumns + `
		FROM postings
		WHERE transaction_id = $1
		ORDER BY posting_id;
	`
	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query postings: %w", err)
	}
	defer rows.Close()

	postings, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Posting, error) {
		return scanPosting(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan postings: %w", err)
	}
	return postings, nil
}
