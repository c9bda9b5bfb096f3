package repositories

import (
	"context"

	"github.com/finbook/finbook_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// PostingReader defines read operations for posting data.
type PostingReader interface {
	FindPostingByID(ctx context.Context, postingID int64) (*domain.Posting, error)
	ListPostingsByTransaction(ctx context.Context, transactionID int64) ([]domain.Posting, error)
}

// PostingWriter defines write operations for posting data. The write path
// runs inside an explicit transaction so that a posting save and its balance
// recompute are never observable separately.
type PostingWriter interface {
	// SavePosting inserts the posting (PostingID zero) or updates it in place.
	SavePosting(ctx context.Context, tx pgx.Tx, posting *domain.Posting) error

	// FindBalancePosting returns the transaction's balance posting, first by
	// posting ID if more than one is flagged, or apperrors.ErrNotFound.
	FindBalancePosting(ctx context.Context, tx pgx.Tx, transactionID int64) (*domain.Posting, error)

	// ListPostingsByTransactionTx is ListPostingsByTransaction within tx.
	ListPostingsByTransactionTx(ctx context.Context, tx pgx.Tx, transactionID int64) ([]domain.Posting, error)

	// UpdatePostingAmount is the targeted balance update: it touches only the
	// amount column and deliberately bypasses the posting save pipeline.
	UpdatePostingAmount(ctx context.Context, tx pgx.Tx, postingID int64, amount decimal.Decimal) error
}

// PostingRepositoryFacade combines all posting repository interfaces.
type PostingRepositoryFacade interface {
	PostingReader
	PostingWriter
}

// PostingRepositoryWithTx extends PostingRepositoryFacade with transaction management.
type PostingRepositoryWithTx interface {
	PostingRepositoryFacade
	TransactionManager
}
