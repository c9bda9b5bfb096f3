package services

import (
	"context"

	"github.com/finbook/finbook_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostingSvcFacade defines the posting save pipeline and the balancer.
type PostingSvcFacade interface {
	// SavePosting runs the full write pipeline: currency validation, foreign
	// amount normalization, balance flagging, persistence and the sibling
	// balance-posting recompute, all within one database transaction.
	SavePosting(ctx context.Context, posting *domain.Posting) error

	// GetPostingByID returns a single posting.
	GetPostingByID(ctx context.Context, postingID int64) (*domain.Posting, error)

	// CalculateBalanceAmount returns the amount that makes the posting's
	// transaction net to zero in the posting's own commodity: the negated,
	// conversion-adjusted sum of all non-balance sibling postings.
	CalculateBalanceAmount(ctx context.Context, posting domain.Posting) (decimal.Decimal, error)
}
