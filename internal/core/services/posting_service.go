package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/finbook/finbook_app/internal/apperrors"
	"github.com/finbook/finbook_app/internal/core/domain"
	portsrepo "github.com/finbook/finbook_app/internal/core/ports/repositories"
	portssvc "github.com/finbook/finbook_app/internal/core/ports/services"
	"github.com/finbook/finbook_app/internal/middleware"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ErrCurrencyMismatch is returned when neither the posting's commodity nor
// its foreign commodity matches the account's default currency.
var ErrCurrencyMismatch = errors.New("either the commodity or the foreign commodity must equal the account's default currency")

// postingService implements the posting save pipeline and the ledger
// balancer: after every posting write, the transaction's designated balance
// posting is recomputed so the transaction nets to zero.
type postingService struct {
	postingRepo  portsrepo.PostingRepositoryWithTx
	accountRepo  portsrepo.AccountReader
	commoditySvc portssvc.CommoditySvcFacade
}

// NewPostingService creates a new posting service.
func NewPostingService(postingRepo portsrepo.PostingRepositoryWithTx, accountRepo portsrepo.AccountReader, commoditySvc portssvc.CommoditySvcFacade) portssvc.PostingSvcFacade {
	return &postingService{
		postingRepo:  postingRepo,
		accountRepo:  accountRepo,
		commoditySvc: commoditySvc,
	}
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// SavePosting runs the full write pipeline:
//  1. validate the commodity against the account's default currency
//  2. normalize foreign-currency entries
//  3. flag zero-amount postings as the balance posting
//  4. persist the posting and recompute the sibling balance posting, both
//     inside one database transaction
func (s *postingService) SavePosting(ctx context.Context, posting *domain.Posting) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, posting.AccountID)
	if err != nil {
		return fmt.Errorf("failed to resolve posting account: %w", err)
	}

	// A posting entered without a commodity is in the account's currency.
	if posting.CommodityID == 0 {
		posting.CommodityID = account.DefaultCurrencyID
	}

	if err := s.validateCurrency(posting, account); err != nil {
		return err
	}

	if err := s.normalizeForeign(ctx, posting, account); err != nil {
		return err
	}

	if posting.Amount.IsZero() {
		posting.IsBalancePosting = true
	}

	now := time.Now().UTC()
	if posting.PostingID == 0 {
		posting.CreatedAt = now
	}
	posting.LastUpdatedAt = now

	tx, err := s.postingRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = s.postingRepo.Rollback(ctx, tx)
	}()

	if err := s.postingRepo.SavePosting(ctx, tx, posting); err != nil {
		return fmt.Errorf("failed to save posting: %w", err)
	}

	if err := s.rebalance(ctx, tx, posting.TransactionID); err != nil {
		return err
	}

	if err := s.postingRepo.Commit(ctx, tx); err != nil {
		return err
	}

	logger.Debug("Posting saved",
		slog.Int64("posting_id", posting.PostingID),
		slog.Int64("transaction_id", posting.TransactionID),
		slog.Bool("is_balance_posting", posting.IsBalancePosting),
	)
	return nil
}

// validateCurrency rejects postings where neither leg is anchored to the
// account's native currency.
func (s *postingService) validateCurrency(posting *domain.Posting, account *domain.Account) error {
	if posting.CommodityID == account.DefaultCurrencyID {
		return nil
	}
	if posting.ForeignCommodityID != nil && *posting.ForeignCommodityID == account.DefaultCurrencyID {
		return nil
	}
	return fmt.Errorf("%w: %w (account %d)", apperrors.ErrValidation, ErrCurrencyMismatch, account.AccountID)
}

// normalizeForeign treats a posting whose commodity differs from the account
// currency as a foreign entry. Without an explicit foreign amount, the
// entered amount is converted into the account currency; with one, the
// supplied foreign fields become the primary figures. Either way the original
// entry ends up stashed in the foreign fields.
func (s *postingService) normalizeForeign(ctx context.Context, posting *domain.Posting, account *domain.Account) error {
	if posting.CommodityID == account.DefaultCurrencyID {
		return nil
	}

	foreignAmount := posting.Amount
	foreignCommodityID := posting.CommodityID

	if posting.ForeignAmount.IsZero() {
		from, err := s.commoditySvc.GetCommodityByID(ctx, posting.CommodityID)
		if err != nil {
			return fmt.Errorf("failed to resolve posting commodity: %w", err)
		}
		to, err := s.commoditySvc.GetCommodityByID(ctx, account.DefaultCurrencyID)
		if err != nil {
			return fmt.Errorf("failed to resolve account currency: %w", err)
		}
		factor, err := s.commoditySvc.ConvertToCommodity(ctx, *from, *to)
		if err != nil {
			return err
		}
		posting.Amount = foreignAmount.Mul(factor)
		posting.CommodityID = account.DefaultCurrencyID
	} else {
		posting.Amount = posting.ForeignAmount
		posting.CommodityID = *posting.ForeignCommodityID
	}

	posting.ForeignAmount = foreignAmount
	posting.ForeignCommodityID = &foreignCommodityID
	return nil
}

// rebalance recomputes the transaction's balance posting inside tx. A
// transaction without a balance posting is left unreconciled. The update is a
// targeted amount write that does not re-enter the save pipeline.
func (s *postingService) rebalance(ctx context.Context, tx pgx.Tx, transactionID int64) error {
	balancePosting, err := s.postingRepo.FindBalancePosting(ctx, tx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to locate balance posting: %w", err)
	}

	siblings, err := s.postingRepo.ListPostingsByTransactionTx(ctx, tx, transactionID)
	if err != nil {
		return fmt.Errorf("failed to list transaction postings: %w", err)
	}

	balanceAmount, err := s.balanceAmount(ctx, *balancePosting, siblings)
	if err != nil {
		return err
	}

	// Re-saving a posting with an unchanged amount is a no-op here.
	if balancePosting.Amount.Equal(balanceAmount) {
		return nil
	}

	return s.postingRepo.UpdatePostingAmount(ctx, tx, balancePosting.PostingID, balanceAmount)
}

// GetPostingByID returns a single posting.
func (s *postingService) GetPostingByID(ctx context.Context, postingID int64) (*domain.Posting, error) {
	return s.postingRepo.FindPostingByID(ctx, postingID)
}

// CalculateBalanceAmount returns the negated, conversion-adjusted sum of all
// non-balance sibling postings, i.e. the amount that makes the transaction
// net to zero in the posting's own commodity.
func (s *postingService) CalculateBalanceAmount(ctx context.Context, posting domain.Posting) (decimal.Decimal, error) {
	siblings, err := s.postingRepo.ListPostingsByTransaction(ctx, posting.TransactionID)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to list transaction postings: %w", err)
	}
	return s.balanceAmount(ctx, posting, siblings)
}

// balanceAmount sums the non-balance siblings, converting each into the
// target posting's commodity when they differ.
func (s *postingService) balanceAmount(ctx context.Context, target domain.Posting, siblings []domain.Posting) (decimal.Decimal, error) {
	total := decimal.Zero

	for _, sibling := range siblings {
		if sibling.IsBalancePosting {
			continue
		}

		if sibling.CommodityID == target.CommodityID {
			total = total.Sub(sibling.Amount)
			continue
		}

		from, err := s.commoditySvc.GetCommodityByID(ctx, sibling.CommodityID)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("failed to resolve commodity %d: %w", sibling.CommodityID, err)
		}
		to, err := s.commoditySvc.GetCommodityByID(ctx, target.CommodityID)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("failed to resolve commodity %d: %w", target.CommodityID, err)
		}
		factor, err := s.commoditySvc.ConvertToCommodity(ctx, *from, *to)
		if err != nil {
			return decimal.Decimal{}, err
		}
		total = total.Sub(sibling.Amount.Mul(factor))
	}

	return total, nil
}
