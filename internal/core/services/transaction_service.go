package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/finbook/finbook_app/internal/apperrors"
	"github.com/finbook/finbook_app/internal/core/domain"
	portsrepo "github.com/finbook/finbook_app/internal/core/ports/repositories"
	portssvc "github.com/finbook/finbook_app/internal/core/ports/services"
	"github.com/finbook/finbook_app/internal/dto"
)

// transactionService provides business logic for transactions and their
// postings.
type transactionService struct {
	transactionRepo portsrepo.TransactionRepositoryFacade
	postingRepo     portsrepo.PostingReader
	postingSvc      portssvc.PostingSvcFacade
	commoditySvc    portssvc.CommoditySvcFacade
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(transactionRepo portsrepo.TransactionRepositoryFacade, postingRepo portsrepo.PostingReader, postingSvc portssvc.PostingSvcFacade, commoditySvc portssvc.CommoditySvcFacade) portssvc.TransactionSvcFacade {
	return &transactionService{
		transactionRepo: transactionRepo,
		postingRepo:     postingRepo,
		postingSvc:      postingSvc,
		commoditySvc:    commoditySvc,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// CreateTransaction persists a transaction and runs each posting through the
// posting save pipeline. The last saved posting's recompute leaves the
// balance leg reconciled.
func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, []domain.Posting, error) {
	date := req.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	now := time.Now().UTC()
	transaction := domain.Transaction{
		Description: req.Description,
		Date:        date.Truncate(24 * time.Hour),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if err := s.transactionRepo.SaveTransaction(ctx, &transaction); err != nil {
		return nil, nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	for _, p := range req.Postings {
		posting := domain.Posting{
			TransactionID: transaction.TransactionID,
			AccountID:     p.AccountID,
			Amount:        p.Amount,
			ForeignAmount: p.ForeignAmount,
		}

		if p.CommodityCode != "" {
			commodity, err := s.commoditySvc.GetCommodityByCode(ctx, p.CommodityCode)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return nil, nil, fmt.Errorf("%w: commodity '%s' not found", apperrors.ErrValidation, p.CommodityCode)
				}
				return nil, nil, fmt.Errorf("failed to resolve commodity '%s': %w", p.CommodityCode, err)
			}
			posting.CommodityID = commodity.CommodityID
		}
		if p.ForeignCommodityCode != "" {
			foreign, err := s.commoditySvc.GetCommodityByCode(ctx, p.ForeignCommodityCode)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return nil, nil, fmt.Errorf("%w: commodity '%s' not found", apperrors.ErrValidation, p.ForeignCommodityCode)
				}
				return nil, nil, fmt.Errorf("failed to resolve commodity '%s': %w", p.ForeignCommodityCode, err)
			}
			posting.ForeignCommodityID = &foreign.CommodityID
		}

		if err := s.postingSvc.SavePosting(ctx, &posting); err != nil {
			return nil, nil, err
		}
	}

	postings, err := s.postingRepo.ListPostingsByTransaction(ctx, transaction.TransactionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load transaction postings: %w", err)
	}
	return &transaction, postings, nil
}

func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID int64) (*domain.Transaction, []domain.Posting, error) {
	transaction, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, nil, err
	}
	postings, err := s.postingRepo.ListPostingsByTransaction(ctx, transactionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load transaction postings: %w", err)
	}
	return transaction, postings, nil
}

func (s *transactionService) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	return s.transactionRepo.ListTransactions(ctx)
}

// GetBalance derives the transaction's display balance from its postings
// under ASSETS accounts, converted into the base currency.
func (s *transactionService) GetBalance(ctx context.Context, transactionID int64) (*money.Money, error) {
	if _, err := s.transactionRepo.FindTransactionByID(ctx, transactionID); err != nil {
		return nil, err
	}

	baseCurrency, err := s.commoditySvc.EnsureBaseCurrency(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to bootstrap base currency: %w", err)
	}

	totals, err := s.transactionRepo.AssetTotalsByCommodity(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate transaction postings: %w", err)
	}

	total, err := sumTotalsInCurrency(ctx, s.commoditySvc, totals, *baseCurrency)
	if err != nil {
		return nil, err
	}
	return moneyFromDecimal(total, baseCurrency.Code), nil
}
