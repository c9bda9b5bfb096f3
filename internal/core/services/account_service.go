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
	"github.com/shopspring/decimal"
)

// accountService provides business logic for ledger accounts, including the
// derived balance computation.
type accountService struct {
	accountRepo  portsrepo.AccountRepositoryFacade
	bankRepo     portsrepo.BankRepositoryFacade
	commoditySvc portssvc.CommoditySvcFacade
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, bankRepo portsrepo.BankRepositoryFacade, commoditySvc portssvc.CommoditySvcFacade) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo:  accountRepo,
		bankRepo:     bankRepo,
		commoditySvc: commoditySvc,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount creates a new ledger account. An empty default currency code
// falls back to the configured base currency, which is created on first use.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	accountType := req.AccountType
	if accountType == "" {
		accountType = domain.AccountOther
	}

	var defaultCurrency *domain.Commodity
	var err error
	if req.DefaultCurrencyCode == "" {
		defaultCurrency, err = s.commoditySvc.EnsureBaseCurrency(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to bootstrap base currency: %w", err)
		}
	} else {
		defaultCurrency, err = s.commoditySvc.GetCommodityByCode(ctx, req.DefaultCurrencyCode)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: currency '%s' not found", apperrors.ErrValidation, req.DefaultCurrencyCode)
			}
			return nil, fmt.Errorf("failed to resolve default currency: %w", err)
		}
	}

	// Accounts are denominated in currencies, never in stocks or funds.
	if defaultCurrency.CommodityType != domain.CommodityCurrency {
		return nil, fmt.Errorf("%w: commodity '%s' is not a currency", apperrors.ErrValidation, defaultCurrency.Code)
	}

	if req.BankID != nil {
		if _, err := s.bankRepo.FindBankByID(ctx, *req.BankID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: bank %d not found", apperrors.ErrValidation, *req.BankID)
			}
			return nil, fmt.Errorf("failed to resolve bank: %w", err)
		}
	}

	if req.ParentAccountID != nil {
		if _, err := s.accountRepo.FindAccountByID(ctx, *req.ParentAccountID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent account %d not found", apperrors.ErrValidation, *req.ParentAccountID)
			}
			return nil, fmt.Errorf("failed to resolve parent account: %w", err)
		}
	}

	now := time.Now().UTC()
	account := domain.Account{
		Name:              req.Name,
		AccountType:       accountType,
		ParentAccountID:   req.ParentAccountID,
		BankID:            req.BankID,
		DefaultCurrencyID: defaultCurrency.CommodityID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, &account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

func (s *accountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx)
}

// GetBalance derives the account balance: posting totals per commodity are
// converted into the account's default currency and summed.
func (s *accountService) GetBalance(ctx context.Context, accountID int64) (*money.Money, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	defaultCurrency, err := s.commoditySvc.GetCommodityByID(ctx, account.DefaultCurrencyID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve account currency: %w", err)
	}

	totals, err := s.accountRepo.TotalsByCommodity(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate account postings: %w", err)
	}

	total, err := sumTotalsInCurrency(ctx, s.commoditySvc, totals, *defaultCurrency)
	if err != nil {
		return nil, err
	}
	return moneyFromDecimal(total, defaultCurrency.Code), nil
}

// sumTotalsInCurrency converts per-commodity totals into the target currency
// and sums them. Totals already denominated in the target pass through
// unconverted.
func sumTotalsInCurrency(ctx context.Context, commoditySvc portssvc.CommoditySvcFacade, totals []domain.CommodityTotal, target domain.Commodity) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, t := range totals {
		if t.CommodityID == target.CommodityID {
			sum = sum.Add(t.Total)
			continue
		}
		from, err := commoditySvc.GetCommodityByID(ctx, t.CommodityID)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("failed to resolve commodity %d: %w", t.CommodityID, err)
		}
		factor, err := commoditySvc.ConvertToCommodity(ctx, *from, target)
		if err != nil {
			return decimal.Decimal{}, err
		}
		sum = sum.Add(t.Total.Mul(factor))
	}
	return sum, nil
}
