package services_test

import (
	"context"
	"time"

	"github.com/finbook/finbook_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock CommodityRepository ---

type MockCommodityRepository struct {
	mock.Mock
}

func (m *MockCommodityRepository) FindCommodityByID(ctx context.Context, commodityID int64) (*domain.Commodity, error) {
	args := m.Called(ctx, commodityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Commodity), args.Error(1)
}

func (m *MockCommodityRepository) FindCommodityByCode(ctx context.Context, code string) (*domain.Commodity, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Commodity), args.Error(1)
}

func (m *MockCommodityRepository) ListCommodities(ctx context.Context) ([]domain.Commodity, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Commodity), args.Error(1)
}

func (m *MockCommodityRepository) ListAutoUpdating(ctx context.Context, backend domain.BackendKind, types []domain.CommodityType) ([]domain.Commodity, error) {
	args := m.Called(ctx, backend, types)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Commodity), args.Error(1)
}

func (m *MockCommodityRepository) SaveCommodity(ctx context.Context, commodity *domain.Commodity) error {
	args := m.Called(ctx, commodity)
	return args.Error(0)
}

func (m *MockCommodityRepository) GetOrCreateCommodity(ctx context.Context, name, code string, commodityType domain.CommodityType) (*domain.Commodity, error) {
	args := m.Called(ctx, name, code, commodityType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Commodity), args.Error(1)
}

// --- Mock PriceRepository ---

type MockPriceRepository struct {
	mock.Mock
}

func (m *MockPriceRepository) ListPricesByCommodity(ctx context.Context, commodityID int64) ([]domain.Price, error) {
	args := m.Called(ctx, commodityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Price), args.Error(1)
}

func (m *MockPriceRepository) LatestPrices(ctx context.Context) ([]domain.Price, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Price), args.Error(1)
}

func (m *MockPriceRepository) LatestDates(ctx context.Context, backend string, commodityIDs []int64, unitID *int64) (map[int64]time.Time, error) {
	args := m.Called(ctx, backend, commodityIDs, unitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]time.Time), args.Error(1)
}

func (m *MockPriceRepository) SavePrice(ctx context.Context, price *domain.Price) error {
	args := m.Called(ctx, price)
	return args.Error(0)
}

func (m *MockPriceRepository) BulkInsertPrices(ctx context.Context, prices []domain.Price) (int64, error) {
	args := m.Called(ctx, prices)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) TotalsByCommodity(ctx context.Context, accountID int64) ([]domain.CommodityTotal, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CommodityTotal), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// --- Mock PostingRepository ---

// MockPostingRepository mocks PostingRepositoryWithTx. Transaction handles
// are passed through untouched, so tests use a nil pgx.Tx.
type MockPostingRepository struct {
	mock.Mock
}

func (m *MockPostingRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockPostingRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockPostingRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockPostingRepository) FindPostingByID(ctx context.Context, postingID int64) (*domain.Posting, error) {
	args := m.Called(ctx, postingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Posting), args.Error(1)
}

func (m *MockPostingRepository) ListPostingsByTransaction(ctx context.Context, transactionID int64) ([]domain.Posting, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Posting), args.Error(1)
}

func (m *MockPostingRepository) SavePosting(ctx context.Context, tx pgx.Tx, posting *domain.Posting) error {
	args := m.Called(ctx, tx, posting)
	return args.Error(0)
}

func (m *MockPostingRepository) FindBalancePosting(ctx context.Context, tx pgx.Tx, transactionID int64) (*domain.Posting, error) {
	args := m.Called(ctx, tx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Posting), args.Error(1)
}

func (m *MockPostingRepository) ListPostingsByTransactionTx(ctx context.Context, tx pgx.Tx, transactionID int64) ([]domain.Posting, error) {
	args := m.Called(ctx, tx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Posting), args.Error(1)
}

func (m *MockPostingRepository) UpdatePostingAmount(ctx context.Context, tx pgx.Tx, postingID int64, amount decimal.Decimal) error {
	args := m.Called(ctx, tx, postingID, amount)
	return args.Error(0)
}
