package backends

import (
	"context"
	"testing"
	"time"

	"github.com/finbook/finbook_app/internal/apperrors"
	"github.com/finbook/finbook_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock repositories ---

type mockCommodityRepo struct {
	mock.Mock
}

func (m *mockCommodityRepo) FindCommodityByID(ctx context.Context, commodityID int64) (*domain.Commodity, error) {
	args := m.Called(ctx, commodityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Commodity), args.Error(1)
}

func (m *mockCommodityRepo) FindCommodityByCode(ctx context.Context, code string) (*domain.Commodity, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Commodity), args.Error(1)
}

func (m *mockCommodityRepo) ListCommodities(ctx context.Context) ([]domain.Commodity, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Commodity), args.Error(1)
}

func (m *mockCommodityRepo) ListAutoUpdating(ctx context.Context, backend domain.BackendKind, types []domain.CommodityType) ([]domain.Commodity, error) {
	args := m.Called(ctx, backend, types)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Commodity), args.Error(1)
}

func (m *mockCommodityRepo) SaveCommodity(ctx context.Context, commodity *domain.Commodity) error {
	args := m.Called(ctx, commodity)
	return args.Error(0)
}

func (m *mockCommodityRepo) GetOrCreateCommodity(ctx context.Context, name, code string, commodityType domain.CommodityType) (*domain.Commodity, error) {
	args := m.Called(ctx, name, code, commodityType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Commodity), args.Error(1)
}

type mockPriceRepo struct {
	mock.Mock
}

func (m *mockPriceRepo) ListPricesByCommodity(ctx context.Context, commodityID int64) ([]domain.Price, error) {
	args := m.Called(ctx, commodityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Price), args.Error(1)
}

func (m *mockPriceRepo) LatestPrices(ctx context.Context) ([]domain.Price, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Price), args.Error(1)
}

func (m *mockPriceRepo) LatestDates(ctx context.Context, backend string, commodityIDs []int64, unitID *int64) (map[int64]time.Time, error) {
	args := m.Called(ctx, backend, commodityIDs, unitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]time.Time), args.Error(1)
}

func (m *mockPriceRepo) SavePrice(ctx context.Context, price *domain.Price) error {
	args := m.Called(ctx, price)
	return args.Error(0)
}

func (m *mockPriceRepo) BulkInsertPrices(ctx context.Context, prices []domain.Price) (int64, error) {
	args := m.Called(ctx, prices)
	return args.Get(0).(int64), args.Error(1)
}

// --- Tests ---

func TestBaseBackendFetchPricesNotImplemented(t *testing.T) {
	b := &baseBackend{name: "Custom"}

	quotes, err := b.FetchPrices(context.Background(), nil, "7d")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotImplemented)
	assert.Nil(t, quotes)
}

func TestBaseBackendFetchCommoditiesFiltersByCapabilities(t *testing.T) {
	repo := new(mockCommodityRepo)
	b := &baseBackend{
		name:          "Yahoo Finance",
		tag:           domain.BackendYahoo,
		capabilities:  []domain.CommodityType{domain.CommodityCurrency},
		commodityRepo: repo,
	}

	usd := domain.Commodity{CommodityID: 2, Code: "USD", CommodityType: domain.CommodityCurrency}
	repo.On("ListAutoUpdating", mock.Anything, domain.BackendYahoo, []domain.CommodityType{domain.CommodityCurrency}).
		Return([]domain.Commodity{usd}, nil).Once()

	commodities, err := b.FetchCommodities(context.Background())

	require.NoError(t, err)
	require.Len(t, commodities, 1)
	assert.Equal(t, usd, commodities["USD"])
	repo.AssertExpectations(t)
}

func TestBaseBackendFetchCommoditiesAllCapabilitySkipsTypeFilter(t *testing.T) {
	repo := new(mockCommodityRepo)
	b := &baseBackend{
		name:          "Website Scraper",
		tag:           domain.BackendWebsite,
		capabilities:  []domain.CommodityType{domain.CapabilityAll},
		commodityRepo: repo,
	}

	repo.On("ListAutoUpdating", mock.Anything, domain.BackendWebsite, []domain.CommodityType(nil)).
		Return([]domain.Commodity{}, nil).Once()

	_, err := b.FetchCommodities(context.Background())

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdatePricesPersistsQuotes(t *testing.T) {
	commodityRepo := new(mockCommodityRepo)
	priceRepo := new(mockPriceRepo)

	usd := domain.Commodity{CommodityID: 2, Code: "USD", CommodityType: domain.CommodityCurrency}
	eur := domain.Commodity{CommodityID: 1, Code: "EUR", CommodityType: domain.CommodityCurrency}

	b := &stubBackend{
		baseBackend: baseBackend{
			name:          "Stub",
			tag:           domain.BackendCustom,
			commodityRepo: commodityRepo,
			priceRepo:     priceRepo,
		},
		quotes: []Quote{
			{Commodity: usd, Unit: eur, Price: decimal.RequireFromString("0.9"), Date: time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)},
		},
	}

	commodityRepo.On("ListAutoUpdating", mock.Anything, domain.BackendCustom, []domain.CommodityType(nil)).
		Return([]domain.Commodity{usd}, nil).Once()

	priceRepo.On("BulkInsertPrices", mock.Anything, mock.MatchedBy(func(rows []domain.Price) bool {
		return len(rows) == 1 &&
			rows[0].CommodityID == usd.CommodityID &&
			rows[0].UnitID == eur.CommodityID &&
			rows[0].Backend == "Stub" &&
			rows[0].Price.Equal(decimal.RequireFromString("0.9"))
	})).Return(int64(1), nil).Once()

	err := UpdatePrices(context.Background(), b, priceRepo, "7d")

	require.NoError(t, err)
	priceRepo.AssertExpectations(t)
}

func TestUpdatePricesEmptyRunWritesNothing(t *testing.T) {
	commodityRepo := new(mockCommodityRepo)
	priceRepo := new(mockPriceRepo)

	b := &stubBackend{
		baseBackend: baseBackend{
			name:          "Stub",
			tag:           domain.BackendCustom,
			commodityRepo: commodityRepo,
			priceRepo:     priceRepo,
		},
	}

	commodityRepo.On("ListAutoUpdating", mock.Anything, domain.BackendCustom, []domain.CommodityType(nil)).
		Return([]domain.Commodity{}, nil).Once()
	priceRepo.On("BulkInsertPrices", mock.Anything, []domain.Price{}).Return(int64(0), nil).Once()

	err := UpdatePrices(context.Background(), b, priceRepo, "7d")

	require.NoError(t, err)
}

// stubBackend returns canned quotes.
type stubBackend struct {
	baseBackend
	quotes []Quote
}

func (b *stubBackend) FetchPrices(ctx context.Context, commodities map[string]domain.Commodity, period string) ([]Quote, error) {
	return b.quotes, nil
}
