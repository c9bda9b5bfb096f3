package services_test

import (
	"context"
	"testing"

	"github.com/finbook/finbook_app/internal/apperrors"
	"github.com/finbook/finbook_app/internal/core/domain"
	portssvc "github.com/finbook/finbook_app/internal/core/ports/services"
	"github.com/finbook/finbook_app/internal/core/services"
	"github.com/finbook/finbook_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockBankRepository struct {
	mock.Mock
}

func (m *MockBankRepository) SaveBank(ctx context.Context, bank *domain.Bank) error {
	args := m.Called(ctx, bank)
	return args.Error(0)
}

func (m *MockBankRepository) FindBankByID(ctx context.Context, bankID int64) (*domain.Bank, error) {
	args := m.Called(ctx, bankID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bank), args.Error(1)
}

func (m *MockBankRepository) ListBanks(ctx context.Context) ([]domain.Bank, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bank), args.Error(1)
}

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo   *MockAccountRepository
	mockBankRepo      *MockBankRepository
	mockCommodityRepo *MockCommodityRepository
	mockPriceRepo     *MockPriceRepository
	service           portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockBankRepo = new(MockBankRepository)
	suite.mockCommodityRepo = new(MockCommodityRepository)
	suite.mockPriceRepo = new(MockPriceRepository)

	commoditySvc := services.NewCommodityService(suite.mockCommodityRepo, suite.mockPriceRepo, "Euro", "EUR")
	suite.service = services.NewAccountService(suite.mockAccountRepo, suite.mockBankRepo, commoditySvc)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DefaultsToBaseCurrency() {
	ctx := context.Background()
	eur := domain.Commodity{CommodityID: 1, Code: "EUR", CommodityType: domain.CommodityCurrency}

	suite.mockCommodityRepo.On("GetOrCreateCommodity", ctx, "Euro", "EUR", domain.CommodityCurrency).Return(&eur, nil).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a *domain.Account) bool {
		return a.DefaultCurrencyID == eur.CommodityID && a.AccountType == domain.AccountOther
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{Name: "Wallet"})

	suite.Require().NoError(err)
	suite.Equal(eur.CommodityID, account.DefaultCurrencyID)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_RejectsNonCurrency() {
	ctx := context.Background()
	meta := domain.Commodity{CommodityID: 9, Code: "META", CommodityType: domain.CommodityStock}

	suite.mockCommodityRepo.On("FindCommodityByCode", ctx, "META").Return(&meta, nil).Once()

	_, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{Name: "Broker", DefaultCurrencyCode: "META"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestGetBalance_ConvertsForeignTotals() {
	ctx := context.Background()
	eur := domain.Commodity{CommodityID: 1, Code: "EUR", CommodityType: domain.CommodityCurrency}
	usd := domain.Commodity{CommodityID: 2, Code: "USD", CommodityType: domain.CommodityCurrency}
	account := &domain.Account{AccountID: 10, Name: "Checking", DefaultCurrencyID: eur.CommodityID}

	suite.mockAccountRepo.On("FindAccountByID", ctx, int64(10)).Return(account, nil).Once()
	suite.mockCommodityRepo.On("FindCommodityByID", ctx, eur.CommodityID).Return(&eur, nil)
	suite.mockCommodityRepo.On("FindCommodityByID", ctx, usd.CommodityID).Return(&usd, nil)
	suite.mockAccountRepo.On("TotalsByCommodity", ctx, int64(10)).Return([]domain.CommodityTotal{
		{CommodityID: eur.CommodityID, Code: "EUR", Total: decimal.NewFromInt(50)},
		{CommodityID: usd.CommodityID, Code: "USD", Total: decimal.NewFromInt(100)},
	}, nil).Once()
	suite.mockPriceRepo.On("LatestPrices", ctx).Return([]domain.Price{
		{CommodityID: usd.CommodityID, UnitID: eur.CommodityID, Price: decimal.RequireFromString("0.9")},
	}, nil).Once()

	balance, err := suite.service.GetBalance(ctx, 10)

	suite.Require().NoError(err)
	// 50 EUR + 100 USD * 0.9 = 140 EUR.
	suite.Equal("EUR", balance.Currency().Code)
	suite.Equal(int64(14000), balance.Amount())
}

func (suite *AccountServiceTestSuite) TestGetBalance_UnknownAccount() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByID", ctx, int64(404)).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetBalance(ctx, 404)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
