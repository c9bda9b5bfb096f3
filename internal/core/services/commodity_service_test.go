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

type CommodityServiceTestSuite struct {
	suite.Suite
	mockCommodityRepo *MockCommodityRepository
	mockPriceRepo     *MockPriceRepository
	service           portssvc.CommoditySvcFacade
}

func (suite *CommodityServiceTestSuite) SetupTest() {
	suite.mockCommodityRepo = new(MockCommodityRepository)
	suite.mockPriceRepo = new(MockPriceRepository)
	suite.service = services.NewCommodityService(suite.mockCommodityRepo, suite.mockPriceRepo, "Euro", "EUR")
}

func (suite *CommodityServiceTestSuite) eur() domain.Commodity {
	return domain.Commodity{CommodityID: 1, Name: "Euro", Code: "EUR", CommodityType: domain.CommodityCurrency}
}

func (suite *CommodityServiceTestSuite) usd() domain.Commodity {
	return domain.Commodity{CommodityID: 2, Name: "US Dollar", Code: "USD", CommodityType: domain.CommodityCurrency}
}

func (suite *CommodityServiceTestSuite) TestCreateCommodity_UppercasesCode() {
	ctx := context.Background()
	req := dto.CreateCommodityRequest{Name: "US Dollar", Code: "usd", CommodityType: domain.CommodityCurrency}

	suite.mockCommodityRepo.On("SaveCommodity", ctx, mock.MatchedBy(func(c *domain.Commodity) bool {
		return c.Code == "USD" && c.CommodityType == domain.CommodityCurrency
	})).Return(nil).Once()

	created, err := suite.service.CreateCommodity(ctx, req)

	suite.Require().NoError(err)
	suite.Equal("USD", created.Code)
	suite.mockCommodityRepo.AssertExpectations(suite.T())
}

func (suite *CommodityServiceTestSuite) TestCreateCommodity_DefaultsTypeToOther() {
	ctx := context.Background()
	req := dto.CreateCommodityRequest{Name: "Gold", Code: "XAU"}

	suite.mockCommodityRepo.On("SaveCommodity", ctx, mock.MatchedBy(func(c *domain.Commodity) bool {
		return c.CommodityType == domain.CommodityOther
	})).Return(nil).Once()

	_, err := suite.service.CreateCommodity(ctx, req)

	suite.Require().NoError(err)
	suite.mockCommodityRepo.AssertExpectations(suite.T())
}

func (suite *CommodityServiceTestSuite) TestConvertTo_UnknownCodeFallsBackToIdentity() {
	ctx := context.Background()

	suite.mockCommodityRepo.On("FindCommodityByCode", ctx, "XXX").Return(nil, apperrors.ErrNotFound).Once()

	factor, err := suite.service.ConvertTo(ctx, suite.usd(), "XXX")

	suite.Require().NoError(err)
	suite.True(factor.Equal(decimal.NewFromInt(1)), "got %s", factor)
	suite.mockPriceRepo.AssertNotCalled(suite.T(), "LatestPrices")
}

func (suite *CommodityServiceTestSuite) TestConvertTo_DirectRate() {
	ctx := context.Background()
	eur := suite.eur()

	suite.mockCommodityRepo.On("FindCommodityByCode", ctx, "EUR").Return(&eur, nil).Once()
	suite.mockPriceRepo.On("LatestPrices", ctx).Return([]domain.Price{
		{CommodityID: 2, UnitID: 1, Price: decimal.RequireFromString("0.9")},
	}, nil).Once()

	factor, err := suite.service.ConvertTo(ctx, suite.usd(), "EUR")

	suite.Require().NoError(err)
	suite.True(factor.Equal(decimal.RequireFromString("0.9")), "got %s", factor)
}

func (suite *CommodityServiceTestSuite) TestFactor_Identity() {
	ctx := context.Background()

	factor, found, err := suite.service.Factor(ctx, suite.usd(), suite.usd())

	suite.Require().NoError(err)
	suite.True(found)
	suite.True(factor.Equal(decimal.NewFromInt(1)))
	suite.mockPriceRepo.AssertNotCalled(suite.T(), "LatestPrices")
}

func (suite *CommodityServiceTestSuite) TestFactor_NoPathReportsNotFound() {
	ctx := context.Background()

	suite.mockPriceRepo.On("LatestPrices", ctx).Return([]domain.Price{}, nil).Once()

	factor, found, err := suite.service.Factor(ctx, suite.usd(), suite.eur())

	suite.Require().NoError(err)
	suite.False(found)
	suite.True(factor.Equal(decimal.NewFromInt(1)), "fallback factor must be 1, got %s", factor)
}

func (suite *CommodityServiceTestSuite) TestConvertToCommodity_DisconnectedFallsBackToIdentity() {
	ctx := context.Background()

	suite.mockPriceRepo.On("LatestPrices", ctx).Return([]domain.Price{
		{CommodityID: 5, UnitID: 6, Price: decimal.RequireFromString("3")},
	}, nil).Once()

	factor, err := suite.service.ConvertToCommodity(ctx, suite.usd(), suite.eur())

	suite.Require().NoError(err)
	suite.True(factor.Equal(decimal.NewFromInt(1)), "got %s", factor)
}

func (suite *CommodityServiceTestSuite) TestEnsureBaseCurrency() {
	ctx := context.Background()
	eur := suite.eur()

	suite.mockCommodityRepo.On("GetOrCreateCommodity", ctx, "Euro", "EUR", domain.CommodityCurrency).Return(&eur, nil).Once()

	base, err := suite.service.EnsureBaseCurrency(ctx)

	suite.Require().NoError(err)
	suite.Equal("EUR", base.Code)
	suite.mockCommodityRepo.AssertExpectations(suite.T())
}

func TestCommodityServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CommodityServiceTestSuite))
}
