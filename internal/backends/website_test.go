package backends

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/finbook/finbook_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestExtractPriceWithSelector(t *testing.T) {
	markup := []byte(`<html><body><div><span id="p">123.45</span></div></body></html>`)

	price, err := extractPrice(markup, "//span[@id='p']")

	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.RequireFromString("123.45")), "got %s", price)
}

func TestExtractPriceMissingNodeIsAnError(t *testing.T) {
	markup := []byte(`<html><body><div>no price here</div></body></html>`)

	_, err := extractPrice(markup, "//span[@id='missing']")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no price element")
}

func TestExtractPriceRootFallback(t *testing.T) {
	markup := []byte(`<price> 42.5 </price>`)

	price, err := extractPrice(markup, "")

	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.RequireFromString("42.5")), "got %s", price)
}

func TestExtractPriceNonNumericIsAnError(t *testing.T) {
	markup := []byte(`<html><body><span id="p">n/a</span></body></html>`)

	_, err := extractPrice(markup, "//span[@id='p']")

	require.Error(t, err)
}

func newScraperFixture(t *testing.T, handler http.HandlerFunc) (*WebsiteBackend, *mockCommodityRepo, *mockPriceRepo, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	commodityRepo := new(mockCommodityRepo)
	priceRepo := new(mockPriceRepo)
	backend := NewWebsiteBackend(commodityRepo, priceRepo, "EUR", server.Client())
	return backend, commodityRepo, priceRepo, server
}

func TestWebsiteBackendFetchPrices(t *testing.T) {
	backend, commodityRepo, priceRepo, server := newScraperFixture(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><span id="price">55.5</span></body></html>`))
	})

	eurID := int64(1)
	eur := domain.Commodity{CommodityID: eurID, Code: "EUR", CommodityType: domain.CommodityCurrency}
	fund := domain.Commodity{
		CommodityID:       7,
		Code:              "FUNDX",
		CommodityType:     domain.CommodityFund,
		Website:           server.URL,
		PriceSelector:     "//span[@id='price']",
		WebsiteCurrencyID: &eurID,
	}

	priceRepo.On("LatestDates", mock.Anything, "Website Scraper", []int64{7}, (*int64)(nil)).
		Return(map[int64]time.Time{}, nil).Once()
	commodityRepo.On("FindCommodityByID", mock.Anything, eurID).Return(&eur, nil).Once()

	quotes, err := backend.FetchPrices(context.Background(), map[string]domain.Commodity{"FUNDX": fund}, "7d")

	require.NoError(t, err)
	require.Len(t, quotes, 1)
	assert.Equal(t, fund.CommodityID, quotes[0].Commodity.CommodityID)
	assert.Equal(t, eur.CommodityID, quotes[0].Unit.CommodityID)
	assert.True(t, quotes[0].Price.Equal(decimal.RequireFromString("55.5")), "got %s", quotes[0].Price)
}

func TestWebsiteBackendMissingPriceNodeFailsTheRun(t *testing.T) {
	backend, commodityRepo, priceRepo, server := newScraperFixture(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><div>nothing to see</div></body></html>`))
	})

	eurID := int64(1)
	eur := domain.Commodity{CommodityID: eurID, Code: "EUR", CommodityType: domain.CommodityCurrency}
	fund := domain.Commodity{
		CommodityID:       7,
		Code:              "FUNDX",
		Website:           server.URL,
		PriceSelector:     "//span[@id='price']",
		WebsiteCurrencyID: &eurID,
	}

	priceRepo.On("LatestDates", mock.Anything, "Website Scraper", []int64{7}, (*int64)(nil)).
		Return(map[int64]time.Time{}, nil).Once()
	commodityRepo.On("FindCommodityByID", mock.Anything, eurID).Return(&eur, nil).Once()

	_, err := backend.FetchPrices(context.Background(), map[string]domain.Commodity{"FUNDX": fund}, "7d")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no price element")
}

func TestWebsiteBackendSkipsCommoditiesPricedToday(t *testing.T) {
	requests := 0
	backend, _, priceRepo, server := newScraperFixture(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
	})

	eurID := int64(1)
	fund := domain.Commodity{
		CommodityID:       7,
		Code:              "FUNDX",
		Website:           server.URL,
		WebsiteCurrencyID: &eurID,
	}

	priceRepo.On("LatestDates", mock.Anything, "Website Scraper", []int64{7}, (*int64)(nil)).
		Return(map[int64]time.Time{7: time.Now().UTC()}, nil).Once()

	quotes, err := backend.FetchPrices(context.Background(), map[string]domain.Commodity{"FUNDX": fund}, "7d")

	require.NoError(t, err)
	assert.Empty(t, quotes)
	assert.Zero(t, requests, "no HTTP request expected for a commodity already priced today")
}

func TestWebsiteBackendMissingWebsiteCurrencyIsAnError(t *testing.T) {
	backend, _, priceRepo, server := newScraperFixture(t, func(w http.ResponseWriter, r *http.Request) {})

	fund := domain.Commodity{CommodityID: 7, Code: "FUNDX", Website: server.URL}

	priceRepo.On("LatestDates", mock.Anything, "Website Scraper", []int64{7}, (*int64)(nil)).
		Return(map[int64]time.Time{}, nil).Once()

	_, err := backend.FetchPrices(context.Background(), map[string]domain.Commodity{"FUNDX": fund}, "7d")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no website currency")
}
