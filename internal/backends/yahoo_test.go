package backends

import (
	"context"
	"fmt"
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

func chartPayload(timestamps []int64, closes []float64) string {
	ts := ""
	cl := ""
	for i := range timestamps {
		if i > 0 {
			ts += ","
			cl += ","
		}
		ts += fmt.Sprintf("%d", timestamps[i])
		cl += fmt.Sprintf("%g", closes[i])
	}
	return fmt.Sprintf(`{"chart":{"result":[{"timestamp":[%s],"indicators":{"quote":[{"close":[%s]}]}}],"error":null}}`, ts, cl)
}

func TestYahooBackendFetchPrices(t *testing.T) {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	dayBefore := today.AddDate(0, 0, -1)
	twoDaysAgo := today.AddDate(0, 0, -2)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "USDEUR=X")
		assert.Equal(t, "7d", r.URL.Query().Get("range"))
		_, _ = w.Write([]byte(chartPayload(
			[]int64{twoDaysAgo.Unix(), dayBefore.Unix(), today.Unix()},
			[]float64{0.89, 0.9, 0.91},
		)))
	}))
	defer server.Close()

	commodityRepo := new(mockCommodityRepo)
	priceRepo := new(mockPriceRepo)
	backend := NewYahooBackend(commodityRepo, priceRepo, "EUR", server.Client())
	backend.chartURL = server.URL

	eur := domain.Commodity{CommodityID: 1, Code: "EUR", CommodityType: domain.CommodityCurrency}
	usd := domain.Commodity{CommodityID: 2, Code: "USD", CommodityType: domain.CommodityCurrency}
	commodities := map[string]domain.Commodity{"EUR": eur, "USD": usd}

	// The day before yesterday is already stored; only yesterday remains.
	// Today's close is always skipped.
	priceRepo.On("LatestDates", mock.Anything, "Yahoo Finance", mock.Anything, &eur.CommodityID).
		Return(map[int64]time.Time{usd.CommodityID: twoDaysAgo}, nil).Once()

	quotes, err := backend.FetchPrices(context.Background(), commodities, "7d")

	require.NoError(t, err)
	require.Len(t, quotes, 1)
	assert.Equal(t, usd.CommodityID, quotes[0].Commodity.CommodityID)
	assert.Equal(t, eur.CommodityID, quotes[0].Unit.CommodityID)
	assert.True(t, quotes[0].Date.Equal(dayBefore), "got %s", quotes[0].Date)
	assert.True(t, quotes[0].Price.Equal(decimal.NewFromFloat(0.9)), "got %s", quotes[0].Price)
}

func TestYahooBackendChartErrorFailsTheRun(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`))
	}))
	defer server.Close()

	commodityRepo := new(mockCommodityRepo)
	priceRepo := new(mockPriceRepo)
	backend := NewYahooBackend(commodityRepo, priceRepo, "EUR", server.Client())
	backend.chartURL = server.URL

	eur := domain.Commodity{CommodityID: 1, Code: "EUR", CommodityType: domain.CommodityCurrency}
	usd := domain.Commodity{CommodityID: 2, Code: "USD", CommodityType: domain.CommodityCurrency}
	commodities := map[string]domain.Commodity{"EUR": eur, "USD": usd}

	priceRepo.On("LatestDates", mock.Anything, "Yahoo Finance", mock.Anything, &eur.CommodityID).
		Return(map[int64]time.Time{}, nil).Once()

	_, err := backend.FetchPrices(context.Background(), commodities, "7d")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "chart error")
}

func TestYahooBackendResolvesBaseCurrencyOutsideSelection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(chartPayload(nil, nil)))
	}))
	defer server.Close()

	commodityRepo := new(mockCommodityRepo)
	priceRepo := new(mockPriceRepo)
	backend := NewYahooBackend(commodityRepo, priceRepo, "EUR", server.Client())
	backend.chartURL = server.URL

	eur := domain.Commodity{CommodityID: 1, Code: "EUR", CommodityType: domain.CommodityCurrency}
	usd := domain.Commodity{CommodityID: 2, Code: "USD", CommodityType: domain.CommodityCurrency}

	// EUR itself is not flagged for auto update; the backend must look it up.
	commodityRepo.On("FindCommodityByCode", mock.Anything, "EUR").Return(&eur, nil).Once()
	priceRepo.On("LatestDates", mock.Anything, "Yahoo Finance", mock.Anything, &eur.CommodityID).
		Return(map[int64]time.Time{}, nil).Once()

	quotes, err := backend.FetchPrices(context.Background(), map[string]domain.Commodity{"USD": usd}, "7d")

	require.NoError(t, err)
	assert.Empty(t, quotes)
	commodityRepo.AssertExpectations(t)
}
