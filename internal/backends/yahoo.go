package backends

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/finbook/finbook_app/internal/core/domain"
	portsrepo "github.com/finbook/finbook_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

const yahooChartURL = "https://query1.finance.yahoo.com/v8/finance/chart"

// YahooBackend pulls currency exchange rates from the Yahoo Finance chart
// API. Each auto-updating currency C is quoted against the base currency via
// the ticker "{C}{BASE}=X".
type YahooBackend struct {
	baseBackend
	client   *http.Client
	chartURL string
}

// NewYahooBackend wires the Yahoo Finance backend.
func NewYahooBackend(commodityRepo portsrepo.CommodityRepositoryFacade, priceRepo portsrepo.PriceRepositoryFacade, baseCurrency string, client *http.Client) *YahooBackend {
	if client == nil {
		client = http.DefaultClient
	}
	return &YahooBackend{
		baseBackend: baseBackend{
			name:          "Yahoo Finance",
			tag:           domain.BackendYahoo,
			capabilities:  []domain.CommodityType{domain.CommodityCurrency},
			baseCurrency:  baseCurrency,
			commodityRepo: commodityRepo,
			priceRepo:     priceRepo,
		},
		client:   client,
		chartURL: yahooChartURL,
	}
}

var _ Backend = (*YahooBackend)(nil)

// chartResponse is the subset of the Yahoo chart payload we read.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchPrices fetches daily closes for every commodity over the period,
// keeping only days older than today and newer than the latest rate already
// stored for that pair by this backend.
func (b *YahooBackend) FetchPrices(ctx context.Context, commodities map[string]domain.Commodity, period string) ([]Quote, error) {
	unit, ok := commodities[b.baseCurrency]
	if !ok {
		u, err := b.commodityRepo.FindCommodityByCode(ctx, b.baseCurrency)
		if err != nil {
			return nil, fmt.Errorf("%s: base currency %s: %w", b.name, b.baseCurrency, err)
		}
		unit = *u
	}

	latest, err := b.latestDates(ctx, commodities, &unit.CommodityID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to load latest dates: %w", b.name, err)
	}

	today := dateOf(time.Now())
	var quotes []Quote

	for code, commodity := range commodities {
		if code == b.baseCurrency {
			continue
		}

		ticker := fmt.Sprintf("%s%s=X", code, b.baseCurrency)
		closes, err := b.fetchChart(ctx, ticker, period)
		if err != nil {
			return nil, err
		}

		lastDate, hasLast := latest[commodity.CommodityID]
		for date, close := range closes {
			if !date.Before(today) {
				continue
			}
			if hasLast && !date.After(dateOf(lastDate)) {
				continue
			}
			quotes = append(quotes, Quote{
				Commodity: commodity,
				Unit:      unit,
				Price:     decimal.NewFromFloat(close),
				Date:      date,
			})
		}
	}
	return quotes, nil
}

// fetchChart returns the ticker's daily closes keyed by calendar day.
func (b *YahooBackend) fetchChart(ctx context.Context, ticker, period string) (map[time.Time]float64, error) {
	url := fmt.Sprintf("%s/%s?range=%s&interval=1d", b.chartURL, ticker, period)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build request for %s: %w", b.name, ticker, err)
	}
	req.Header.Set("User-Agent", "finbook/1.0")

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to fetch %s: %w", b.name, ticker, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: fetching %s returned status %d", b.name, ticker, resp.StatusCode)
	}

	var payload chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%s: failed to decode chart for %s: %w", b.name, ticker, err)
	}
	if payload.Chart.Error != nil {
		return nil, fmt.Errorf("%s: chart error for %s: %s", b.name, ticker, payload.Chart.Error.Description)
	}
	if len(payload.Chart.Result) == 0 || len(payload.Chart.Result[0].Indicators.Quote) == 0 {
		return map[time.Time]float64{}, nil
	}

	result := payload.Chart.Result[0]
	closes := result.Indicators.Quote[0].Close

	out := make(map[time.Time]float64, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		out[dateOf(time.Unix(ts, 0))] = *closes[i]
	}
	return out, nil
}
