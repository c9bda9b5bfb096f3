package backends

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/finbook/finbook_app/internal/core/domain"
	portsrepo "github.com/finbook/finbook_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// WebsiteBackend scrapes the current price of a commodity from its configured
// website, selecting the price node with the commodity's selector path.
// Capabilities are "__all__": any commodity type can be scraped.
type WebsiteBackend struct {
	baseBackend
	client *http.Client
}

// NewWebsiteBackend wires the website scraper backend.
func NewWebsiteBackend(commodityRepo portsrepo.CommodityRepositoryFacade, priceRepo portsrepo.PriceRepositoryFacade, baseCurrency string, client *http.Client) *WebsiteBackend {
	if client == nil {
		client = http.DefaultClient
	}
	return &WebsiteBackend{
		baseBackend: baseBackend{
			name:          "Website Scraper",
			tag:           domain.BackendWebsite,
			capabilities:  []domain.CommodityType{domain.CapabilityAll},
			baseCurrency:  baseCurrency,
			commodityRepo: commodityRepo,
			priceRepo:     priceRepo,
		},
		client: client,
	}
}

var _ Backend = (*WebsiteBackend)(nil)

// FetchPrices scrapes one quote per commodity not already priced today. A
// missing or unparsable price node fails the whole run; the caller decides
// what a partial backend failure means.
func (b *WebsiteBackend) FetchPrices(ctx context.Context, commodities map[string]domain.Commodity, period string) ([]Quote, error) {
	latest, err := b.latestDates(ctx, commodities, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to load latest dates: %w", b.name, err)
	}

	today := dateOf(time.Now())
	var quotes []Quote

	for code, commodity := range commodities {
		if last, ok := latest[commodity.CommodityID]; ok && !dateOf(last).Before(today) {
			continue // already scraped today
		}

		if commodity.WebsiteCurrencyID == nil {
			return nil, fmt.Errorf("%s: commodity %s has no website currency configured", b.name, code)
		}
		unit, err := b.commodityRepo.FindCommodityByID(ctx, *commodity.WebsiteCurrencyID)
		if err != nil {
			return nil, fmt.Errorf("%s: website currency for %s: %w", b.name, code, err)
		}

		price, err := b.scrape(ctx, commodity)
		if err != nil {
			return nil, err
		}

		quotes = append(quotes, Quote{
			Commodity: commodity,
			Unit:      *unit,
			Price:     price,
			Date:      today,
		})
	}
	return quotes, nil
}

// scrape fetches the commodity's website and extracts the price text, either
// at the configured selector path or from the document root.
func (b *WebsiteBackend) scrape(ctx context.Context, commodity domain.Commodity) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, commodity.Website, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: failed to build request for %s: %w", b.name, commodity.Code, err)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: failed to fetch %s: %w", b.name, commodity.Website, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("%s: fetching %s returned status %d", b.name, commodity.Website, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: failed to read %s: %w", b.name, commodity.Website, err)
	}

	return extractPrice(body, commodity.PriceSelector)
}

// extractPrice parses the markup and reads the price at the selector path.
// An empty selector falls back to the document root text.
func extractPrice(markup []byte, selector string) (decimal.Decimal, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.Permissive = true
	if err := doc.ReadFromBytes(markup); err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse markup: %w", err)
	}

	var text string
	if selector != "" {
		el := doc.FindElement(selector)
		if el == nil {
			return decimal.Zero, fmt.Errorf("no price element at %q", selector)
		}
		text = el.Text()
	} else {
		root := doc.Root()
		if root == nil {
			return decimal.Zero, fmt.Errorf("markup has no root element")
		}
		text = root.Text()
	}

	price, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return decimal.Zero, fmt.Errorf("price %q is not a number: %w", strings.TrimSpace(text), err)
	}
	return price, nil
}
