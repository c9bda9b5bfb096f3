package domain

// CommodityType classifies what kind of tradeable unit a commodity is.
type CommodityType string

const (
	CommodityCurrency CommodityType = "currency"
	CommodityStock    CommodityType = "stock"
	CommodityFund     CommodityType = "fund"
	CommodityWarrant  CommodityType = "warrant"
	CommodityAsset    CommodityType = "asset"
	CommodityOther    CommodityType = "other"
)

// CapabilityAll is the sentinel capability that matches every commodity type.
const CapabilityAll CommodityType = "__all__"

// BackendKind names the price ingestion backend a commodity is updated by.
type BackendKind string

const (
	BackendYahoo   BackendKind = "yahoo"
	BackendWebsite BackendKind = "website"
	BackendCustom  BackendKind = "custom"
	BackendNone    BackendKind = ""
)

// Commodity represents something that can be bought or sold: a currency,
// a stock, a fund, etc. Prices relate commodities to each other.
type Commodity struct {
	CommodityID   int64         `json:"commodityID"`
	Name          string        `json:"name"`
	Code          string        `json:"code"` // short identifier, e.g. "EUR", "META"
	CommodityType CommodityType `json:"commodityType"`

	// Auto-update configuration for the price ingestion backends.
	Backend    BackendKind `json:"backend"`
	AutoUpdate bool        `json:"autoUpdate"`

	// Website scraper configuration. PriceSelector is an element path into the
	// fetched markup; WebsiteCurrencyID is the commodity the scraped value is
	// quoted in.
	Website           string `json:"website"`
	PriceSelector     string `json:"priceSelector"`
	WebsiteCurrencyID *int64 `json:"websiteCurrencyID"`

	AuditFields
}
