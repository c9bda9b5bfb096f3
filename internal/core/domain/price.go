package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ManualBackendName tags prices entered by hand rather than by an ingestion backend.
const ManualBackendName = "Manual"

// Price is an observed exchange rate: one CommodityID is worth Price units of
// UnitID on Date. At most one row exists per (commodity, unit, date, backend).
type Price struct {
	PriceID     int64           `json:"priceID"`
	CommodityID int64           `json:"commodityID"`
	UnitID      int64           `json:"unitID"`
	Price       decimal.Decimal `json:"price"` // always > 0 at the store level
	Date        time.Time       `json:"date"`
	Backend     string          `json:"backend"`
	AuditFields
}
