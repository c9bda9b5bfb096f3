package domain

import "github.com/shopspring/decimal"

// Posting is one debit/credit leg of a transaction: a signed amount in some
// commodity against an account. When the entered commodity differed from the
// account's default currency the original figures are kept in the foreign
// fields after normalization.
type Posting struct {
	PostingID     int64 `json:"postingID"`
	TransactionID int64 `json:"transactionID"`
	AccountID     int64 `json:"accountID"`

	Amount      decimal.Decimal `json:"amount"`
	CommodityID int64           `json:"commodityID"`

	ForeignAmount      decimal.Decimal `json:"foreignAmount"`
	ForeignCommodityID *int64          `json:"foreignCommodityID"`

	// IsBalancePosting marks the leg whose amount is derived by the balancer
	// rather than user-entered.
	IsBalancePosting bool `json:"isBalancePosting"`

	AuditFields
}

// CommodityTotal is an aggregate of posting amounts grouped by commodity,
// used when deriving account and transaction balances.
type CommodityTotal struct {
	CommodityID int64           `json:"commodityID"`
	Code        string          `json:"code"`
	Total       decimal.Decimal `json:"total"`
}
