package domain

import "time"

// Transaction is a dated, described event grouping two or more postings.
// The double-entry invariant (postings net to zero in a single reference
// commodity) is maintained by the posting service's balance recompute.
type Transaction struct {
	TransactionID int64     `json:"transactionID"`
	Description   string    `json:"description"`
	Date          time.Time `json:"date"`
	AuditFields
}
