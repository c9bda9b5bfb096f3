package domain

// Bank is an institution an account can belong to.
type Bank struct {
	BankID int64  `json:"bankID"`
	Name   string `json:"name"` // unique
	AuditFields
}
