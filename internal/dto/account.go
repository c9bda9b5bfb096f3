package dto

import (
	"strconv"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/finbook/finbook_app/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create an account.
// DefaultCurrencyCode falls back to the configured base currency when empty.
type CreateAccountRequest struct {
	Name                string             `json:"name" binding:"required,max=250"`
	AccountType         domain.AccountType `json:"accountType" binding:"omitempty,oneof=assets liabilities expenses income equity cash other"`
	ParentAccountID     *int64             `json:"parentAccountID"`
	BankID              *int64             `json:"bankID"`
	DefaultCurrencyCode string             `json:"defaultCurrencyCode" binding:"omitempty,commoditycode"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID         int64              `json:"accountID"`
	Name              string             `json:"name"`
	AccountType       domain.AccountType `json:"accountType"`
	ParentAccountID   *int64             `json:"parentAccountID,omitempty"`
	BankID            *int64             `json:"bankID,omitempty"`
	DefaultCurrencyID int64              `json:"defaultCurrencyID"`
	CreatedAt         time.Time          `json:"createdAt"`
	LastUpdatedAt     time.Time          `json:"lastUpdatedAt"`
}

// BalanceResponse carries a derived balance rendered as display money.
type BalanceResponse struct {
	Amount   string `json:"amount"`   // decimal string, e.g. "-90.00"
	Currency string `json:"currency"` // ISO code of the reference commodity
	Display  string `json:"display"`  // localized rendering, e.g. "-€90.00"
}

// ToAccountResponse converts a domain.Account to its response DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:         a.AccountID,
		Name:              a.Name,
		AccountType:       a.AccountType,
		ParentAccountID:   a.ParentAccountID,
		BankID:            a.BankID,
		DefaultCurrencyID: a.DefaultCurrencyID,
		CreatedAt:         a.CreatedAt,
		LastUpdatedAt:     a.LastUpdatedAt,
	}
}

// ToListAccountResponse converts a slice of accounts to response DTOs.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// ToBalanceResponse converts a go-money value to its response DTO.
func ToBalanceResponse(m *money.Money) BalanceResponse {
	return BalanceResponse{
		Amount:   strconv.FormatFloat(m.AsMajorUnits(), 'f', m.Currency().Fraction, 64),
		Currency: m.Currency().Code,
		Display:  m.Display(),
	}
}
