package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	AccountAssets      AccountType = "assets"
	AccountLiabilities AccountType = "liabilities"
	AccountExpenses    AccountType = "expenses"
	AccountIncome      AccountType = "income"
	AccountEquity      AccountType = "equity"
	AccountCash        AccountType = "cash"
	AccountOther       AccountType = "other"
)

// Account is a node in the tree of ledger accounts. Its balance is not
// stored; it is derived from the account's postings, converted into the
// account's default currency.
type Account struct {
	AccountID         int64       `json:"accountID"`
	Name              string      `json:"name"` // unique among siblings of the same parent
	AccountType       AccountType `json:"accountType"`
	ParentAccountID   *int64      `json:"parentAccountID"`
	BankID            *int64      `json:"bankID"`
	DefaultCurrencyID int64       `json:"defaultCurrencyID"` // commodity of type "currency"
	AuditFields
}
