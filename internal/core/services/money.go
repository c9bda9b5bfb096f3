package services

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// moneyFromDecimal renders a decimal amount as display money in the given
// currency. Codes unknown to go-money fall back to two fraction digits.
func moneyFromDecimal(amount decimal.Decimal, code string) *money.Money {
	fraction := 2
	if c := money.GetCurrency(code); c != nil {
		fraction = c.Fraction
	}
	minor := amount.Shift(int32(fraction)).Round(0).IntPart()
	return money.New(minor, code)
}
