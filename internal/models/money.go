package models

import "github.com/shopspring/decimal"

func init() {
	// The back office API speaks JSON numbers for money, never quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Money is an amount in Vietnamese dong
type Money = decimal.Decimal

// NewMoney builds a Money value from whole dong
func NewMoney(dong int64) Money {
	return decimal.NewFromInt(dong)
}
