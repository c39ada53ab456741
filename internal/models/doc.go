// Package models holds the gorm entities of a user's financial state.
//
// Money is carried as decimal.Decimal in numeric columns and serialized as
// JSON numbers.
package models

import "github.com/shopspring/decimal"

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}
