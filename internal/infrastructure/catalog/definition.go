package catalog

import (
	"fmt"
	"strings"

	"gbce/internal/domain/entity/stocks"

	"github.com/shopspring/decimal"
)

// Definition is the static reference data of a listed stock.
type Definition struct {
	Symbol        string
	Type          stocks.StockType
	ParValue      int64
	LastDividend  int64
	FixedDividend decimal.NullDecimal
}

// DefaultDefinitions returns the sample GBCE listing.
func DefaultDefinitions() []Definition {
	return []Definition{
		{Symbol: "TEA", Type: stocks.CommonType, ParValue: 100, LastDividend: 0},
		{Symbol: "POP", Type: stocks.CommonType, ParValue: 100, LastDividend: 8},
		{Symbol: "ALE", Type: stocks.CommonType, ParValue: 60, LastDividend: 23},
		{Symbol: "GIN", Type: stocks.PreferredType, ParValue: 100, LastDividend: 8, FixedDividend: decimal.NewNullDecimal(decimal.NewFromInt(2))},
		{Symbol: "JOE", Type: stocks.CommonType, ParValue: 250, LastDividend: 13},
	}
}

// Build creates a fresh stock with an empty ledger.
func (d Definition) Build(opts ...stocks.Option) (*stocks.Stock, error) {
	symbol := strings.ToUpper(strings.TrimSpace(d.Symbol))
	switch d.Type {
	case stocks.CommonType:
		return stocks.NewCommon(symbol, d.ParValue, d.LastDividend, opts...)
	case stocks.PreferredType:
		return stocks.NewPreferred(symbol, d.ParValue, d.LastDividend, d.FixedDividend, opts...)
	default:
		return nil, fmt.Errorf("%w: unknown stock type %q for %q", stocks.ErrInvalidArgument, d.Type, d.Symbol)
	}
}
