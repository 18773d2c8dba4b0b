package stocks

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// StockType selects the dividend payout policy of a stock.
type StockType string

const (
	CommonType    StockType = "common"
	PreferredType StockType = "preferred"
)

func (st StockType) String() string {
	return string(st)
}

func (st StockType) IsValid() bool {
	switch st {
	case CommonType, PreferredType:
		return true
	default:
		return false
	}
}

func NewStockType(s string) (StockType, error) {
	st := StockType(s)
	if !st.IsValid() {
		return "", fmt.Errorf("%w: unknown stock type %q", ErrInvalidArgument, s)
	}
	return st, nil
}

// payoutPolicy is implemented by commonPayout and preferredPayout only.
type payoutPolicy interface {
	stockType() StockType
	dividendYield(parValue, lastDividend int64, price decimal.Decimal) decimal.Decimal
}

type commonPayout struct{}

func (commonPayout) stockType() StockType { return CommonType }

func (commonPayout) dividendYield(_, lastDividend int64, price decimal.Decimal) decimal.Decimal {
	return divide(decimal.NewFromInt(lastDividend), price)
}

type preferredPayout struct {
	fixedDividend decimal.Decimal
}

func (preferredPayout) stockType() StockType { return PreferredType }

func (p preferredPayout) dividendYield(parValue, _ int64, price decimal.Decimal) decimal.Decimal {
	// fixed% of par; shifting by two places is exact
	return divide(p.fixedDividend.Shift(-2).Mul(decimal.NewFromInt(parValue)), price)
}
