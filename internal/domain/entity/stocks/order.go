package stocks

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Order is a request to trade a stock, as received from the HTTP API or the broker.
type Order struct {
	Symbol   string          `json:"symbol"`
	Side     TradeSide       `json:"side"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Normalize upper-cases symbol and side so orders match catalog keys.
func (o Order) Normalize() Order {
	o.Symbol = strings.ToUpper(strings.TrimSpace(o.Symbol))
	o.Side = TradeSide(strings.ToUpper(strings.TrimSpace(string(o.Side))))
	return o
}

func (o Order) String() string {
	return fmt.Sprintf("%s %s %d@%s", o.Side, o.Symbol, o.Quantity, o.Price)
}
