package stocks

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TradeSide represents BUY/SELL direction of an executed trade.
type TradeSide string

const (
	TradeSideBuy  TradeSide = "BUY"
	TradeSideSell TradeSide = "SELL"
)

func (s TradeSide) String() string {
	return string(s)
}

func (s TradeSide) IsValid() bool {
	switch s {
	case TradeSideBuy, TradeSideSell:
		return true
	default:
		return false
	}
}

// Trade is a single executed transaction. It is immutable once built.
type Trade struct {
	id        uuid.UUID
	quantity  int64
	price     decimal.Decimal
	total     decimal.Decimal
	timestamp time.Time
	side      TradeSide
}

// NewTrade validates the input and computes the exact trade total.
func NewTrade(quantity int64, price decimal.Decimal, timestamp time.Time, side TradeSide) (Trade, error) {
	if quantity <= 0 {
		return Trade{}, fmt.Errorf("%w: quantity must be positive, got %d", ErrInvalidArgument, quantity)
	}
	if !price.IsPositive() {
		return Trade{}, fmt.Errorf("%w: price must be positive, got %s", ErrInvalidArgument, price)
	}
	if timestamp.IsZero() {
		return Trade{}, fmt.Errorf("%w: trade timestamp is required", ErrMissingValue)
	}
	if side == "" {
		return Trade{}, fmt.Errorf("%w: trade side is required", ErrMissingValue)
	}
	if !side.IsValid() {
		return Trade{}, fmt.Errorf("%w: unknown trade side %q", ErrInvalidArgument, side)
	}
	return Trade{
		id:        uuid.New(),
		quantity:  quantity,
		price:     price,
		total:     price.Mul(decimal.NewFromInt(quantity)),
		timestamp: timestamp,
		side:      side,
	}, nil
}

func (t Trade) ID() uuid.UUID          { return t.id }
func (t Trade) Quantity() int64        { return t.quantity }
func (t Trade) Price() decimal.Decimal { return t.price }
func (t Trade) Total() decimal.Decimal { return t.total }
func (t Trade) Timestamp() time.Time   { return t.timestamp }
func (t Trade) Side() TradeSide        { return t.side }

// TradeView is the wire form of a trade.
type TradeView struct {
	ID        uuid.UUID       `json:"id" swaggertype:"string" format:"uuid"`
	Side      TradeSide       `json:"side"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price" swaggertype:"string" example:"12.5"`
	Total     decimal.Decimal `json:"total" swaggertype:"string" example:"37.5"`
	Timestamp time.Time       `json:"timestamp"`
}

func (t Trade) View() TradeView {
	return TradeView{
		ID:        t.id,
		Side:      t.side,
		Quantity:  t.quantity,
		Price:     t.price,
		Total:     t.total,
		Timestamp: t.timestamp,
	}
}

func (t Trade) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.View())
}
