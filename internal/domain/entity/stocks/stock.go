package stocks

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// DefaultVWAPWindow is the trailing window used by VolumeWeightedPrice.
	DefaultVWAPWindow = 5 * time.Minute
)

// Option customizes a Stock at construction time.
type Option func(*Stock)

// WithClock replaces time.Now as the source of trade timestamps and of "now" for windowed metrics.
func WithClock(now func() time.Time) Option {
	return func(s *Stock) {
		if now != nil {
			s.now = now
		}
	}
}

// Stock owns the trade ledger of one listed symbol.
// The ledger is append-only; lastTrade always mirrors its final element.
type Stock struct {
	symbol       string
	parValue     int64
	lastDividend int64
	payout       payoutPolicy
	now          func() time.Time

	mu           sync.RWMutex
	trades       []Trade
	lastTrade    Trade
	hasLastTrade bool
}

// NewCommon creates a stock whose dividend yield is lastDividend / price.
func NewCommon(symbol string, parValue, lastDividend int64, opts ...Option) (*Stock, error) {
	return newStock(symbol, parValue, lastDividend, commonPayout{}, opts)
}

// NewPreferred creates a stock whose dividend yield is (fixedDividend% × parValue) / price.
func NewPreferred(symbol string, parValue, lastDividend int64, fixedDividend decimal.NullDecimal, opts ...Option) (*Stock, error) {
	if !fixedDividend.Valid {
		return nil, fmt.Errorf("%w: fixed dividend is required for preferred stock %q", ErrMissingValue, symbol)
	}
	if fixedDividend.Decimal.IsNegative() {
		return nil, fmt.Errorf("%w: fixed dividend cannot be less than 0, got %s", ErrInvalidArgument, fixedDividend.Decimal)
	}
	return newStock(symbol, parValue, lastDividend, preferredPayout{fixedDividend: fixedDividend.Decimal}, opts)
}

func newStock(symbol string, parValue, lastDividend int64, payout payoutPolicy, opts []Option) (*Stock, error) {
	if symbol == "" {
		return nil, fmt.Errorf("%w: stock symbol is required", ErrMissingValue)
	}
	if parValue < 0 {
		return nil, fmt.Errorf("%w: par value cannot be less than 0, got %d", ErrInvalidArgument, parValue)
	}
	if lastDividend < 0 {
		return nil, fmt.Errorf("%w: last dividend cannot be less than 0, got %d", ErrInvalidArgument, lastDividend)
	}
	s := &Stock{
		symbol:       symbol,
		parValue:     parValue,
		lastDividend: lastDividend,
		payout:       payout,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Stock) Symbol() string      { return s.symbol }
func (s *Stock) Type() StockType     { return s.payout.stockType() }
func (s *Stock) ParValue() int64     { return s.parValue }
func (s *Stock) LastDividend() int64 { return s.lastDividend }

// FixedDividend is only valid for preferred stocks.
func (s *Stock) FixedDividend() decimal.NullDecimal {
	if p, ok := s.payout.(preferredPayout); ok {
		return decimal.NewNullDecimal(p.fixedDividend)
	}
	return decimal.NullDecimal{}
}

// Buy records a buy of quantity shares at price.
func (s *Stock) Buy(quantity int64, price decimal.Decimal) (Trade, error) {
	return s.trade(quantity, price, TradeSideBuy)
}

// Sell records a sell of quantity shares at price.
func (s *Stock) Sell(quantity int64, price decimal.Decimal) (Trade, error) {
	return s.trade(quantity, price, TradeSideSell)
}

func (s *Stock) trade(quantity int64, price decimal.Decimal, side TradeSide) (Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	timestamp := s.now()
	// ledger order is chronological even if the clock steps back
	if s.hasLastTrade && timestamp.Before(s.lastTrade.timestamp) {
		timestamp = s.lastTrade.timestamp
	}
	trade, err := NewTrade(quantity, price, timestamp, side)
	if err != nil {
		return Trade{}, fmt.Errorf("%s %s: %w", side, s.symbol, err)
	}
	s.trades = append(s.trades, trade)
	s.lastTrade = trade
	s.hasLastTrade = true
	return trade, nil
}

// LastTrade returns the most recent trade, or false when nothing has been traded yet.
func (s *Stock) LastTrade() (Trade, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastTrade, s.hasLastTrade
}

// Trades returns a copy of the ledger in chronological order.
func (s *Stock) Trades() []Trade {
	s.mu.RLock()
	defer s.mu.RUnlock()
	trades := make([]Trade, len(s.trades))
	copy(trades, s.trades)
	return trades
}

// VolumeWeightedPrice is the VWAP of the trades made within DefaultVWAPWindow.
func (s *Stock) VolumeWeightedPrice() decimal.NullDecimal {
	return s.VolumeWeightedPriceSince(s.now().Add(-DefaultVWAPWindow))
}

// VolumeWeightedPriceSince is the VWAP of every trade made at or after cutoff.
// The result is invalid when no trade qualifies.
func (s *Stock) VolumeWeightedPriceSince(cutoff time.Time) decimal.NullDecimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.volumeWeightedPriceLocked(cutoff)
}

func (s *Stock) volumeWeightedPriceLocked(cutoff time.Time) decimal.NullDecimal {
	var quantity int64
	total := decimal.Zero
	for i := len(s.trades) - 1; i >= 0; i-- {
		trade := s.trades[i]
		if trade.timestamp.Before(cutoff) {
			break
		}
		total = total.Add(trade.total)
		quantity += trade.quantity
	}
	if quantity == 0 {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(divide(total, decimal.NewFromInt(quantity)))
}

// PERatio is last trade price / last dividend. It is invalid when the stock has not
// traded yet or has never paid a dividend.
func (s *Stock) PERatio() decimal.NullDecimal {
	trade, ok := s.LastTrade()
	return s.peRatioAt(trade, ok)
}

func (s *Stock) peRatioAt(trade Trade, traded bool) decimal.NullDecimal {
	if !traded || s.lastDividend == 0 {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(divide(trade.price, decimal.NewFromInt(s.lastDividend)))
}

// DividendYield applies the payout policy of the stock to the last trade price.
// A zero dividend yields zero; only a stock without trades has no yield.
func (s *Stock) DividendYield() decimal.NullDecimal {
	trade, ok := s.LastTrade()
	return s.dividendYieldAt(trade, ok)
}

func (s *Stock) dividendYieldAt(trade Trade, traded bool) decimal.NullDecimal {
	if !traded {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(s.payout.dividendYield(s.parValue, s.lastDividend, trade.price))
}

// Snapshot is every metric of a stock computed from one consistent view of its ledger.
type Snapshot struct {
	LastTrade           Trade
	Traded              bool
	VolumeWeightedPrice decimal.NullDecimal
	PERatio             decimal.NullDecimal
	DividendYield       decimal.NullDecimal
	At                  time.Time
}

// Snapshot computes the metrics under a single read lock, so no trade can land between them.
func (s *Stock) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	trade, traded := s.lastTrade, s.hasLastTrade
	return Snapshot{
		LastTrade:           trade,
		Traded:              traded,
		VolumeWeightedPrice: s.volumeWeightedPriceLocked(now.Add(-DefaultVWAPWindow)),
		PERatio:             s.peRatioAt(trade, traded),
		DividendYield:       s.dividendYieldAt(trade, traded),
		At:                  now,
	}
}
