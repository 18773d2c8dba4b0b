package stocks

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	domain "gbce/internal/domain/entity/stocks"
	interfaces "gbce/internal/domain/interfaces"
	"gbce/internal/observability"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var (
	ErrEmptySymbol = errors.New("stock symbol is empty")
	ErrNilOrder    = errors.New("order is nil")
	ErrInvalidSide = errors.New("order side must be BUY or SELL")
)

// Quote gathers every metric of one stock.
type Quote struct {
	Symbol              string              `json:"symbol" example:"POP"`
	Type                domain.StockType    `json:"type"`
	ParValue            int64               `json:"par_value" example:"100"`
	LastDividend        int64               `json:"last_dividend" example:"8"`
	FixedDividend       decimal.NullDecimal `json:"fixed_dividend" swaggertype:"string" extensions:"x-nullable"`
	LastTrade           *domain.TradeView   `json:"last_trade" extensions:"x-nullable"`
	VolumeWeightedPrice decimal.NullDecimal `json:"volume_weighted_price" swaggertype:"string" extensions:"x-nullable"`
	PERatio             decimal.NullDecimal `json:"pe_ratio" swaggertype:"string" extensions:"x-nullable"`
	DividendYield       decimal.NullDecimal `json:"dividend_yield" swaggertype:"string" extensions:"x-nullable"`
	QuotedAt            time.Time           `json:"quoted_at"`
}

// IndexValue is the result of one index calculation.
type IndexValue struct {
	Name         string    `json:"name"`
	Value        float64   `json:"value"`
	Members      []string  `json:"members"`
	CalculatedAt time.Time `json:"calculated_at"`
}

type Service struct {
	registry interfaces.StockRegistry
	logger   *logrus.Entry
	metrics  *observability.Metrics

	ledgerID string
	revision atomic.Uint64
}

var _ interfaces.TradeRecorder = (*Service)(nil)

type ServiceOption func(*Service)

// WithMetrics counts recorded and rejected trades and exports index values.
func WithMetrics(metrics *observability.Metrics) ServiceOption {
	return func(s *Service) {
		s.metrics = metrics
	}
}

func NewService(registry interfaces.StockRegistry, logger *logrus.Logger, opts ...ServiceOption) *Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	s := &Service{
		registry: registry,
		logger:   logger.WithField("component", "stocks_service"),
		ledgerID: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stock resolves symbol case-insensitively.
func (s *Service) Stock(symbol string) (*domain.Stock, error) {
	return s.stock(symbol)
}

func (s *Service) stock(symbol string) (*domain.Stock, error) {
	if symbol == "" {
		return nil, ErrEmptySymbol
	}
	return s.registry.Get(symbol)
}

// Trading

func (s *Service) Buy(ctx context.Context, symbol string, quantity int64, price decimal.Decimal) (domain.Trade, error) {
	return s.Record(ctx, &domain.Order{Symbol: symbol, Side: domain.TradeSideBuy, Quantity: quantity, Price: price})
}

func (s *Service) Sell(ctx context.Context, symbol string, quantity int64, price decimal.Decimal) (domain.Trade, error) {
	return s.Record(ctx, &domain.Order{Symbol: symbol, Side: domain.TradeSideSell, Quantity: quantity, Price: price})
}

// Record applies the order to the ledger of the stock it names.
func (s *Service) Record(ctx context.Context, order *domain.Order) (domain.Trade, error) {
	trade, err := s.record(ctx, order)
	if err != nil {
		s.metrics.RecordRejection(rejectionReason(err))
		return domain.Trade{}, err
	}
	s.revision.Add(1)
	s.metrics.RecordTrade(order.Normalize().Symbol, trade.Side().String())
	return trade, nil
}

// Revision identifies the state of every ledger behind the service. It changes
// after each accepted trade and differs between service instances.
func (s *Service) Revision() string {
	return s.ledgerID + "." + strconv.FormatUint(s.revision.Load(), 10)
}

func (s *Service) record(ctx context.Context, order *domain.Order) (domain.Trade, error) {
	if order == nil {
		return domain.Trade{}, ErrNilOrder
	}
	if err := ctx.Err(); err != nil {
		return domain.Trade{}, err
	}
	normalized := order.Normalize()
	stock, err := s.stock(normalized.Symbol)
	if err != nil {
		return domain.Trade{}, err
	}

	var trade domain.Trade
	switch normalized.Side {
	case domain.TradeSideBuy:
		trade, err = stock.Buy(normalized.Quantity, normalized.Price)
	case domain.TradeSideSell:
		trade, err = stock.Sell(normalized.Quantity, normalized.Price)
	default:
		return domain.Trade{}, fmt.Errorf("%w: got %q", ErrInvalidSide, order.Side)
	}
	if err != nil {
		return domain.Trade{}, err
	}

	s.logger.WithFields(logrus.Fields{
		"symbol":   stock.Symbol(),
		"side":     trade.Side(),
		"quantity": trade.Quantity(),
		"price":    trade.Price().String(),
		"trade_id": trade.ID(),
	}).Debug("trade recorded")
	return trade, nil
}

// Queries

func (s *Service) Stocks() []*domain.Stock {
	return s.registry.List()
}

func (s *Service) LastTrade(symbol string) (domain.Trade, bool, error) {
	stock, err := s.stock(symbol)
	if err != nil {
		return domain.Trade{}, false, err
	}
	trade, ok := stock.LastTrade()
	return trade, ok, nil
}

func (s *Service) Trades(symbol string) ([]domain.Trade, error) {
	stock, err := s.stock(symbol)
	if err != nil {
		return nil, err
	}
	return stock.Trades(), nil
}

// VolumeWeightedPrice uses the default trailing window when since is nil.
func (s *Service) VolumeWeightedPrice(symbol string, since *time.Time) (decimal.NullDecimal, error) {
	stock, err := s.stock(symbol)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	if since == nil {
		return stock.VolumeWeightedPrice(), nil
	}
	return stock.VolumeWeightedPriceSince(*since), nil
}

func (s *Service) PERatio(symbol string) (decimal.NullDecimal, error) {
	stock, err := s.stock(symbol)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return stock.PERatio(), nil
}

func (s *Service) DividendYield(symbol string) (decimal.NullDecimal, error) {
	stock, err := s.stock(symbol)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return stock.DividendYield(), nil
}

func (s *Service) Quote(symbol string) (*Quote, error) {
	stock, err := s.stock(symbol)
	if err != nil {
		return nil, err
	}
	return quoteOf(stock), nil
}

func quoteOf(stock *domain.Stock) *Quote {
	snap := stock.Snapshot()
	quote := &Quote{
		Symbol:              stock.Symbol(),
		Type:                stock.Type(),
		ParValue:            stock.ParValue(),
		LastDividend:        stock.LastDividend(),
		FixedDividend:       stock.FixedDividend(),
		VolumeWeightedPrice: snap.VolumeWeightedPrice,
		PERatio:             snap.PERatio,
		DividendYield:       snap.DividendYield,
		QuotedAt:            snap.At.UTC(),
	}
	if snap.Traded {
		view := snap.LastTrade.View()
		quote.LastTrade = &view
	}
	return quote
}

// Indices

func (s *Service) CalculateIndex(name string) (*IndexValue, error) {
	index, err := s.registry.Index(name)
	if err != nil {
		return nil, err
	}
	return s.valueOf(index), nil
}

func (s *Service) Indices() []IndexValue {
	indices := s.registry.Indices()
	values := make([]IndexValue, 0, len(indices))
	for _, index := range indices {
		values = append(values, *s.valueOf(index))
	}
	return values
}

func (s *Service) valueOf(index *domain.Index) *IndexValue {
	members := index.Members()
	symbols := make([]string, 0, len(members))
	for _, stock := range members {
		symbols = append(symbols, stock.Symbol())
	}
	value := index.Calculate()
	s.metrics.SetIndexValue(index.Name(), value)
	return &IndexValue{
		Name:         index.Name(),
		Value:        value,
		Members:      symbols,
		CalculatedAt: time.Now().UTC(),
	}
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrNilOrder), errors.Is(err, ErrEmptySymbol):
		return "malformed_order"
	case errors.Is(err, ErrInvalidSide):
		return "invalid_side"
	case errors.Is(err, domain.ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "rejected"
	}
}
