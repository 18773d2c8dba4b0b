package interfaces

import (
	"context"

	"gbce/internal/domain/entity/stocks"
)

// StockRegistry resolves stocks and indices by name. Implementations must be safe for concurrent use.
type StockRegistry interface {
	Get(symbol string) (*stocks.Stock, error)
	List() []*stocks.Stock
	Index(name string) (*stocks.Index, error)
	Indices() []*stocks.Index
}

// TradeRecorder applies orders to the ledger of the stock they name.
type TradeRecorder interface {
	Record(ctx context.Context, order *stocks.Order) (stocks.Trade, error)
}
