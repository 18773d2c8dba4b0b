package main

import (
	"math/rand/v2"

	domain "gbce/internal/domain/entity/stocks"

	"github.com/shopspring/decimal"
)

const (
	startPrice = 100
	// maxStepBps bounds a single price move, in basis points.
	maxStepBps = 150
	minPrice   = "0.01"
)

// simulator emits a random walk of orders for one symbol.
type simulator struct {
	symbol      string
	price       decimal.Decimal
	maxQuantity int64
	rnd         *rand.Rand
	floor       decimal.Decimal
}

func newSimulator(symbol string, maxQuantity int64, seed uint64) *simulator {
	if maxQuantity <= 0 {
		maxQuantity = 1
	}
	return &simulator{
		symbol:      symbol,
		price:       decimal.NewFromInt(startPrice),
		maxQuantity: maxQuantity,
		rnd:         rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		floor:       decimal.RequireFromString(minPrice),
	}
}

// Next moves the price by up to maxStepBps and returns an order at the new price.
func (s *simulator) Next() *domain.Order {
	step := s.rnd.Int64N(2*maxStepBps+1) - maxStepBps
	factor := decimal.NewFromInt(10_000 + step).Div(decimal.NewFromInt(10_000))
	s.price = s.price.Mul(factor).Round(2)
	if s.price.LessThan(s.floor) {
		s.price = s.floor
	}

	side := domain.TradeSideBuy
	if s.rnd.IntN(2) == 1 {
		side = domain.TradeSideSell
	}
	return &domain.Order{
		Symbol:   s.symbol,
		Side:     side,
		Quantity: s.rnd.Int64N(s.maxQuantity) + 1,
		Price:    s.price,
	}
}
