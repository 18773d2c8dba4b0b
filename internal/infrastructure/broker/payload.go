package broker

import (
	"encoding/json"
	"errors"
	"fmt"

	domain "gbce/internal/domain/entity/stocks"
)

var (
	ErrEmptyPayload = errors.New("trade payload is nil")
	ErrBadOrder     = errors.New("malformed trade order")
)

// BaseMessage is the envelope published on the trades exchange.
type BaseMessage struct {
	Trade *domain.Order `json:"trade,omitempty"`
}

// decodeOrder parses and sanity-checks one message body.
func decodeOrder(body []byte) (*domain.Order, error) {
	var payload BaseMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: decode payload: %v", ErrBadOrder, err)
	}
	if payload.Trade == nil {
		return nil, ErrEmptyPayload
	}
	order := payload.Trade.Normalize()
	switch {
	case order.Symbol == "":
		return nil, fmt.Errorf("%w: symbol is required", ErrBadOrder)
	case !order.Side.IsValid():
		return nil, fmt.Errorf("%w: unknown side %q", ErrBadOrder, payload.Trade.Side)
	case order.Quantity <= 0:
		return nil, fmt.Errorf("%w: quantity must be positive", ErrBadOrder)
	case !order.Price.IsPositive():
		return nil, fmt.Errorf("%w: price must be positive", ErrBadOrder)
	}
	return &order, nil
}
