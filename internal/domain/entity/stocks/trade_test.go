package stocks

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTrade_ComputesExactTotal(t *testing.T) {
	cases := []struct {
		quantity int64
		price    string
		total    string
	}{
		{1, "1", "1"},
		{55, "12", "660"},
		{3, "0.1", "0.3"},
		{7, "12345678901234567890.000000001", "86419752308641975230.000000007"},
	}

	for _, tc := range cases {
		trade, err := NewTrade(tc.quantity, decimal.RequireFromString(tc.price), time.Now(), TradeSideBuy)
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString(tc.total).Equal(trade.Total()), "total %s for %d@%s", trade.Total(), tc.quantity, tc.price)
	}
}

func TestNewTrade_KeepsFields(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	trade, err := NewTrade(34, decimal.NewFromInt(13), ts, TradeSideSell)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, trade.ID())
	assert.Equal(t, int64(34), trade.Quantity())
	assert.True(t, decimal.NewFromInt(13).Equal(trade.Price()))
	assert.Equal(t, ts, trade.Timestamp())
	assert.Equal(t, TradeSideSell, trade.Side())
}

func TestNewTrade_RejectsInvalidInput(t *testing.T) {
	now := time.Now()
	cases := []struct {
		name     string
		quantity int64
		price    decimal.Decimal
		ts       time.Time
		side     TradeSide
		missing  bool
	}{
		{"zero quantity", 0, decimal.NewFromInt(1), now, TradeSideBuy, false},
		{"negative quantity", -5, decimal.NewFromInt(1), now, TradeSideBuy, false},
		{"absent price", 1, decimal.Decimal{}, now, TradeSideBuy, false},
		{"zero price", 1, decimal.Zero, now, TradeSideBuy, false},
		{"negative price", 1, decimal.NewFromInt(-1), now, TradeSideBuy, false},
		{"missing timestamp", 1, decimal.NewFromInt(1), time.Time{}, TradeSideBuy, true},
		{"missing side", 1, decimal.NewFromInt(1), now, "", true},
		{"unknown side", 1, decimal.NewFromInt(1), now, "HOLD", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewTrade(tc.quantity, tc.price, tc.ts, tc.side)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidArgument)
			if tc.missing {
				assert.ErrorIs(t, err, ErrMissingValue)
			}
		})
	}
}

func TestTrade_MarshalJSON(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	trade, err := NewTrade(2, decimal.RequireFromString("1.5"), ts, TradeSideBuy)
	require.NoError(t, err)

	raw, err := json.Marshal(trade)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, trade.ID().String(), got["id"])
	assert.Equal(t, "BUY", got["side"])
	assert.Equal(t, float64(2), got["quantity"])
	assert.Equal(t, "1.5", got["price"])
	assert.Equal(t, "3", got["total"])
	assert.Equal(t, "2024-01-02T03:04:05Z", got["timestamp"])
}
