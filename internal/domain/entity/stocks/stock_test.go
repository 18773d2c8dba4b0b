package stocks

import (
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func mustCommon(t *testing.T, symbol string, parValue, lastDividend int64, opts ...Option) *Stock {
	t.Helper()
	stock, err := NewCommon(symbol, parValue, lastDividend, opts...)
	require.NoError(t, err)
	return stock
}

func mustPreferred(t *testing.T, symbol string, parValue, lastDividend int64, fixed string, opts ...Option) *Stock {
	t.Helper()
	stock, err := NewPreferred(symbol, parValue, lastDividend, decimal.NewNullDecimal(decimal.RequireFromString(fixed)), opts...)
	require.NoError(t, err)
	return stock
}

func assertDecimal(t *testing.T, want string, got decimal.NullDecimal, places int32) {
	t.Helper()
	require.True(t, got.Valid, "expected a defined value")
	assert.True(t, decimal.RequireFromString(want).Equal(got.Decimal.Round(places)), "want %s, got %s", want, got.Decimal)
}

func TestNewStock_RejectsInvalidInput(t *testing.T) {
	_, err := NewCommon("", 100, 0)
	assert.ErrorIs(t, err, ErrMissingValue)

	_, err = NewCommon("TEA", -1, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewCommon("TEA", 100, -1)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewPreferred("GIN", 100, 8, decimal.NullDecimal{})
	assert.ErrorIs(t, err, ErrMissingValue)

	_, err = NewPreferred("GIN", 100, 8, decimal.NewNullDecimal(decimal.NewFromInt(-2)))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewPreferred("", 100, 8, decimal.NewNullDecimal(decimal.NewFromInt(2)))
	assert.ErrorIs(t, err, ErrMissingValue)
}

func TestNewStock_Accessors(t *testing.T) {
	pop := mustCommon(t, "POP", 100, 8)
	assert.Equal(t, "POP", pop.Symbol())
	assert.Equal(t, CommonType, pop.Type())
	assert.Equal(t, int64(100), pop.ParValue())
	assert.Equal(t, int64(8), pop.LastDividend())
	assert.False(t, pop.FixedDividend().Valid)

	gin := mustPreferred(t, "GIN", 100, 8, "2")
	assert.Equal(t, PreferredType, gin.Type())
	require.True(t, gin.FixedDividend().Valid)
	assert.True(t, decimal.NewFromInt(2).Equal(gin.FixedDividend().Decimal))
}

func TestStock_NoTradesMeansUndefinedMetrics(t *testing.T) {
	for _, stock := range []*Stock{mustCommon(t, "POP", 100, 8), mustPreferred(t, "GIN", 100, 8, "2")} {
		_, ok := stock.LastTrade()
		assert.False(t, ok)
		assert.Empty(t, stock.Trades())
		assert.False(t, stock.VolumeWeightedPrice().Valid)
		assert.False(t, stock.PERatio().Valid)
		assert.False(t, stock.DividendYield().Valid)
	}
}

func TestStock_BuyAndSellSetLastTrade(t *testing.T) {
	tea := mustCommon(t, "TEA", 100, 0)

	bought, err := tea.Buy(1, decimal.NewFromInt(1))
	require.NoError(t, err)
	last, ok := tea.LastTrade()
	require.True(t, ok)
	assert.Equal(t, TradeSideBuy, last.Side())
	assert.Equal(t, bought.ID(), last.ID())

	sold, err := tea.Sell(1, decimal.NewFromInt(1))
	require.NoError(t, err)
	last, ok = tea.LastTrade()
	require.True(t, ok)
	assert.Equal(t, TradeSideSell, last.Side())
	assert.Equal(t, sold.ID(), last.ID())
}

func TestStock_RejectedTradeLeavesLedgerUntouched(t *testing.T) {
	tea := mustCommon(t, "TEA", 100, 0)

	_, err := tea.Buy(0, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = tea.Sell(1, decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, ok := tea.LastTrade()
	assert.False(t, ok)
	assert.Empty(t, tea.Trades())
}

func TestStock_TradeCounts(t *testing.T) {
	tea := mustCommon(t, "TEA", 100, 0)
	for i := 0; i < 50; i++ {
		_, err := tea.Buy(1, decimal.NewFromInt(1))
		require.NoError(t, err)
	}
	for i := 0; i < 50; i++ {
		_, err := tea.Sell(1, decimal.NewFromInt(1))
		require.NoError(t, err)
	}
	assert.Len(t, tea.Trades(), 100)
}

func TestStock_TradesSnapshotIsIsolated(t *testing.T) {
	tea := mustCommon(t, "TEA", 100, 0)
	for i := 0; i < 9; i++ {
		_, err := tea.Buy(1, decimal.NewFromInt(1))
		require.NoError(t, err)
	}

	snapshot := tea.Trades()
	extra, err := NewTrade(100, decimal.NewFromInt(1), time.Now(), TradeSideBuy)
	require.NoError(t, err)
	snapshot = append(snapshot, extra)
	snapshot[0] = extra
	assert.Len(t, snapshot, 10)

	trades := tea.Trades()
	require.Len(t, trades, 9)
	assert.NotEqual(t, extra.ID(), trades[0].ID())

	before := tea.Trades()
	_, err = tea.Sell(1, decimal.NewFromInt(2))
	require.NoError(t, err)
	assert.Len(t, before, 9)
	assert.Len(t, tea.Trades(), 10)
}

func TestStock_PERatio(t *testing.T) {
	tea := mustCommon(t, "TEA", 100, 0)
	_, err := tea.Buy(1, decimal.NewFromInt(1))
	require.NoError(t, err)
	assert.False(t, tea.PERatio().Valid, "zero dividend leaves the PE ratio undefined")

	pop := mustCommon(t, "POP", 100, 8)
	_, err = pop.Sell(1, decimal.NewFromInt(357))
	require.NoError(t, err)
	ratio := pop.PERatio()
	require.True(t, ratio.Valid)
	assert.True(t, decimal.RequireFromString("44.625").Equal(ratio.Decimal), "got %s", ratio.Decimal)
}

func TestStock_CommonDividendYield(t *testing.T) {
	pop := mustCommon(t, "POP", 100, 8)
	_, err := pop.Sell(1, decimal.NewFromInt(15))
	require.NoError(t, err)
	assertDecimal(t, "0.53", pop.DividendYield(), 2)
	assertDecimal(t, "0.5333333333", pop.DividendYield(), 10)

	tea := mustCommon(t, "TEA", 100, 0)
	_, err = tea.Sell(1, decimal.NewFromInt(15))
	require.NoError(t, err)
	yield := tea.DividendYield()
	require.True(t, yield.Valid, "zero dividend still yields a value")
	assert.True(t, yield.Decimal.IsZero())
}

func TestStock_PreferredDividendYield(t *testing.T) {
	gin := mustPreferred(t, "GIN", 100, 8, "2")
	_, err := gin.Sell(1, decimal.NewFromInt(15))
	require.NoError(t, err)
	assertDecimal(t, "0.13", gin.DividendYield(), 2)

	zero := mustPreferred(t, "ZRO", 100, 8, "0")
	_, err = zero.Buy(1, decimal.NewFromInt(15))
	require.NoError(t, err)
	yield := zero.DividendYield()
	require.True(t, yield.Valid)
	assert.True(t, yield.Decimal.IsZero())
}

func TestStock_DivisionKeepsHighPrecision(t *testing.T) {
	pop := mustCommon(t, "POP", 100, 3)
	_, err := pop.Buy(1, decimal.NewFromInt(1))
	require.NoError(t, err)
	ratio := pop.PERatio()
	require.True(t, ratio.Valid)
	assert.Equal(t, "0.3333333333333333333333333333333333", ratio.Decimal.String())
}

func TestStock_MetricsKeepPrecisionAtExtremePrices(t *testing.T) {
	pop := mustCommon(t, "POP", 100, 8)
	_, err := pop.Sell(1, decimal.RequireFromString("1e40"))
	require.NoError(t, err)
	assertDecimal(t, "8e-40", pop.DividendYield(), 80)
	assertDecimal(t, "1.25e39", pop.PERatio(), 0)

	gin := mustPreferred(t, "GIN", 100, 8, "2")
	_, err = gin.Sell(3, decimal.RequireFromString("1e40"))
	require.NoError(t, err)
	assertDecimal(t, "2e-40", gin.DividendYield(), 80)

	tea := mustCommon(t, "TEA", 100, 0)
	_, err = tea.Buy(1, decimal.RequireFromString("0.0000000001"))
	require.NoError(t, err)
	_, err = tea.Buy(2, decimal.RequireFromString("0.0000000002"))
	require.NoError(t, err)
	vwap := tea.VolumeWeightedPrice()
	require.True(t, vwap.Valid)
	assert.True(t, decimal.RequireFromString("1.666666666666666666666666666666667e-10").Equal(vwap.Decimal), "got %s", vwap.Decimal)
}

func TestStock_VolumeWeightedPriceSinceCutoff(t *testing.T) {
	clock := newFakeClock()
	pop := mustCommon(t, "POP", 100, 8, WithClock(clock.Now))

	_, err := pop.Sell(55, decimal.NewFromInt(12))
	require.NoError(t, err)
	clock.Advance(time.Millisecond)
	cutoff := clock.Now()
	_, err = pop.Sell(23, decimal.NewFromInt(12))
	require.NoError(t, err)
	_, err = pop.Buy(34, decimal.NewFromInt(13))
	require.NoError(t, err)

	assertDecimal(t, "12.60", pop.VolumeWeightedPriceSince(cutoff), 2)

	clock.Advance(time.Millisecond)
	assert.False(t, pop.VolumeWeightedPriceSince(clock.Now()).Valid)

	assertDecimal(t, "12.30", pop.VolumeWeightedPriceSince(time.Time{}), 2)
}

func TestStock_VolumeWeightedPriceWithRealClock(t *testing.T) {
	pop := mustCommon(t, "POP", 100, 8)
	_, err := pop.Sell(55, decimal.NewFromInt(12))
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	cutoff := time.Now()
	_, err = pop.Sell(23, decimal.NewFromInt(12))
	require.NoError(t, err)
	_, err = pop.Buy(34, decimal.NewFromInt(13))
	require.NoError(t, err)

	assertDecimal(t, "12.60", pop.VolumeWeightedPriceSince(cutoff), 2)
}

func TestStock_VolumeWeightedPriceDefaultWindow(t *testing.T) {
	clock := newFakeClock()
	pop := mustCommon(t, "POP", 100, 8, WithClock(clock.Now))

	_, err := pop.Sell(100, decimal.NewFromInt(50))
	require.NoError(t, err)
	clock.Advance(DefaultVWAPWindow + time.Second)
	assert.False(t, pop.VolumeWeightedPrice().Valid, "trades older than the window do not count")

	_, err = pop.Sell(23, decimal.NewFromInt(12))
	require.NoError(t, err)
	clock.Advance(time.Minute)
	_, err = pop.Buy(34, decimal.NewFromInt(13))
	require.NoError(t, err)
	assertDecimal(t, "12.60", pop.VolumeWeightedPrice(), 2)

	clock.Advance(DefaultVWAPWindow - time.Minute)
	assertDecimal(t, "12.60", pop.VolumeWeightedPrice(), 2)
}

func TestStock_ClockSteppingBackKeepsOrder(t *testing.T) {
	clock := newFakeClock()
	pop := mustCommon(t, "POP", 100, 8, WithClock(clock.Now))

	_, err := pop.Buy(1, decimal.NewFromInt(1))
	require.NoError(t, err)
	clock.Advance(-time.Hour)
	_, err = pop.Buy(1, decimal.NewFromInt(1))
	require.NoError(t, err)

	trades := pop.Trades()
	require.Len(t, trades, 2)
	assert.False(t, trades[1].Timestamp().Before(trades[0].Timestamp()))
}

func TestStock_ConcurrentTrading(t *testing.T) {
	const (
		workers = 16
		perWork = 2000
	)
	tea := mustCommon(t, "TEA", 100, 0)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rnd := rand.New(rand.NewSource(seed))
			for i := 0; i < perWork; i++ {
				var err error
				if rnd.Intn(2) == 0 {
					_, err = tea.Buy(1, decimal.NewFromInt(1))
				} else {
					_, err = tea.Sell(1, decimal.NewFromInt(1))
				}
				if err != nil {
					t.Errorf("trade failed: %v", err)
					return
				}
			}
		}(int64(w))
	}

	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		for i := 0; i < 50; i++ {
			assertChronological(t, tea.Trades())
			tea.VolumeWeightedPrice()
			tea.DividendYield()
		}
	}()

	wg.Wait()
	<-readerDone

	trades := tea.Trades()
	assert.Len(t, trades, workers*perWork)
	assertChronological(t, trades)

	last, ok := tea.LastTrade()
	require.True(t, ok)
	assert.Equal(t, trades[len(trades)-1].ID(), last.ID())
}

func assertChronological(t *testing.T, trades []Trade) {
	t.Helper()
	for i := 1; i < len(trades); i++ {
		if trades[i].Timestamp().Before(trades[i-1].Timestamp()) {
			t.Errorf("trade %d at %s precedes trade %d at %s", i, trades[i].Timestamp(), i-1, trades[i-1].Timestamp())
			return
		}
	}
}

func TestStock_SnapshotWithoutTrades(t *testing.T) {
	clock := newFakeClock()
	pop := mustCommon(t, "POP", 100, 8, WithClock(clock.Now))
	snap := pop.Snapshot()
	assert.False(t, snap.Traded)
	assert.False(t, snap.VolumeWeightedPrice.Valid)
	assert.False(t, snap.PERatio.Valid)
	assert.False(t, snap.DividendYield.Valid)
	assert.Equal(t, clock.Now(), snap.At)
}

func TestStock_SnapshotIsConsistentUnderConcurrentTrading(t *testing.T) {
	pop := mustCommon(t, "POP", 100, 8)
	dividend := decimal.NewFromInt(8)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := int64(1); i <= 2000; i++ {
			if _, err := pop.Buy(1, decimal.NewFromInt(i)); err != nil {
				t.Errorf("buy failed: %v", err)
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			snap := pop.Snapshot()
			require.True(t, snap.Traded)
			assert.True(t, decimal.NewFromInt(2000).Equal(snap.LastTrade.Price()))
			return
		default:
		}
		snap := pop.Snapshot()
		if !snap.Traded {
			continue
		}
		price := snap.LastTrade.Price()
		require.True(t, snap.PERatio.Valid)
		require.True(t, snap.DividendYield.Valid)
		require.True(t, snap.VolumeWeightedPrice.Valid)
		assert.True(t, divide(price, dividend).Equal(snap.PERatio.Decimal), "PE %s for last price %s", snap.PERatio.Decimal, price)
		assert.True(t, divide(dividend, price).Equal(snap.DividendYield.Decimal), "yield %s for last price %s", snap.DividendYield.Decimal, price)
		assert.True(t, snap.VolumeWeightedPrice.Decimal.LessThanOrEqual(price))
	}
}
