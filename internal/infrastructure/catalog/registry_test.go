package catalog

import (
	"fmt"
	"sync"
	"testing"

	"gbce/internal/domain/entity/stocks"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterAndGet(t *testing.T) {
	registry := NewRegistry()
	pop, err := stocks.NewCommon("POP", 100, 8)
	require.NoError(t, err)

	require.NoError(t, registry.Register(pop))

	got, err := registry.Get("pop")
	require.NoError(t, err)
	assert.Same(t, pop, got)

	err = registry.Register(pop)
	assert.ErrorIs(t, err, ErrDuplicateSymbol)

	_, err = registry.Get("TEA")
	assert.ErrorIs(t, err, ErrStockNotFound)

	assert.ErrorIs(t, registry.Register(nil), ErrNilStock)
	assert.ErrorIs(t, registry.RegisterIndex(nil), ErrNilIndex)
}

func TestNewRegistryFromDefinitions(t *testing.T) {
	registry, err := NewRegistryFromDefinitions("GBCE All Share", DefaultDefinitions())
	require.NoError(t, err)

	symbols := make([]string, 0)
	for _, stock := range registry.List() {
		symbols = append(symbols, stock.Symbol())
	}
	assert.Equal(t, []string{"ALE", "GIN", "JOE", "POP", "TEA"}, symbols)

	index, err := registry.Index("gbce all share")
	require.NoError(t, err)
	assert.Equal(t, 5, index.Size())
	require.Len(t, registry.Indices(), 1)

	_, err = registry.Index("FTSE")
	assert.ErrorIs(t, err, ErrIndexNotFound)
}

func TestNewRegistryFromDefinitions_WithoutIndex(t *testing.T) {
	registry, err := NewRegistryFromDefinitions("", DefaultDefinitions())
	require.NoError(t, err)
	assert.Empty(t, registry.Indices())
	assert.Len(t, registry.List(), 5)
}

func TestNewRegistryFromDefinitions_Errors(t *testing.T) {
	defs := append(DefaultDefinitions(), Definition{Symbol: "pop", Type: stocks.CommonType, ParValue: 1})
	_, err := NewRegistryFromDefinitions("GBCE", defs)
	assert.ErrorIs(t, err, ErrDuplicateSymbol)

	_, err = NewRegistryFromDefinitions("GBCE", []Definition{{Symbol: "", Type: stocks.CommonType}})
	assert.ErrorIs(t, err, stocks.ErrMissingValue)

	_, err = NewRegistryFromDefinitions("GBCE", nil)
	assert.ErrorIs(t, err, stocks.ErrInvalidArgument)
}

func TestRegistry_IndexSeesTradesOfRegisteredStocks(t *testing.T) {
	registry, err := NewRegistryFromDefinitions("GBCE", DefaultDefinitions())
	require.NoError(t, err)

	pop, err := registry.Get("POP")
	require.NoError(t, err)
	_, err = pop.Buy(10, decimal.NewFromInt(32))
	require.NoError(t, err)

	index, err := registry.Index("GBCE")
	require.NoError(t, err)
	assert.InDelta(t, 2.0, index.Calculate(), 1e-12)
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	registry := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			stock, err := stocks.NewCommon(fmt.Sprintf("S%02d", i), 100, 1)
			if err != nil {
				t.Error(err)
				return
			}
			if err := registry.Register(stock); err != nil {
				t.Error(err)
			}
		}(i)
		go func() {
			defer wg.Done()
			_ = registry.List()
		}()
	}
	wg.Wait()
	assert.Len(t, registry.List(), 20)
}
