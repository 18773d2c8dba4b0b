package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gbce/internal/domain/entity/stocks"
	"gbce/internal/domain/interfaces"
)

var (
	ErrStockNotFound   = errors.New("stock not found")
	ErrIndexNotFound   = errors.New("index not found")
	ErrDuplicateSymbol = errors.New("stock already registered")
	ErrDuplicateIndex  = errors.New("index already registered")
	ErrNilStock        = errors.New("stock is nil")
	ErrNilIndex        = errors.New("index is nil")
)

// Registry is an in-memory catalog of listed stocks and the indices built over them.
type Registry struct {
	mu      sync.RWMutex
	stocks  map[string]*stocks.Stock
	indices map[string]*stocks.Index
}

var _ interfaces.StockRegistry = (*Registry)(nil)

func NewRegistry() *Registry {
	return &Registry{
		stocks:  make(map[string]*stocks.Stock),
		indices: make(map[string]*stocks.Index),
	}
}

// NewRegistryFromDefinitions builds every definition and an index named indexName over all of them.
// An empty indexName skips the index.
func NewRegistryFromDefinitions(indexName string, defs []Definition, opts ...stocks.Option) (*Registry, error) {
	registry := NewRegistry()
	members := make([]*stocks.Stock, 0, len(defs))
	for _, def := range defs {
		stock, err := def.Build(opts...)
		if err != nil {
			return nil, fmt.Errorf("build %q: %w", def.Symbol, err)
		}
		if err := registry.Register(stock); err != nil {
			return nil, err
		}
		members = append(members, stock)
	}
	if indexName == "" {
		return registry, nil
	}
	index, err := stocks.NewIndex(indexName, members)
	if err != nil {
		return nil, fmt.Errorf("build index %q: %w", indexName, err)
	}
	if err := registry.RegisterIndex(index); err != nil {
		return nil, err
	}
	return registry, nil
}

func (r *Registry) Register(stock *stocks.Stock) error {
	if stock == nil {
		return ErrNilStock
	}
	key := symbolKey(stock.Symbol())
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.stocks[key]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateSymbol, key)
	}
	r.stocks[key] = stock
	return nil
}

func (r *Registry) Get(symbol string) (*stocks.Stock, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stock, ok := r.stocks[symbolKey(symbol)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrStockNotFound, symbol)
	}
	return stock, nil
}

// List returns registered stocks ordered by symbol.
func (r *Registry) List() []*stocks.Stock {
	r.mu.RLock()
	list := make([]*stocks.Stock, 0, len(r.stocks))
	for _, stock := range r.stocks {
		list = append(list, stock)
	}
	r.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool { return list[i].Symbol() < list[j].Symbol() })
	return list
}

func (r *Registry) RegisterIndex(index *stocks.Index) error {
	if index == nil {
		return ErrNilIndex
	}
	key := indexKey(index.Name())
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.indices[key]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateIndex, index.Name())
	}
	r.indices[key] = index
	return nil
}

// Index looks an index up by name, ignoring case.
func (r *Registry) Index(name string) (*stocks.Index, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	index, ok := r.indices[indexKey(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrIndexNotFound, name)
	}
	return index, nil
}

// Indices returns registered indices ordered by name.
func (r *Registry) Indices() []*stocks.Index {
	r.mu.RLock()
	list := make([]*stocks.Index, 0, len(r.indices))
	for _, index := range r.indices {
		list = append(list, index)
	}
	r.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	return list
}

func symbolKey(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

func indexKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
