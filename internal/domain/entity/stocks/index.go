package stocks

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Index combines the volume weighted prices of its members into one figure.
// It does not own its members; they are expected to outlive it.
type Index struct {
	name    string
	members []*Stock
}

// NewIndex builds an index over members. Repeated references to the same stock count once.
func NewIndex(name string, members []*Stock) (*Index, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: index name is required", ErrMissingValue)
	}
	if len(members) == 0 {
		return nil, fmt.Errorf("%w: index %q has no stocks", ErrInvalidArgument, name)
	}
	seen := make(map[*Stock]struct{}, len(members))
	unique := make([]*Stock, 0, len(members))
	for _, stock := range members {
		if stock == nil {
			return nil, fmt.Errorf("%w: index %q contains a nil stock", ErrInvalidArgument, name)
		}
		if _, ok := seen[stock]; ok {
			continue
		}
		seen[stock] = struct{}{}
		unique = append(unique, stock)
	}
	return &Index{name: name, members: unique}, nil
}

func (i *Index) Name() string { return i.name }
func (i *Index) Size() int    { return len(i.members) }

// Members returns the stocks of the index in the order they were first given.
func (i *Index) Members() []*Stock {
	members := make([]*Stock, len(i.members))
	copy(members, i.members)
	return members
}

// Calculate returns the geometric mean of the members' volume weighted prices.
//
// Members that traded outside the VWAP window contribute no factor but the root
// is still taken over the full member count. Returns 0 when no member has ever traded.
func (i *Index) Calculate() float64 {
	// a product of 1 is ambiguous, so trading is tracked separately
	traded := false
	product := decimal.NewFromInt(1)

	for _, stock := range i.members {
		if _, ok := stock.LastTrade(); !ok {
			continue
		}
		traded = true
		if vwap := stock.VolumeWeightedPrice(); vwap.Valid {
			product = roundSignificant(product.Mul(vwap.Decimal))
		}
	}
	if !traded {
		return 0.0
	}
	return nthRoot(product, len(i.members))
}
