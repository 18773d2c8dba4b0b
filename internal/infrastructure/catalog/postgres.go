package catalog

import (
	"context"
	"errors"
	"fmt"

	"gbce/internal/domain/entity/stocks"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var ErrEmptyCatalog = errors.New("stock catalog is empty")

// PostgresSource reads stock reference data from the `stocks` table.
// Only definitions live in Postgres; ledgers are kept in memory.
type PostgresSource struct {
	pool *pgxpool.Pool
}

func NewPostgresSource(ctx context.Context, dsn string) (*PostgresSource, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pgx config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}
	return &PostgresSource{pool: pool}, nil
}

func (s *PostgresSource) Close() {
	if s == nil || s.pool == nil {
		return
	}
	s.pool.Close()
}

const selectDefinitionsQuery = `
	SELECT symbol, stock_type, par_value::bigint, last_dividend::bigint, fixed_dividend::text
	FROM stocks
	WHERE deleted_at IS NULL
	ORDER BY symbol`

// LoadDefinitions returns every listed stock. An empty table is an error.
func (s *PostgresSource) LoadDefinitions(ctx context.Context) ([]Definition, error) {
	rows, err := s.pool.Query(ctx, selectDefinitionsQuery)
	if err != nil {
		return nil, fmt.Errorf("query stocks: %w", err)
	}
	defs, err := pgx.CollectRows(rows, scanDefinition)
	if err != nil {
		return nil, fmt.Errorf("scan stocks: %w", err)
	}
	if len(defs) == 0 {
		return nil, ErrEmptyCatalog
	}
	return defs, nil
}

func scanDefinition(row pgx.CollectableRow) (Definition, error) {
	var (
		def       Definition
		stockType string
		fixed     *string
	)
	if err := row.Scan(&def.Symbol, &stockType, &def.ParValue, &def.LastDividend, &fixed); err != nil {
		return Definition{}, err
	}
	parsedType, err := stocks.NewStockType(stockType)
	if err != nil {
		return Definition{}, fmt.Errorf("stock %s: %w", def.Symbol, err)
	}
	def.Type = parsedType
	def.FixedDividend, err = parseNullDecimal(fixed)
	if err != nil {
		return Definition{}, fmt.Errorf("stock %s fixed dividend: %w", def.Symbol, err)
	}
	return def, nil
}

func parseNullDecimal(raw *string) (decimal.NullDecimal, error) {
	if raw == nil {
		return decimal.NullDecimal{}, nil
	}
	value, err := decimal.NewFromString(*raw)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(value), nil
}
