package main

import (
	"testing"

	"gbce/internal/domain/entity/stocks"
	"gbce/internal/infrastructure/catalog"
	"gbce/internal/infrastructure/catalog/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefinitionsFromRows_RoundTripsDefaultListing(t *testing.T) {
	var rows []models.StockModel
	for _, def := range catalog.DefaultDefinitions() {
		rows = append(rows, catalog.ToModel(def))
	}

	defs, err := definitionsFromRows(rows)
	require.NoError(t, err)
	require.Len(t, defs, len(rows))

	for i, def := range defs {
		assert.Equal(t, rows[i].Symbol, def.Symbol)
		assert.Equal(t, rows[i].StockType, def.Type.String())
		assert.Equal(t, rows[i].ParValue, def.ParValue)
		assert.Equal(t, rows[i].LastDividend, def.LastDividend)
	}
	assert.Equal(t, stocks.PreferredType, defs[3].Type)
	require.True(t, defs[3].FixedDividend.Valid)
}

func TestDefinitionsFromRows_RejectsUnknownType(t *testing.T) {
	rows := []models.StockModel{
		{Symbol: "TEA", StockType: "common", ParValue: 100},
		{Symbol: "BAD", StockType: "warrant", ParValue: 1},
	}

	_, err := definitionsFromRows(rows)
	require.Error(t, err)
	assert.ErrorIs(t, err, stocks.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "BAD")
}

func TestLoadConfig_RequiresDSN(t *testing.T) {
	t.Setenv("DATABASE_DSN", "  ")
	_, err := loadConfig()
	require.Error(t, err)

	t.Setenv("DATABASE_DSN", "postgres://gbce@localhost/gbce")
	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "postgres://gbce@localhost/gbce", cfg.DatabaseDSN)
}
