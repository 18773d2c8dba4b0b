package catalog

import (
	"gbce/internal/domain/entity/stocks"
	"gbce/internal/infrastructure/catalog/models"
)

// ToModel converts a definition into its table row.
func ToModel(def Definition) models.StockModel {
	return models.StockModel{
		Symbol:        symbolKey(def.Symbol),
		StockType:     def.Type.String(),
		ParValue:      def.ParValue,
		LastDividend:  def.LastDividend,
		FixedDividend: def.FixedDividend,
	}
}

// FromModel converts a table row back into a definition.
func FromModel(m models.StockModel) (Definition, error) {
	stockType, err := stocks.NewStockType(m.StockType)
	if err != nil {
		return Definition{}, err
	}
	return Definition{
		Symbol:        m.Symbol,
		Type:          stockType,
		ParValue:      m.ParValue,
		LastDividend:  m.LastDividend,
		FixedDividend: m.FixedDividend,
	}, nil
}
