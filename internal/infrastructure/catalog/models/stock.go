package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StockModel maps the `stocks` reference table read by catalog.PostgresSource.
type StockModel struct {
	Symbol        string              `gorm:"primaryKey;column:symbol;type:varchar(16);not null"`
	StockType     string              `gorm:"column:stock_type;type:varchar(16);not null"`
	ParValue      int64               `gorm:"column:par_value;type:bigint;not null"`
	LastDividend  int64               `gorm:"column:last_dividend;type:bigint;not null"`
	FixedDividend decimal.NullDecimal `gorm:"column:fixed_dividend;type:numeric(12,4)"`
	CreatedAt     time.Time           `gorm:"column:created_at;type:timestamp;default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;type:timestamp;default:CURRENT_TIMESTAMP"`
	DeletedAt     gorm.DeletedAt      `gorm:"column:deleted_at;type:timestamp;index"`
}

func (StockModel) TableName() string {
	return "stocks"
}
