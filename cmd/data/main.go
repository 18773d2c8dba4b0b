package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"gbce/internal/infrastructure/catalog"
	"gbce/internal/infrastructure/catalog/models"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type dataConfig struct {
	DatabaseDSN string
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := loadConfig()
	if err != nil {
		logger.Fatalf("config error: %v", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		logger.Fatalf("connect postgres: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatalf("postgres handle: %v", err)
	}
	defer sqlDB.Close()

	if err := db.WithContext(ctx).AutoMigrate(&models.StockModel{}); err != nil {
		logger.Fatalf("migrate stocks table: %v", err)
	}

	defs := catalog.DefaultDefinitions()
	if err := upsertStocks(ctx, db, defs); err != nil {
		logger.Fatalf("save stocks: %v", err)
	}
	logger.WithField("stocks", len(defs)).Info("stocks synced")

	stored, err := loadStocks(ctx, db)
	if err != nil {
		logger.Fatalf("read back stocks: %v", err)
	}
	for _, def := range stored {
		logger.WithFields(logrus.Fields{
			"symbol": def.Symbol,
			"type":   def.Type,
		}).Debug("stock listed")
	}
	logger.WithField("listed", len(stored)).Info("stocks table verified")
	logger.Info("reference data sync finished")
}

func loadConfig() (*dataConfig, error) {
	dsn := strings.TrimSpace(os.Getenv("DATABASE_DSN"))
	if dsn == "" {
		return nil, errors.New("DATABASE_DSN is required")
	}
	return &dataConfig{DatabaseDSN: dsn}, nil
}

func upsertStocks(ctx context.Context, db *gorm.DB, defs []catalog.Definition) error {
	if len(defs) == 0 {
		return nil
	}
	rows := make([]models.StockModel, 0, len(defs))
	for _, def := range defs {
		rows = append(rows, catalog.ToModel(def))
	}
	err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "symbol"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"stock_type", "par_value", "last_dividend", "fixed_dividend", "updated_at", "deleted_at",
		}),
	}).Create(&rows).Error
	if err != nil {
		return fmt.Errorf("upsert stocks: %w", err)
	}
	return nil
}

func loadStocks(ctx context.Context, db *gorm.DB) ([]catalog.Definition, error) {
	var rows []models.StockModel
	if err := db.WithContext(ctx).Order("symbol").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("select stocks: %w", err)
	}
	if len(rows) == 0 {
		return nil, catalog.ErrEmptyCatalog
	}
	return definitionsFromRows(rows)
}

func definitionsFromRows(rows []models.StockModel) ([]catalog.Definition, error) {
	defs := make([]catalog.Definition, 0, len(rows))
	for _, row := range rows {
		def, err := catalog.FromModel(row)
		if err != nil {
			return nil, fmt.Errorf("stock %s: %w", row.Symbol, err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}
