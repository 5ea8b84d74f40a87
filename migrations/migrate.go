// Package migrations applies the database schema.
package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/jasado/jasado-middleware/models"
	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

const (
	postgresDialect = "postgres"
	migrationsDir   = "sql"
)

//go:embed sql/*.sql
var embedMigrations embed.FS

// Up runs all pending SQL migrations against a Postgres database.
func Up(db *sql.DB) error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(postgresDialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.Up(db, migrationsDir); err != nil {
		return fmt.Errorf("run goose up migrations: %w", err)
	}

	return nil
}

// Version returns the applied schema version.
func Version(db *sql.DB) (int64, error) {
	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect(postgresDialect); err != nil {
		return 0, fmt.Errorf("set goose dialect: %w", err)
	}
	return goose.GetDBVersion(db)
}

// AutoMigrate creates the schema from the models. It serves drivers the SQL
// migrations are not written for.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Models lists every persisted entity.
func Models() []any {
	return []any{
		&models.Product{},
		&models.GLSPriceList{},
		&models.AdditionalMasterData{},
		&models.GLSStockLevel{},
		&models.HandlingSurcharge{},
		&models.PromotionHeader{},
		&models.PromotionPrice{},
		&models.PromotionPosition{},
		&models.AeraProduct{},
		&models.WawiboxProduct{},
		&models.AeraCompetitorPrice{},
		&models.WawiboxCompetitorPrice{},
		&models.AeraExport{},
		&models.WawiboxExport{},
		&models.PricingSettings{},
		&models.ProductPriceHistory{},
		&models.TaskStatus{},
		&models.LogEntry{},
		&models.Admin{},
	}
}
