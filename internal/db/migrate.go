package db

import (
	"calldesk/internal/models"
)

func AutoMigrate(db *DB) error {
	if db == nil || db.Gorm == nil || db.SQL == nil {
		return nil
	}

	if err := db.Gorm.AutoMigrate(
		&models.Call{},
		&models.User{},
	); err != nil {
		return err
	}
	// Listing queries filter on trading day and sort on creation time together.
	return db.Gorm.Exec(`CREATE INDEX IF NOT EXISTS idx_calls_trading_day_created_at ON calls (trading_day, created_at DESC)`).Error
}
