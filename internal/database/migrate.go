package database

import (
	"fmt"

	"gorm.io/gorm"

	"qual-store/internal/models"
)

// oneActiveOrderPerUser keeps concurrent first-adds from creating two carts.
const oneActiveOrderPerUser = `CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_one_active_per_user ON orders (user_id) WHERE status = 'ACTIVE'`

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.AppUser{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if err := db.Exec(oneActiveOrderPerUser).Error; err != nil {
		return fmt.Errorf("create active order index: %w", err)
	}
	return nil
}
