package database

import (
	"gorm.io/gorm"

	"wms-finance/models"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Warehouse{},
		&models.Customer{},
		&models.Order{},
		&models.FeeConfig{},
		&models.Bill{},
	)
}
