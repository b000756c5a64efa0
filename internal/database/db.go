package database

import (
	"log"

	"tienda-backend/internal/config"
	"tienda-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Could not connect to the database: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	log.Println("Database connection established, migration complete.")
}

// Migrate is separate from Init so tests can run it against their own
// (sqlite) connection.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Store{},
		&models.Category{},
		&models.Product{},
		&models.Image{},
		&models.SaleRecord{},
	)
}
