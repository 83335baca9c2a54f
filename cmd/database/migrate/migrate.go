package migration

import (
	"fmt"
	"log"

	"warranty-hub-backend/entities"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.StoreProfile{}); err != nil {
		log.Fatalf("Error migrating store profile database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Warranty{}); err != nil {
		log.Fatalf("Error migrating warranty database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.WarrantyItem{}); err != nil {
		log.Fatalf("Error migrating warranty item database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
