package database

import (
	"log"

	"taskhive/taskhive/models"

	"gorm.io/gorm"
)

// RunMigrations brings the schema up to date for all persisted models.
func RunMigrations(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Task{},
	)

	if err != nil {
		log.Printf("Migration failed: %v", err)
		return err
	}

	return nil
}
