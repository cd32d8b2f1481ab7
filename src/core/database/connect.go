package database

import (
	"fmt"

	"questboard/src/core/config"
	"questboard/src/core/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// ConnectDB opens the Postgres connection and migrates the schema. The
// handle is returned to the caller; nothing here holds package state.
func ConnectDB() (*gorm.DB, error) {
	host := config.Config("DB_HOST")
	port := config.Config("DB_PORT")
	user := config.Config("DB_USER")
	password := config.Config("DB_PASSWORD")
	dbname := config.Config("DB_NAME")

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", host, port, user, password, dbname)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:    false,
		TranslateError: true,
		NamingStrategy: schema.NamingStrategy{
			SingularTable: false,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Quest{},
		&models.QuestStats{},
		&models.Forum{},
		&models.Comment{},
	); err != nil {
		return nil, fmt.Errorf("error migrating schema: %w", err)
	}

	return db, nil
}
