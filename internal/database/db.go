package database

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Initialize opens the database described by the driver/DSN pair and runs
// migrations. driver is "sqlite" or "postgres"; for sqlite the dsn is a file
// path.
func Initialize(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch driver {
	case "sqlite", "":
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&Case{},
		&Person{},
		&Authority{},
		&Document{},
		&Incident{},
		&Evidence{},
		&Sentence{},
		&Proceeding{},
		&IncidentVictim{},
		&IncidentWitness{},
		&SentencePerson{},
		&InvestigatingAuthority{},
		&ProceedingPlaintiff{},
		&ProceedingDefendant{},
		&ProceedingPlaintiffAdvocate{},
		&ProceedingDefendantAdvocate{},
		&ProceedingOtherDocument{},
		&AdminToken{},
	); err != nil {
		return err
	}

	return createIndexes(db)
}
