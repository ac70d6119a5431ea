package database

import (
	"gorm.io/gorm"
)

// createIndexes creates the indexes the list and search endpoints lean on.
// The natural-key unique indexes (aadhaar, global_id, document name+url)
// come from the model tags and are created by AutoMigrate.
func createIndexes(db *gorm.DB) error {
	// Case listing is ordered by filing date
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_cases_date_filed
		ON cases(case_date_filed)
	`).Error; err != nil {
		return err
	}

	// Person search by name
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_people_name
		ON people(person_name)
	`).Error; err != nil {
		return err
	}

	// Trending/location analytics scan incidents by date
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_incidents_date_from
		ON incidents(incident_date_from)
	`).Error; err != nil {
		return err
	}

	return nil
}
