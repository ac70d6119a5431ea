package casegraph

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Lakshya5071/criminal-record-service/internal/database"
)

// Entity resolution: find an existing row by natural key, update its mutable
// fields in place, or insert a new row. Each resolver runs on the enclosing
// transaction handle and never commits on its own. The natural keys carry
// unique constraints, so resolution is an atomic upsert rather than a
// lookup-then-insert with a race window.

// resolvePerson returns the person row id for doc. An aadhaar number, when
// present, is the durable identity of a person: two submissions sharing one
// merge into a single row. Without an aadhaar a new row is always inserted.
func resolvePerson(tx *gorm.DB, doc *PersonDoc) (uint, error) {
	row := database.Person{
		PersonName:    doc.PersonName,
		AadhaarNumber: doc.AadhaarNumber,
		PhoneNumber:   doc.PhoneNumber,
		PersonAddress: doc.PersonAddress,
		PersonGender:  doc.PersonGender,
		PersonDOB:     docDate(doc.PersonDOB),
	}

	if doc.AadhaarNumber == nil {
		if err := tx.Create(&row).Error; err != nil {
			return 0, err
		}
		return row.ID, nil
	}

	err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "aadhaar_number"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"person_name", "phone_number", "person_address", "person_gender", "person_dob",
		}),
	}).Create(&row).Error
	if err != nil {
		return 0, err
	}
	if row.ID != 0 {
		return row.ID, nil
	}

	// driver did not hand the id back on conflict-update
	var existing database.Person
	if err := tx.Where("aadhaar_number = ?", *doc.AadhaarNumber).First(&existing).Error; err != nil {
		return 0, err
	}
	return existing.ID, nil
}

// resolveDocument deduplicates documents by the (name, content URL) pair.
// New rows are tied to the owning case.
func resolveDocument(tx *gorm.DB, doc *DocumentDoc, caseID uint) (uint, error) {
	row := database.Document{
		CaseID:             caseID,
		DocumentName:       doc.DocumentName,
		DocumentType:       doc.DocumentType,
		DocumentDate:       docDate(doc.DocumentDate),
		DocumentContentURL: doc.DocumentContentURL,
	}

	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "document_name"}, {Name: "document_content_url"}},
		DoUpdates: clause.AssignmentColumns([]string{"document_type", "document_date"}),
	}).Create(&row).Error
	if err != nil {
		return 0, err
	}
	if row.ID != 0 {
		return row.ID, nil
	}

	var existing database.Document
	err = tx.Where("document_name = ? AND document_content_url = ?",
		doc.DocumentName, doc.DocumentContentURL).First(&existing).Error
	if err != nil {
		return 0, err
	}
	return existing.ID, nil
}

// resolveAuthority deduplicates authorities by their global id.
func resolveAuthority(tx *gorm.DB, doc *AuthorityDoc) (uint, error) {
	row := database.Authority{
		GlobalID:      doc.GlobalID,
		AuthorityName: doc.AuthorityName,
		AuthorityType: doc.AuthorityType,
	}

	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "global_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"authority_name", "authority_type"}),
	}).Create(&row).Error
	if err != nil {
		return 0, err
	}
	if row.ID != 0 {
		return row.ID, nil
	}

	var existing database.Authority
	if err := tx.Where("global_id = ?", doc.GlobalID).First(&existing).Error; err != nil {
		return 0, err
	}
	return existing.ID, nil
}
