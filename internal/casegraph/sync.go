package casegraph

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Lakshya5071/criminal-record-service/internal/database"
)

// Create inserts a case and its full child graph in one transaction and
// returns the new case id. Callers validate the document first; on any
// failure the transaction rolls back and no partial case exists.
func (s *CaseStore) Create(doc *CaseDocument) (uint, error) {
	var caseID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		row := database.Case{
			CaseName:        doc.CaseName,
			CaseType:        doc.CaseType,
			CaseStatus:      doc.CaseStatus,
			CaseDescription: doc.CaseDescription,
			CaseDateFiled:   docDate(doc.CaseDateFiled),
			CaseDateClosed:  docDatePtr(doc.CaseDateClosed),
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		caseID = row.ID
		return s.syncChildren(tx, caseID, doc)
	})
	if err != nil {
		return 0, err
	}
	s.log.Info("case created", "case_id", caseID)
	return caseID, nil
}

// Update reconciles the stored case graph against doc: the case row's scalar
// fields are overwritten, and every child collection is diffed so that the
// stored set exactly matches the document afterwards. Items carrying an
// existing row id are updated in place, items without one are inserted, and
// rows absent from the document are removed.
func (s *CaseStore) Update(caseID uint, doc *CaseDocument) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing database.Case
		if err := tx.First(&existing, caseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCaseNotFound
			}
			return err
		}

		err := tx.Model(&database.Case{}).Where("id = ?", caseID).
			Select("case_name", "case_type", "case_status", "case_description",
				"case_date_filed", "case_date_closed").
			Updates(database.Case{
				CaseName:        doc.CaseName,
				CaseType:        doc.CaseType,
				CaseStatus:      doc.CaseStatus,
				CaseDescription: doc.CaseDescription,
				CaseDateFiled:   docDate(doc.CaseDateFiled),
				CaseDateClosed:  docDatePtr(doc.CaseDateClosed),
			}).Error
		if err != nil {
			return err
		}

		return s.syncChildren(tx, caseID, doc)
	})
	if err != nil {
		return err
	}
	s.log.Info("case updated", "case_id", caseID)
	return nil
}

// Delete removes the case and every row that references it, children before
// parents, in one transaction. Person, authority and document rows survive:
// they are shared across cases and only reachable through association rows.
func (s *CaseStore) Delete(caseID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing database.Case
		if err := tx.First(&existing, caseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCaseNotFound
			}
			return err
		}
		return deleteCaseGraph(tx, caseID)
	})
	if err != nil {
		return err
	}
	s.log.Info("case deleted", "case_id", caseID)
	return nil
}

func (s *CaseStore) syncChildren(tx *gorm.DB, caseID uint, doc *CaseDocument) error {
	if err := s.syncIncidents(tx, caseID, doc.Incidents); err != nil {
		return err
	}
	if err := s.syncEvidences(tx, caseID, doc.Evidences); err != nil {
		return err
	}
	if err := s.syncSentences(tx, caseID, doc.Sentences); err != nil {
		return err
	}
	if err := s.syncInvestigatingAuthorities(tx, caseID, doc.InvestigatingAuthorities); err != nil {
		return err
	}
	return s.syncProceedings(tx, caseID, doc.Proceedings)
}

func (s *CaseStore) syncIncidents(tx *gorm.DB, caseID uint, docs []IncidentDoc) error {
	var existingIDs []uint
	if err := tx.Model(&database.Incident{}).Where("case_id = ?", caseID).Pluck("id", &existingIDs).Error; err != nil {
		return err
	}
	existing := keySet(existingIDs)

	kept := make(map[uint]bool, len(docs))
	for i := range docs {
		inc := &docs[i]

		var reportID *uint
		if inc.Report != nil {
			id, err := resolveDocument(tx, inc.Report, caseID)
			if err != nil {
				return err
			}
			reportID = &id
		}

		row := database.Incident{
			CaseID:           caseID,
			IncidentDateFrom: docDate(inc.IncidentDateFrom),
			IncidentDateTo:   docDate(inc.IncidentDateTo),
			IncidentLocation: inc.IncidentLocation,
			IncidentStatus:   inc.IncidentStatus,
			Latitude:         inc.Latitude,
			Longitude:        inc.Longitude,
			IncidentReportID: reportID,
		}

		if inc.ID != 0 && existing[inc.ID] {
			err := tx.Model(&database.Incident{}).
				Where("id = ? AND case_id = ?", inc.ID, caseID).
				Select("incident_date_from", "incident_date_to", "incident_location",
					"incident_status", "latitude", "longitude", "incident_report_id").
				Updates(&row).Error
			if err != nil {
				return err
			}
			row.ID = inc.ID
		} else {
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		kept[row.ID] = true

		if err := s.syncIncidentPeople(tx, "incident_victims", row.ID, inc.Victims); err != nil {
			return err
		}
		if err := s.syncIncidentPeople(tx, "incident_witnesses", row.ID, inc.Witnesses); err != nil {
			return err
		}
	}

	for _, id := range existingIDs {
		if kept[id] {
			continue
		}
		// association rows reference the incident, so they go first
		if err := tx.Where("incident_id = ?", id).Delete(&database.IncidentVictim{}).Error; err != nil {
			return err
		}
		if err := tx.Where("incident_id = ?", id).Delete(&database.IncidentWitness{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&database.Incident{}, id).Error; err != nil {
			return err
		}
	}
	return nil
}

// syncIncidentPeople reconciles one victim or witness table for an incident.
// The association is keyed by the resolved person id rather than a synthetic
// row id: matched pairs keep their row and get comments updated, unmatched
// existing pairs are removed, unmatched incoming ones inserted. Person rows
// themselves are never deleted here.
func (s *CaseStore) syncIncidentPeople(tx *gorm.DB, table string, incidentID uint, docs []IncidentPersonDoc) error {
	var existingIDs []uint
	if err := tx.Table(table).Where("incident_id = ?", incidentID).Pluck("person_id", &existingIDs).Error; err != nil {
		return err
	}
	existing := keySet(existingIDs)

	kept := make(map[uint]bool, len(docs))
	for i := range docs {
		entry := &docs[i]
		personID, err := resolvePerson(tx, entry.Person)
		if err != nil {
			return err
		}
		if kept[personID] {
			continue
		}
		kept[personID] = true

		if existing[personID] {
			err = tx.Table(table).
				Where("incident_id = ? AND person_id = ?", incidentID, personID).
				Update("comments", entry.Comments).Error
		} else {
			err = tx.Table(table).Create(map[string]interface{}{
				"incident_id": incidentID,
				"person_id":   personID,
				"comments":    entry.Comments,
			}).Error
		}
		if err != nil {
			return err
		}
	}

	for _, personID := range existingIDs {
		if kept[personID] {
			continue
		}
		if err := tx.Exec("DELETE FROM "+table+" WHERE incident_id = ? AND person_id = ?",
			incidentID, personID).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *CaseStore) syncEvidences(tx *gorm.DB, caseID uint, docs []EvidenceDoc) error {
	var existingIDs []uint
	if err := tx.Model(&database.Evidence{}).Where("case_id = ?", caseID).Pluck("id", &existingIDs).Error; err != nil {
		return err
	}
	existing := keySet(existingIDs)

	kept := make(map[uint]bool, len(docs))
	for i := range docs {
		ev := &docs[i]
		row := database.Evidence{
			CaseID:              caseID,
			EvidenceName:        ev.EvidenceName,
			EvidenceDescription: ev.EvidenceDescription,
			EvidenceDateFound:   docDate(ev.EvidenceDateFound),
			EvidenceLocation:    ev.EvidenceLocation,
		}

		if ev.ID != 0 && existing[ev.ID] {
			err := tx.Model(&database.Evidence{}).
				Where("id = ? AND case_id = ?", ev.ID, caseID).
				Select("evidence_name", "evidence_description",
					"evidence_date_found", "evidence_location").
				Updates(&row).Error
			if err != nil {
				return err
			}
			row.ID = ev.ID
		} else {
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		kept[row.ID] = true
	}

	for _, id := range existingIDs {
		if !kept[id] {
			if err := tx.Delete(&database.Evidence{}, id).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *CaseStore) syncSentences(tx *gorm.DB, caseID uint, docs []SentenceDoc) error {
	var existingIDs []uint
	if err := tx.Model(&database.Sentence{}).Where("case_id = ?", caseID).Pluck("id", &existingIDs).Error; err != nil {
		return err
	}
	existing := keySet(existingIDs)

	kept := make(map[uint]bool, len(docs))
	for i := range docs {
		sd := &docs[i]
		row := database.Sentence{
			CaseID:       caseID,
			SentenceDate: docDate(sd.SentenceDate),
			SentenceType: sd.SentenceType,
		}
		if sd.SentenceDuration != nil {
			row.SentenceDuration = *sd.SentenceDuration
		}

		if sd.ID != 0 && existing[sd.ID] {
			err := tx.Model(&database.Sentence{}).
				Where("id = ? AND case_id = ?", sd.ID, caseID).
				Select("sentence_date", "sentence_type", "sentence_duration").
				Updates(&row).Error
			if err != nil {
				return err
			}
			row.ID = sd.ID
		} else {
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		kept[row.ID] = true

		if err := s.syncSentencePeople(tx, row.ID, sd.SentencedPeople); err != nil {
			return err
		}
	}

	for _, id := range existingIDs {
		if kept[id] {
			continue
		}
		if err := tx.Where("sentence_id = ?", id).Delete(&database.SentencePerson{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&database.Sentence{}, id).Error; err != nil {
			return err
		}
	}
	return nil
}

// syncSentencePeople reconciles sentenced-person associations by resolved
// person id, updating the compliance attributes on matched pairs.
func (s *CaseStore) syncSentencePeople(tx *gorm.DB, sentenceID uint, docs []SentencedPersonDoc) error {
	var existingRows []database.SentencePerson
	if err := tx.Where("sentence_id = ?", sentenceID).Find(&existingRows).Error; err != nil {
		return err
	}
	existing := make(map[uint]bool, len(existingRows))
	for _, row := range existingRows {
		existing[row.PersonID] = true
	}

	kept := make(map[uint]bool, len(docs))
	for i := range docs {
		sp := &docs[i]
		personID, err := resolvePerson(tx, sp.Person)
		if err != nil {
			return err
		}
		if kept[personID] {
			continue
		}
		kept[personID] = true

		attrs := database.SentencePerson{
			ComplianceStatus:     sp.ComplianceStatus,
			ComplianceNotes:      sp.ComplianceNotes,
			SupervisionLevel:     sp.SupervisionLevel,
			RehabilitationStatus: sp.RehabilitationStatus,
			AppealStatus:         sp.AppealStatus,
		}

		if existing[personID] {
			err = tx.Model(&database.SentencePerson{}).
				Where("sentence_id = ? AND person_id = ?", sentenceID, personID).
				Select("compliance_status", "compliance_notes", "supervision_level",
					"rehabilitation_status", "appeal_status").
				Updates(&attrs).Error
		} else {
			attrs.SentenceID = sentenceID
			attrs.PersonID = personID
			err = tx.Create(&attrs).Error
		}
		if err != nil {
			return err
		}
	}

	for _, row := range existingRows {
		if !kept[row.PersonID] {
			if err := tx.Delete(&database.SentencePerson{}, row.ID).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// syncInvestigatingAuthorities replaces the whole link set for the case.
// The link carries no state beyond the pair and its date range, which every
// document resupplies in full, so a diff buys nothing here.
func (s *CaseStore) syncInvestigatingAuthorities(tx *gorm.DB, caseID uint, docs []AuthorityLinkDoc) error {
	if err := tx.Where("case_id = ?", caseID).Delete(&database.InvestigatingAuthority{}).Error; err != nil {
		return err
	}

	for i := range docs {
		link := &docs[i]
		authorityID, err := resolveAuthority(tx, link.Authority)
		if err != nil {
			return err
		}
		row := database.InvestigatingAuthority{
			CaseID:      caseID,
			AuthorityID: authorityID,
			DateFrom:    docDate(link.DateFrom),
			DateTo:      docDatePtr(link.DateTo),
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

var proceedingLinkTables = []string{
	"proceeding_other_documents",
	"proceeding_plaintiffs",
	"proceeding_plaintiff_advocates",
	"proceeding_defendants",
	"proceeding_defendant_advocates",
}

func (s *CaseStore) syncProceedings(tx *gorm.DB, caseID uint, docs []ProceedingDoc) error {
	var existingIDs []uint
	if err := tx.Model(&database.Proceeding{}).Where("case_id = ?", caseID).Pluck("id", &existingIDs).Error; err != nil {
		return err
	}
	existing := keySet(existingIDs)

	kept := make(map[uint]bool, len(docs))
	for i := range docs {
		p := &docs[i]

		var courtID, judgeID, transcriptID *uint
		if p.CourtAuthority != nil {
			id, err := resolveAuthority(tx, p.CourtAuthority)
			if err != nil {
				return err
			}
			courtID = &id
		}
		if p.Judge != nil {
			id, err := resolvePerson(tx, p.Judge)
			if err != nil {
				return err
			}
			judgeID = &id
		}
		if p.Transcript != nil {
			id, err := resolveDocument(tx, p.Transcript, caseID)
			if err != nil {
				return err
			}
			transcriptID = &id
		}

		row := database.Proceeding{
			CaseID:            caseID,
			ProceedingType:    p.ProceedingType,
			ProceedingStatus:  p.ProceedingStatus,
			DateStarted:       docDate(p.DateStarted),
			DateEnded:         docDatePtr(p.DateEnded),
			ProceedingNotes:   p.ProceedingNotes,
			PresidingOfficers: p.PresidingOfficers,
			CourtAuthorityID:  courtID,
			JudgeID:           judgeID,
			TranscriptID:      transcriptID,
		}

		if p.ID != 0 && existing[p.ID] {
			err := tx.Model(&database.Proceeding{}).
				Where("id = ? AND case_id = ?", p.ID, caseID).
				Select("proceeding_type", "proceeding_status", "date_started", "date_ended",
					"proceeding_notes", "presiding_officers", "court_authority_id",
					"judge_id", "transcript_id").
				Updates(&row).Error
			if err != nil {
				return err
			}
			row.ID = p.ID
		} else {
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		kept[row.ID] = true

		if err := s.syncProceedingDocuments(tx, caseID, row.ID, p.OtherDocuments); err != nil {
			return err
		}
		if err := s.syncProceedingPeople(tx, "proceeding_plaintiffs", row.ID, p.Plaintiffs); err != nil {
			return err
		}
		if err := s.syncProceedingPeople(tx, "proceeding_plaintiff_advocates", row.ID, p.PlaintiffAdvocates); err != nil {
			return err
		}
		if err := s.syncProceedingPeople(tx, "proceeding_defendants", row.ID, p.Defendants); err != nil {
			return err
		}
		if err := s.syncProceedingPeople(tx, "proceeding_defendant_advocates", row.ID, p.DefendantAdvocates); err != nil {
			return err
		}
	}

	for _, id := range existingIDs {
		if kept[id] {
			continue
		}
		for _, table := range proceedingLinkTables {
			if err := tx.Exec("DELETE FROM "+table+" WHERE proceeding_id = ?", id).Error; err != nil {
				return err
			}
		}
		if err := tx.Delete(&database.Proceeding{}, id).Error; err != nil {
			return err
		}
	}
	return nil
}

// syncProceedingPeople reconciles a bare person link table (plaintiffs,
// defendants or either advocate set) keyed by the resolved person id.
func (s *CaseStore) syncProceedingPeople(tx *gorm.DB, table string, proceedingID uint, people []PersonDoc) error {
	var existingIDs []uint
	if err := tx.Table(table).Where("proceeding_id = ?", proceedingID).Pluck("person_id", &existingIDs).Error; err != nil {
		return err
	}
	existing := keySet(existingIDs)

	kept := make(map[uint]bool, len(people))
	for i := range people {
		personID, err := resolvePerson(tx, &people[i])
		if err != nil {
			return err
		}
		if kept[personID] {
			continue
		}
		kept[personID] = true

		if !existing[personID] {
			err := tx.Table(table).Create(map[string]interface{}{
				"proceeding_id": proceedingID,
				"person_id":     personID,
			}).Error
			if err != nil {
				return err
			}
		}
	}

	for _, personID := range existingIDs {
		if kept[personID] {
			continue
		}
		if err := tx.Exec("DELETE FROM "+table+" WHERE proceeding_id = ? AND person_id = ?",
			proceedingID, personID).Error; err != nil {
			return err
		}
	}
	return nil
}

// syncProceedingDocuments reconciles the other-documents link set keyed by
// the resolved document id.
func (s *CaseStore) syncProceedingDocuments(tx *gorm.DB, caseID, proceedingID uint, docs []DocumentDoc) error {
	var existingIDs []uint
	if err := tx.Model(&database.ProceedingOtherDocument{}).
		Where("proceeding_id = ?", proceedingID).Pluck("document_id", &existingIDs).Error; err != nil {
		return err
	}
	existing := keySet(existingIDs)

	kept := make(map[uint]bool, len(docs))
	for i := range docs {
		documentID, err := resolveDocument(tx, &docs[i], caseID)
		if err != nil {
			return err
		}
		if kept[documentID] {
			continue
		}
		kept[documentID] = true

		if !existing[documentID] {
			row := database.ProceedingOtherDocument{ProceedingID: proceedingID, DocumentID: documentID}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
	}

	for _, documentID := range existingIDs {
		if kept[documentID] {
			continue
		}
		if err := tx.Where("proceeding_id = ? AND document_id = ?", proceedingID, documentID).
			Delete(&database.ProceedingOtherDocument{}).Error; err != nil {
			return err
		}
	}
	return nil
}

// deleteStep names one child table and how its rows tie back to the case.
// The slice below is the full dependency order for a cascade: rows that
// reference a parent are always removed before the parent itself.
type deleteStep struct {
	model  interface{}
	column string
	// when set, matching ids come from this parent table's rows for the case
	viaTable string
	viaCol   string
}

var caseDeleteOrder = []deleteStep{
	{model: &database.InvestigatingAuthority{}, column: "case_id"},
	{model: &database.Evidence{}, column: "case_id"},
	{model: &database.ProceedingOtherDocument{}, column: "proceeding_id", viaTable: "proceedings", viaCol: "case_id"},
	{model: &database.ProceedingPlaintiff{}, column: "proceeding_id", viaTable: "proceedings", viaCol: "case_id"},
	{model: &database.ProceedingPlaintiffAdvocate{}, column: "proceeding_id", viaTable: "proceedings", viaCol: "case_id"},
	{model: &database.ProceedingDefendant{}, column: "proceeding_id", viaTable: "proceedings", viaCol: "case_id"},
	{model: &database.ProceedingDefendantAdvocate{}, column: "proceeding_id", viaTable: "proceedings", viaCol: "case_id"},
	{model: &database.Proceeding{}, column: "case_id"},
	{model: &database.IncidentVictim{}, column: "incident_id", viaTable: "incidents", viaCol: "case_id"},
	{model: &database.IncidentWitness{}, column: "incident_id", viaTable: "incidents", viaCol: "case_id"},
	{model: &database.Incident{}, column: "case_id"},
	{model: &database.SentencePerson{}, column: "sentence_id", viaTable: "sentences", viaCol: "case_id"},
	{model: &database.Sentence{}, column: "case_id"},
	{model: &database.Case{}, column: "id"},
}

func deleteCaseGraph(tx *gorm.DB, caseID uint) error {
	for _, step := range caseDeleteOrder {
		q := tx
		if step.viaTable != "" {
			sub := tx.Table(step.viaTable).Select("id").Where(step.viaCol+" = ?", caseID)
			q = tx.Where(step.column+" IN (?)", sub)
		} else {
			q = tx.Where(step.column+" = ?", caseID)
		}
		if err := q.Delete(step.model).Error; err != nil {
			return err
		}
	}
	return nil
}

func keySet(ids []uint) map[uint]bool {
	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
