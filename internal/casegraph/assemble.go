package casegraph

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Lakshya5071/criminal-record-service/internal/database"
)

type personLinkRow struct {
	database.Person
	Comments *string
}

type sentencedPersonRow struct {
	database.Person
	ComplianceStatus     string
	ComplianceNotes      *string
	SupervisionLevel     string
	RehabilitationStatus string
	AppealStatus         string
}

type authorityLinkRow struct {
	database.Authority
	DateFrom database.Date
	DateTo   *database.Date
}

// Get assembles the full nested document for one case, fanning out across
// the child and association tables and inlining the shared person, authority
// and document rows where the document references them.
func (s *CaseStore) Get(caseID uint) (*CaseDocument, error) {
	var row database.Case
	if err := s.db.First(&row, caseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCaseNotFound
		}
		return nil, err
	}

	doc := &CaseDocument{
		ID:              row.ID,
		CaseName:        row.CaseName,
		CaseStatus:      row.CaseStatus,
		CaseType:        row.CaseType,
		CaseDescription: row.CaseDescription,
		CaseDateFiled:   row.CaseDateFiled.String(),
		CaseDateClosed:  dateString(row.CaseDateClosed),
	}

	var err error
	if doc.Incidents, err = s.assembleIncidents(caseID); err != nil {
		return nil, err
	}
	if doc.Evidences, err = s.assembleEvidences(caseID); err != nil {
		return nil, err
	}
	if doc.Sentences, err = s.assembleSentences(caseID); err != nil {
		return nil, err
	}
	if doc.InvestigatingAuthorities, err = s.assembleInvestigatingAuthorities(caseID); err != nil {
		return nil, err
	}
	if doc.Proceedings, err = s.assembleProceedings(caseID); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *CaseStore) assembleIncidents(caseID uint) ([]IncidentDoc, error) {
	var rows []database.Incident
	if err := s.db.Where("case_id = ?", caseID).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	docs := make([]IncidentDoc, 0, len(rows))
	for i := range rows {
		inc := &rows[i]
		doc := IncidentDoc{
			ID:               inc.ID,
			IncidentDateFrom: inc.IncidentDateFrom.String(),
			IncidentDateTo:   inc.IncidentDateTo.String(),
			IncidentLocation: inc.IncidentLocation,
			IncidentStatus:   inc.IncidentStatus,
			Latitude:         inc.Latitude,
			Longitude:        inc.Longitude,
		}

		var err error
		if doc.Victims, err = s.assembleIncidentPeople("incident_victims", inc.ID); err != nil {
			return nil, err
		}
		if doc.Witnesses, err = s.assembleIncidentPeople("incident_witnesses", inc.ID); err != nil {
			return nil, err
		}
		if doc.Report, err = s.lookupDocument(inc.IncidentReportID); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (s *CaseStore) assembleIncidentPeople(table string, incidentID uint) ([]IncidentPersonDoc, error) {
	var rows []personLinkRow
	err := s.db.Table(table).
		Select("people.*, "+table+".comments").
		Joins("JOIN people ON people.id = "+table+".person_id").
		Where(table+".incident_id = ?", incidentID).
		Order("people.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	docs := make([]IncidentPersonDoc, 0, len(rows))
	for i := range rows {
		docs = append(docs, IncidentPersonDoc{
			Person:   personToDoc(&rows[i].Person),
			Comments: rows[i].Comments,
		})
	}
	return docs, nil
}

func (s *CaseStore) assembleEvidences(caseID uint) ([]EvidenceDoc, error) {
	var rows []database.Evidence
	if err := s.db.Where("case_id = ?", caseID).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	docs := make([]EvidenceDoc, 0, len(rows))
	for i := range rows {
		ev := &rows[i]
		docs = append(docs, EvidenceDoc{
			ID:                  ev.ID,
			EvidenceName:        ev.EvidenceName,
			EvidenceDescription: ev.EvidenceDescription,
			EvidenceDateFound:   ev.EvidenceDateFound.String(),
			EvidenceLocation:    ev.EvidenceLocation,
		})
	}
	return docs, nil
}

func (s *CaseStore) assembleSentences(caseID uint) ([]SentenceDoc, error) {
	var rows []database.Sentence
	if err := s.db.Where("case_id = ?", caseID).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	docs := make([]SentenceDoc, 0, len(rows))
	for i := range rows {
		sen := &rows[i]
		duration := sen.SentenceDuration
		doc := SentenceDoc{
			ID:               sen.ID,
			SentenceDate:     sen.SentenceDate.String(),
			SentenceType:     sen.SentenceType,
			SentenceDuration: &duration,
		}

		var linked []sentencedPersonRow
		err := s.db.Table("sentence_people").
			Select("people.*, sentence_people.compliance_status, sentence_people.compliance_notes, "+
				"sentence_people.supervision_level, sentence_people.rehabilitation_status, "+
				"sentence_people.appeal_status").
			Joins("JOIN people ON people.id = sentence_people.person_id").
			Where("sentence_people.sentence_id = ?", sen.ID).
			Order("people.id").
			Scan(&linked).Error
		if err != nil {
			return nil, err
		}
		for j := range linked {
			doc.SentencedPeople = append(doc.SentencedPeople, SentencedPersonDoc{
				Person:               personToDoc(&linked[j].Person),
				ComplianceStatus:     linked[j].ComplianceStatus,
				ComplianceNotes:      linked[j].ComplianceNotes,
				SupervisionLevel:     linked[j].SupervisionLevel,
				RehabilitationStatus: linked[j].RehabilitationStatus,
				AppealStatus:         linked[j].AppealStatus,
			})
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (s *CaseStore) assembleInvestigatingAuthorities(caseID uint) ([]AuthorityLinkDoc, error) {
	var rows []authorityLinkRow
	err := s.db.Table("investigating_authorities").
		Select("authorities.*, investigating_authorities.date_from, investigating_authorities.date_to").
		Joins("JOIN authorities ON authorities.id = investigating_authorities.authority_id").
		Where("investigating_authorities.case_id = ?", caseID).
		Order("investigating_authorities.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	docs := make([]AuthorityLinkDoc, 0, len(rows))
	for i := range rows {
		docs = append(docs, AuthorityLinkDoc{
			Authority: authorityToDoc(&rows[i].Authority),
			DateFrom:  rows[i].DateFrom.String(),
			DateTo:    dateString(rows[i].DateTo),
		})
	}
	return docs, nil
}

func (s *CaseStore) assembleProceedings(caseID uint) ([]ProceedingDoc, error) {
	var rows []database.Proceeding
	if err := s.db.Where("case_id = ?", caseID).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	docs := make([]ProceedingDoc, 0, len(rows))
	for i := range rows {
		p := &rows[i]
		doc := ProceedingDoc{
			ID:                p.ID,
			ProceedingType:    p.ProceedingType,
			ProceedingStatus:  p.ProceedingStatus,
			DateStarted:       p.DateStarted.String(),
			DateEnded:         dateString(p.DateEnded),
			PresidingOfficers: p.PresidingOfficers,
			ProceedingNotes:   p.ProceedingNotes,
		}

		var err error
		if doc.CourtAuthority, err = s.lookupAuthority(p.CourtAuthorityID); err != nil {
			return nil, err
		}
		if doc.Judge, err = s.lookupPerson(p.JudgeID); err != nil {
			return nil, err
		}
		if doc.Transcript, err = s.lookupDocument(p.TranscriptID); err != nil {
			return nil, err
		}

		var other []database.Document
		err = s.db.Table("documents").
			Select("documents.*").
			Joins("JOIN proceeding_other_documents ON proceeding_other_documents.document_id = documents.id").
			Where("proceeding_other_documents.proceeding_id = ?", p.ID).
			Order("documents.id").
			Scan(&other).Error
		if err != nil {
			return nil, err
		}
		for j := range other {
			doc.OtherDocuments = append(doc.OtherDocuments, *documentToDoc(&other[j]))
		}

		if doc.Plaintiffs, err = s.assembleProceedingPeople("proceeding_plaintiffs", p.ID); err != nil {
			return nil, err
		}
		if doc.PlaintiffAdvocates, err = s.assembleProceedingPeople("proceeding_plaintiff_advocates", p.ID); err != nil {
			return nil, err
		}
		if doc.Defendants, err = s.assembleProceedingPeople("proceeding_defendants", p.ID); err != nil {
			return nil, err
		}
		if doc.DefendantAdvocates, err = s.assembleProceedingPeople("proceeding_defendant_advocates", p.ID); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (s *CaseStore) assembleProceedingPeople(table string, proceedingID uint) ([]PersonDoc, error) {
	var rows []database.Person
	err := s.db.Table("people").
		Select("people.*").
		Joins("JOIN "+table+" ON "+table+".person_id = people.id").
		Where(table+".proceeding_id = ?", proceedingID).
		Order("people.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	docs := make([]PersonDoc, 0, len(rows))
	for i := range rows {
		docs = append(docs, *personToDoc(&rows[i]))
	}
	return docs, nil
}

// lookup helpers tolerate dangling ids: a missing referenced row reads back
// as an absent field rather than failing the whole assembly.

func (s *CaseStore) lookupPerson(id *uint) (*PersonDoc, error) {
	if id == nil {
		return nil, nil
	}
	var row database.Person
	if err := s.db.First(&row, *id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return personToDoc(&row), nil
}

func (s *CaseStore) lookupDocument(id *uint) (*DocumentDoc, error) {
	if id == nil {
		return nil, nil
	}
	var row database.Document
	if err := s.db.First(&row, *id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return documentToDoc(&row), nil
}

func (s *CaseStore) lookupAuthority(id *uint) (*AuthorityDoc, error) {
	if id == nil {
		return nil, nil
	}
	var row database.Authority
	if err := s.db.First(&row, *id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return authorityToDoc(&row), nil
}
