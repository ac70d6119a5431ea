package database

import (
	"time"
)

type Case struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	CaseName        string    `json:"case_name"`
	CaseType        string    `json:"case_type" gorm:"index"`
	CaseStatus      string    `json:"case_status" gorm:"index"`
	CaseDescription string    `json:"case_description" gorm:"type:text"`
	CaseDateFiled   Date      `json:"case_date_filed"`
	CaseDateClosed  *Date     `json:"case_date_closed"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type Incident struct {
	ID               uint     `json:"id" gorm:"primaryKey"`
	CaseID           uint     `json:"case_id" gorm:"index"`
	IncidentDateFrom Date     `json:"incident_date_from"`
	IncidentDateTo   Date     `json:"incident_date_to"`
	IncidentLocation string   `json:"incident_location"`
	IncidentStatus   string   `json:"incident_status"`
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
	IncidentReportID *uint    `json:"incident_report_id"`
}

// Person rows are shared across roles and cases; identity is the aadhaar
// number when one is present
type Person struct {
	ID            uint    `json:"id" gorm:"primaryKey"`
	PersonName    string  `json:"person_name"`
	AadhaarNumber *string `json:"aadhaar_number" gorm:"uniqueIndex"`
	PhoneNumber   *string `json:"phone_number"`
	PersonAddress string  `json:"person_address"`
	PersonGender  string  `json:"person_gender"`
	PersonDOB     Date    `json:"person_dob" gorm:"column:person_dob"`
}

type Document struct {
	ID                 uint   `json:"id" gorm:"primaryKey"`
	CaseID             uint   `json:"case_id" gorm:"index"`
	DocumentName       string `json:"document_name" gorm:"uniqueIndex:idx_documents_name_url"`
	DocumentType       string `json:"document_type"`
	DocumentDate       Date   `json:"document_date"`
	DocumentContentURL string `json:"document_content_url" gorm:"uniqueIndex:idx_documents_name_url"`
}

type Authority struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	GlobalID      string `json:"global_id" gorm:"uniqueIndex"`
	AuthorityName string `json:"authority_name"`
	AuthorityType string `json:"authority_type"`
}

type Evidence struct {
	ID                  uint   `json:"id" gorm:"primaryKey"`
	CaseID              uint   `json:"case_id" gorm:"index"`
	EvidenceName        string `json:"evidence_name"`
	EvidenceDescription string `json:"evidence_description" gorm:"type:text"`
	EvidenceDateFound   Date   `json:"evidence_date_found"`
	EvidenceLocation    string `json:"evidence_location"`
}

type Sentence struct {
	ID               uint   `json:"id" gorm:"primaryKey"`
	CaseID           uint   `json:"case_id" gorm:"index"`
	SentenceDate     Date   `json:"sentence_date"`
	SentenceType     string `json:"sentence_type"`
	SentenceDuration int    `json:"sentence_duration"`
}

type Proceeding struct {
	ID                uint    `json:"id" gorm:"primaryKey"`
	CaseID            uint    `json:"case_id" gorm:"index"`
	ProceedingType    string  `json:"proceeding_type"`
	ProceedingStatus  string  `json:"proceeding_status"`
	DateStarted       Date    `json:"date_started"`
	DateEnded         *Date   `json:"date_ended"`
	ProceedingNotes   *string `json:"proceeding_notes" gorm:"type:text"`
	PresidingOfficers string  `json:"presiding_officers"`
	CourtAuthorityID  *uint   `json:"court_authority_id"`
	JudgeID           *uint   `json:"judge_id"`
	TranscriptID      *uint   `json:"transcript_id"`
}

// Association rows. The linked Person/Document/Authority rows outlive these;
// removing an association never removes the entity it points at.

type IncidentVictim struct {
	ID         uint    `json:"id" gorm:"primaryKey"`
	IncidentID uint    `json:"incident_id" gorm:"index"`
	PersonID   uint    `json:"person_id"`
	Comments   *string `json:"comments"`
}

type IncidentWitness struct {
	ID         uint    `json:"id" gorm:"primaryKey"`
	IncidentID uint    `json:"incident_id" gorm:"index"`
	PersonID   uint    `json:"person_id"`
	Comments   *string `json:"comments"`
}

type SentencePerson struct {
	ID                   uint    `json:"id" gorm:"primaryKey"`
	SentenceID           uint    `json:"sentence_id" gorm:"index"`
	PersonID             uint    `json:"person_id"`
	ComplianceStatus     string  `json:"compliance_status"`
	ComplianceNotes      *string `json:"compliance_notes"`
	SupervisionLevel     string  `json:"supervision_level"`
	RehabilitationStatus string  `json:"rehabilitation_status"`
	AppealStatus         string  `json:"appeal_status"`
}

type InvestigatingAuthority struct {
	ID          uint  `json:"id" gorm:"primaryKey"`
	CaseID      uint  `json:"case_id" gorm:"index"`
	AuthorityID uint  `json:"authority_id"`
	DateFrom    Date  `json:"date_from"`
	DateTo      *Date `json:"date_to"`
}

type ProceedingPlaintiff struct {
	ID           uint `json:"id" gorm:"primaryKey"`
	ProceedingID uint `json:"proceeding_id" gorm:"index"`
	PersonID     uint `json:"person_id"`
}

type ProceedingDefendant struct {
	ID           uint `json:"id" gorm:"primaryKey"`
	ProceedingID uint `json:"proceeding_id" gorm:"index"`
	PersonID     uint `json:"person_id"`
}

type ProceedingPlaintiffAdvocate struct {
	ID           uint `json:"id" gorm:"primaryKey"`
	ProceedingID uint `json:"proceeding_id" gorm:"index"`
	PersonID     uint `json:"person_id"`
}

type ProceedingDefendantAdvocate struct {
	ID           uint `json:"id" gorm:"primaryKey"`
	ProceedingID uint `json:"proceeding_id" gorm:"index"`
	PersonID     uint `json:"person_id"`
}

type ProceedingOtherDocument struct {
	ID           uint `json:"id" gorm:"primaryKey"`
	ProceedingID uint `json:"proceeding_id" gorm:"index"`
	DocumentID   uint `json:"document_id"`
}

type AdminToken struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	Token      string     `json:"token" gorm:"uniqueIndex"`
	IsActive   bool       `json:"is_active"`
	LastUsedAt *time.Time `json:"last_used_at"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (Case) TableName() string {
	return "cases"
}

func (Incident) TableName() string {
	return "incidents"
}

func (Person) TableName() string {
	return "people"
}

func (Document) TableName() string {
	return "documents"
}

func (Authority) TableName() string {
	return "authorities"
}

func (Evidence) TableName() string {
	return "evidences"
}

func (Sentence) TableName() string {
	return "sentences"
}

func (Proceeding) TableName() string {
	return "proceedings"
}

func (IncidentVictim) TableName() string {
	return "incident_victims"
}

func (IncidentWitness) TableName() string {
	return "incident_witnesses"
}

func (SentencePerson) TableName() string {
	return "sentence_people"
}

func (InvestigatingAuthority) TableName() string {
	return "investigating_authorities"
}

func (ProceedingPlaintiff) TableName() string {
	return "proceeding_plaintiffs"
}

func (ProceedingDefendant) TableName() string {
	return "proceeding_defendants"
}

func (ProceedingPlaintiffAdvocate) TableName() string {
	return "proceeding_plaintiff_advocates"
}

func (ProceedingDefendantAdvocate) TableName() string {
	return "proceeding_defendant_advocates"
}

func (ProceedingOtherDocument) TableName() string {
	return "proceeding_other_documents"
}

func (AdminToken) TableName() string {
	return "admin_tokens"
}
