package casegraph

// The nested case document exchanged at the API boundary. Inbound documents
// may carry row ids on items the client wants updated in place; ids are
// always present on outbound documents. Decoding into these types drops
// unknown JSON fields.

type CaseDocument struct {
	ID              uint    `json:"id,omitempty"`
	CaseName        string  `json:"case_name" validate:"required"`
	CaseStatus      string  `json:"case_status" validate:"required,case_status"`
	CaseType        string  `json:"case_type" validate:"required,case_type"`
	CaseDescription string  `json:"case_description" validate:"required"`
	CaseDateFiled   string  `json:"case_date_filed" validate:"required,datetime=2006-01-02"`
	CaseDateClosed  *string `json:"case_date_closed" validate:"omitempty,datetime=2006-01-02"`

	Incidents                []IncidentDoc      `json:"incidents,omitempty" validate:"dive"`
	Evidences                []EvidenceDoc      `json:"evidences,omitempty" validate:"dive"`
	Sentences                []SentenceDoc      `json:"sentences,omitempty" validate:"dive"`
	InvestigatingAuthorities []AuthorityLinkDoc `json:"investigating_authorities,omitempty" validate:"dive"`
	Proceedings              []ProceedingDoc    `json:"proceedings,omitempty" validate:"dive"`
}

type IncidentDoc struct {
	ID               uint         `json:"id,omitempty"`
	IncidentDateFrom string       `json:"incident_date_from" validate:"required,datetime=2006-01-02"`
	IncidentDateTo   string       `json:"incident_date_to" validate:"required,datetime=2006-01-02"`
	IncidentLocation string       `json:"incident_location" validate:"required"`
	IncidentStatus   string       `json:"incident_status" validate:"required"`
	Latitude         *float64     `json:"latitude" validate:"required"`
	Longitude        *float64     `json:"longitude" validate:"required"`
	Victims          []IncidentPersonDoc `json:"victims,omitempty" validate:"dive"`
	Witnesses        []IncidentPersonDoc `json:"witnesses,omitempty" validate:"dive"`
	Report           *DocumentDoc        `json:"report,omitempty"`
}

// IncidentPersonDoc is the shared shape of victim and witness entries: an
// embedded person plus free-form comments on the association
type IncidentPersonDoc struct {
	Person   *PersonDoc `json:"person" validate:"required"`
	Comments *string    `json:"comments,omitempty"`
}

type PersonDoc struct {
	ID            uint    `json:"id,omitempty"`
	PersonName    string  `json:"person_name" validate:"required"`
	AadhaarNumber *string `json:"aadhaar_number,omitempty" validate:"omitempty,aadhaar"`
	PhoneNumber   *string `json:"phone_number,omitempty"`
	PersonAddress string  `json:"person_address" validate:"required"`
	PersonGender  string  `json:"person_gender" validate:"required,person_gender"`
	PersonDOB     string  `json:"person_dob" validate:"required,datetime=2006-01-02"`
}

type DocumentDoc struct {
	ID                 uint   `json:"id,omitempty"`
	DocumentName       string `json:"document_name" validate:"required"`
	DocumentType       string `json:"document_type" validate:"required,document_type"`
	DocumentDate       string `json:"document_date" validate:"required,datetime=2006-01-02"`
	DocumentContentURL string `json:"document_content_url" validate:"required,url"`
}

type AuthorityDoc struct {
	ID            uint   `json:"id,omitempty"`
	GlobalID      string `json:"global_id" validate:"required"`
	AuthorityName string `json:"authority_name" validate:"required"`
	AuthorityType string `json:"authority_type" validate:"required,authority_type"`
}

type EvidenceDoc struct {
	ID                  uint   `json:"id,omitempty"`
	EvidenceName        string `json:"evidence_name" validate:"required"`
	EvidenceDescription string `json:"evidence_description" validate:"required"`
	EvidenceDateFound   string `json:"evidence_date_found" validate:"required,datetime=2006-01-02"`
	EvidenceLocation    string `json:"evidence_location" validate:"required"`
}

type SentenceDoc struct {
	ID               uint                `json:"id,omitempty"`
	SentenceDate     string              `json:"sentence_date" validate:"required,datetime=2006-01-02"`
	SentenceType     string              `json:"sentence_type" validate:"required,sentence_type"`
	SentenceDuration *int                `json:"sentence_duration" validate:"required,gte=0"`
	SentencedPeople  []SentencedPersonDoc `json:"sentenced_people,omitempty" validate:"dive"`
}

type SentencedPersonDoc struct {
	Person               *PersonDoc `json:"person" validate:"required"`
	ComplianceStatus     string     `json:"compliance_status" validate:"required,compliance_status"`
	ComplianceNotes      *string    `json:"compliance_notes,omitempty"`
	SupervisionLevel     string     `json:"supervision_level" validate:"required,supervision_level"`
	RehabilitationStatus string     `json:"rehabilitation_status" validate:"required,rehabilitation_status"`
	AppealStatus         string     `json:"appeal_status" validate:"required,appeal_status"`
}

type AuthorityLinkDoc struct {
	Authority *AuthorityDoc `json:"authority" validate:"required"`
	DateFrom  string        `json:"date_from" validate:"required,datetime=2006-01-02"`
	DateTo    *string       `json:"date_to,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type ProceedingDoc struct {
	ID                 uint          `json:"id,omitempty"`
	ProceedingType     string        `json:"proceeding_type" validate:"required,proceeding_type"`
	ProceedingStatus   string        `json:"proceeding_status" validate:"required,proceeding_status"`
	DateStarted        string        `json:"date_started" validate:"required,datetime=2006-01-02"`
	DateEnded          *string       `json:"date_ended,omitempty" validate:"omitempty,datetime=2006-01-02"`
	CourtAuthority     *AuthorityDoc `json:"court_authority,omitempty"`
	PresidingOfficers  string        `json:"presiding_officers" validate:"required"`
	ProceedingNotes    *string       `json:"proceeding_notes,omitempty"`
	Judge              *PersonDoc    `json:"judge,omitempty"`
	Transcript         *DocumentDoc  `json:"transcript,omitempty"`
	OtherDocuments     []DocumentDoc `json:"other_documents,omitempty" validate:"dive"`
	Plaintiffs         []PersonDoc   `json:"plaintiffs,omitempty" validate:"dive"`
	PlaintiffAdvocates []PersonDoc   `json:"plaintiff_advocates,omitempty" validate:"dive"`
	Defendants         []PersonDoc   `json:"defendants,omitempty" validate:"dive"`
	DefendantAdvocates []PersonDoc   `json:"defendant_advocates,omitempty" validate:"dive"`
}
