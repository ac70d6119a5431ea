package validation

// Closed value sets for every enumerated field. A value outside its set is a
// validation failure, never a storage failure.

var CaseStatuses = []string{"PENDING", "IN_PROGRESS", "COMPLETED", "CLOSED"}

var CaseTypes = []string{
	"CRIMINAL", "CIVIL", "FAMILY", "PROPERTY", "CYBERCRIME",
	"FINANCIAL_FRAUD", "MURDER", "ROBBERY", "ASSAULT",
	"DOMESTIC_VIOLENCE", "TRAFFIC_VIOLATION", "NARCOTICS",
	"CORRUPTION", "TERRORISM", "WHITE_COLLAR", "ENVIRONMENTAL",
	"INTELLECTUAL_PROPERTY", "LABOR_DISPUTE", "CONSTITUTIONAL",
	"PUBLIC_INTEREST",
}

var DocumentTypes = []string{"FIR", "ADJUNCTION", "SENTENCE", "OTHER"}

var PersonGenders = []string{"MALE", "FEMALE", "OTHER"}

var AuthorityTypes = []string{
	"POLICE", "HIGH COURT", "SUPREME COURT", "CBI",
	"NATIONAL CRIMINAL RECORD BUREAU", "NON GOVERNMENTAL ORGANIZATION",
	"DISTRICT COURT", "SPECIAL COURT",
}

var ProceedingTypes = []string{
	"INVESTIGATION", "PRELIMINARY_HEARING", "GRAND_JURY", "MEDIATION",
	"ARBITRATION", "SETTLEMENT_CONFERENCE", "TRIAL", "BENCH_TRIAL",
	"JURY_TRIAL", "HEARING", "MOTION_HEARING", "APPEAL",
	"SUPREME_COURT_REVIEW", "SENTENCING", "POST_CONVICTION_REVIEW",
	"PAROLE_HEARING", "PROBATION_HEARING", "INJUNCTION_HEARING",
}

var ProceedingStatuses = []string{"PENDING", "IN_PROGRESS", "COMPLETED", "CLOSED"}

var SentenceTypes = []string{
	"PRISON", "LIFE_IMPRISONMENT", "DEATH_PENALTY", "HOUSE_ARREST",
	"PROBATION", "PAROLE", "COMMUNITY_SERVICE", "FINE", "RESTITUTION",
	"SUSPENDED_SENTENCE", "DEFERRED_SENTENCE", "REHABILITATION",
	"BANISHMENT", "CORPORAL_PUNISHMENT", "MILITARY_SERVICE", "OTHER",
}

var ComplianceStatuses = []string{
	"PENDING", "IN_PROGRESS", "COMPLETED", "VIOLATED",
	"COMMUTED", "REVOKED", "EXPIRED",
}

var SupervisionLevels = []string{"NONE", "LOW", "MEDIUM", "HIGH", "MAXIMUM"}

var RehabilitationStatuses = []string{"NOT_STARTED", "IN_PROGRESS", "COMPLETED", "FAILED"}

var AppealStatuses = []string{"NONE", "FILED", "APPROVED", "DENIED", "UNDER_REVIEW"}

// enumTags maps each custom validate tag to its value set
var enumTags = map[string][]string{
	"case_status":           CaseStatuses,
	"case_type":             CaseTypes,
	"document_type":         DocumentTypes,
	"person_gender":         PersonGenders,
	"authority_type":        AuthorityTypes,
	"proceeding_type":       ProceedingTypes,
	"proceeding_status":     ProceedingStatuses,
	"sentence_type":         SentenceTypes,
	"compliance_status":     ComplianceStatuses,
	"supervision_level":     SupervisionLevels,
	"rehabilitation_status": RehabilitationStatuses,
	"appeal_status":         AppealStatuses,
}
