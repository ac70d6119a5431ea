package api

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Lakshya5071/criminal-record-service/internal/auth"
	"github.com/Lakshya5071/criminal-record-service/internal/cache"
	"github.com/Lakshya5071/criminal-record-service/internal/casegraph"
	"github.com/Lakshya5071/criminal-record-service/internal/database"
	"github.com/Lakshya5071/criminal-record-service/internal/validation"
	"github.com/Lakshya5071/criminal-record-service/pkg/logger"
)

// Handlers holds all HTTP handlers
type Handlers struct {
	db       *gorm.DB
	store    *casegraph.CaseStore
	cache    cache.Cache
	verifier *auth.Verifier
	logger   *logger.Logger
}

// NewHandlers creates a new handlers instance
func NewHandlers(db *gorm.DB, store *casegraph.CaseStore, c cache.Cache, verifier *auth.Verifier, logger *logger.Logger) *Handlers {
	return &Handlers{
		db:       db,
		store:    store,
		cache:    c,
		verifier: verifier,
		logger:   logger,
	}
}

type caseSummary struct {
	ID              uint    `json:"id"`
	CaseName        string  `json:"case_name"`
	CaseType        string  `json:"case_type"`
	CaseStatus      string  `json:"case_status"`
	CaseDescription string  `json:"case_description"`
	CaseDateFiled   string  `json:"case_date_filed"`
	CaseDateClosed  *string `json:"case_date_closed"`
}

// searchCondition matches a case when the term appears in its own fields or
// anywhere in its graph: authority names, proceeding types, document and
// evidence names, incident locations, or the name of any linked person in
// any role.
func searchCondition() string {
	cond := `(cases.case_name LIKE @p OR cases.case_type LIKE @p OR cases.case_status LIKE @p
		OR cases.case_description LIKE @p
		OR EXISTS (SELECT 1 FROM investigating_authorities ia
			JOIN authorities a ON a.id = ia.authority_id
			WHERE ia.case_id = cases.id AND a.authority_name LIKE @p)
		OR EXISTS (SELECT 1 FROM proceedings pr
			WHERE pr.case_id = cases.id AND pr.proceeding_type LIKE @p)
		OR EXISTS (SELECT 1 FROM documents d
			WHERE d.case_id = cases.id AND d.document_name LIKE @p)
		OR EXISTS (SELECT 1 FROM evidences e
			WHERE e.case_id = cases.id
			AND (e.evidence_name LIKE @p OR e.evidence_description LIKE @p))
		OR EXISTS (SELECT 1 FROM incidents i
			WHERE i.case_id = cases.id AND i.incident_location LIKE @p)
		OR EXISTS (SELECT 1 FROM proceedings pr
			JOIN people pe ON pe.id = pr.judge_id
			WHERE pr.case_id = cases.id AND pe.person_name LIKE @p)
		OR EXISTS (SELECT 1 FROM sentences s
			JOIN sentence_people sp ON sp.sentence_id = s.id
			JOIN people pe ON pe.id = sp.person_id
			WHERE s.case_id = cases.id AND pe.person_name LIKE @p)`

	for _, table := range []string{"incident_victims", "incident_witnesses"} {
		cond += fmt.Sprintf(`
		OR EXISTS (SELECT 1 FROM incidents i
			JOIN %[1]s l ON l.incident_id = i.id
			JOIN people pe ON pe.id = l.person_id
			WHERE i.case_id = cases.id AND pe.person_name LIKE @p)`, table)
	}
	for _, table := range []string{
		"proceeding_plaintiffs", "proceeding_plaintiff_advocates",
		"proceeding_defendants", "proceeding_defendant_advocates",
	} {
		cond += fmt.Sprintf(`
		OR EXISTS (SELECT 1 FROM proceedings pr
			JOIN %[1]s l ON l.proceeding_id = pr.id
			JOIN people pe ON pe.id = l.person_id
			WHERE pr.case_id = cases.id AND pe.person_name LIKE @p)`, table)
	}
	return cond + ")"
}

// ListCases returns case summaries, optionally narrowed by type, status,
// filing date range and a free-text search across the case graph.
func (h *Handlers) ListCases(c *gin.Context) {
	q := h.db.Model(&database.Case{})

	if caseType := c.Query("type"); caseType != "" {
		q = q.Where("case_type = ?", caseType)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("case_status = ?", status)
	}
	if after := c.Query("date_after"); after != "" {
		d, err := database.ParseDate(after)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date_after must be YYYY-MM-DD"})
			return
		}
		q = q.Where("case_date_filed >= ?", d)
	}
	if before := c.Query("date_before"); before != "" {
		d, err := database.ParseDate(before)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date_before must be YYYY-MM-DD"})
			return
		}
		q = q.Where("case_date_filed <= ?", d)
	}
	if search := c.Query("search"); search != "" {
		q = q.Where(searchCondition(), sql.Named("p", "%"+search+"%"))
	}

	var rows []database.Case
	if err := q.Order("case_date_filed DESC, id DESC").Find(&rows).Error; err != nil {
		h.logger.Error("failed to list cases", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	summaries := make([]caseSummary, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		var closed *string
		if row.CaseDateClosed != nil {
			s := row.CaseDateClosed.String()
			closed = &s
		}
		summaries = append(summaries, caseSummary{
			ID:              row.ID,
			CaseName:        row.CaseName,
			CaseType:        row.CaseType,
			CaseStatus:      row.CaseStatus,
			CaseDescription: row.CaseDescription,
			CaseDateFiled:   row.CaseDateFiled.String(),
			CaseDateClosed:  closed,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"cases": summaries,
		"count": len(summaries),
	})
}

// GetCase returns the full nested document for one case, served from the
// cache when a fresh copy is present.
func (h *Handlers) GetCase(c *gin.Context) {
	caseID, ok := parseID(c)
	if !ok {
		return
	}

	key := cache.CaseKey(caseID)
	if doc, found := h.cache.Get(key); found {
		h.logger.Debug("cache hit", "key", key)
		c.JSON(http.StatusOK, doc)
		return
	}

	doc, err := h.store.Get(caseID)
	if err != nil {
		if errors.Is(err, casegraph.ErrCaseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "case not found"})
			return
		}
		h.logger.Error("failed to assemble case", "case_id", caseID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if err := h.cache.Set(key, doc); err != nil {
		h.logger.Warn("failed to cache case", "key", key, "error", err)
	}
	c.JSON(http.StatusOK, doc)
}

type personSummary struct {
	ID            uint     `json:"id"`
	PersonName    string   `json:"person_name"`
	AadhaarNumber *string  `json:"aadhaar_number"`
	PhoneNumber   *string  `json:"phone_number"`
	PersonAddress string   `json:"person_address"`
	PersonGender  string   `json:"person_gender"`
	PersonDOB     string   `json:"person_dob"`
	Roles         []string `json:"roles"`
}

// role source tables keyed by the role name they confer
var personRoleTables = []struct {
	role   string
	table  string
	column string
}{
	{"VICTIM", "incident_victims", "person_id"},
	{"WITNESS", "incident_witnesses", "person_id"},
	{"SENTENCED", "sentence_people", "person_id"},
	{"JUDGE", "proceedings", "judge_id"},
	{"PLAINTIFF", "proceeding_plaintiffs", "person_id"},
	{"PLAINTIFF_ADVOCATE", "proceeding_plaintiff_advocates", "person_id"},
	{"DEFENDANT", "proceeding_defendants", "person_id"},
	{"DEFENDANT_ADVOCATE", "proceeding_defendant_advocates", "person_id"},
}

// ListPersons returns all people with the set of roles they hold anywhere in
// the record, optionally filtered by a name search.
func (h *Handlers) ListPersons(c *gin.Context) {
	q := h.db.Model(&database.Person{})
	if search := c.Query("search"); search != "" {
		q = q.Where("person_name LIKE ?", "%"+search+"%")
	}

	var people []database.Person
	if err := q.Order("person_name, id").Find(&people).Error; err != nil {
		h.logger.Error("failed to list persons", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	roles, err := h.personRoles()
	if err != nil {
		h.logger.Error("failed to aggregate person roles", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	summaries := make([]personSummary, 0, len(people))
	for i := range people {
		p := &people[i]
		personRoles := roles[p.ID]
		if personRoles == nil {
			personRoles = []string{}
		}
		summaries = append(summaries, personSummary{
			ID:            p.ID,
			PersonName:    p.PersonName,
			AadhaarNumber: p.AadhaarNumber,
			PhoneNumber:   p.PhoneNumber,
			PersonAddress: p.PersonAddress,
			PersonGender:  p.PersonGender,
			PersonDOB:     p.PersonDOB.String(),
			Roles:         personRoles,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"persons": summaries,
		"count":   len(summaries),
	})
}

func (h *Handlers) personRoles() (map[uint][]string, error) {
	seen := make(map[uint]map[string]bool)
	for _, src := range personRoleTables {
		var ids []uint
		err := h.db.Table(src.table).
			Where(src.column + " IS NOT NULL").
			Distinct(src.column).
			Pluck(src.column, &ids).Error
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			if seen[id] == nil {
				seen[id] = make(map[string]bool)
			}
			seen[id][src.role] = true
		}
	}

	roles := make(map[uint][]string, len(seen))
	for id, set := range seen {
		list := make([]string, 0, len(set))
		for role := range set {
			list = append(list, role)
		}
		sort.Strings(list)
		roles[id] = list
	}
	return roles, nil
}

// caseActivity is a case's most recent event across proceedings, evidence
// and incidents, with a human-readable line describing it.
type caseActivity struct {
	CaseID       uint   `json:"case_id"`
	CaseName     string `json:"case_name"`
	RelevantDate string `json:"relevant_date"`
	News         string `json:"news"`
}

// latestActivity finds the newest dated event in the case's graph. A tie goes
// to a proceeding over evidence over an incident.
func (h *Handlers) latestActivity(caseID uint) (database.Date, string, bool, error) {
	var zero database.Date

	var proceedings []database.Proceeding
	if err := h.db.Where("case_id = ?", caseID).
		Order("date_started DESC").Limit(1).Find(&proceedings).Error; err != nil {
		return zero, "", false, err
	}
	var evidences []database.Evidence
	if err := h.db.Where("case_id = ?", caseID).
		Order("evidence_date_found DESC").Limit(1).Find(&evidences).Error; err != nil {
		return zero, "", false, err
	}
	var incidents []database.Incident
	if err := h.db.Where("case_id = ?", caseID).
		Order("incident_date_from DESC").Limit(1).Find(&incidents).Error; err != nil {
		return zero, "", false, err
	}

	var best database.Date
	var news string
	found := false

	if len(incidents) > 0 {
		best = incidents[0].IncidentDateFrom
		news = "New incident reported at " + incidents[0].IncidentLocation
		found = true
	}
	if len(evidences) > 0 && (!found || !evidences[0].EvidenceDateFound.Before(best.Time)) {
		best = evidences[0].EvidenceDateFound
		news = fmt.Sprintf("New evidence %q discovered at %s",
			evidences[0].EvidenceName, evidences[0].EvidenceLocation)
		found = true
	}
	if len(proceedings) > 0 && (!found || !proceedings[0].DateStarted.Before(best.Time)) {
		best = proceedings[0].DateStarted
		news = "New proceeding of type " + proceedings[0].ProceedingType + " started"
		found = true
	}
	return best, news, found, nil
}

// TrendingCases reports the three cases with the most recent activity and a
// line describing what happened.
func (h *Handlers) TrendingCases(c *gin.Context) {
	var cases []database.Case
	if err := h.db.Find(&cases).Error; err != nil {
		h.logger.Error("failed to load cases for trending", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	type ranked struct {
		activity caseActivity
		date     database.Date
	}
	var all []ranked
	for i := range cases {
		date, news, found, err := h.latestActivity(cases[i].ID)
		if err != nil {
			h.logger.Error("failed to compute case activity", "case_id", cases[i].ID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		if !found {
			continue
		}
		all = append(all, ranked{
			activity: caseActivity{
				CaseID:       cases[i].ID,
				CaseName:     cases[i].CaseName,
				RelevantDate: date.String(),
				News:         news,
			},
			date: date,
		})
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].date.After(all[j].date.Time)
	})
	if len(all) > 3 {
		all = all[:3]
	}

	trending := make([]caseActivity, 0, len(all))
	for _, r := range all {
		trending = append(trending, r.activity)
	}
	c.JSON(http.StatusOK, gin.H{"trending_cases": trending})
}

type locatedCase struct {
	CaseID             uint     `json:"case_id"`
	CaseName           string   `json:"case_name"`
	CaseType           string   `json:"case_type"`
	IncidentLocation   string   `json:"incident_location"`
	Latitude           *float64 `json:"latitude"`
	Longitude          *float64 `json:"longitude"`
	LatestActivityDate string   `json:"latest_activity_date"`
}

// CaseLocations returns up to twenty recently active cases positioned at
// their latest located incident.
func (h *Handlers) CaseLocations(c *gin.Context) {
	var cases []database.Case
	if err := h.db.Find(&cases).Error; err != nil {
		h.logger.Error("failed to load cases for locations", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	type ranked struct {
		located locatedCase
		date    database.Date
	}
	var all []ranked
	for i := range cases {
		var incidents []database.Incident
		err := h.db.Where("case_id = ? AND latitude IS NOT NULL", cases[i].ID).
			Order("incident_date_from DESC").Limit(1).Find(&incidents).Error
		if err != nil {
			h.logger.Error("failed to load incidents", "case_id", cases[i].ID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		if len(incidents) == 0 {
			continue
		}

		date, _, found, err := h.latestActivity(cases[i].ID)
		if err != nil {
			h.logger.Error("failed to compute case activity", "case_id", cases[i].ID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		if !found {
			date = incidents[0].IncidentDateFrom
		}

		all = append(all, ranked{
			located: locatedCase{
				CaseID:             cases[i].ID,
				CaseName:           cases[i].CaseName,
				CaseType:           cases[i].CaseType,
				IncidentLocation:   incidents[0].IncidentLocation,
				Latitude:           incidents[0].Latitude,
				Longitude:          incidents[0].Longitude,
				LatestActivityDate: date.String(),
			},
			date: date,
		})
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].date.After(all[j].date.Time)
	})
	if len(all) > 20 {
		all = all[:20]
	}

	located := make([]locatedCase, 0, len(all))
	for _, r := range all {
		located = append(located, r.located)
	}
	c.JSON(http.StatusOK, gin.H{"location_cases": located})
}

type caseRef struct {
	CaseID    uint   `json:"case_id"`
	DateFiled string `json:"date_filed"`
}

type caseTypeBucket struct {
	CaseType string    `json:"case_type"`
	Cases    []caseRef `json:"cases"`
}

// CaseTypeStatistics groups cases under every known case type, including
// types with no cases yet.
func (h *Handlers) CaseTypeStatistics(c *gin.Context) {
	var cases []database.Case
	if err := h.db.Order("case_date_filed").Find(&cases).Error; err != nil {
		h.logger.Error("failed to load cases for type statistics", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	byType := make(map[string][]caseRef)
	for i := range cases {
		byType[cases[i].CaseType] = append(byType[cases[i].CaseType], caseRef{
			CaseID:    cases[i].ID,
			DateFiled: cases[i].CaseDateFiled.String(),
		})
	}

	buckets := make([]caseTypeBucket, 0, len(validation.CaseTypes))
	for _, caseType := range validation.CaseTypes {
		refs := byType[caseType]
		if refs == nil {
			refs = []caseRef{}
		}
		buckets = append(buckets, caseTypeBucket{CaseType: caseType, Cases: refs})
	}

	c.JSON(http.StatusOK, gin.H{"type_statistics": buckets})
}

// HealthCheck reports service and database health.
func (h *Handlers) HealthCheck(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// CacheStats returns cache hit/miss counters
func (h *Handlers) CacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.cache.Stats())
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid case id"})
		return 0, false
	}
	return uint(id), true
}
