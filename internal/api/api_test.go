package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Lakshya5071/criminal-record-service/internal/auth"
	"github.com/Lakshya5071/criminal-record-service/internal/cache"
	"github.com/Lakshya5071/criminal-record-service/internal/casegraph"
	"github.com/Lakshya5071/criminal-record-service/internal/database"
	"github.com/Lakshya5071/criminal-record-service/pkg/logger"
)

func testRouter(t *testing.T) (*gin.Engine, *gorm.DB, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := database.Initialize("sqlite", dsn)
	if err != nil {
		t.Fatalf("failed to initialize test database: %v", err)
	}

	log, err := logger.NewLogger("error", "text")
	if err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	store := casegraph.NewCaseStore(db, log)
	verifier := auth.NewVerifier(db, log)
	cacheService := cache.NewCache(100, time.Minute)

	router := gin.New()
	SetupRoutes(router, db, store, cacheService, verifier, log)

	token, err := verifier.Issue()
	if err != nil {
		t.Fatalf("failed to issue admin token: %v", err)
	}
	return router, db, token
}

func do(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func caseBody() *casegraph.CaseDocument {
	lat, lon := 19.076, 72.877
	aadhaar := "1111-2222-3333"
	return &casegraph.CaseDocument{
		CaseName:        "State vs. Mehta",
		CaseStatus:      "IN_PROGRESS",
		CaseType:        "FINANCIAL_FRAUD",
		CaseDescription: "Investment fraud across three states",
		CaseDateFiled:   "2023-01-15",
		Incidents: []casegraph.IncidentDoc{{
			IncidentDateFrom: "2022-11-01",
			IncidentDateTo:   "2022-12-20",
			IncidentLocation: "Mumbai",
			IncidentStatus:   "REPORTED",
			Latitude:         &lat,
			Longitude:        &lon,
			Victims: []casegraph.IncidentPersonDoc{{
				Person: &casegraph.PersonDoc{
					PersonName:    "Asha Rao",
					AadhaarNumber: &aadhaar,
					PersonAddress: "12 MG Road, Mumbai",
					PersonGender:  "FEMALE",
					PersonDOB:     "1988-03-02",
				},
			}},
		}},
		Proceedings: []casegraph.ProceedingDoc{{
			ProceedingType:    "TRIAL",
			ProceedingStatus:  "IN_PROGRESS",
			DateStarted:       "2023-03-01",
			PresidingOfficers: "Justice D. Kulkarni",
			Plaintiffs: []casegraph.PersonDoc{{
				PersonName:    "Asha Rao",
				AadhaarNumber: &aadhaar,
				PersonAddress: "12 MG Road, Mumbai",
				PersonGender:  "FEMALE",
				PersonDOB:     "1988-03-02",
			}},
		}},
	}
}

func createCase(t *testing.T, router *gin.Engine, token string, doc *casegraph.CaseDocument) uint {
	t.Helper()
	w := do(t, router, http.MethodPost, "/admin/cases?admin_token="+token, doc)
	if w.Code != http.StatusCreated {
		t.Fatalf("create returned %d: %s", w.Code, w.Body.String())
	}
	id, ok := decode(t, w)["case_id"].(float64)
	if !ok || id == 0 {
		t.Fatalf("create response missing case_id: %s", w.Body.String())
	}
	return uint(id)
}

func TestAdminTokenGate(t *testing.T) {
	router, _, token := testRouter(t)

	if w := do(t, router, http.MethodPost, "/admin/cases", caseBody()); w.Code != http.StatusUnauthorized {
		t.Errorf("missing token: expected 401, got %d", w.Code)
	}
	if w := do(t, router, http.MethodPost, "/admin/cases?admin_token=bogus", caseBody()); w.Code != http.StatusForbidden {
		t.Errorf("bad token: expected 403, got %d", w.Code)
	}
	if w := do(t, router, http.MethodPost, "/admin/cases?admin_token="+token, caseBody()); w.Code != http.StatusCreated {
		t.Errorf("good token: expected 201, got %d: %s", w.Code, w.Body.String())
	}
}

func TestVerifyToken(t *testing.T) {
	router, _, token := testRouter(t)

	if w := do(t, router, http.MethodGet, "/admin/verify-token", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("missing token: expected 401, got %d", w.Code)
	}
	if w := do(t, router, http.MethodGet, "/admin/verify-token?admin_token=bogus", nil); w.Code != http.StatusForbidden {
		t.Errorf("bad token: expected 403, got %d", w.Code)
	}

	w := do(t, router, http.MethodGet, "/admin/verify-token?admin_token="+token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("good token: expected 200, got %d", w.Code)
	}
	if valid, _ := decode(t, w)["valid"].(bool); !valid {
		t.Error("expected valid=true")
	}
}

func TestInactiveTokenRejected(t *testing.T) {
	router, db, token := testRouter(t)

	if err := db.Model(&database.AdminToken{}).Where("token = ?", token).
		Update("is_active", false).Error; err != nil {
		t.Fatal(err)
	}

	if w := do(t, router, http.MethodPost, "/admin/cases?admin_token="+token, caseBody()); w.Code != http.StatusForbidden {
		t.Errorf("inactive token: expected 403, got %d", w.Code)
	}
}

func TestCaseLifecycle(t *testing.T) {
	router, _, token := testRouter(t)

	caseID := createCase(t, router, token, caseBody())
	path := fmt.Sprintf("/cases/%d", caseID)

	w := do(t, router, http.MethodGet, path, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get returned %d", w.Code)
	}
	if got := decode(t, w); got["case_name"] != "State vs. Mehta" {
		t.Errorf("unexpected case: %v", got["case_name"])
	}

	// read again to warm the cache, then update and confirm the stale copy
	// is not served
	do(t, router, http.MethodGet, path, nil)

	update := caseBody()
	update.CaseStatus = "CLOSED"
	w = do(t, router, http.MethodPut, fmt.Sprintf("/admin/cases/%d?admin_token=%s", caseID, token), update)
	if w.Code != http.StatusOK {
		t.Fatalf("update returned %d: %s", w.Code, w.Body.String())
	}

	w = do(t, router, http.MethodGet, path, nil)
	if got := decode(t, w); got["case_status"] != "CLOSED" {
		t.Errorf("update not visible on read: %v", got["case_status"])
	}

	w = do(t, router, http.MethodDelete, fmt.Sprintf("/admin/cases/%d?admin_token=%s", caseID, token), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete returned %d", w.Code)
	}

	if w := do(t, router, http.MethodGet, path, nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", w.Code)
	}
}

func TestCreateValidationFailure(t *testing.T) {
	router, _, token := testRouter(t)

	doc := caseBody()
	doc.CaseStatus = "OPEN"
	doc.CaseDateFiled = "yesterday"

	w := do(t, router, http.MethodPost, "/admin/cases?admin_token="+token, doc)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	got := decode(t, w)
	errs, ok := got["errors"].([]interface{})
	if !ok || len(errs) != 2 {
		t.Errorf("expected 2 field errors, got %v", got)
	}
}

func TestUpdateMissingCase(t *testing.T) {
	router, _, token := testRouter(t)

	w := do(t, router, http.MethodPut, "/admin/cases/424242?admin_token="+token, caseBody())
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestListCasesFilters(t *testing.T) {
	router, _, token := testRouter(t)

	createCase(t, router, token, caseBody())

	other := caseBody()
	other.CaseName = "State vs. Kapoor"
	other.CaseType = "NARCOTICS"
	other.CaseStatus = "PENDING"
	other.CaseDateFiled = "2024-05-01"
	createCase(t, router, token, other)

	w := do(t, router, http.MethodGet, "/cases", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list returned %d", w.Code)
	}
	if got := decode(t, w); got["count"].(float64) != 2 {
		t.Errorf("expected 2 cases, got %v", got["count"])
	}

	w = do(t, router, http.MethodGet, "/cases?type=NARCOTICS", nil)
	if got := decode(t, w); got["count"].(float64) != 1 {
		t.Errorf("type filter: expected 1 case, got %v", got["count"])
	}

	w = do(t, router, http.MethodGet, "/cases?status=PENDING", nil)
	if got := decode(t, w); got["count"].(float64) != 1 {
		t.Errorf("status filter: expected 1 case, got %v", got["count"])
	}

	w = do(t, router, http.MethodGet, "/cases?date_after=2024-01-01", nil)
	if got := decode(t, w); got["count"].(float64) != 1 {
		t.Errorf("date filter: expected 1 case, got %v", got["count"])
	}

	w = do(t, router, http.MethodGet, "/cases?search=Kapoor", nil)
	if got := decode(t, w); got["count"].(float64) != 1 {
		t.Errorf("search filter: expected 1 case, got %v", got["count"])
	}

	// search reaches through the graph: both cases link the same victim
	w = do(t, router, http.MethodGet, "/cases?search=Asha+Rao", nil)
	if got := decode(t, w); got["count"].(float64) != 2 {
		t.Errorf("person search: expected 2 cases, got %v", got["count"])
	}

	if w := do(t, router, http.MethodGet, "/cases?date_after=nonsense", nil); w.Code != http.StatusBadRequest {
		t.Errorf("bad date filter: expected 400, got %d", w.Code)
	}
}

func TestListPersonsAggregatesRoles(t *testing.T) {
	router, _, token := testRouter(t)

	createCase(t, router, token, caseBody())

	w := do(t, router, http.MethodGet, "/persons", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list returned %d", w.Code)
	}

	var resp struct {
		Persons []struct {
			PersonName string   `json:"person_name"`
			Roles      []string `json:"roles"`
		} `json:"persons"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(resp.Persons) != 1 {
		t.Fatalf("expected 1 person, got %d", len(resp.Persons))
	}

	// Asha is both a victim and a plaintiff and the roles come back sorted
	roles := resp.Persons[0].Roles
	if len(roles) != 2 || roles[0] != "PLAINTIFF" || roles[1] != "VICTIM" {
		t.Errorf("unexpected roles: %v", roles)
	}
}

func TestAnalyticsEndpoints(t *testing.T) {
	router, _, token := testRouter(t)

	caseID := createCase(t, router, token, caseBody())

	// types: one bucket per known case type, ours holding the created case
	w := do(t, router, http.MethodGet, "/analytics/types", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("types returned %d", w.Code)
	}
	var typesResp struct {
		TypeStatistics []struct {
			CaseType string `json:"case_type"`
			Cases    []struct {
				CaseID    uint   `json:"case_id"`
				DateFiled string `json:"date_filed"`
			} `json:"cases"`
		} `json:"type_statistics"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &typesResp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(typesResp.TypeStatistics) != 20 {
		t.Fatalf("expected all 20 case type buckets, got %d", len(typesResp.TypeStatistics))
	}
	for _, bucket := range typesResp.TypeStatistics {
		want := 0
		if bucket.CaseType == "FINANCIAL_FRAUD" {
			want = 1
		}
		if len(bucket.Cases) != want {
			t.Errorf("bucket %s: expected %d cases, got %d", bucket.CaseType, want, len(bucket.Cases))
		}
	}

	// location: the case appears at its located incident
	w = do(t, router, http.MethodGet, "/analytics/location", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("location returned %d", w.Code)
	}
	var locResp struct {
		LocationCases []struct {
			CaseID           uint   `json:"case_id"`
			IncidentLocation string `json:"incident_location"`
		} `json:"location_cases"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &locResp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(locResp.LocationCases) != 1 || locResp.LocationCases[0].IncidentLocation != "Mumbai" {
		t.Errorf("unexpected location cases: %+v", locResp.LocationCases)
	}

	// trending: the proceeding is the newest event and wins the news line
	w = do(t, router, http.MethodGet, "/analytics/trending", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("trending returned %d", w.Code)
	}
	var trendResp struct {
		TrendingCases []struct {
			CaseID       uint   `json:"case_id"`
			RelevantDate string `json:"relevant_date"`
			News         string `json:"news"`
		} `json:"trending_cases"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &trendResp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(trendResp.TrendingCases) != 1 {
		t.Fatalf("expected 1 trending case, got %d", len(trendResp.TrendingCases))
	}
	got := trendResp.TrendingCases[0]
	if got.CaseID != caseID || got.RelevantDate != "2023-03-01" {
		t.Errorf("unexpected trending entry: %+v", got)
	}
	if got.News != "New proceeding of type TRIAL started" {
		t.Errorf("unexpected news line: %q", got.News)
	}
}

func TestHealthAndCacheStats(t *testing.T) {
	router, _, _ := testRouter(t)

	w := do(t, router, http.MethodGet, "/api/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("health returned %d", w.Code)
	}
	if got := decode(t, w); got["status"] != "healthy" {
		t.Errorf("unexpected health payload: %v", got)
	}

	if w := do(t, router, http.MethodGet, "/api/cache/stats", nil); w.Code != http.StatusOK {
		t.Errorf("cache stats returned %d", w.Code)
	}
}
