package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	apperrors "github.com/rafterlab/rafterplan/pkg/errors"
	"github.com/rafterlab/rafterplan/pkg/pipeline"
	"github.com/rafterlab/rafterplan/pkg/schema"
	"github.com/rafterlab/rafterplan/pkg/store"
)

const planBody = `{"site": {"name": "test-roof", "positions": [[0.0, 0.0], [45.05, 0.0]]}}`

func testServer() *Server {
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(nil, nil, logger)
	return NewServer(store.NewMemoryStore(), runner, logger)
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorDetail {
	t.Helper()
	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding error body %q: %v", rec.Body.String(), err)
	}
	return body.Error
}

func TestHealthz(t *testing.T) {
	rec := doRequest(t, testServer().Router(), http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body = %s, should report ok", rec.Body.String())
	}
}

func TestPlanCompute(t *testing.T) {
	router := testServer().Router()
	rec := doRequest(t, router, http.MethodPost, "/api/v1/plan", planBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("X-Plan-Cache"); got != "miss" {
		t.Errorf("X-Plan-Cache = %q, want miss (null cache)", got)
	}

	var doc schema.Document
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decoding document: %v", err)
	}
	if doc.Site != "test-roof" {
		t.Errorf("Site = %q, want test-roof", doc.Site)
	}
	if doc.MountCount() != 4 {
		t.Errorf("MountCount = %d, want 4", doc.MountCount())
	}
}

func TestPlanComputeRows(t *testing.T) {
	body := `{"site": {"name": "test-roof", "positions": [[0.0, 0.0], [45.05, 0.0]]}, "rows": true}`
	rec := doRequest(t, testServer().Router(), http.MethodPost, "/api/v1/plan", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}

	var doc schema.Document
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decoding document: %v", err)
	}
	if doc.Mode != schema.ModeRow {
		t.Errorf("Mode = %q, want row", doc.Mode)
	}
	if len(doc.Rows) != 1 {
		t.Errorf("Rows = %d, want 1", len(doc.Rows))
	}
}

func TestPlanComputeErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "malformed json",
			body:       `{nope`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_INPUT",
		},
		{
			name:       "missing site field",
			body:       `{"rows": true}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_INPUT",
		},
		{
			name:       "site without panels",
			body:       `{"site": {"name": "empty"}}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_SITE",
		},
		{
			name:       "site without name",
			body:       `{"site": {"positions": [[0.0, 0.0]]}}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_SITE",
		},
		{
			name:       "invalid config",
			body:       `{"site": {"name": "bad", "config": {"spacing": -16.0}, "positions": [[0.0, 0.0]]}}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_CONFIG",
		},
	}

	router := testServer().Router()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, router, http.MethodPost, "/api/v1/plan", tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if detail := decodeError(t, rec); detail.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", detail.Code, tt.wantCode)
			}
		})
	}
}

func TestPlanLifecycle(t *testing.T) {
	router := testServer().Router()

	// Create
	rec := doRequest(t, router, http.MethodPost, "/api/v1/plans", planBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201 (%s)", rec.Code, rec.Body.String())
	}
	var created store.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decoding record: %v", err)
	}
	if err := apperrors.ValidatePlanID(created.ID); err != nil {
		t.Errorf("record ID %q should be a plan id: %v", created.ID, err)
	}
	if created.Mounts != 4 || created.Panels != 2 {
		t.Errorf("counts = %d mounts / %d panels, want 4 / 2", created.Mounts, created.Panels)
	}
	if want := "/api/v1/plans/" + created.ID; rec.Header().Get("Location") != want {
		t.Errorf("Location = %q, want %q", rec.Header().Get("Location"), want)
	}

	// List omits documents
	rec = doRequest(t, router, http.MethodGet, "/api/v1/plans", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", rec.Code)
	}
	var listing struct {
		Plans []*store.Record `json:"plans"`
		Count int             `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &listing); err != nil {
		t.Fatalf("decoding listing: %v", err)
	}
	if listing.Count != 1 || len(listing.Plans) != 1 {
		t.Fatalf("listing count = %d (%d plans), want 1", listing.Count, len(listing.Plans))
	}
	if listing.Plans[0].Document != nil {
		t.Error("listing should omit documents")
	}

	// Fetch includes the document
	rec = doRequest(t, router, http.MethodGet, "/api/v1/plans/"+created.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d, want 200", rec.Code)
	}
	var fetched store.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("decoding record: %v", err)
	}
	if fetched.Document == nil {
		t.Fatal("fetched record should include the document")
	}
	if fetched.Document.MountCount() != 4 {
		t.Errorf("document mounts = %d, want 4", fetched.Document.MountCount())
	}

	// Delete, then the plan is gone
	rec = doRequest(t, router, http.MethodDelete, "/api/v1/plans/"+created.ID, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", rec.Code)
	}
	rec = doRequest(t, router, http.MethodGet, "/api/v1/plans/"+created.ID, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want 404", rec.Code)
	}
	if detail := decodeError(t, rec); detail.Code != "PLAN_NOT_FOUND" {
		t.Errorf("code = %q, want PLAN_NOT_FOUND", detail.Code)
	}
	rec = doRequest(t, router, http.MethodDelete, "/api/v1/plans/"+created.ID, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rec.Code)
	}
}

func TestPlanIDValidation(t *testing.T) {
	router := testServer().Router()
	for _, path := range []string{
		"/api/v1/plans/not-a-uuid",
		"/api/v1/plans/not-a-uuid/svg",
	} {
		rec := doRequest(t, router, http.MethodGet, path, "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("GET %s status = %d, want 400", path, rec.Code)
			continue
		}
		if detail := decodeError(t, rec); detail.Code != "INVALID_PLAN_ID" {
			t.Errorf("GET %s code = %q, want INVALID_PLAN_ID", path, detail.Code)
		}
	}
}

func TestPlanSVG(t *testing.T) {
	router := testServer().Router()

	rec := doRequest(t, router, http.MethodPost, "/api/v1/plans", planBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", rec.Code)
	}
	var created store.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}

	rec = doRequest(t, router, http.MethodGet, "/api/v1/plans/"+created.ID+"/svg", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("svg status = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q, want image/svg+xml", ct)
	}
	if !strings.HasPrefix(rec.Body.String(), "<svg") {
		t.Error("body should be an SVG document")
	}

	// Render options change the output
	plain := rec.Body.String()
	rec = doRequest(t, router, http.MethodGet, "/api/v1/plans/"+created.ID+"/svg?rafters=1&labels=1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("svg with options status = %d, want 200", rec.Code)
	}
	if rec.Body.String() == plain {
		t.Error("rafters and labels should change the rendering")
	}

	// Bad query parameters
	rec = doRequest(t, router, http.MethodGet, "/api/v1/plans/"+created.ID+"/svg?view=sideways", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad view status = %d, want 400", rec.Code)
	}
	rec = doRequest(t, router, http.MethodGet, "/api/v1/plans/"+created.ID+"/svg?scale=-2", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad scale status = %d, want 400", rec.Code)
	}
}

func TestPlanSVGNotFound(t *testing.T) {
	rec := doRequest(t, testServer().Router(), http.MethodGet,
		"/api/v1/plans/123e4567-e89b-12d3-a456-426614174000/svg", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestStatusForCode(t *testing.T) {
	tests := []struct {
		code apperrors.Code
		want int
	}{
		{apperrors.ErrCodeInvalidSite, http.StatusBadRequest},
		{apperrors.ErrCodeInvalidPlanID, http.StatusBadRequest},
		{apperrors.ErrCodeNoValidRafter, http.StatusUnprocessableEntity},
		{apperrors.ErrCodePlanNotFound, http.StatusNotFound},
		{apperrors.ErrCodeTimeout, http.StatusGatewayTimeout},
		{apperrors.ErrCodeStore, http.StatusInternalServerError},
		{apperrors.Code(""), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusForCode(tt.code); got != tt.want {
			t.Errorf("statusForCode(%q) = %d, want %d", tt.code, got, tt.want)
		}
	}
}
