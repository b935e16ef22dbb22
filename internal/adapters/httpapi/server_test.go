package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"archcore/internal/core"
	"archcore/internal/infra/persistence/memory"
	"archcore/pkg/domain"
)

func newTestServer(t *testing.T) (*core.Store, http.Handler) {
	t.Helper()
	store := core.NewStore()
	store.Replace(domain.EmptyDataset())
	gateway := core.NewGateway(store, memory.NewStore(), nil, nil, core.GatewayOptions{
		CacheDebounce:  time.Millisecond,
		RemoteDebounce: time.Millisecond,
	})
	t.Cleanup(func() { _ = gateway.Close() })
	gateway.Start()
	srv := New(store, gateway, nil, nil)
	return store, srv.Routes()
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %s: %v", rec.Body.String(), err)
	}
	return out
}

func TestHealthz(t *testing.T) {
	_, h := newTestServer(t)
	rec := doJSON(t, h, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestApplicationCRUD(t *testing.T) {
	_, h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/applications/", domain.Application{Name: "CRM"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	created := decodeBody[domain.Application](t, rec)
	if created.ID != "APP-001" {
		t.Fatalf("expected APP-001, got %s", created.ID)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/applications/APP-001", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", rec.Code)
	}

	// Updates merge over the existing record: untouched fields survive.
	rec = doJSON(t, h, http.MethodPut, "/api/applications/APP-001", map[string]any{"criticality": "high"})
	if rec.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	updated := decodeBody[domain.Application](t, rec)
	if updated.Name != "CRM" || updated.Criticality != "high" {
		t.Fatalf("patch should merge, got %+v", updated)
	}

	rec = doJSON(t, h, http.MethodDelete, "/api/applications/APP-001", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", rec.Code)
	}
	rec = doJSON(t, h, http.MethodGet, "/api/applications/APP-001", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestUpdateUnknownReturns404(t *testing.T) {
	_, h := newTestServer(t)
	rec := doJSON(t, h, http.MethodPut, "/api/applications/APP-404", map[string]any{"name": "x"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCreateRejectsBadJSON(t *testing.T) {
	_, h := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/applications/", strings.NewReader("{broken"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestDomainIDMustBeNumeric(t *testing.T) {
	_, h := newTestServer(t)
	rec := doJSON(t, h, http.MethodGet, "/api/domains/abc", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestDomainCapabilityRoutes(t *testing.T) {
	_, h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/domains/", domain.Domain{Name: "Sales"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create domain: expected 201, got %d", rec.Code)
	}
	d := decodeBody[domain.Domain](t, rec)
	if d.ID != 1 {
		t.Fatalf("expected domain id 1, got %d", d.ID)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/domains/1/capabilities", domain.Capability{Name: "CRM", Maturity: 2})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create capability: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	c := decodeBody[domain.Capability](t, rec)
	if c.ID != "1.1" {
		t.Fatalf("expected capability 1.1, got %s", c.ID)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/domains/77/capabilities", domain.Capability{Name: "Ghost"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown domain, got %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/capabilities/1.1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get capability: expected 200, got %d", rec.Code)
	}
}

func TestMappingRoutes(t *testing.T) {
	store, h := newTestServer(t)
	store.AddDomain(domain.Domain{Name: "Sales", Capabilities: []domain.Capability{}})
	store.AddCapability(1, domain.Capability{Name: "CRM"})
	store.AddApp(domain.Application{Name: "Suite"})

	rec := doJSON(t, h, http.MethodPost, "/api/mappings/", domain.CapabilityMapping{CapabilityID: "1.1", ApplicationID: "APP-001"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodPost, "/api/mappings/", domain.CapabilityMapping{CapabilityID: "1.1"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing application id, got %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/capabilities/1.1/applications", nil)
	apps := decodeBody[[]core.AppWithRole](t, rec)
	if len(apps) != 1 || apps[0].Role != "Primary" {
		t.Fatalf("unexpected apps: %+v", apps)
	}

	rec = doJSON(t, h, http.MethodDelete, "/api/mappings/1.1/APP-001", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if len(store.Mappings()) != 0 {
		t.Fatalf("mapping should be removed")
	}
}

func TestAssessmentTransitionRoutes(t *testing.T) {
	store, h := newTestServer(t)
	store.AddApp(domain.Application{Name: "CRM"})
	a := store.AddAssessment(domain.ComplianceAssessment{AppID: "APP-001", Regulation: "gdpr"})

	rec := doJSON(t, h, http.MethodPost, "/api/assessments/"+a.ID+"/transition", map[string]string{"toStatus": "assessed"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("disallowed move: expected 409, got %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/assessments/CA-404/transition", map[string]string{"toStatus": "inReview"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown assessment: expected 404, got %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/assessments/"+a.ID+"/transition", map[string]string{"toStatus": "inReview", "user": "alice"})
	if rec.Code != http.StatusOK {
		t.Fatalf("allowed move: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	moved := decodeBody[domain.ComplianceAssessment](t, rec)
	if moved.WorkflowStatus != domain.WorkflowInReview {
		t.Fatalf("unexpected status %s", moved.WorkflowStatus)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/assessments/"+a.ID+"/audit-trail", nil)
	trail := decodeBody[[]domain.AuditEntry](t, rec)
	if len(trail) != 1 || trail[0].User != "alice" {
		t.Fatalf("unexpected trail: %+v", trail)
	}
}

func TestImportValidatesPayload(t *testing.T) {
	_, h := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/import", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestImportReplacesDocument(t *testing.T) {
	store, h := newTestServer(t)
	data := domain.EmptyDataset()
	data.Applications = []domain.Application{{ID: "APP-009", Name: "Imported"}}

	rec := doJSON(t, h, http.MethodPost, "/api/import", data)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	if _, ok := store.AppByID("APP-009"); !ok {
		t.Fatalf("import should replace the store document")
	}
}

func TestExportSetsAttachmentHeaders(t *testing.T) {
	_, h := newTestServer(t)
	rec := doJSON(t, h, http.MethodGet, "/api/export", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	cd := rec.Header().Get("Content-Disposition")
	if !strings.HasPrefix(cd, `attachment; filename="architecture_`) {
		t.Fatalf("unexpected content disposition %q", cd)
	}
	var exported domain.Dataset
	if err := json.Unmarshal(rec.Body.Bytes(), &exported); err != nil {
		t.Fatalf("export body should be a dataset: %v", err)
	}
}

func TestSearchRoute(t *testing.T) {
	store, h := newTestServer(t)
	store.AddApp(domain.Application{Name: "Billing Engine"})

	rec := doJSON(t, h, http.MethodGet, "/api/search?q=billing", nil)
	body := decodeBody[map[string]json.RawMessage](t, rec)
	var results []core.SearchResult
	if err := json.Unmarshal(body["results"], &results); err != nil {
		t.Fatalf("decode results: %v", err)
	}
	if len(results) != 1 || results[0].ID != "APP-001" {
		t.Fatalf("unexpected results: %+v", results)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/search", nil)
	if !strings.Contains(rec.Body.String(), `"results":[]`) {
		t.Fatalf("blank query should yield an empty array, got %s", rec.Body.String())
	}
}

func TestTemplateRoutes(t *testing.T) {
	store, h := newTestServer(t)

	rec := doJSON(t, h, http.MethodGet, "/api/templates", nil)
	templates := decodeBody[[]templateSummary](t, rec)
	if len(templates) != 3 {
		t.Fatalf("expected 3 templates, got %d", len(templates))
	}

	rec = doJSON(t, h, http.MethodPost, "/api/templates/technology/apply", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(store.Domains()) != 2 {
		t.Fatalf("expected technology template domains applied")
	}

	rec = doJSON(t, h, http.MethodPost, "/api/templates/retail/apply", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown template, got %d", rec.Code)
	}
}

func TestAnalyticsRoutes(t *testing.T) {
	store, h := newTestServer(t)
	store.AddDomain(domain.Domain{Name: "Sales"})
	store.AddCapability(1, domain.Capability{Name: "CRM", Maturity: 2, TargetMaturity: 4})
	store.AddApp(domain.Application{Name: "Suite", Regulations: []string{"gdpr"}})

	rec := doJSON(t, h, http.MethodGet, "/api/analytics/summary", nil)
	summary := decodeBody[analyticsSummary](t, rec)
	if summary.Totals.Apps != 1 || summary.AvgMaturity != 2.0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/analytics/maturity-gaps", nil)
	gaps := decodeBody[[]core.MaturityGap](t, rec)
	if len(gaps) != 1 || gaps[0].Gap != 2 {
		t.Fatalf("unexpected gaps: %+v", gaps)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/analytics/compliance/score", nil)
	score := decodeBody[map[string]int](t, rec)
	if score["score"] != 0 {
		t.Fatalf("expected score 0 for unassessed pair, got %d", score["score"])
	}

	rec = doJSON(t, h, http.MethodGet, "/api/analytics/skills/loss?count=1", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing skill param: expected 400, got %d", rec.Code)
	}
	rec = doJSON(t, h, http.MethodGet, "/api/analytics/skills/loss?skill=Go&count=zero", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad count: expected 400, got %d", rec.Code)
	}
	rec = doJSON(t, h, http.MethodGet, "/api/analytics/skills/loss?skill=Go", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRegulationDeadlinesSelectedParam(t *testing.T) {
	store, h := newTestServer(t)
	store.SetNowFunc(func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) })
	data := domain.EmptyDataset()
	data.Enums.ComplianceRegulations = []domain.Regulation{
		{Value: "dora", Deadline: "2026-03-01"},
		{Value: "nis2", Deadline: "2026-04-01"},
	}
	store.Replace(data)

	rec := doJSON(t, h, http.MethodGet, "/api/analytics/compliance/regulation-deadlines?selected=dora", nil)
	warnings := decodeBody[[]core.RegulationDeadline](t, rec)
	if len(warnings) != 1 || warnings[0].Value != "dora" {
		t.Fatalf("unexpected warnings: %+v", warnings)
	}
}

func TestResetRoute(t *testing.T) {
	store, h := newTestServer(t)
	store.AddApp(domain.Application{Name: "Local"})

	rec := doJSON(t, h, http.MethodPost, "/api/reset", nil)
	body := decodeBody[map[string]string](t, rec)
	if body["source"] != "empty" {
		t.Fatalf("expected empty source without a seed, got %q", body["source"])
	}
	if len(store.Applications()) != 0 {
		t.Fatalf("reset should drop local edits")
	}
}

func TestSnapshotRouteWithoutArchive(t *testing.T) {
	_, h := newTestServer(t)
	rec := doJSON(t, h, http.MethodPost, "/api/snapshot", nil)
	if rec.Code != http.StatusNotImplemented {
		t.Fatalf("expected 501 without an archive, got %d", rec.Code)
	}
}
