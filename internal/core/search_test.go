package core

import (
	"testing"

	"archcore/pkg/domain"
)

func TestGlobalSearchBlankQuery(t *testing.T) {
	s := fixtureStore(t)
	if got := s.GlobalSearch(""); got != nil {
		t.Fatalf("blank query must yield nothing, got %v", got)
	}
	if got := s.GlobalSearch("   "); got != nil {
		t.Fatalf("whitespace query must yield nothing, got %v", got)
	}
}

func TestGlobalSearchCaseInsensitive(t *testing.T) {
	s := fixtureStore(t)
	results := s.GlobalSearch("bIlLiNg")
	if len(results) == 0 {
		t.Fatalf("expected matches for mixed-case query")
	}
	if results[0].Type != "Application" || results[0].ID != "APP-002" {
		t.Fatalf("expected Billing Engine first, got %+v", results[0])
	}
}

func TestGlobalSearchGrouping(t *testing.T) {
	s := fixtureStore(t)
	// "sales" hits the CRM app (via vendor Salesforce), the Sales domain
	// and nothing else; applications come before domains.
	results := s.GlobalSearch("sales")
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d: %+v", len(results), results)
	}
	if results[0].Type != "Application" || results[0].ID != "APP-001" {
		t.Fatalf("expected application first, got %+v", results[0])
	}
	if results[1].Type != "Domain" || results[1].ID != "1" {
		t.Fatalf("expected domain second, got %+v", results[1])
	}
	if results[1].Route != "/domains/1" {
		t.Fatalf("unexpected domain route %q", results[1].Route)
	}
}

func TestGlobalSearchCapabilityCarriesDomainRoute(t *testing.T) {
	s := fixtureStore(t)
	results := s.GlobalSearch("lead management")
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d: %+v", len(results), results)
	}
	r := results[0]
	if r.Type != "Capability" || r.ID != "1.1" || r.Detail != "Sales" || r.Route != "/domains/1" {
		t.Fatalf("unexpected capability result: %+v", r)
	}
}

func TestGlobalSearchIntegrationFallbackName(t *testing.T) {
	s := fixtureStore(t)
	s.AddIntegration(domain.Integration{ID: "INT-001", Protocol: "SFTP"})
	results := s.GlobalSearch("sftp")
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	r := results[0]
	if r.Name != "INT-001" || r.Route != "/integration-map" {
		t.Fatalf("expected id fallback name and map route, got %+v", r)
	}
}

func TestGlobalSearchDetailJoins(t *testing.T) {
	s := fixtureStore(t)
	if _, ok := s.UpdateApp("APP-001", func(a *domain.Application) {
		a.Category = "CRM"
	}); !ok {
		t.Fatalf("fixture app missing")
	}
	results := s.GlobalSearch("crm suite")
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Detail != "Salesforce · CRM" {
		t.Fatalf("unexpected detail %q", results[0].Detail)
	}
}
