package core

import "testing"

func TestDomainTemplatesAreDetached(t *testing.T) {
	first := DomainTemplates()
	first[0].Domains[0].Name = "Mutated"
	first[0].Domains[0].Capabilities[0].Name = "Mutated"

	second := DomainTemplates()
	if second[0].Domains[0].Name == "Mutated" || second[0].Domains[0].Capabilities[0].Name == "Mutated" {
		t.Fatalf("template catalogue must not be mutable through returned copies")
	}
}

func TestApplyDomainTemplate(t *testing.T) {
	s := fixtureStore(t)
	if !s.ApplyDomainTemplate("financial-services") {
		t.Fatalf("expected template to apply")
	}

	domains := s.Domains()
	if len(domains) != 3 {
		t.Fatalf("expected 3 template domains, got %d", len(domains))
	}
	if domains[0].Name != "Core Banking" {
		t.Fatalf("unexpected first domain: %+v", domains[0])
	}
	if got := s.Mappings(); len(got) != 0 {
		t.Fatalf("mappings must be cleared, got %d", len(got))
	}
	// Other collections stay untouched.
	if len(s.Applications()) != 3 {
		t.Fatalf("applications should survive a template apply")
	}
	if len(s.Projects()) != 2 {
		t.Fatalf("projects should survive a template apply")
	}
}

func TestApplyDomainTemplateUnknown(t *testing.T) {
	s := fixtureStore(t)
	if s.ApplyDomainTemplate("retail") {
		t.Fatalf("unknown template must be rejected")
	}
	if len(s.Domains()) != 2 {
		t.Fatalf("rejected apply must not change domains")
	}
}
