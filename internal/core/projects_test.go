package core

import (
	"testing"

	"archcore/pkg/domain"
)

func TestAddProjectSerialID(t *testing.T) {
	s := fixtureStore(t)
	p := s.AddProject(domain.Project{Name: "ERP Upgrade"})
	if p.ID != "PRJ-003" {
		t.Fatalf("expected PRJ-003, got %s", p.ID)
	}
}

func TestDeleteProjectDropsEdgesBothDirections(t *testing.T) {
	s := fixtureStore(t)
	s.AddDependency(domain.ProjectDependency{SourceProjectID: "PRJ-001", TargetProjectID: "PRJ-002"})

	s.DeleteProject("PRJ-001")

	if _, ok := s.ProjectByID("PRJ-001"); ok {
		t.Fatalf("PRJ-001 should be gone")
	}
	if deps := s.DepsForProject("PRJ-002"); len(deps) != 0 {
		t.Fatalf("expected no surviving edges, got %v", deps)
	}
}

func TestRemoveDependencyIsDirectional(t *testing.T) {
	s := fixtureStore(t)
	s.AddDependency(domain.ProjectDependency{SourceProjectID: "PRJ-001", TargetProjectID: "PRJ-002"})

	s.RemoveDependency("PRJ-001", "PRJ-002")

	deps := s.DepsForProject("PRJ-001")
	if len(deps) != 1 {
		t.Fatalf("expected the reverse edge to survive, got %v", deps)
	}
	if deps[0].SourceProjectID != "PRJ-002" || deps[0].TargetProjectID != "PRJ-001" {
		t.Fatalf("unexpected surviving edge: %+v", deps[0])
	}
}

func TestProjectsForDomain(t *testing.T) {
	s := fixtureStore(t)
	got := s.ProjectsForDomain(1)
	if len(got) != 2 {
		t.Fatalf("expected both projects (primary + secondary), got %d", len(got))
	}
	if got := s.ProjectsForDomain(7); len(got) != 0 {
		t.Fatalf("expected no projects for unknown domain, got %d", len(got))
	}
}
