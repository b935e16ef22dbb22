package core

import (
	"testing"

	"archcore/pkg/domain"
)

func TestTotals(t *testing.T) {
	s := fixtureStore(t)
	got := s.Totals()
	want := Totals{Apps: 3, Projects: 2, Capabilities: 3, SubCapabilities: 1}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestAvgMaturity(t *testing.T) {
	s := fixtureStore(t)
	if got := s.AvgMaturity(); got != 3.0 {
		t.Fatalf("expected 3.0, got %v", got)
	}

	// 2, 3, 4, 1 -> 2.5
	if _, ok := s.AddCapability(2, domain.Capability{Name: "Treasury", Maturity: 1, TargetMaturity: 2}); !ok {
		t.Fatalf("fixture domain missing")
	}
	if got := s.AvgMaturity(); got != 2.5 {
		t.Fatalf("expected 2.5, got %v", got)
	}

	if got := NewStore().AvgMaturity(); got != 0 {
		t.Fatalf("expected 0 for empty landscape, got %v", got)
	}
}

func TestAvgTargetMaturityIgnoresZeroTargets(t *testing.T) {
	s := NewStore()
	data := domain.EmptyDataset()
	data.Domains = []domain.Domain{{ID: 1, Name: "Ops", Capabilities: []domain.Capability{
		{ID: "1.1", Name: "A", Maturity: 2, TargetMaturity: 4},
		{ID: "1.2", Name: "B", Maturity: 3, TargetMaturity: 5},
		{ID: "1.3", Name: "C", Maturity: 1},
	}}}
	s.Replace(data)
	if got := s.AvgTargetMaturity(); got != 4.5 {
		t.Fatalf("expected 4.5, got %v", got)
	}
}

func TestTotalBudget(t *testing.T) {
	s := fixtureStore(t)
	if got := s.TotalBudget(); got != 750000 {
		t.Fatalf("expected 750000, got %v", got)
	}
}

func TestMaturityGapsSortedDescending(t *testing.T) {
	s := fixtureStore(t)
	gaps := s.MaturityGaps()
	if len(gaps) != 2 {
		t.Fatalf("expected 2 gaps, got %d: %+v", len(gaps), gaps)
	}
	if gaps[0].CapID != "1.1" || gaps[0].Gap != 2 {
		t.Fatalf("expected 1.1 with gap 2 first, got %+v", gaps[0])
	}
	if gaps[1].CapID != "2.1" || gaps[1].Gap != 1 {
		t.Fatalf("expected 2.1 with gap 1 second, got %+v", gaps[1])
	}
	if gaps[0].DomainName != "Sales" || gaps[0].DomainColor != "#336699" {
		t.Fatalf("gap should carry domain context, got %+v", gaps[0])
	}
}

func TestTimeDistribution(t *testing.T) {
	s := fixtureStore(t)
	got := s.TimeDistribution()
	want := TimeDistribution{Invest: 1, Tolerate: 1, Eliminate: 1}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestProjectStatusCounts(t *testing.T) {
	s := fixtureStore(t)
	got := s.ProjectStatusCounts()
	want := ProjectStatusCounts{Green: 1, Yellow: 1}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}
