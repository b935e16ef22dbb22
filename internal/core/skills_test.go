package core

import (
	"reflect"
	"testing"

	"archcore/pkg/domain"
)

func skillsStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	data := domain.EmptyDataset()
	data.Applications = []domain.Application{
		{ID: "APP-001", Name: "CRM", Criticality: "high", SkillProfiles: []domain.SkillProfile{
			{Skill: "Go", Headcount: 3, KeyPersons: []string{"Kim", "Lee"}, Outsourceable: true},
			{Skill: "SQL", Headcount: 2, KeyPersons: []string{"Kim"}, Outsourceable: false},
		}},
		{ID: "APP-002", Name: "Billing", SkillProfiles: []domain.SkillProfile{
			{Skill: "Go", Headcount: 1, KeyPersons: []string{"Kim"}, Outsourceable: false},
		}},
		{ID: "APP-003", Name: "Portal", SkillProfiles: []domain.SkillProfile{
			{Skill: "Go", Headcount: 2, KeyPersons: []string{"Ada"}, Outsourceable: true},
		}},
	}
	s.Replace(data)
	return s
}

func TestSkillSummaries(t *testing.T) {
	s := skillsStore(t)
	summaries := s.SkillSummaries()
	if len(summaries) != 2 {
		t.Fatalf("expected 2 skills, got %d", len(summaries))
	}
	goSummary := summaries[0]
	if goSummary.Skill != "Go" {
		t.Fatalf("expected Go first (first-seen order), got %s", goSummary.Skill)
	}
	if goSummary.TotalHeadcount != 6 || goSummary.AppCount != 3 {
		t.Fatalf("unexpected Go aggregates: %+v", goSummary)
	}
	if !reflect.DeepEqual(goSummary.KeyPersons, []string{"Kim", "Lee", "Ada"}) {
		t.Fatalf("key persons should be deduplicated in first-seen order, got %v", goSummary.KeyPersons)
	}
	if goSummary.Outsourceable {
		t.Fatalf("one non-outsourceable profile should veto the skill")
	}
	if summaries[1].Skill != "SQL" || summaries[1].Outsourceable {
		t.Fatalf("unexpected SQL summary: %+v", summaries[1])
	}
}

func TestBusFactor(t *testing.T) {
	s := skillsStore(t)
	s.AddApp(domain.Application{ID: "APP-004", Name: "Gateway", SkillProfiles: []domain.SkillProfile{
		{Skill: "Go", Headcount: 1, KeyPersons: []string{"Kim"}},
	}})
	s.AddApp(domain.Application{ID: "APP-005", Name: "Reports", SkillProfiles: []domain.SkillProfile{
		{Skill: "SQL", Headcount: 1, KeyPersons: []string{"Kim", "Ada"}},
	}})

	entries := s.BusFactor()
	if len(entries) != 3 {
		t.Fatalf("expected 3 persons, got %d: %+v", len(entries), entries)
	}
	kim := entries[0]
	if kim.Person != "Kim" || kim.AppCount != 4 || kim.Risk != "high" {
		t.Fatalf("unexpected top entry: %+v", kim)
	}
	if !reflect.DeepEqual(kim.Skills, []string{"Go", "SQL"}) {
		t.Fatalf("unexpected skills for Kim: %v", kim.Skills)
	}
	ada := entries[1]
	if ada.Person != "Ada" || ada.AppCount != 2 || ada.Risk != "medium" {
		t.Fatalf("unexpected second entry: %+v", ada)
	}
	lee := entries[2]
	if lee.Person != "Lee" || lee.AppCount != 1 || lee.Risk != "low" {
		t.Fatalf("unexpected third entry: %+v", lee)
	}
}

func TestSkillLossImpacts(t *testing.T) {
	s := skillsStore(t)
	impacts := s.SkillLossImpacts("Go", 2)
	if len(impacts) != 3 {
		t.Fatalf("expected 3 impacts, got %d", len(impacts))
	}
	// APP-001: 3 - 2 = 1 remaining -> high
	if impacts[0].AppID != "APP-001" || impacts[0].RemainingHeadcount != 1 || impacts[0].Severity != "high" {
		t.Fatalf("unexpected first impact: %+v", impacts[0])
	}
	// APP-002: 1 - 2 capped -> 0 remaining, 1 lost -> critical
	if impacts[1].LostHeadcount != 1 || impacts[1].RemainingHeadcount != 0 || impacts[1].Severity != "critical" {
		t.Fatalf("unexpected second impact: %+v", impacts[1])
	}
	// APP-003: 2 - 2 = 0 remaining -> critical
	if impacts[2].Severity != "critical" {
		t.Fatalf("unexpected third impact: %+v", impacts[2])
	}

	if got := s.SkillLossImpacts("COBOL", 1); len(got) != 0 {
		t.Fatalf("expected no impacts for undeclared skill, got %v", got)
	}
}

func TestSkillLossImpactMediumSeverity(t *testing.T) {
	s := skillsStore(t)
	impacts := s.SkillLossImpacts("Go", 1)
	if impacts[0].Severity != "medium" || impacts[0].RemainingHeadcount != 2 {
		t.Fatalf("expected medium severity with 2 remaining, got %+v", impacts[0])
	}
}

func TestAppsBySkill(t *testing.T) {
	s := skillsStore(t)
	apps := s.AppsBySkill("SQL")
	if len(apps) != 1 || apps[0].ID != "APP-001" {
		t.Fatalf("unexpected apps for SQL: %+v", apps)
	}
}
