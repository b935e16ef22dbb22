package core

import (
	"sort"

	"archcore/pkg/domain"
)

// SkillSummary aggregates one skill across every application that
// declares it.
type SkillSummary struct {
	Skill          string   `json:"skill"`
	TotalHeadcount int      `json:"totalHeadcount"`
	AppIDs         []string `json:"appIds"`
	AppCount       int      `json:"appCount"`
	KeyPersons     []string `json:"keyPersons"`
	Outsourceable  bool     `json:"outsourceable"`
}

// SkillSummaries aggregates skill profiles across all applications.
// Headcounts are summed, key persons deduplicated, and a skill counts as
// outsourceable only when every profile declaring it is. Skills appear in
// first-seen document order.
func (s *Store) SkillSummaries() []SkillSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	type agg struct {
		summary SkillSummary
		persons map[string]bool
	}
	bySkill := map[string]*agg{}
	var order []string
	for _, app := range s.data.Applications {
		for _, sp := range app.SkillProfiles {
			a, ok := bySkill[sp.Skill]
			if !ok {
				a = &agg{
					summary: SkillSummary{Skill: sp.Skill, Outsourceable: sp.Outsourceable},
					persons: map[string]bool{},
				}
				bySkill[sp.Skill] = a
				order = append(order, sp.Skill)
			}
			a.summary.TotalHeadcount += sp.Headcount
			a.summary.AppIDs = append(a.summary.AppIDs, app.ID)
			for _, p := range sp.KeyPersons {
				if !a.persons[p] {
					a.persons[p] = true
					a.summary.KeyPersons = append(a.summary.KeyPersons, p)
				}
			}
			if !sp.Outsourceable {
				a.summary.Outsourceable = false
			}
		}
	}
	out := make([]SkillSummary, 0, len(order))
	for _, skill := range order {
		a := bySkill[skill]
		a.summary.AppCount = len(a.summary.AppIDs)
		if a.summary.KeyPersons == nil {
			a.summary.KeyPersons = []string{}
		}
		out = append(out, a.summary)
	}
	return out
}

// AppsBySkill returns applications declaring the given skill.
func (s *Store) AppsBySkill(skill string) []domain.Application {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Application
	for _, app := range s.data.Applications {
		for _, sp := range app.SkillProfiles {
			if sp.Skill == skill {
				out = append(out, app.Clone())
				break
			}
		}
	}
	return out
}

// BusFactorEntry ranks one key person by how many applications depend on
// them.
type BusFactorEntry struct {
	Person   string   `json:"person"`
	Skills   []string `json:"skills"`
	AppIDs   []string `json:"appIds"`
	AppCount int      `json:"appCount"`
	Risk     string   `json:"risk"`
}

// BusFactor lists every key person with the distinct skills and apps they
// cover. Risk is high at four or more apps, medium at two or three, low
// below that. Sorted by app count descending, person ascending on ties.
func (s *Store) BusFactor() []BusFactorEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	type agg struct {
		skills    []string
		skillSeen map[string]bool
		apps      []string
		appSeen   map[string]bool
	}
	byPerson := map[string]*agg{}
	var order []string
	for _, app := range s.data.Applications {
		for _, sp := range app.SkillProfiles {
			for _, person := range sp.KeyPersons {
				a, ok := byPerson[person]
				if !ok {
					a = &agg{skillSeen: map[string]bool{}, appSeen: map[string]bool{}}
					byPerson[person] = a
					order = append(order, person)
				}
				if !a.skillSeen[sp.Skill] {
					a.skillSeen[sp.Skill] = true
					a.skills = append(a.skills, sp.Skill)
				}
				if !a.appSeen[app.ID] {
					a.appSeen[app.ID] = true
					a.apps = append(a.apps, app.ID)
				}
			}
		}
	}
	out := make([]BusFactorEntry, 0, len(order))
	for _, person := range order {
		a := byPerson[person]
		risk := "low"
		switch {
		case len(a.apps) >= 4:
			risk = "high"
		case len(a.apps) >= 2:
			risk = "medium"
		}
		out = append(out, BusFactorEntry{
			Person:   person,
			Skills:   a.skills,
			AppIDs:   a.apps,
			AppCount: len(a.apps),
			Risk:     risk,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].AppCount != out[j].AppCount {
			return out[i].AppCount > out[j].AppCount
		}
		return out[i].Person < out[j].Person
	})
	return out
}

// SkillLossImpact describes the effect of losing staff with one skill on
// one application.
type SkillLossImpact struct {
	AppID              string   `json:"appId"`
	AppName            string   `json:"appName"`
	Criticality        string   `json:"criticality,omitempty"`
	CurrentHeadcount   int      `json:"currentHeadcount"`
	LostHeadcount      int      `json:"lostHeadcount"`
	RemainingHeadcount int      `json:"remainingHeadcount"`
	KeyPersons         []string `json:"keyPersons"`
	Outsourceable      bool     `json:"outsourceable"`
	Severity           string   `json:"severity"`
}

// SkillLossImpacts simulates losing count people with the given skill.
// For each app declaring the skill, the loss is capped at the current
// headcount; severity is critical when nobody remains, high when one
// person remains, and medium otherwise.
func (s *Store) SkillLossImpacts(skill string, count int) []SkillLossImpact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []SkillLossImpact
	for _, app := range s.data.Applications {
		for _, sp := range app.SkillProfiles {
			if sp.Skill != skill {
				continue
			}
			remaining := sp.Headcount - count
			if remaining < 0 {
				remaining = 0
			}
			lost := count
			if lost > sp.Headcount {
				lost = sp.Headcount
			}
			severity := "medium"
			switch remaining {
			case 0:
				severity = "critical"
			case 1:
				severity = "high"
			}
			out = append(out, SkillLossImpact{
				AppID:              app.ID,
				AppName:            app.Name,
				Criticality:        app.Criticality,
				CurrentHeadcount:   sp.Headcount,
				LostHeadcount:      lost,
				RemainingHeadcount: remaining,
				KeyPersons:         append([]string{}, sp.KeyPersons...),
				Outsourceable:      sp.Outsourceable,
				Severity:           severity,
			})
			break
		}
	}
	return out
}
