package core

import (
	"math"
	"sort"

	"archcore/pkg/domain"
)

// Totals are the headline counts across the document.
type Totals struct {
	Apps            int `json:"apps"`
	Projects        int `json:"projects"`
	Vendors         int `json:"vendors"`
	Entities        int `json:"entities"`
	Capabilities    int `json:"capabilities"`
	SubCapabilities int `json:"subCapabilities"`
	Demands         int `json:"demands"`
	Integrations    int `json:"integrations"`
	DataObjects     int `json:"dataObjects"`
}

// Totals counts records across all collections, including capabilities
// and sub-capabilities nested in domains.
func (s *Store) Totals() Totals {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t := Totals{
		Apps:         len(s.data.Applications),
		Projects:     len(s.data.Projects),
		Vendors:      len(s.data.Vendors),
		Entities:     len(s.data.LegalEntities),
		Demands:      len(s.data.Demands),
		Integrations: len(s.data.Integrations),
		DataObjects:  len(s.data.DataObjects),
	}
	for _, d := range s.data.Domains {
		t.Capabilities += len(d.Capabilities)
		for _, c := range d.Capabilities {
			t.SubCapabilities += len(c.SubCapabilities)
		}
	}
	return t
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// AvgMaturity is the mean current maturity over every capability, rounded
// to one decimal. Zero when there are no capabilities.
func (s *Store) AvgMaturity() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sum, count := 0, 0
	for _, d := range s.data.Domains {
		for _, c := range d.Capabilities {
			sum += c.Maturity
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return round1(float64(sum) / float64(count))
}

// AvgTargetMaturity is the mean target maturity over capabilities with a
// non-zero target, rounded to one decimal. Capabilities without a target
// are excluded from both sum and count.
func (s *Store) AvgTargetMaturity() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sum, count := 0, 0
	for _, d := range s.data.Domains {
		for _, c := range d.Capabilities {
			if c.TargetMaturity != 0 {
				sum += c.TargetMaturity
				count++
			}
		}
	}
	if count == 0 {
		return 0
	}
	return round1(float64(sum) / float64(count))
}

// TotalBudget sums project budgets.
func (s *Store) TotalBudget() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0.0
	for _, p := range s.data.Projects {
		total += p.Budget
	}
	return total
}

// MaturityGap is a capability whose target maturity exceeds its current
// maturity.
type MaturityGap struct {
	CapID       string `json:"capId"`
	CapName     string `json:"capName"`
	DomainName  string `json:"domainName"`
	DomainColor string `json:"domainColor,omitempty"`
	Current     int    `json:"current"`
	Target      int    `json:"target"`
	Gap         int    `json:"gap"`
}

// MaturityGaps lists capabilities with a positive gap between target and
// current maturity, largest gap first. A zero target falls back to the
// current maturity, which never produces a positive gap.
func (s *Store) MaturityGaps() []MaturityGap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var gaps []MaturityGap
	for _, d := range s.data.Domains {
		for _, c := range d.Capabilities {
			target := c.TargetMaturity
			if target == 0 {
				target = c.Maturity
			}
			gap := target - c.Maturity
			if gap <= 0 {
				continue
			}
			gaps = append(gaps, MaturityGap{
				CapID:       c.ID,
				CapName:     c.Name,
				DomainName:  d.Name,
				DomainColor: d.Color,
				Current:     c.Maturity,
				Target:      c.TargetMaturity,
				Gap:         gap,
			})
		}
	}
	sort.SliceStable(gaps, func(i, j int) bool { return gaps[i].Gap > gaps[j].Gap })
	return gaps
}

// TimeDistribution counts applications per TIME quadrant. Apps with an
// empty or unrecognized quadrant are not counted.
type TimeDistribution struct {
	Invest    int `json:"Invest"`
	Tolerate  int `json:"Tolerate"`
	Migrate   int `json:"Migrate"`
	Eliminate int `json:"Eliminate"`
}

// TimeDistribution tallies applications by their TIME quadrant.
func (s *Store) TimeDistribution() TimeDistribution {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var dist TimeDistribution
	for _, a := range s.data.Applications {
		switch a.TimeQuadrant {
		case domain.QuadrantInvest:
			dist.Invest++
		case domain.QuadrantTolerate:
			dist.Tolerate++
		case domain.QuadrantMigrate:
			dist.Migrate++
		case domain.QuadrantEliminate:
			dist.Eliminate++
		}
	}
	return dist
}

// ProjectStatusCounts tallies projects by traffic-light status. Unknown
// statuses are not counted.
type ProjectStatusCounts struct {
	Green  int `json:"green"`
	Yellow int `json:"yellow"`
	Red    int `json:"red"`
}

// ProjectStatusCounts tallies projects by status.
func (s *Store) ProjectStatusCounts() ProjectStatusCounts {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var c ProjectStatusCounts
	for _, p := range s.data.Projects {
		switch p.Status {
		case domain.ProjectGreen:
			c.Green++
		case domain.ProjectYellow:
			c.Yellow++
		case domain.ProjectRed:
			c.Red++
		}
	}
	return c
}
