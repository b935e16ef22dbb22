package httpapi

import (
	"net/http"
	"strconv"

	"archcore/internal/core"
)

type analyticsSummary struct {
	Totals              core.Totals              `json:"totals"`
	AvgMaturity         float64                  `json:"avgMaturity"`
	AvgTargetMaturity   float64                  `json:"avgTargetMaturity"`
	TotalBudget         float64                  `json:"totalBudget"`
	TimeDistribution    core.TimeDistribution    `json:"timeDistribution"`
	ProjectStatusCounts core.ProjectStatusCounts `json:"projectStatusCounts"`
}

func (s *Server) handleAnalyticsSummary(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, http.StatusOK, analyticsSummary{
		Totals:              s.store.Totals(),
		AvgMaturity:         s.store.AvgMaturity(),
		AvgTargetMaturity:   s.store.AvgTargetMaturity(),
		TotalBudget:         s.store.TotalBudget(),
		TimeDistribution:    s.store.TimeDistribution(),
		ProjectStatusCounts: s.store.ProjectStatusCounts(),
	})
}

func (s *Server) handleMaturityGaps(w http.ResponseWriter, _ *http.Request) {
	gaps := s.store.MaturityGaps()
	if gaps == nil {
		gaps = []core.MaturityGap{}
	}
	s.respond(w, http.StatusOK, gaps)
}

func (s *Server) handleComplianceGaps(w http.ResponseWriter, _ *http.Request) {
	gaps := s.store.ComplianceGaps()
	if gaps == nil {
		gaps = []core.ComplianceGap{}
	}
	s.respond(w, http.StatusOK, gaps)
}

func (s *Server) handleComplianceScore(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, http.StatusOK, map[string]int{"score": s.store.OverallComplianceScore()})
}

func (s *Server) handleRegulationLoad(w http.ResponseWriter, _ *http.Request) {
	load := s.store.RegulationLoadScores()
	if load == nil {
		load = []core.RegulationLoad{}
	}
	s.respond(w, http.StatusOK, load)
}

func (s *Server) handleVendorCompliance(w http.ResponseWriter, _ *http.Request) {
	status := s.store.VendorComplianceStatus()
	if status == nil {
		status = []core.VendorCompliance{}
	}
	s.respond(w, http.StatusOK, status)
}

func (s *Server) handleComplianceScorecard(w http.ResponseWriter, _ *http.Request) {
	cards := s.store.ComplianceScorecardByDomain()
	if cards == nil {
		cards = []core.DomainScorecard{}
	}
	s.respond(w, http.StatusOK, cards)
}

func (s *Server) handleDeadlineWarnings(w http.ResponseWriter, _ *http.Request) {
	warnings := s.store.DeadlineWarnings()
	if warnings == nil {
		warnings = []core.DeadlineWarning{}
	}
	s.respond(w, http.StatusOK, warnings)
}

// handleRegulationDeadlines takes ?selected=a,b,c to scope the catalog
// to regulations the caller has enabled.
func (s *Server) handleRegulationDeadlines(w http.ResponseWriter, r *http.Request) {
	warnings := s.store.RegulationDeadlineWarnings(selectedParam(r, "selected"))
	if warnings == nil {
		warnings = []core.RegulationDeadline{}
	}
	s.respond(w, http.StatusOK, warnings)
}

func (s *Server) handleSkillSummaries(w http.ResponseWriter, _ *http.Request) {
	summaries := s.store.SkillSummaries()
	if summaries == nil {
		summaries = []core.SkillSummary{}
	}
	s.respond(w, http.StatusOK, summaries)
}

func (s *Server) handleBusFactor(w http.ResponseWriter, _ *http.Request) {
	entries := s.store.BusFactor()
	if entries == nil {
		entries = []core.BusFactorEntry{}
	}
	s.respond(w, http.StatusOK, entries)
}

// handleSkillLoss simulates losing ?count people holding ?skill.
func (s *Server) handleSkillLoss(w http.ResponseWriter, r *http.Request) {
	skill := r.URL.Query().Get("skill")
	if skill == "" {
		s.respondError(w, http.StatusBadRequest, "skill query parameter required")
		return
	}
	count := 1
	if raw := r.URL.Query().Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.respondError(w, http.StatusBadRequest, "count must be a positive integer")
			return
		}
		count = n
	}
	impacts := s.store.SkillLossImpacts(skill, count)
	if impacts == nil {
		impacts = []core.SkillLossImpact{}
	}
	s.respond(w, http.StatusOK, impacts)
}
