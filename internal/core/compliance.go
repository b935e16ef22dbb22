package core

import (
	"math"
	"sort"
	"time"

	"archcore/pkg/domain"
)

// AssessmentByID returns the compliance assessment with the given id.
func (s *Store) AssessmentByID(id string) (domain.ComplianceAssessment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.data.ComplianceAssessments {
		if a.ID == id {
			return a.Clone(), true
		}
	}
	return domain.ComplianceAssessment{}, false
}

// Assessments returns clones of all compliance assessments.
func (s *Store) Assessments() []domain.ComplianceAssessment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ComplianceAssessment, len(s.data.ComplianceAssessments))
	for i, a := range s.data.ComplianceAssessments {
		out[i] = a.Clone()
	}
	return out
}

// AddAssessment inserts a compliance assessment, assigning the next CA-NNN
// serial when no id is supplied. An empty workflow status defaults to open.
func (s *Store) AddAssessment(a domain.ComplianceAssessment) domain.ComplianceAssessment {
	var added domain.ComplianceAssessment
	s.commit(func(data *domain.Dataset) (domain.Change, bool) {
		if a.ID == "" {
			ids := make([]string, len(data.ComplianceAssessments))
			for i, existing := range data.ComplianceAssessments {
				ids[i] = existing.ID
			}
			a.ID = nextSerialID("CA", ids)
		}
		a.WorkflowStatus = a.WorkflowStatus.OrOpen()
		data.ComplianceAssessments = append(data.ComplianceAssessments, a.Clone())
		added = a
		return domain.Change{
			Entity:   domain.EntityAssessment,
			Action:   domain.ActionCreate,
			EntityID: a.ID,
			After:    domain.NewChangePayloadFromValue(a),
		}, true
	})
	return added
}

// UpdateAssessment applies mutate to the assessment with the given id. The
// id cannot be changed; workflow moves should go through
// TransitionAssessmentWorkflow so the audit trail stays consistent.
func (s *Store) UpdateAssessment(id string, mutate func(*domain.ComplianceAssessment)) (domain.ComplianceAssessment, bool) {
	var (
		updated domain.ComplianceAssessment
		found   bool
	)
	s.commit(func(data *domain.Dataset) (domain.Change, bool) {
		for i := range data.ComplianceAssessments {
			if data.ComplianceAssessments[i].ID != id {
				continue
			}
			before := domain.NewChangePayloadFromValue(data.ComplianceAssessments[i])
			next := data.ComplianceAssessments[i].Clone()
			mutate(&next)
			next.ID = id
			data.ComplianceAssessments[i] = next
			updated = next.Clone()
			found = true
			return domain.Change{
				Entity:   domain.EntityAssessment,
				Action:   domain.ActionUpdate,
				EntityID: id,
				Before:   before,
				After:    domain.NewChangePayloadFromValue(next),
			}, true
		}
		return domain.Change{}, false
	})
	return updated, found
}

// DeleteAssessment removes a compliance assessment.
func (s *Store) DeleteAssessment(id string) {
	s.commit(func(data *domain.Dataset) (domain.Change, bool) {
		for i, a := range data.ComplianceAssessments {
			if a.ID == id {
				data.ComplianceAssessments = append(data.ComplianceAssessments[:i], data.ComplianceAssessments[i+1:]...)
				return domain.Change{
					Entity:   domain.EntityAssessment,
					Action:   domain.ActionDelete,
					EntityID: id,
					Before:   domain.NewChangePayloadFromValue(a),
				}, true
			}
		}
		return domain.Change{}, false
	})
}

// AssessmentsForApp returns the assessments recorded against one app.
func (s *Store) AssessmentsForApp(appID string) []domain.ComplianceAssessment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.ComplianceAssessment
	for _, a := range s.data.ComplianceAssessments {
		if a.AppID == appID {
			out = append(out, a.Clone())
		}
	}
	return out
}

// AssessmentsForRegulation returns the assessments for one regulation.
func (s *Store) AssessmentsForRegulation(regulation string) []domain.ComplianceAssessment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.ComplianceAssessment
	for _, a := range s.data.ComplianceAssessments {
		if a.Regulation == regulation {
			out = append(out, a.Clone())
		}
	}
	return out
}

// TransitionAssessmentWorkflow moves an assessment along the workflow
// graph. A successful move appends exactly one audit entry; a rejected
// move (unknown assessment or disallowed edge) changes nothing and
// returns false. An empty user is recorded as "System".
func (s *Store) TransitionAssessmentWorkflow(id string, next domain.WorkflowStatus, user, comment string) bool {
	ok := false
	s.commit(func(data *domain.Dataset) (domain.Change, bool) {
		for i := range data.ComplianceAssessments {
			a := &data.ComplianceAssessments[i]
			if a.ID != id {
				continue
			}
			current := a.WorkflowStatus.OrOpen()
			if !current.CanTransitionTo(next) {
				return domain.Change{}, false
			}
			before := domain.NewChangePayloadFromValue(*a)
			if user == "" {
				user = "System"
			}
			a.WorkflowStatus = next
			a.AuditTrail = append(a.AuditTrail, domain.AuditEntry{
				Timestamp:  s.now().UTC().Format(time.RFC3339),
				User:       user,
				Action:     "statusChange",
				FromStatus: current,
				ToStatus:   next,
				Comment:    comment,
			})
			ok = true
			return domain.Change{
				Entity:   domain.EntityAssessment,
				Action:   domain.ActionUpdate,
				EntityID: id,
				Before:   before,
				After:    domain.NewChangePayloadFromValue(*a),
			}, true
		}
		return domain.Change{}, false
	})
	return ok
}

// AuditTrailForAssessment returns the audit entries of one assessment,
// oldest first. Unknown ids yield an empty trail.
func (s *Store) AuditTrailForAssessment(id string) []domain.AuditEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.data.ComplianceAssessments {
		if a.ID == id {
			return append([]domain.AuditEntry(nil), a.AuditTrail...)
		}
	}
	return nil
}

// ComplianceGap is an app/regulation pair lacking a usable assessment.
type ComplianceGap struct {
	AppID      string `json:"appId"`
	AppName    string `json:"appName"`
	Regulation string `json:"regulation"`
	Reason     string `json:"reason"`
}

// ComplianceGaps lists every (app, regulation) pair where the app declares
// the regulation but no assessment exists ("missing") or the assessment
// status is notAssessed.
func (s *Store) ComplianceGaps() []ComplianceGap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var gaps []ComplianceGap
	for _, app := range s.data.Applications {
		for _, reg := range app.Regulations {
			assessment, found := findAssessment(s.data.ComplianceAssessments, app.ID, reg)
			switch {
			case !found:
				gaps = append(gaps, ComplianceGap{AppID: app.ID, AppName: app.Name, Regulation: reg, Reason: "missing"})
			case assessment.Status == domain.ComplianceNotAssessed:
				gaps = append(gaps, ComplianceGap{AppID: app.ID, AppName: app.Name, Regulation: reg, Reason: "notAssessed"})
			}
		}
	}
	return gaps
}

func findAssessment(list []domain.ComplianceAssessment, appID, regulation string) (domain.ComplianceAssessment, bool) {
	for _, a := range list {
		if a.AppID == appID && a.Regulation == regulation {
			return a, true
		}
	}
	return domain.ComplianceAssessment{}, false
}

// RegulationLoad summarizes the regulatory burden on one application.
type RegulationLoad struct {
	AppID       string   `json:"appId"`
	AppName     string   `json:"appName"`
	Vendor      string   `json:"vendor,omitempty"`
	Criticality string   `json:"criticality,omitempty"`
	Count       int      `json:"count"`
	Regulations []string `json:"regulations"`
}

// RegulationLoadScores ranks applications by the number of regulations
// that apply to them, descending. Apps without regulations are omitted.
func (s *Store) RegulationLoadScores() []RegulationLoad {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []RegulationLoad
	for _, app := range s.data.Applications {
		if len(app.Regulations) == 0 {
			continue
		}
		out = append(out, RegulationLoad{
			AppID:       app.ID,
			AppName:     app.Name,
			Vendor:      app.Vendor,
			Criticality: app.Criticality,
			Count:       len(app.Regulations),
			Regulations: append([]string(nil), app.Regulations...),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// VendorCompliance aggregates assessment outcomes across one vendor's
// applications, keyed by the legacy vendor name field.
type VendorCompliance struct {
	Vendor         string `json:"vendor"`
	Apps           int    `json:"apps"`
	Compliant      int    `json:"compliant"`
	Partial        int    `json:"partial"`
	NonCompliant   int    `json:"nonCompliant"`
	NotAssessed    int    `json:"notAssessed"`
	Total          int    `json:"total"`
	ComplianceRate int    `json:"complianceRate"`
}

// VendorComplianceStatus groups apps by vendor name (empty names count
// under "Unknown") and tallies assessment outcomes per declared
// regulation. Vendors whose apps declare no regulations are omitted.
// Sorted by total descending, vendor name ascending on ties.
func (s *Store) VendorComplianceStatus() []VendorCompliance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	byVendor := map[string]*VendorCompliance{}
	var order []string
	for _, app := range s.data.Applications {
		vendor := app.Vendor
		if vendor == "" {
			vendor = "Unknown"
		}
		vc, ok := byVendor[vendor]
		if !ok {
			vc = &VendorCompliance{Vendor: vendor}
			byVendor[vendor] = vc
			order = append(order, vendor)
		}
		vc.Apps++
		for _, reg := range app.Regulations {
			vc.Total++
			assessment, found := findAssessment(s.data.ComplianceAssessments, app.ID, reg)
			switch {
			case !found || assessment.Status == domain.ComplianceNotAssessed:
				vc.NotAssessed++
			case assessment.Status == domain.ComplianceCompliant:
				vc.Compliant++
			case assessment.Status == domain.CompliancePartial:
				vc.Partial++
			default:
				vc.NonCompliant++
			}
		}
	}
	var out []VendorCompliance
	for _, vendor := range order {
		vc := byVendor[vendor]
		if vc.Total == 0 {
			continue
		}
		vc.ComplianceRate = int(math.Round(float64(vc.Compliant) / float64(vc.Total) * 100))
		out = append(out, *vc)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Vendor < out[j].Vendor
	})
	return out
}

// OverallComplianceScore is the percentage of declared app/regulation
// pairs that are covered by assessments, counting compliant as 1 and
// partial as 0.5, rounded to the nearest integer. Zero when no app
// declares any regulation.
func (s *Store) OverallComplianceScore() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	score := 0.0
	for _, app := range s.data.Applications {
		for _, reg := range app.Regulations {
			total++
			assessment, found := findAssessment(s.data.ComplianceAssessments, app.ID, reg)
			if !found {
				continue
			}
			switch assessment.Status {
			case domain.ComplianceCompliant:
				score++
			case domain.CompliancePartial:
				score += 0.5
			}
		}
	}
	if total == 0 {
		return 0
	}
	return int(math.Round(score / float64(total) * 100))
}

// DeadlineWarning flags an assessment whose deadline is near or past.
type DeadlineWarning struct {
	AssessmentID   string                  `json:"assessmentId"`
	AppID          string                  `json:"appId"`
	AppName        string                  `json:"appName"`
	Regulation     string                  `json:"regulation"`
	Deadline       string                  `json:"deadline"`
	DaysRemaining  int                     `json:"daysRemaining"`
	Status         domain.ComplianceStatus `json:"status,omitempty"`
	WorkflowStatus domain.WorkflowStatus   `json:"workflowStatus"`
	Expired        bool                    `json:"expired"`
}

// DeadlineWarnings lists assessments whose deadline falls within the next
// 90 days or has passed, sorted by days remaining ascending. Assessments
// without a parseable deadline are skipped; the app name falls back to the
// app id when the app no longer exists.
func (s *Store) DeadlineWarnings() []DeadlineWarning {
	s.mu.RLock()
	defer s.mu.RUnlock()
	now := s.now()
	var out []DeadlineWarning
	for _, a := range s.data.ComplianceAssessments {
		days, ok := daysUntil(now, a.Deadline)
		if !ok || days > 90 {
			continue
		}
		appName := a.AppID
		for _, app := range s.data.Applications {
			if app.ID == a.AppID {
				appName = app.Name
				break
			}
		}
		out = append(out, DeadlineWarning{
			AssessmentID:   a.ID,
			AppID:          a.AppID,
			AppName:        appName,
			Regulation:     a.Regulation,
			Deadline:       a.Deadline,
			DaysRemaining:  days,
			Status:         a.Status,
			WorkflowStatus: a.WorkflowStatus.OrOpen(),
			Expired:        days < 0,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DaysRemaining < out[j].DaysRemaining })
	return out
}

// RegulationDeadline flags a regulation-level transition deadline.
type RegulationDeadline struct {
	domain.Regulation
	DaysRemaining int  `json:"daysRemaining"`
	Expired       bool `json:"expired"`
}

// RegulationDeadlineWarnings lists catalogue regulations, restricted to
// the selected set, whose transition deadline falls within the next 180
// days or has passed. Sorted by days remaining ascending.
func (s *Store) RegulationDeadlineWarnings(selected []string) []RegulationDeadline {
	s.mu.RLock()
	defer s.mu.RUnlock()
	now := s.now()
	selectedSet := map[string]bool{}
	for _, v := range selected {
		selectedSet[v] = true
	}
	var out []RegulationDeadline
	for _, reg := range s.data.Enums.ComplianceRegulations {
		if reg.Deadline == "" || !selectedSet[reg.Value] {
			continue
		}
		days, ok := daysUntil(now, reg.Deadline)
		if !ok || days > 180 {
			continue
		}
		out = append(out, RegulationDeadline{
			Regulation:    reg.Clone(),
			DaysRemaining: days,
			Expired:       days < 0,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DaysRemaining < out[j].DaysRemaining })
	return out
}

// daysUntil parses a deadline and returns the whole days from now to it,
// rounded up, so a deadline later today counts as 0 or 1 rather than -1.
func daysUntil(now time.Time, deadline string) (int, bool) {
	dl, err := time.Parse("2006-01-02", deadline)
	if err != nil {
		dl, err = time.Parse(time.RFC3339, deadline)
		if err != nil {
			return 0, false
		}
	}
	return int(math.Ceil(dl.Sub(now).Hours() / 24)), true
}

// AutoAssignRegulations returns the catalogue regulations, restricted to
// the selected set, that apply to the app based on its criticality and
// data classification. A regulation with no criticality restrictions
// matches any app; a scope list matches when it is empty, contains
// "alle", or contains the app's data classification.
func (s *Store) AutoAssignRegulations(app domain.Application, selected []string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	selectedSet := map[string]bool{}
	for _, v := range selected {
		selectedSet[v] = true
	}
	var assigned []string
	for _, reg := range s.data.Enums.ComplianceRegulations {
		if !selectedSet[reg.Value] {
			continue
		}
		critMatch := len(reg.ApplicableCriticalities) == 0 || containsString(reg.ApplicableCriticalities, app.Criticality)
		scopeMatch := len(reg.ApplicableScopes) == 0 ||
			containsString(reg.ApplicableScopes, "alle") ||
			containsString(reg.ApplicableScopes, app.DataClassification)
		if critMatch && scopeMatch {
			assigned = append(assigned, reg.Value)
		}
	}
	return assigned
}

func containsString(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

// DomainScorecard aggregates assessment outcomes for the applications
// mapped into one domain's capabilities.
type DomainScorecard struct {
	DomainID     int    `json:"domainId"`
	DomainName   string `json:"domainName"`
	DomainColor  string `json:"domainColor,omitempty"`
	AppCount     int    `json:"appCount"`
	Total        int    `json:"total"`
	Compliant    int    `json:"compliant"`
	Partial      int    `json:"partial"`
	NonCompliant int    `json:"nonCompliant"`
	NotAssessed  int    `json:"notAssessed"`
	Score        int    `json:"score"`
}

// ComplianceScorecardByDomain grades each domain on the assessments of
// the applications mapped into it: score is round(100 * (compliant +
// 0.5*partial) / total). Domains with no applicable regulations are
// omitted. Sorted by score descending.
func (s *Store) ComplianceScorecardByDomain() []DomainScorecard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []DomainScorecard
	for _, d := range s.data.Domains {
		capIDs := map[string]bool{}
		for _, c := range d.Capabilities {
			capIDs[c.ID] = true
		}
		seen := map[string]bool{}
		var appIDs []string
		for _, m := range s.data.CapabilityMappings {
			if capIDs[m.CapabilityID] && !seen[m.ApplicationID] {
				seen[m.ApplicationID] = true
				appIDs = append(appIDs, m.ApplicationID)
			}
		}
		card := DomainScorecard{DomainID: d.ID, DomainName: d.Name, DomainColor: d.Color}
		for _, appID := range appIDs {
			var app *domain.Application
			for i := range s.data.Applications {
				if s.data.Applications[i].ID == appID {
					app = &s.data.Applications[i]
					break
				}
			}
			if app == nil {
				continue
			}
			card.AppCount++
			for _, reg := range app.Regulations {
				card.Total++
				assessment, found := findAssessment(s.data.ComplianceAssessments, app.ID, reg)
				switch {
				case !found || assessment.Status == domain.ComplianceNotAssessed:
					card.NotAssessed++
				case assessment.Status == domain.ComplianceCompliant:
					card.Compliant++
				case assessment.Status == domain.CompliancePartial:
					card.Partial++
				default:
					card.NonCompliant++
				}
			}
		}
		if card.Total == 0 {
			continue
		}
		card.Score = int(math.Round((float64(card.Compliant) + 0.5*float64(card.Partial)) / float64(card.Total) * 100))
		out = append(out, card)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}
