package core

import (
	"fmt"
	"strings"
)

// SearchResult is one hit of the global full-text search.
type SearchResult struct {
	Type   string `json:"type"`
	ID     string `json:"id"`
	Name   string `json:"name"`
	Detail string `json:"detail"`
	Route  string `json:"route"`
}

// GlobalSearch scans every collection for records whose searchable fields
// contain the query, case-insensitively. A blank or whitespace-only query
// yields no results. Results are grouped by collection in document order:
// applications, then domains with their capabilities, projects, vendors,
// processes, demands, data objects, legal entities, and integrations.
func (s *Store) GlobalSearch(query string) []SearchResult {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := func(fields ...string) bool {
		var sb strings.Builder
		for _, f := range fields {
			if f == "" {
				continue
			}
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(f)
		}
		return strings.Contains(strings.ToLower(sb.String()), q)
	}
	detail := func(parts ...string) string {
		var kept []string
		for _, p := range parts {
			if p != "" {
				kept = append(kept, p)
			}
		}
		return strings.Join(kept, " · ")
	}

	var results []SearchResult

	for _, a := range s.data.Applications {
		if matches(a.ID, a.Name, a.Vendor, a.Category, a.Type, a.Description, a.BusinessOwner, a.ITOwner, a.Criticality, string(a.TimeQuadrant)) {
			results = append(results, SearchResult{
				Type:   "Application",
				ID:     a.ID,
				Name:   a.Name,
				Detail: detail(a.Vendor, a.Category),
				Route:  "/apps/" + a.ID,
			})
		}
	}

	for _, d := range s.data.Domains {
		if matches(d.Name, d.Description, d.DomainOwner, d.StrategicFocus, d.Vision) {
			results = append(results, SearchResult{
				Type:   "Domain",
				ID:     fmt.Sprint(d.ID),
				Name:   d.Name,
				Detail: d.DomainOwner,
				Route:  fmt.Sprintf("/domains/%d", d.ID),
			})
		}
		for _, c := range d.Capabilities {
			if matches(c.ID, c.Name, c.Description) {
				results = append(results, SearchResult{
					Type:   "Capability",
					ID:     c.ID,
					Name:   c.Name,
					Detail: d.Name,
					Route:  fmt.Sprintf("/domains/%d", d.ID),
				})
			}
		}
	}

	for _, p := range s.data.Projects {
		if matches(p.ID, p.Name, p.Category, p.Sponsor, p.ProjectLead, p.StatusText, p.StrategicContribution) {
			results = append(results, SearchResult{
				Type:   "Project",
				ID:     p.ID,
				Name:   p.Name,
				Detail: detail(p.Category, string(p.Status)),
				Route:  "/projects/" + p.ID,
			})
		}
	}

	for _, v := range s.data.Vendors {
		if matches(v.ID, v.Name, v.Category, v.Description, v.ContactPerson, v.VendorManager) {
			results = append(results, SearchResult{
				Type:   "Vendor",
				ID:     v.ID,
				Name:   v.Name,
				Detail: v.Category,
				Route:  "/vendors/" + v.ID,
			})
		}
	}

	for _, p := range s.data.E2EProcesses {
		if matches(p.ID, p.Name, p.Owner, p.Description) {
			results = append(results, SearchResult{
				Type:   "Process",
				ID:     p.ID,
				Name:   p.Name,
				Detail: p.Owner,
				Route:  "/processes/" + p.ID,
			})
		}
	}

	for _, d := range s.data.Demands {
		if matches(d.ID, d.Title, d.Description, d.Category, d.Status, d.RequestedBy, d.BusinessCase) {
			results = append(results, SearchResult{
				Type:   "Demand",
				ID:     d.ID,
				Name:   d.Title,
				Detail: detail(d.Category, d.Status),
				Route:  "/demands/" + d.ID,
			})
		}
	}

	for _, o := range s.data.DataObjects {
		if matches(o.ID, o.Name, o.Description, o.Classification, o.Owner, o.Steward) {
			results = append(results, SearchResult{
				Type:   "DataObject",
				ID:     o.ID,
				Name:   o.Name,
				Detail: detail(o.Classification, o.Owner),
				Route:  "/data-objects/" + o.ID,
			})
		}
	}

	for _, e := range s.data.LegalEntities {
		if matches(e.ID, e.Name, e.ShortName, e.Description, e.Country, e.City, e.Region) {
			entityDetail := e.City
			if entityDetail != "" && e.Country != "" {
				entityDetail += ", " + e.Country
			} else if e.Country != "" {
				entityDetail = e.Country
			}
			results = append(results, SearchResult{
				Type:   "Entity",
				ID:     e.ID,
				Name:   e.Name,
				Detail: entityDetail,
				Route:  "/entities/" + e.ID,
			})
		}
	}

	for _, in := range s.data.Integrations {
		if matches(in.ID, in.Description, in.InterfaceType, in.Protocol, in.DataObjects, in.Status) {
			name := in.Description
			if name == "" {
				name = in.ID
			}
			results = append(results, SearchResult{
				Type:   "Integration",
				ID:     in.ID,
				Name:   name,
				Detail: detail(in.InterfaceType, in.Protocol),
				Route:  "/integration-map",
			})
		}
	}

	return results
}
