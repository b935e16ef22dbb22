package core

import (
	"sort"

	"archcore/pkg/domain"
)

// AppWithRole pairs an application with the role it plays for a
// capability.
type AppWithRole struct {
	domain.Application
	Role string `json:"role,omitempty"`
}

// AppsForCapability returns the applications mapped to a capability,
// each annotated with its mapping role. Mappings to deleted apps are
// skipped.
func (s *Store) AppsForCapability(capID string) []AppWithRole {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []AppWithRole
	for _, m := range s.data.CapabilityMappings {
		if m.CapabilityID != capID {
			continue
		}
		for _, app := range s.data.Applications {
			if app.ID == m.ApplicationID {
				out = append(out, AppWithRole{Application: app.Clone(), Role: m.Role})
				break
			}
		}
	}
	return out
}

// CapabilityRef is a capability resolved through a mapping, carrying its
// owning domain and the mapping role.
type CapabilityRef struct {
	domain.Capability
	DomainID   int    `json:"domainId"`
	DomainName string `json:"domainName"`
	Role       string `json:"role,omitempty"`
}

// CapabilitiesForApp returns the capabilities an application is mapped
// to. Mappings to deleted capabilities are skipped.
func (s *Store) CapabilitiesForApp(appID string) []CapabilityRef {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []CapabilityRef
	for _, m := range s.data.CapabilityMappings {
		if m.ApplicationID != appID {
			continue
		}
		if ref, ok := s.resolveCapability(m.CapabilityID, m.Role); ok {
			out = append(out, ref)
		}
	}
	return out
}

func (s *Store) resolveCapability(capID, role string) (CapabilityRef, bool) {
	for _, d := range s.data.Domains {
		for _, c := range d.Capabilities {
			if c.ID == capID {
				return CapabilityRef{Capability: c.Clone(), DomainID: d.ID, DomainName: d.Name, Role: role}, true
			}
		}
	}
	return CapabilityRef{}, false
}

// ProcessesForDomain returns processes spanning the given domain.
func (s *Store) ProcessesForDomain(domainID int) []domain.E2EProcess {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.E2EProcess
	for _, p := range s.data.E2EProcesses {
		for _, d := range p.Domains {
			if d == domainID {
				out = append(out, p.Clone())
				break
			}
		}
	}
	return out
}

// ProcessApp is an application participating in a process, either
// assigned directly or derived through the domain, capability, mapping
// chain.
type ProcessApp struct {
	domain.Application
	CapCount int      `json:"capCount"`
	Roles    []string `json:"roles,omitempty"`
	Source   string   `json:"source"`
}

// AppsForProcess resolves the applications of a process. Direct
// assignments take priority and are returned in assignment order with
// their capability counts. Otherwise apps are derived via the process
// domains: each mapping of a domain capability contributes one touch, and
// the result is sorted by touch count descending.
func (s *Store) AppsForProcess(processID string) []ProcessApp {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var proc *domain.E2EProcess
	for i := range s.data.E2EProcesses {
		if s.data.E2EProcesses[i].ID == processID {
			proc = &s.data.E2EProcesses[i]
			break
		}
	}
	if proc == nil {
		return nil
	}

	if len(proc.ApplicationIDs) > 0 {
		var out []ProcessApp
		for _, appID := range proc.ApplicationIDs {
			for _, app := range s.data.Applications {
				if app.ID != appID {
					continue
				}
				caps := 0
				for _, m := range s.data.CapabilityMappings {
					if m.ApplicationID == appID {
						caps++
					}
				}
				out = append(out, ProcessApp{
					Application: app.Clone(),
					CapCount:    caps,
					Roles:       []string{"Direct"},
					Source:      "direct",
				})
				break
			}
		}
		return out
	}

	type agg struct {
		app   domain.Application
		roles []string
		seen  map[string]bool
		count int
	}
	byApp := map[string]*agg{}
	var order []string
	for _, domainID := range proc.Domains {
		for _, d := range s.data.Domains {
			if d.ID != domainID {
				continue
			}
			for _, c := range d.Capabilities {
				for _, m := range s.data.CapabilityMappings {
					if m.CapabilityID != c.ID {
						continue
					}
					for _, app := range s.data.Applications {
						if app.ID != m.ApplicationID {
							continue
						}
						a, ok := byApp[app.ID]
						if !ok {
							a = &agg{app: app, seen: map[string]bool{}}
							byApp[app.ID] = a
							order = append(order, app.ID)
						}
						if !a.seen[m.Role] {
							a.seen[m.Role] = true
							a.roles = append(a.roles, m.Role)
						}
						a.count++
						break
					}
				}
			}
			break
		}
	}
	out := make([]ProcessApp, 0, len(order))
	for _, appID := range order {
		a := byApp[appID]
		out = append(out, ProcessApp{
			Application: a.app.Clone(),
			CapCount:    a.count,
			Roles:       a.roles,
			Source:      "derived",
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CapCount > out[j].CapCount })
	return out
}

// ProcessHasDirectApps reports whether a process carries direct app
// assignments.
func (s *Store) ProcessHasDirectApps(processID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.data.E2EProcesses {
		if p.ID == processID {
			return len(p.ApplicationIDs) > 0
		}
	}
	return false
}

// ProcessesForApp finds processes touching an application through the
// mapping chain: the app's capabilities resolve to domains, and any
// process spanning one of those domains matches.
func (s *Store) ProcessesForApp(appID string) []domain.E2EProcess {
	s.mu.RLock()
	defer s.mu.RUnlock()
	domainIDs := map[int]bool{}
	for _, m := range s.data.CapabilityMappings {
		if m.ApplicationID != appID {
			continue
		}
		for _, d := range s.data.Domains {
			for _, c := range d.Capabilities {
				if c.ID == m.CapabilityID {
					domainIDs[d.ID] = true
				}
			}
		}
	}
	var out []domain.E2EProcess
	for _, p := range s.data.E2EProcesses {
		for _, d := range p.Domains {
			if domainIDs[d] {
				out = append(out, p.Clone())
				break
			}
		}
	}
	return out
}

// AppsForVendor returns applications referencing the vendor, matching the
// multi-vendor array by id or name and falling back to the legacy single
// vendor fields.
func (s *Store) AppsForVendor(vendorID string) []domain.Application {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var vendor *domain.Vendor
	for i := range s.data.Vendors {
		if s.data.Vendors[i].ID == vendorID {
			vendor = &s.data.Vendors[i]
			break
		}
	}
	if vendor == nil {
		return nil
	}
	var out []domain.Application
	for _, app := range s.data.Applications {
		if len(app.Vendors) > 0 {
			for _, link := range app.Vendors {
				if link.VendorID == vendorID || link.VendorName == vendor.Name {
					out = append(out, app.Clone())
					break
				}
			}
			continue
		}
		if app.Vendor == vendor.Name || app.VendorID == vendorID {
			out = append(out, app.Clone())
		}
	}
	return out
}

// ResolvedVendorLink is a vendor link with its vendor record resolved,
// when one exists.
type ResolvedVendorLink struct {
	domain.VendorLink
	Vendor *domain.Vendor `json:"vendorRecord,omitempty"`
}

// VendorLinksForApp normalizes an application's vendor references into
// link form. Apps with a multi-vendor array get each entry resolved by id
// first, then by name. Apps with only the legacy fields yield a single
// synthesized link in the "Hersteller" role; apps with no vendor
// information yield nothing.
func (s *Store) VendorLinksForApp(appID string) []ResolvedVendorLink {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var app *domain.Application
	for i := range s.data.Applications {
		if s.data.Applications[i].ID == appID {
			app = &s.data.Applications[i]
			break
		}
	}
	if app == nil {
		return nil
	}
	if len(app.Vendors) > 0 {
		out := make([]ResolvedVendorLink, 0, len(app.Vendors))
		for _, link := range app.Vendors {
			resolved := ResolvedVendorLink{VendorLink: link}
			if link.VendorID != "" {
				resolved.Vendor = s.vendorByIDLocked(link.VendorID)
			}
			if resolved.Vendor == nil && link.VendorName != "" {
				resolved.Vendor = s.vendorByNameLocked(link.VendorName)
			}
			out = append(out, resolved)
		}
		return out
	}
	var record *domain.Vendor
	if app.VendorID != "" {
		record = s.vendorByIDLocked(app.VendorID)
	}
	if record == nil && app.Vendor != "" {
		record = s.vendorByNameLocked(app.Vendor)
	}
	if record == nil && app.Vendor == "" {
		return nil
	}
	link := ResolvedVendorLink{
		VendorLink: domain.VendorLink{Role: "Hersteller", VendorName: app.Vendor},
		Vendor:     record,
	}
	if record != nil {
		link.VendorID = record.ID
		if link.VendorName == "" {
			link.VendorName = record.Name
		}
	}
	return []ResolvedVendorLink{link}
}

func (s *Store) vendorByIDLocked(id string) *domain.Vendor {
	for _, v := range s.data.Vendors {
		if v.ID == id {
			vc := v
			return &vc
		}
	}
	return nil
}

func (s *Store) vendorByNameLocked(name string) *domain.Vendor {
	for _, v := range s.data.Vendors {
		if v.Name == name {
			vc := v
			return &vc
		}
	}
	return nil
}

// PrimaryVendorForApp returns the app's manufacturer vendor record: the
// link in the "Hersteller" role, or the first link otherwise.
func (s *Store) PrimaryVendorForApp(appID string) (domain.Vendor, bool) {
	links := s.VendorLinksForApp(appID)
	if len(links) == 0 {
		return domain.Vendor{}, false
	}
	chosen := links[0]
	for _, link := range links {
		if link.Role == "Hersteller" {
			chosen = link
			break
		}
	}
	if chosen.Vendor == nil {
		return domain.Vendor{}, false
	}
	return *chosen.Vendor, true
}

// VendorRoleForApp returns the role a vendor plays for an app, from the
// multi-vendor array only.
func (s *Store) VendorRoleForApp(vendorID, appID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, app := range s.data.Applications {
		if app.ID != appID {
			continue
		}
		for _, link := range app.Vendors {
			if link.VendorID == vendorID {
				return link.Role, true
			}
		}
		return "", false
	}
	return "", false
}

// AppsForEntity returns applications assigned to a legal entity.
func (s *Store) AppsForEntity(entityID string) []domain.Application {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Application
	for _, app := range s.data.Applications {
		for _, e := range app.Entities {
			if e == entityID {
				out = append(out, app.Clone())
				break
			}
		}
	}
	return out
}

// EntitiesForApp resolves an application's entity id list to records,
// skipping dangling ids.
func (s *Store) EntitiesForApp(appID string) []domain.LegalEntity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var app *domain.Application
	for i := range s.data.Applications {
		if s.data.Applications[i].ID == appID {
			app = &s.data.Applications[i]
			break
		}
	}
	if app == nil {
		return nil
	}
	var out []domain.LegalEntity
	for _, id := range app.Entities {
		for _, e := range s.data.LegalEntities {
			if e.ID == id {
				out = append(out, e.Clone())
				break
			}
		}
	}
	return out
}

// DemandsForDomain returns demands whose primary or related domains
// include the given domain.
func (s *Store) DemandsForDomain(domainID int) []domain.Demand {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Demand
	for _, d := range s.data.Demands {
		if d.PrimaryDomain != nil && *d.PrimaryDomain == domainID {
			out = append(out, d.Clone())
			continue
		}
		for _, rd := range d.RelatedDomains {
			if rd == domainID {
				out = append(out, d.Clone())
				break
			}
		}
	}
	return out
}

// DemandsForApp returns demands referencing the application.
func (s *Store) DemandsForApp(appID string) []domain.Demand {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Demand
	for _, d := range s.data.Demands {
		for _, a := range d.RelatedApps {
			if a == appID {
				out = append(out, d.Clone())
				break
			}
		}
	}
	return out
}

// DemandsForVendor returns demands referencing the vendor.
func (s *Store) DemandsForVendor(vendorID string) []domain.Demand {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Demand
	for _, d := range s.data.Demands {
		for _, v := range d.RelatedVendors {
			if v == vendorID {
				out = append(out, d.Clone())
				break
			}
		}
	}
	return out
}

// IntegrationsForApp returns integrations where the app is source or
// target.
func (s *Store) IntegrationsForApp(appID string) []domain.Integration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Integration
	for _, in := range s.data.Integrations {
		if in.SourceAppID == appID || in.TargetAppID == appID {
			out = append(out, in)
		}
	}
	return out
}

// DataObjectsForApp returns data objects the app sources or consumes.
func (s *Store) DataObjectsForApp(appID string) []domain.DataObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.DataObject
	for _, o := range s.data.DataObjects {
		if containsString(o.SourceAppIDs, appID) || containsString(o.ConsumingAppIDs, appID) {
			out = append(out, o.Clone())
		}
	}
	return out
}

// DataObjectApps are the applications around one data object, split by
// direction.
type DataObjectApps struct {
	Source    []domain.Application `json:"source"`
	Consuming []domain.Application `json:"consuming"`
}

// AppsForDataObject resolves a data object's source and consuming app id
// lists, skipping dangling ids.
func (s *Store) AppsForDataObject(dataObjectID string) DataObjectApps {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := DataObjectApps{Source: []domain.Application{}, Consuming: []domain.Application{}}
	var obj *domain.DataObject
	for i := range s.data.DataObjects {
		if s.data.DataObjects[i].ID == dataObjectID {
			obj = &s.data.DataObjects[i]
			break
		}
	}
	if obj == nil {
		return out
	}
	for _, id := range obj.SourceAppIDs {
		for _, app := range s.data.Applications {
			if app.ID == id {
				out.Source = append(out.Source, app.Clone())
				break
			}
		}
	}
	for _, id := range obj.ConsumingAppIDs {
		for _, app := range s.data.Applications {
			if app.ID == id {
				out.Consuming = append(out.Consuming, app.Clone())
				break
			}
		}
	}
	return out
}
