package core

import (
	"fmt"

	"archcore/pkg/domain"
)

// DomainByID returns a clone of the domain with the given numeric id.
func (s *Store) DomainByID(id int) (domain.Domain, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.data.Domains {
		if d.ID == id {
			return d.Clone(), true
		}
	}
	return domain.Domain{}, false
}

// Domains returns clones of all domains in document order.
func (s *Store) Domains() []domain.Domain {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Domain, len(s.data.Domains))
	for i, d := range s.data.Domains {
		out[i] = d.Clone()
	}
	return out
}

// AddDomain inserts a domain, assigning the next numeric id (highest
// existing id plus one). Nil capability and KPI collections are
// normalized to empty so the record serializes with arrays.
func (s *Store) AddDomain(d domain.Domain) domain.Domain {
	var added domain.Domain
	s.commit(func(data *domain.Dataset) (domain.Change, bool) {
		max := 0
		for _, existing := range data.Domains {
			if existing.ID > max {
				max = existing.ID
			}
		}
		d.ID = max + 1
		if d.Capabilities == nil {
			d.Capabilities = []domain.Capability{}
		}
		if d.KPIs == nil {
			d.KPIs = []string{}
		}
		data.Domains = append(data.Domains, d.Clone())
		added = d
		return domain.Change{
			Entity:   domain.EntityDomain,
			Action:   domain.ActionCreate,
			EntityID: fmt.Sprint(d.ID),
			After:    domain.NewChangePayloadFromValue(d),
		}, true
	})
	return added
}

// UpdateDomain applies mutate to the domain with the given id. The id
// itself cannot be changed. Returns the updated clone, or false when the
// domain does not exist.
func (s *Store) UpdateDomain(id int, mutate func(*domain.Domain)) (domain.Domain, bool) {
	var (
		updated domain.Domain
		found   bool
	)
	s.commit(func(data *domain.Dataset) (domain.Change, bool) {
		for i := range data.Domains {
			if data.Domains[i].ID != id {
				continue
			}
			before := domain.NewChangePayloadFromValue(data.Domains[i])
			next := data.Domains[i].Clone()
			mutate(&next)
			next.ID = id
			data.Domains[i] = next
			updated = next.Clone()
			found = true
			return domain.Change{
				Entity:   domain.EntityDomain,
				Action:   domain.ActionUpdate,
				EntityID: fmt.Sprint(id),
				Before:   before,
				After:    domain.NewChangePayloadFromValue(next),
			}, true
		}
		return domain.Change{}, false
	})
	return updated, found
}

// DeleteDomain removes a domain and cascades: mappings referencing any of
// its capabilities are dropped, projects lose references to the domain and
// its capability ids, and processes drop the domain from their domain
// lists. Deleting an unknown id is a silent no-op.
func (s *Store) DeleteDomain(id int) {
	s.commit(func(data *domain.Dataset) (domain.Change, bool) {
		idx := -1
		for i := range data.Domains {
			if data.Domains[i].ID == id {
				idx = i
				break
			}
		}
		if idx == -1 {
			return domain.Change{}, false
		}
		removed := data.Domains[idx]
		capIDs := map[string]bool{}
		for _, c := range removed.Capabilities {
			capIDs[c.ID] = true
		}

		kept := data.CapabilityMappings[:0]
		for _, m := range data.CapabilityMappings {
			if !capIDs[m.CapabilityID] {
				kept = append(kept, m)
			}
		}
		data.CapabilityMappings = kept

		for i := range data.Projects {
			p := &data.Projects[i]
			if p.PrimaryDomain != nil && *p.PrimaryDomain == id {
				p.PrimaryDomain = nil
			}
			if p.SecondaryDomains != nil {
				p.SecondaryDomains = removeInt(p.SecondaryDomains, id)
			}
			if p.Capabilities != nil {
				filtered := p.Capabilities[:0]
				for _, capID := range p.Capabilities {
					if !capIDs[capID] {
						filtered = append(filtered, capID)
					}
				}
				p.Capabilities = filtered
			}
		}

		for i := range data.E2EProcesses {
			if data.E2EProcesses[i].Domains != nil {
				data.E2EProcesses[i].Domains = removeInt(data.E2EProcesses[i].Domains, id)
			}
		}

		data.Domains = append(data.Domains[:idx], data.Domains[idx+1:]...)
		return domain.Change{
			Entity:   domain.EntityDomain,
			Action:   domain.ActionDelete,
			EntityID: fmt.Sprint(id),
			Before:   domain.NewChangePayloadFromValue(removed),
		}, true
	})
}

func removeInt(in []int, v int) []int {
	out := in[:0]
	for _, x := range in {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}

// CapabilityByID returns clones of the capability and its owning domain.
func (s *Store) CapabilityByID(capID string) (domain.Capability, domain.Domain, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.data.Domains {
		for _, c := range d.Capabilities {
			if c.ID == capID {
				return c.Clone(), d.Clone(), true
			}
		}
	}
	return domain.Capability{}, domain.Domain{}, false
}

// DomainForCapability returns the domain owning the given capability.
func (s *Store) DomainForCapability(capID string) (domain.Domain, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.data.Domains {
		for _, c := range d.Capabilities {
			if c.ID == capID {
				return d.Clone(), true
			}
		}
	}
	return domain.Domain{}, false
}

// AddCapability appends a capability to the given domain. An empty id is
// replaced by "<domainId>.<position>" where position is the current
// capability count plus one. A zero target maturity defaults to the
// current maturity, or 1 when that is also unset. No-op when the domain
// does not exist.
func (s *Store) AddCapability(domainID int, cap domain.Capability) (domain.Capability, bool) {
	var (
		added domain.Capability
		found bool
	)
	s.commit(func(data *domain.Dataset) (domain.Change, bool) {
		for i := range data.Domains {
			d := &data.Domains[i]
			if d.ID != domainID {
				continue
			}
			if cap.ID == "" {
				cap.ID = fmt.Sprintf("%d.%d", d.ID, len(d.Capabilities)+1)
			}
			if cap.SubCapabilities == nil {
				cap.SubCapabilities = []domain.SubCapability{}
			}
			if cap.TargetMaturity == 0 {
				if cap.Maturity > 0 {
					cap.TargetMaturity = cap.Maturity
				} else {
					cap.TargetMaturity = 1
				}
			}
			d.Capabilities = append(d.Capabilities, cap.Clone())
			added = cap
			found = true
			return domain.Change{
				Entity:   domain.EntityCapability,
				Action:   domain.ActionCreate,
				EntityID: cap.ID,
				After:    domain.NewChangePayloadFromValue(cap),
			}, true
		}
		return domain.Change{}, false
	})
	return added, found
}

// UpdateCapability applies mutate to the capability with the given id,
// wherever it lives. The id cannot be changed.
func (s *Store) UpdateCapability(capID string, mutate func(*domain.Capability)) (domain.Capability, bool) {
	var (
		updated domain.Capability
		found   bool
	)
	s.commit(func(data *domain.Dataset) (domain.Change, bool) {
		for i := range data.Domains {
			caps := data.Domains[i].Capabilities
			for j := range caps {
				if caps[j].ID != capID {
					continue
				}
				before := domain.NewChangePayloadFromValue(caps[j])
				next := caps[j].Clone()
				mutate(&next)
				next.ID = capID
				caps[j] = next
				updated = next.Clone()
				found = true
				return domain.Change{
					Entity:   domain.EntityCapability,
					Action:   domain.ActionUpdate,
					EntityID: capID,
					Before:   before,
					After:    domain.NewChangePayloadFromValue(next),
				}, true
			}
		}
		return domain.Change{}, false
	})
	return updated, found
}

// DeleteCapability removes a capability and cascades: mappings for the
// capability are dropped and projects lose the capability id from their
// capability lists. The cascade filters run even when no capability with
// the id exists, clearing any dangling references.
func (s *Store) DeleteCapability(capID string) {
	s.commit(func(data *domain.Dataset) (domain.Change, bool) {
		kept := data.CapabilityMappings[:0]
		dropped := false
		for _, m := range data.CapabilityMappings {
			if m.CapabilityID == capID {
				dropped = true
				continue
			}
			kept = append(kept, m)
		}
		data.CapabilityMappings = kept

		for i := range data.Projects {
			p := &data.Projects[i]
			if p.Capabilities == nil {
				continue
			}
			filtered := p.Capabilities[:0]
			for _, id := range p.Capabilities {
				if id == capID {
					dropped = true
					continue
				}
				filtered = append(filtered, id)
			}
			p.Capabilities = filtered
		}

		for i := range data.Domains {
			caps := data.Domains[i].Capabilities
			for j := range caps {
				if caps[j].ID != capID {
					continue
				}
				removed := caps[j]
				data.Domains[i].Capabilities = append(caps[:j], caps[j+1:]...)
				return domain.Change{
					Entity:   domain.EntityCapability,
					Action:   domain.ActionDelete,
					EntityID: capID,
					Before:   domain.NewChangePayloadFromValue(removed),
				}, true
			}
		}
		if dropped {
			return domain.Change{
				Entity:   domain.EntityCapability,
				Action:   domain.ActionDelete,
				EntityID: capID,
			}, true
		}
		return domain.Change{}, false
	})
}

// AddSubCapability appends a sub-capability to the given capability. An
// empty id is replaced by "<capId>.<position>". No-op when the capability
// does not exist.
func (s *Store) AddSubCapability(capID string, sub domain.SubCapability) (domain.SubCapability, bool) {
	var (
		added domain.SubCapability
		found bool
	)
	s.commit(func(data *domain.Dataset) (domain.Change, bool) {
		for i := range data.Domains {
			caps := data.Domains[i].Capabilities
			for j := range caps {
				if caps[j].ID != capID {
					continue
				}
				if sub.ID == "" {
					sub.ID = fmt.Sprintf("%s.%d", capID, len(caps[j].SubCapabilities)+1)
				}
				caps[j].SubCapabilities = append(caps[j].SubCapabilities, sub)
				added = sub
				found = true
				return domain.Change{
					Entity:   domain.EntitySubCapability,
					Action:   domain.ActionCreate,
					EntityID: sub.ID,
					After:    domain.NewChangePayloadFromValue(sub),
				}, true
			}
		}
		return domain.Change{}, false
	})
	return added, found
}

// DeleteSubCapability removes a sub-capability from the given capability.
func (s *Store) DeleteSubCapability(capID, subID string) {
	s.commit(func(data *domain.Dataset) (domain.Change, bool) {
		for i := range data.Domains {
			caps := data.Domains[i].Capabilities
			for j := range caps {
				if caps[j].ID != capID {
					continue
				}
				subs := caps[j].SubCapabilities
				for k := range subs {
					if subs[k].ID != subID {
						continue
					}
					removed := subs[k]
					caps[j].SubCapabilities = append(subs[:k], subs[k+1:]...)
					return domain.Change{
						Entity:   domain.EntitySubCapability,
						Action:   domain.ActionDelete,
						EntityID: subID,
						Before:   domain.NewChangePayloadFromValue(removed),
					}, true
				}
				return domain.Change{}, false
			}
		}
		return domain.Change{}, false
	})
}
