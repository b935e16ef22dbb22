package core

import "archcore/pkg/domain"

// AppByID returns a clone of the application with the given id.
func (s *Store) AppByID(id string) (domain.Application, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.data.Applications {
		if a.ID == id {
			return a.Clone(), true
		}
	}
	return domain.Application{}, false
}

// Applications returns clones of all applications in document order.
func (s *Store) Applications() []domain.Application {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Application, len(s.data.Applications))
	for i, a := range s.data.Applications {
		out[i] = a.Clone()
	}
	return out
}

// AddApp inserts an application. An empty id is replaced by the next
// APP-NNN serial; a caller-supplied id is kept verbatim.
func (s *Store) AddApp(app domain.Application) domain.Application {
	var added domain.Application
	s.commit(func(data *domain.Dataset) (domain.Change, bool) {
		if app.ID == "" {
			ids := make([]string, len(data.Applications))
			for i, a := range data.Applications {
				ids[i] = a.ID
			}
			app.ID = nextSerialID("APP", ids)
		}
		data.Applications = append(data.Applications, app.Clone())
		added = app
		return domain.Change{
			Entity:   domain.EntityApplication,
			Action:   domain.ActionCreate,
			EntityID: app.ID,
			After:    domain.NewChangePayloadFromValue(app),
		}, true
	})
	return added
}

// UpdateApp applies mutate to the application with the given id. The id
// cannot be changed. Unknown ids are a silent no-op.
func (s *Store) UpdateApp(id string, mutate func(*domain.Application)) (domain.Application, bool) {
	var (
		updated domain.Application
		found   bool
	)
	s.commit(func(data *domain.Dataset) (domain.Change, bool) {
		for i := range data.Applications {
			if data.Applications[i].ID != id {
				continue
			}
			before := domain.NewChangePayloadFromValue(data.Applications[i])
			next := data.Applications[i].Clone()
			mutate(&next)
			next.ID = id
			data.Applications[i] = next
			updated = next.Clone()
			found = true
			return domain.Change{
				Entity:   domain.EntityApplication,
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

// DeleteApp removes an application and cascades: every capability mapping
// referencing it is dropped, and every project loses it from its
// affected-apps list. No-op when the id is unknown.
func (s *Store) DeleteApp(id string) {
	s.commit(func(data *domain.Dataset) (domain.Change, bool) {
		idx := -1
		for i := range data.Applications {
			if data.Applications[i].ID == id {
				idx = i
				break
			}
		}
		if idx == -1 {
			return domain.Change{}, false
		}
		removed := data.Applications[idx]
		data.Applications = append(data.Applications[:idx], data.Applications[idx+1:]...)

		kept := data.CapabilityMappings[:0]
		for _, m := range data.CapabilityMappings {
			if m.ApplicationID != id {
				kept = append(kept, m)
			}
		}
		data.CapabilityMappings = kept

		for i := range data.Projects {
			p := &data.Projects[i]
			if p.AffectedApps == nil {
				continue
			}
			filtered := p.AffectedApps[:0]
			for _, aa := range p.AffectedApps {
				if aa.AppID != id {
					filtered = append(filtered, aa)
				}
			}
			p.AffectedApps = filtered
		}

		return domain.Change{
			Entity:   domain.EntityApplication,
			Action:   domain.ActionDelete,
			EntityID: id,
			Before:   domain.NewChangePayloadFromValue(removed),
		}, true
	})
}

// Mappings returns a copy of all capability mappings.
func (s *Store) Mappings() []domain.CapabilityMapping {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.CapabilityMapping(nil), s.data.CapabilityMappings...)
}

// AddMapping links a capability to an application. The (capability,
// application) pair is unique: adding an existing pair is a no-op, even
// with a different role. An empty role defaults to "Primary". Neither
// endpoint is required to exist.
func (s *Store) AddMapping(capID, appID, role string) {
	s.commit(func(data *domain.Dataset) (domain.Change, bool) {
		for _, m := range data.CapabilityMappings {
			if m.CapabilityID == capID && m.ApplicationID == appID {
				return domain.Change{}, false
			}
		}
		if role == "" {
			role = "Primary"
		}
		m := domain.CapabilityMapping{CapabilityID: capID, ApplicationID: appID, Role: role}
		data.CapabilityMappings = append(data.CapabilityMappings, m)
		return domain.Change{
			Entity:   domain.EntityMapping,
			Action:   domain.ActionCreate,
			EntityID: capID + ":" + appID,
			After:    domain.NewChangePayloadFromValue(m),
		}, true
	})
}

// RemoveMapping unlinks a capability from an application.
func (s *Store) RemoveMapping(capID, appID string) {
	s.commit(func(data *domain.Dataset) (domain.Change, bool) {
		for i, m := range data.CapabilityMappings {
			if m.CapabilityID == capID && m.ApplicationID == appID {
				data.CapabilityMappings = append(data.CapabilityMappings[:i], data.CapabilityMappings[i+1:]...)
				return domain.Change{
					Entity:   domain.EntityMapping,
					Action:   domain.ActionDelete,
					EntityID: capID + ":" + appID,
					Before:   domain.NewChangePayloadFromValue(m),
				}, true
			}
		}
		return domain.Change{}, false
	})
}
