package core

import "archcore/pkg/domain"

// ProjectByID returns a clone of the project with the given id.
func (s *Store) ProjectByID(id string) (domain.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.data.Projects {
		if p.ID == id {
			return p.Clone(), true
		}
	}
	return domain.Project{}, false
}

// Projects returns clones of all projects in document order.
func (s *Store) Projects() []domain.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Project, len(s.data.Projects))
	for i, p := range s.data.Projects {
		out[i] = p.Clone()
	}
	return out
}

// AddProject inserts a project, assigning the next PRJ-NNN serial when no
// id is supplied.
func (s *Store) AddProject(p domain.Project) domain.Project {
	var added domain.Project
	s.commit(func(data *domain.Dataset) (domain.Change, bool) {
		if p.ID == "" {
			ids := make([]string, len(data.Projects))
			for i, existing := range data.Projects {
				ids[i] = existing.ID
			}
			p.ID = nextSerialID("PRJ", ids)
		}
		data.Projects = append(data.Projects, p.Clone())
		added = p
		return domain.Change{
			Entity:   domain.EntityProject,
			Action:   domain.ActionCreate,
			EntityID: p.ID,
			After:    domain.NewChangePayloadFromValue(p),
		}, true
	})
	return added
}

// UpdateProject applies mutate to the project with the given id.
func (s *Store) UpdateProject(id string, mutate func(*domain.Project)) (domain.Project, bool) {
	var (
		updated domain.Project
		found   bool
	)
	s.commit(func(data *domain.Dataset) (domain.Change, bool) {
		for i := range data.Projects {
			if data.Projects[i].ID != id {
				continue
			}
			before := domain.NewChangePayloadFromValue(data.Projects[i])
			next := data.Projects[i].Clone()
			mutate(&next)
			next.ID = id
			data.Projects[i] = next
			updated = next.Clone()
			found = true
			return domain.Change{
				Entity:   domain.EntityProject,
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

// DeleteProject removes a project and every dependency edge that touches
// it, as source or as target.
func (s *Store) DeleteProject(id string) {
	s.commit(func(data *domain.Dataset) (domain.Change, bool) {
		idx := -1
		for i := range data.Projects {
			if data.Projects[i].ID == id {
				idx = i
				break
			}
		}
		if idx == -1 {
			return domain.Change{}, false
		}
		removed := data.Projects[idx]
		data.Projects = append(data.Projects[:idx], data.Projects[idx+1:]...)

		kept := data.ProjectDependencies[:0]
		for _, dep := range data.ProjectDependencies {
			if dep.SourceProjectID != id && dep.TargetProjectID != id {
				kept = append(kept, dep)
			}
		}
		data.ProjectDependencies = kept

		return domain.Change{
			Entity:   domain.EntityProject,
			Action:   domain.ActionDelete,
			EntityID: id,
			Before:   domain.NewChangePayloadFromValue(removed),
		}, true
	})
}

// AddDependency records a directed dependency edge between projects. Edges
// are not deduplicated; endpoints are not validated.
func (s *Store) AddDependency(dep domain.ProjectDependency) {
	s.commit(func(data *domain.Dataset) (domain.Change, bool) {
		data.ProjectDependencies = append(data.ProjectDependencies, dep)
		return domain.Change{
			Entity:   domain.EntityProjectDependency,
			Action:   domain.ActionCreate,
			EntityID: dep.SourceProjectID + ":" + dep.TargetProjectID,
			After:    domain.NewChangePayloadFromValue(dep),
		}, true
	})
}

// RemoveDependency drops every edge with the given source and target, in
// that direction only.
func (s *Store) RemoveDependency(sourceID, targetID string) {
	s.commit(func(data *domain.Dataset) (domain.Change, bool) {
		kept := data.ProjectDependencies[:0]
		dropped := false
		for _, dep := range data.ProjectDependencies {
			if dep.SourceProjectID == sourceID && dep.TargetProjectID == targetID {
				dropped = true
				continue
			}
			kept = append(kept, dep)
		}
		data.ProjectDependencies = kept
		if !dropped {
			return domain.Change{}, false
		}
		return domain.Change{
			Entity:   domain.EntityProjectDependency,
			Action:   domain.ActionDelete,
			EntityID: sourceID + ":" + targetID,
		}, true
	})
}

// DepsForProject returns every dependency edge touching the project.
func (s *Store) DepsForProject(id string) []domain.ProjectDependency {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.ProjectDependency
	for _, dep := range s.data.ProjectDependencies {
		if dep.SourceProjectID == id || dep.TargetProjectID == id {
			out = append(out, dep)
		}
	}
	return out
}

// ProjectsForDomain returns projects whose primary or secondary domains
// include the given domain id.
func (s *Store) ProjectsForDomain(domainID int) []domain.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Project
	for _, p := range s.data.Projects {
		if p.PrimaryDomain != nil && *p.PrimaryDomain == domainID {
			out = append(out, p.Clone())
			continue
		}
		for _, d := range p.SecondaryDomains {
			if d == domainID {
				out = append(out, p.Clone())
				break
			}
		}
	}
	return out
}
