package core

import "archcore/pkg/domain"

// VendorByID returns the vendor with the given id.
func (s *Store) VendorByID(id string) (domain.Vendor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, v := range s.data.Vendors {
		if v.ID == id {
			return v, true
		}
	}
	return domain.Vendor{}, false
}

// Vendors returns a copy of all vendors.
func (s *Store) Vendors() []domain.Vendor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Vendor(nil), s.data.Vendors...)
}

// AddVendor inserts a vendor, assigning the next VND-NNN serial when no id
// is supplied.
func (s *Store) AddVendor(v domain.Vendor) domain.Vendor {
	var added domain.Vendor
	s.commit(func(data *domain.Dataset) (domain.Change, bool) {
		if v.ID == "" {
			ids := make([]string, len(data.Vendors))
			for i, existing := range data.Vendors {
				ids[i] = existing.ID
			}
			v.ID = nextSerialID("VND", ids)
		}
		data.Vendors = append(data.Vendors, v)
		added = v
		return domain.Change{
			Entity:   domain.EntityVendor,
			Action:   domain.ActionCreate,
			EntityID: v.ID,
			After:    domain.NewChangePayloadFromValue(v),
		}, true
	})
	return added
}

// UpdateVendor applies mutate to the vendor with the given id.
func (s *Store) UpdateVendor(id string, mutate func(*domain.Vendor)) (domain.Vendor, bool) {
	var (
		updated domain.Vendor
		found   bool
	)
	s.commit(func(data *domain.Dataset) (domain.Change, bool) {
		for i := range data.Vendors {
			if data.Vendors[i].ID != id {
				continue
			}
			before := domain.NewChangePayloadFromValue(data.Vendors[i])
			next := data.Vendors[i]
			mutate(&next)
			next.ID = id
			data.Vendors[i] = next
			updated = next
			found = true
			return domain.Change{
				Entity:   domain.EntityVendor,
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

// DeleteVendor removes a vendor. Applications keep their vendor
// references; dangling vendor ids are tolerated by the lookup helpers.
func (s *Store) DeleteVendor(id string) {
	s.commit(func(data *domain.Dataset) (domain.Change, bool) {
		for i, v := range data.Vendors {
			if v.ID == id {
				data.Vendors = append(data.Vendors[:i], data.Vendors[i+1:]...)
				return domain.Change{
					Entity:   domain.EntityVendor,
					Action:   domain.ActionDelete,
					EntityID: id,
					Before:   domain.NewChangePayloadFromValue(v),
				}, true
			}
		}
		return domain.Change{}, false
	})
}

// EntityByID returns the legal entity with the given id.
func (s *Store) EntityByID(id string) (domain.LegalEntity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.data.LegalEntities {
		if e.ID == id {
			return e.Clone(), true
		}
	}
	return domain.LegalEntity{}, false
}

// Entities returns clones of all legal entities.
func (s *Store) Entities() []domain.LegalEntity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.LegalEntity, len(s.data.LegalEntities))
	for i, e := range s.data.LegalEntities {
		out[i] = e.Clone()
	}
	return out
}

// AddEntity inserts a legal entity, assigning the next ENT-NNN serial when
// no id is supplied.
func (s *Store) AddEntity(e domain.LegalEntity) domain.LegalEntity {
	var added domain.LegalEntity
	s.commit(func(data *domain.Dataset) (domain.Change, bool) {
		if e.ID == "" {
			ids := make([]string, len(data.LegalEntities))
			for i, existing := range data.LegalEntities {
				ids[i] = existing.ID
			}
			e.ID = nextSerialID("ENT", ids)
		}
		data.LegalEntities = append(data.LegalEntities, e.Clone())
		added = e
		return domain.Change{
			Entity:   domain.EntityLegalEntity,
			Action:   domain.ActionCreate,
			EntityID: e.ID,
			After:    domain.NewChangePayloadFromValue(e),
		}, true
	})
	return added
}

// UpdateEntity applies mutate to the legal entity with the given id.
func (s *Store) UpdateEntity(id string, mutate func(*domain.LegalEntity)) (domain.LegalEntity, bool) {
	var (
		updated domain.LegalEntity
		found   bool
	)
	s.commit(func(data *domain.Dataset) (domain.Change, bool) {
		for i := range data.LegalEntities {
			if data.LegalEntities[i].ID != id {
				continue
			}
			before := domain.NewChangePayloadFromValue(data.LegalEntities[i])
			next := data.LegalEntities[i].Clone()
			mutate(&next)
			next.ID = id
			data.LegalEntities[i] = next
			updated = next.Clone()
			found = true
			return domain.Change{
				Entity:   domain.EntityLegalEntity,
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

// DeleteEntity removes a legal entity. Application entity lists and child
// parentEntity references are left untouched.
func (s *Store) DeleteEntity(id string) {
	s.commit(func(data *domain.Dataset) (domain.Change, bool) {
		for i, e := range data.LegalEntities {
			if e.ID == id {
				data.LegalEntities = append(data.LegalEntities[:i], data.LegalEntities[i+1:]...)
				return domain.Change{
					Entity:   domain.EntityLegalEntity,
					Action:   domain.ActionDelete,
					EntityID: id,
					Before:   domain.NewChangePayloadFromValue(e),
				}, true
			}
		}
		return domain.Change{}, false
	})
}

// DemandByID returns the demand with the given id.
func (s *Store) DemandByID(id string) (domain.Demand, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.data.Demands {
		if d.ID == id {
			return d.Clone(), true
		}
	}
	return domain.Demand{}, false
}

// Demands returns clones of all demands.
func (s *Store) Demands() []domain.Demand {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Demand, len(s.data.Demands))
	for i, d := range s.data.Demands {
		out[i] = d.Clone()
	}
	return out
}

// AddDemand inserts a demand, assigning the next DEM-NNN serial when no id
// is supplied.
func (s *Store) AddDemand(d domain.Demand) domain.Demand {
	var added domain.Demand
	s.commit(func(data *domain.Dataset) (domain.Change, bool) {
		if d.ID == "" {
			ids := make([]string, len(data.Demands))
			for i, existing := range data.Demands {
				ids[i] = existing.ID
			}
			d.ID = nextSerialID("DEM", ids)
		}
		data.Demands = append(data.Demands, d.Clone())
		added = d
		return domain.Change{
			Entity:   domain.EntityDemand,
			Action:   domain.ActionCreate,
			EntityID: d.ID,
			After:    domain.NewChangePayloadFromValue(d),
		}, true
	})
	return added
}

// UpdateDemand applies mutate to the demand with the given id.
func (s *Store) UpdateDemand(id string, mutate func(*domain.Demand)) (domain.Demand, bool) {
	var (
		updated domain.Demand
		found   bool
	)
	s.commit(func(data *domain.Dataset) (domain.Change, bool) {
		for i := range data.Demands {
			if data.Demands[i].ID != id {
				continue
			}
			before := domain.NewChangePayloadFromValue(data.Demands[i])
			next := data.Demands[i].Clone()
			mutate(&next)
			next.ID = id
			data.Demands[i] = next
			updated = next.Clone()
			found = true
			return domain.Change{
				Entity:   domain.EntityDemand,
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

// DeleteDemand removes a demand.
func (s *Store) DeleteDemand(id string) {
	s.commit(func(data *domain.Dataset) (domain.Change, bool) {
		for i, d := range data.Demands {
			if d.ID == id {
				data.Demands = append(data.Demands[:i], data.Demands[i+1:]...)
				return domain.Change{
					Entity:   domain.EntityDemand,
					Action:   domain.ActionDelete,
					EntityID: id,
					Before:   domain.NewChangePayloadFromValue(d),
				}, true
			}
		}
		return domain.Change{}, false
	})
}

// IntegrationByID returns the integration with the given id.
func (s *Store) IntegrationByID(id string) (domain.Integration, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, in := range s.data.Integrations {
		if in.ID == id {
			return in, true
		}
	}
	return domain.Integration{}, false
}

// Integrations returns a copy of all integrations.
func (s *Store) Integrations() []domain.Integration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Integration(nil), s.data.Integrations...)
}

// AddIntegration inserts an integration, assigning the next INT-NNN serial
// when no id is supplied.
func (s *Store) AddIntegration(in domain.Integration) domain.Integration {
	var added domain.Integration
	s.commit(func(data *domain.Dataset) (domain.Change, bool) {
		if in.ID == "" {
			ids := make([]string, len(data.Integrations))
			for i, existing := range data.Integrations {
				ids[i] = existing.ID
			}
			in.ID = nextSerialID("INT", ids)
		}
		data.Integrations = append(data.Integrations, in)
		added = in
		return domain.Change{
			Entity:   domain.EntityIntegration,
			Action:   domain.ActionCreate,
			EntityID: in.ID,
			After:    domain.NewChangePayloadFromValue(in),
		}, true
	})
	return added
}

// UpdateIntegration applies mutate to the integration with the given id.
func (s *Store) UpdateIntegration(id string, mutate func(*domain.Integration)) (domain.Integration, bool) {
	var (
		updated domain.Integration
		found   bool
	)
	s.commit(func(data *domain.Dataset) (domain.Change, bool) {
		for i := range data.Integrations {
			if data.Integrations[i].ID != id {
				continue
			}
			before := domain.NewChangePayloadFromValue(data.Integrations[i])
			next := data.Integrations[i]
			mutate(&next)
			next.ID = id
			data.Integrations[i] = next
			updated = next
			found = true
			return domain.Change{
				Entity:   domain.EntityIntegration,
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

// DeleteIntegration removes an integration.
func (s *Store) DeleteIntegration(id string) {
	s.commit(func(data *domain.Dataset) (domain.Change, bool) {
		for i, in := range data.Integrations {
			if in.ID == id {
				data.Integrations = append(data.Integrations[:i], data.Integrations[i+1:]...)
				return domain.Change{
					Entity:   domain.EntityIntegration,
					Action:   domain.ActionDelete,
					EntityID: id,
					Before:   domain.NewChangePayloadFromValue(in),
				}, true
			}
		}
		return domain.Change{}, false
	})
}

// DataObjectByID returns the data object with the given id.
func (s *Store) DataObjectByID(id string) (domain.DataObject, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.data.DataObjects {
		if o.ID == id {
			return o.Clone(), true
		}
	}
	return domain.DataObject{}, false
}

// DataObjects returns clones of all data objects.
func (s *Store) DataObjects() []domain.DataObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.DataObject, len(s.data.DataObjects))
	for i, o := range s.data.DataObjects {
		out[i] = o.Clone()
	}
	return out
}

// AddDataObject inserts a data object, assigning the next DO-NNN serial
// when no id is supplied.
func (s *Store) AddDataObject(o domain.DataObject) domain.DataObject {
	var added domain.DataObject
	s.commit(func(data *domain.Dataset) (domain.Change, bool) {
		if o.ID == "" {
			ids := make([]string, len(data.DataObjects))
			for i, existing := range data.DataObjects {
				ids[i] = existing.ID
			}
			o.ID = nextSerialID("DO", ids)
		}
		data.DataObjects = append(data.DataObjects, o.Clone())
		added = o
		return domain.Change{
			Entity:   domain.EntityDataObject,
			Action:   domain.ActionCreate,
			EntityID: o.ID,
			After:    domain.NewChangePayloadFromValue(o),
		}, true
	})
	return added
}

// UpdateDataObject applies mutate to the data object with the given id.
func (s *Store) UpdateDataObject(id string, mutate func(*domain.DataObject)) (domain.DataObject, bool) {
	var (
		updated domain.DataObject
		found   bool
	)
	s.commit(func(data *domain.Dataset) (domain.Change, bool) {
		for i := range data.DataObjects {
			if data.DataObjects[i].ID != id {
				continue
			}
			before := domain.NewChangePayloadFromValue(data.DataObjects[i])
			next := data.DataObjects[i].Clone()
			mutate(&next)
			next.ID = id
			data.DataObjects[i] = next
			updated = next.Clone()
			found = true
			return domain.Change{
				Entity:   domain.EntityDataObject,
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

// DeleteDataObject removes a data object.
func (s *Store) DeleteDataObject(id string) {
	s.commit(func(data *domain.Dataset) (domain.Change, bool) {
		for i, o := range data.DataObjects {
			if o.ID == id {
				data.DataObjects = append(data.DataObjects[:i], data.DataObjects[i+1:]...)
				return domain.Change{
					Entity:   domain.EntityDataObject,
					Action:   domain.ActionDelete,
					EntityID: id,
					Before:   domain.NewChangePayloadFromValue(o),
				}, true
			}
		}
		return domain.Change{}, false
	})
}

// ProcessByID returns the end-to-end process with the given id.
func (s *Store) ProcessByID(id string) (domain.E2EProcess, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.data.E2EProcesses {
		if p.ID == id {
			return p.Clone(), true
		}
	}
	return domain.E2EProcess{}, false
}

// Processes returns clones of all end-to-end processes.
func (s *Store) Processes() []domain.E2EProcess {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.E2EProcess, len(s.data.E2EProcesses))
	for i, p := range s.data.E2EProcesses {
		out[i] = p.Clone()
	}
	return out
}

// AddProcess inserts an end-to-end process, assigning the next PROC-NNN
// serial when no id is supplied.
func (s *Store) AddProcess(p domain.E2EProcess) domain.E2EProcess {
	var added domain.E2EProcess
	s.commit(func(data *domain.Dataset) (domain.Change, bool) {
		if p.ID == "" {
			ids := make([]string, len(data.E2EProcesses))
			for i, existing := range data.E2EProcesses {
				ids[i] = existing.ID
			}
			p.ID = nextSerialID("PROC", ids)
		}
		data.E2EProcesses = append(data.E2EProcesses, p.Clone())
		added = p
		return domain.Change{
			Entity:   domain.EntityProcess,
			Action:   domain.ActionCreate,
			EntityID: p.ID,
			After:    domain.NewChangePayloadFromValue(p),
		}, true
	})
	return added
}

// UpdateProcess applies mutate to the process with the given id.
func (s *Store) UpdateProcess(id string, mutate func(*domain.E2EProcess)) (domain.E2EProcess, bool) {
	var (
		updated domain.E2EProcess
		found   bool
	)
	s.commit(func(data *domain.Dataset) (domain.Change, bool) {
		for i := range data.E2EProcesses {
			if data.E2EProcesses[i].ID != id {
				continue
			}
			before := domain.NewChangePayloadFromValue(data.E2EProcesses[i])
			next := data.E2EProcesses[i].Clone()
			mutate(&next)
			next.ID = id
			data.E2EProcesses[i] = next
			updated = next.Clone()
			found = true
			return domain.Change{
				Entity:   domain.EntityProcess,
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

// DeleteProcess removes an end-to-end process.
func (s *Store) DeleteProcess(id string) {
	s.commit(func(data *domain.Dataset) (domain.Change, bool) {
		for i, p := range data.E2EProcesses {
			if p.ID == id {
				data.E2EProcesses = append(data.E2EProcesses[:i], data.E2EProcesses[i+1:]...)
				return domain.Change{
					Entity:   domain.EntityProcess,
					Action:   domain.ActionDelete,
					EntityID: id,
					Before:   domain.NewChangePayloadFromValue(p),
				}, true
			}
		}
		return domain.Change{}, false
	})
}

// ManagementKPIs returns a copy of all management KPIs.
func (s *Store) ManagementKPIs() []domain.ManagementKPI {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.ManagementKPI(nil), s.data.ManagementKPIs...)
}

// KPIByID returns the management KPI with the given id.
func (s *Store) KPIByID(id string) (domain.ManagementKPI, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, k := range s.data.ManagementKPIs {
		if k.ID == id {
			return k, true
		}
	}
	return domain.ManagementKPI{}, false
}

// AddManagementKPI inserts a KPI, assigning the next KPI-NNN serial when
// no id is supplied.
func (s *Store) AddManagementKPI(k domain.ManagementKPI) domain.ManagementKPI {
	var added domain.ManagementKPI
	s.commit(func(data *domain.Dataset) (domain.Change, bool) {
		if k.ID == "" {
			ids := make([]string, len(data.ManagementKPIs))
			for i, existing := range data.ManagementKPIs {
				ids[i] = existing.ID
			}
			k.ID = nextSerialID("KPI", ids)
		}
		data.ManagementKPIs = append(data.ManagementKPIs, k)
		added = k
		return domain.Change{
			Entity:   domain.EntityKPI,
			Action:   domain.ActionCreate,
			EntityID: k.ID,
			After:    domain.NewChangePayloadFromValue(k),
		}, true
	})
	return added
}

// UpdateManagementKPI applies mutate to the KPI with the given id.
func (s *Store) UpdateManagementKPI(id string, mutate func(*domain.ManagementKPI)) (domain.ManagementKPI, bool) {
	var (
		updated domain.ManagementKPI
		found   bool
	)
	s.commit(func(data *domain.Dataset) (domain.Change, bool) {
		for i := range data.ManagementKPIs {
			if data.ManagementKPIs[i].ID != id {
				continue
			}
			before := domain.NewChangePayloadFromValue(data.ManagementKPIs[i])
			next := data.ManagementKPIs[i]
			mutate(&next)
			next.ID = id
			data.ManagementKPIs[i] = next
			updated = next
			found = true
			return domain.Change{
				Entity:   domain.EntityKPI,
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

// DeleteManagementKPI removes a KPI.
func (s *Store) DeleteManagementKPI(id string) {
	s.commit(func(data *domain.Dataset) (domain.Change, bool) {
		for i, k := range data.ManagementKPIs {
			if k.ID == id {
				data.ManagementKPIs = append(data.ManagementKPIs[:i], data.ManagementKPIs[i+1:]...)
				return domain.Change{
					Entity:   domain.EntityKPI,
					Action:   domain.ActionDelete,
					EntityID: id,
					Before:   domain.NewChangePayloadFromValue(k),
				}, true
			}
		}
		return domain.Change{}, false
	})
}
