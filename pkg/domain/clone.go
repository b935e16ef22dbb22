package domain

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}

func cloneInts(in []int) []int {
	if in == nil {
		return nil
	}
	return append([]int(nil), in...)
}

func cloneIntPtr(in *int) *int {
	if in == nil {
		return nil
	}
	v := *in
	return &v
}

func cloneStringPtr(in *string) *string {
	if in == nil {
		return nil
	}
	v := *in
	return &v
}

// Clone returns a deep copy of the capability including its sub-capabilities.
func (c Capability) Clone() Capability {
	cp := c
	if c.SubCapabilities != nil {
		cp.SubCapabilities = append([]SubCapability(nil), c.SubCapabilities...)
	}
	return cp
}

// Clone returns a deep copy of the domain including nested capabilities.
func (d Domain) Clone() Domain {
	cp := d
	cp.KPIs = cloneStrings(d.KPIs)
	if d.Capabilities != nil {
		cp.Capabilities = make([]Capability, len(d.Capabilities))
		for i, c := range d.Capabilities {
			cp.Capabilities[i] = c.Clone()
		}
	}
	return cp
}

// Clone returns a deep copy of the application.
func (a Application) Clone() Application {
	cp := a
	if a.Vendors != nil {
		cp.Vendors = append([]VendorLink(nil), a.Vendors...)
	}
	cp.Technology = cloneStrings(a.Technology)
	cp.Entities = cloneStrings(a.Entities)
	cp.Regulations = cloneStrings(a.Regulations)
	if a.SkillProfiles != nil {
		cp.SkillProfiles = make([]SkillProfile, len(a.SkillProfiles))
		for i, sp := range a.SkillProfiles {
			spc := sp
			spc.KeyPersons = cloneStrings(sp.KeyPersons)
			cp.SkillProfiles[i] = spc
		}
	}
	return cp
}

// Clone returns a deep copy of the project.
func (p Project) Clone() Project {
	cp := p
	cp.PrimaryDomain = cloneIntPtr(p.PrimaryDomain)
	cp.SecondaryDomains = cloneInts(p.SecondaryDomains)
	cp.Capabilities = cloneStrings(p.Capabilities)
	if p.AffectedApps != nil {
		cp.AffectedApps = append([]AffectedApp(nil), p.AffectedApps...)
	}
	return cp
}

// Clone returns a deep copy of the demand.
func (d Demand) Clone() Demand {
	cp := d
	cp.PrimaryDomain = cloneIntPtr(d.PrimaryDomain)
	cp.RelatedDomains = cloneInts(d.RelatedDomains)
	cp.RelatedApps = cloneStrings(d.RelatedApps)
	cp.RelatedVendors = cloneStrings(d.RelatedVendors)
	cp.ApplicableRegulations = cloneStrings(d.ApplicableRegulations)
	return cp
}

// Clone returns a deep copy of the process.
func (p E2EProcess) Clone() E2EProcess {
	cp := p
	cp.Domains = cloneInts(p.Domains)
	cp.ApplicationIDs = cloneStrings(p.ApplicationIDs)
	cp.KPIs = cloneStrings(p.KPIs)
	return cp
}

// Clone returns a deep copy of the legal entity.
func (e LegalEntity) Clone() LegalEntity {
	cp := e
	cp.ParentEntity = cloneStringPtr(e.ParentEntity)
	return cp
}

// Clone returns a deep copy of the data object.
func (d DataObject) Clone() DataObject {
	cp := d
	cp.SourceAppIDs = cloneStrings(d.SourceAppIDs)
	cp.ConsumingAppIDs = cloneStrings(d.ConsumingAppIDs)
	return cp
}

// Clone returns a deep copy of the assessment including its audit trail.
func (a ComplianceAssessment) Clone() ComplianceAssessment {
	cp := a
	if a.AuditTrail != nil {
		cp.AuditTrail = append([]AuditEntry(nil), a.AuditTrail...)
	}
	return cp
}

// Clone returns a deep copy of the regulation catalogue entry.
func (r Regulation) Clone() Regulation {
	cp := r
	cp.ApplicableCriticalities = cloneStrings(r.ApplicableCriticalities)
	cp.ApplicableScopes = cloneStrings(r.ApplicableScopes)
	return cp
}

// Clone returns a deep copy of the enum catalogues.
func (e Enums) Clone() Enums {
	cp := e
	if e.ComplianceRegulations != nil {
		cp.ComplianceRegulations = make([]Regulation, len(e.ComplianceRegulations))
		for i, r := range e.ComplianceRegulations {
			cp.ComplianceRegulations[i] = r.Clone()
		}
	}
	cp.Criticalities = cloneStrings(e.Criticalities)
	cp.TimeQuadrants = cloneStrings(e.TimeQuadrants)
	cp.LifecycleStatuses = cloneStrings(e.LifecycleStatuses)
	return cp
}

// Clone returns a deep copy of the whole document. Mutating the copy
// never aliases slices or nested records of the original.
func (d Dataset) Clone() Dataset {
	cp := d
	if d.Domains != nil {
		cp.Domains = make([]Domain, len(d.Domains))
		for i, v := range d.Domains {
			cp.Domains[i] = v.Clone()
		}
	}
	if d.Applications != nil {
		cp.Applications = make([]Application, len(d.Applications))
		for i, v := range d.Applications {
			cp.Applications[i] = v.Clone()
		}
	}
	if d.CapabilityMappings != nil {
		cp.CapabilityMappings = append([]CapabilityMapping(nil), d.CapabilityMappings...)
	}
	if d.Projects != nil {
		cp.Projects = make([]Project, len(d.Projects))
		for i, v := range d.Projects {
			cp.Projects[i] = v.Clone()
		}
	}
	if d.ProjectDependencies != nil {
		cp.ProjectDependencies = append([]ProjectDependency(nil), d.ProjectDependencies...)
	}
	if d.ManagementKPIs != nil {
		cp.ManagementKPIs = append([]ManagementKPI(nil), d.ManagementKPIs...)
	}
	if d.Vendors != nil {
		cp.Vendors = append([]Vendor(nil), d.Vendors...)
	}
	if d.E2EProcesses != nil {
		cp.E2EProcesses = make([]E2EProcess, len(d.E2EProcesses))
		for i, v := range d.E2EProcesses {
			cp.E2EProcesses[i] = v.Clone()
		}
	}
	if d.Demands != nil {
		cp.Demands = make([]Demand, len(d.Demands))
		for i, v := range d.Demands {
			cp.Demands[i] = v.Clone()
		}
	}
	if d.Integrations != nil {
		cp.Integrations = append([]Integration(nil), d.Integrations...)
	}
	if d.LegalEntities != nil {
		cp.LegalEntities = make([]LegalEntity, len(d.LegalEntities))
		for i, v := range d.LegalEntities {
			cp.LegalEntities[i] = v.Clone()
		}
	}
	if d.ComplianceAssessments != nil {
		cp.ComplianceAssessments = make([]ComplianceAssessment, len(d.ComplianceAssessments))
		for i, v := range d.ComplianceAssessments {
			cp.ComplianceAssessments[i] = v.Clone()
		}
	}
	if d.DataObjects != nil {
		cp.DataObjects = make([]DataObject, len(d.DataObjects))
		for i, v := range d.DataObjects {
			cp.DataObjects[i] = v.Clone()
		}
	}
	cp.Enums = d.Enums.Clone()
	return cp
}
