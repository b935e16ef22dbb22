package core

import "archcore/pkg/domain"

// DomainTemplate is a prebuilt industry capability map that can replace
// the document's domain landscape.
type DomainTemplate struct {
	ID          string          `json:"id"`
	Label       string          `json:"label"`
	Description string          `json:"description"`
	Icon        string          `json:"icon,omitempty"`
	Domains     []domain.Domain `json:"domains"`
}

// DomainTemplates returns the built-in template catalogue.
func DomainTemplates() []DomainTemplate {
	out := make([]DomainTemplate, len(domainTemplates))
	for i, t := range domainTemplates {
		cp := t
		cp.Domains = make([]domain.Domain, len(t.Domains))
		for j, d := range t.Domains {
			cp.Domains[j] = d.Clone()
		}
		out[i] = cp
	}
	return out
}

// ApplyDomainTemplate replaces the document's domains with the template's
// and clears every capability mapping, since old capability ids no longer
// exist. All other collections are untouched. Returns false for an
// unknown template id.
func (s *Store) ApplyDomainTemplate(templateID string) bool {
	var tpl *DomainTemplate
	for i := range domainTemplates {
		if domainTemplates[i].ID == templateID {
			tpl = &domainTemplates[i]
			break
		}
	}
	if tpl == nil {
		return false
	}
	s.commit(func(data *domain.Dataset) (domain.Change, bool) {
		before := domain.NewChangePayloadFromValue(data.Domains)
		data.Domains = make([]domain.Domain, len(tpl.Domains))
		for i, d := range tpl.Domains {
			data.Domains[i] = d.Clone()
		}
		data.CapabilityMappings = []domain.CapabilityMapping{}
		return domain.Change{
			Entity:   domain.EntityDataset,
			Action:   domain.ActionReplace,
			EntityID: templateID,
			Before:   before,
			After:    domain.NewChangePayloadFromValue(data.Domains),
		}, true
	})
	return true
}

func tplCap(id, name string, maturity, target int, criticality string, subs ...string) domain.Capability {
	c := domain.Capability{
		ID:              id,
		Name:            name,
		Maturity:        maturity,
		TargetMaturity:  target,
		Criticality:     criticality,
		SubCapabilities: []domain.SubCapability{},
	}
	for i, sub := range subs {
		c.SubCapabilities = append(c.SubCapabilities, domain.SubCapability{
			ID:   id + "." + string(rune('1'+i)),
			Name: sub,
		})
	}
	return c
}

var domainTemplates = []DomainTemplate{
	{
		ID:          "manufacturing",
		Label:       "Manufacturing",
		Description: "Discrete manufacturing with production, supply chain and ERP focus",
		Icon:        "cog",
		Domains: []domain.Domain{
			{
				ID: 1, Name: "IT Infrastructure & Operations", Color: "#3B82F6", Icon: "server",
				Description: "Foundation of all IT services", DomainOwner: "CIO",
				StrategicFocus: "Stability, Hybrid Cloud, Cost Efficiency",
				KPIs:           []string{},
				Capabilities: []domain.Capability{
					tplCap("1.1", "Datacenter Management", 3, 3, "High", "Server & Compute Management", "Storage Management"),
					tplCap("1.2", "Cloud Platform Management", 2, 4, "High", "IaaS Management", "PaaS Management"),
					tplCap("1.3", "IT Security & Compliance", 3, 4, "High", "Identity & Access Management", "Network Security"),
					tplCap("1.4", "IT Service Management", 3, 4, "Medium", "Incident Management", "Change Management"),
				},
			},
			{
				ID: 2, Name: "Production & Manufacturing", Color: "#F59E0B", Icon: "cog",
				Description: "Manufacturing execution and production planning", DomainOwner: "COO",
				StrategicFocus: "Industry 4.0, Smart Factory",
				KPIs:           []string{},
				Capabilities: []domain.Capability{
					tplCap("2.1", "Production Planning (PPS)", 3, 4, "High", "Capacity Planning", "Material Requirements Planning"),
					tplCap("2.2", "Manufacturing Execution (MES)", 2, 4, "High", "Shop Floor Control", "Production Monitoring"),
					tplCap("2.3", "Quality Management", 3, 4, "High", "Incoming Inspection", "Statistical Process Control"),
					tplCap("2.4", "Maintenance & Asset Management", 2, 3, "Medium", "Preventive Maintenance", "Predictive Maintenance"),
				},
			},
			{
				ID: 3, Name: "Supply Chain & Logistics", Color: "#EF4444", Icon: "truck",
				Description: "End-to-end supply chain management", DomainOwner: "COO",
				StrategicFocus: "Supply Chain Resilience, Visibility",
				KPIs:           []string{},
				Capabilities: []domain.Capability{
					tplCap("3.1", "Procurement", 3, 4, "High", "Strategic Sourcing", "Operational Procurement"),
					tplCap("3.2", "Warehouse Management", 3, 4, "High", "Inbound Logistics", "Outbound Logistics"),
					tplCap("3.3", "Transport Management", 2, 3, "Medium", "Route Planning", "Carrier Management"),
				},
			},
			{
				ID: 4, Name: "Sales & Customer Management", Color: "#10B981", Icon: "chart-bar",
				Description: "CRM and sales processes", DomainOwner: "CSO",
				StrategicFocus: "Customer Experience, 360° View",
				KPIs:           []string{},
				Capabilities: []domain.Capability{
					tplCap("4.1", "CRM", 2, 4, "High", "Lead Management", "Opportunity Management"),
					tplCap("4.2", "Customer Service", 2, 3, "Medium", "Service Desk", "Field Service"),
				},
			},
		},
	},
	{
		ID:          "financial-services",
		Label:       "Financial Services",
		Description: "Banking and asset management with regulatory focus",
		Icon:        "bank",
		Domains: []domain.Domain{
			{
				ID: 1, Name: "Core Banking", Color: "#3B82F6", Icon: "bank",
				Description: "Account, payment and lending systems", DomainOwner: "COO",
				StrategicFocus: "Modernization, Real-Time Payments",
				KPIs:           []string{},
				Capabilities: []domain.Capability{
					tplCap("1.1", "Account Management", 4, 4, "High", "Current Accounts", "Savings Accounts"),
					tplCap("1.2", "Payments", 3, 5, "High", "SEPA Processing", "Instant Payments"),
					tplCap("1.3", "Lending", 3, 4, "High", "Credit Origination", "Loan Servicing"),
				},
			},
			{
				ID: 2, Name: "Risk & Compliance", Color: "#EF4444", Icon: "shield",
				Description: "Regulatory reporting and risk management", DomainOwner: "CRO",
				StrategicFocus: "Regulatory Readiness, Automation",
				KPIs:           []string{},
				Capabilities: []domain.Capability{
					tplCap("2.1", "Risk Management", 3, 4, "High", "Credit Risk", "Market Risk"),
					tplCap("2.2", "Regulatory Reporting", 3, 4, "High", "Prudential Reporting", "Transaction Reporting"),
					tplCap("2.3", "Financial Crime Prevention", 2, 4, "High", "AML Monitoring", "Fraud Detection"),
				},
			},
			{
				ID: 3, Name: "Channels & Customer Experience", Color: "#10B981", Icon: "users",
				Description: "Digital and branch customer channels", DomainOwner: "CDO",
				StrategicFocus: "Digital First, Omnichannel",
				KPIs:           []string{},
				Capabilities: []domain.Capability{
					tplCap("3.1", "Online & Mobile Banking", 3, 5, "High", "Web Banking", "Mobile App"),
					tplCap("3.2", "Branch & Advisory", 3, 3, "Medium", "Branch Systems", "Advisory Tools"),
				},
			},
		},
	},
	{
		ID:          "technology",
		Label:       "Technology",
		Description: "Software and platform company landscape",
		Icon:        "chip",
		Domains: []domain.Domain{
			{
				ID: 1, Name: "Product Engineering", Color: "#8B5CF6", Icon: "code",
				Description: "Product development and delivery", DomainOwner: "CTO",
				StrategicFocus: "Developer Productivity, Platform Engineering",
				KPIs:           []string{},
				Capabilities: []domain.Capability{
					tplCap("1.1", "Software Development", 4, 5, "High", "Source Management", "CI/CD"),
					tplCap("1.2", "Platform & Infrastructure", 3, 4, "High", "Container Platform", "Observability"),
					tplCap("1.3", "Quality Engineering", 3, 4, "Medium", "Test Automation", "Performance Testing"),
				},
			},
			{
				ID: 2, Name: "Customer Success & Sales", Color: "#10B981", Icon: "chart-bar",
				Description: "Go-to-market and customer lifecycle", DomainOwner: "CRO",
				StrategicFocus: "Net Retention, Product-Led Growth",
				KPIs:           []string{},
				Capabilities: []domain.Capability{
					tplCap("2.1", "CRM & Sales Operations", 3, 4, "High", "Pipeline Management", "Quote to Cash"),
					tplCap("2.2", "Customer Success", 2, 4, "Medium", "Onboarding", "Health Scoring"),
				},
			},
		},
	},
}
