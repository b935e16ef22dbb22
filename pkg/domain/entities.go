// Package domain defines the enterprise-architecture dataset document, its
// entity records, and the change-capture primitives used by archcore.
package domain

// EntityType identifies the kind of record stored in the dataset.
type EntityType string

// Supported entity type identifiers used in Change records and persistence slots.
const (
	// EntityDomain identifies a business domain record.
	EntityDomain EntityType = "domain"
	// EntityCapability identifies a capability nested in a domain.
	EntityCapability EntityType = "capability"
	// EntitySubCapability identifies a sub-capability nested in a capability.
	EntitySubCapability EntityType = "sub_capability"
	// EntityApplication identifies an application record.
	EntityApplication EntityType = "application"
	// EntityMapping identifies a capability-to-application mapping.
	EntityMapping EntityType = "capability_mapping"
	// EntityProject identifies a project record.
	EntityProject EntityType = "project"
	// EntityProjectDependency identifies a directed project dependency edge.
	EntityProjectDependency EntityType = "project_dependency"
	// EntityVendor identifies a vendor record.
	EntityVendor EntityType = "vendor"
	// EntityLegalEntity identifies a legal entity record.
	EntityLegalEntity EntityType = "legal_entity"
	// EntityDemand identifies a demand record.
	EntityDemand EntityType = "demand"
	// EntityProcess identifies an end-to-end process record.
	EntityProcess EntityType = "e2e_process"
	// EntityIntegration identifies an application integration record.
	EntityIntegration EntityType = "integration"
	// EntityDataObject identifies a data object record.
	EntityDataObject EntityType = "data_object"
	// EntityAssessment identifies a compliance assessment record.
	EntityAssessment EntityType = "compliance_assessment"
	// EntityKPI identifies a management KPI record.
	EntityKPI EntityType = "management_kpi"
	// EntityDataset identifies the document as a whole (import/template apply).
	EntityDataset EntityType = "dataset"
)

// TimeQuadrant classifies an application's strategic disposition.
type TimeQuadrant string

// TIME model quadrants.
const (
	QuadrantInvest    TimeQuadrant = "Invest"
	QuadrantTolerate  TimeQuadrant = "Tolerate"
	QuadrantMigrate   TimeQuadrant = "Migrate"
	QuadrantEliminate TimeQuadrant = "Eliminate"
)

// ProjectStatus is the traffic-light health of a project.
type ProjectStatus string

// Canonical project statuses.
const (
	ProjectGreen  ProjectStatus = "green"
	ProjectYellow ProjectStatus = "yellow"
	ProjectRed    ProjectStatus = "red"
)

// ComplianceStatus captures the outcome of a compliance assessment,
// distinct from its review workflow status.
type ComplianceStatus string

// Canonical compliance assessment statuses.
const (
	ComplianceCompliant    ComplianceStatus = "compliant"
	CompliancePartial      ComplianceStatus = "partial"
	ComplianceNonCompliant ComplianceStatus = "nonCompliant"
	ComplianceNotAssessed  ComplianceStatus = "notAssessed"
)

// Meta carries document-level bookkeeping. LastUpdated is refreshed on
// every persist and export.
type Meta struct {
	Version     string `json:"version"`
	LastUpdated string `json:"lastUpdated"`
	Owner       string `json:"owner"`
	Company     string `json:"company"`
	Description string `json:"description"`
}

// Domain groups related capabilities under one business area.
type Domain struct {
	ID             int          `json:"id"`
	Name           string       `json:"name"`
	Color          string       `json:"color,omitempty"`
	Icon           string       `json:"icon,omitempty"`
	Description    string       `json:"description,omitempty"`
	DomainOwner    string       `json:"domainOwner,omitempty"`
	StrategicFocus string       `json:"strategicFocus,omitempty"`
	Vision         string       `json:"vision,omitempty"`
	KPIs           []string     `json:"kpis"`
	Capabilities   []Capability `json:"capabilities"`
}

// Capability is a named business function owned by exactly one domain,
// rated on a 1..5 maturity scale with a current and a target value.
type Capability struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	Maturity        int             `json:"maturity"`
	TargetMaturity  int             `json:"targetMaturity"`
	Criticality     string          `json:"criticality,omitempty"`
	SubCapabilities []SubCapability `json:"subCapabilities"`
}

// SubCapability is a second-level refinement owned by one capability.
type SubCapability struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// VendorLink associates an application with a vendor in a given role.
// The canonical shape for both the legacy single vendor field and the
// multi-vendor array (see core.VendorLinksForApp).
type VendorLink struct {
	VendorID   string `json:"vendorId,omitempty"`
	VendorName string `json:"vendorName,omitempty"`
	Role       string `json:"role,omitempty"`
}

// SkillProfile records the staffing behind one skill on one application.
type SkillProfile struct {
	Skill         string   `json:"skill"`
	Headcount     int      `json:"headcount"`
	KeyPersons    []string `json:"keyPersons,omitempty"`
	Outsourceable bool     `json:"outsourceable"`
}

// Application is a catalogued IT system.
type Application struct {
	ID                 string         `json:"id"`
	Name               string         `json:"name"`
	Vendor             string         `json:"vendor,omitempty"` // legacy single-vendor field
	VendorID           string         `json:"vendorId,omitempty"`
	Vendors            []VendorLink   `json:"vendors,omitempty"`
	Category           string         `json:"category,omitempty"`
	Type               string         `json:"type,omitempty"`
	Criticality        string         `json:"criticality,omitempty"`
	TimeQuadrant       TimeQuadrant   `json:"timeQuadrant,omitempty"`
	BusinessOwner      string         `json:"businessOwner,omitempty"`
	ITOwner            string         `json:"itOwner,omitempty"`
	CostPerYear        float64        `json:"costPerYear,omitempty"`
	UserCount          int            `json:"userCount,omitempty"`
	GoLiveDate         string         `json:"goLiveDate,omitempty"`
	Description        string         `json:"description,omitempty"`
	RiskProbability    string         `json:"riskProbability,omitempty"`
	RiskImpact         string         `json:"riskImpact,omitempty"`
	LifecycleStatus    string         `json:"lifecycleStatus,omitempty"`
	Technology         []string       `json:"technology,omitempty"`
	Entities           []string       `json:"entities,omitempty"`
	EndOfSupportDate   string         `json:"endOfSupportDate,omitempty"`
	EndOfLifeDate      string         `json:"endOfLifeDate,omitempty"`
	LicenseCost        float64        `json:"licenseCost,omitempty"`
	OperationsCost     float64        `json:"operationsCost,omitempty"`
	IntegrationCost    float64        `json:"integrationCost,omitempty"`
	PersonnelCost      float64        `json:"personnelCost,omitempty"`
	Regulations        []string       `json:"regulations,omitempty"`
	DataClassification string         `json:"dataClassification,omitempty"`
	SkillProfiles      []SkillProfile `json:"skillProfiles,omitempty"`
}

// CapabilityMapping joins a capability to an application with a role
// label. The (capabilityId, applicationId) pair is unique.
type CapabilityMapping struct {
	CapabilityID  string `json:"capabilityId"`
	ApplicationID string `json:"applicationId"`
	Role          string `json:"role,omitempty"`
}

// AffectedApp records an application touched by a project and the kind
// of change the project applies to it.
type AffectedApp struct {
	AppID  string `json:"appId"`
	Action string `json:"action,omitempty"`
}

// Project is a change initiative touching domains, capabilities and apps.
type Project struct {
	ID                    string        `json:"id"`
	Name                  string        `json:"name"`
	PrimaryDomain         *int          `json:"primaryDomain"`
	SecondaryDomains      []int         `json:"secondaryDomains,omitempty"`
	Capabilities          []string      `json:"capabilities,omitempty"`
	AffectedApps          []AffectedApp `json:"affectedApps,omitempty"`
	Category              string        `json:"category,omitempty"`
	Budget                float64       `json:"budget,omitempty"`
	Start                 string        `json:"start,omitempty"`
	End                   string        `json:"end,omitempty"`
	Status                ProjectStatus `json:"status,omitempty"`
	StatusText            string        `json:"statusText,omitempty"`
	Sponsor               string        `json:"sponsor,omitempty"`
	ProjectLead           string        `json:"projectLead,omitempty"`
	StrategicContribution string        `json:"strategicContribution,omitempty"`
}

// ProjectDependency is a directed edge: source depends on target.
type ProjectDependency struct {
	SourceProjectID string `json:"sourceProjectId"`
	TargetProjectID string `json:"targetProjectId"`
	Type            string `json:"type,omitempty"`
	Description     string `json:"description,omitempty"`
}

// Vendor is an external supplier of applications or services.
type Vendor struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Category      string  `json:"category,omitempty"`
	VendorType    string  `json:"vendorType,omitempty"`
	Status        string  `json:"status,omitempty"`
	Criticality   string  `json:"criticality,omitempty"`
	ServiceLevel  string  `json:"serviceLevel,omitempty"`
	ContractValue float64 `json:"contractValue,omitempty"`
	ContractEnd   string  `json:"contractEnd,omitempty"`
	ContactPerson string  `json:"contactPerson,omitempty"`
	VendorManager string  `json:"vendorManager,omitempty"`
	Website       string  `json:"website,omitempty"`
	Rating        int     `json:"rating,omitempty"`
	Description   string  `json:"description,omitempty"`
}

// LegalEntity is an organizational unit; ParentEntity forms a tree.
type LegalEntity struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	ShortName    string  `json:"shortName,omitempty"`
	Description  string  `json:"description,omitempty"`
	Country      string  `json:"country,omitempty"`
	City         string  `json:"city,omitempty"`
	Region       string  `json:"region,omitempty"`
	ParentEntity *string `json:"parentEntity"`
}

// Demand is an inbound request in the demand pipeline.
type Demand struct {
	ID                    string   `json:"id"`
	Title                 string   `json:"title"`
	Description           string   `json:"description,omitempty"`
	Category              string   `json:"category,omitempty"`
	Status                string   `json:"status,omitempty"`
	Priority              string   `json:"priority,omitempty"`
	RequestedBy           string   `json:"requestedBy,omitempty"`
	RequestDate           string   `json:"requestDate,omitempty"`
	EstimatedBudget       float64  `json:"estimatedBudget,omitempty"`
	PrimaryDomain         *int     `json:"primaryDomain"`
	RelatedDomains        []int    `json:"relatedDomains,omitempty"`
	RelatedApps           []string `json:"relatedApps,omitempty"`
	RelatedVendors        []string `json:"relatedVendors,omitempty"`
	BusinessCase          string   `json:"businessCase,omitempty"`
	IsAIUseCase           bool     `json:"isAIUseCase,omitempty"`
	AIRiskCategory        string   `json:"aiRiskCategory,omitempty"`
	AIDescription         string   `json:"aiDescription,omitempty"`
	ApplicableRegulations []string `json:"applicableRegulations,omitempty"`
}

// E2EProcess is an end-to-end business process spanning domains.
// Applications are either assigned directly via ApplicationIDs or derived
// transitively through domains, capabilities and mappings.
type E2EProcess struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Owner          string   `json:"owner,omitempty"`
	Description    string   `json:"description,omitempty"`
	Domains        []int    `json:"domains,omitempty"`
	ApplicationIDs []string `json:"applicationIds,omitempty"`
	Status         string   `json:"status,omitempty"`
	KPIs           []string `json:"kpis,omitempty"`
}

// Integration is a point-to-point interface between two applications.
type Integration struct {
	ID            string `json:"id"`
	SourceAppID   string `json:"sourceAppId,omitempty"`
	TargetAppID   string `json:"targetAppId,omitempty"`
	InterfaceType string `json:"interfaceType,omitempty"`
	Protocol      string `json:"protocol,omitempty"`
	Description   string `json:"description,omitempty"`
	DataObjects   string `json:"dataObjects,omitempty"`
	Frequency     string `json:"frequency,omitempty"`
	Direction     string `json:"direction,omitempty"`
	Status        string `json:"status,omitempty"`
}

// DataObject is a logical data asset sourced and consumed by applications.
type DataObject struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	Classification  string   `json:"classification,omitempty"`
	Owner           string   `json:"owner,omitempty"`
	Steward         string   `json:"steward,omitempty"`
	SourceAppIDs    []string `json:"sourceAppIds,omitempty"`
	ConsumingAppIDs []string `json:"consumingAppIds,omitempty"`
	QualityScore    int      `json:"qualityScore,omitempty"`
	RetentionPeriod string   `json:"retentionPeriod,omitempty"`
	PersonalData    bool     `json:"personalData,omitempty"`
	Format          string   `json:"format,omitempty"`
	Domain          int      `json:"domain,omitempty"`
}

// ComplianceAssessment records the conformity of one application against
// one regulation, with a review workflow and an append-only audit trail.
type ComplianceAssessment struct {
	ID             string           `json:"id"`
	AppID          string           `json:"appId"`
	Regulation     string           `json:"regulation"`
	Status         ComplianceStatus `json:"status,omitempty"`
	AssessedBy     string           `json:"assessedBy,omitempty"`
	AssessedDate   string           `json:"assessedDate,omitempty"`
	Notes          string           `json:"notes,omitempty"`
	WorkflowStatus WorkflowStatus   `json:"workflowStatus,omitempty"`
	Deadline       string           `json:"deadline,omitempty"`
	AuditTrail     []AuditEntry     `json:"auditTrail,omitempty"`
}

// ManagementKPI is a tracked steering metric.
type ManagementKPI struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Target      float64 `json:"target,omitempty"`
	Current     float64 `json:"current,omitempty"`
	Unit        string  `json:"unit,omitempty"`
	Trend       string  `json:"trend,omitempty"`
	Category    string  `json:"category,omitempty"`
}

// Regulation describes one entry of the compliance regulation catalogue
// kept under enums.complianceRegulations.
type Regulation struct {
	Value                   string   `json:"value"`
	Label                   string   `json:"label,omitempty"`
	Deadline                string   `json:"deadline,omitempty"`
	ApplicableCriticalities []string `json:"applicableCriticalities,omitempty"`
	ApplicableScopes        []string `json:"applicableScopes,omitempty"`
}

// Enums holds the configurable value catalogues shipped with the seed.
type Enums struct {
	ComplianceRegulations []Regulation `json:"complianceRegulations,omitempty"`
	Criticalities         []string     `json:"criticalities,omitempty"`
	TimeQuadrants         []string     `json:"timeQuadrants,omitempty"`
	LifecycleStatuses     []string     `json:"lifecycleStatuses,omitempty"`
}

// Dataset is the whole document. It must stay JSON-serializable: all
// relationships are id references, never object pointers.
type Dataset struct {
	Meta                  Meta                   `json:"meta"`
	Domains               []Domain               `json:"domains"`
	Applications          []Application          `json:"applications"`
	CapabilityMappings    []CapabilityMapping    `json:"capabilityMappings"`
	Projects              []Project              `json:"projects"`
	ProjectDependencies   []ProjectDependency    `json:"projectDependencies"`
	ManagementKPIs        []ManagementKPI        `json:"managementKPIs"`
	Vendors               []Vendor               `json:"vendors"`
	E2EProcesses          []E2EProcess           `json:"e2eProcesses"`
	Demands               []Demand               `json:"demands"`
	Integrations          []Integration          `json:"integrations"`
	LegalEntities         []LegalEntity          `json:"legalEntities"`
	ComplianceAssessments []ComplianceAssessment `json:"complianceAssessments"`
	DataObjects           []DataObject           `json:"dataObjects"`
	Enums                 Enums                  `json:"enums"`
}

// EmptyDataset returns the default-shaped document used when neither the
// cache nor the seed can provide data. Collections are non-nil so the
// document serializes with empty arrays rather than nulls.
func EmptyDataset() Dataset {
	return Dataset{
		Meta:                  Meta{Version: "1.0"},
		Domains:               []Domain{},
		Applications:          []Application{},
		CapabilityMappings:    []CapabilityMapping{},
		Projects:              []Project{},
		ProjectDependencies:   []ProjectDependency{},
		ManagementKPIs:        []ManagementKPI{},
		Vendors:               []Vendor{},
		E2EProcesses:          []E2EProcess{},
		Demands:               []Demand{},
		Integrations:          []Integration{},
		LegalEntities:         []LegalEntity{},
		ComplianceAssessments: []ComplianceAssessment{},
		DataObjects:           []DataObject{},
	}
}
