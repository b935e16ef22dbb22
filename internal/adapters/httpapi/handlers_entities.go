package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"archcore/internal/core"
	"archcore/pkg/domain"
)

func (s *Server) domainIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "domain id must be numeric")
		return 0, false
	}
	return id, true
}

// patchBody reads a request body destined for a merge-update: the raw
// bytes are applied over the existing record, so absent fields keep
// their values. probe catches malformed payloads up front.
func (s *Server) patchBody(w http.ResponseWriter, r *http.Request, probe any) ([]byte, bool) {
	payload, ok := s.readBody(w, r)
	if !ok {
		return nil, false
	}
	if err := json.Unmarshal(payload, probe); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON payload: "+err.Error())
		return nil, false
	}
	return payload, true
}

// Domains

func (s *Server) handleListDomains(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, http.StatusOK, s.store.Domains())
}

func (s *Server) handleCreateDomain(w http.ResponseWriter, r *http.Request) {
	var d domain.Domain
	if !s.decode(w, r, &d) {
		return
	}
	s.respond(w, http.StatusCreated, s.store.AddDomain(d))
}

func (s *Server) handleGetDomain(w http.ResponseWriter, r *http.Request) {
	id, ok := s.domainIDParam(w, r)
	if !ok {
		return
	}
	d, found := s.store.DomainByID(id)
	if !found {
		s.respondError(w, http.StatusNotFound, "domain not found")
		return
	}
	s.respond(w, http.StatusOK, d)
}

func (s *Server) handleUpdateDomain(w http.ResponseWriter, r *http.Request) {
	id, ok := s.domainIDParam(w, r)
	if !ok {
		return
	}
	var probe domain.Domain
	payload, ok := s.patchBody(w, r, &probe)
	if !ok {
		return
	}
	updated, found := s.store.UpdateDomain(id, func(d *domain.Domain) {
		_ = json.Unmarshal(payload, d)
	})
	if !found {
		s.respondError(w, http.StatusNotFound, "domain not found")
		return
	}
	s.respond(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteDomain(w http.ResponseWriter, r *http.Request) {
	id, ok := s.domainIDParam(w, r)
	if !ok {
		return
	}
	s.store.DeleteDomain(id)
	s.respond(w, http.StatusNoContent, nil)
}

// Capabilities

func (s *Server) handleCreateCapability(w http.ResponseWriter, r *http.Request) {
	id, ok := s.domainIDParam(w, r)
	if !ok {
		return
	}
	var c domain.Capability
	if !s.decode(w, r, &c) {
		return
	}
	added, found := s.store.AddCapability(id, c)
	if !found {
		s.respondError(w, http.StatusNotFound, "domain not found")
		return
	}
	s.respond(w, http.StatusCreated, added)
}

func (s *Server) handleGetCapability(w http.ResponseWriter, r *http.Request) {
	capID := chi.URLParam(r, "capId")
	c, owner, found := s.store.CapabilityByID(capID)
	if !found {
		s.respondError(w, http.StatusNotFound, "capability not found")
		return
	}
	s.respond(w, http.StatusOK, map[string]any{"capability": c, "domainId": owner.ID, "domainName": owner.Name})
}

func (s *Server) handleUpdateCapability(w http.ResponseWriter, r *http.Request) {
	capID := chi.URLParam(r, "capId")
	var probe domain.Capability
	payload, ok := s.patchBody(w, r, &probe)
	if !ok {
		return
	}
	updated, found := s.store.UpdateCapability(capID, func(c *domain.Capability) {
		_ = json.Unmarshal(payload, c)
	})
	if !found {
		s.respondError(w, http.StatusNotFound, "capability not found")
		return
	}
	s.respond(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteCapability(w http.ResponseWriter, r *http.Request) {
	s.store.DeleteCapability(chi.URLParam(r, "capId"))
	s.respond(w, http.StatusNoContent, nil)
}

func (s *Server) handleCreateSubCapability(w http.ResponseWriter, r *http.Request) {
	capID := chi.URLParam(r, "capId")
	var sub domain.SubCapability
	if !s.decode(w, r, &sub) {
		return
	}
	added, found := s.store.AddSubCapability(capID, sub)
	if !found {
		s.respondError(w, http.StatusNotFound, "capability not found")
		return
	}
	s.respond(w, http.StatusCreated, added)
}

func (s *Server) handleDeleteSubCapability(w http.ResponseWriter, r *http.Request) {
	s.store.DeleteSubCapability(chi.URLParam(r, "capId"), chi.URLParam(r, "subId"))
	s.respond(w, http.StatusNoContent, nil)
}

func (s *Server) handleAppsForCapability(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, s.store.AppsForCapability(chi.URLParam(r, "capId")))
}

// Applications

func (s *Server) handleListApps(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, http.StatusOK, s.store.Applications())
}

func (s *Server) handleCreateApp(w http.ResponseWriter, r *http.Request) {
	var app domain.Application
	if !s.decode(w, r, &app) {
		return
	}
	s.respond(w, http.StatusCreated, s.store.AddApp(app))
}

func (s *Server) handleGetApp(w http.ResponseWriter, r *http.Request) {
	app, found := s.store.AppByID(chi.URLParam(r, "id"))
	if !found {
		s.respondError(w, http.StatusNotFound, "application not found")
		return
	}
	s.respond(w, http.StatusOK, app)
}

func (s *Server) handleUpdateApp(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var probe domain.Application
	payload, ok := s.patchBody(w, r, &probe)
	if !ok {
		return
	}
	updated, found := s.store.UpdateApp(id, func(a *domain.Application) {
		_ = json.Unmarshal(payload, a)
	})
	if !found {
		s.respondError(w, http.StatusNotFound, "application not found")
		return
	}
	s.respond(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteApp(w http.ResponseWriter, r *http.Request) {
	s.store.DeleteApp(chi.URLParam(r, "id"))
	s.respond(w, http.StatusNoContent, nil)
}

func (s *Server) handleCapabilitiesForApp(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, s.store.CapabilitiesForApp(chi.URLParam(r, "id")))
}

func (s *Server) handleVendorsForApp(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, s.store.VendorLinksForApp(chi.URLParam(r, "id")))
}

func (s *Server) handleProcessesForApp(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, s.store.ProcessesForApp(chi.URLParam(r, "id")))
}

// Mappings

func (s *Server) handleCreateMapping(w http.ResponseWriter, r *http.Request) {
	var m domain.CapabilityMapping
	if !s.decode(w, r, &m) {
		return
	}
	if m.CapabilityID == "" || m.ApplicationID == "" {
		s.respondError(w, http.StatusBadRequest, "capabilityId and applicationId are required")
		return
	}
	s.store.AddMapping(m.CapabilityID, m.ApplicationID, m.Role)
	s.respond(w, http.StatusCreated, map[string]string{"status": "mapped"})
}

func (s *Server) handleDeleteMapping(w http.ResponseWriter, r *http.Request) {
	s.store.RemoveMapping(chi.URLParam(r, "capId"), chi.URLParam(r, "appId"))
	s.respond(w, http.StatusNoContent, nil)
}

// Projects

func (s *Server) handleListProjects(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, http.StatusOK, s.store.Projects())
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var p domain.Project
	if !s.decode(w, r, &p) {
		return
	}
	s.respond(w, http.StatusCreated, s.store.AddProject(p))
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	p, found := s.store.ProjectByID(chi.URLParam(r, "id"))
	if !found {
		s.respondError(w, http.StatusNotFound, "project not found")
		return
	}
	s.respond(w, http.StatusOK, p)
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var probe domain.Project
	payload, ok := s.patchBody(w, r, &probe)
	if !ok {
		return
	}
	updated, found := s.store.UpdateProject(id, func(p *domain.Project) {
		_ = json.Unmarshal(payload, p)
	})
	if !found {
		s.respondError(w, http.StatusNotFound, "project not found")
		return
	}
	s.respond(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	s.store.DeleteProject(chi.URLParam(r, "id"))
	s.respond(w, http.StatusNoContent, nil)
}

func (s *Server) handleDepsForProject(w http.ResponseWriter, r *http.Request) {
	deps := s.store.DepsForProject(chi.URLParam(r, "id"))
	if deps == nil {
		deps = []domain.ProjectDependency{}
	}
	s.respond(w, http.StatusOK, deps)
}

func (s *Server) handleCreateDependency(w http.ResponseWriter, r *http.Request) {
	var dep domain.ProjectDependency
	if !s.decode(w, r, &dep) {
		return
	}
	if dep.SourceProjectID == "" || dep.TargetProjectID == "" {
		s.respondError(w, http.StatusBadRequest, "sourceProjectId and targetProjectId are required")
		return
	}
	s.store.AddDependency(dep)
	s.respond(w, http.StatusCreated, dep)
}

func (s *Server) handleDeleteDependency(w http.ResponseWriter, r *http.Request) {
	s.store.RemoveDependency(chi.URLParam(r, "sourceId"), chi.URLParam(r, "targetId"))
	s.respond(w, http.StatusNoContent, nil)
}

// Vendors

func (s *Server) handleListVendors(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, http.StatusOK, s.store.Vendors())
}

func (s *Server) handleCreateVendor(w http.ResponseWriter, r *http.Request) {
	var v domain.Vendor
	if !s.decode(w, r, &v) {
		return
	}
	s.respond(w, http.StatusCreated, s.store.AddVendor(v))
}

func (s *Server) handleGetVendor(w http.ResponseWriter, r *http.Request) {
	v, found := s.store.VendorByID(chi.URLParam(r, "id"))
	if !found {
		s.respondError(w, http.StatusNotFound, "vendor not found")
		return
	}
	s.respond(w, http.StatusOK, v)
}

func (s *Server) handleUpdateVendor(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var probe domain.Vendor
	payload, ok := s.patchBody(w, r, &probe)
	if !ok {
		return
	}
	updated, found := s.store.UpdateVendor(id, func(v *domain.Vendor) {
		_ = json.Unmarshal(payload, v)
	})
	if !found {
		s.respondError(w, http.StatusNotFound, "vendor not found")
		return
	}
	s.respond(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteVendor(w http.ResponseWriter, r *http.Request) {
	s.store.DeleteVendor(chi.URLParam(r, "id"))
	s.respond(w, http.StatusNoContent, nil)
}

func (s *Server) handleAppsForVendor(w http.ResponseWriter, r *http.Request) {
	apps := s.store.AppsForVendor(chi.URLParam(r, "id"))
	if apps == nil {
		apps = []domain.Application{}
	}
	s.respond(w, http.StatusOK, apps)
}

// Legal entities

func (s *Server) handleListEntities(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, http.StatusOK, s.store.Entities())
}

func (s *Server) handleCreateEntity(w http.ResponseWriter, r *http.Request) {
	var e domain.LegalEntity
	if !s.decode(w, r, &e) {
		return
	}
	s.respond(w, http.StatusCreated, s.store.AddEntity(e))
}

func (s *Server) handleGetEntity(w http.ResponseWriter, r *http.Request) {
	e, found := s.store.EntityByID(chi.URLParam(r, "id"))
	if !found {
		s.respondError(w, http.StatusNotFound, "entity not found")
		return
	}
	s.respond(w, http.StatusOK, e)
}

func (s *Server) handleUpdateEntity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var probe domain.LegalEntity
	payload, ok := s.patchBody(w, r, &probe)
	if !ok {
		return
	}
	updated, found := s.store.UpdateEntity(id, func(e *domain.LegalEntity) {
		_ = json.Unmarshal(payload, e)
	})
	if !found {
		s.respondError(w, http.StatusNotFound, "entity not found")
		return
	}
	s.respond(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteEntity(w http.ResponseWriter, r *http.Request) {
	s.store.DeleteEntity(chi.URLParam(r, "id"))
	s.respond(w, http.StatusNoContent, nil)
}

// Demands

func (s *Server) handleListDemands(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, http.StatusOK, s.store.Demands())
}

func (s *Server) handleCreateDemand(w http.ResponseWriter, r *http.Request) {
	var d domain.Demand
	if !s.decode(w, r, &d) {
		return
	}
	s.respond(w, http.StatusCreated, s.store.AddDemand(d))
}

func (s *Server) handleGetDemand(w http.ResponseWriter, r *http.Request) {
	d, found := s.store.DemandByID(chi.URLParam(r, "id"))
	if !found {
		s.respondError(w, http.StatusNotFound, "demand not found")
		return
	}
	s.respond(w, http.StatusOK, d)
}

func (s *Server) handleUpdateDemand(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var probe domain.Demand
	payload, ok := s.patchBody(w, r, &probe)
	if !ok {
		return
	}
	updated, found := s.store.UpdateDemand(id, func(d *domain.Demand) {
		_ = json.Unmarshal(payload, d)
	})
	if !found {
		s.respondError(w, http.StatusNotFound, "demand not found")
		return
	}
	s.respond(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteDemand(w http.ResponseWriter, r *http.Request) {
	s.store.DeleteDemand(chi.URLParam(r, "id"))
	s.respond(w, http.StatusNoContent, nil)
}

// Processes

func (s *Server) handleListProcesses(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, http.StatusOK, s.store.Processes())
}

func (s *Server) handleCreateProcess(w http.ResponseWriter, r *http.Request) {
	var p domain.E2EProcess
	if !s.decode(w, r, &p) {
		return
	}
	s.respond(w, http.StatusCreated, s.store.AddProcess(p))
}

func (s *Server) handleGetProcess(w http.ResponseWriter, r *http.Request) {
	p, found := s.store.ProcessByID(chi.URLParam(r, "id"))
	if !found {
		s.respondError(w, http.StatusNotFound, "process not found")
		return
	}
	s.respond(w, http.StatusOK, p)
}

func (s *Server) handleUpdateProcess(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var probe domain.E2EProcess
	payload, ok := s.patchBody(w, r, &probe)
	if !ok {
		return
	}
	updated, found := s.store.UpdateProcess(id, func(p *domain.E2EProcess) {
		_ = json.Unmarshal(payload, p)
	})
	if !found {
		s.respondError(w, http.StatusNotFound, "process not found")
		return
	}
	s.respond(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteProcess(w http.ResponseWriter, r *http.Request) {
	s.store.DeleteProcess(chi.URLParam(r, "id"))
	s.respond(w, http.StatusNoContent, nil)
}

func (s *Server) handleAppsForProcess(w http.ResponseWriter, r *http.Request) {
	apps := s.store.AppsForProcess(chi.URLParam(r, "id"))
	if apps == nil {
		apps = []core.ProcessApp{}
	}
	s.respond(w, http.StatusOK, apps)
}

// Integrations

func (s *Server) handleListIntegrations(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, http.StatusOK, s.store.Integrations())
}

func (s *Server) handleCreateIntegration(w http.ResponseWriter, r *http.Request) {
	var in domain.Integration
	if !s.decode(w, r, &in) {
		return
	}
	s.respond(w, http.StatusCreated, s.store.AddIntegration(in))
}

func (s *Server) handleGetIntegration(w http.ResponseWriter, r *http.Request) {
	in, found := s.store.IntegrationByID(chi.URLParam(r, "id"))
	if !found {
		s.respondError(w, http.StatusNotFound, "integration not found")
		return
	}
	s.respond(w, http.StatusOK, in)
}

func (s *Server) handleUpdateIntegration(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var probe domain.Integration
	payload, ok := s.patchBody(w, r, &probe)
	if !ok {
		return
	}
	updated, found := s.store.UpdateIntegration(id, func(in *domain.Integration) {
		_ = json.Unmarshal(payload, in)
	})
	if !found {
		s.respondError(w, http.StatusNotFound, "integration not found")
		return
	}
	s.respond(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteIntegration(w http.ResponseWriter, r *http.Request) {
	s.store.DeleteIntegration(chi.URLParam(r, "id"))
	s.respond(w, http.StatusNoContent, nil)
}

// Data objects

func (s *Server) handleListDataObjects(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, http.StatusOK, s.store.DataObjects())
}

func (s *Server) handleCreateDataObject(w http.ResponseWriter, r *http.Request) {
	var o domain.DataObject
	if !s.decode(w, r, &o) {
		return
	}
	s.respond(w, http.StatusCreated, s.store.AddDataObject(o))
}

func (s *Server) handleGetDataObject(w http.ResponseWriter, r *http.Request) {
	o, found := s.store.DataObjectByID(chi.URLParam(r, "id"))
	if !found {
		s.respondError(w, http.StatusNotFound, "data object not found")
		return
	}
	s.respond(w, http.StatusOK, o)
}

func (s *Server) handleUpdateDataObject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var probe domain.DataObject
	payload, ok := s.patchBody(w, r, &probe)
	if !ok {
		return
	}
	updated, found := s.store.UpdateDataObject(id, func(o *domain.DataObject) {
		_ = json.Unmarshal(payload, o)
	})
	if !found {
		s.respondError(w, http.StatusNotFound, "data object not found")
		return
	}
	s.respond(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteDataObject(w http.ResponseWriter, r *http.Request) {
	s.store.DeleteDataObject(chi.URLParam(r, "id"))
	s.respond(w, http.StatusNoContent, nil)
}

func (s *Server) handleAppsForDataObject(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, s.store.AppsForDataObject(chi.URLParam(r, "id")))
}

// Management KPIs

func (s *Server) handleListKPIs(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, http.StatusOK, s.store.ManagementKPIs())
}

func (s *Server) handleCreateKPI(w http.ResponseWriter, r *http.Request) {
	var k domain.ManagementKPI
	if !s.decode(w, r, &k) {
		return
	}
	s.respond(w, http.StatusCreated, s.store.AddManagementKPI(k))
}

func (s *Server) handleUpdateKPI(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var probe domain.ManagementKPI
	payload, ok := s.patchBody(w, r, &probe)
	if !ok {
		return
	}
	updated, found := s.store.UpdateManagementKPI(id, func(k *domain.ManagementKPI) {
		_ = json.Unmarshal(payload, k)
	})
	if !found {
		s.respondError(w, http.StatusNotFound, "kpi not found")
		return
	}
	s.respond(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteKPI(w http.ResponseWriter, r *http.Request) {
	s.store.DeleteManagementKPI(chi.URLParam(r, "id"))
	s.respond(w, http.StatusNoContent, nil)
}

// Assessments

func (s *Server) handleListAssessments(w http.ResponseWriter, r *http.Request) {
	if appID := r.URL.Query().Get("appId"); appID != "" {
		list := s.store.AssessmentsForApp(appID)
		if list == nil {
			list = []domain.ComplianceAssessment{}
		}
		s.respond(w, http.StatusOK, list)
		return
	}
	if regulation := r.URL.Query().Get("regulation"); regulation != "" {
		list := s.store.AssessmentsForRegulation(regulation)
		if list == nil {
			list = []domain.ComplianceAssessment{}
		}
		s.respond(w, http.StatusOK, list)
		return
	}
	s.respond(w, http.StatusOK, s.store.Assessments())
}

func (s *Server) handleCreateAssessment(w http.ResponseWriter, r *http.Request) {
	var a domain.ComplianceAssessment
	if !s.decode(w, r, &a) {
		return
	}
	s.respond(w, http.StatusCreated, s.store.AddAssessment(a))
}

func (s *Server) handleGetAssessment(w http.ResponseWriter, r *http.Request) {
	a, found := s.store.AssessmentByID(chi.URLParam(r, "id"))
	if !found {
		s.respondError(w, http.StatusNotFound, "assessment not found")
		return
	}
	s.respond(w, http.StatusOK, a)
}

func (s *Server) handleUpdateAssessment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var probe domain.ComplianceAssessment
	payload, ok := s.patchBody(w, r, &probe)
	if !ok {
		return
	}
	updated, found := s.store.UpdateAssessment(id, func(a *domain.ComplianceAssessment) {
		_ = json.Unmarshal(payload, a)
	})
	if !found {
		s.respondError(w, http.StatusNotFound, "assessment not found")
		return
	}
	s.respond(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteAssessment(w http.ResponseWriter, r *http.Request) {
	s.store.DeleteAssessment(chi.URLParam(r, "id"))
	s.respond(w, http.StatusNoContent, nil)
}

type transitionRequest struct {
	ToStatus domain.WorkflowStatus `json:"toStatus"`
	User     string                `json:"user"`
	Comment  string                `json:"comment"`
}

func (s *Server) handleAssessmentTransition(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req transitionRequest
	if !s.decode(w, r, &req) {
		return
	}
	if _, found := s.store.AssessmentByID(id); !found {
		s.respondError(w, http.StatusNotFound, "assessment not found")
		return
	}
	if !s.store.TransitionAssessmentWorkflow(id, req.ToStatus, req.User, req.Comment) {
		s.respondError(w, http.StatusConflict, "transition not allowed")
		return
	}
	a, _ := s.store.AssessmentByID(id)
	s.respond(w, http.StatusOK, a)
}

func (s *Server) handleAssessmentAuditTrail(w http.ResponseWriter, r *http.Request) {
	trail := s.store.AuditTrailForAssessment(chi.URLParam(r, "id"))
	if trail == nil {
		trail = []domain.AuditEntry{}
	}
	s.respond(w, http.StatusOK, trail)
}
