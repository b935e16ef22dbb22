// Package httpapi exposes the dataset store over a REST surface.
package httpapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"archcore/internal/core"
	"archcore/internal/observability"
)

// Server handles the REST routes over one store and its gateway.
type Server struct {
	store   *core.Store
	gateway *core.Gateway
	log     *slog.Logger
	metrics *observability.Metrics
}

// New builds the server. Logger may be nil; metrics may be nil, which
// disables counting but keeps /metrics mounted by the caller's choice.
func New(store *core.Store, gateway *core.Gateway, log *slog.Logger, metrics *observability.Metrics) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{store: store, gateway: gateway, log: log, metrics: metrics}
}

// Routes mounts every endpoint on a fresh router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	if s.metrics != nil {
		r.Use(s.countRequests)
	}

	r.Get("/healthz", s.handleHealthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/data", s.handleGetData)
		r.Post("/save", s.handleSave)
		r.Post("/import", s.handleImport)
		r.Get("/export", s.handleExport)
		r.Post("/reset", s.handleReset)
		r.Post("/snapshot", s.handleArchiveSnapshot)
		r.Get("/search", s.handleSearch)

		r.Get("/templates", s.handleListTemplates)
		r.Post("/templates/{id}/apply", s.handleApplyTemplate)

		r.Route("/domains", func(r chi.Router) {
			r.Get("/", s.handleListDomains)
			r.Post("/", s.handleCreateDomain)
			r.Get("/{id}", s.handleGetDomain)
			r.Put("/{id}", s.handleUpdateDomain)
			r.Delete("/{id}", s.handleDeleteDomain)
			r.Post("/{id}/capabilities", s.handleCreateCapability)
		})
		r.Route("/capabilities", func(r chi.Router) {
			r.Get("/{capId}", s.handleGetCapability)
			r.Put("/{capId}", s.handleUpdateCapability)
			r.Delete("/{capId}", s.handleDeleteCapability)
			r.Post("/{capId}/subcapabilities", s.handleCreateSubCapability)
			r.Delete("/{capId}/subcapabilities/{subId}", s.handleDeleteSubCapability)
			r.Get("/{capId}/applications", s.handleAppsForCapability)
		})
		r.Route("/applications", func(r chi.Router) {
			r.Get("/", s.handleListApps)
			r.Post("/", s.handleCreateApp)
			r.Get("/{id}", s.handleGetApp)
			r.Put("/{id}", s.handleUpdateApp)
			r.Delete("/{id}", s.handleDeleteApp)
			r.Get("/{id}/capabilities", s.handleCapabilitiesForApp)
			r.Get("/{id}/vendors", s.handleVendorsForApp)
			r.Get("/{id}/processes", s.handleProcessesForApp)
		})
		r.Route("/mappings", func(r chi.Router) {
			r.Post("/", s.handleCreateMapping)
			r.Delete("/{capId}/{appId}", s.handleDeleteMapping)
		})
		r.Route("/projects", func(r chi.Router) {
			r.Get("/", s.handleListProjects)
			r.Post("/", s.handleCreateProject)
			r.Get("/{id}", s.handleGetProject)
			r.Put("/{id}", s.handleUpdateProject)
			r.Delete("/{id}", s.handleDeleteProject)
			r.Get("/{id}/dependencies", s.handleDepsForProject)
		})
		r.Route("/dependencies", func(r chi.Router) {
			r.Post("/", s.handleCreateDependency)
			r.Delete("/{sourceId}/{targetId}", s.handleDeleteDependency)
		})
		r.Route("/vendors", func(r chi.Router) {
			r.Get("/", s.handleListVendors)
			r.Post("/", s.handleCreateVendor)
			r.Get("/{id}", s.handleGetVendor)
			r.Put("/{id}", s.handleUpdateVendor)
			r.Delete("/{id}", s.handleDeleteVendor)
			r.Get("/{id}/applications", s.handleAppsForVendor)
		})
		r.Route("/entities", func(r chi.Router) {
			r.Get("/", s.handleListEntities)
			r.Post("/", s.handleCreateEntity)
			r.Get("/{id}", s.handleGetEntity)
			r.Put("/{id}", s.handleUpdateEntity)
			r.Delete("/{id}", s.handleDeleteEntity)
		})
		r.Route("/demands", func(r chi.Router) {
			r.Get("/", s.handleListDemands)
			r.Post("/", s.handleCreateDemand)
			r.Get("/{id}", s.handleGetDemand)
			r.Put("/{id}", s.handleUpdateDemand)
			r.Delete("/{id}", s.handleDeleteDemand)
		})
		r.Route("/processes", func(r chi.Router) {
			r.Get("/", s.handleListProcesses)
			r.Post("/", s.handleCreateProcess)
			r.Get("/{id}", s.handleGetProcess)
			r.Put("/{id}", s.handleUpdateProcess)
			r.Delete("/{id}", s.handleDeleteProcess)
			r.Get("/{id}/applications", s.handleAppsForProcess)
		})
		r.Route("/integrations", func(r chi.Router) {
			r.Get("/", s.handleListIntegrations)
			r.Post("/", s.handleCreateIntegration)
			r.Get("/{id}", s.handleGetIntegration)
			r.Put("/{id}", s.handleUpdateIntegration)
			r.Delete("/{id}", s.handleDeleteIntegration)
		})
		r.Route("/data-objects", func(r chi.Router) {
			r.Get("/", s.handleListDataObjects)
			r.Post("/", s.handleCreateDataObject)
			r.Get("/{id}", s.handleGetDataObject)
			r.Put("/{id}", s.handleUpdateDataObject)
			r.Delete("/{id}", s.handleDeleteDataObject)
			r.Get("/{id}/applications", s.handleAppsForDataObject)
		})
		r.Route("/kpis", func(r chi.Router) {
			r.Get("/", s.handleListKPIs)
			r.Post("/", s.handleCreateKPI)
			r.Put("/{id}", s.handleUpdateKPI)
			r.Delete("/{id}", s.handleDeleteKPI)
		})
		r.Route("/assessments", func(r chi.Router) {
			r.Get("/", s.handleListAssessments)
			r.Post("/", s.handleCreateAssessment)
			r.Get("/{id}", s.handleGetAssessment)
			r.Put("/{id}", s.handleUpdateAssessment)
			r.Delete("/{id}", s.handleDeleteAssessment)
			r.Post("/{id}/transition", s.handleAssessmentTransition)
			r.Get("/{id}/audit-trail", s.handleAssessmentAuditTrail)
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/summary", s.handleAnalyticsSummary)
			r.Get("/maturity-gaps", s.handleMaturityGaps)
			r.Get("/compliance/gaps", s.handleComplianceGaps)
			r.Get("/compliance/score", s.handleComplianceScore)
			r.Get("/compliance/load", s.handleRegulationLoad)
			r.Get("/compliance/vendors", s.handleVendorCompliance)
			r.Get("/compliance/scorecard", s.handleComplianceScorecard)
			r.Get("/compliance/deadlines", s.handleDeadlineWarnings)
			r.Get("/compliance/regulation-deadlines", s.handleRegulationDeadlines)
			r.Get("/skills", s.handleSkillSummaries)
			r.Get("/skills/bus-factor", s.handleBusFactor)
			r.Get("/skills/loss", s.handleSkillLoss)
		})
	})

	return r
}

// countRequests records one counter increment per request, labelled with
// the chi route pattern rather than the raw path so ids do not explode
// the cardinality.
func (s *Server) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		s.metrics.RequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Inc()
	})
}

func (s *Server) respond(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Warn("response encode failed", "error", err)
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) respondError(w http.ResponseWriter, status int, msg string) {
	s.respond(w, status, errorBody{Error: msg})
}

// readBody drains the request body, rejecting read failures with a 400.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "read body: "+err.Error())
		return nil, false
	}
	return payload, true
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, into any) bool {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON payload: "+err.Error())
		return false
	}
	return true
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, http.StatusOK, map[string]string{"status": "ok"})
}
