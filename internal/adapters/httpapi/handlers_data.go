package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"archcore/internal/core"
)

type templateSummary struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Domains     int    `json:"domains"`
}

func templatesSummary() []templateSummary {
	templates := core.DomainTemplates()
	out := make([]templateSummary, len(templates))
	for i, t := range templates {
		out[i] = templateSummary{ID: t.ID, Label: t.Label, Description: t.Description, Domains: len(t.Domains)}
	}
	return out
}

func (s *Server) handleGetData(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, http.StatusOK, s.store.Snapshot())
}

type saveAck struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// handleSave accepts a full document from a client-side store and
// persists it, mirroring the save endpoint the gateway itself posts to
// when configured against an upstream.
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	payload, ok := s.readBody(w, r)
	if !ok {
		return
	}
	if err := s.gateway.ImportJSON(payload); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.gateway.Flush()
	s.respond(w, http.StatusOK, saveAck{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	payload, ok := s.readBody(w, r)
	if !ok {
		return
	}
	if err := s.gateway.ImportJSON(payload); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respond(w, http.StatusOK, map[string]string{"status": "imported"})
}

func (s *Server) handleExport(w http.ResponseWriter, _ *http.Request) {
	payload, err := s.gateway.ExportJSON()
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	name := "architecture_" + time.Now().UTC().Format("2006-01-02") + ".json"
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	source := s.gateway.ResetToSeed(r.Context())
	s.respond(w, http.StatusOK, map[string]string{"status": "reset", "source": source})
}

func (s *Server) handleArchiveSnapshot(w http.ResponseWriter, r *http.Request) {
	key, err := s.gateway.ArchiveSnapshot(r.Context())
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if key == "" {
		s.respondError(w, http.StatusNotImplemented, "no snapshot archive configured")
		return
	}
	s.respond(w, http.StatusOK, map[string]string{"status": "archived", "key": key})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if s.metrics != nil {
		s.metrics.SearchesTotal.Inc()
	}
	results := s.store.GlobalSearch(query)
	if results == nil {
		results = []core.SearchResult{}
	}
	s.respond(w, http.StatusOK, map[string]any{"query": query, "results": results})
}

func (s *Server) handleListTemplates(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, http.StatusOK, templatesSummary())
}

func (s *Server) handleApplyTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.store.ApplyDomainTemplate(id) {
		s.respondError(w, http.StatusNotFound, "unknown template "+id)
		return
	}
	s.respond(w, http.StatusOK, map[string]string{"status": "applied", "template": id})
}

// selectedParam splits a comma-separated list query parameter.
func selectedParam(r *http.Request, name string) []string {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
