package server

import (
	"net/http"

	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/versions"
)

// SaveVersionRequest names a new snapshot of the live document
type SaveVersionRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// ListVersionsResponse lists version summaries, newest first
type ListVersionsResponse struct {
	Versions []types.VersionSummary `json:"versions"`
	Count    int                    `json:"count"`
}

func (s *Server) handleListVersions(w http.ResponseWriter, _ *http.Request) {
	summaries := s.ws.Versions.Summaries()
	if summaries == nil {
		summaries = []types.VersionSummary{}
	}
	s.jsonResponse(w, http.StatusOK, ListVersionsResponse{Versions: summaries, Count: len(summaries)})
}

func (s *Server) handleSaveVersion(w http.ResponseWriter, r *http.Request) {
	var req SaveVersionRequest
	if err := s.decodeJSON(r, &req, false); err != nil {
		s.errorFrom(w, r, err)
		return
	}
	version, err := s.ws.Versions.SaveVersion(r.Context(), req.Name, req.Description)
	if err != nil {
		s.errorFrom(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, version)
}

// handleCompareVersions diffs ?a= against ?b=
func (s *Server) handleCompareVersions(w http.ResponseWriter, r *http.Request) {
	a, b := r.URL.Query().Get("a"), r.URL.Query().Get("b")
	if a == "" || b == "" {
		s.errorFrom(w, r, &ErrValidation{Message: "query parameters a and b are required"})
		return
	}
	comparison := s.ws.Versions.CompareVersions(a, b)
	if comparison == nil {
		s.errorFrom(w, r, &ErrNotFound{Kind: "version", ID: a + ", " + b})
		return
	}
	s.jsonResponse(w, http.StatusOK, comparison)
}

func (s *Server) handleGetVersion(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	version := s.ws.Versions.Get(id)
	if version == nil {
		s.errorFrom(w, r, &ErrNotFound{Kind: "version", ID: id})
		return
	}
	s.jsonResponse(w, http.StatusOK, version)
}

func (s *Server) handleUpdateVersion(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req versions.VersionUpdate
	if err := s.decodeJSON(r, &req, false); err != nil {
		s.errorFrom(w, r, err)
		return
	}
	version, err := s.ws.Versions.UpdateVersion(r.Context(), id, req)
	if err != nil {
		s.errorFrom(w, r, err)
		return
	}
	if version == nil {
		s.errorFrom(w, r, &ErrNotFound{Kind: "version", ID: id})
		return
	}
	s.jsonResponse(w, http.StatusOK, version)
}

func (s *Server) handleDeleteVersion(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if s.ws.Versions.Get(id) == nil {
		s.errorFrom(w, r, &ErrNotFound{Kind: "version", ID: id})
		return
	}
	if err := s.ws.Versions.DeleteVersion(r.Context(), id); err != nil {
		s.errorFrom(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDuplicateVersion(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	dup, err := s.ws.Versions.Duplicate(r.Context(), id)
	if err != nil {
		s.errorFrom(w, r, err)
		return
	}
	if dup == nil {
		s.errorFrom(w, r, &ErrNotFound{Kind: "version", ID: id})
		return
	}
	s.jsonResponse(w, http.StatusCreated, dup)
}

// handleLoadVersion makes a saved version the live document
func (s *Server) handleLoadVersion(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.ws.Versions.LoadVersion(id) {
		s.errorFrom(w, r, &ErrNotFound{Kind: "version", ID: id})
		return
	}
	s.jsonResponse(w, http.StatusOK, s.resumeResponse())
}

func (s *Server) handlePreviewVersion(w http.ResponseWriter, r *http.Request) {
	var template types.TemplateID
	if name := r.URL.Query().Get("template"); name != "" {
		template = types.ParseTemplateID(name)
	}
	html, err := s.ws.PreviewVersion(r.PathValue("id"), template)
	if err != nil {
		s.errorFrom(w, r, err)
		return
	}
	s.htmlResponse(w, html)
}

func (s *Server) handleExportVersion(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.PathValue("format"))
	if err != nil {
		s.errorFrom(w, r, err)
		return
	}
	file, err := s.ws.ExportVersion(r.Context(), r.PathValue("id"), format)
	if err != nil {
		s.errorFrom(w, r, err)
		return
	}
	s.fileResponse(w, file.Name, file.ContentType, file.Data)
}
