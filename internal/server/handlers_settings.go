package server

import (
	"net/http"
)

// APIKeyRequest sets the text-generation credential
type APIKeyRequest struct {
	APIKey string `json:"apiKey" validate:"required"`
}

// ClearDataRequest must carry the confirmation word
type ClearDataRequest struct {
	Confirm string `json:"confirm" validate:"required"`
}

// handleGetAPIKey reports whether a key is configured. The key itself is never returned.
func (s *Server) handleGetAPIKey(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]bool{"configured": s.ws.HasAPIKey()})
}

func (s *Server) handleSetAPIKey(w http.ResponseWriter, r *http.Request) {
	var req APIKeyRequest
	if err := s.decodeJSON(r, &req, false); err != nil {
		s.errorFrom(w, r, err)
		return
	}
	if err := s.ws.SetAPIKey(r.Context(), req.APIKey); err != nil {
		s.errorFrom(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]bool{"configured": true})
}

func (s *Server) handleClearAPIKey(w http.ResponseWriter, r *http.Request) {
	if err := s.ws.ClearAPIKey(r.Context()); err != nil {
		s.errorFrom(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]bool{"configured": false})
}

// handleExportBackup downloads every collection as one JSON bundle
func (s *Server) handleExportBackup(w http.ResponseWriter, r *http.Request) {
	data, name, err := s.ws.ExportBackup()
	if err != nil {
		s.errorFrom(w, r, err)
		return
	}
	s.fileResponse(w, name, "application/json", data)
}

// handleImportBackup restores a bundle produced by handleExportBackup
func (s *Server) handleImportBackup(w http.ResponseWriter, r *http.Request) {
	data, err := s.readBody(r)
	if err != nil {
		s.errorFrom(w, r, err)
		return
	}
	if err := s.ws.ImportBackup(r.Context(), data); err != nil {
		s.errorFrom(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":       "imported",
		"versions":     len(s.ws.Versions.List()),
		"coverLetters": len(s.ws.Letters.List()),
		"applications": len(s.ws.Tracker.List()),
	})
}

func (s *Server) handleClearAll(w http.ResponseWriter, r *http.Request) {
	var req ClearDataRequest
	if err := s.decodeJSON(r, &req, false); err != nil {
		s.errorFrom(w, r, err)
		return
	}
	if err := s.ws.ClearAll(r.Context(), req.Confirm); err != nil {
		s.errorFrom(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "cleared"})
}
