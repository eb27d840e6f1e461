package server

import (
	"net/http"

	"github.com/jonathan/resume-builder/internal/tracker"
	"github.com/jonathan/resume-builder/internal/types"
)

// ListApplicationsResponse lists tracked applications
type ListApplicationsResponse struct {
	Applications []*types.Application `json:"applications"`
	Count        int                  `json:"count"`
}

// AddApplicationRequest creates a tracked application. Status defaults to applied.
type AddApplicationRequest struct {
	Company      string                  `json:"company" validate:"required"`
	Position     string                  `json:"position" validate:"required"`
	URL          string                  `json:"url"`
	Status       types.ApplicationStatus `json:"status"`
	AppliedDate  string                  `json:"appliedDate"`
	FollowUpDate string                  `json:"followUpDate"`
	Notes        string                  `json:"notes"`
}

// FollowUp is an application due for a follow-up
type FollowUp struct {
	*types.Application
	Overdue bool `json:"overdue"`
}

func (s *Server) handleListApplications(w http.ResponseWriter, _ *http.Request) {
	apps := s.ws.Tracker.List()
	if apps == nil {
		apps = []*types.Application{}
	}
	s.jsonResponse(w, http.StatusOK, ListApplicationsResponse{Applications: apps, Count: len(apps)})
}

func (s *Server) handleAddApplication(w http.ResponseWriter, r *http.Request) {
	var req AddApplicationRequest
	if err := s.decodeJSON(r, &req, false); err != nil {
		s.errorFrom(w, r, err)
		return
	}
	app, err := s.ws.Tracker.Add(r.Context(), types.Application{
		Company:      req.Company,
		Position:     req.Position,
		URL:          req.URL,
		Status:       req.Status,
		AppliedDate:  req.AppliedDate,
		FollowUpDate: req.FollowUpDate,
		Notes:        req.Notes,
	})
	if err != nil {
		s.errorFrom(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, app)
}

// handleFollowUps lists active applications whose follow-up is due soon
func (s *Server) handleFollowUps(w http.ResponseWriter, _ *http.Request) {
	now := s.now()
	due := s.ws.Tracker.NeedingFollowUp(now)
	followUps := make([]FollowUp, 0, len(due))
	for _, app := range due {
		followUps = append(followUps, FollowUp{Application: app, Overdue: tracker.IsOverdue(app, now)})
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"followUps": followUps, "count": len(followUps)})
}

func (s *Server) handleApplicationStats(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.ws.Tracker.Stats())
}

func (s *Server) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	app := s.ws.Tracker.Get(id)
	if app == nil {
		s.errorFrom(w, r, &ErrNotFound{Kind: "application", ID: id})
		return
	}
	s.jsonResponse(w, http.StatusOK, app)
}

func (s *Server) handleUpdateApplication(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req tracker.Update
	if err := s.decodeJSON(r, &req, false); err != nil {
		s.errorFrom(w, r, err)
		return
	}
	app, err := s.ws.Tracker.Update(r.Context(), id, req)
	if err != nil {
		s.errorFrom(w, r, err)
		return
	}
	if app == nil {
		s.errorFrom(w, r, &ErrNotFound{Kind: "application", ID: id})
		return
	}
	s.jsonResponse(w, http.StatusOK, app)
}

func (s *Server) handleDeleteApplication(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if s.ws.Tracker.Get(id) == nil {
		s.errorFrom(w, r, &ErrNotFound{Kind: "application", ID: id})
		return
	}
	if err := s.ws.Tracker.Delete(r.Context(), id); err != nil {
		s.errorFrom(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
