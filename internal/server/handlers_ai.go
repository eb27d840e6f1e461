package server

import (
	"net/http"
)

// ApplyRequest controls whether a rewrite replaces the live text
type ApplyRequest struct {
	Apply bool `json:"apply"`
}

// TextRequest carries free text for a suggestion
type TextRequest struct {
	Text string `json:"text" validate:"required"`
}

// DescriptionRequest carries an experience description
type DescriptionRequest struct {
	Description string `json:"description" validate:"required"`
}

// JobDescriptionRequest carries a target job description
type JobDescriptionRequest struct {
	JobDescription string `json:"jobDescription" validate:"required"`
}

// TextResponse is the generated text
type TextResponse struct {
	Text    string `json:"text"`
	Applied bool   `json:"applied"`
}

func (s *Server) handleOptimizeSummary(w http.ResponseWriter, r *http.Request) {
	var req ApplyRequest
	if err := s.decodeJSON(r, &req, true); err != nil {
		s.errorFrom(w, r, err)
		return
	}
	text, err := s.ws.OptimizeSummary(r.Context(), req.Apply)
	if err != nil {
		s.errorFrom(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, TextResponse{Text: text, Applied: req.Apply})
}

func (s *Server) handleOptimizeDescription(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.errorFrom(w, r, err)
		return
	}
	var req ApplyRequest
	if err := s.decodeJSON(r, &req, true); err != nil {
		s.errorFrom(w, r, err)
		return
	}
	text, err := s.ws.OptimizeExperience(r.Context(), id, req.Apply)
	if err != nil {
		s.errorFrom(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, TextResponse{Text: text, Applied: req.Apply})
}

func (s *Server) handleActionVerbs(w http.ResponseWriter, r *http.Request) {
	var req TextRequest
	if err := s.decodeJSON(r, &req, false); err != nil {
		s.errorFrom(w, r, err)
		return
	}
	text, err := s.ws.Optimizer().SuggestActionVerbs(r.Context(), req.Text)
	if err != nil {
		s.errorFrom(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, TextResponse{Text: text})
}

func (s *Server) handleQuantify(w http.ResponseWriter, r *http.Request) {
	var req DescriptionRequest
	if err := s.decodeJSON(r, &req, false); err != nil {
		s.errorFrom(w, r, err)
		return
	}
	text, err := s.ws.Optimizer().QuantifyAchievements(r.Context(), req.Description)
	if err != nil {
		s.errorFrom(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, TextResponse{Text: text})
}

// handleTailor returns keyword and emphasis suggestions for a job. An
// unparseable reply is returned as {rawResponse, error}.
func (s *Server) handleTailor(w http.ResponseWriter, r *http.Request) {
	var req JobDescriptionRequest
	if err := s.decodeJSON(r, &req, false); err != nil {
		s.errorFrom(w, r, err)
		return
	}
	result, err := s.ws.Optimizer().TailorForJob(r.Context(), s.ws.Session.Snapshot(), req.JobDescription)
	if err != nil {
		s.errorFrom(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

func (s *Server) handleSkillsGap(w http.ResponseWriter, r *http.Request) {
	var req JobDescriptionRequest
	if err := s.decodeJSON(r, &req, false); err != nil {
		s.errorFrom(w, r, err)
		return
	}
	result, err := s.ws.Optimizer().AnalyzeSkillsGap(r.Context(), s.ws.Session.Snapshot().Skills, req.JobDescription)
	if err != nil {
		s.errorFrom(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

func (s *Server) handleATS(w http.ResponseWriter, r *http.Request) {
	result, err := s.ws.CheckATS(r.Context())
	if err != nil {
		s.errorFrom(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}
