package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/resume-builder/internal/document"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
)

// ResumeResponse is the live document with its template and completion
type ResumeResponse struct {
	Resume   *types.ResumeDocument `json:"resume"`
	Template types.TemplateID      `json:"template"`
	Progress int                   `json:"progress"`
}

// ValueRequest carries a single text value
type ValueRequest struct {
	Value string `json:"value"`
}

// SkillRequest adds one skill
type SkillRequest struct {
	Skill string `json:"skill" validate:"required"`
}

// TemplateRequest selects a template
type TemplateRequest struct {
	Template string `json:"template" validate:"required"`
}

// ShareLoadRequest carries a share link or bare token
type ShareLoadRequest struct {
	Link string `json:"link" validate:"required"`
}

func (s *Server) resumeResponse() ResumeResponse {
	doc := s.ws.Session.Snapshot()
	return ResumeResponse{
		Resume:   doc,
		Template: s.ws.Session.Template(),
		Progress: document.Progress(doc),
	}
}

func (s *Server) handleGetResume(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.resumeResponse())
}

// handleReplaceResume swaps the live document for a schema-valid one
func (s *Server) handleReplaceResume(w http.ResponseWriter, r *http.Request) {
	data, err := s.readBody(r)
	if err != nil {
		s.errorFrom(w, r, err)
		return
	}
	if err := schemas.ValidateDocument(data); err != nil {
		s.errorFrom(w, r, &ErrValidation{Field: "resume", Message: err.Error()})
		return
	}

	var doc types.ResumeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		s.errorFrom(w, r, &ErrValidation{Field: "resume", Message: err.Error()})
		return
	}
	s.ws.Session.Replace(&doc)
	s.jsonResponse(w, http.StatusOK, s.resumeResponse())
}

func (s *Server) handleSetPersonalField(w http.ResponseWriter, r *http.Request) {
	var req ValueRequest
	if err := s.decodeJSON(r, &req, false); err != nil {
		s.errorFrom(w, r, err)
		return
	}
	if err := s.ws.Session.SetPersonalField(r.PathValue("field"), req.Value); err != nil {
		s.errorFrom(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.ws.Session.Snapshot().Personal)
}

func (s *Server) handleSetSummary(w http.ResponseWriter, r *http.Request) {
	var req ValueRequest
	if err := s.decodeJSON(r, &req, false); err != nil {
		s.errorFrom(w, r, err)
		return
	}
	s.ws.Session.SetSummary(req.Value)
	s.jsonResponse(w, http.StatusOK, map[string]string{"summary": req.Value})
}

// handleAddExperience appends an entry; any client-sent id is replaced
func (s *Server) handleAddExperience(w http.ResponseWriter, r *http.Request) {
	var req types.Experience
	if err := s.decodeJSON(r, &req, true); err != nil {
		s.errorFrom(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, s.ws.Session.AddExperience(req))
}

func (s *Server) handleUpdateExperience(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.errorFrom(w, r, err)
		return
	}
	var req document.ExperienceUpdate
	if err := s.decodeJSON(r, &req, false); err != nil {
		s.errorFrom(w, r, err)
		return
	}
	exp, err := s.ws.Session.UpdateExperience(id, req)
	if err != nil {
		s.errorFrom(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, exp)
}

func (s *Server) handleRemoveExperience(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.errorFrom(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]bool{"removed": s.ws.Session.RemoveExperience(id)})
}

func (s *Server) handleAddEducation(w http.ResponseWriter, r *http.Request) {
	var req types.Education
	if err := s.decodeJSON(r, &req, true); err != nil {
		s.errorFrom(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, s.ws.Session.AddEducation(req))
}

func (s *Server) handleUpdateEducation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.errorFrom(w, r, err)
		return
	}
	var req document.EducationUpdate
	if err := s.decodeJSON(r, &req, false); err != nil {
		s.errorFrom(w, r, err)
		return
	}
	edu, err := s.ws.Session.UpdateEducation(id, req)
	if err != nil {
		s.errorFrom(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, edu)
}

func (s *Server) handleRemoveEducation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.errorFrom(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]bool{"removed": s.ws.Session.RemoveEducation(id)})
}

// handleAddSkill adds a skill; blanks and duplicates are reported as not added
func (s *Server) handleAddSkill(w http.ResponseWriter, r *http.Request) {
	var req SkillRequest
	if err := s.decodeJSON(r, &req, false); err != nil {
		s.errorFrom(w, r, err)
		return
	}
	added := s.ws.Session.AddSkill(req.Skill)
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"added":  added,
		"skills": s.ws.Session.Snapshot().Skills,
	})
}

func (s *Server) handleRemoveSkill(w http.ResponseWriter, r *http.Request) {
	removed := s.ws.Session.RemoveSkill(r.PathValue("skill"))
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"removed": removed,
		"skills":  s.ws.Session.Snapshot().Skills,
	})
}

func (s *Server) handleProgress(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]int{"progress": s.ws.Session.Progress()})
}

func (s *Server) handleSetTemplate(w http.ResponseWriter, r *http.Request) {
	var req TemplateRequest
	if err := s.decodeJSON(r, &req, false); err != nil {
		s.errorFrom(w, r, err)
		return
	}
	id := s.ws.Session.SetTemplate(types.TemplateID(req.Template))
	s.jsonResponse(w, http.StatusOK, map[string]types.TemplateID{"template": id})
}

// handlePreview renders the live document. ?template= overrides the current template.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	template := s.ws.Session.Template()
	if name := r.URL.Query().Get("template"); name != "" {
		template = types.ParseTemplateID(name)
	}
	html, err := rendering.Page(s.ws.Session.Snapshot(), template)
	if err != nil {
		s.errorFrom(w, r, err)
		return
	}
	s.htmlResponse(w, html)
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if err := s.ws.SaveProgress(r.Context()); err != nil {
		s.errorFrom(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "saved"})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.PathValue("format"))
	if err != nil {
		s.errorFrom(w, r, err)
		return
	}
	file, err := s.ws.ExportResume(r.Context(), format)
	if err != nil {
		s.errorFrom(w, r, err)
		return
	}
	s.fileResponse(w, file.Name, file.ContentType, file.Data)
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	link, err := s.ws.ShareLink()
	if err != nil {
		s.errorFrom(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"link": link})
}

// handleLoadShared replaces the live document with a shared one
func (s *Server) handleLoadShared(w http.ResponseWriter, r *http.Request) {
	var req ShareLoadRequest
	if err := s.decodeJSON(r, &req, false); err != nil {
		s.errorFrom(w, r, err)
		return
	}
	if _, err := s.ws.LoadShared(req.Link); err != nil {
		s.errorFrom(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.resumeResponse())
}
