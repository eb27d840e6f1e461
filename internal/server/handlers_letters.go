package server

import (
	"net/http"

	"github.com/jonathan/resume-builder/internal/coverletter"
	"github.com/jonathan/resume-builder/internal/types"
)

// UpdateCoverLetterRequest replaces a letter's body
type UpdateCoverLetterRequest struct {
	Content string `json:"content" validate:"required"`
}

// ListCoverLettersResponse lists cover letters, newest first
type ListCoverLettersResponse struct {
	CoverLetters []*types.CoverLetter `json:"coverLetters"`
	Count        int                  `json:"count"`
}

func (s *Server) handleListCoverLetters(w http.ResponseWriter, _ *http.Request) {
	letters := s.ws.Letters.List()
	if letters == nil {
		letters = []*types.CoverLetter{}
	}
	s.jsonResponse(w, http.StatusOK, ListCoverLettersResponse{CoverLetters: letters, Count: len(letters)})
}

// handleGenerateCoverLetter drafts a letter for the live resume
func (s *Server) handleGenerateCoverLetter(w http.ResponseWriter, r *http.Request) {
	var req coverletter.GenerateRequest
	if err := s.decodeJSON(r, &req, false); err != nil {
		s.errorFrom(w, r, err)
		return
	}
	letter, err := s.ws.GenerateCoverLetter(r.Context(), req)
	if err != nil {
		s.errorFrom(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, letter)
}

func (s *Server) handleGetCoverLetter(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	letter := s.ws.Letters.Get(id)
	if letter == nil {
		s.errorFrom(w, r, &ErrNotFound{Kind: "cover letter", ID: id})
		return
	}
	s.jsonResponse(w, http.StatusOK, letter)
}

func (s *Server) handleUpdateCoverLetter(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req UpdateCoverLetterRequest
	if err := s.decodeJSON(r, &req, false); err != nil {
		s.errorFrom(w, r, err)
		return
	}
	letter, err := s.ws.Letters.Update(r.Context(), id, req.Content)
	if err != nil {
		s.errorFrom(w, r, err)
		return
	}
	if letter == nil {
		s.errorFrom(w, r, &ErrNotFound{Kind: "cover letter", ID: id})
		return
	}
	s.jsonResponse(w, http.StatusOK, letter)
}

func (s *Server) handleDeleteCoverLetter(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if s.ws.Letters.Get(id) == nil {
		s.errorFrom(w, r, &ErrNotFound{Kind: "cover letter", ID: id})
		return
	}
	if err := s.ws.Letters.Delete(r.Context(), id); err != nil {
		s.errorFrom(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleExportCoverLetter downloads the letter as a Word-readable document
func (s *Server) handleExportCoverLetter(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	letter := s.ws.Letters.Get(id)
	if letter == nil {
		s.errorFrom(w, r, &ErrNotFound{Kind: "cover letter", ID: id})
		return
	}
	html, err := coverletter.WordDocument(letter, s.ws.Session.Snapshot().Personal)
	if err != nil {
		s.errorFrom(w, r, err)
		return
	}
	s.fileResponse(w, coverletter.FileName(letter), "application/msword", []byte(html))
}
