// Package coverletter generates, stores and exports cover letters.
package coverletter

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/types"
)

// Writer drafts the body of a cover letter
type Writer interface {
	GenerateCoverLetter(ctx context.Context, doc *types.ResumeDocument, jobDescription, companyName string) (string, error)
}

// GenerateRequest is the job a letter is written for
type GenerateRequest struct {
	CompanyName    string `json:"companyName" validate:"required"`
	JobTitle       string `json:"jobTitle" validate:"required"`
	JobDescription string `json:"jobDescription" validate:"required"`
}

// Manager owns the cover letter collection, newest first
type Manager struct {
	mu      sync.Mutex
	store   db.Store
	logger  *zap.Logger
	letters []*types.CoverLetter

	now   func() time.Time
	newID func() (uuid.UUID, error)
}

// NewManager creates a manager and loads persisted letters.
func NewManager(ctx context.Context, store db.Store, logger *zap.Logger) (*Manager, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &Manager{store: store, logger: logger, now: time.Now, newID: uuid.NewV7}

	var saved []*types.CoverLetter
	if _, err := db.LoadJSON(ctx, store, db.KeyCoverLetters, &saved); err != nil {
		return nil, fmt.Errorf("failed to load cover letters: %w", err)
	}
	m.letters = cloneAll(saved)
	return m, nil
}

// Generate drafts a letter for the document and stores it first in the list.
func (m *Manager) Generate(ctx context.Context, writer Writer, doc *types.ResumeDocument, req GenerateRequest) (*types.CoverLetter, error) {
	if doc == nil || strings.TrimSpace(doc.Personal.FullName) == "" {
		return nil, &ValidationError{Field: "fullName", Message: "fill out your resume first"}
	}
	if strings.TrimSpace(req.CompanyName) == "" {
		return nil, &ValidationError{Field: "companyName", Message: "company name is required"}
	}
	if strings.TrimSpace(req.JobTitle) == "" {
		return nil, &ValidationError{Field: "jobTitle", Message: "job title is required"}
	}
	if strings.TrimSpace(req.JobDescription) == "" {
		return nil, &ValidationError{Field: "jobDescription", Message: "job description is required"}
	}

	content, err := writer.GenerateCoverLetter(ctx, doc, req.JobDescription, req.CompanyName)
	if err != nil {
		return nil, err
	}

	id, err := m.newID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate cover letter id: %w", err)
	}

	now := m.now().UTC()
	letter := &types.CoverLetter{
		ID:             id.String(),
		CompanyName:    req.CompanyName,
		JobTitle:       req.JobTitle,
		Content:        content,
		JobDescription: req.JobDescription,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	next := append([]*types.CoverLetter{letter}, m.letters...)
	if err := m.persist(ctx, next); err != nil {
		return nil, err
	}
	m.letters = next

	m.logger.Info("generated cover letter", zap.String("letter_id", letter.ID), zap.String("company", req.CompanyName))
	return clone(letter), nil
}

// Update replaces a letter's content. It returns nil if the id is unknown.
func (m *Manager) Update(ctx context.Context, id, content string) (*types.CoverLetter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexOf(id)
	if idx < 0 {
		return nil, nil
	}

	updated := clone(m.letters[idx])
	updated.Content = content
	updated.UpdatedAt = m.now().UTC()

	next := append([]*types.CoverLetter(nil), m.letters...)
	next[idx] = updated
	if err := m.persist(ctx, next); err != nil {
		return nil, err
	}
	m.letters = next
	return clone(updated), nil
}

// Delete removes a letter. Unknown ids are a no-op.
func (m *Manager) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexOf(id)
	if idx < 0 {
		return nil
	}

	next := make([]*types.CoverLetter, 0, len(m.letters)-1)
	next = append(next, m.letters[:idx]...)
	next = append(next, m.letters[idx+1:]...)
	if err := m.persist(ctx, next); err != nil {
		return err
	}
	m.letters = next
	return nil
}

// Get returns a copy of a letter, or nil if the id is unknown.
func (m *Manager) Get(id string) *types.CoverLetter {
	m.mu.Lock()
	defer m.mu.Unlock()

	if idx := m.indexOf(id); idx >= 0 {
		return clone(m.letters[idx])
	}
	return nil
}

// List returns copies of all letters, newest first.
func (m *Manager) List() []*types.CoverLetter {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneAll(m.letters)
}

// Replace swaps the whole collection and persists it.
func (m *Manager) Replace(ctx context.Context, letters []*types.CoverLetter) error {
	next := cloneAll(letters)

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.persist(ctx, next); err != nil {
		return err
	}
	m.letters = next
	return nil
}

// Reset drops every letter from memory without touching the store.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.letters = nil
}

func (m *Manager) indexOf(id string) int {
	for i, l := range m.letters {
		if l.ID == id {
			return i
		}
	}
	return -1
}

func (m *Manager) persist(ctx context.Context, letters []*types.CoverLetter) error {
	if err := db.SaveJSON(ctx, m.store, db.KeyCoverLetters, letters); err != nil {
		return fmt.Errorf("failed to persist cover letters: %w", err)
	}
	return nil
}

func clone(l *types.CoverLetter) *types.CoverLetter {
	c := *l
	return &c
}

func cloneAll(letters []*types.CoverLetter) []*types.CoverLetter {
	out := make([]*types.CoverLetter, 0, len(letters))
	for _, l := range letters {
		if l != nil {
			out = append(out, clone(l))
		}
	}
	return out
}
