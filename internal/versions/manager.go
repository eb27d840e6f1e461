// Package versions keeps named snapshots of the resume document.
//
// Versions are ordered newest-first and persisted as one JSON array. The
// manager never shares document memory with the live session: saving,
// duplicating, loading and reading all go through deep copies.
package versions

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/document"
	"github.com/jonathan/resume-builder/internal/types"
)

// copySuffix is appended to the name of a duplicated version
const copySuffix = " (Copy)"

// VersionUpdate carries the metadata fields an update may change.
// Nil fields are left as they are.
type VersionUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// Manager owns the ordered version collection
type Manager struct {
	mu       sync.Mutex
	session  *document.Session
	store    db.Store
	logger   *zap.Logger
	versions []*types.ResumeVersion

	now   func() time.Time
	newID func() (uuid.UUID, error)
}

// NewManager creates a manager bound to a session and loads persisted versions.
func NewManager(ctx context.Context, session *document.Session, store db.Store, logger *zap.Logger) (*Manager, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &Manager{
		session: session,
		store:   store,
		logger:  logger,
		now:     time.Now,
		newID:   uuid.NewV7,
	}

	var saved []*types.ResumeVersion
	if _, err := db.LoadJSON(ctx, store, db.KeyResumeVersions, &saved); err != nil {
		return nil, fmt.Errorf("failed to load versions: %w", err)
	}
	m.versions = normalizeAll(saved)

	logger.Debug("loaded versions", zap.Int("count", len(m.versions)))
	return m, nil
}

// SaveVersion captures the live document and template as a new version.
func (m *Manager) SaveVersion(ctx context.Context, name, description string) (*types.ResumeVersion, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &ValidationError{Field: "name", Message: "version name is required"}
	}

	id, err := m.newID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate version id: %w", err)
	}

	now := m.now().UTC()
	version := &types.ResumeVersion{
		ID:          id.String(),
		Name:        name,
		Description: description,
		Data:        m.session.Snapshot(),
		Template:    m.session.Template(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	next := append([]*types.ResumeVersion{version}, m.versions...)
	if err := m.persist(ctx, next); err != nil {
		return nil, err
	}
	m.versions = next

	m.logger.Info("saved version", zap.String("version_id", version.ID), zap.String("name", name))
	return version.Clone(), nil
}

// UpdateVersion changes a version's name or description and refreshes
// UpdatedAt. It returns nil if the id is unknown.
func (m *Manager) UpdateVersion(ctx context.Context, id string, update VersionUpdate) (*types.ResumeVersion, error) {
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return nil, &ValidationError{Field: "name", Message: "version name is required"}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexOf(id)
	if idx < 0 {
		return nil, nil
	}

	updated := m.versions[idx].Clone()
	if update.Name != nil {
		updated.Name = *update.Name
	}
	if update.Description != nil {
		updated.Description = *update.Description
	}
	updated.UpdatedAt = m.now().UTC()

	next := append([]*types.ResumeVersion(nil), m.versions...)
	next[idx] = updated
	if err := m.persist(ctx, next); err != nil {
		return nil, err
	}
	m.versions = next

	return updated.Clone(), nil
}

// DeleteVersion removes a version. Unknown ids are a no-op.
func (m *Manager) DeleteVersion(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexOf(id)
	if idx < 0 {
		return nil
	}

	next := make([]*types.ResumeVersion, 0, len(m.versions)-1)
	next = append(next, m.versions[:idx]...)
	next = append(next, m.versions[idx+1:]...)
	if err := m.persist(ctx, next); err != nil {
		return err
	}
	m.versions = next

	m.logger.Info("deleted version", zap.String("version_id", id))
	return nil
}

// Duplicate copies a version under a fresh id with " (Copy)" appended to the
// name. It returns nil if the id is unknown.
func (m *Manager) Duplicate(ctx context.Context, id string) (*types.ResumeVersion, error) {
	newID, err := m.newID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate version id: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexOf(id)
	if idx < 0 {
		return nil, nil
	}

	now := m.now().UTC()
	dup := m.versions[idx].Clone()
	dup.ID = newID.String()
	dup.Name += copySuffix
	dup.CreatedAt = now
	dup.UpdatedAt = now

	next := append([]*types.ResumeVersion{dup}, m.versions...)
	if err := m.persist(ctx, next); err != nil {
		return nil, err
	}
	m.versions = next

	m.logger.Info("duplicated version", zap.String("source_id", id), zap.String("version_id", dup.ID))
	return dup.Clone(), nil
}

// LoadVersion replaces the live document and template with the version's.
// It returns false without side effects if the id is unknown.
func (m *Manager) LoadVersion(id string) bool {
	version := m.Get(id)
	if version == nil {
		return false
	}

	m.session.Replace(version.Data)
	m.session.SetTemplate(version.Template)

	m.logger.Info("loaded version", zap.String("version_id", id))
	return true
}

// Get returns a copy of the version, or nil if the id is unknown.
func (m *Manager) Get(id string) *types.ResumeVersion {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexOf(id)
	if idx < 0 {
		return nil
	}
	return m.versions[idx].Clone()
}

// List returns copies of all versions, newest first.
func (m *Manager) List() []*types.ResumeVersion {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*types.ResumeVersion, len(m.versions))
	for i, v := range m.versions {
		out[i] = v.Clone()
	}
	return out
}

// Summaries returns the listing view of all versions, newest first.
func (m *Manager) Summaries() []types.VersionSummary {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]types.VersionSummary, len(m.versions))
	for i, v := range m.versions {
		out[i] = v.Summary()
	}
	return out
}

// Replace swaps the whole collection, as on import, and persists it.
func (m *Manager) Replace(ctx context.Context, versions []*types.ResumeVersion) error {
	next := normalizeAll(versions)

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.persist(ctx, next); err != nil {
		return err
	}
	m.versions = next
	return nil
}

// Reset drops every version from memory without touching the store.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.versions = nil
}

// CompareVersions diffs two versions. It returns nil if either id is unknown.
func (m *Manager) CompareVersions(idA, idB string) *types.Comparison {
	a, b := m.Get(idA), m.Get(idB)
	if a == nil || b == nil {
		return nil
	}

	return &types.Comparison{
		Version1:    a.Summary(),
		Version2:    b.Summary(),
		Differences: Diff(a.Data, b.Data),
	}
}

func (m *Manager) indexOf(id string) int {
	for i, v := range m.versions {
		if v.ID == id {
			return i
		}
	}
	return -1
}

func (m *Manager) persist(ctx context.Context, versions []*types.ResumeVersion) error {
	if err := db.SaveJSON(ctx, m.store, db.KeyResumeVersions, versions); err != nil {
		return fmt.Errorf("failed to persist versions: %w", err)
	}
	return nil
}

// normalizeAll deep-copies versions, drops nil entries and fills in missing
// documents and templates.
func normalizeAll(versions []*types.ResumeVersion) []*types.ResumeVersion {
	out := make([]*types.ResumeVersion, 0, len(versions))
	for _, v := range versions {
		if v == nil {
			continue
		}
		c := v.Clone()
		if c.Data == nil {
			c.Data = types.NewResumeDocument()
		}
		c.Data.Normalize()
		c.Template = types.ParseTemplateID(string(c.Template))
		out = append(out, c)
	}
	return out
}
