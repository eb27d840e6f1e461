// Package tracker keeps the list of job applications and their follow-ups.
package tracker

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/types"
)

// FollowUpWindow is how far ahead NeedingFollowUp looks
const FollowUpWindow = 3 * 24 * time.Hour

// ValidationError represents an application that fails validation
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Update carries the fields an update may change. Nil fields are left as they are.
type Update struct {
	Company      *string                  `json:"company"`
	Position     *string                  `json:"position"`
	URL          *string                  `json:"url"`
	Status       *types.ApplicationStatus `json:"status"`
	AppliedDate  *string                  `json:"appliedDate"`
	FollowUpDate *string                  `json:"followUpDate"`
	Notes        *string                  `json:"notes"`
}

// Stats counts applications per status
type Stats struct {
	Total    int                             `json:"total"`
	ByStatus map[types.ApplicationStatus]int `json:"byStatus"`
}

// Tracker owns the application collection, newest first
type Tracker struct {
	mu     sync.Mutex
	store  db.Store
	logger *zap.Logger
	apps   []*types.Application

	now   func() time.Time
	newID func() (uuid.UUID, error)
}

// New creates a tracker and loads persisted applications.
func New(ctx context.Context, store db.Store, logger *zap.Logger) (*Tracker, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	t := &Tracker{store: store, logger: logger, now: time.Now, newID: uuid.NewV7}

	var saved []*types.Application
	if _, err := db.LoadJSON(ctx, store, db.KeyApplications, &saved); err != nil {
		return nil, fmt.Errorf("failed to load applications: %w", err)
	}
	t.apps = cloneAll(saved)
	return t, nil
}

// Add validates and stores a new application. Status defaults to applied.
func (t *Tracker) Add(ctx context.Context, app types.Application) (*types.Application, error) {
	app.Company = strings.TrimSpace(app.Company)
	app.Position = strings.TrimSpace(app.Position)
	if app.Status == "" {
		app.Status = types.StatusApplied
	}
	if err := app.Validate(); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	id, err := t.newID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate application id: %w", err)
	}
	now := t.now().UTC()
	app.ID = id.String()
	app.CreatedAt = now
	app.UpdatedAt = now

	t.mu.Lock()
	defer t.mu.Unlock()

	next := append([]*types.Application{&app}, t.apps...)
	if err := t.persist(ctx, next); err != nil {
		return nil, err
	}
	t.apps = next

	t.logger.Info("added application", zap.String("application_id", app.ID), zap.String("company", app.Company))
	return clone(&app), nil
}

// Update applies a partial update. It returns nil if the id is unknown.
func (t *Tracker) Update(ctx context.Context, id string, u Update) (*types.Application, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := t.indexOf(id)
	if idx < 0 {
		return nil, nil
	}

	updated := clone(t.apps[idx])
	setIf(&updated.Company, u.Company)
	setIf(&updated.Position, u.Position)
	setIf(&updated.URL, u.URL)
	setIf(&updated.AppliedDate, u.AppliedDate)
	setIf(&updated.FollowUpDate, u.FollowUpDate)
	setIf(&updated.Notes, u.Notes)
	if u.Status != nil {
		updated.Status = *u.Status
	}
	if err := updated.Validate(); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	updated.UpdatedAt = t.now().UTC()

	next := append([]*types.Application(nil), t.apps...)
	next[idx] = updated
	if err := t.persist(ctx, next); err != nil {
		return nil, err
	}
	t.apps = next
	return clone(updated), nil
}

// Delete removes an application. Unknown ids are a no-op.
func (t *Tracker) Delete(ctx context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := t.indexOf(id)
	if idx < 0 {
		return nil
	}

	next := make([]*types.Application, 0, len(t.apps)-1)
	next = append(next, t.apps[:idx]...)
	next = append(next, t.apps[idx+1:]...)
	if err := t.persist(ctx, next); err != nil {
		return err
	}
	t.apps = next
	return nil
}

// Get returns a copy of an application, or nil if the id is unknown.
func (t *Tracker) Get(id string) *types.Application {
	t.mu.Lock()
	defer t.mu.Unlock()

	if idx := t.indexOf(id); idx >= 0 {
		return clone(t.apps[idx])
	}
	return nil
}

// List returns copies of all applications, newest first.
func (t *Tracker) List() []*types.Application {
	t.mu.Lock()
	defer t.mu.Unlock()
	return cloneAll(t.apps)
}

// NeedingFollowUp returns active applications whose follow-up date falls on
// or before now plus FollowUpWindow, earliest first.
func (t *Tracker) NeedingFollowUp(now time.Time) []*types.Application {
	cutoff := startOfDay(now).Add(FollowUpWindow)

	t.mu.Lock()
	defer t.mu.Unlock()

	var due []*types.Application
	for _, app := range t.apps {
		if !app.Status.IsActive() {
			continue
		}
		if date, ok := app.FollowUp(); ok && !date.After(cutoff) {
			due = append(due, clone(app))
		}
	}

	sort.SliceStable(due, func(i, j int) bool {
		return due[i].FollowUpDate < due[j].FollowUpDate
	})
	return due
}

// IsOverdue reports whether the follow-up date is before today.
func IsOverdue(app *types.Application, now time.Time) bool {
	date, ok := app.FollowUp()
	return ok && date.Before(startOfDay(now))
}

// Stats counts applications per status. Every status is present in ByStatus.
func (t *Tracker) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()

	stats := Stats{Total: len(t.apps), ByStatus: make(map[types.ApplicationStatus]int)}
	for _, s := range types.ApplicationStatuses() {
		stats.ByStatus[s] = 0
	}
	for _, app := range t.apps {
		stats.ByStatus[app.Status]++
	}
	return stats
}

// Replace swaps the whole collection and persists it.
func (t *Tracker) Replace(ctx context.Context, apps []*types.Application) error {
	next := cloneAll(apps)

	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.persist(ctx, next); err != nil {
		return err
	}
	t.apps = next
	return nil
}

// Reset drops every application from memory without touching the store.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.apps = nil
}

func (t *Tracker) indexOf(id string) int {
	for i, a := range t.apps {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func (t *Tracker) persist(ctx context.Context, apps []*types.Application) error {
	if err := db.SaveJSON(ctx, t.store, db.KeyApplications, apps); err != nil {
		return fmt.Errorf("failed to persist applications: %w", err)
	}
	return nil
}

// startOfDay truncates to midnight UTC of now's calendar date
func startOfDay(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func setIf(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func clone(a *types.Application) *types.Application {
	c := *a
	return &c
}

func cloneAll(apps []*types.Application) []*types.Application {
	out := make([]*types.Application, 0, len(apps))
	for _, a := range apps {
		if a != nil {
			out = append(out, clone(a))
		}
	}
	return out
}
