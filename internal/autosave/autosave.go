// Package autosave periodically persists the live resume document.
//
// Each tick writes the whole snapshot and the current template, overwriting
// what was stored before. Edits made while a save is in flight land in the
// next one.
package autosave

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/document"
)

// DefaultInterval is used when a Saver is created with a non-positive interval
const DefaultInterval = 30 * time.Second

// shutdownTimeout bounds the final save made after the run context ends
const shutdownTimeout = 5 * time.Second

// Save writes the session's document and template to the store.
func Save(ctx context.Context, store db.Store, session *document.Session) error {
	doc := session.Snapshot()
	doc.Normalize()
	if err := db.SaveJSON(ctx, store, db.KeyResumeData, doc); err != nil {
		return fmt.Errorf("failed to save resume: %w", err)
	}
	if err := db.SaveJSON(ctx, store, db.KeyCurrentTemplate, session.Template()); err != nil {
		return fmt.Errorf("failed to save template: %w", err)
	}
	return nil
}

// Saver runs Save on a fixed interval
type Saver struct {
	session  *document.Session
	store    db.Store
	interval time.Duration
	logger   *zap.Logger
}

// New creates a Saver. A non-positive interval means DefaultInterval.
func New(session *document.Session, store db.Store, interval time.Duration, logger *zap.Logger) *Saver {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Saver{session: session, store: store, interval: interval, logger: logger}
}

// Interval returns the save period.
func (s *Saver) Interval() time.Duration {
	return s.interval
}

// SaveNow persists the document immediately.
func (s *Saver) SaveNow(ctx context.Context) error {
	start := time.Now()
	if err := Save(ctx, s.store, s.session); err != nil {
		s.logger.Warn("autosave failed", zap.Error(err))
		return err
	}
	s.logger.Debug("autosaved resume", zap.Duration("duration", time.Since(start)))
	return nil
}

// Run saves on every tick until ctx is done, then makes one final save.
// Failed saves are logged and retried on the next tick. Run always returns
// nil so it can share an errgroup with the HTTP server.
func (s *Saver) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("autosave started", zap.Duration("interval", s.interval))
	for {
		select {
		case <-ctx.Done():
			finalCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
			_ = s.SaveNow(finalCtx)
			cancel()
			s.logger.Info("autosave stopped")
			return nil
		case <-ticker.C:
			_ = s.SaveNow(ctx)
		}
	}
}
