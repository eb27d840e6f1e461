// Package workspace owns the application state of one resume builder user:
// the live editing session, the saved collections, the store they persist
// to, and the text-generation client.
package workspace

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resume-builder/internal/autosave"
	"github.com/jonathan/resume-builder/internal/backup"
	"github.com/jonathan/resume-builder/internal/coverletter"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/document"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/optimizer"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/share"
	"github.com/jonathan/resume-builder/internal/tracker"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/versions"
)

// ClearConfirmation must be passed to ClearAll
const ClearConfirmation = "DELETE"

// ClientFactory creates a text-generation client for an API key
type ClientFactory func(ctx context.Context, config *llm.Config, apiKey string) (llm.Client, error)

// Options configures Open
type Options struct {
	Store           db.Store
	DefaultTemplate types.TemplateID
	BaseURL         string

	// LLMConfig selects the provider and models; nil means llm.DefaultConfig.
	LLMConfig *llm.Config
	// APIKey is used when no key has been stored.
	APIKey string
	// NewClient defaults to llm.NewClient.
	NewClient ClientFactory

	PDF    export.PDFRenderer
	Logger *zap.Logger
}

// Workspace is the single owner of the editing session and its collections
type Workspace struct {
	Session  *document.Session
	Versions *versions.Manager
	Letters  *coverletter.Manager
	Tracker  *tracker.Tracker
	Exporter *export.Exporter

	store     db.Store
	baseURL   string
	llmConfig *llm.Config
	newClient ClientFactory
	logger    *zap.Logger
	now       func() time.Time

	mu        sync.RWMutex
	client    llm.Client
	optimizer *optimizer.Optimizer
}

// Open loads persisted state from opts.Store. A stored API key that cannot be
// turned into a client is logged and ignored; the workspace still opens
// without text generation.
func Open(ctx context.Context, opts Options) (*Workspace, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("workspace requires a store")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.LLMConfig == nil {
		opts.LLMConfig = llm.DefaultConfig()
	}
	if opts.NewClient == nil {
		opts.NewClient = llm.NewClient
	}

	session := document.New()
	session.SetTemplate(opts.DefaultTemplate)

	var doc types.ResumeDocument
	found, err := db.LoadJSON(ctx, opts.Store, db.KeyResumeData, &doc)
	if err != nil {
		return nil, fmt.Errorf("failed to load resume: %w", err)
	}
	if found {
		session.Replace(&doc)
	}

	var template types.TemplateID
	found, err = db.LoadJSON(ctx, opts.Store, db.KeyCurrentTemplate, &template)
	if err != nil {
		return nil, fmt.Errorf("failed to load template: %w", err)
	}
	if found {
		session.SetTemplate(template)
	}

	versionManager, err := versions.NewManager(ctx, session, opts.Store, logger.Named("versions"))
	if err != nil {
		return nil, err
	}
	letters, err := coverletter.NewManager(ctx, opts.Store, logger.Named("coverletter"))
	if err != nil {
		return nil, err
	}
	apps, err := tracker.New(ctx, opts.Store, logger.Named("tracker"))
	if err != nil {
		return nil, err
	}

	w := &Workspace{
		Session:   session,
		Versions:  versionManager,
		Letters:   letters,
		Tracker:   apps,
		Exporter:  export.New(opts.PDF, logger.Named("export")),
		store:     opts.Store,
		baseURL:   opts.BaseURL,
		llmConfig: opts.LLMConfig,
		newClient: opts.NewClient,
		logger:    logger,
		now:       time.Now,
		optimizer: optimizer.New(nil, logger.Named("optimizer")),
	}

	apiKey := opts.APIKey
	var stored string
	found, err = db.LoadJSON(ctx, opts.Store, db.KeyAPIKey, &stored)
	if err != nil {
		return nil, fmt.Errorf("failed to load API key: %w", err)
	}
	if found && stored != "" {
		apiKey = stored
	}
	if apiKey != "" {
		if err := w.connect(ctx, apiKey); err != nil {
			logger.Warn("text generation disabled", zap.Error(err))
		}
	}

	logger.Info("workspace opened",
		zap.Int("progress", session.Progress()),
		zap.String("template", string(session.Template())),
		zap.Bool("text_generation", w.HasAPIKey()),
	)
	return w, nil
}

// Store returns the backing store.
func (w *Workspace) Store() db.Store {
	return w.store
}

// Optimizer returns the optimizer bound to the current client.
func (w *Workspace) Optimizer() *optimizer.Optimizer {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.optimizer
}

// HasAPIKey reports whether text generation is configured.
func (w *Workspace) HasAPIKey() bool {
	return w.Optimizer().Available()
}

// SaveProgress persists the live document now.
func (w *Workspace) SaveProgress(ctx context.Context) error {
	if err := autosave.Save(ctx, w.store, w.Session); err != nil {
		return err
	}
	w.logger.Debug("saved progress")
	return nil
}

// ShareLink encodes the live document into a link under the base URL.
func (w *Workspace) ShareLink() (string, error) {
	return share.Link(w.baseURL, w.Session.Snapshot())
}

// LoadShared replaces the live document with one decoded from a link or
// token. Nothing changes if decoding fails.
func (w *Workspace) LoadShared(linkOrToken string) (*types.ResumeDocument, error) {
	doc, err := share.Load(linkOrToken)
	if err != nil {
		return nil, err
	}
	w.Session.Replace(doc)
	w.logger.Info("loaded shared resume")
	return w.Session.Snapshot(), nil
}

// ExportBackup bundles the whole workspace and returns it with its file name.
func (w *Workspace) ExportBackup() ([]byte, string, error) {
	now := w.now()
	bundle := backup.NewBundle(w.Session.Snapshot(), w.Session.Template(), w.Versions.List(),
		w.Letters.List(), w.Tracker.List(), now)
	data, err := backup.Encode(bundle)
	if err != nil {
		return nil, "", err
	}
	return data, backup.FileName(now), nil
}

// ImportBackup replaces every collection present in the bundle. The bundle
// is validated before anything changes. Collections are written to the store
// first and the live session is swapped last; if any write fails the
// collections written so far are put back and the session is untouched.
func (w *Workspace) ImportBackup(ctx context.Context, data []byte) (err error) {
	bundle, err := backup.Decode(data)
	if err != nil {
		return err
	}

	var undo []func()
	defer func() {
		if err == nil {
			return
		}
		for i := len(undo) - 1; i >= 0; i-- {
			undo[i]()
		}
	}()

	var staged *document.Session
	if bundle.CurrentResume != nil || bundle.CurrentTemplate != "" {
		staged = document.New()
		staged.Replace(w.Session.Snapshot())
		staged.SetTemplate(w.Session.Template())
		if bundle.CurrentResume != nil {
			staged.Replace(bundle.CurrentResume)
		}
		if bundle.CurrentTemplate != "" {
			staged.SetTemplate(bundle.CurrentTemplate)
		}
		if err := autosave.Save(ctx, w.store, staged); err != nil {
			return err
		}
		undo = append(undo, func() { w.rollback("resume", w.SaveProgress(context.WithoutCancel(ctx))) })
	}
	if bundle.Versions != nil {
		previous := w.Versions.List()
		if err := w.Versions.Replace(ctx, bundle.Versions); err != nil {
			return err
		}
		undo = append(undo, func() { w.rollback("versions", w.Versions.Replace(context.WithoutCancel(ctx), previous)) })
	}
	if bundle.CoverLetters != nil {
		previous := w.Letters.List()
		if err := w.Letters.Replace(ctx, bundle.CoverLetters); err != nil {
			return err
		}
		undo = append(undo, func() { w.rollback("cover letters", w.Letters.Replace(context.WithoutCancel(ctx), previous)) })
	}
	if bundle.Applications != nil {
		if err := w.Tracker.Replace(ctx, bundle.Applications); err != nil {
			return err
		}
	}

	if staged != nil {
		w.Session.Replace(staged.Snapshot())
		w.Session.SetTemplate(staged.Template())
	}

	w.logger.Info("imported backup",
		zap.String("export_date", *bundle.ExportDate),
		zap.Int("versions", len(bundle.Versions)),
		zap.Int("cover_letters", len(bundle.CoverLetters)),
		zap.Int("applications", len(bundle.Applications)),
	)
	return nil
}

// rollback logs a failed attempt to restore a collection after a failed import.
func (w *Workspace) rollback(collection string, err error) {
	if err != nil {
		w.logger.Warn("failed to restore after import error", zap.String("collection", collection), zap.Error(err))
	}
}

// SetAPIKey stores the text-generation credential and switches to a client
// built from it. The previous client stays in place if the new one fails.
func (w *Workspace) SetAPIKey(ctx context.Context, apiKey string) error {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return &ValidationError{Field: "apiKey", Message: "API key is required"}
	}
	if err := w.connect(ctx, apiKey); err != nil {
		return err
	}
	if err := db.SaveJSON(ctx, w.store, db.KeyAPIKey, apiKey); err != nil {
		return fmt.Errorf("failed to save API key: %w", err)
	}
	w.logger.Info("API key updated", zap.String("provider", string(w.llmConfig.Provider)))
	return nil
}

// ClearAPIKey removes the stored credential and disables text generation.
func (w *Workspace) ClearAPIKey(ctx context.Context) error {
	if err := w.store.Delete(ctx, db.KeyAPIKey); err != nil {
		return fmt.Errorf("failed to delete API key: %w", err)
	}
	w.disconnect()
	w.logger.Info("API key cleared")
	return nil
}

// ClearAll wipes the store and resets every collection. The confirmation
// must be exactly ClearConfirmation.
func (w *Workspace) ClearAll(ctx context.Context, confirmation string) error {
	if confirmation != ClearConfirmation {
		return &ValidationError{Field: "confirm", Message: fmt.Sprintf("type %s to confirm", ClearConfirmation)}
	}
	if err := w.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear data: %w", err)
	}

	w.Session.Reset()
	w.Versions.Reset()
	w.Letters.Reset()
	w.Tracker.Reset()
	w.disconnect()

	w.logger.Warn("all data cleared")
	return nil
}

// PreviewVersion renders a saved version without touching the live
// document. An empty template means the one saved with the version.
func (w *Workspace) PreviewVersion(id string, template types.TemplateID) (string, error) {
	v := w.Versions.Get(id)
	if v == nil {
		return "", &NotFoundError{Kind: "version", ID: id}
	}
	if template == "" {
		template = v.Template
	}
	return rendering.Render(v.Data, template)
}

// ExportResume exports the live document with the current template.
func (w *Workspace) ExportResume(ctx context.Context, format export.Format) (*export.File, error) {
	return w.Exporter.Export(ctx, w.Session.Snapshot(), w.Session.Template(), format)
}

// ExportVersion exports a saved version with its own template.
func (w *Workspace) ExportVersion(ctx context.Context, id string, format export.Format) (*export.File, error) {
	v := w.Versions.Get(id)
	if v == nil {
		return nil, &NotFoundError{Kind: "version", ID: id}
	}
	return w.Exporter.Export(ctx, v.Data, v.Template, format)
}

// GenerateCoverLetter drafts and stores a cover letter for the live document.
func (w *Workspace) GenerateCoverLetter(ctx context.Context, req coverletter.GenerateRequest) (*types.CoverLetter, error) {
	return w.Letters.Generate(ctx, w.Optimizer(), w.Session.Snapshot(), req)
}

// OptimizeSummary rewrites the live summary. With apply the rewrite
// replaces the summary in the document.
func (w *Workspace) OptimizeSummary(ctx context.Context, apply bool) (string, error) {
	doc := w.Session.Snapshot()
	text, err := w.Optimizer().OptimizeSummary(ctx, doc.Summary, doc)
	if err != nil {
		return "", err
	}
	if apply {
		w.Session.SetSummary(text)
	}
	return text, nil
}

// OptimizeExperience rewrites one experience description. With apply the
// rewrite replaces the description in the document.
func (w *Workspace) OptimizeExperience(ctx context.Context, id int, apply bool) (string, error) {
	doc := w.Session.Snapshot()
	i := doc.FindExperience(id)
	if i < 0 {
		return "", &NotFoundError{Kind: "experience", ID: strconv.Itoa(id)}
	}

	text, err := w.Optimizer().OptimizeDescription(ctx, doc.Experiences[i])
	if err != nil {
		return "", err
	}
	if apply {
		if _, err := w.Session.UpdateExperience(id, document.ExperienceUpdate{Description: &text}); err != nil {
			return "", err
		}
	}
	return text, nil
}

// CheckATS scores the live document. Without an API key the local
// heuristic is used.
func (w *Workspace) CheckATS(ctx context.Context) (optimizer.Result[optimizer.ATSReport], error) {
	doc := w.Session.Snapshot()
	opt := w.Optimizer()
	if !opt.Available() {
		return optimizer.Result[optimizer.ATSReport]{Kind: optimizer.Parsed, Value: optimizer.LocalATS(doc)}, nil
	}
	return opt.CheckATS(ctx, doc)
}

// Close releases the client and the store.
func (w *Workspace) Close() error {
	w.disconnect()
	return w.store.Close()
}

func (w *Workspace) connect(ctx context.Context, apiKey string) error {
	client, err := w.newClient(ctx, w.llmConfig, apiKey)
	if err != nil {
		return &optimizer.APICallError{Message: "failed to create client", Cause: err}
	}

	w.mu.Lock()
	previous := w.client
	w.client = client
	w.optimizer = optimizer.New(client, w.logger.Named("optimizer"))
	w.mu.Unlock()

	if previous != nil {
		_ = previous.Close()
	}
	return nil
}

func (w *Workspace) disconnect() {
	w.mu.Lock()
	previous := w.client
	w.client = nil
	w.optimizer = optimizer.New(nil, w.logger.Named("optimizer"))
	w.mu.Unlock()

	if previous != nil {
		_ = previous.Close()
	}
}
