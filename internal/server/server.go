package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jonathan/resume-builder/internal/server/ratelimit"
	"github.com/jonathan/resume-builder/internal/workspace"
)

// maxBodyBytes bounds request bodies; backups are the largest payloads
const maxBodyBytes = 10 << 20

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	ws          *workspace.Workspace
	rateLimiter *ratelimit.Limiter
	validator   *validator.Validate
	logger      *zap.Logger
	now         func() time.Time
}

// Config holds server configuration
type Config struct {
	Port int
	// RateLimit defaults to ratelimit.LoadConfig when nil.
	RateLimit *ratelimit.Config
}

// New creates a new server over a workspace
func New(cfg Config, ws *workspace.Workspace, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	rateConfig := cfg.RateLimit
	if rateConfig == nil {
		rateConfig = ratelimit.LoadConfig()
	}

	s := &Server{
		ws:          ws,
		rateLimiter: ratelimit.NewLimiter(rateConfig),
		validator:   validator.New(),
		logger:      logger,
		now:         time.Now,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // text generation and PDF printing are slow
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Live document
	mux.HandleFunc("GET /resume", s.handleGetResume)
	mux.HandleFunc("PUT /resume", s.handleReplaceResume)
	mux.HandleFunc("PUT /resume/personal/{field}", s.handleSetPersonalField)
	mux.HandleFunc("PUT /resume/summary", s.handleSetSummary)
	mux.HandleFunc("POST /resume/experiences", s.handleAddExperience)
	mux.HandleFunc("PATCH /resume/experiences/{id}", s.handleUpdateExperience)
	mux.HandleFunc("DELETE /resume/experiences/{id}", s.handleRemoveExperience)
	mux.HandleFunc("POST /resume/education", s.handleAddEducation)
	mux.HandleFunc("PATCH /resume/education/{id}", s.handleUpdateEducation)
	mux.HandleFunc("DELETE /resume/education/{id}", s.handleRemoveEducation)
	mux.HandleFunc("POST /resume/skills", s.handleAddSkill)
	mux.HandleFunc("DELETE /resume/skills/{skill}", s.handleRemoveSkill)
	mux.HandleFunc("GET /resume/progress", s.handleProgress)
	mux.HandleFunc("PUT /resume/template", s.handleSetTemplate)
	mux.HandleFunc("GET /resume/preview", s.handlePreview)
	mux.HandleFunc("POST /resume/save", s.handleSave)
	mux.HandleFunc("GET /resume/export/{format}", s.handleExport)

	// Sharing
	mux.HandleFunc("POST /share", s.handleShare)
	mux.HandleFunc("POST /share/load", s.handleLoadShared)

	// Versions
	mux.HandleFunc("GET /versions", s.handleListVersions)
	mux.HandleFunc("POST /versions", s.handleSaveVersion)
	mux.HandleFunc("GET /versions/compare", s.handleCompareVersions)
	mux.HandleFunc("GET /versions/{id}", s.handleGetVersion)
	mux.HandleFunc("PATCH /versions/{id}", s.handleUpdateVersion)
	mux.HandleFunc("DELETE /versions/{id}", s.handleDeleteVersion)
	mux.HandleFunc("POST /versions/{id}/duplicate", s.handleDuplicateVersion)
	mux.HandleFunc("POST /versions/{id}/load", s.handleLoadVersion)
	mux.HandleFunc("GET /versions/{id}/preview", s.handlePreviewVersion)
	mux.HandleFunc("GET /versions/{id}/export/{format}", s.handleExportVersion)

	// Cover letters
	mux.HandleFunc("GET /cover-letters", s.handleListCoverLetters)
	mux.HandleFunc("POST /cover-letters", s.handleGenerateCoverLetter)
	mux.HandleFunc("GET /cover-letters/{id}", s.handleGetCoverLetter)
	mux.HandleFunc("PUT /cover-letters/{id}", s.handleUpdateCoverLetter)
	mux.HandleFunc("DELETE /cover-letters/{id}", s.handleDeleteCoverLetter)
	mux.HandleFunc("GET /cover-letters/{id}/export", s.handleExportCoverLetter)

	// Applications
	mux.HandleFunc("GET /applications", s.handleListApplications)
	mux.HandleFunc("POST /applications", s.handleAddApplication)
	mux.HandleFunc("GET /applications/follow-ups", s.handleFollowUps)
	mux.HandleFunc("GET /applications/stats", s.handleApplicationStats)
	mux.HandleFunc("GET /applications/{id}", s.handleGetApplication)
	mux.HandleFunc("PATCH /applications/{id}", s.handleUpdateApplication)
	mux.HandleFunc("DELETE /applications/{id}", s.handleDeleteApplication)

	// Text generation
	mux.HandleFunc("POST /ai/summary", s.handleOptimizeSummary)
	mux.HandleFunc("POST /ai/experiences/{id}/description", s.handleOptimizeDescription)
	mux.HandleFunc("POST /ai/action-verbs", s.handleActionVerbs)
	mux.HandleFunc("POST /ai/quantify", s.handleQuantify)
	mux.HandleFunc("POST /ai/tailor", s.handleTailor)
	mux.HandleFunc("POST /ai/skills-gap", s.handleSkillsGap)
	mux.HandleFunc("POST /ai/ats", s.handleATS)

	// Settings and data
	mux.HandleFunc("GET /settings/api-key", s.handleGetAPIKey)
	mux.HandleFunc("PUT /settings/api-key", s.handleSetAPIKey)
	mux.HandleFunc("DELETE /settings/api-key", s.handleClearAPIKey)
	mux.HandleFunc("GET /backup", s.handleExportBackup)
	mux.HandleFunc("POST /backup", s.handleImportBackup)
	mux.HandleFunc("DELETE /data", s.handleClearAll)

	return s.withRateLimit(s.withLogging(s.withCORS(mux)))
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	defer s.rateLimiter.Stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// Stop releases the rate limiter without serving.
func (s *Server) Stop() {
	s.rateLimiter.Stop()
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		if rec.status == 0 {
			rec.status = http.StatusOK
		}

		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Int("bytes", rec.bytes),
			zap.Duration("duration", time.Since(start)),
		}
		if rec.status >= http.StatusInternalServerError {
			s.logger.Warn("request failed", fields...)
			return
		}
		s.logger.Debug("request", fields...)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// errorFrom writes err with the status HTTPStatus maps it to. Internal
// errors are logged and their details withheld.
func (s *Server) errorFrom(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request error", zap.String("path", r.URL.Path), zap.Error(err))
		if status == http.StatusInternalServerError {
			s.errorResponse(w, status, "internal server error")
			return
		}
	}
	s.errorResponse(w, status, err.Error())
}

// fileResponse writes a download with a Content-Disposition file name
func (s *Server) fileResponse(w http.ResponseWriter, name, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": name})
	if disposition == "" {
		disposition = "attachment"
	}
	w.Header().Set("Content-Disposition", disposition)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.logger.Warn("failed to write file response", zap.String("file", name), zap.Error(err))
	}
}

// htmlResponse writes rendered markup
func (s *Server) htmlResponse(w http.ResponseWriter, html string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, html)
}

// decodeJSON reads the request body into dst and validates it.
// An empty body is accepted when optional is set.
func (s *Server) decodeJSON(r *http.Request, dst any, optional bool) error {
	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if !(optional && errors.Is(err, io.EOF)) {
			return &ErrValidation{Message: "invalid request body: " + err.Error()}
		}
	}
	if err := s.validator.Struct(dst); err != nil {
		return extractValidationErrors(err)
	}
	return nil
}

// readBody reads the raw request body.
func (s *Server) readBody(r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err != nil {
		return nil, &ErrValidation{Message: "failed to read request body: " + err.Error()}
	}
	return data, nil
}

// extractValidationErrors converts the first validator failure to ErrValidation.
func extractValidationErrors(err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		ve := validationErrors[0]
		return &ErrValidation{Field: ve.Field(), Message: ve.Tag()}
	}
	return &ErrValidation{Message: "invalid request"}
}

// pathID parses a numeric path value.
func pathID(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(r.PathValue(name))
	if err != nil {
		return 0, &ErrValidation{Field: name, Message: "must be a number"}
	}
	return id, nil
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; proxy headers are not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	s.logger.Info("rate limit exceeded",
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
		zap.Int("limit", info.Limit),
	)

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
