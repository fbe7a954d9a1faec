// Package server provides the HTTP API for editing and submitting job-posting forms.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/jobboard/internal/formstore"
	"github.com/jonathan/jobboard/internal/jobform"
	"github.com/jonathan/jobboard/internal/logging"
	"github.com/jonathan/jobboard/internal/server/middleware"
	"github.com/jonathan/jobboard/internal/server/ratelimit"
	"github.com/jonathan/jobboard/internal/types"
)

const (
	// sweepInterval is how often idle rate limit buckets and form sessions are dropped.
	sweepInterval = 5 * time.Minute
	// DefaultSessionTTL is how long an untouched form session is kept.
	DefaultSessionTTL = 2 * time.Hour

	maxBodyBytes = 1 << 20
)

// JobService is the upstream job listing and upload service.
type JobService interface {
	ListJobs(ctx context.Context) ([]types.JobRecord, error)
	CreateJob(ctx context.Context, rec types.JobRecord) (types.CreatedJob, error)
	UploadDocument(ctx context.Context, filename string, content io.Reader) (types.UploadDescriptor, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	jobs        JobService
	template    func() (*formstore.Document, error)
	projector   jobform.Projector
	sessions    *sessionStore
	sessionTTL  time.Duration
	rateLimiter *ratelimit.Limiter
	log         *zap.Logger
}

// Config holds server configuration
type Config struct {
	Port int
	Jobs JobService
	// Template returns the document new forms start from. Defaults to
	// jobform.DefaultTemplate at the current time.
	Template  func() (*formstore.Document, error)
	Projector jobform.Projector
	// SessionTTL drops form sessions left untouched this long. Defaults to
	// DefaultSessionTTL.
	SessionTTL time.Duration
	RateLimit  *ratelimit.Config
	Logger     *zap.Logger
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Jobs == nil {
		return nil, fmt.Errorf("server config: job service is required")
	}

	s := &Server{
		jobs:        cfg.Jobs,
		template:    cfg.Template,
		projector:   cfg.Projector,
		sessions:    newSessionStore(),
		sessionTTL:  cfg.SessionTTL,
		rateLimiter: ratelimit.NewLimiter(cfg.RateLimit),
		log:         logging.OrNop(cfg.Logger),
	}
	if s.sessionTTL <= 0 {
		s.sessionTTL = DefaultSessionTTL
	}
	if s.template == nil {
		s.template = func() (*formstore.Document, error) {
			return jobform.DefaultTemplate(s.now()), nil
		}
	}

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Form sessions
	mux.HandleFunc("POST /forms", s.handleCreateForm)
	mux.HandleFunc("GET /forms/{id}", s.handleGetForm)
	mux.HandleFunc("PUT /forms/{id}", s.handleReplaceForm)
	mux.HandleFunc("DELETE /forms/{id}", s.handleDeleteForm)
	mux.HandleFunc("PUT /forms/{id}/fields", s.handleSetField)
	mux.HandleFunc("POST /forms/{id}/lists", s.handleAddListItem)
	mux.HandleFunc("PUT /forms/{id}/lists/{index}", s.handleSetListItem)
	mux.HandleFunc("DELETE /forms/{id}/lists/{index}", s.handleRemoveListItem)
	mux.HandleFunc("POST /forms/{id}/edits", s.handleApplyEdits)
	mux.HandleFunc("GET /forms/{id}/payload", s.handlePayload)
	mux.HandleFunc("POST /forms/{id}/submit", s.handleSubmit)

	// Job service proxy
	mux.HandleFunc("GET /jobs", s.handleListJobs)
	mux.HandleFunc("POST /uploads", s.handleUpload)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      middleware.RequestID(s.withRateLimit(s.withLogging(s.withCORS(mux)))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.log.Info("server starting", zap.String("addr", ln.Addr().String()))
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				s.sweep()
			}
		}
	})

	g.Go(func() error {
		<-ctx.Done()
		s.log.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		s.log.Info("server stopped")
		return nil
	})

	return g.Wait()
}

// sweep drops idle rate limit buckets and form sessions.
func (s *Server) sweep() {
	if n := s.rateLimiter.Sweep(); n > 0 {
		s.log.Debug("rate limit buckets swept", zap.Int("removed", n))
	}
	if n := s.sessions.Sweep(s.sessionTTL); n > 0 {
		s.log.Info("idle form sessions dropped", zap.Int("removed", n), zap.Int("open", s.sessions.Len()))
	}
}

func (s *Server) now() time.Time {
	if s.projector.Now != nil {
		return s.projector.Now()
	}
	return time.Now()
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")

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
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", time.Since(start)),
		}
		if id, err := middleware.GetRequestID(r); err == nil {
			fields = append(fields, zap.String("request_id", id.String()))
		}
		s.log.Info("request", fields...)
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
		s.log.Warn("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// decodeBody reads a JSON request body into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	return nil
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr.
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
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}

	if info.RetryAfter > 0 {
		// Round up so clients never retry early
		seconds := int((info.RetryAfter + time.Second - 1) / time.Second)
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	s.log.Warn("rate limit exceeded",
		zap.String("client", s.extractClientID(r)),
		zap.String("path", r.URL.Path),
		zap.Int("limit", info.Limit),
	)

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
