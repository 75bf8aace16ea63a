package server

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/shadowine/contact-intake/internal/core"
	"github.com/shadowine/contact-intake/internal/ratelimit"
)

// EndpointPolicies holds the per-endpoint pipeline policies. Whether an
// endpoint requires human verification is configuration, not a property of
// the payload shape.
type EndpointPolicies struct {
	Contact  core.Policy
	WorkView core.Policy
}

// Server is the HTTP intake surface. It applies the rate limiter in front of
// the submission pipeline and is the only component aware of request and
// response shapes.
type Server struct {
	pipeline     *core.SubmissionPipeline
	limiter      ratelimit.Limiter
	policies     EndpointPolicies
	logger       *zap.Logger
	listenAddr   string
	maxBodyBytes int64
	readTimeout  time.Duration
	writeTimeout time.Duration
	httpServer   *http.Server
}

// New creates a new intake server
func New(
	pipeline *core.SubmissionPipeline,
	limiter ratelimit.Limiter,
	policies EndpointPolicies,
	logger *zap.Logger,
	listenAddr string,
	maxBodyBytes int64,
	readTimeout time.Duration,
	writeTimeout time.Duration,
) *Server {
	return &Server{
		pipeline:     pipeline,
		limiter:      limiter,
		policies:     policies,
		logger:       logger,
		listenAddr:   listenAddr,
		maxBodyBytes: maxBodyBytes,
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

// Handler builds the route table
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /send-email", s.withRateLimit(s.handleIntake(s.policies.Contact, contactSuccessMessage)))
	mux.HandleFunc("POST /request-work-view", s.withRateLimit(s.handleIntake(s.policies.WorkView, workViewSuccessMessage)))
	mux.HandleFunc("GET /health", s.handleHealth)
	return mux
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         s.listenAddr,
		Handler:      s.Handler(),
		ReadTimeout:  s.readTimeout,
		WriteTimeout: s.writeTimeout,
	}

	s.logger.Info("Intake server starting", zap.String("address", s.listenAddr))

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
