// Package server provides the HTTP REST API for the job package generator.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/jobkit/internal/db"
	"github.com/jonathan/jobkit/internal/llm"
	"github.com/jonathan/jobkit/internal/pipeline"
)

// Config holds server configuration
type Config struct {
	Port                int
	Provider            string
	Model               string
	OllamaHost          string
	GeminiAPIKey        string
	OutputDir           string
	MaxArtifactAttempts int
	TransportRetries    int
	CompletionTimeout   time.Duration
	DatabaseURL         string
	Verbose             bool
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	client     llm.Client
	database   *db.DB
	cfg        Config
}

// New creates a new server instance. The database is optional: if no URL
// is configured or the connection fails, runs proceed without history.
func New(cfg Config) (*Server, error) {
	client, err := llm.NewClient(context.Background(), &llm.Config{
		Provider: llm.Provider(cfg.Provider),
		Model:    cfg.Model,
		Host:     cfg.OllamaHost,
		APIKey:   cfg.GeminiAPIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create completion client: %w", err)
	}

	s := &Server{client: client, cfg: cfg}

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Printf("Warning: failed to connect to database: %v", err)
			log.Printf("Continuing without run history...")
		} else {
			s.database = database
		}
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(s.routes())),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 600 * time.Second, // Generation runs are slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the request router.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /generate", s.handleGenerate)
	mux.HandleFunc("GET /packages", s.handleListPackages)
	mux.HandleFunc("GET /health", s.handleHealth)
	return mux
}

// Start begins listening for requests and blocks until interrupted.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.database != nil {
		s.database.Close()
	}
	if err := s.client.Close(); err != nil {
		log.Printf("Warning: failed to close completion client: %v", err)
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok", "model": s.client.Model()})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// pipelineOptions assembles run options from server configuration.
func (s *Server) pipelineOptions() pipeline.RunOptions {
	return pipeline.RunOptions{
		Client:              s.client,
		OutputDir:           s.cfg.OutputDir,
		MaxArtifactAttempts: s.cfg.MaxArtifactAttempts,
		TransportRetries:    s.cfg.TransportRetries,
		CompletionTimeout:   s.cfg.CompletionTimeout,
		Database:            s.database,
		Verbose:             s.cfg.Verbose,
	}
}
