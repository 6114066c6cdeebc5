package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"smartbank/internal/config"
	"smartbank/internal/handler"
	"smartbank/internal/idgen"
	"smartbank/internal/repository"
	"smartbank/internal/service"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const requestIDHeader = "X-Request-ID"

// Server represents the HTTP server
type Server struct {
	router *mux.Router
	server *http.Server
	logger *slog.Logger
	port   string
}

// NewServer wires the in-memory store, the services and the HTTP routes.
func NewServer(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	store := repository.NewStore(logger)

	if cfg.SeedDemoData {
		if err := service.SeedDemoData(store, cfg.BcryptCost); err != nil {
			return nil, err
		}
		logger.Info("Demo accounts loaded")
	}

	// Initialize services
	accountService := service.NewAccountService(store, idgen.New(cfg.IDLength), cfg, logger)
	transactionService := service.NewTransactionService(store, logger)
	analyticsService := service.NewAnalyticsService(store, cfg.LargeTransactionThreshold, logger)

	// Initialize handlers
	accountHandler := handler.NewAccountHandler(accountService, cfg.HistoryDefaultLimit)
	transactionHandler := handler.NewTransactionHandler(transactionService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)

	validator, err := handler.NewValidator(cfg.IDLength)
	if err != nil {
		return nil, err
	}

	// Setup router
	router := mux.NewRouter()
	router.Use(requestIDMiddleware)
	router.Use(loggingMiddleware(logger))

	// Account routes
	router.Handle("/accounts", validator.CreateAccount(accountHandler.CreateAccount)).Methods("POST")
	router.Handle("/login", validator.Login(accountHandler.Login)).Methods("POST")
	router.HandleFunc("/accounts/{account_id}", accountHandler.GetAccount).Methods("GET")
	router.HandleFunc("/accounts/{account_id}/transactions", accountHandler.GetHistory).Methods("GET")
	router.HandleFunc("/accounts/{account_id}/analytics", analyticsHandler.GetAnalytics).Methods("GET")

	// Transaction routes
	router.Handle("/accounts/{account_id}/deposits", validator.Cash(transactionHandler.Deposit)).Methods("POST")
	router.Handle("/accounts/{account_id}/withdrawals", validator.Cash(transactionHandler.Withdraw)).Methods("POST")
	router.Handle("/transfers", validator.Transfer(transactionHandler.Transfer)).Methods("POST")

	// Health check
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}).Methods("GET")

	return &Server{
		router: router,
		logger: logger,
	}, nil
}

// requestIDMiddleware makes sure every request carries an X-Request-ID,
// generating one when the client did not send it.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
			r.Header.Set(requestIDHeader, id)
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware adds request logging
func loggingMiddleware(logger *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Create response wrapper to capture status code
			ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(ww, r)

			logger.Info("request completed",
				"request_id", r.Header.Get(requestIDHeader),
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.statusCode,
				"duration", time.Since(start),
				"user_agent", r.UserAgent(),
			)
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Start starts the HTTP server on the specified port
func (s *Server) Start(port string) (string, error) {
	// Create listener first to get actual port
	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return "", err
	}

	// Get the actual port being used
	addr := listener.Addr().(*net.TCPAddr)
	s.port = strconv.Itoa(addr.Port)

	// Create HTTP server
	s.server = &http.Server{
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Starting server", "port", s.port)

	// Start server in background
	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.logger.Error("Server failed to start", "error", err)
		}
	}()

	return s.port, nil
}

// Stop gracefully shuts down the server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down server")

	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// GetPort returns the port the server is listening on
func (s *Server) GetPort() string {
	return s.port
}

// GetBaseURL returns the base URL for the server
func (s *Server) GetBaseURL() string {
	return "http://localhost:" + s.port
}

// GetRouter returns the router for testing purposes
func (s *Server) GetRouter() *mux.Router {
	return s.router
}

// NewLogger builds the process logger from the configuration. Port "0" means
// a test run, which logs nowhere.
func NewLogger(cfg *config.Config) *slog.Logger {
	if cfg.ServerPort == "0" {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	level, _ := cfg.SlogLevel()
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

// StartServer starts the server with the given configuration
func StartServer(cfg *config.Config) (*Server, string, error) {
	server, err := NewServer(cfg, NewLogger(cfg))
	if err != nil {
		return nil, "", err
	}

	// Start the server and get the actual port
	port, err := server.Start(cfg.ServerPort)
	if err != nil {
		return nil, "", err
	}

	return server, port, nil
}
