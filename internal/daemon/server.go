package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"lockin/internal/config"
	"lockin/internal/logging"
)

type apiServer struct {
	bind   string
	logger *slog.Logger
	daemon *Daemon

	listener net.Listener
	server   *http.Server
}

func newAPIServer(cfg *config.Config, d *Daemon, logger *slog.Logger) (*apiServer, error) {
	bind := strings.TrimSpace(cfg.Paths.APIBind)
	if bind == "" {
		return nil, errors.New("api bind address required")
	}

	srv := &apiServer{
		bind:   bind,
		logger: logging.NewComponentLogger(logger, "api-server"),
		daemon: d,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", srv.handleDashboard)
	mux.HandleFunc("/api/status", srv.handleStatus)
	mux.HandleFunc("/api/state", srv.handleState)
	mux.HandleFunc("/api/timer", srv.handleTimer)
	mux.HandleFunc("/api/timer/start", srv.handleTimerStart)
	mux.HandleFunc("/api/timer/preset", srv.handleTimerPreset)
	mux.HandleFunc("/api/timer/pause", srv.handleTimerPause)
	mux.HandleFunc("/api/timer/resume", srv.handleTimerResume)
	mux.HandleFunc("/api/timer/reset", srv.handleTimerReset)
	mux.HandleFunc("/api/timer/presets", srv.handlePresets)
	mux.HandleFunc("/api/alarms", srv.handleAlarms)
	mux.HandleFunc("/api/alarms/", srv.handleAlarmItem)
	mux.HandleFunc("/api/stats", srv.handleStats)
	mux.HandleFunc("/api/sessions", srv.handleSessions)
	mux.HandleFunc("/api/goal", srv.handleGoal)
	mux.HandleFunc("/api/documents", srv.handleDocuments)
	mux.HandleFunc("/api/documents/", srv.handleDocumentItem)
	mux.HandleFunc("/api/settings", srv.handleSettings)
	mux.HandleFunc("/api/chat", srv.handleChat)

	srv.server = &http.Server{
		Handler:           srv.withRequestID(mux),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv, nil
}

// withRequestID attaches a correlation id to every request context so
// handler logs can be stitched together.
func (s *apiServer) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get("X-Request-ID"))
		if id == "" {
			id = uuid.NewString()
		}
		ctx := logging.WithRequestID(r.Context(), id)
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *apiServer) start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", slog.String("error", err.Error()))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("api server listening", slog.String("address", listener.Addr().String()))
	return nil
}

func (s *apiServer) stop() {
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

func (s *apiServer) addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *apiServer) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

func (s *apiServer) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

func (s *apiServer) log(ctx context.Context) *slog.Logger {
	return logging.WithContext(ctx, s.logger)
}
